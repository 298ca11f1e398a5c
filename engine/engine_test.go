package engine_test

import (
	"testing"

	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/engine"
	"github.com/beevik/snes816/snesrom"
)

// newTestImage builds a minimal LoROM image where bus bank-0 addresses
// 0x8000-0xFFFF map directly to file offsets 0x0000-0x7FFF, with the
// reset vector pointed at 0x8000 and the NMI vector left at 0x0000 (a
// RAM address, so the nmi path always terminates as MutableCode). The
// caller fills in code bytes directly, then calls snesrom.New on the
// result once the image is complete.
func newTestImage() []byte {
	data := make([]byte, 0x8000)
	data[0x7FFC], data[0x7FFD] = 0x00, 0x80 // reset -> 0x8000
	data[0x7FEA], data[0x7FEB] = 0x00, 0x00 // nmi -> 0x0000 (RAM)
	return data
}

func TestInfiniteLoop(t *testing.T) {
	data := newTestImage()
	// 0x8000: JMP $8000
	data[0], data[1], data[2] = 0x4C, 0x00, 0x80
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	reset, ok := a.Subroutine(0x8000)
	if !ok {
		t.Fatalf("expected a reset subroutine at 0x8000")
	}
	if reset.Size() != 1 {
		t.Errorf("expected exactly one member instruction, got %d", reset.Size())
	}
	refs := a.ReferencesTo(0x8000)
	if len(refs) != 1 || refs[0].Source != 0x8000 {
		t.Errorf("expected a single self-reference from 0x8000, got %+v", refs)
	}
	if reset.IsResponsibleForUnknown() {
		t.Errorf("expected no unknown changes in the infinite loop")
	}
}

func TestStateChangePropagates(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: JSR $8010 ; LDA #$1234 ; LDX #$1234 ; RTS
	data[0], data[1], data[2] = 0x20, 0x10, 0x80
	data[3], data[4], data[5] = 0xA9, 0x34, 0x12
	data[6], data[7], data[8] = 0xA2, 0x34, 0x12
	data[9] = 0x60
	// sub1 @ 0x8010: REP #$30 ; RTS
	data[0x10], data[0x11] = 0xC2, 0x30
	data[0x12] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	lda := a.InstructionsAt(0x8003)
	if len(lda) != 1 || lda[0].ArgumentSize() != 2 {
		t.Fatalf("expected LDA at 0x8003 with argument size 2, got %+v", lda)
	}
	ldx := a.InstructionsAt(0x8006)
	if len(ldx) != 1 || ldx[0].ArgumentSize() != 2 {
		t.Fatalf("expected LDX at 0x8006 with argument size 2, got %+v", ldx)
	}

	sub1, ok := a.Subroutine(0x8010)
	if !ok {
		t.Fatalf("expected sub1 at 0x8010")
	}
	ch, ok := sub1.KnownChanges()[0x8012]
	if !ok {
		t.Fatalf("expected a known change recorded at sub1's RTS")
	}
	if ch.M == nil || *ch.M != false || ch.X == nil || *ch.X != false {
		t.Errorf("expected sub1's RTS change to be {M:false, X:false}, got %+v", ch)
	}
}

func TestElidableStateChange(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: REP #$30 ; JSR $8010 ; RTS
	data[0], data[1] = 0xC2, 0x30
	data[2], data[3], data[4] = 0x20, 0x10, 0x80
	data[5] = 0x60
	// sub1 @ 0x8010: LDA #$1234 ; SEP #$20 ; REP #$20 ; RTS
	data[0x10], data[0x11], data[0x12] = 0xA9, 0x34, 0x12
	data[0x13], data[0x14] = 0xE2, 0x20
	data[0x15], data[0x16] = 0xC2, 0x20
	data[0x17] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	sub1, ok := a.Subroutine(0x8010)
	if !ok {
		t.Fatalf("expected sub1 at 0x8010")
	}
	ch, ok := sub1.KnownChanges()[0x8017]
	if !ok {
		t.Fatalf("expected a known change recorded at sub1's RTS")
	}
	if !ch.IsEmpty() {
		t.Errorf("expected the redundant SEP/REP toggle to be elided, got %+v", ch)
	}
}

func TestPHPPLPPreservesState(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: JSR $8010 ; RTS
	data[0], data[1], data[2] = 0x20, 0x10, 0x80
	data[3] = 0x60
	// sub1 @ 0x8010: PHP ; SEP #$20 ; PLP ; RTS
	data[0x10] = 0x08
	data[0x11], data[0x12] = 0xE2, 0x20
	data[0x13] = 0x28
	data[0x14] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	sub1, ok := a.Subroutine(0x8010)
	if !ok {
		t.Fatalf("expected sub1 at 0x8010")
	}
	if !sub1.SavesStateInIncipit() {
		t.Errorf("expected sub1 to be recognized as saving state in its incipit")
	}
	ch, ok := sub1.KnownChanges()[0x8014]
	if !ok {
		t.Fatalf("expected a known change recorded at sub1's RTS")
	}
	if !ch.IsEmpty() {
		t.Errorf("expected PLP to fully restore the pre-PHP state, got %+v", ch)
	}
}

func TestIndirectJumpBlockedThenUnblockedByJumpTableAssertion(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: JMP ($8010), an indirect jump through a pointer
	// table living at 0x8010/0x8012.
	data[0], data[1], data[2] = 0x6C, 0x10, 0x80
	// Table data: targets 0x8100 and 0x8200.
	data[0x10], data[0x11] = 0x00, 0x81
	data[0x12], data[0x13] = 0x00, 0x82
	// 0x8100 and 0x8200 are themselves terminated with RTS so their
	// subroutines resolve cleanly once reached.
	data[0x100] = 0x60
	data[0x200] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	reset, ok := a.Subroutine(0x8000)
	if !ok {
		t.Fatalf("expected a reset subroutine")
	}
	jt, ok := a.JumpTableAt(0x8000)
	if !ok || jt.Status != analysis.StatusUnknown {
		t.Fatalf("expected an Unknown jump table registered at the JMP's PC, got %+v", jt)
	}
	reason, ok := reset.PrimaryUnknownReason()
	if !ok || reason != cpustate.IndirectJump {
		t.Fatalf("expected reset's unknown reason to be IndirectJump, got %v", reason)
	}

	if !a.DefineJumpTable(0x8000, 0, 2) {
		t.Fatalf("DefineJumpTable should succeed once the JMP has been decoded")
	}
	engine.Run(a, rom)

	if _, ok := a.Subroutine(0x8100); !ok {
		t.Errorf("expected subroutine at 0x8100 after resolving the jump table")
	}
	if _, ok := a.Subroutine(0x8200); !ok {
		t.Errorf("expected subroutine at 0x8200 after resolving the jump table")
	}
	if len(a.Subroutines()) < 3 {
		t.Errorf("expected at least 3 subroutines (reset, 0x8100, 0x8200), got %d", len(a.Subroutines()))
	}
}

func TestStackManipulationOnRTS(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: JSR $8010 ; RTS
	data[0], data[1], data[2] = 0x20, 0x10, 0x80
	data[3] = 0x60
	// sub1 @ 0x8010: PHA ; PHA ; RTS
	data[0x10] = 0x48
	data[0x11] = 0x48
	data[0x12] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	sub1, ok := a.Subroutine(0x8010)
	if !ok {
		t.Fatalf("expected sub1 at 0x8010")
	}
	reason, ok := sub1.PrimaryUnknownReason()
	if !ok || reason != cpustate.StackManipulation {
		t.Errorf("expected sub1's RTS to be flagged StackManipulation, got %v ok=%v", reason, ok)
	}
}
