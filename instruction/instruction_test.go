package instruction_test

import (
	"testing"

	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
)

func TestSizeAndArgumentSize(t *testing.T) {
	// LDA #$1234 under 16-bit accumulator: ImmediateM, 2-byte operand.
	st := cpustate.Reset().WithREP(0x20) // M=0
	i := instruction.New(0x008000, 0x008000, 0xA9, 0x1234, st)
	if i.ArgumentSize() != 2 || i.Size() != 3 {
		t.Errorf("got argSize=%d size=%d, want 2,3", i.ArgumentSize(), i.Size())
	}

	// Same opcode under 8-bit accumulator.
	st8 := cpustate.Reset()
	i8 := instruction.New(0x008000, 0x008000, 0xA9, 0x1234, st8)
	if i8.ArgumentSize() != 1 || i8.Size() != 2 {
		t.Errorf("got argSize=%d size=%d, want 1,2", i8.ArgumentSize(), i8.Size())
	}
}

func TestAbsoluteTargetControlOnly(t *testing.T) {
	st := cpustate.Reset()
	jmp := instruction.New(0x008000, 0x008000, 0x4C, 0x1234, st) // JMP $1234
	target, ok := jmp.AbsoluteTarget()
	// Absolute targets stay in the PC's bank: (0x008000 & 0xFF0000) | 0x1234.
	if !ok || target != 0x001234 {
		t.Errorf("JMP target = %06X, ok=%v; want %06X", target, ok, 0x001234)
	}

	lda := instruction.New(0x008000, 0x008000, 0xAD, 0x1234, st) // LDA $1234 (Absolute, non-control)
	if _, ok := lda.AbsoluteTarget(); ok {
		t.Errorf("LDA $1234 (non-control Absolute) should not resolve a target")
	}
}

func TestRelativeTarget(t *testing.T) {
	st := cpustate.Reset()
	i := instruction.New(0x000006, 0x000006, 0x90, 0xF8, st) // BCC $F8 at PC 6, size 2
	target, ok := i.AbsoluteTarget()
	if !ok || target != 0x0000 {
		t.Errorf("got %06X ok=%v, want 0x0000", target, ok)
	}

	i2 := instruction.New(0x008000, 0x008000, 0x90, 0x10, st)
	target2, ok := i2.AbsoluteTarget()
	if !ok || target2 != 0x8012 {
		t.Errorf("got %06X ok=%v, want 0x8012", target2, ok)
	}
}

func TestRelativeLongTarget(t *testing.T) {
	st := cpustate.Reset()
	i := instruction.New(0x008000, 0x008000, 0x82, 0xFFFD, st) // BRL $FFFD
	target, ok := i.AbsoluteTarget()
	if !ok || target != 0x8000 {
		t.Errorf("got %06X ok=%v, want 0x8000", target, ok)
	}
}

func TestKeyDeduplication(t *testing.T) {
	st1 := cpustate.Reset()
	st2 := cpustate.Reset().WithREP(0x20)
	a := instruction.New(0x008000, 0x008000, 0xEA, 0, st1)
	b := instruction.New(0x008000, 0x008000, 0xEA, 0, st1)
	c := instruction.New(0x008000, 0x008000, 0xEA, 0, st2)
	if a.Key() != b.Key() {
		t.Errorf("identical instructions should share a Key")
	}
	if a.Key() == c.Key() {
		t.Errorf("instructions with different entry state should not share a Key")
	}
}
