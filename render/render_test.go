package render_test

import (
	"strings"
	"testing"

	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/engine"
	"github.com/beevik/snes816/render"
	"github.com/beevik/snes816/snesrom"
)

func newTestImage() []byte {
	data := make([]byte, 0x8000)
	data[0x7FFC], data[0x7FFD] = 0x00, 0x80 // reset -> 0x8000
	data[0x7FEA], data[0x7FEB] = 0x00, 0x00 // nmi -> 0x0000 (RAM)
	return data
}

func TestLineRendersImmediateOperand(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: REP #$30 ; LDA #$1234 ; RTS
	data[0], data[1] = 0xC2, 0x30
	data[2], data[3], data[4] = 0xA9, 0x34, 0x12
	data[5] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	lda := a.InstructionsAt(0x8002)[0]
	line := render.Line(a, lda)
	if !strings.Contains(line, "lda #$1234") {
		t.Errorf("expected an lda #$1234 operand, got %q", line)
	}
	if !strings.Contains(line, "; $008002") {
		t.Errorf("expected the PC column to read $008002, got %q", line)
	}
}

func TestLineRendersCallTargetAsSubroutineLabel(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: JSR $8010 ; RTS
	data[0], data[1], data[2] = 0x20, 0x10, 0x80
	data[3] = 0x60
	// sub1 @ 0x8010: RTS
	data[0x10] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	jsr := a.InstructionsAt(0x8000)[0]
	sub1, ok := a.Subroutine(0x8010)
	if !ok {
		t.Fatalf("expected sub1 at 0x8010")
	}
	line := render.Line(a, jsr)
	if !strings.Contains(line, "jsr "+sub1.Label) {
		t.Errorf("expected the jsr operand to read the target's label %q, got %q", sub1.Label, line)
	}
}

func TestLineRendersLocalLabelForIntraSubroutineBranch(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: BRA +2 (-> 0x8004) ; NOP ; NOP ; RTS(target)
	data[0], data[1] = 0x80, 0x02
	data[2] = 0xEA
	data[3] = 0xEA
	data[4] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	bra := a.InstructionsAt(0x8000)[0]
	line := render.Line(a, bra)
	if !strings.Contains(line, "bra .loc_008004") {
		t.Errorf("expected an intra-subroutine dotted local label, got %q", line)
	}

	sub0, ok := a.Subroutine(0x8000)
	if !ok {
		t.Fatalf("expected a subroutine at 0x8000")
	}
	subLines := render.Subroutine(a, sub0)
	found := false
	for _, l := range subLines {
		if l == ".loc_008004:" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a .loc_008004: label line in the rendered subroutine, got %v", subLines)
	}
}

func TestLineAnnotatesUnresolvedIndirectJump(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: JMP ($8010), pointer table never asserted.
	data[0], data[1], data[2] = 0x6C, 0x10, 0x80
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	jmp := a.InstructionsAt(0x8000)[0]
	line := render.Line(a, jmp)
	if !strings.Contains(line, "| Indirect jump") {
		t.Errorf("expected a trailing Indirect jump comment, got %q", line)
	}
}

func TestLineAppendsUserComment(t *testing.T) {
	data := newTestImage()
	data[0] = 0x60 // reset @ 0x8000: RTS
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)
	a.SetComment(0x8000, "entry point")

	rts := a.InstructionsAt(0x8000)[0]
	line := render.Line(a, rts)
	if !strings.Contains(line, "| entry point") {
		t.Errorf("expected the user comment to be appended, got %q", line)
	}
}

func TestAllSeparatesSubroutinesWithBlankLine(t *testing.T) {
	data := newTestImage()
	// reset @ 0x8000: JSR $8010 ; RTS
	data[0], data[1], data[2] = 0x20, 0x10, 0x80
	data[3] = 0x60
	// sub1 @ 0x8010: RTS
	data[0x10] = 0x60
	rom := snesrom.New(data)

	a := analysis.New(rom)
	engine.Run(a, rom)

	lines := render.All(a)
	blanks := 0
	for _, l := range lines {
		if l == "" {
			blanks++
		}
	}
	if blanks == 0 {
		t.Errorf("expected at least one blank separator between subroutines, got none in %v", lines)
	}
}
