package opcode_test

import (
	"testing"

	"github.com/beevik/snes816/opcode"
)

func TestLookupKnownOpcodes(t *testing.T) {
	cases := []struct {
		op   byte
		want opcode.Entry
	}{
		{0x4C, opcode.Entry{Op: opcode.JMP, Mode: opcode.Absolute}},
		{0x20, opcode.Entry{Op: opcode.JSR, Mode: opcode.Absolute}},
		{0x60, opcode.Entry{Op: opcode.RTS, Mode: opcode.Implied}},
		{0xA9, opcode.Entry{Op: opcode.LDA, Mode: opcode.ImmediateM}},
		{0xA2, opcode.Entry{Op: opcode.LDX, Mode: opcode.ImmediateX}},
		{0xC2, opcode.Entry{Op: opcode.REP, Mode: opcode.Immediate8}},
		{0xE2, opcode.Entry{Op: opcode.SEP, Mode: opcode.Immediate8}},
		{0x08, opcode.Entry{Op: opcode.PHP, Mode: opcode.Implied}},
		{0x28, opcode.Entry{Op: opcode.PLP, Mode: opcode.Implied}},
	}
	for _, c := range cases {
		got := opcode.Lookup(c.op)
		if got != c.want {
			t.Errorf("opcode %#02x: got %+v, want %+v", c.op, got, c.want)
		}
	}
}

func TestCategoryDispatch(t *testing.T) {
	if opcode.JSR.Category() != opcode.Call {
		t.Errorf("JSR should be Call")
	}
	if opcode.BRA.Category() != opcode.Jump {
		t.Errorf("BRA should be Jump, not Branch")
	}
	if opcode.BEQ.Category() != opcode.Branch {
		t.Errorf("BEQ should be Branch")
	}
	if !opcode.JSR.IsControl() {
		t.Errorf("JSR must be control flow")
	}
	if opcode.LDA.IsControl() {
		t.Errorf("LDA must not be control flow")
	}
}

func TestStaticWidth(t *testing.T) {
	if w, ok := opcode.Absolute.StaticWidth(); !ok || w != 2 {
		t.Errorf("Absolute width should be static 2, got %d ok=%v", w, ok)
	}
	if _, ok := opcode.ImmediateM.StaticWidth(); ok {
		t.Errorf("ImmediateM width should be state-dependent")
	}
}
