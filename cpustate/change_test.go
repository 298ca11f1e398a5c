package cpustate_test

import (
	"testing"

	"github.com/beevik/snes816/cpustate"
)

func TestResetState(t *testing.T) {
	s := cpustate.Reset()
	if !s.M() || !s.X() {
		t.Errorf("reset state should have M=1, X=1; got M=%v X=%v", s.M(), s.X())
	}
	if s.SizeA() != 1 || s.SizeX() != 1 {
		t.Errorf("reset state should have 8-bit A and X")
	}
}

func TestSEPREP(t *testing.T) {
	s := cpustate.Reset().WithREP(0x30)
	if s.M() || s.X() {
		t.Errorf("REP #$30 should clear M and X")
	}
	s = s.WithSEP(0x20)
	if !s.M() || s.X() {
		t.Errorf("SEP #$20 should set M only; got M=%v X=%v", s.M(), s.X())
	}
}

func TestStateChangeEmpty(t *testing.T) {
	sc := cpustate.Empty()
	if !sc.IsEmpty() || sc.IsUnknown() {
		t.Errorf("Empty() should be empty and known")
	}
}

func TestStateChangeApplySEPREP(t *testing.T) {
	sc := cpustate.Empty()
	sc.ApplySEP(0x20)
	sc.ApplyREP(0x10)
	if sc.M == nil || !*sc.M {
		t.Errorf("expected M=true")
	}
	if sc.X == nil || *sc.X {
		t.Errorf("expected X=false")
	}
}

func TestStateChangeSimplify(t *testing.T) {
	caller := cpustate.Reset() // M=1, X=1
	sc := cpustate.Empty()
	sc.SetM(true)  // same as caller's M -> elided
	sc.SetX(false) // differs from caller's X -> kept
	simplified := sc.Simplify(caller)
	if simplified.M != nil {
		t.Errorf("expected M to be elided")
	}
	if simplified.X == nil || *simplified.X != false {
		t.Errorf("expected X to remain false")
	}
}

func TestUnion(t *testing.T) {
	a := cpustate.Empty()
	a.SetM(false)
	b := cpustate.Empty()
	b.SetX(false)
	merged, ok := cpustate.Union(a, b)
	if !ok {
		t.Fatalf("expected union to succeed")
	}
	if merged.M == nil || *merged.M != false {
		t.Errorf("expected merged M=false")
	}
	if merged.X == nil || *merged.X != false {
		t.Errorf("expected merged X=false")
	}

	c := cpustate.Empty()
	c.SetM(true)
	_, ok = cpustate.Union(a, c)
	if ok {
		t.Errorf("expected union of conflicting changes to fail")
	}
}
