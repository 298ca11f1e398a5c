package cpustate

// UnknownReason explains why a StateChange could not be fully resolved.
type UnknownReason int

// All reasons a state change can be left unknown.
const (
	// Known means the state change is fully resolved; this is the
	// zero value so an empty StateChange is Known by default.
	Known UnknownReason = iota
	Unknown
	SuspectInstruction
	MultipleReturnStates
	IndirectJump
	StackManipulation
	Recursion
	MutableCode
)

var reasonText = map[UnknownReason]string{
	Known:                "known",
	Unknown:              "unknown state change",
	SuspectInstruction:   "suspect instruction",
	MultipleReturnStates: "multiple return states",
	IndirectJump:         "indirect jump",
	StackManipulation:    "stack manipulation",
	Recursion:            "recursion",
	MutableCode:          "mutable code",
}

// String renders a human-readable description of the reason, suitable
// for the renderer's trailing comments.
func (r UnknownReason) String() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return "unknown reason"
}

// StateChange is a partial record of how M and X differ between the
// entry and exit of some span of code (an instruction or a subroutine).
// A nil Flag pointer means "no change observed"; a non-nil pointer
// records a definite change to true or false.
type StateChange struct {
	M      *bool
	X      *bool
	Reason UnknownReason
}

// Empty returns the StateChange meaning "no changes, fully known".
func Empty() StateChange {
	return StateChange{}
}

// Unresolved returns an unknown StateChange tagged with reason.
func Unresolved(reason UnknownReason) StateChange {
	return StateChange{Reason: reason}
}

// IsEmpty reports whether sc records no changes at all and is fully known.
func (sc StateChange) IsEmpty() bool {
	return sc.M == nil && sc.X == nil && sc.Reason == Known
}

// IsUnknown reports whether sc is tagged with a reason other than Known.
func (sc StateChange) IsUnknown() bool {
	return sc.Reason != Known
}

// SetM records a definite change of the M flag to v.
func (sc *StateChange) SetM(v bool) {
	sc.M = &v
}

// SetX records a definite change of the X flag to v.
func (sc *StateChange) SetX(v bool) {
	sc.X = &v
}

// ApplySEP mirrors the effect of a SEP instruction with the given mask
// into the change record: any affected M/X bit becomes Some(true).
func (sc *StateChange) ApplySEP(mask byte) {
	if mask&byte(FlagM) != 0 {
		sc.SetM(true)
	}
	if mask&byte(FlagX) != 0 {
		sc.SetX(true)
	}
}

// ApplyREP mirrors the effect of a REP instruction with the given mask
// into the change record: any affected M/X bit becomes Some(false).
func (sc *StateChange) ApplyREP(mask byte) {
	if mask&byte(FlagM) != 0 {
		sc.SetM(false)
	}
	if mask&byte(FlagX) != 0 {
		sc.SetX(false)
	}
}

// Apply returns the State that results from applying sc's M/X changes
// (if any) on top of s. Flags left at None are unchanged.
func (sc StateChange) Apply(s State) State {
	p := s.P
	if sc.M != nil {
		if *sc.M {
			p |= byte(FlagM)
		} else {
			p &^= byte(FlagM)
		}
	}
	if sc.X != nil {
		if *sc.X {
			p |= byte(FlagX)
		} else {
			p &^= byte(FlagX)
		}
	}
	return State{P: p}
}

// Simplify elides any flag whose recorded value equals the flag's value
// in the caller's current state, since such a change is observationally
// null from the caller's point of view. The Reason is preserved.
func (sc StateChange) Simplify(caller State) StateChange {
	out := sc
	if out.M != nil && *out.M == caller.M() {
		out.M = nil
	}
	if out.X != nil && *out.X == caller.X() {
		out.X = nil
	}
	return out
}

// Union merges two StateChanges' M/X fields. Fields disagree if both
// are set and set to different values; agree returns the merged change
// and ok=true only if no field disagrees.
func Union(a, b StateChange) (merged StateChange, ok bool) {
	merged = StateChange{Reason: Known}
	if a.M != nil {
		if b.M != nil && *a.M != *b.M {
			return merged, false
		}
		merged.SetM(*a.M)
	} else if b.M != nil {
		merged.SetM(*b.M)
	}
	if a.X != nil {
		if b.X != nil && *a.X != *b.X {
			return merged, false
		}
		merged.SetX(*a.X)
	} else if b.X != nil {
		merged.SetX(*b.X)
	}
	return merged, true
}

// Equal reports whether two StateChanges carry the same M/X/Reason.
func Equal(a, b StateChange) bool {
	if a.Reason != b.Reason {
		return false
	}
	return boolPtrEqual(a.M, b.M) && boolPtrEqual(a.X, b.X)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
