package analysis

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/cpustate"
)

// AssertionScope tells unknownStateChange whether an assertion resolves
// just the single terminating instruction (letting the executor carry
// on past it) or the whole subroutine (ending exploration there with
// the asserted change recorded as known).
type AssertionScope int

const (
	// InstructionScope applies the asserted StateChange to the CPU's
	// running state and continues execution past the instruction.
	InstructionScope AssertionScope = iota
	// SubroutineScope records the asserted StateChange as a known exit
	// for the subroutine and stops exploring this path.
	SubroutineScope
)

// Assertion is a user-supplied override that resolves a state-change
// ambiguity the symbolic executor could not resolve on its own. It is
// keyed by the pair (instruction PC, owning subroutine PC), since the
// same code can be reached as part of more than one subroutine.
type Assertion struct {
	InstructionPC addr.PC
	SubroutinePC  addr.PC
	Scope         AssertionScope
	Change        cpustate.StateChange
}
