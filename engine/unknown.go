package engine

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
)

// unknownStateChange is the executor's terminator for every ambiguity
// it cannot resolve on its own. A user assertion recorded at (pc,
// subroutinePC) can override the default behavior: an
// InstructionScope assertion lets this path continue past pc as if
// reason had never happened; a SubroutineScope assertion records its
// StateChange as known and stops just as the default path would.
func (c *CPU) unknownStateChange(pc addr.PC, reason cpustate.UnknownReason) {
	as, ok := c.analysis.Assertion(pc, c.subroutinePC)
	if !ok {
		c.depositUnknown(pc, reason)
		c.stop = true
		return
	}

	switch as.Scope {
	case analysis.InstructionScope:
		c.state = as.Change.Apply(c.state)
		if as.Change.M != nil {
			c.stateChange.SetM(*as.Change.M)
		}
		if as.Change.X != nil {
			c.stateChange.SetX(*as.Change.X)
		}
	case analysis.SubroutineScope:
		if sub, ok := c.analysis.Subroutine(c.subroutinePC); ok {
			sub.SetKnownChange(pc, as.Change)
		}
		c.stop = true
	}
}

// depositUnknown records reason under this subroutine's unknown-
// changes map at pc, creating the subroutine entry if necessary (it
// may not exist yet if the very first instruction explored hits an
// unresolvable condition).
func (c *CPU) depositUnknown(pc addr.PC, reason cpustate.UnknownReason) {
	sub, ok := c.analysis.Subroutine(c.subroutinePC)
	if !ok {
		sub = c.analysis.EnsureSubroutine(c.subroutinePC, defaultSubroutineLabel(c.subroutinePC), false)
	}
	sub.SetUnknownChange(pc, cpustate.Unresolved(reason))
}
