package engine

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/cpustate"
)

// propagateSubroutineState folds the effect of a call's resolved
// callees back into this path's running state. It reports false when
// the caller should stop because the effect could not be resolved.
func (c *CPU) propagateSubroutineState(callPC addr.PC, targets []addr.PC) bool {
	changes := make([]cpustate.StateChange, 0, len(targets))
	for _, target := range targets {
		callee, ok := c.analysis.Subroutine(target)
		if !ok {
			continue
		}
		if len(callee.UnknownChanges()) > 0 {
			c.unknownStateChange(callPC, cpustate.Unknown)
			return false
		}
		changes = append(changes, callee.SimplifiedStateChanges(c.state)...)
	}

	union, ok := unionAll(changes)
	if !ok {
		c.unknownStateChange(callPC, cpustate.MultipleReturnStates)
		return false
	}

	c.state = union.Apply(c.state)
	if union.M != nil {
		c.stateChange.SetM(*union.M)
	}
	if union.X != nil {
		c.stateChange.SetX(*union.X)
	}
	return true
}

// unionAll merges a list of simplified StateChanges into one, failing
// if any two disagree on the same flag.
func unionAll(changes []cpustate.StateChange) (cpustate.StateChange, bool) {
	merged := cpustate.Empty()
	for _, ch := range changes {
		var ok bool
		merged, ok = cpustate.Union(merged, ch)
		if !ok {
			return merged, false
		}
	}
	return merged, true
}
