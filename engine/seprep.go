package engine

import (
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/opcode"
)

// execSepRep updates both the running processor state and the
// accumulated stateChange for a SEP or REP instruction, then applies
// state inference: if the resulting change matches what an earlier
// ImmediateM/ImmediateX operand already proved about this subroutine's
// entry state, the change is nulled out, since it is observationally
// invisible to the caller.
func (c *CPU) execSepRep(instr instruction.Instruction) {
	mask := byte(instr.Argument)

	if instr.Operation() == opcode.SEP {
		c.state.P |= mask
		c.stateChange.ApplySEP(mask)
	} else {
		c.state.P &^= mask
		c.stateChange.ApplyREP(mask)
	}

	c.applyInference()
}

// applyInference nulls any flag in stateChange whose new value matches
// the value inferred earlier in this subroutine from an immediate-mode
// operand width.
func (c *CPU) applyInference() {
	if c.stateChange.M != nil && c.stateInferred.M != nil && *c.stateChange.M == *c.stateInferred.M {
		c.stateChange.M = nil
	}
	if c.stateChange.X != nil && c.stateInferred.X != nil && *c.stateChange.X == *c.stateInferred.X {
		c.stateChange.X = nil
	}
}
