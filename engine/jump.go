package engine

import (
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
)

// execJump handles JMP/JML/BRA/BRL: each resolved target is explored
// in its own clone. A direct jump's clone shares this path's
// subroutinePC, since a direct jump (unlike a call) does not open a new
// subroutine. An indirect jump resolved through a jump table is treated
// as a tail call: each table target is explored as a subroutine of its
// own, and their combined M/X effect is recorded as this subroutine's
// exit at the jump. This path itself always stops afterward; the
// targets were already fully explored by the clones.
func (c *CPU) execJump(instr instruction.Instruction) {
	targets, ok := c.computeJumpTargets(instr)
	if !ok {
		c.unknownStateChange(instr.PC, cpustate.IndirectJump)
		return
	}

	_, direct := instr.AbsoluteTarget()
	for _, target := range targets {
		clone := c.clone()
		clone.pc = target
		if !direct {
			clone.subroutinePC = target
			clone.stateChange = cpustate.Empty()
			clone.analysis.EnsureSubroutine(target, defaultSubroutineLabel(target), false)
		}
		clone.analysis.AddReference(analysis.Reference{Source: instr.PC, Target: target, SubroutinePC: c.subroutinePC})
		clone.Run()
	}

	if !direct && c.propagateSubroutineState(instr.PC, targets) {
		c.recordKnownReturn(instr)
		return
	}
	c.stop = true
}
