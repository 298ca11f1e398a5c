package engine

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/opcode"
	"github.com/beevik/snes816/stack"
)

// execCall handles JSR/JSL: it forks one clone per resolved target,
// pushes a return-address placeholder on each, runs them to exhaustion,
// then propagates their combined effect on M/X back into this path.
func (c *CPU) execCall(instr instruction.Instruction) {
	targets, ok := c.computeJumpTargets(instr)
	if !ok {
		c.unknownStateChange(instr.PC, cpustate.IndirectJump)
		return
	}

	retSize := 2
	if instr.Operation() == opcode.JSL {
		retSize = 3
	}
	pusher := stack.Pusher{PC: instr.PC, SubroutinePC: c.subroutinePC, Op: instr.Operation().String()}

	for _, target := range targets {
		clone := c.clone()
		clone.pc = target
		clone.subroutinePC = target
		clone.stateChange = cpustate.Empty()
		clone.stack.Push(retSize, nil, pusher)

		clone.analysis.EnsureSubroutine(target, defaultSubroutineLabel(target), false)
		clone.analysis.AddReference(analysis.Reference{Source: instr.PC, Target: target, SubroutinePC: c.subroutinePC})
		clone.Run()
	}

	if !c.propagateSubroutineState(instr.PC, targets) {
		c.stop = true
	}
}

// defaultSubroutineLabel produces the fallback label assigned to a
// newly discovered subroutine, before the label resolver's second pass
// has a chance to apply a user override.
func defaultSubroutineLabel(pc addr.PC) string {
	return "sub_" + hex6(pc)
}
