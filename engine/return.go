package engine

import (
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/opcode"
)

// execReturn handles RTS/RTL/RTI. RTI is treated as a standard return
// with no stack validation, since it restores the full machine state
// from an interrupt frame rather than a call frame this executor
// tracks. RTS/RTL validate that the popped return address was pushed
// by a matching JSR/JSL; any mismatch is stack manipulation the
// executor cannot follow.
func (c *CPU) execReturn(instr instruction.Instruction) {
	if instr.Operation() == opcode.RTI {
		c.recordKnownReturn(instr)
		return
	}

	size := 2
	wantOp := opcode.JSR
	if instr.Operation() == opcode.RTL {
		size = 3
		wantOp = opcode.JSL
	}

	entries := c.stack.Pop(size)
	for _, e := range entries {
		pusher, ok := e.Pusher()
		if !ok {
			c.unknownStateChange(instr.PC, cpustate.StackManipulation)
			return
		}
		if pusher.Op != wantOp.String() {
			c.unknownStateChange(instr.PC, cpustate.StackManipulation)
			return
		}
	}

	c.recordKnownReturn(instr)
}

// recordKnownReturn deposits the accumulated stateChange under this
// subroutine's known-changes map at the terminating instruction and
// stops this exploration path.
func (c *CPU) recordKnownReturn(instr instruction.Instruction) {
	if sub, ok := c.analysis.Subroutine(c.subroutinePC); ok {
		sub.SetKnownChange(instr.PC, c.stateChange)
	}
	c.stop = true
}
