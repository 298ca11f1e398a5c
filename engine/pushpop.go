package engine

import (
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/opcode"
	"github.com/beevik/snes816/stack"
)

// execPush deposits an abstract placeholder on the stack for each of
// the 65816's push instructions, tagged with the pushing instruction
// so a later RTS/RTL/PLP can validate what it pops.
func (c *CPU) execPush(instr instruction.Instruction) {
	p := stack.Pusher{PC: instr.PC, SubroutinePC: c.subroutinePC, Op: instr.Operation().String()}
	switch instr.Operation() {
	case opcode.PHP:
		c.stack.PushState(c.state, c.stateChange, p)
	case opcode.PHA:
		c.stack.Push(c.state.SizeA(), nil, p)
	case opcode.PHX, opcode.PHY:
		c.stack.Push(c.state.SizeX(), nil, p)
	case opcode.PHB, opcode.PHK:
		c.stack.PushOne(0, false, p)
	case opcode.PHD, opcode.PEA, opcode.PER, opcode.PEI:
		c.stack.Push(2, nil, p)
	}
}

// execPop consumes the abstract placeholders pushed by their matching
// push instruction. PLP is the only pop that can affect the processor
// state the executor tracks; a PLP that does not find a matching PHP
// state pair is stack manipulation the executor cannot resolve.
func (c *CPU) execPop(instr instruction.Instruction) {
	switch instr.Operation() {
	case opcode.PLP:
		e := c.stack.PopOne()
		if !e.IsStatePair() {
			c.unknownStateChange(instr.PC, cpustate.StackManipulation)
			return
		}
		c.state, c.stateChange = e.StatePair()
	case opcode.PLA:
		c.stack.Pop(c.state.SizeA())
	case opcode.PLX, opcode.PLY:
		c.stack.Pop(c.state.SizeX())
	case opcode.PLB:
		c.stack.PopOne()
	case opcode.PLD:
		c.stack.Pop(2)
	}
}
