// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the symbolic executor: a depth-first
// abstract interpreter that discovers reachable code from a ROM's
// entry points, decodes each instruction under a partially-known
// processor state, forks on branches, and propagates M/X state across
// subroutine boundaries.
package engine

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/opcode"
	"github.com/beevik/snes816/snesrom"
	"github.com/beevik/snes816/stack"
)

// CPU is a single exploration path through the program's control-flow
// graph. It is a transient, stack-allocated explorer: cloning one
// deep-copies its running state but shares the Analysis it reports
// into.
type CPU struct {
	analysis *analysis.Analysis
	rom      *snesrom.ROM

	pc            addr.PC
	subroutinePC  addr.PC
	state         cpustate.State
	stateChange   cpustate.StateChange
	stateInferred cpustate.StateChange // inferred-from-Immediate-width M/X, elides matching SEP/REP
	stack         *stack.Stack
	stop          bool
}

// New creates a CPU rooted at pc with the given entry state, ready to
// explore as the subroutine identified by subroutinePC.
func New(a *analysis.Analysis, rom *snesrom.ROM, pc, subroutinePC addr.PC, state cpustate.State) *CPU {
	return &CPU{
		analysis:     a,
		rom:          rom,
		pc:           pc,
		subroutinePC: subroutinePC,
		state:        state,
		stack:        stack.New(),
	}
}

// clone deep-copies everything about the explorer's running state
// except the Analysis and ROM back-pointers, which every clone shares.
func (c *CPU) clone() *CPU {
	return &CPU{
		analysis:      c.analysis,
		rom:           c.rom,
		pc:            c.pc,
		subroutinePC:  c.subroutinePC,
		state:         c.state,
		stateChange:   c.stateChange,
		stateInferred: c.stateInferred,
		stack:         c.stack.Clone(),
	}
}

// Run repeatedly steps the explorer until it stops.
func (c *CPU) Run() {
	for !c.stop {
		c.step()
	}
}

// step decodes and executes a single instruction at the current PC.
func (c *CPU) step() {
	if snesrom.IsRAM(c.pc) {
		c.unknownStateChange(c.pc, cpustate.MutableCode)
		return
	}

	op := c.rom.ReadByte(c.pc)
	raw := uint32(c.rom.ReadByte(c.pc.Add(1))) |
		uint32(c.rom.ReadByte(c.pc.Add(2)))<<8 |
		uint32(c.rom.ReadByte(c.pc.Add(3)))<<16

	instr := instruction.New(c.pc, c.subroutinePC, op, raw, c.state)

	if !c.analysis.AddInstruction(instr) {
		c.stop = true
		return
	}

	c.execute(instr)
}

// execute advances the PC past instr, records state inference, and
// dispatches on the instruction's category.
func (c *CPU) execute(instr instruction.Instruction) {
	c.pc = instr.NextPC()

	switch instr.Mode() {
	case opcode.ImmediateM:
		if c.stateChange.M == nil {
			c.stateInferred.SetM(c.state.M())
		}
	case opcode.ImmediateX:
		if c.stateChange.X == nil {
			c.stateInferred.SetX(c.state.X())
		}
	}

	switch instr.Category() {
	case opcode.Branch:
		c.execBranch(instr)
	case opcode.Call:
		c.execCall(instr)
	case opcode.Jump:
		c.execJump(instr)
	case opcode.Return:
		c.execReturn(instr)
	case opcode.Interrupt:
		c.unknownStateChange(instr.PC, cpustate.SuspectInstruction)
	case opcode.Push:
		c.execPush(instr)
	case opcode.Pop:
		c.execPop(instr)
	case opcode.SepRep:
		c.execSepRep(instr)
	default:
		// Other and MoveBlock have no control-flow or state-change
		// effect the executor needs to model beyond the PC advance
		// already applied above.
	}
}

// execBranch handles the 8 conditional branches: it explores the
// fall-through path in a clone before following the taken path itself.
func (c *CPU) execBranch(instr instruction.Instruction) {
	target, ok := instr.AbsoluteTarget()
	if !ok {
		c.unknownStateChange(instr.PC, cpustate.IndirectJump)
		return
	}

	fallThrough := c.clone()
	fallThrough.Run()

	c.analysis.AddReference(analysis.Reference{Source: instr.PC, Target: target, SubroutinePC: c.subroutinePC})
	c.pc = target
}
