// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instruction implements the decoded Instruction tuple used
// throughout the analysis: an opcode, its raw argument bits, the
// addressing mode and category it belongs to, and the processor state
// that was in effect when it was decoded.
package instruction

import (
	"fmt"

	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/opcode"
)

// Instruction is a single decoded 65816 instruction, tagged with the
// subroutine that owns it and the processor state on entry.
type Instruction struct {
	PC           addr.PC        // absolute address of the opcode byte
	SubroutinePC addr.PC        // entry PC of the owning subroutine
	Opcode       byte           // raw opcode byte
	Argument     uint32         // raw argument bits, upper bytes masked per operand size
	EntryState   cpustate.State // processor state on entry to this instruction
	LocalLabel   string         // optional local label assigned by the Label Resolver
}

// New decodes a raw opcode byte and up to 3 argument bytes (little-
// endian, as read from ROM) into an Instruction. Argument bytes beyond
// the operand's width are ignored.
func New(pc, subroutinePC addr.PC, op byte, rawArgument uint32, state cpustate.State) Instruction {
	i := Instruction{
		PC:           pc,
		SubroutinePC: subroutinePC,
		Opcode:       op,
		EntryState:   state,
	}
	width := i.ArgumentSize()
	mask := uint32(1)<<(8*width) - 1
	i.Argument = rawArgument & mask
	return i
}

// Entry returns the static (Operation, Mode) decode of the opcode byte.
func (i Instruction) Entry() opcode.Entry {
	return opcode.Lookup(i.Opcode)
}

// Operation returns the decoded operation.
func (i Instruction) Operation() opcode.Operation {
	return i.Entry().Op
}

// Mode returns the decoded addressing mode.
func (i Instruction) Mode() opcode.Mode {
	return i.Entry().Mode
}

// Category returns the operation's dispatch category.
func (i Instruction) Category() opcode.Category {
	return i.Operation().Category()
}

// IsControl reports whether this instruction is a control-flow transfer.
func (i Instruction) IsControl() bool {
	return i.Operation().IsControl()
}

// ArgumentSize returns the width, in bytes, of this instruction's
// operand, resolving ImmediateM/ImmediateX against EntryState.
func (i Instruction) ArgumentSize() int {
	mode := i.Mode()
	if w, ok := mode.StaticWidth(); ok {
		return w
	}
	switch mode {
	case opcode.ImmediateM:
		return i.EntryState.SizeA()
	case opcode.ImmediateX:
		return i.EntryState.SizeX()
	default:
		return 0
	}
}

// Size returns the total instruction size in bytes: the opcode byte
// plus its argument.
func (i Instruction) Size() int {
	return 1 + i.ArgumentSize()
}

// NextPC returns the address immediately following this instruction.
func (i Instruction) NextPC() addr.PC {
	return i.PC.Add(i.Size())
}

// AbsoluteTarget computes the resolved absolute target address for
// this instruction, per the table in SPEC_FULL.md §4.3. It returns
// ok=false when the addressing mode does not yield a statically
// resolvable target (indirect modes, or Absolute on a non-control
// instruction).
func (i Instruction) AbsoluteTarget() (target addr.PC, ok bool) {
	switch i.Mode() {
	case opcode.ImmediateM, opcode.ImmediateX, opcode.Immediate8, opcode.AbsoluteLong:
		return addr.PC(i.Argument).Mask(), true
	case opcode.Absolute:
		if !i.IsControl() {
			return 0, false
		}
		return (i.PC & 0xFF0000) | addr.PC(i.Argument&0xFFFF), true
	case opcode.Relative:
		disp := addr.SignExtend8(byte(i.Argument))
		return i.PC.Add(i.Size()).Add(int(disp)), true
	case opcode.RelativeLong:
		disp := addr.SignExtend16(uint16(i.Argument))
		return i.PC.Add(i.Size()).Add(int(disp)), true
	default:
		return 0, false
	}
}

// Key uniquely identifies an Instruction for deduplication purposes:
// its PC, owning subroutine PC, and the P byte of its entry state.
type Key struct {
	PC           addr.PC
	SubroutinePC addr.PC
	P            byte
}

// Key returns the deduplication key for this instruction.
func (i Instruction) Key() Key {
	return Key{PC: i.PC, SubroutinePC: i.SubroutinePC, P: i.EntryState.P}
}

// String renders a debug form of the instruction, used by tests and
// logging; the symbolic listing renderer (package render) produces the
// user-facing assembly text.
func (i Instruction) String() string {
	return fmt.Sprintf("%06X: %s (mode=%d, size=%d)", i.PC, i.Operation(), i.Mode(), i.Size())
}
