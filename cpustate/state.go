// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpustate models the 65816 processor status register and the
// partial, possibly-unknown changes a subroutine makes to it. Only the
// M (accumulator width) and X (index width) bits matter to the analysis;
// the remaining flags are tracked for completeness but never drive a
// branch in the engine.
package cpustate

// Flag is a single bit of the 65816 status register P.
type Flag byte

// Status register bits, in their real hardware bit positions.
const (
	FlagC Flag = 1 << 0 // Carry
	FlagZ Flag = 1 << 1 // Zero
	FlagI Flag = 1 << 2 // IRQ disable
	FlagD Flag = 1 << 3 // Decimal mode
	FlagX Flag = 1 << 4 // Index register width (1 = 8-bit)
	FlagM Flag = 1 << 5 // Accumulator/memory width (1 = 8-bit)
	FlagV Flag = 1 << 6 // Overflow
	FlagN Flag = 1 << 7 // Negative
)

// State is the 8-bit processor status register P.
type State struct {
	P byte
}

// Reset is the processor state immediately after a hardware reset:
// native mode, 8-bit accumulator and index registers.
func Reset() State {
	return State{P: byte(FlagM | FlagX)}
}

// M reports whether the accumulator/memory width flag is set (8-bit).
func (s State) M() bool {
	return s.P&byte(FlagM) != 0
}

// X reports whether the index register width flag is set (8-bit).
func (s State) X() bool {
	return s.P&byte(FlagX) != 0
}

// SizeA returns the byte width of an accumulator-sized operand.
func (s State) SizeA() int {
	if s.M() {
		return 1
	}
	return 2
}

// SizeX returns the byte width of an index-register-sized operand.
func (s State) SizeX() int {
	if s.X() {
		return 1
	}
	return 2
}

// WithSEP returns the state that results from executing SEP with the
// given mask: every bit set in mask is set in P.
func (s State) WithSEP(mask byte) State {
	return State{P: s.P | mask}
}

// WithREP returns the state that results from executing REP with the
// given mask: every bit set in mask is cleared in P.
func (s State) WithREP(mask byte) State {
	return State{P: s.P &^ mask}
}
