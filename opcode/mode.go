// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opcode implements the static 65816 opcode table: the mapping
// from each of the 256 opcode bytes to an (Operation, AddressMode) pair,
// and from an AddressMode to its operand byte width.
package opcode

// Mode describes a 65816 memory addressing mode.
type Mode byte

// All addressing modes used by the 65816 instruction set.
const (
	Implied                     Mode = iota // no operand
	ImpliedAccumulator                      // operand is the accumulator itself
	ImmediateM                              // #$xx or #$xxxx, width tracks M
	ImmediateX                              // #$xx or #$xxxx, width tracks X
	Immediate8                              // #$xx, always 8-bit (SEP/REP/BRK/COP/WDM)
	Relative                                // $xx, 8-bit signed branch displacement
	RelativeLong                            // $xxxx, 16-bit signed displacement
	DirectPage                              // $xx
	DirectPageX                             // $xx,X
	DirectPageY                             // $xx,Y
	DirectPageIndirect                      // ($xx)
	DirectPageIndirectLong                  // [$xx]
	DirectPageIndirectX                     // ($xx,X)
	DirectPageIndirectY                     // ($xx),Y
	DirectPageIndirectLongY                 // [$xx],Y
	Absolute                                // $xxxx
	AbsoluteX                               // $xxxx,X
	AbsoluteY                               // $xxxx,Y
	AbsoluteLong                            // $xxxxxx
	AbsoluteLongX                           // $xxxxxx,X
	AbsoluteIndirect                        // ($xxxx)
	AbsoluteIndirectLong                    // [$xxxx]
	AbsoluteIndexedIndirect                 // ($xxxx,X)
	StackRelative                           // $xx,S
	StackRelativeIndirectIndexed            // ($xx,S),Y
	StackAbsolute                           // $xxxx (PEA)
	Move                                    // $hh,$ll (MVN/MVP)
)

// width maps a Mode to its fixed operand byte width. A width of -1
// means the width is state-dependent (ImmediateM/ImmediateX); callers
// must consult cpustate.State.SizeA/SizeX instead.
var width = map[Mode]int{
	Implied:                      0,
	ImpliedAccumulator:           0,
	ImmediateM:                   -1,
	ImmediateX:                   -1,
	Immediate8:                   1,
	Relative:                     1,
	RelativeLong:                 2,
	DirectPage:                   1,
	DirectPageX:                  1,
	DirectPageY:                  1,
	DirectPageIndirect:           1,
	DirectPageIndirectLong:       1,
	DirectPageIndirectX:          1,
	DirectPageIndirectY:          1,
	DirectPageIndirectLongY:      1,
	Absolute:                     2,
	AbsoluteX:                    2,
	AbsoluteY:                    2,
	AbsoluteLong:                 3,
	AbsoluteLongX:                3,
	AbsoluteIndirect:             2,
	AbsoluteIndirectLong:         2,
	AbsoluteIndexedIndirect:      2,
	StackRelative:                1,
	StackRelativeIndirectIndexed: 1,
	StackAbsolute:                2,
	Move:                         2,
}

// StaticWidth returns the mode's operand width, or (0, false) if the
// width depends on the processor state (ImmediateM/ImmediateX).
func (m Mode) StaticWidth() (n int, ok bool) {
	w, known := width[m]
	if !known || w < 0 {
		return 0, false
	}
	return w, true
}

// IsStateDependent reports whether the mode's operand width depends on
// the current M or X flag.
func (m Mode) IsStateDependent() bool {
	return m == ImmediateM || m == ImmediateX
}
