// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package addr defines the 24-bit bus address type shared by every
// package in this module, along with the small set of helpers needed
// to take banks, offsets, and sign-extended branch displacements apart.
package addr

// PC is a 24-bit SNES bus address. It wraps at 0xFFFFFF.
type PC uint32

// Mask returns p truncated to 24 bits.
func (p PC) Mask() PC {
	return p & 0xFFFFFF
}

// Bank returns the top 8 bits of the address.
func (p PC) Bank() byte {
	return byte(p >> 16)
}

// Offset returns the bottom 16 bits of the address.
func (p PC) Offset() uint16 {
	return uint16(p)
}

// Add returns p+n, masked to 24 bits.
func (p PC) Add(n int) PC {
	return PC(int64(p) + int64(n)).Mask()
}

// SignExtend8 sign-extends an 8-bit value to a 32-bit signed integer.
func SignExtend8(v byte) int32 {
	return int32(int8(v))
}

// SignExtend16 sign-extends a 16-bit value to a 32-bit signed integer.
func SignExtend16(v uint16) int32 {
	return int32(int16(v))
}
