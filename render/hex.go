package render

import "github.com/beevik/snes816/addr"

const hexDigits = "0123456789ABCDEF"

// hexN renders v as exactly n uppercase hex digits, truncating any bits
// beyond the requested width.
func hexN(v uint32, n int) string {
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf)
}

// hex6 renders pc as a fixed 6-digit hex address, the PC column width
// used throughout the disassembly listing.
func hex6(pc addr.PC) string {
	return hexN(uint32(pc.Mask()), 6)
}
