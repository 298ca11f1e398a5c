package engine

import "github.com/beevik/snes816/addr"

const hexDigits = "0123456789ABCDEF"

// hex6 renders a as 6 uppercase hex digits, the format used by the
// default sub_XXXXXX/loc_XXXXXX label schemes.
func hex6(a addr.PC) string {
	v := uint32(a.Mask())
	buf := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf)
}
