// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snesrom implements a bank-aware reader for SNES cartridge
// images: mapping-type classification from the ROM header, translation
// from 24-bit bus addresses to file offsets, and little-endian byte,
// word, and address reads.
package snesrom

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/snes816/addr"
)

// Mapping identifies the cartridge's bus-to-file address translation.
type Mapping int

// All supported cartridge mapping types.
const (
	LoROM Mapping = iota
	HiROM
	ExLoROM
	ExHiROM
	SDD1
)

func (m Mapping) String() string {
	switch m {
	case LoROM:
		return "LoROM"
	case HiROM:
		return "HiROM"
	case ExLoROM:
		return "ExLoROM"
	case ExHiROM:
		return "ExHiROM"
	case SDD1:
		return "SDD1"
	default:
		return "unknown"
	}
}

// ROM is a loaded cartridge image together with its detected mapping.
type ROM struct {
	data    []byte
	Mapping Mapping
	Title   string
}

// Load reads the file at path and classifies its cartridge mapping.
func Load(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// New classifies the mapping type of a raw cartridge image and returns
// a ROM ready for bank-aware reads.
func New(data []byte) *ROM {
	r := &ROM{data: data}
	r.Mapping = classify(data)
	r.Title = readTitle(data, r.Mapping)
	return r
}

// headerOffset for LoROM (0x7FC0) and HiROM (0xFFC0) candidate title
// positions, per the ROM header layout.
const (
	loROMHeader = 0x7FC0
	hiROMHeader = 0xFFC0
	titleLen    = 21
	markupOff   = 0x15 // offset of the markup byte within the header
)

// classify scores the LoROM and HiROM candidate title regions and
// picks the winner, then refines the subtype from the markup byte.
func classify(data []byte) Mapping {
	if len(data) <= 0x8000 {
		return LoROM
	}

	loScore := titleScore(data, loROMHeader)
	hiScore := titleScore(data, hiROMHeader)

	base := LoROM
	headerAt := loROMHeader
	if hiScore > loScore {
		base = HiROM
		headerAt = hiROMHeader
	}

	markup := byteAt(data, headerAt+markupOff)
	switch {
	case markup == 0x32:
		return SDD1
	case base == LoROM && markup&0x02 != 0:
		return ExLoROM
	case base == HiROM && markup&0x04 != 0:
		return ExHiROM
	default:
		return base
	}
}

// titleScore scores the 21-byte title region starting at off: a NUL
// byte scores +1, a printable ASCII byte scores +2, and any other byte
// disqualifies the whole candidate (score 0).
func titleScore(data []byte, off int) int {
	score := 0
	for i := 0; i < titleLen; i++ {
		c := byteAt(data, off+i)
		switch {
		case c == 0:
			score++
		case c >= 0x20 && c < 0x7F:
			score += 2
		default:
			return 0
		}
	}
	return score
}

func readTitle(data []byte, m Mapping) string {
	off := loROMHeader
	if m == HiROM || m == ExHiROM {
		off = hiROMHeader
	}
	b := make([]byte, 0, titleLen)
	for i := 0; i < titleLen; i++ {
		c := byteAt(data, off+i)
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

func byteAt(data []byte, off int) byte {
	if off < 0 || off >= len(data) {
		return 0
	}
	return data[off]
}

// Translate converts a 24-bit bus address into a file offset according
// to the ROM's detected mapping.
func (r *ROM) Translate(a addr.PC) int {
	a = a.Mask()
	switch r.Mapping {
	case LoROM:
		return translateLoROM(a)
	case HiROM:
		return translateHiROM(a)
	case ExLoROM:
		off := translateLoROM(a)
		if a&0x800000 == 0 {
			off += 0x400000
		}
		return off
	case ExHiROM:
		off := int(a & 0x3FFFFF)
		if a < 0xC00000 {
			off |= 0x400000
		}
		return off
	case SDD1:
		if a < 0xC00000 {
			return translateLoROM(a)
		}
		return translateHiROM(a)
	default:
		return translateLoROM(a)
	}
}

func translateLoROM(a addr.PC) int {
	return int(((a & 0x7F0000) >> 1) | (a & 0x7FFF))
}

func translateHiROM(a addr.PC) int {
	return int(a & 0x3FFFFF)
}

// IsRAM reports whether a is mapped to RAM rather than ROM: the
// zero-page/low-RAM mirror in bank 0, or WRAM in banks 0x7E-0x7F.
func IsRAM(a addr.PC) bool {
	a = a.Mask()
	return a <= 0x001FFF || (a >= 0x7E0000 && a <= 0x7FFFFF)
}

// ReadByte reads a single byte at bus address a.
func (r *ROM) ReadByte(a addr.PC) byte {
	off := r.Translate(a)
	if off < 0 || off >= len(r.data) {
		return 0
	}
	return r.data[off]
}

// ReadWord reads a little-endian 16-bit word at bus address a.
func (r *ROM) ReadWord(a addr.PC) uint16 {
	lo := r.ReadByte(a)
	hi := r.ReadByte(a.Add(1))
	return uint16(lo) | uint16(hi)<<8
}

// ReadAddress reads a little-endian 24-bit address at bus address a.
func (r *ROM) ReadAddress(a addr.PC) addr.PC {
	lo := r.ReadByte(a)
	mid := r.ReadByte(a.Add(1))
	hi := r.ReadByte(a.Add(2))
	return addr.PC(lo) | addr.PC(mid)<<8 | addr.PC(hi)<<16
}

// Vector addresses in the fixed interrupt vector table.
const (
	nmiVectorAddr   = 0xFFEA
	resetVectorAddr = 0xFFFC
)

// ResetVector returns the bus address stored at the reset vector,
// within bank 0.
func (r *ROM) ResetVector() addr.PC {
	return addr.PC(r.ReadWord(resetVectorAddr))
}

// NMIVector returns the bus address stored at the NMI vector, within
// bank 0.
func (r *ROM) NMIVector() addr.PC {
	return addr.PC(r.ReadWord(nmiVectorAddr))
}

// Size returns the number of bytes in the underlying image.
func (r *ROM) Size() int {
	return len(r.data)
}

func (r *ROM) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", r.Title, r.Mapping, len(r.data))
}
