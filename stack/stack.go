// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stack implements the abstract stack used by the symbolic
// executor to track, per byte, which instruction pushed it and to
// recover PHP/PLP state pairings. A slot holds either an Unknown byte,
// a known byte value (compared by MatchValue), or a PHP state pair.
package stack

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/cpustate"
)

// Pusher identifies the instruction that pushed a stack byte.
type Pusher struct {
	PC           addr.PC
	SubroutinePC addr.PC
	Op           string // mnemonic, for diagnostics only
}

// kind tags which shape an Entry's data holds.
type kind int

const (
	kindEmpty kind = iota
	kindUnknown
	kindByte
	kindStatePair
)

// Entry is one slot of the abstract stack.
type Entry struct {
	kind   kind
	pusher *Pusher
	value  byte
	state  cpustate.State
	change cpustate.StateChange
}

// HasPusher reports whether the entry records the instruction that
// pushed it.
func (e Entry) HasPusher() bool {
	return e.pusher != nil
}

// Pusher returns the instruction that pushed this entry, if known.
func (e Entry) Pusher() (Pusher, bool) {
	if e.pusher == nil {
		return Pusher{}, false
	}
	return *e.pusher, true
}

// IsByte reports whether the entry holds a known byte value.
func (e Entry) IsByte() bool {
	return e.kind == kindByte
}

// Byte returns the entry's byte value, if IsByte is true.
func (e Entry) Byte() byte {
	return e.value
}

// IsStatePair reports whether the entry holds a PHP-pushed state pair.
func (e Entry) IsStatePair() bool {
	return e.kind == kindStatePair
}

// StatePair returns the entry's pushed state and state change, if
// IsStatePair is true.
func (e Entry) StatePair() (cpustate.State, cpustate.StateChange) {
	return e.state, e.change
}

// Stack is a symbolic model of the 65816 hardware stack. The pointer
// starts at 0x100 and wraps as a 16-bit quantity, mirroring the real
// stack register's behavior in emulation mode and matching the
// analysis's assumption of a single, unbanked 64K stack.
type Stack struct {
	sp      uint16
	slots   map[uint16]Entry
	lastTXS *Pusher // last instruction that explicitly wrote SP (TCS/TXS)
}

// New creates an abstract stack with the pointer at its reset position.
func New() *Stack {
	return &Stack{sp: 0x100, slots: make(map[uint16]Entry)}
}

// SP returns the current stack pointer.
func (s *Stack) SP() uint16 {
	return s.sp
}

// Clone returns a deep copy of the stack, used when the executor forks
// into independent branches.
func (s *Stack) Clone() *Stack {
	c := &Stack{sp: s.sp, slots: make(map[uint16]Entry, len(s.slots)), lastTXS: s.lastTXS}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	return c
}

// NoteStackPointerWrite records that pusher explicitly set the stack
// pointer (TCS/TXS), for diagnostic use only; it is never consulted by
// the engine to alter analysis decisions.
func (s *Stack) NoteStackPointerWrite(p Pusher) {
	s.lastTXS = &p
}

// LastStackPointerWrite returns the last instruction that explicitly
// wrote the stack pointer, if any.
func (s *Stack) LastStackPointerWrite() (Pusher, bool) {
	if s.lastTXS == nil {
		return Pusher{}, false
	}
	return *s.lastTXS, true
}

func (s *Stack) pushEntry(e Entry) {
	s.slots[s.sp] = e
	s.sp--
}

// pushByteValue pushes a single byte: the known value v if has is
// true, or an Unknown byte otherwise.
func (s *Stack) pushByteValue(v byte, has bool, p *Pusher) {
	e := Entry{pusher: p}
	if has {
		e.kind = kindByte
		e.value = v
	} else {
		e.kind = kindUnknown
	}
	s.pushEntry(e)
}

// Push writes size bytes of data onto the stack, high byte first (so
// that popping in order yields the low byte first, matching hardware
// push/pop order). When value is nil each byte pushed is Unknown.
func (s *Stack) Push(size int, value []byte, p Pusher) {
	for i := size - 1; i >= 0; i-- {
		if value == nil {
			s.pushByteValue(0, false, &p)
		} else {
			s.pushByteValue(value[i], true, &p)
		}
	}
}

// PushOne pushes a single byte of data (or Unknown if !has).
func (s *Stack) PushOne(v byte, has bool, p Pusher) {
	s.pushByteValue(v, has, &p)
}

// PushState pushes a single PHP-shaped state-pair entry.
func (s *Stack) PushState(state cpustate.State, change cpustate.StateChange, p Pusher) {
	s.pushEntry(Entry{kind: kindStatePair, pusher: &p, state: state, change: change})
}

// PopOne increments the pointer and returns the slot there, or an
// empty Entry if nothing was ever pushed to that slot.
func (s *Stack) PopOne() Entry {
	s.sp++
	e, ok := s.slots[s.sp]
	if !ok {
		return Entry{kind: kindEmpty}
	}
	delete(s.slots, s.sp)
	return e
}

// Pop pops n entries off the stack, in pop order (first popped is the
// entry closest to the current top).
func (s *Stack) Pop(n int) []Entry {
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = s.PopOne()
	}
	return out
}

// Peek returns the top n entries without removing them, in the same
// order Pop would return them.
func (s *Stack) Peek(n int) []Entry {
	out := make([]Entry, n)
	sp := s.sp
	for i := 0; i < n; i++ {
		sp++
		if e, ok := s.slots[sp]; ok {
			out[i] = e
		} else {
			out[i] = Entry{kind: kindEmpty}
		}
	}
	return out
}

// MatchValue reports whether the top size entries are all known bytes
// whose little-endian value equals value, without popping them.
func (s *Stack) MatchValue(size int, value uint32) bool {
	entries := s.Peek(size)
	for i, e := range entries {
		if !e.IsByte() {
			return false
		}
		want := byte(value >> (8 * i))
		if e.Byte() != want {
			return false
		}
	}
	return true
}
