// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subroutine implements the per-subroutine aggregate the
// analysis builds up as the symbolic executor discovers code: its
// member instructions, and the known/unknown state-change summaries
// recorded at each of its exit points.
package subroutine

import (
	"sort"

	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/opcode"
)

// Subroutine aggregates the instructions reachable from a single entry
// PC without crossing into another subroutine's entry point.
type Subroutine struct {
	PC           addr.PC // entry point; must equal the map key in Analysis
	Label        string
	IsEntryPoint bool

	members map[addr.PC]instruction.Instruction
	known   map[addr.PC]cpustate.StateChange // fully-resolved exits
	unknown map[addr.PC]cpustate.StateChange // unresolved exits

	// incipit tracks whether the very first instruction observed, prior
	// to any SEP/REP or control transfer, was a PHP.
	incipitSet bool
	incipitPHP bool
}

// New creates an empty subroutine rooted at pc.
func New(pc addr.PC, label string, isEntryPoint bool) *Subroutine {
	return &Subroutine{
		PC:           pc,
		Label:        label,
		IsEntryPoint: isEntryPoint,
		members:      make(map[addr.PC]instruction.Instruction),
		known:        make(map[addr.PC]cpustate.StateChange),
		unknown:      make(map[addr.PC]cpustate.StateChange),
	}
}

// AddMember records instr as belonging to this subroutine. It also
// updates the savesStateInIncipit tracking the first instruction seen.
func (s *Subroutine) AddMember(instr instruction.Instruction) {
	s.members[instr.PC] = instr
	if !s.incipitSet {
		s.incipitSet = true
		s.incipitPHP = instr.Operation() == opcode.PHP
	}
}

// Member looks up a member instruction by PC.
func (s *Subroutine) Member(pc addr.PC) (instruction.Instruction, bool) {
	i, ok := s.members[pc]
	return i, ok
}

// Members returns the subroutine's instructions in ascending PC order.
func (s *Subroutine) Members() []instruction.Instruction {
	out := make([]instruction.Instruction, 0, len(s.members))
	for _, i := range s.members {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PC < out[j].PC })
	return out
}

// Size returns the number of member instructions.
func (s *Subroutine) Size() int {
	return len(s.members)
}

// SetKnownChange records a fully-resolved state change at the
// terminating instruction pc.
func (s *Subroutine) SetKnownChange(pc addr.PC, change cpustate.StateChange) {
	s.known[pc] = change
}

// SetUnknownChange records an unresolved state change at the
// terminating instruction pc.
func (s *Subroutine) SetUnknownChange(pc addr.PC, change cpustate.StateChange) {
	s.unknown[pc] = change
}

// KnownChanges returns the map of terminating PC to fully-resolved
// state change.
func (s *Subroutine) KnownChanges() map[addr.PC]cpustate.StateChange {
	return s.known
}

// UnknownChanges returns the map of terminating PC to unresolved state
// change.
func (s *Subroutine) UnknownChanges() map[addr.PC]cpustate.StateChange {
	return s.unknown
}

// SavesStateInIncipit reports whether the first instruction seen in
// this subroutine, before any SEP/REP or control transfer, was PHP.
func (s *Subroutine) SavesStateInIncipit() bool {
	return s.incipitSet && s.incipitPHP
}

// SimplifiedStateChanges returns the set of known state changes with
// any flag whose value equals the caller's current state elided. This
// is how a caller decides whether a callee's effect is observationally
// null.
func (s *Subroutine) SimplifiedStateChanges(caller cpustate.State) []cpustate.StateChange {
	out := make([]cpustate.StateChange, 0, len(s.known))
	for _, ch := range s.known {
		out = append(out, ch.Simplify(caller))
	}
	return out
}

// IsResponsibleForUnknown reports whether any of this subroutine's
// unknown changes has a reason other than the generic transitive
// Unknown, meaning the problem originates here rather than in a callee.
func (s *Subroutine) IsResponsibleForUnknown() bool {
	for _, ch := range s.unknown {
		if ch.Reason != cpustate.Unknown {
			return true
		}
	}
	return false
}

// unknownPrecedence orders reasons from most specific (shown first) to
// most generic/transitive, mirroring how the original gilgamesh
// implementation prioritizes a subroutine's displayed unknown reason
// when more than one unresolved exit exists.
var unknownPrecedence = map[cpustate.UnknownReason]int{
	cpustate.StackManipulation:    0,
	cpustate.IndirectJump:         1,
	cpustate.MutableCode:          2,
	cpustate.SuspectInstruction:   3,
	cpustate.Recursion:            4,
	cpustate.MultipleReturnStates: 5,
	cpustate.Unknown:              6,
}

// PrimaryUnknownReason returns the most specific UnknownReason among
// this subroutine's unresolved exits, for use in the renderer's
// trailing comment. The second value is false if the subroutine has no
// unresolved exits.
func (s *Subroutine) PrimaryUnknownReason() (cpustate.UnknownReason, bool) {
	best := cpustate.UnknownReason(-1)
	bestRank := len(unknownPrecedence) + 1
	found := false
	for _, ch := range s.unknown {
		if !ch.IsUnknown() {
			continue
		}
		rank, ok := unknownPrecedence[ch.Reason]
		if !ok {
			rank = len(unknownPrecedence)
		}
		if rank < bestRank {
			bestRank = rank
			best = ch.Reason
			found = true
		}
	}
	return best, found
}
