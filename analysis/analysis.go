// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis holds the global repository built up by the
// symbolic executor: every discovered instruction, the subroutines
// that own them, the control-flow references between them, and all
// user-supplied overrides (entry points, assertions, jump tables,
// labels, comments) that survive a re-run.
package analysis

import (
	"sort"

	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/snesrom"
	"github.com/beevik/snes816/subroutine"
)

// EntryPoint names a fixed starting PC and processor state the
// executor should run from.
type EntryPoint struct {
	Label string
	PC    addr.PC
	State cpustate.State
}

// Analysis is the repository of everything known about a ROM: the
// derived control-flow data the executor produces, plus the
// user-supplied data that seeds and overrides it.
type Analysis struct {
	ROM *snesrom.ROM

	// Derived data, rebuilt wholesale by run(). Keyed by PC, an
	// instruction set may hold more than one Instruction when the same
	// address is reached under distinct subroutines or entry states.
	instructions map[addr.PC][]instruction.Instruction
	subroutines  map[addr.PC]*subroutine.Subroutine
	references   *referenceSet

	// User data, preserved across clear(). Jump tables live here, not
	// with the derived data above: once a user asserts a table's byte
	// range, that assertion must survive a re-run, even though the
	// table is first registered (Unknown) by the executor itself.
	entryPoints []EntryPoint
	comments    map[addr.PC]string
	labels      map[addr.PC]string
	assertions  map[assertionKey]Assertion
	jumpTables  map[addr.PC]*JumpTable
}

// assertionKey mirrors the (instruction-PC, subroutine-PC) keying the
// specification requires for assertion lookup.
type assertionKey struct {
	InstructionPC addr.PC
	SubroutinePC  addr.PC
}

// New creates an Analysis bound to rom, with the two standard ROM
// vector entry points already registered.
func New(rom *snesrom.ROM) *Analysis {
	a := &Analysis{
		ROM:        rom,
		comments:   make(map[addr.PC]string),
		labels:     make(map[addr.PC]string),
		assertions: make(map[assertionKey]Assertion),
		jumpTables: make(map[addr.PC]*JumpTable),
	}
	a.clearDerived()
	a.entryPoints = []EntryPoint{
		{Label: "reset", PC: rom.ResetVector(), State: cpustate.Reset()},
		{Label: "nmi", PC: rom.NMIVector(), State: cpustate.Reset()},
	}
	return a
}

func (a *Analysis) clearDerived() {
	a.instructions = make(map[addr.PC][]instruction.Instruction)
	a.subroutines = make(map[addr.PC]*subroutine.Subroutine)
	a.references = newReferenceSet()
}

// Clear wipes derived results (instructions, subroutines, references)
// while preserving user data: entry points, comments, labels,
// assertions, and jump tables.
func (a *Analysis) Clear() {
	a.clearDerived()
}

// AddEntryPoint registers an additional exploration root. Entry points
// seeded automatically from the ROM's reset/NMI vectors are always
// present; this adds to them.
func (a *Analysis) AddEntryPoint(ep EntryPoint) {
	a.entryPoints = append(a.entryPoints, ep)
}

// EntryPoints returns all registered entry points, in registration
// order.
func (a *Analysis) EntryPoints() []EntryPoint {
	return a.entryPoints
}

// AddInstruction records instr as having been decoded, returning
// false if an instruction with the same dedup Key already exists (the
// executor's cue to stop exploring this path — it has converged).
func (a *Analysis) AddInstruction(instr instruction.Instruction) bool {
	existing := a.instructions[instr.PC]
	for _, e := range existing {
		if e.Key() == instr.Key() {
			return false
		}
	}
	a.instructions[instr.PC] = append(existing, instr)
	if sub, ok := a.subroutines[instr.SubroutinePC]; ok {
		sub.AddMember(instr)
	}
	return true
}

// InstructionsAt returns every distinct Instruction decoded at pc.
func (a *Analysis) InstructionsAt(pc addr.PC) []instruction.Instruction {
	return a.instructions[pc]
}

// AllPCs returns every PC at which at least one instruction was
// decoded, in ascending order.
func (a *Analysis) AllPCs() []addr.PC {
	out := make([]addr.PC, 0, len(a.instructions))
	for pc := range a.instructions {
		out = append(out, pc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EnsureSubroutine returns the subroutine rooted at pc, creating it
// (with the given label and entry-point flag) if it does not already
// exist.
func (a *Analysis) EnsureSubroutine(pc addr.PC, label string, isEntryPoint bool) *subroutine.Subroutine {
	if sub, ok := a.subroutines[pc]; ok {
		return sub
	}
	sub := subroutine.New(pc, label, isEntryPoint)
	a.subroutines[pc] = sub
	return sub
}

// Subroutine looks up the subroutine rooted at pc.
func (a *Analysis) Subroutine(pc addr.PC) (*subroutine.Subroutine, bool) {
	sub, ok := a.subroutines[pc]
	return sub, ok
}

// Subroutines returns every known subroutine, sorted by ascending
// entry PC.
func (a *Analysis) Subroutines() []*subroutine.Subroutine {
	out := make([]*subroutine.Subroutine, 0, len(a.subroutines))
	for _, sub := range a.subroutines {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PC < out[j].PC })
	return out
}

// IsSubroutineEntry reports whether pc is the entry PC of a known
// subroutine.
func (a *Analysis) IsSubroutineEntry(pc addr.PC) bool {
	_, ok := a.subroutines[pc]
	return ok
}

// AddReference records a control-flow edge.
func (a *Analysis) AddReference(ref Reference) {
	a.references.add(ref)
}

// ReferencesTo returns every reference targeting pc.
func (a *Analysis) ReferencesTo(pc addr.PC) []Reference {
	return a.references.referencesTo(pc)
}

// AllReferences returns every recorded reference.
func (a *Analysis) AllReferences() []Reference {
	return a.references.all()
}

// SetJumpTable records a resolved or asserted jump table at pc.
func (a *Analysis) SetJumpTable(jt *JumpTable) {
	a.jumpTables[jt.PC] = jt
}

// JumpTableAt looks up the jump table, if any, at pc.
func (a *Analysis) JumpTableAt(pc addr.PC) (*JumpTable, bool) {
	jt, ok := a.jumpTables[pc]
	return jt, ok
}

// DefineJumpTable resolves the indirect jump at jumpPC against a
// user-supplied byte range [start,end] (relative to the jump
// instruction's own argument, which is taken as the table's base
// address within the jump's own bank): it walks the range in 2-byte
// steps, reading one word target per step, and stores the result as
// the jump table consulted by a later re-run of the executor at
// jumpPC. It reports false if no instruction has been decoded at
// jumpPC yet, so there is no argument to anchor the table to.
func (a *Analysis) DefineJumpTable(jumpPC addr.PC, start, end int) bool {
	instrs := a.instructions[jumpPC]
	if len(instrs) == 0 {
		return false
	}
	bank := addr.PC(jumpPC.Bank()) << 16
	base := bank | addr.PC(instrs[0].Argument)

	jt := NewJumpTable(jumpPC)
	jt.Start = base.Add(start)
	jt.End = base.Add(end)

	idx := 0
	complete := true
	for off := start; off <= end; off += 2 {
		slot := base.Add(off)
		if !snesROMHasOffset(a.ROM, slot) {
			complete = false
			continue
		}
		word := a.ROM.ReadWord(slot)
		jt.SetTarget(idx, bank|addr.PC(word))
		idx++
	}
	if complete {
		jt.Status = StatusComplete
	} else {
		jt.Status = StatusPartial
	}
	a.SetJumpTable(jt)
	return true
}

// snesROMHasOffset reports whether bus address a translates to a file
// offset actually present in rom, used to detect a byte range that
// runs past the end of the image.
func snesROMHasOffset(rom *snesrom.ROM, pc addr.PC) bool {
	off := rom.Translate(pc)
	return off >= 0 && off < rom.Size()
}

// SetComment stores a user comment at pc, overwriting any existing
// one. An empty text removes the comment.
func (a *Analysis) SetComment(pc addr.PC, text string) {
	if text == "" {
		delete(a.comments, pc)
		return
	}
	a.comments[pc] = text
}

// Comment returns the user comment at pc, if any.
func (a *Analysis) Comment(pc addr.PC) (string, bool) {
	c, ok := a.comments[pc]
	return c, ok
}

// SetLabel stores a user-supplied label at pc, overriding whatever
// the label resolver would otherwise generate there.
func (a *Analysis) SetLabel(pc addr.PC, name string) {
	if name == "" {
		delete(a.labels, pc)
		return
	}
	a.labels[pc] = name
}

// UserLabel returns the user-supplied label at pc, if any.
func (a *Analysis) UserLabel(pc addr.PC) (string, bool) {
	l, ok := a.labels[pc]
	return l, ok
}

// AddAssertion records as, keyed by (InstructionPC, SubroutinePC),
// replacing any prior assertion at the same key.
func (a *Analysis) AddAssertion(as Assertion) {
	a.assertions[assertionKey{as.InstructionPC, as.SubroutinePC}] = as
}

// Assertion looks up the user assertion, if any, for the given
// terminating instruction within the given subroutine.
func (a *Analysis) Assertion(instructionPC, subroutinePC addr.PC) (Assertion, bool) {
	as, ok := a.assertions[assertionKey{instructionPC, subroutinePC}]
	return as, ok
}
