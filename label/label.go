// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package label implements the second analysis pass that assigns
// local labels to every referenced instruction that is not itself a
// subroutine entry point, and the qualification rules the renderer
// uses to print a reference's label in operand position.
package label

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/analysis"
)

// Resolve walks every recorded reference and assigns a loc_XXXXXX
// local label to each target that is not a subroutine entry, unless
// the instruction already carries a user-supplied or previously
// assigned label. User overrides set with Analysis.SetLabel always
// take precedence over the generated loc_XXXXXX/sub_XXXXXX scheme.
func Resolve(a *analysis.Analysis) {
	for _, sub := range a.Subroutines() {
		if name, ok := a.UserLabel(sub.PC); ok {
			sub.Label = name
		}
	}

	seen := make(map[addr.PC]bool)
	for _, ref := range a.AllReferences() {
		target := ref.Target
		if seen[target] || a.IsSubroutineEntry(target) {
			continue
		}
		seen[target] = true
		assignLocalLabel(a, target)
	}
}

// assignLocalLabel finds the instruction at pc within its owning
// subroutine and gives it a local label, preferring any user override.
func assignLocalLabel(a *analysis.Analysis, pc addr.PC) {
	if name, ok := a.UserLabel(pc); ok {
		setLocalLabel(a, pc, name)
		return
	}
	setLocalLabel(a, pc, "loc_"+hex6(pc))
}

func setLocalLabel(a *analysis.Analysis, pc addr.PC, name string) {
	// InstructionsAt returns the Analysis's own slice, so writing through
	// it labels the stored instructions the renderer looks up.
	instrs := a.InstructionsAt(pc)
	for i := range instrs {
		instrs[i].LocalLabel = name
		if sub, ok := a.Subroutine(instrs[i].SubroutinePC); ok {
			if member, ok := sub.Member(pc); ok {
				member.LocalLabel = name
				// Subroutine.Member returns the stored instruction by
				// value; re-add it so the label sticks.
				sub.AddMember(member)
			}
		}
	}
}

// Qualify renders the label to use in operand position for a
// reference from within callerSub to a target carrying targetLabel
// within targetSub: the bare subroutine label for an inter-subroutine
// reference, the bare local label for an intra-subroutine reference,
// and "sub.local" when the target is a local label reached from
// outside its owning subroutine.
func Qualify(callerSubPC, targetSubPC addr.PC, targetSubLabel, targetLocalLabel string) string {
	switch {
	case targetLocalLabel == "":
		return targetSubLabel
	case callerSubPC == targetSubPC:
		return "." + targetLocalLabel
	default:
		return targetSubLabel + "." + targetLocalLabel
	}
}

const hexDigits = "0123456789ABCDEF"

func hex6(a addr.PC) string {
	v := uint32(a.Mask())
	buf := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf)
}
