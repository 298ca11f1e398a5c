// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render turns analyzed instructions and subroutines into the
// text disassembly listing described in SPEC_FULL.md §6, following the
// teacher's disasm.Disassemble pattern of a pure function from decoded
// data to a formatted line.
package render

import (
	"fmt"
	"strings"

	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/label"
	"github.com/beevik/snes816/opcode"
)

// Line renders a single instruction: mnemonic, operand, and a trailing
// "; $pc-hex" comment, plus any user comment or unknown-state-change
// annotation joined after a " | ".
func Line(a *analysis.Analysis, instr instruction.Instruction) string {
	body := instr.Operation().String()
	if operand := operandText(a, instr); operand != "" {
		body += " " + operand
	}
	line := fmt.Sprintf("  %-24s; $%s", body, hex6(instr.PC))
	if comment := trailingComment(a, instr); comment != "" {
		line += " | " + comment
	}
	return line
}

func operandText(a *analysis.Analysis, instr instruction.Instruction) string {
	switch instr.Mode() {
	case opcode.Implied:
		return ""
	case opcode.ImpliedAccumulator:
		return "a"
	case opcode.ImmediateM, opcode.ImmediateX, opcode.Immediate8:
		return "#$" + hexN(instr.Argument, instr.ArgumentSize()*2)
	case opcode.Move:
		return fmt.Sprintf("$%02X,$%02X", byte(instr.Argument&0xFF), byte(instr.Argument>>8))
	}

	if text, ok := controlTargetLabel(a, instr); ok {
		return text
	}

	tmpl, ok := operandTemplate[instr.Mode()]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tmpl, hexN(instr.Argument, instr.ArgumentSize()*2))
}

// controlTargetLabel resolves a branch/call/jump's statically known
// target to the label the Label Resolver assigned it: the subroutine's
// own label when the target is itself an entry point, or the qualified
// local label otherwise. It reports ok=false for indirect transfers
// (no static target) or a target the executor never reached.
func controlTargetLabel(a *analysis.Analysis, instr instruction.Instruction) (string, bool) {
	switch instr.Category() {
	case opcode.Branch, opcode.Call, opcode.Jump:
	default:
		return "", false
	}
	target, ok := instr.AbsoluteTarget()
	if !ok {
		return "", false
	}
	if sub, ok := a.Subroutine(target); ok {
		return sub.Label, true
	}
	for _, t := range a.InstructionsAt(target) {
		if t.LocalLabel == "" {
			continue
		}
		if sub, ok := a.Subroutine(t.SubroutinePC); ok {
			return label.Qualify(instr.SubroutinePC, t.SubroutinePC, sub.Label, t.LocalLabel), true
		}
	}
	return "", false
}

// reasonComment capitalizes an UnknownReason's description for display
// as a trailing comment, e.g. "Indirect jump".
func reasonComment(r cpustate.UnknownReason) string {
	s := r.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// trailingComment assembles the user comment (if any) and, when instr
// is the terminating point of an unresolved state change in its owning
// subroutine, the reason that change could not be resolved.
func trailingComment(a *analysis.Analysis, instr instruction.Instruction) string {
	var parts []string
	if c, ok := a.Comment(instr.PC); ok && c != "" {
		parts = append(parts, c)
	}
	if sub, ok := a.Subroutine(instr.SubroutinePC); ok {
		if ch, ok := sub.UnknownChanges()[instr.PC]; ok && ch.IsUnknown() {
			parts = append(parts, reasonComment(ch.Reason))
		}
	}
	return strings.Join(parts, "; ")
}
