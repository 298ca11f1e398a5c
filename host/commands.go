// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/render"
	"github.com/beevik/snes816/snesrom"
)

func (h *Host) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		h.displayCommands(cmds)
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		switch {
		case s.Command.Subcommands != nil:
			h.displayCommands(s.Command.Subcommands)
		case s.Command.HelpText != "":
			h.printf("Syntax: %s\n\n%s\n", s.Command.HelpText, s.Command.Description)
		default:
			h.println(s.Command.Brief)
		}
	}
	return nil
}

func (h *Host) cmdROMLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	rom, err := snesrom.Load(c.Args[0])
	if err != nil {
		h.printf("Failed to load '%s': %v\n", c.Args[0], err)
		return nil
	}

	h.rom = rom
	h.analysis = analysis.New(rom)
	h.printf("Loaded '%s' (%s), title %q.\n", c.Args[0], rom.Mapping, rom.Title)
	return nil
}

func (h *Host) cmdEntryPointAdd(c cmd.Selection) error {
	if !h.requireROM() {
		return nil
	}
	if len(c.Args) < 2 {
		h.displayHelpText(c.Command)
		return nil
	}

	pc, err := h.parseAddr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	state := cpustate.Reset()
	if len(c.Args) >= 4 {
		m, err := parseFlag(c.Args[2])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		x, err := parseFlag(c.Args[3])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if m != nil && !*m {
			state = state.WithREP(byte(cpustate.FlagM))
		}
		if x != nil && !*x {
			state = state.WithREP(byte(cpustate.FlagX))
		}
	}

	h.analysis.AddEntryPoint(analysis.EntryPoint{
		Label: c.Args[0],
		PC:    addr.PC(pc),
		State: state,
	})
	h.printf("Entry point '%s' added at $%06X.\n", c.Args[0], pc)
	return nil
}

func (h *Host) cmdAssertInstruction(c cmd.Selection) error {
	return h.cmdAssert(c, analysis.InstructionScope)
}

func (h *Host) cmdAssertSubroutine(c cmd.Selection) error {
	return h.cmdAssert(c, analysis.SubroutineScope)
}

func (h *Host) cmdAssert(c cmd.Selection, scope analysis.AssertionScope) error {
	if !h.requireROM() {
		return nil
	}
	if len(c.Args) < 4 {
		h.displayHelpText(c.Command)
		return nil
	}

	pc, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	subPC, err := h.parseAddr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	m, err := parseFlag(c.Args[2])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	x, err := parseFlag(c.Args[3])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	change := cpustate.StateChange{M: m, X: x}
	h.analysis.AddAssertion(analysis.Assertion{
		InstructionPC: addr.PC(pc),
		SubroutinePC:  addr.PC(subPC),
		Scope:         scope,
		Change:        change,
	})
	h.printf("Assertion recorded at $%06X (subroutine $%06X).\n", pc, subPC)
	return nil
}

func (h *Host) cmdJumpTableDefine(c cmd.Selection) error {
	if !h.requireROM() {
		return nil
	}
	if len(c.Args) < 3 {
		h.displayHelpText(c.Command)
		return nil
	}

	pc, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	start, err := h.parseAddr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	end, err := h.parseAddr(c.Args[2])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if !h.analysis.DefineJumpTable(addr.PC(pc), int(start), int(end)) {
		h.printf("No instruction decoded at $%06X yet; run the analysis first.\n", pc)
		return nil
	}
	h.printf("Jump table at $%06X defined over [%d,%d].\n", pc, start, end)
	return nil
}

func (h *Host) cmdJumpTableList(c cmd.Selection) error {
	if !h.requireROM() {
		return nil
	}
	for _, pc := range h.analysis.AllPCs() {
		jt, ok := h.analysis.JumpTableAt(addr.PC(pc))
		if !ok {
			continue
		}
		h.printf("$%06X: status=%v targets=%d\n", pc, jt.Status, jt.Len())
	}
	return nil
}

func (h *Host) cmdLabelSet(c cmd.Selection) error {
	if !h.requireROM() {
		return nil
	}
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	pc, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	name := ""
	if len(c.Args) >= 2 {
		name = strings.Join(c.Args[1:], " ")
	}
	h.analysis.SetLabel(addr.PC(pc), name)
	h.printf("Label at $%06X set to %q.\n", pc, name)
	return nil
}

func (h *Host) cmdCommentSet(c cmd.Selection) error {
	if !h.requireROM() {
		return nil
	}
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	pc, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	text := ""
	if len(c.Args) >= 2 {
		text = strings.Join(c.Args[1:], " ")
	}
	h.analysis.SetComment(addr.PC(pc), text)
	h.printf("Comment at $%06X set to %q.\n", pc, text)
	return nil
}

func (h *Host) cmdRun(c cmd.Selection) error {
	if !h.requireROM() {
		return nil
	}
	h.runAnalysis()
	h.printf("Analysis complete: %d subroutines, %d instructions.\n",
		len(h.analysis.Subroutines()), len(h.analysis.AllPCs()))
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if !h.requireROM() {
		return nil
	}

	if len(c.Args) == 0 {
		h.printDisassembly(render.All(h.analysis))
		return nil
	}

	pc, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	instrs := h.analysis.InstructionsAt(addr.PC(pc))
	if len(instrs) == 0 {
		h.printf("No instruction decoded at $%06X.\n", pc)
		return nil
	}
	sub, ok := h.analysis.Subroutine(instrs[0].SubroutinePC)
	if !ok {
		h.printf("No subroutine owns $%06X.\n", pc)
		return nil
	}
	h.printDisassembly(render.Subroutine(h.analysis, sub))
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayHelpText(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = errors.New("setting '" + key + "' not found")
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			err = h.settings.Set(key, value)
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}
	}
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errors.New("exiting program")
}
