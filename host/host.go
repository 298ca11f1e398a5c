// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host wraps an Analysis and a loaded ROM in an interactive
// command shell: load a ROM, run the symbolic executor, inspect and
// correct what it found with assertions, jump tables, and labels, and
// print the resulting disassembly. It is the scripted/interactive
// surface described in SPEC_FULL.md §4.10, grounded on the teacher's
// command-driven Host.
package host

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/engine"
	"github.com/beevik/snes816/snesrom"
)

// Host holds the loaded ROM and its Analysis, and dispatches commands
// read from an input stream against them.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool

	rom      *snesrom.ROM
	analysis *analysis.Analysis
	settings *settings
	lastCmd  *cmd.Selection
}

// New creates a host with no ROM loaded; "rom load" must run before
// any command that touches the Analysis.
func New() *Host {
	return &Host{settings: newSettings()}
}

// RunCommands accepts host commands from r and writes results to w. If
// interactive, a prompt is displayed while the host waits for the next
// command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var sel cmd.Selection
		if line != "" {
			sel, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			sel = *h.lastCmd
		}

		if sel.Command == nil {
			continue
		}
		h.lastCmd = &sel

		handler := sel.Command.Data.(func(*Host, cmd.Selection) error)
		if err := handler(h, sel); err != nil {
			break
		}
	}
}

func (h *Host) requireROM() bool {
	if h.rom == nil {
		h.println("No ROM loaded. Use \"rom load <path>\" first.")
		return false
	}
	return true
}

func (h *Host) resolveIdentifier(name string) (int64, bool) {
	if h.analysis == nil {
		return 0, false
	}
	for _, sub := range h.analysis.Subroutines() {
		if sub.Label == name {
			return int64(sub.PC), true
		}
		for _, instr := range sub.Members() {
			if instr.LocalLabel == name {
				return int64(instr.PC), true
			}
		}
	}
	return 0, false
}

func (h *Host) parseAddr(s string) (uint32, error) {
	p := newExprParser(h.resolveIdentifier)
	v, err := p.Parse(s)
	if err != nil {
		return 0, err
	}
	return uint32(v) & 0xFFFFFF, nil
}

func (h *Host) print(args ...interface{}) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...interface{}) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayHelpText(c *cmd.Command) {
	if c.HelpText != "" {
		h.printf("Syntax: %s\n", c.HelpText)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(commands *cmd.Tree) {
	h.printf("%s commands:\n", commands.Title)
	for _, c := range commands.Commands {
		if c.Brief != "" {
			h.printf("    %-20s  %s\n", c.Name, c.Brief)
		}
	}
}

func (h *Host) runAnalysis() {
	engine.Run(h.analysis, h.rom)
}

func (h *Host) printDisassembly(lines []string) {
	for _, l := range lines {
		if !h.settings.ShowUnknownReasons {
			if i := strings.Index(l, " | "); i >= 0 {
				l = l[:i]
			}
		}
		h.println(l)
	}
}
