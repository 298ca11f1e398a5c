// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// writeTestROM builds a minimal 32KB LoROM image: two NOPs followed by
// an RTS at bus address $8000, with both the reset and NMI vectors
// pointing at it.
func writeTestROM(t *testing.T) string {
	t.Helper()

	data := make([]byte, 0x8000)
	data[0] = 0xEA // nop
	data[1] = 0xEA // nop
	data[2] = 0x60 // rts

	data[0x7FFC] = 0x00 // reset vector -> $8000
	data[0x7FFD] = 0x80
	data[0x7FEA] = 0x00 // nmi vector -> $8000
	data[0x7FEB] = 0x80

	f, err := os.CreateTemp(t.TempDir(), "*.sfc")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func runScript(t *testing.T, script string) string {
	t.Helper()
	h := New()
	var out bytes.Buffer
	h.RunCommands(strings.NewReader(script), &out, false)
	return out.String()
}

func TestRunCommandsLoadsAndDisassemblesROM(t *testing.T) {
	path := writeTestROM(t)
	out := runScript(t, "rom load "+path+"\nrun\ndisassemble\n")

	if !strings.Contains(out, "nop") {
		t.Errorf("expected disassembly to contain 'nop', got:\n%s", out)
	}
	if !strings.Contains(out, "rts") {
		t.Errorf("expected disassembly to contain 'rts', got:\n%s", out)
	}
	if !strings.Contains(out, "$008000") {
		t.Errorf("expected disassembly to show the $008000 PC column, got:\n%s", out)
	}
}

func TestRunCommandsWithoutROMRefusesAnalysisCommands(t *testing.T) {
	out := runScript(t, "run\n")
	if !strings.Contains(out, "No ROM loaded") {
		t.Errorf("expected a no-ROM message, got:\n%s", out)
	}
}

func TestCommentSetAppearsInDisassembly(t *testing.T) {
	path := writeTestROM(t)
	out := runScript(t, "rom load "+path+"\nrun\ncomment set $8000 entry point\ndisassemble\n")

	if !strings.Contains(out, "entry point") {
		t.Errorf("expected user comment in disassembly, got:\n%s", out)
	}
}

func TestLabelSetOverridesSubroutineLabel(t *testing.T) {
	path := writeTestROM(t)
	out := runScript(t, "rom load "+path+"\nlabel set $8000 start\nrun\ndisassemble\n")

	if !strings.Contains(out, "start:") {
		t.Errorf("expected overridden label 'start:' in disassembly, got:\n%s", out)
	}
}

func TestSetTogglesUnknownReasonAnnotation(t *testing.T) {
	out := runScript(t, "set showunknownreasons 0\nset\n")
	if !strings.Contains(out, "ShowUnknownReasons") {
		t.Errorf("expected 'set' with no args to list the variable, got:\n%s", out)
	}
}

func TestHelpListsTopLevelCommands(t *testing.T) {
	out := runScript(t, "help\n")
	if !strings.Contains(out, "disassemble") {
		t.Errorf("expected help output to mention 'disassemble', got:\n%s", out)
	}
}

func TestQuitStopsTheCommandLoop(t *testing.T) {
	out := runScript(t, "rom load does-not-exist\nquit\nrun\n")
	if strings.Contains(out, "Analysis complete") {
		t.Errorf("expected quit to stop processing before 'run', got:\n%s", out)
	}
}
