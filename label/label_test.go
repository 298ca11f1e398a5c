package label_test

import (
	"testing"

	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/cpustate"
	"github.com/beevik/snes816/instruction"
	"github.com/beevik/snes816/label"
	"github.com/beevik/snes816/snesrom"
)

func newTestROM() *snesrom.ROM {
	data := make([]byte, 0x8000)
	data[0x7FFC], data[0x7FFD] = 0x00, 0x80
	data[0x7FEA], data[0x7FEB] = 0x34, 0x81
	return snesrom.New(data)
}

func TestResolveAssignsLocalLabelToNonEntryTarget(t *testing.T) {
	a := analysis.New(newTestROM())
	sub := a.EnsureSubroutine(0x8000, "sub_008000", true)
	sub.AddMember(instruction.New(0x8010, 0x8000, 0xEA, 0, cpustate.Reset()))
	a.AddInstruction(instruction.New(0x8010, 0x8000, 0xEA, 0, cpustate.Reset()))
	a.AddReference(analysis.Reference{Source: 0x8000, Target: 0x8010, SubroutinePC: 0x8000})

	label.Resolve(a)

	instrs := a.InstructionsAt(0x8010)
	if len(instrs) != 1 || instrs[0].LocalLabel != "loc_008010" {
		t.Errorf("expected loc_008010, got %+v", instrs)
	}
}

func TestResolveSkipsSubroutineEntryTargets(t *testing.T) {
	a := analysis.New(newTestROM())
	a.EnsureSubroutine(0x8000, "sub_008000", true)
	a.EnsureSubroutine(0x8100, "sub_008100", false)
	a.AddInstruction(instruction.New(0x8100, 0x8100, 0xEA, 0, cpustate.Reset()))
	a.AddReference(analysis.Reference{Source: 0x8000, Target: 0x8100, SubroutinePC: 0x8000})

	label.Resolve(a)

	instrs := a.InstructionsAt(0x8100)
	if len(instrs) != 1 || instrs[0].LocalLabel != "" {
		t.Errorf("subroutine entry targets should not receive a local label, got %q", instrs[0].LocalLabel)
	}
}

func TestResolveHonorsUserLabelOverride(t *testing.T) {
	a := analysis.New(newTestROM())
	sub := a.EnsureSubroutine(0x8000, "sub_008000", true)
	sub.AddMember(instruction.New(0x8010, 0x8000, 0xEA, 0, cpustate.Reset()))
	a.AddInstruction(instruction.New(0x8010, 0x8000, 0xEA, 0, cpustate.Reset()))
	a.AddReference(analysis.Reference{Source: 0x8000, Target: 0x8010, SubroutinePC: 0x8000})
	a.SetLabel(0x8010, "my_loop")

	label.Resolve(a)

	instrs := a.InstructionsAt(0x8010)
	if len(instrs) != 1 || instrs[0].LocalLabel != "my_loop" {
		t.Errorf("expected user override my_loop, got %+v", instrs)
	}
}

func TestQualify(t *testing.T) {
	if got := label.Qualify(0x8000, 0x9000, "sub_009000", ""); got != "sub_009000" {
		t.Errorf("expected bare subroutine label, got %q", got)
	}
	if got := label.Qualify(0x8000, 0x8000, "sub_008000", "loc_008010"); got != ".loc_008010" {
		t.Errorf("expected intra-subroutine dotted label, got %q", got)
	}
	if got := label.Qualify(0x8000, 0x9000, "sub_009000", "loc_009010"); got != "sub_009000.loc_009010" {
		t.Errorf("expected fully-qualified label, got %q", got)
	}
}
