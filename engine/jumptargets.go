package engine

import (
	"github.com/beevik/snes816/addr"
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/instruction"
)

// computeJumpTargets resolves the set of PCs a Call or Jump
// instruction may transfer control to. A directly-resolvable operand
// (Absolute/AbsoluteLong/Relative/RelativeLong) yields exactly that
// target. An indirect operand consults the jump table the Analysis
// has recorded at this PC; if none is recorded yet, an empty Unknown
// table is registered and resolution fails, forcing the caller to
// treat this as an unresolved indirect jump until a user assertion
// supplies the table's byte range.
func (c *CPU) computeJumpTargets(instr instruction.Instruction) ([]addr.PC, bool) {
	if target, ok := instr.AbsoluteTarget(); ok {
		return []addr.PC{target}, true
	}

	jt, ok := c.analysis.JumpTableAt(instr.PC)
	if !ok {
		c.analysis.SetJumpTable(analysis.NewJumpTable(instr.PC))
		return nil, false
	}
	if jt.Status == analysis.StatusUnknown || jt.Len() == 0 {
		return nil, false
	}
	return jt.Targets(), true
}
