package render

import "github.com/beevik/snes816/opcode"

// operandTemplate gives the fmt template for every addressing mode
// whose operand is a plain hex value or label, one %s placeholder for
// that text. Modes handled by special-case logic in operandText
// (Implied, ImpliedAccumulator, ImmediateM/X/8, Move) are absent here.
var operandTemplate = map[opcode.Mode]string{
	opcode.Relative:                     "$%s",
	opcode.RelativeLong:                 "$%s",
	opcode.DirectPage:                   "$%s",
	opcode.DirectPageX:                  "$%s,x",
	opcode.DirectPageY:                  "$%s,y",
	opcode.DirectPageIndirect:           "($%s)",
	opcode.DirectPageIndirectLong:       "[$%s]",
	opcode.DirectPageIndirectX:          "($%s,x)",
	opcode.DirectPageIndirectY:          "($%s),y",
	opcode.DirectPageIndirectLongY:      "[$%s],y",
	opcode.Absolute:                     "$%s",
	opcode.AbsoluteX:                    "$%s,x",
	opcode.AbsoluteY:                    "$%s,y",
	opcode.AbsoluteLong:                 "$%s",
	opcode.AbsoluteLongX:                "$%s,x",
	opcode.AbsoluteIndirect:             "($%s)",
	opcode.AbsoluteIndirectLong:         "[$%s]",
	opcode.AbsoluteIndexedIndirect:      "($%s,x)",
	opcode.StackRelative:                "$%s,s",
	opcode.StackRelativeIndirectIndexed: "($%s,s),y",
	opcode.StackAbsolute:                "$%s",
}
