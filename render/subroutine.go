package render

import (
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/subroutine"
)

// Subroutine renders sub's label line followed by one line per member
// instruction in ascending PC order, inserting a ".localLabel:" line
// immediately before any member the Label Resolver assigned one.
func Subroutine(a *analysis.Analysis, sub *subroutine.Subroutine) []string {
	lines := make([]string, 0, sub.Size()+1)
	lines = append(lines, sub.Label+":")
	for _, instr := range sub.Members() {
		if instr.LocalLabel != "" {
			lines = append(lines, "."+instr.LocalLabel+":")
		}
		lines = append(lines, Line(a, instr))
	}
	return lines
}

// All renders every subroutine in a in ascending entry-PC order,
// separated by a blank line, matching the CLI's disassembly contract.
func All(a *analysis.Analysis) []string {
	var out []string
	for i, sub := range a.Subroutines() {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, Subroutine(a, sub)...)
	}
	return out
}
