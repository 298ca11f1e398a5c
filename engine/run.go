package engine

import (
	"github.com/beevik/snes816/analysis"
	"github.com/beevik/snes816/label"
	"github.com/beevik/snes816/snesrom"
)

// Run rebuilds a's derived results from scratch: it clears any
// previous analysis, runs a fresh symbolic executor from every
// registered entry point, and generates local labels for every
// non-entry reference target.
func Run(a *analysis.Analysis, rom *snesrom.ROM) {
	a.Clear()

	for _, ep := range a.EntryPoints() {
		a.EnsureSubroutine(ep.PC, ep.Label, true)
		cpu := New(a, rom, ep.PC, ep.PC, ep.State)
		cpu.Run()
	}

	label.Resolve(a)
}
