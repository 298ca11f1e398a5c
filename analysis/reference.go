package analysis

import "github.com/beevik/snes816/addr"

// Reference records a control-flow edge discovered by the executor:
// source instruction PC, target PC, and the subroutine the source
// instruction belongs to.
type Reference struct {
	Source       addr.PC
	Target       addr.PC
	SubroutinePC addr.PC
}

// referenceSet tracks, per source PC, the set of targets it has been
// observed to transfer control to.
type referenceSet struct {
	bySource map[addr.PC]map[addr.PC]Reference
}

func newReferenceSet() *referenceSet {
	return &referenceSet{bySource: make(map[addr.PC]map[addr.PC]Reference)}
}

func (r *referenceSet) add(ref Reference) {
	m, ok := r.bySource[ref.Source]
	if !ok {
		m = make(map[addr.PC]Reference)
		r.bySource[ref.Source] = m
	}
	m[ref.Target] = ref
}

// targetsOf returns every target reached from source, in no particular
// order.
func (r *referenceSet) targetsOf(source addr.PC) []addr.PC {
	m := r.bySource[source]
	out := make([]addr.PC, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	return out
}

// all returns every reference in the set.
func (r *referenceSet) all() []Reference {
	out := make([]Reference, 0)
	for _, m := range r.bySource {
		for _, ref := range m {
			out = append(out, ref)
		}
	}
	return out
}

// referencesTo returns every reference whose target is pc.
func (r *referenceSet) referencesTo(pc addr.PC) []Reference {
	out := make([]Reference, 0)
	for _, m := range r.bySource {
		if ref, ok := m[pc]; ok {
			out = append(out, ref)
		}
	}
	return out
}
