package analysis

import "github.com/beevik/snes816/addr"

// JumpTableStatus reports how much of a jump table's targets are
// known.
type JumpTableStatus int

const (
	// StatusUnknown means no byte range has been supplied yet; an
	// indirect jump through this table is unresolved.
	StatusUnknown JumpTableStatus = iota
	// StatusPartial means a byte range was supplied but some slots
	// could not be read (out of ROM bounds, for instance).
	StatusPartial
	// StatusComplete means every slot in the asserted range resolved
	// to a target address.
	StatusComplete
)

func (s JumpTableStatus) String() string {
	switch s {
	case StatusPartial:
		return "partial"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// JumpTable resolves an indirect JMP/JSR by recording the word-sized
// targets found in a user-asserted ROM byte range. The table is keyed
// by the PC of the indirect instruction that consults it.
type JumpTable struct {
	PC     addr.PC
	Status JumpTableStatus
	Start  addr.PC // first byte of the asserted range
	End    addr.PC // last byte of the asserted range (inclusive)

	targets map[int]addr.PC // index -> target, in table order
}

// NewJumpTable creates an unresolved jump table at pc. Resolve fills
// it in once a byte range has been asserted.
func NewJumpTable(pc addr.PC) *JumpTable {
	return &JumpTable{PC: pc, Status: StatusUnknown, targets: make(map[int]addr.PC)}
}

// SetTarget records the target found at table index idx.
func (jt *JumpTable) SetTarget(idx int, target addr.PC) {
	jt.targets[idx] = target
}

// Targets returns the table's resolved targets in index order.
func (jt *JumpTable) Targets() []addr.PC {
	out := make([]addr.PC, len(jt.targets))
	for i := range out {
		out[i] = jt.targets[i]
	}
	return out
}

// Len returns the number of resolved entries.
func (jt *JumpTable) Len() int {
	return len(jt.targets)
}
