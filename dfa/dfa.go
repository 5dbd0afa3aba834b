// Package dfa implements the deterministic half of the engine: subset
// construction over a DFA-compatible NFA (epsilon edges allowed), the dense
// jump-table automaton it produces, and a table-driven scanner.
package dfa

import (
	"fmt"
	"io"
)

// StateID identifies a DFA state. State 0 is always the initial state.
type StateID uint32

// Invalid is the "no transition" sentinel in the jump table.
const Invalid StateID = 0xFFFFFFFF

// alphabetWidth is the number of jump-table columns per state: one per
// 7-bit ASCII codepoint.
const alphabetWidth = 128

// DFA is an immutable deterministic automaton: a dense states×128 jump
// table plus a parallel acceptance vector. It owns no reference to the
// NFA it was derived from.
type DFA struct {
	jump   []StateID
	accept []bool
}

// StateCount returns the number of states.
func (d *DFA) StateCount() int { return len(d.accept) }

// Start returns the initial state.
func (d *DFA) Start() StateID { return 0 }

// Accepting reports whether state accepts.
func (d *DFA) Accepting(state StateID) bool {
	return state != Invalid && d.accept[state]
}

// Transit returns the successor of state on input ch, or Invalid when no
// transition exists. Characters outside the ASCII alphabet never match.
func (d *DFA) Transit(state StateID, ch byte) StateID {
	if ch >= alphabetWidth {
		return Invalid
	}
	return d.jump[int(state)*alphabetWidth+int(ch)]
}

// Dump writes a human-readable listing of the automaton to w: every
// state in numeric order with its non-empty transitions. Purely
// observational.
func Dump(w io.Writer, d *DFA) {
	for state := 0; state < d.StateCount(); state++ {
		acceptingFlag := ""
		if d.accept[state] {
			acceptingFlag = "(final)"
		}
		fmt.Fprintf(w, "DfaState %d%s:\n", state, acceptingFlag)

		for ch := 0; ch < alphabetWidth; ch++ {
			if target := d.jump[state*alphabetWidth+ch]; target != Invalid {
				fmt.Fprintf(w, "  char of %q --> DfaState %d\n", byte(ch), target)
			}
		}
	}
}
