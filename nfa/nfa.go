// Package nfa implements the non-deterministic automaton layer of the
// engine: the state/transition model, an incremental builder, the
// compiler that lowers a syntax tree into an epsilon-carrying NFA,
// epsilon elimination, and the backtracking matcher that runs on the
// epsilon-free result.
package nfa

import (
	"fmt"

	"github.com/coregx/rex/syntax"
)

// StateID uniquely identifies an NFA state within its automaton.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID.
const InvalidState StateID = 0xFFFFFFFF

// TransitionKind identifies the type of an NFA transition and determines
// which payload field is meaningful.
type TransitionKind uint8

const (
	// KindEpsilon consumes no input; payload is an EpsilonPriority.
	KindEpsilon TransitionKind = iota

	// KindEntity consumes one character inside a CharRange.
	KindEntity

	// KindAnchor is a zero-width positional assertion; payload is an
	// AnchorKind.
	KindAnchor

	// KindBeginCapture opens capture group Group.
	KindBeginCapture

	// KindEndCapture closes the innermost open capture group.
	KindEndCapture

	// KindReference matches the text last captured by group Group.
	KindReference

	// KindBeginAssertion opens a lookaround body; payload is an
	// AssertionKind. Reserved: no matcher evaluates the condition.
	KindBeginAssertion

	// KindEndAssertion closes a lookaround body.
	KindEndAssertion
)

// String returns a human-readable representation of the kind.
func (k TransitionKind) String() string {
	switch k {
	case KindEpsilon:
		return "Epsilon"
	case KindEntity:
		return "Entity"
	case KindAnchor:
		return "Anchor"
	case KindBeginCapture:
		return "BeginCapture"
	case KindEndCapture:
		return "EndCapture"
	case KindReference:
		return "Reference"
	case KindBeginAssertion:
		return "BeginAssertion"
	case KindEndAssertion:
		return "EndAssertion"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Transition is a typed edge between two states. The payload fields are
// flat; Kind selects which of them is meaningful.
type Transition struct {
	Source StateID
	Target StateID
	Kind   TransitionKind

	// Priority is valid for KindEpsilon.
	Priority syntax.EpsilonPriority

	// Range is valid for KindEntity.
	Range syntax.CharRange

	// Anchor is valid for KindAnchor.
	Anchor syntax.AnchorKind

	// Assert is valid for KindBeginAssertion.
	Assert syntax.AssertionKind

	// Group is valid for KindBeginCapture and KindReference.
	Group int
}

// State is a single NFA state. Outgoing transitions are kept in
// construction order; the order is meaningful to the backtracking
// matcher, which explores earlier edges first.
type State struct {
	id    StateID
	final bool
	exits []*Transition
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Final reports whether the state accepts.
func (s *State) Final() bool { return s.final }

// Transitions returns the ordered outgoing edge list.
// The returned slice must not be mutated.
func (s *State) Transitions() []*Transition { return s.exits }

// NFA is an immutable non-deterministic automaton. It owns all of its
// states and transitions; releasing the NFA releases them as a unit.
//
// The two flags recorded at build time partition execution: an automaton
// with HasEpsilon cannot run on the backtracking matcher, and one that is
// not DFACompatible cannot be determinized.
type NFA struct {
	states        []State
	start         StateID
	hasEpsilon    bool
	dfaCompatible bool
}

// Start returns the initial state's ID.
func (n *NFA) Start() StateID { return n.start }

// StateCount returns the number of states.
func (n *NFA) StateCount() int { return len(n.states) }

// State returns the state with the given ID.
func (n *NFA) State(id StateID) *State { return &n.states[id] }

// HasEpsilon reports whether any transition is an epsilon transition.
func (n *NFA) HasEpsilon() bool { return n.hasEpsilon }

// DFACompatible reports whether every transition is Entity or Epsilon,
// i.e. the automaton describes a pure regular language and can be
// determinized. An automaton produced by Compile from a tree with a
// reluctant closure also reports false.
func (n *NFA) DFACompatible() bool { return n.dfaCompatible }
