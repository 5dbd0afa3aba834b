package nfa

import (
	"sort"

	"github.com/coregx/rex/syntax"
)

// Evaluation is the solid-state digest of an NFA: the set of states
// reachable through at least one non-epsilon edge (plus the initial
// state), which of those accept, and for each one the first non-epsilon
// transitions reachable through any epsilon prefix, in priority order.
//
// The digest is what epsilon elimination and DFA construction consume;
// neither ever needs to walk epsilon edges again.
type Evaluation struct {
	initial   StateID
	solid     []StateID // discovery order
	solidSet  map[StateID]bool
	accepting map[StateID]bool
	outbounds map[StateID][]*Transition
}

// Initial returns the initial state's ID.
func (ev *Evaluation) Initial() StateID { return ev.initial }

// SolidStates returns the solid states in discovery order.
// The returned slice must not be mutated.
func (ev *Evaluation) SolidStates() []StateID { return ev.solid }

// IsSolid reports whether id is a solid state.
func (ev *Evaluation) IsSolid(id StateID) bool { return ev.solidSet[id] }

// IsAccepting reports whether id is final or reaches a final state
// through epsilon edges only.
func (ev *Evaluation) IsAccepting(id StateID) bool { return ev.accepting[id] }

// Outbounds returns the non-epsilon transitions reachable from the solid
// state id through any epsilon prefix, ordered by transition priority.
// The returned slice must not be mutated.
func (ev *Evaluation) Outbounds(id StateID) []*Transition { return ev.outbounds[id] }

// transitionRank maps a transition onto the comparable priority scale:
// epsilon edges carry their own priority, everything else ranks as
// normal.
func transitionRank(t *Transition) int {
	if t.Kind == KindEpsilon {
		return int(t.Priority)
	}
	return int(syntax.PriorityNormal)
}

// expandTransitions appends a state's exit list to buf, sorted so that
// higher-priority edges come first. The sort is stable: edges of equal
// priority keep construction order, which is what makes alternatives
// match in source order.
func expandTransitions(buf []*Transition, s *State) []*Transition {
	start := len(buf)
	buf = append(buf, s.exits...)
	added := buf[start:]
	sort.SliceStable(added, func(i, j int) bool {
		return transitionRank(added[i]) < transitionRank(added[j])
	})
	return buf
}

// Evaluate computes the solid-state digest of an NFA via breadth-first
// search over solid states, expanding each state's epsilon closure.
func Evaluate(n *NFA) *Evaluation {
	ev := &Evaluation{
		initial:   n.Start(),
		solidSet:  make(map[StateID]bool),
		accepting: make(map[StateID]bool),
		outbounds: make(map[StateID][]*Transition),
	}

	waitlist := []StateID{n.Start()}
	ev.solidSet[n.Start()] = true
	ev.solid = append(ev.solid, n.Start())

	for len(waitlist) > 0 {
		source := waitlist[0]
		waitlist = waitlist[1:]

		if n.State(source).Final() {
			ev.accepting[source] = true
		}

		expanded := make(map[*Transition]bool)
		var input, output []*Transition
		output = expandTransitions(output, n.State(source))

		for hasExpansion := true; hasExpansion; {
			hasExpansion = false
			input, output = output, input[:0]

			for _, edge := range input {
				if edge.Kind != KindEpsilon {
					// The edge points at a solid state; queue it once.
					if !ev.solidSet[edge.Target] {
						ev.solidSet[edge.Target] = true
						ev.solid = append(ev.solid, edge.Target)
						waitlist = append(waitlist, edge.Target)
					}
					output = append(output, edge)
					continue
				}

				// Reaching a final state on epsilon alone makes the
				// source accepting.
				if n.State(edge.Target).Final() {
					ev.accepting[source] = true
				}

				// Expand each epsilon edge once; loops in the closure
				// terminate here.
				if !expanded[edge] {
					hasExpansion = true
					expanded[edge] = true
					output = expandTransitions(output, n.State(edge.Target))
				}
			}
		}

		// Identical edges can be reached through several epsilon paths;
		// keep the first occurrence of each. This deduplicates by edge
		// identity, not payload; the language is unaffected either way.
		seen := make(map[*Transition]bool, len(output))
		outs := make([]*Transition, 0, len(output))
		for _, edge := range output {
			if !seen[edge] {
				seen[edge] = true
				outs = append(outs, edge)
			}
		}
		ev.outbounds[source] = outs
	}

	return ev
}
