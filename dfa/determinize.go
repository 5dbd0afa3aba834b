package dfa

import (
	"errors"
	"sort"

	"github.com/coregx/rex/internal/sparse"
	"github.com/coregx/rex/nfa"
)

// Determinization errors
var (
	// ErrNotCompatible indicates the source NFA carries transitions a
	// DFA cannot express (anchors, captures, references, assertions),
	// or was compiled from a tree with a reluctant closure.
	ErrNotCompatible = errors.New("NFA is not DFA-compatible")

	// ErrAcceptsEmpty indicates the source NFA accepts the empty
	// string, which the scanner's match model rules out.
	ErrAcceptsEmpty = errors.New("NFA accepts the empty string")
)

// FromNFA builds a DFA by subset construction over a DFA-compatible NFA.
// The source may still carry epsilon transitions; the solid-state digest
// absorbs them.
//
// Each DFA state stands for a set of NFA solid states. Starting from the
// singleton set of the initial state, every reachable subset gets a row
// in the jump table: for each input character the successor subset is
// the set of targets of the subset's entity transitions containing that
// character.
func FromNFA(n *nfa.NFA) (*DFA, error) {
	if !n.DFACompatible() {
		return nil, ErrNotCompatible
	}

	ev := nfa.Evaluate(n)
	if ev.IsAccepting(ev.Initial()) {
		return nil, ErrAcceptsEmpty
	}

	b := NewBuilder()
	idMap := make(map[string]StateID)
	targets := sparse.NewSet(n.StateCount())

	initialSet := []nfa.StateID{ev.Initial()}
	idMap[subsetKey(initialSet)] = b.NewState(false)
	waitlist := [][]nfa.StateID{initialSet}

	for len(waitlist) > 0 {
		sourceSet := waitlist[0]
		waitlist = waitlist[1:]
		sourceID := idMap[subsetKey(sourceSet)]

		// Collect the subset's outbound transitions once; the
		// compatibility precondition guarantees they are all entities.
		var transitions []*nfa.Transition
		for _, state := range sourceSet {
			transitions = append(transitions, ev.Outbounds(state)...)
		}

		for ch := 0; ch < alphabetWidth; ch++ {
			targets.Clear()
			for _, edge := range transitions {
				if edge.Range.Contains(byte(ch)) {
					targets.Insert(uint32(edge.Target))
				}
			}
			if targets.Len() == 0 {
				continue
			}

			targetSet := sortedSubset(targets)
			key := subsetKey(targetSet)
			targetID, ok := idMap[key]
			if !ok {
				accepting := false
				for _, state := range targetSet {
					if ev.IsAccepting(state) {
						accepting = true
						break
					}
				}
				targetID = b.NewState(accepting)
				idMap[key] = targetID
				waitlist = append(waitlist, targetSet)
			}

			b.AddTransition(sourceID, targetID, byte(ch))
		}
	}

	return b.Build(), nil
}

// sortedSubset copies the set's members out in ascending order, giving
// every subset a canonical representation.
func sortedSubset(set *sparse.Set) []nfa.StateID {
	values := set.Values()
	subset := make([]nfa.StateID, len(values))
	for i, v := range values {
		subset[i] = nfa.StateID(v)
	}
	sort.Slice(subset, func(i, j int) bool { return subset[i] < subset[j] })
	return subset
}

// subsetKey encodes a canonical subset as a map key.
func subsetKey(subset []nfa.StateID) string {
	buf := make([]byte, 0, len(subset)*4)
	for _, id := range subset {
		buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(buf)
}
