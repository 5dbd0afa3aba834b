package nfa

// EliminateEpsilon rewrites an automaton as an equivalent epsilon-free
// NFA. Every solid state of the source becomes one state of the result,
// final iff it was accepting, and every outbound transition of the
// digest is cloned between the mapped endpoints. Transition order within
// a state follows the digest's priority order, so the backtracking
// matcher can simply explore a state's exits front to back.
//
// Applying EliminateEpsilon to an already epsilon-free automaton yields
// an automaton recognizing the same language.
func EliminateEpsilon(n *NFA) *NFA {
	ev := Evaluate(n)
	b := NewBuilderWithCapacity(len(ev.SolidStates()))
	stateMap := make(map[StateID]StateID, len(ev.SolidStates()))

	for _, id := range ev.SolidStates() {
		stateMap[id] = b.NewState(ev.IsAccepting(id))
	}

	for _, id := range ev.SolidStates() {
		mappedSource := stateMap[id]
		for _, edge := range ev.Outbounds(id) {
			b.CloneTransition(Branch{
				Begin: mappedSource,
				End:   stateMap[edge.Target],
			}, edge)
		}
	}

	return b.Build(stateMap[ev.Initial()])
}
