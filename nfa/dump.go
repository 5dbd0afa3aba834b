package nfa

import (
	"fmt"
	"io"
)

// Enumerate visits every state reachable from the initial state once, in
// breadth-first discovery order.
func Enumerate(n *NFA, visit func(*State)) {
	visited := map[StateID]bool{n.Start(): true}
	waitlist := []StateID{n.Start()}

	for len(waitlist) > 0 {
		id := waitlist[0]
		waitlist = waitlist[1:]
		source := n.State(id)

		visit(source)

		for _, edge := range source.exits {
			if !visited[edge.Target] {
				visited[edge.Target] = true
				waitlist = append(waitlist, edge.Target)
			}
		}
	}
}

// Dump writes a human-readable listing of the automaton to w: every
// reachable state numbered in discovery order, with each outgoing
// transition's kind and payload. Purely observational.
func Dump(w io.Writer, n *NFA) {
	nextID := 0
	idMap := map[StateID]int{n.Start(): 0}
	nextID++

	number := func(id StateID) int {
		if dumped, ok := idMap[id]; ok {
			return dumped
		}
		idMap[id] = nextID
		nextID++
		return nextID - 1
	}

	Enumerate(n, func(source *State) {
		fmt.Fprintf(w, "NfaState %d", number(source.ID()))
		if source.Final() {
			fmt.Fprint(w, "(final)")
		}
		fmt.Fprintln(w, ":")

		for _, edge := range source.exits {
			fmt.Fprintf(w, "  %s  => NfaState %d\n", transitionLabel(edge), number(edge.Target))
		}
	})
}

func transitionLabel(edge *Transition) string {
	switch edge.Kind {
	case KindEpsilon:
		return fmt.Sprintf("Epsilon(%s)", edge.Priority)
	case KindEntity:
		return fmt.Sprintf("Codepoint(%s)", edge.Range)
	case KindAnchor:
		return fmt.Sprintf("Anchor(%s)", edge.Anchor)
	case KindBeginCapture:
		return fmt.Sprintf("BeginCapture(%d)", edge.Group)
	case KindEndCapture:
		return "EndCapture"
	case KindReference:
		return fmt.Sprintf("Reference(%d)", edge.Group)
	case KindBeginAssertion:
		return fmt.Sprintf("BeginAssertion(%s)", edge.Assert)
	case KindEndAssertion:
		return "EndAssertion"
	default:
		return edge.Kind.String()
	}
}
