package nfa

import (
	"fmt"

	"github.com/coregx/rex/syntax"
)

// Compile lowers a syntax tree into an epsilon-carrying NFA.
//
// The whole tree is wired between a fresh initial state and a fresh
// final state; every lowering rule connects its subgraph to the branch
// it is given with normal-priority epsilon edges unless the rule says
// otherwise. Greedy/reluctant repetition is realized purely through
// epsilon priorities on the loop's exit and restart edges, so the
// matcher needs no quantifier-specific logic.
func Compile(re *syntax.Regexp) *NFA {
	b := NewBuilder()
	root := b.NewBranch(true)
	connect(b, re.Root(), root)
	n := b.Build(root.Begin)
	// Reluctant closures lower to entity and epsilon edges only, but the
	// DFA scanner always takes the longest match and cannot honour them.
	if !re.DFACompatible() {
		n.dfaCompatible = false
	}
	return n
}

func connect(b *Builder, e syntax.Expr, which Branch) {
	switch node := e.(type) {
	case *syntax.Entity:
		b.AddEntity(which, node.Range)

	case *syntax.Concat:
		connectConcat(b, node, which)

	case *syntax.Alter:
		connectAlter(b, node, which)

	case *syntax.Repeat:
		connectRepeat(b, node, which)

	case *syntax.Anchor:
		b.AddAnchor(which, node.Kind)

	case *syntax.Capture:
		inner := b.NewBranch(false)
		connect(b, node.Child, inner)
		b.AddBeginCapture(Branch{Begin: which.Begin, End: inner.Begin}, node.ID)
		b.AddEndCapture(Branch{Begin: inner.End, End: which.End})

	case *syntax.Reference:
		b.AddReference(which, node.ID)

	case *syntax.Assertion:
		inner := b.NewBranch(false)
		connect(b, node.Child, inner)
		b.AddBeginAssertion(Branch{Begin: which.Begin, End: inner.Begin}, node.Kind)
		b.AddEndAssertion(Branch{Begin: inner.End, End: which.End})

	default:
		panic(fmt.Sprintf("nfa: unknown expression node %T", e))
	}
}

// connectConcat chains the children along a spine of internal states and
// splices the spine into the target branch:
//
//	which.Begin - s0 - ... - sN - which.End
func connectConcat(b *Builder, node *syntax.Concat, which Branch) {
	begin := b.NewState(false)
	end := begin
	for _, child := range node.Seq {
		next := b.NewState(false)
		connect(b, child, Branch{Begin: end, End: next})
		end = next
	}

	b.AddEpsilon(Branch{Begin: which.Begin, End: begin}, syntax.PriorityNormal)
	b.AddEpsilon(Branch{Begin: end, End: which.End}, syntax.PriorityNormal)
}

// connectAlter gives every alternative its own branch in parallel.
// All entry edges carry normal priority; the matcher tries alternatives
// in source order because earlier edges come earlier in the exit list.
func connectAlter(b *Builder, node *syntax.Alter, which Branch) {
	for _, child := range node.Any {
		alt := b.NewBranch(false)
		connect(b, child, alt)

		b.AddEpsilon(Branch{Begin: which.Begin, End: alt.Begin}, syntax.PriorityNormal)
		b.AddEpsilon(Branch{Begin: alt.End, End: which.End}, syntax.PriorityNormal)
	}
}

// connectRepeat unrolls the repetition by cloning the child subgraph.
// A bounded {m,M} produces M chained copies with early exits from copy
// m onward; an unbounded {m,} produces m copies (one for m=0) with a
// restart edge on the last.
func connectRepeat(b *Builder, node *syntax.Repeat, which Branch) {
	first := b.NewBranch(false)
	connect(b, node.Child, first)

	// nodes[i] is the state before the i-th copy; the state after the
	// last copy closes the list.
	nodes := []StateID{first.Begin, first.End}

	copies := node.Count.Max
	if node.Count.Unbounded() {
		copies = node.Count.Min
	}
	for i := 1; i < copies; i++ {
		next := Branch{Begin: nodes[len(nodes)-1], End: b.NewState(false)}
		b.CloneBranch(next, first)
		nodes = append(nodes, next.End)
	}

	staying, leaving := syntax.PriorityHigh, syntax.PriorityLow
	if node.Strategy == syntax.Reluctant {
		staying, leaving = leaving, staying
	}

	if node.Count.Unbounded() {
		lastBegin := nodes[len(nodes)-2]
		lastEnd := nodes[len(nodes)-1]

		// A zero-minimum loop can skip its only copy outright; this
		// replaces the alternation with an optional empty path.
		if node.Count.Min == 0 {
			b.AddEpsilon(Branch{Begin: lastBegin, End: lastEnd}, leaving)
		}
		b.AddEpsilon(Branch{Begin: lastEnd, End: lastBegin}, staying)
	} else {
		last := nodes[len(nodes)-1]
		for i := node.Count.Min; i < node.Count.Max; i++ {
			b.AddEpsilon(Branch{Begin: nodes[i], End: last}, leaving)
		}
	}

	b.AddEpsilon(Branch{Begin: which.Begin, End: nodes[0]}, syntax.PriorityNormal)
	b.AddEpsilon(Branch{Begin: nodes[len(nodes)-1], End: which.End}, leaving)
}
