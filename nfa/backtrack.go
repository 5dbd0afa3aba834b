package nfa

import (
	"bytes"

	"github.com/coregx/rex/syntax"
)

// Span is a half-open byte interval [Start, End) into a haystack.
// An unset span has Start == -1.
type Span struct {
	Start, End int
}

// Unset reports whether the span has never been assigned.
func (s Span) Unset() bool { return s.Start < 0 }

// Empty reports whether the span is unset or covers no bytes.
func (s Span) Empty() bool { return s.Unset() || s.End <= s.Start }

// Result is one match found by the backtracker: the matched interval and
// the last successful capture for every group id seen, dense by id.
type Result struct {
	Start, End int
	Captures   []Span
}

// Backtracker is a depth-first, priority-ordered simulator over an
// epsilon-free NFA. It supports captures, back-references and anchors;
// greedy versus reluctant closure falls out of the edge order baked into
// the automaton, so the simulator itself never compares priorities.
//
// A Backtracker holds no per-call state and is safe for concurrent use.
// Worst-case running time is exponential in the input length; that is
// the standard backtracking tradeoff and is accepted as-is.
type Backtracker struct {
	nfa *NFA
}

// NewBacktracker creates a backtracking matcher for an epsilon-free NFA.
// Returns ErrHasEpsilon if the automaton still carries epsilon edges.
func NewBacktracker(n *NFA) (*Backtracker, error) {
	if n.HasEpsilon() {
		return nil, ErrHasEpsilon
	}
	return &Backtracker{nfa: n}, nil
}

// Match reports whether the automaton accepts the haystack in its
// entirety.
func (bt *Backtracker) Match(haystack []byte) bool {
	if len(haystack) == 0 {
		return false
	}
	r, ok := bt.simulate(haystack, 0)
	return ok && r.End == len(haystack)
}

// Search returns the leftmost match in the haystack.
func (bt *Backtracker) Search(haystack []byte) (Result, bool) {
	for start := 0; start < len(haystack); start++ {
		if r, ok := bt.simulate(haystack, start); ok {
			return r, true
		}
	}
	return Result{}, false
}

// SearchAll returns every match in left-to-right order. Matches do not
// overlap: each search resumes right after the previous match's end.
func (bt *Backtracker) SearchAll(haystack []byte) []Result {
	var results []Result
	start := 0
	for start < len(haystack) {
		r, ok := bt.searchFrom(haystack, start)
		if !ok {
			break
		}
		results = append(results, r)

		start = r.End
		if r.End == r.Start { // zero-width match cannot advance on its own
			start++
		}
	}
	return results
}

func (bt *Backtracker) searchFrom(haystack []byte, from int) (Result, bool) {
	for start := from; start < len(haystack); start++ {
		if r, ok := bt.simulate(haystack, start); ok {
			return r, true
		}
	}
	return Result{}, false
}

// SearchAt runs the simulation anchored at the given start position
// only. Callers driving their own candidate loop (e.g. behind a
// prefilter) use this instead of Search.
func (bt *Backtracker) SearchAt(haystack []byte, start int) (Result, bool) {
	if start >= len(haystack) {
		return Result{}, false
	}
	return bt.simulate(haystack, start)
}

// route is one pending exploration frame: the edge to process and the
// input position after taking it.
type route struct {
	index int
	edge  *Transition
}

// captureFrame tracks an open capture group: where its text begins, the
// route-stack depth at which it was opened, and its group id. A frame
// with group -1 marks the closing of the innermost group open before it.
type captureFrame struct {
	start int
	depth int
	group int
}

// simulate runs the backtracking search anchored at start.
//
// The routes stack drives a depth-first exploration; ExpandRoutes pushes
// a state's successors in reverse order so the highest-priority edge is
// popped first. A recorded match is final once the stack shrinks below
// the depth it was found at: everything still pending there is a
// lower-priority alternative that could only produce a worse match.
func (bt *Backtracker) simulate(haystack []byte, start int) (Result, bool) {
	var (
		routes   []route
		capStack []captureFrame
		captures []Span

		found     bool
		lastIndex int
		lastDepth int
	)

	routes = bt.expandRoutes(routes, captures, haystack, bt.nfa.Start(), start)

	for len(routes) > 0 {
		frame := routes[len(routes)-1]
		routes = routes[:len(routes)-1]
		depth := len(routes)

		if found && depth < lastDepth {
			break
		}

		// Drop capture opens that belong to branches we have
		// backtracked out of.
		for len(capStack) > 0 && capStack[len(capStack)-1].depth > depth {
			capStack = capStack[:len(capStack)-1]
		}

		switch frame.edge.Kind {
		case KindBeginCapture:
			capStack = append(capStack, captureFrame{
				start: frame.index,
				depth: depth,
				group: frame.edge.Group,
			})

		case KindEndCapture:
			// Close the innermost group still open on this path. The
			// open frame is not popped, since the same open may be closed
			// again along a different path; a close marker (group -1)
			// records the closing instead and is dropped on backtracking
			// like any other frame.
			closed := 0
			for i := len(capStack) - 1; i >= 0; i-- {
				open := capStack[i]
				if open.group < 0 {
					closed++
					continue
				}
				if closed > 0 {
					closed--
					continue
				}
				captures = growCaptures(captures, open.group)
				captures[open.group] = Span{Start: open.start, End: frame.index}
				break
			}
			capStack = append(capStack, captureFrame{start: frame.index, depth: depth, group: -1})

		case KindBeginAssertion, KindEndAssertion:
			// Reserved: assertion bodies pass through unevaluated.
		}

		if bt.nfa.State(frame.edge.Target).Final() {
			found = true
			lastIndex = frame.index
			lastDepth = depth
		}

		routes = bt.expandRoutes(routes, captures, haystack, frame.edge.Target, frame.index)
	}

	if !found {
		return Result{}, false
	}
	return Result{Start: start, End: lastIndex, Captures: captures}, true
}

// expandRoutes pushes a frame for every viable out-edge of state at the
// given input index. Edges are pushed in reverse list order so that the
// earliest (highest-priority) edge ends up on top of the stack.
func (bt *Backtracker) expandRoutes(routes []route, captures []Span, haystack []byte, state StateID, index int) []route {
	exits := bt.nfa.State(state).Transitions()
	for i := len(exits) - 1; i >= 0; i-- {
		edge := exits[i]
		switch edge.Kind {
		case KindEntity:
			if index < len(haystack) && edge.Range.Contains(haystack[index]) {
				routes = append(routes, route{index: index + 1, edge: edge})
			}

		case KindAnchor:
			if anchorHolds(edge.Anchor, haystack, index) {
				routes = append(routes, route{index: index, edge: edge})
			}

		case KindBeginCapture, KindEndCapture, KindBeginAssertion, KindEndAssertion:
			routes = append(routes, route{index: index, edge: edge})

		case KindReference:
			// References to unset or empty captures never match; an
			// empty reference would loop forever otherwise.
			if edge.Group < len(captures) && !captures[edge.Group].Empty() {
				span := captures[edge.Group]
				text := haystack[span.Start:span.End]
				if bytes.HasPrefix(haystack[index:], text) {
					routes = append(routes, route{index: index + len(text), edge: edge})
				}
			}

		case KindEpsilon:
			// Unreachable: NewBacktracker rejects epsilon automatons.
		}
	}
	return routes
}

func anchorHolds(kind syntax.AnchorKind, haystack []byte, index int) bool {
	if kind == syntax.LineEnd {
		return index == len(haystack) || haystack[index] == '\n'
	}
	return index == 0 || haystack[index-1] == '\n'
}

func growCaptures(captures []Span, id int) []Span {
	for len(captures) <= id {
		captures = append(captures, Span{Start: -1, End: -1})
	}
	return captures
}
