// Package literal extracts literal byte sequences from a syntax tree.
//
// The extraction feeds the prefilter layer: if every match of a pattern
// must begin with one of a small set of literals, candidate start
// positions can be found by multi-string search instead of running the
// automaton at every offset. When the literals cover entire matches the
// automaton can be bypassed outright.
package literal

import "github.com/coregx/rex/syntax"

// Literal is one byte sequence that can begin a match. Complete means
// the literal covers an entire match on its own, not just a prefix.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

// Seq is a set of alternative literals extracted from a pattern.
// The invariant that matters downstream: every match of the pattern
// begins with one of the members.
type Seq struct {
	lits []Literal
}

// Len returns the number of literals.
func (s *Seq) Len() int { return len(s.lits) }

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal { return s.lits[i] }

// Complete reports whether every member covers an entire match, making
// the sequence equivalent to the pattern itself.
func (s *Seq) Complete() bool {
	for _, l := range s.lits {
		if !l.Complete {
			return false
		}
	}
	return len(s.lits) > 0
}

// MinLen returns the length of the shortest member, 0 for an empty seq.
func (s *Seq) MinLen() int {
	if len(s.lits) == 0 {
		return 0
	}
	min := s.lits[0].Len()
	for _, l := range s.lits[1:] {
		if l.Len() < min {
			min = l.Len()
		}
	}
	return min
}

// extraction limits: a class wider than maxRangeSpan characters, or a
// cross product past maxLiterals members or maxTotalBytes bytes, aborts
// extraction rather than exploding.
const (
	maxRangeSpan  = 8
	maxTotalBytes = 4096
)

// Extract derives the prefix literal sequence of a tree, or nil when no
// useful finite sequence exists. maxLiterals caps the member count.
func Extract(e syntax.Expr, maxLiterals int) *Seq {
	x := extractor{maxLiterals: maxLiterals}
	lits, ok := x.walk(e)
	if !ok || len(lits) == 0 {
		return nil
	}
	for _, l := range lits {
		if len(l.Bytes) == 0 {
			// An empty prefix means "anything can start a match":
			// useless as a filter.
			return nil
		}
	}
	return &Seq{lits: dedupe(lits)}
}

type extractor struct {
	maxLiterals int
}

// walk returns the literal sequence of a subtree. ok=false means the
// subtree admits no finite useful sequence at all; an incomplete result
// is still usable as a prefix set.
func (x *extractor) walk(e syntax.Expr) ([]Literal, bool) {
	switch node := e.(type) {
	case *syntax.Entity:
		span := int(node.Range.Hi) - int(node.Range.Lo) + 1
		if span > maxRangeSpan {
			return nil, false
		}
		lits := make([]Literal, 0, span)
		for ch := int(node.Range.Lo); ch <= int(node.Range.Hi); ch++ {
			lits = append(lits, Literal{Bytes: []byte{byte(ch)}, Complete: true})
		}
		return lits, true

	case *syntax.Concat:
		return x.walkConcat(node)

	case *syntax.Alter:
		var union []Literal
		for _, child := range node.Any {
			lits, ok := x.walk(child)
			if !ok {
				return nil, false
			}
			union = append(union, lits...)
			if !x.withinLimits(union) {
				return nil, false
			}
		}
		return union, true

	case *syntax.Repeat:
		if node.Count.Min == 0 {
			// The subtree may match nothing, so it pins no prefix.
			return nil, false
		}
		lits, ok := x.walk(node.Child)
		if !ok {
			return nil, false
		}
		// One mandatory iteration is a sound prefix; it covers the
		// whole match only for the degenerate {1,1}.
		exact := node.Count.Min == 1 && node.Count.Max == 1
		return markIncomplete(lits, exact), true

	case *syntax.Capture:
		return x.walk(node.Child)

	default:
		// Anchors, references and assertions pin no literal text.
		return nil, false
	}
}

func (x *extractor) walkConcat(node *syntax.Concat) ([]Literal, bool) {
	acc := []Literal{{Bytes: nil, Complete: true}}
	for _, child := range node.Seq {
		lits, ok := x.walk(child)
		if !ok || !allComplete(acc) {
			// The prefix stops growing here; what we have so far is
			// still a valid prefix set.
			return markIncomplete(acc, false), true
		}
		acc = cross(acc, lits)
		if !x.withinLimits(acc) {
			return nil, false
		}
	}
	return acc, true
}

func (x *extractor) withinLimits(lits []Literal) bool {
	if len(lits) > x.maxLiterals {
		return false
	}
	total := 0
	for _, l := range lits {
		total += len(l.Bytes)
	}
	return total <= maxTotalBytes
}

// cross concatenates every member of a with every member of b.
// The result is complete where both factors are.
func cross(a, b []Literal) []Literal {
	out := make([]Literal, 0, len(a)*len(b))
	for _, la := range a {
		for _, lb := range b {
			joined := make([]byte, 0, len(la.Bytes)+len(lb.Bytes))
			joined = append(joined, la.Bytes...)
			joined = append(joined, lb.Bytes...)
			out = append(out, Literal{
				Bytes:    joined,
				Complete: la.Complete && lb.Complete,
			})
		}
	}
	return out
}

func allComplete(lits []Literal) bool {
	for _, l := range lits {
		if !l.Complete {
			return false
		}
	}
	return true
}

func markIncomplete(lits []Literal, complete bool) []Literal {
	if complete {
		return lits
	}
	out := make([]Literal, len(lits))
	for i, l := range lits {
		out[i] = Literal{Bytes: l.Bytes, Complete: false}
	}
	return out
}

func dedupe(lits []Literal) []Literal {
	seen := make(map[string]int, len(lits))
	out := lits[:0]
	for _, l := range lits {
		key := string(l.Bytes)
		if idx, ok := seen[key]; ok {
			// Keep the weaker completeness claim for duplicates.
			if !l.Complete {
				out[idx].Complete = false
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, l)
	}
	return out
}
