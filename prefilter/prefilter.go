// Package prefilter locates candidate match start positions by literal
// search, letting the engines skip offsets that cannot begin a match.
//
// A prefilter is only ever an accelerator: it may report false
// candidates (the engine re-verifies every one) but must never skip a
// true match start.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rex/literal"
)

// Prefilter finds positions at which a match could begin.
type Prefilter interface {
	// NextCandidate returns an offset c >= at such that no match can
	// begin anywhere in [at, c), or -1 when no match can begin at or
	// after at. The position c itself is only a candidate; callers
	// verify it and re-query from c+1 on failure.
	NextCandidate(haystack []byte, at int) int
}

// FromSeq builds the cheapest prefilter able to serve the sequence:
// a memchr-style single-substring filter for one literal, an
// Aho-Corasick automaton for several. Returns nil when the sequence
// offers nothing to filter on.
func FromSeq(seq *literal.Seq) Prefilter {
	if seq == nil || seq.Len() == 0 || seq.MinLen() == 0 {
		return nil
	}
	if seq.Len() == 1 {
		return &single{needle: seq.Get(0).Bytes}
	}

	builder := ahocorasick.NewBuilder()
	maxLen := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		if lit.Len() > maxLen {
			maxLen = lit.Len()
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &multi{auto: auto, maxLen: maxLen}
}

// single matches one literal with the stdlib substring search.
type single struct {
	needle []byte
}

func (s *single) NextCandidate(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[at:], s.needle)
	if idx < 0 {
		return -1
	}
	return at + idx
}

// multi matches a literal set with an Aho-Corasick automaton.
type multi struct {
	auto   *ahocorasick.Automaton
	maxLen int
}

func (m *multi) NextCandidate(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	found := m.auto.Find(haystack, at)
	if found == nil {
		return -1
	}
	// The automaton reports the occurrence with the earliest end; a
	// longer literal starting earlier may still be pending, so back the
	// candidate off to the earliest start such an occurrence could have.
	candidate := found.End - m.maxLen
	if candidate < at {
		candidate = at
	}
	return candidate
}
