package rex

import "github.com/coregx/rex/nfa"

// Match is one successful match. Content and the capture entries are
// sub-slices of the searched input, not copies; they stay valid exactly
// as long as the input does.
type Match struct {
	// Start and End delimit the match as half-open byte offsets.
	Start, End int

	// Content is the matched text, input[Start:End].
	Content []byte

	// Capture holds the last text captured by each group, indexed by
	// capture id. Entries for groups that did not participate are nil.
	// The DFA path only runs patterns without groups. The literal
	// (Aho-Corasick) path never records captures, so for patterns with
	// groups every entry is nil.
	Capture [][]byte
}

// Group returns the text captured by group id, or nil when the group
// did not participate in the match or id is out of range.
func (m *Match) Group(id int) []byte {
	if id < 0 || id >= len(m.Capture) {
		return nil
	}
	return m.Capture[id]
}

// newMatch builds a Match over haystack from plain offsets.
func newMatch(haystack []byte, start, end int, captureCount int) Match {
	return Match{
		Start:   start,
		End:     end,
		Content: haystack[start:end],
		Capture: make([][]byte, captureCount),
	}
}

// newCaptureMatch builds a Match from a backtracker result, resolving
// capture spans into views of the haystack.
func newCaptureMatch(haystack []byte, r nfa.Result, captureCount int) Match {
	m := newMatch(haystack, r.Start, r.End, captureCount)
	for id, span := range r.Captures {
		if !span.Unset() {
			m.Capture[id] = haystack[span.Start:span.End]
		}
	}
	return m
}
