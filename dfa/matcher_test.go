package dfa

import "testing"

func compileMatcher(t *testing.T, pattern string) *Matcher {
	t.Helper()
	return NewMatcher(compileDFA(t, pattern))
}

// TestMatcher_Match tests whole-string acceptance
func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"(?:a|b)+233", "aaa233", true},
		{"(?:a|b)+233", "ababa233", true},
		{"(?:a|b)+233", "ggababa233", false},
		{"(?:a|b)+233", "aaa2334", false},
		{"(?:a|b)+233", "", false},
		{"a{2,4}", "aaa", true},
		{"a{2,4}", "aaaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			m := compileMatcher(t, tt.pattern)
			if got := m.Match([]byte(tt.input)); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestMatcher_Search tests leftmost-longest scanning
func TestMatcher_Search(t *testing.T) {
	tests := []struct {
		pattern    string
		input      string
		start, end int
	}{
		{"(?:a|b)+233", "aaa2334", 0, 6},
		{"(?:a|b)+233", "ggababa233", 2, 10},
		{"a{2,4}", "aaaaa", 0, 4}, // longest, not first accept
		{"ab|abc", "abc", 0, 3},   // longest wins over alternative order
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			m := compileMatcher(t, tt.pattern)
			r, ok := m.Search([]byte(tt.input))
			if !ok {
				t.Fatalf("Search(%q) found nothing", tt.input)
			}
			if r.Start != tt.start || r.End != tt.end {
				t.Errorf("match = [%d,%d), want [%d,%d)", r.Start, r.End, tt.start, tt.end)
			}
		})
	}
}

func TestMatcher_SearchNoMatch(t *testing.T) {
	m := compileMatcher(t, "(?:a|b)+233")
	if _, ok := m.Search([]byte("zz232")); ok {
		t.Error("expected no match")
	}
}

// TestMatcher_SearchAll tests the full-scan scenario
func TestMatcher_SearchAll(t *testing.T) {
	m := compileMatcher(t, "(?:a|b)+233")
	haystack := []byte("a233a;iogjb233iia6bb233")

	results := m.SearchAll(haystack)
	if len(results) != 3 {
		t.Fatalf("found %d matches, want 3", len(results))
	}

	wantContents := []string{"a233", "b233", "bb233"}
	wantStarts := []int{0, 10, 18}
	for i, r := range results {
		content := string(haystack[r.Start:r.End])
		if content != wantContents[i] || r.Start != wantStarts[i] {
			t.Errorf("match %d = %q at %d, want %q at %d",
				i, content, r.Start, wantContents[i], wantStarts[i])
		}
	}
}
