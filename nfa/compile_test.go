package nfa

import (
	"testing"

	"github.com/coregx/rex/syntax"
)

func mustParse(t *testing.T, pattern string) *syntax.Regexp {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return re
}

// TestCompile_Flags tests that lowering stamps the automaton flags
// according to the feature set of the tree
func TestCompile_Flags(t *testing.T) {
	tests := []struct {
		pattern       string
		dfaCompatible bool
	}{
		{"abc", true},
		{"(a|b)+233", false}, // capture group
		{"a{2,4}", true},
		{"a{2,4}?", false}, // reluctant
		{"^a", false},      // anchor
		{`(a)\1`, false},   // capture + reference
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := Compile(mustParse(t, tt.pattern))

			if !n.HasEpsilon() {
				t.Error("lowering always introduces glue epsilons")
			}
			if n.DFACompatible() != tt.dfaCompatible {
				t.Errorf("DFACompatible() = %v, want %v", n.DFACompatible(), tt.dfaCompatible)
			}
		})
	}
}

// TestCompile_EntityIsSingleEdge tests the smallest lowering rule
func TestCompile_EntityIsSingleEdge(t *testing.T) {
	f := syntax.NewFactory()
	re := f.Generate(f.Char('x'))
	n := Compile(re)

	exits := n.State(n.Start()).Transitions()
	if len(exits) != 1 {
		t.Fatalf("initial state has %d exits, want 1", len(exits))
	}
	edge := exits[0]
	if edge.Kind != KindEntity || !edge.Range.Contains('x') {
		t.Errorf("edge = %v %v, want Entity over 'x'", edge.Kind, edge.Range)
	}
	if !n.State(edge.Target).Final() {
		t.Error("entity edge should reach the final state directly")
	}
}

// TestCompile_CaptureBrackets tests that capture lowering brackets the
// body with begin/end transitions targeting the body's endpoints
func TestCompile_CaptureBrackets(t *testing.T) {
	f := syntax.NewFactory()
	re := f.Generate(f.Capture(4, f.Char('x')))
	n := Compile(re)

	exits := n.State(n.Start()).Transitions()
	if len(exits) != 1 || exits[0].Kind != KindBeginCapture || exits[0].Group != 4 {
		t.Fatalf("initial exit = %+v, want BeginCapture(4)", exits[0])
	}

	inner := n.State(exits[0].Target).Transitions()
	if len(inner) != 1 || inner[0].Kind != KindEntity {
		t.Fatalf("capture body entry = %+v, want Entity", inner[0])
	}

	closing := n.State(inner[0].Target).Transitions()
	if len(closing) != 1 || closing[0].Kind != KindEndCapture {
		t.Fatalf("capture body exit = %+v, want EndCapture", closing[0])
	}
	if !n.State(closing[0].Target).Final() {
		t.Error("EndCapture must reach the branch end, not loop back")
	}
}

// TestCompile_RepeatPriorities tests the epsilon priorities on loop
// edges for both closure strategies
func TestCompile_RepeatPriorities(t *testing.T) {
	findLoop := func(n *NFA) (restart, leave *Transition) {
		Enumerate(n, func(s *State) {
			for _, e := range s.Transitions() {
				if e.Kind != KindEpsilon {
					continue
				}
				switch e.Priority {
				case syntax.PriorityHigh:
					if restart == nil {
						restart = e
					}
				case syntax.PriorityLow:
					if leave == nil {
						leave = e
					}
				}
			}
		})
		return restart, leave
	}

	t.Run("greedy stays on high", func(t *testing.T) {
		n := Compile(mustParse(t, "a+"))
		restart, leave := findLoop(n)
		if restart == nil {
			t.Error("greedy loop needs a high-priority restart edge")
		}
		if leave == nil {
			t.Error("greedy loop needs a low-priority leave edge")
		}
	})

	t.Run("reluctant leaves on high", func(t *testing.T) {
		n := Compile(mustParse(t, "a+?"))
		high, low := findLoop(n)
		if high == nil || low == nil {
			t.Fatal("reluctant loop needs both priorities")
		}
		// For a+? the leaving edge is the one into the final state; the
		// restart edge loops back into the body.
		if !n.State(high.Target).Final() {
			t.Error("reluctant loop's high-priority edge should leave, not restart")
		}
		if n.State(low.Target).Final() {
			t.Error("reluctant loop's low-priority edge should restart, not leave")
		}
	})
}

// TestCompile_BoundedRepeatUnrolls tests that {2,4} produces early-exit
// epsilons from every satisfied count
func TestCompile_BoundedRepeatUnrolls(t *testing.T) {
	n := Compile(mustParse(t, "a{2,4}"))

	entities, lowEps := 0, 0
	Enumerate(n, func(s *State) {
		for _, e := range s.Transitions() {
			switch {
			case e.Kind == KindEntity:
				entities++
			case e.Kind == KindEpsilon && e.Priority == syntax.PriorityLow:
				lowEps++
			}
		}
	})

	if entities != 4 {
		t.Errorf("unrolled %d entity edges, want 4", entities)
	}
	// Early exits from counts 2 and 3, plus the final leave edge.
	if lowEps != 3 {
		t.Errorf("found %d low-priority epsilons, want 3", lowEps)
	}
}
