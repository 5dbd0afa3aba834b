package dfa

import (
	"strings"
	"testing"

	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/syntax"
)

func compileDFA(t *testing.T, pattern string) *DFA {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	d, err := FromNFA(nfa.Compile(re))
	if err != nil {
		t.Fatalf("FromNFA(%q): %v", pattern, err)
	}
	return d
}

// TestFromNFA_RejectsIncompatible tests the compatibility precondition
func TestFromNFA_RejectsIncompatible(t *testing.T) {
	patterns := []string{"(a)b", "^ab", `(a)\1`, "a+?"}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re, err := syntax.Parse(pattern)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := FromNFA(nfa.Compile(re)); err != ErrNotCompatible {
				t.Errorf("err = %v, want ErrNotCompatible", err)
			}
		})
	}
}

// TestFromNFA_RejectsEmptyLanguage tests the non-empty-match model
func TestFromNFA_RejectsEmptyLanguage(t *testing.T) {
	re, err := syntax.Parse("a*")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromNFA(nfa.Compile(re)); err != ErrAcceptsEmpty {
		t.Errorf("err = %v, want ErrAcceptsEmpty", err)
	}
}

// TestFromNFA_Literal tests the table for a plain literal
func TestFromNFA_Literal(t *testing.T) {
	d := compileDFA(t, "ab")

	if d.StateCount() != 3 {
		t.Errorf("state count = %d, want 3", d.StateCount())
	}

	s := d.Start()
	if d.Accepting(s) {
		t.Error("initial state must not accept")
	}
	s = d.Transit(s, 'a')
	if s == Invalid || d.Accepting(s) {
		t.Fatal("after 'a': want live non-accepting state")
	}
	if d.Transit(s, 'a') != Invalid {
		t.Error("'aa' has no transition")
	}
	s = d.Transit(s, 'b')
	if s == Invalid || !d.Accepting(s) {
		t.Fatal("after 'ab': want accepting state")
	}
	if d.Transit(d.Start(), 'b') != Invalid {
		t.Error("'b' from start has no transition")
	}
}

// TestFromNFA_SharedPrefixSubsets tests that alternation with common
// prefixes determinizes into one path
func TestFromNFA_SharedPrefixSubsets(t *testing.T) {
	d := compileDFA(t, "ab|ac")

	s := d.Transit(d.Start(), 'a')
	if s == Invalid {
		t.Fatal("no transition on 'a'")
	}
	b := d.Transit(s, 'b')
	c := d.Transit(s, 'c')
	if b == Invalid || c == Invalid {
		t.Fatal("both continuations must exist")
	}
	if !d.Accepting(b) || !d.Accepting(c) {
		t.Error("both continuations must accept")
	}
}

// TestDFA_NonASCIIRejected tests the out-of-alphabet policy
func TestDFA_NonASCIIRejected(t *testing.T) {
	d := compileDFA(t, ".+")
	if d.Transit(d.Start(), 0xC3) != Invalid {
		t.Error("bytes above 0x7F must have no transition")
	}
}

func TestDump_DFA(t *testing.T) {
	d := compileDFA(t, "ab")

	var sb strings.Builder
	Dump(&sb, d)
	out := sb.String()

	if !strings.Contains(out, "DfaState 0:") {
		t.Error("dump misses the initial state")
	}
	if !strings.Contains(out, "(final)") {
		t.Error("dump misses the accepting flag")
	}
	if !strings.Contains(out, "'a'") {
		t.Error("dump misses the 'a' transition")
	}
}
