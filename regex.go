// Package rex is a regular expression engine built around an explicit
// automaton pipeline: a syntax tree is lowered to an epsilon NFA, the
// epsilon transitions are eliminated, and matching runs either on a
// table-driven DFA (for patterns expressible as a pure regular
// language) or on a priority-ordered backtracking simulator (for
// captures, back-references, anchors and reluctant closures).
//
// Basic usage:
//
//	re, err := rex.Compile(`(a|b)+233`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, ok := re.Search([]byte("xx ab233 yy"))
//
// Patterns can also be assembled programmatically with syntax.Factory
// and compiled with CompileRegexp, skipping the parser entirely.
//
// A compiled Regex is immutable and safe for concurrent use.
package rex

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/prefilter"
	"github.com/coregx/rex/syntax"
)

// Strategy identifies the execution path selected at compile time.
type Strategy uint8

const (
	// StrategyBacktrack runs matches on the backtracking NFA simulator.
	StrategyBacktrack Strategy = iota

	// StrategyDFA scans with the deterministic jump table.
	StrategyDFA

	// StrategyLiteral answers searches straight from an Aho-Corasick
	// automaton over a complete literal alternation.
	StrategyLiteral
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDFA:
		return "DFA"
	case StrategyLiteral:
		return "Literal"
	default:
		return "Backtrack"
	}
}

// Regex is a compiled regular expression.
type Regex struct {
	pattern  string
	re       *syntax.Regexp
	strategy Strategy

	backtracker *nfa.Backtracker
	scanner     *dfa.Matcher
	literals    *ahocorasick.Automaton
	pre         prefilter.Prefilter

	captureCount int
}

// Compile parses and compiles a pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on error. Useful for patterns
// known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig parses and compiles a pattern with a custom
// configuration.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	re, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	r, err := CompileRegexp(re, cfg)
	if err != nil {
		return nil, err
	}
	r.pattern = pattern
	return r, nil
}

// CompileRegexp compiles an already-built syntax tree, e.g. one
// assembled through syntax.Factory.
func CompileRegexp(re *syntax.Regexp, cfg Config) (*Regex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	epsilonNFA := nfa.Compile(re)
	free := nfa.EliminateEpsilon(epsilonNFA)
	backtracker, err := nfa.NewBacktracker(free)
	if err != nil {
		return nil, err
	}

	r := &Regex{
		re:           re,
		strategy:     StrategyBacktrack,
		backtracker:  backtracker,
		captureCount: re.MaxCaptureID() + 1,
	}

	seq := literal.Extract(re.Root(), cfg.MaxLiterals)
	if seq != nil && seq.Complete() && seq.Len() >= cfg.AhoCorasickMinLiterals {
		if auto := buildLiteralAutomaton(seq); auto != nil {
			r.strategy = StrategyLiteral
			r.literals = auto
			return r, nil
		}
	}

	if re.DFACompatible() && !cfg.ForceBacktracker {
		d, err := dfa.FromNFA(epsilonNFA)
		switch err {
		case nil:
			r.strategy = StrategyDFA
			r.scanner = dfa.NewMatcher(d)
		case dfa.ErrAcceptsEmpty:
			// Patterns like a* admit an empty match, which the scanner's
			// model rules out; the backtracker handles them.
		default:
			return nil, err
		}
	}

	if !cfg.DisablePrefilter {
		r.pre = prefilter.FromSeq(seq)
	}
	return r, nil
}

func buildLiteralAutomaton(seq *literal.Seq) *ahocorasick.Automaton {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// Pattern returns the source text the regex was compiled from, or the
// empty string for programmatically built trees.
func (r *Regex) Pattern() string { return r.pattern }

// Strategy returns the execution path selected at compile time.
func (r *Regex) Strategy() Strategy { return r.strategy }

// CaptureCount returns the number of capture group slots in matches.
func (r *Regex) CaptureCount() int { return r.captureCount }

// Match reports whether the pattern accepts the input in its entirety.
func (r *Regex) Match(input []byte) bool {
	if r.strategy == StrategyDFA {
		return r.scanner.Match(input)
	}
	return r.backtracker.Match(input)
}

// Search returns the leftmost match in the input, or ok=false when
// there is none.
func (r *Regex) Search(input []byte) (Match, bool) {
	return r.searchFrom(input, 0)
}

// SearchAll returns every match in left-to-right order. Matches do not
// overlap: each begins at or after the previous match's end.
func (r *Regex) SearchAll(input []byte) []Match {
	var matches []Match
	start := 0
	for start < len(input) {
		m, ok := r.searchFrom(input, start)
		if !ok {
			break
		}
		matches = append(matches, m)

		start = m.End
		if m.End == m.Start {
			start++
		}
	}
	return matches
}

func (r *Regex) searchFrom(input []byte, from int) (Match, bool) {
	if r.strategy == StrategyLiteral {
		if found := r.literals.Find(input, from); found != nil {
			return newMatch(input, found.Start, found.End, r.captureCount), true
		}
		return Match{}, false
	}

	start := from
	for start < len(input) {
		if r.pre != nil {
			candidate := r.pre.NextCandidate(input, start)
			if candidate < 0 {
				return Match{}, false
			}
			start = candidate
		}

		if r.strategy == StrategyDFA {
			if m, ok := r.scanner.SearchAt(input, start); ok {
				return newMatch(input, m.Start, m.End, r.captureCount), true
			}
		} else {
			if res, ok := r.backtracker.SearchAt(input, start); ok {
				return newCaptureMatch(input, res, r.captureCount), true
			}
		}
		start++
	}
	return Match{}, false
}
