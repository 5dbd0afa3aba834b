package rex

import "errors"

// ErrInvalidConfig indicates a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config tunes compilation. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	// MaxLiterals caps how many alternative literals the extractor may
	// produce before giving up on literal optimizations.
	MaxLiterals int

	// AhoCorasickMinLiterals is the minimum size of a complete literal
	// alternation before searches bypass the automata and run on the
	// Aho-Corasick engine instead.
	AhoCorasickMinLiterals int

	// DisablePrefilter turns off literal prefiltering of search start
	// positions.
	DisablePrefilter bool

	// ForceBacktracker routes even DFA-compatible patterns to the
	// backtracking engine. Mainly useful for testing and debugging.
	ForceBacktracker bool
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:            64,
		AhoCorasickMinLiterals: 8,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.MaxLiterals < 1 {
		return ErrInvalidConfig
	}
	if c.AhoCorasickMinLiterals < 2 {
		return ErrInvalidConfig
	}
	return nil
}
