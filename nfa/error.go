package nfa

import "errors"

// Common NFA errors
var (
	// ErrHasEpsilon indicates a matcher was constructed over an
	// automaton that still carries epsilon transitions. Run
	// EliminateEpsilon first.
	ErrHasEpsilon = errors.New("NFA contains epsilon transitions")
)
