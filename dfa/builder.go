package dfa

import "fmt"

// Builder assembles a DFA state by state. States are numbered in
// creation order; the first created state becomes the initial state.
type Builder struct {
	jump   []StateID
	accept []bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewState allocates a state with a full row of Invalid transitions and
// returns its ID.
func (b *Builder) NewState(accepting bool) StateID {
	id := StateID(len(b.accept))
	row := make([]StateID, alphabetWidth)
	for i := range row {
		row[i] = Invalid
	}
	b.jump = append(b.jump, row...)
	b.accept = append(b.accept, accepting)
	return id
}

// AddTransition records src --ch--> target.
// Both states must already exist and ch must be ASCII.
func (b *Builder) AddTransition(src, target StateID, ch byte) {
	if int(src) >= len(b.accept) || int(target) >= len(b.accept) {
		panic(fmt.Sprintf("dfa: transition between unknown states %d -> %d", src, target))
	}
	if ch >= alphabetWidth {
		panic(fmt.Sprintf("dfa: character %d outside ASCII alphabet", ch))
	}
	b.jump[int(src)*alphabetWidth+int(ch)] = target
}

// Build finalizes the builder into an immutable DFA.
func (b *Builder) Build() *DFA {
	d := &DFA{jump: b.jump, accept: b.accept}
	b.jump = nil
	b.accept = nil
	return d
}
