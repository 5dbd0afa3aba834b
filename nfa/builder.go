package nfa

import "github.com/coregx/rex/syntax"

// Branch is a pair of states delimiting a subgraph under construction.
// Lowering rules receive a branch and wire their subgraph between its
// endpoints.
type Branch struct {
	Begin StateID
	End   StateID
}

// Builder constructs NFAs incrementally. States and transitions live in
// the builder until Build moves them into an immutable NFA.
//
// The builder tracks the two automaton flags as edges are added: any
// epsilon edge sets has-epsilon, and any anchor, capture, reference or
// assertion edge clears DFA compatibility.
type Builder struct {
	states        []State
	hasEpsilon    bool
	dfaCompatible bool
	built         bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a builder with an initial state capacity.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states:        make([]State, 0, capacity),
		dfaCompatible: true,
	}
}

// NewState allocates a fresh state and returns its ID.
func (b *Builder) NewState(final bool) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, final: final})
	return id
}

// NewBranch allocates a pair of fresh unconnected states. The begin state
// is never final; the end state is final iff final is true.
func (b *Builder) NewBranch(final bool) Branch {
	return Branch{
		Begin: b.NewState(false),
		End:   b.NewState(final),
	}
}

// AddEpsilon records an epsilon edge with the given priority.
func (b *Builder) AddEpsilon(br Branch, priority syntax.EpsilonPriority) *Transition {
	t := b.addTransition(br, KindEpsilon)
	t.Priority = priority
	return t
}

// AddEntity records a character-consuming edge over rg.
func (b *Builder) AddEntity(br Branch, rg syntax.CharRange) *Transition {
	t := b.addTransition(br, KindEntity)
	t.Range = rg
	return t
}

// AddAnchor records a zero-width positional assertion edge.
func (b *Builder) AddAnchor(br Branch, kind syntax.AnchorKind) *Transition {
	t := b.addTransition(br, KindAnchor)
	t.Anchor = kind
	return t
}

// AddBeginCapture records an edge opening capture group id.
func (b *Builder) AddBeginCapture(br Branch, id int) *Transition {
	t := b.addTransition(br, KindBeginCapture)
	t.Group = id
	return t
}

// AddEndCapture records an edge closing the innermost open capture group.
func (b *Builder) AddEndCapture(br Branch) *Transition {
	return b.addTransition(br, KindEndCapture)
}

// AddReference records a back-reference edge to capture group id.
func (b *Builder) AddReference(br Branch, id int) *Transition {
	t := b.addTransition(br, KindReference)
	t.Group = id
	return t
}

// AddBeginAssertion records an edge opening a lookaround body.
func (b *Builder) AddBeginAssertion(br Branch, kind syntax.AssertionKind) *Transition {
	t := b.addTransition(br, KindBeginAssertion)
	t.Assert = kind
	return t
}

// AddEndAssertion records an edge closing a lookaround body.
func (b *Builder) AddEndAssertion(br Branch) *Transition {
	return b.addTransition(br, KindEndAssertion)
}

// CloneTransition duplicates src's kind and payload onto a new edge
// between the endpoints of br.
func (b *Builder) CloneTransition(br Branch, src *Transition) *Transition {
	t := b.addTransition(br, src.Kind)
	t.Priority = src.Priority
	t.Range = src.Range
	t.Anchor = src.Anchor
	t.Assert = src.Assert
	t.Group = src.Group
	return t
}

// CloneBranch replicates the subgraph reachable from source.Begin up to
// and including source.End onto fresh intermediate states, mapping
// source.Begin to target.Begin and source.End to target.End. Transition
// order on every cloned state matches the source.
func (b *Builder) CloneBranch(target, source Branch) {
	stateMap := map[StateID]StateID{
		source.Begin: target.Begin,
		source.End:   target.End,
	}
	waitlist := []StateID{source.Begin}

	for len(waitlist) > 0 {
		src := waitlist[0]
		waitlist = waitlist[1:]
		mappedSrc := stateMap[src]

		// Copy the slice header first: NewState below may grow b.states.
		exits := b.states[src].exits
		for _, edge := range exits {
			mappedTarget, ok := stateMap[edge.Target]
			if !ok {
				mappedTarget = b.NewState(false)
				stateMap[edge.Target] = mappedTarget
				waitlist = append(waitlist, edge.Target)
			}
			b.CloneTransition(Branch{Begin: mappedSrc, End: mappedTarget}, edge)
		}
	}
}

// Build finalizes the builder into an immutable NFA whose initial state
// is start. The builder must not be used afterwards.
func (b *Builder) Build(start StateID) *NFA {
	if b.built {
		panic("nfa: builder reused after Build")
	}
	b.built = true

	n := &NFA{
		states:        b.states,
		start:         start,
		hasEpsilon:    b.hasEpsilon,
		dfaCompatible: b.dfaCompatible,
	}
	b.states = nil
	return n
}

func (b *Builder) addTransition(br Branch, kind TransitionKind) *Transition {
	switch kind {
	case KindEpsilon:
		b.hasEpsilon = true
	case KindAnchor, KindBeginCapture, KindEndCapture, KindReference,
		KindBeginAssertion, KindEndAssertion:
		b.dfaCompatible = false
	}

	t := &Transition{
		Source: br.Begin,
		Target: br.End,
		Kind:   kind,
	}
	src := &b.states[br.Begin]
	src.exits = append(src.exits, t)
	return t
}
