package syntax

import "fmt"

// Factory builds syntax trees programmatically. All constructors return
// nodes owned by the factory; Generate moves ownership of the finished
// tree into a Regexp, after which the factory must not be reused.
//
// The factory is the only sanctioned way to produce Expr values, which is
// what lets the compiler assume structural well-formedness (a non-empty
// Alter, capture ids within bounds, ordered repetition bounds).
type Factory struct {
	generated bool
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Range matches one character inside rg.
func (f *Factory) Range(rg CharRange) Expr {
	return &Entity{Range: rg}
}

// Char matches exactly the character ch.
func (f *Factory) Char(ch byte) Expr {
	return &Entity{Range: SingleChar(ch)}
}

// Literal matches the string s character by character.
// Panics if s is empty.
func (f *Factory) Literal(s string) Expr {
	if len(s) == 0 {
		panic("syntax: empty literal")
	}
	seq := make([]Expr, len(s))
	for i := 0; i < len(s); i++ {
		seq[i] = f.Char(s[i])
	}
	if len(seq) == 1 {
		return seq[0]
	}
	return &Concat{Seq: seq}
}

// Concat matches seq in order.
func (f *Factory) Concat(seq ...Expr) Expr {
	if len(seq) == 0 {
		panic("syntax: empty concatenation")
	}
	if len(seq) == 1 {
		return seq[0]
	}
	return &Concat{Seq: seq}
}

// Alter matches any one alternative, preferring earlier ones.
// Panics if no alternative is given.
func (f *Factory) Alter(any ...Expr) Expr {
	if len(any) == 0 {
		panic("syntax: empty alternation")
	}
	if len(any) == 1 {
		return any[0]
	}
	return &Alter{Any: any}
}

// Repeat matches child between rep.Min and rep.Max times using the given
// closure strategy.
func (f *Factory) Repeat(child Expr, rep Repetition, strategy ClosureStrategy) Expr {
	return &Repeat{Child: child, Count: rep, Strategy: strategy}
}

// Optional matches child zero or one time, greedily.
func (f *Factory) Optional(child Expr) Expr {
	return f.Repeat(child, NewRepetition(0, 1), Greedy)
}

// Star matches child zero or more times, greedily.
func (f *Factory) Star(child Expr) Expr {
	return f.Repeat(child, NewUnboundedRepetition(0), Greedy)
}

// Plus matches child one or more times, greedily.
func (f *Factory) Plus(child Expr) Expr {
	return f.Repeat(child, NewUnboundedRepetition(1), Greedy)
}

// Anchor matches the zero-width position assertion kind.
func (f *Factory) Anchor(kind AnchorKind) Expr {
	return &Anchor{Kind: kind}
}

// Capture records the text matched by child under the caller-supplied id.
// Panics if id is negative or not below MaxCaptureID.
func (f *Factory) Capture(id int, child Expr) Expr {
	if id < 0 || id >= MaxCaptureID {
		panic(fmt.Sprintf("syntax: capture id %d out of range [0, %d)", id, MaxCaptureID))
	}
	return &Capture{ID: id, Child: child}
}

// Reference matches the text last captured by group id.
func (f *Factory) Reference(id int) Expr {
	if id < 0 || id >= MaxCaptureID {
		panic(fmt.Sprintf("syntax: reference id %d out of range [0, %d)", id, MaxCaptureID))
	}
	return &Reference{ID: id}
}

// Generate finalizes the tree rooted at root into an immutable Regexp.
// The factory must not be used again afterwards.
func (f *Factory) Generate(root Expr) *Regexp {
	if root == nil {
		panic("syntax: nil root expression")
	}
	if f.generated {
		panic("syntax: factory reused after Generate")
	}
	f.generated = true
	return newRegexp(root)
}
