package syntax

// Expr is a node of the regex syntax tree.
//
// Two static capability predicates partition the feature set into the two
// execution paths: a tree that is DFACompatible can be determinized and
// scanned by the table-driven matcher, everything else runs on the
// backtracking simulator. AssertionCompatible marks subtrees that could
// legally appear inside a lookaround body.
type Expr interface {
	// DFACompatible reports whether the subtree is expressible as a pure
	// regular language over the input alphabet: no anchors, captures,
	// back-references, assertions or reluctant closures anywhere below.
	DFACompatible() bool

	// AssertionCompatible reports whether the subtree may form the body
	// of a zero-width assertion: no captures, back-references or nested
	// assertions.
	AssertionCompatible() bool
}

// Entity matches a single character inside a range.
type Entity struct {
	Range CharRange
}

func (*Entity) DFACompatible() bool       { return true }
func (*Entity) AssertionCompatible() bool { return true }

// Concat matches its children in sequence.
type Concat struct {
	Seq []Expr
}

func (c *Concat) DFACompatible() bool       { return allDFACompatible(c.Seq) }
func (c *Concat) AssertionCompatible() bool { return allAssertionCompatible(c.Seq) }

// Alter matches any one of its children, tried in source order.
// It carries at least one child.
type Alter struct {
	Any []Expr
}

func (a *Alter) DFACompatible() bool       { return allDFACompatible(a.Any) }
func (a *Alter) AssertionCompatible() bool { return allAssertionCompatible(a.Any) }

// Repeat matches its child between Count.Min and Count.Max times.
type Repeat struct {
	Child    Expr
	Count    Repetition
	Strategy ClosureStrategy
}

// DFACompatible is false for reluctant repetition: the DFA scanner always
// takes the longest match and cannot express a prefer-shortest closure.
func (r *Repeat) DFACompatible() bool {
	return r.Strategy == Greedy && r.Child.DFACompatible()
}

func (r *Repeat) AssertionCompatible() bool { return r.Child.AssertionCompatible() }

// Anchor is a zero-width positional assertion.
type Anchor struct {
	Kind AnchorKind
}

func (*Anchor) DFACompatible() bool       { return false }
func (*Anchor) AssertionCompatible() bool { return true }

// Capture records the text matched by its child under a numeric id.
type Capture struct {
	ID    int
	Child Expr
}

func (*Capture) DFACompatible() bool       { return false }
func (*Capture) AssertionCompatible() bool { return false }

// Reference matches the text last captured by the group with the same id.
// A reference to an unset or empty capture never matches.
type Reference struct {
	ID int
}

func (*Reference) DFACompatible() bool       { return false }
func (*Reference) AssertionCompatible() bool { return false }

// Assertion is a lookaround node. The kind is reserved in the model:
// the compiler lowers it to assertion-delimiting transitions, but no
// matcher evaluates its condition yet.
type Assertion struct {
	Kind  AssertionKind
	Child Expr
}

func (*Assertion) DFACompatible() bool       { return false }
func (*Assertion) AssertionCompatible() bool { return false }

func allDFACompatible(seq []Expr) bool {
	for _, e := range seq {
		if !e.DFACompatible() {
			return false
		}
	}
	return true
}

func allAssertionCompatible(seq []Expr) bool {
	for _, e := range seq {
		if !e.AssertionCompatible() {
			return false
		}
	}
	return true
}

// Regexp is an owned, immutable regex model: the root of a finished
// syntax tree together with everything reachable from it. It is the unit
// handed to the NFA compiler.
type Regexp struct {
	root Expr

	// maxCaptureID is the largest capture id appearing in the tree,
	// or -1 when the tree has no captures.
	maxCaptureID int
}

// Root returns the root expression.
func (r *Regexp) Root() Expr { return r.root }

// MaxCaptureID returns the largest capture id in the tree, -1 if none.
func (r *Regexp) MaxCaptureID() int { return r.maxCaptureID }

// DFACompatible reports whether the whole tree can be determinized.
func (r *Regexp) DFACompatible() bool { return r.root.DFACompatible() }

func newRegexp(root Expr) *Regexp {
	return &Regexp{root: root, maxCaptureID: maxCaptureID(root)}
}

func maxCaptureID(e Expr) int {
	max := -1
	visit := func(id int) {
		if id > max {
			max = id
		}
	}
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Concat:
			for _, c := range n.Seq {
				walk(c)
			}
		case *Alter:
			for _, c := range n.Any {
				walk(c)
			}
		case *Repeat:
			walk(n.Child)
		case *Capture:
			visit(n.ID)
			walk(n.Child)
		case *Reference:
			visit(n.ID)
		case *Assertion:
			walk(n.Child)
		}
	}
	walk(e)
	return max
}
