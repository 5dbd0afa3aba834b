package nfa

import (
	"testing"

	"github.com/coregx/rex/syntax"
)

// TestBuilder_Flags tests that the automaton flags track edge kinds
func TestBuilder_Flags(t *testing.T) {
	tests := []struct {
		name          string
		add           func(*Builder, Branch)
		hasEpsilon    bool
		dfaCompatible bool
	}{
		{
			"entity only",
			func(b *Builder, br Branch) { b.AddEntity(br, syntax.SingleChar('a')) },
			false, true,
		},
		{
			"epsilon",
			func(b *Builder, br Branch) { b.AddEpsilon(br, syntax.PriorityNormal) },
			true, true,
		},
		{
			"anchor",
			func(b *Builder, br Branch) { b.AddAnchor(br, syntax.LineStart) },
			false, false,
		},
		{
			"capture pair",
			func(b *Builder, br Branch) {
				b.AddBeginCapture(br, 0)
				b.AddEndCapture(br)
			},
			false, false,
		},
		{
			"reference",
			func(b *Builder, br Branch) { b.AddReference(br, 1) },
			false, false,
		},
		{
			"assertion pair",
			func(b *Builder, br Branch) {
				b.AddBeginAssertion(br, syntax.PositiveLookAhead)
				b.AddEndAssertion(br)
			},
			false, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			br := b.NewBranch(true)
			tt.add(b, br)
			n := b.Build(br.Begin)

			if n.HasEpsilon() != tt.hasEpsilon {
				t.Errorf("HasEpsilon() = %v, want %v", n.HasEpsilon(), tt.hasEpsilon)
			}
			if n.DFACompatible() != tt.dfaCompatible {
				t.Errorf("DFACompatible() = %v, want %v", n.DFACompatible(), tt.dfaCompatible)
			}
		})
	}
}

func TestBuilder_NewBranch(t *testing.T) {
	b := NewBuilder()
	br := b.NewBranch(true)
	n := b.Build(br.Begin)

	if n.State(br.Begin).Final() {
		t.Error("branch begin must not be final")
	}
	if !n.State(br.End).Final() {
		t.Error("branch end should carry the final flag")
	}
}

// TestBuilder_TransitionOrder tests that exit lists preserve
// construction order
func TestBuilder_TransitionOrder(t *testing.T) {
	b := NewBuilder()
	br := b.NewBranch(false)
	b.AddEntity(br, syntax.SingleChar('a'))
	b.AddEntity(br, syntax.SingleChar('b'))
	b.AddEntity(br, syntax.SingleChar('c'))
	n := b.Build(br.Begin)

	exits := n.State(br.Begin).Transitions()
	if len(exits) != 3 {
		t.Fatalf("got %d transitions, want 3", len(exits))
	}
	for i, want := range []byte{'a', 'b', 'c'} {
		if exits[i].Range.Lo != want {
			t.Errorf("exit %d matches %q, want %q", i, exits[i].Range.Lo, want)
		}
	}
}

func TestBuilder_CloneTransition(t *testing.T) {
	b := NewBuilder()
	src := b.NewBranch(false)
	orig := b.AddReference(src, 7)

	dst := b.NewBranch(false)
	clone := b.CloneTransition(dst, orig)

	if clone.Kind != KindReference || clone.Group != 7 {
		t.Errorf("clone = %v group %d, want Reference group 7", clone.Kind, clone.Group)
	}
	if clone.Source != dst.Begin || clone.Target != dst.End {
		t.Error("clone endpoints do not match the target branch")
	}
}

// TestBuilder_CloneBranch tests subgraph replication including interior
// states and transition order
func TestBuilder_CloneBranch(t *testing.T) {
	b := NewBuilder()

	// source: begin --a--> mid --b--> end, plus begin --c--> end
	source := b.NewBranch(false)
	mid := b.NewState(false)
	b.AddEntity(Branch{Begin: source.Begin, End: mid}, syntax.SingleChar('a'))
	b.AddEntity(Branch{Begin: mid, End: source.End}, syntax.SingleChar('b'))
	b.AddEntity(source, syntax.SingleChar('c'))

	target := b.NewBranch(false)
	b.CloneBranch(target, source)
	n := b.Build(source.Begin)

	exits := n.State(target.Begin).Transitions()
	if len(exits) != 2 {
		t.Fatalf("target begin has %d exits, want 2", len(exits))
	}
	if exits[0].Range.Lo != 'a' || exits[1].Range.Lo != 'c' {
		t.Error("clone did not preserve transition order")
	}

	// The 'a' edge must lead to a fresh interior state, not the
	// source's own.
	clonedMid := exits[0].Target
	if clonedMid == mid {
		t.Error("interior state was shared, not cloned")
	}
	midExits := n.State(clonedMid).Transitions()
	if len(midExits) != 1 || midExits[0].Range.Lo != 'b' {
		t.Fatal("interior state's edge not cloned")
	}
	if midExits[0].Target != target.End {
		t.Error("subgraph end not mapped onto target end")
	}
}

func TestBuilder_ReuseAfterBuildPanics(t *testing.T) {
	b := NewBuilder()
	start := b.NewState(true)
	b.Build(start)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on second Build")
		}
	}()
	b.Build(start)
}
