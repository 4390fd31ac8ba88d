// Package syntax parses regular expressions over the operators (, ), | and *
// into syntax trees, and compiles those trees into automata with the
// Thompson construction.
package syntax

import "thompson/internal/automaton"

// Node is a syntax tree node.
//
// Compile returns an automaton whose initial set is exactly entry. Fresh
// states come from gen. No construction adds a transition into a state of
// entry, which is what lets union branches share their entry states.
type Node interface {
	Compile(entry automaton.StateSet, gen *automaton.Generator) *automaton.Automaton

	// String renders the node back to pattern text; parsing the result
	// yields an identical tree.
	String() string
}

// Literal matches one byte, or the empty string when Empty is set.
type Literal struct {
	Char  byte
	Empty bool
}

// Epsilon returns the empty literal.
func Epsilon() *Literal { return &Literal{Empty: true} }

func (n *Literal) Compile(entry automaton.StateSet, gen *automaton.Generator) *automaton.Automaton {
	b := automaton.NewBuilder()
	if n.Empty {
		for e := range entry {
			b.AddInitial(e).AddAcceptable(e)
		}
		return b.Build()
	}
	s := gen.NewState()
	b.AddAcceptable(s)
	for e := range entry {
		b.AddInitial(e).AddTransition(e, n.Char, s)
	}
	return b.Build()
}

func (n *Literal) String() string {
	if n.Empty {
		return ""
	}
	return string([]byte{n.Char})
}

// Group is a parenthesized sub-expression. It only affects precedence.
type Group struct {
	Inner Node
}

func (n *Group) Compile(entry automaton.StateSet, gen *automaton.Generator) *automaton.Automaton {
	return n.Inner.Compile(entry, gen)
}

func (n *Group) String() string { return "(" + n.Inner.String() + ")" }

// Star matches zero or more repetitions of Inner.
type Star struct {
	Inner Node
}

// Compile loops through a fresh head state h: entry -ε-> h, the body is
// anchored at h and every accepting state of the body returns to h by ε.
// h alone is accepting. Looping back into entry instead would leak into
// whatever else is anchored at entry (a*|b would accept "ab").
func (n *Star) Compile(entry automaton.StateSet, gen *automaton.Generator) *automaton.Automaton {
	h := gen.NewState()
	body := n.Inner.Compile(automaton.NewStateSet(h), gen)

	b := automaton.NewBuilder().Include(body).AddAcceptable(h)
	for e := range entry {
		b.AddInitial(e).AddEpsilon(e, h)
	}
	for s := range body.Acceptable() {
		b.AddEpsilon(s, h)
	}
	return b.Build()
}

func (n *Star) String() string { return n.Inner.String() + "*" }

// Concat matches Left followed by Right.
type Concat struct {
	Left, Right Node
}

func (n *Concat) Compile(entry automaton.StateSet, gen *automaton.Generator) *automaton.Automaton {
	lhs := n.Left.Compile(entry, gen)
	rhs := n.Right.Compile(lhs.Acceptable(), gen)
	return automaton.Concatenate(lhs, rhs)
}

func (n *Concat) String() string { return n.Left.String() + n.Right.String() }

// Union matches either Left or Right.
type Union struct {
	Left, Right Node
}

func (n *Union) Compile(entry automaton.StateSet, gen *automaton.Generator) *automaton.Automaton {
	return automaton.Union(n.Left.Compile(entry, gen), n.Right.Compile(entry, gen))
}

func (n *Union) String() string { return n.Left.String() + "|" + n.Right.String() }

// Compile builds the automaton for root anchored at one fresh start state.
func Compile(root Node, gen *automaton.Generator) *automaton.Automaton {
	return root.Compile(automaton.NewStateSet(gen.NewState()), gen)
}
