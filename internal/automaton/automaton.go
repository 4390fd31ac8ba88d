package automaton

import (
	"fmt"
	"sort"
	"strings"
)

type edge struct {
	from   State
	symbol byte
}

// Automaton is an NFA with epsilon transitions. Character transitions and
// epsilon transitions are kept in separate relations so that no byte value
// doubles as the empty symbol.
//
// An Automaton is immutable once built; every method is safe for concurrent
// use.
type Automaton struct {
	states     StateSet
	initial    StateSet
	acceptable StateSet
	delta      map[edge]StateSet
	epsilon    map[State]StateSet
}

// States returns a copy of the state set.
func (a *Automaton) States() StateSet { return a.states.Clone() }

// Initial returns a copy of the initial state set.
func (a *Automaton) Initial() StateSet { return a.initial.Clone() }

// Acceptable returns a copy of the accepting state set.
func (a *Automaton) Acceptable() StateSet { return a.acceptable.Clone() }

// Len returns the number of states.
func (a *Automaton) Len() int { return len(a.states) }

// Alphabet returns the bytes labelling at least one transition, ascending.
func (a *Automaton) Alphabet() []byte {
	seen := make(map[byte]struct{})
	for e := range a.delta {
		seen[e.symbol] = struct{}{}
	}
	out := make([]byte, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Transition is one row of the transition table. Epsilon rows have
// Epsilon set and a zero Symbol.
type Transition struct {
	From    State
	Symbol  byte
	Epsilon bool
	To      []State
}

func (t Transition) label() string {
	if t.Epsilon {
		return "ε"
	}
	return fmt.Sprintf("%q", t.Symbol)
}

// Transitions lists the transition relation sorted by source state, then
// character rows before the epsilon row, then symbol.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, len(a.delta)+len(a.epsilon))
	for e, to := range a.delta {
		out = append(out, Transition{From: e.from, Symbol: e.symbol, To: to.Sorted()})
	}
	for from, to := range a.epsilon {
		out = append(out, Transition{From: from, Epsilon: true, To: to.Sorted()})
	}
	sort.Slice(out, func(i, j int) bool {
		x, y := out[i], out[j]
		if x.From != y.From {
			return x.From.Less(y.From)
		}
		if x.Epsilon != y.Epsilon {
			return !x.Epsilon
		}
		return x.Symbol < y.Symbol
	})
	return out
}

func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "states: %s\n", a.states)
	fmt.Fprintf(&b, "initial: %s\n", a.initial)
	b.WriteString("transitions:\n")
	for _, t := range a.Transitions() {
		fmt.Fprintf(&b, "    (%s, %s): %s\n", t.From, t.label(), NewStateSet(t.To...))
	}
	fmt.Fprintf(&b, "acceptable: %s", a.acceptable)
	return b.String()
}

/* ----------- Construction ----------- */

// Builder assembles an Automaton. States referenced by any Add call join the
// state set automatically. A Builder must not be used after Build.
type Builder struct {
	a *Automaton
}

func NewBuilder() *Builder {
	return &Builder{a: &Automaton{
		states:     StateSet{},
		initial:    StateSet{},
		acceptable: StateSet{},
		delta:      map[edge]StateSet{},
		epsilon:    map[State]StateSet{},
	}}
}

func (b *Builder) AddState(states ...State) *Builder {
	for _, s := range states {
		b.a.states.Add(s)
	}
	return b
}

func (b *Builder) AddInitial(states ...State) *Builder {
	for _, s := range states {
		b.a.states.Add(s)
		b.a.initial.Add(s)
	}
	return b
}

func (b *Builder) AddAcceptable(states ...State) *Builder {
	for _, s := range states {
		b.a.states.Add(s)
		b.a.acceptable.Add(s)
	}
	return b
}

// AddTransition adds from --symbol--> to.
func (b *Builder) AddTransition(from State, symbol byte, to State) *Builder {
	b.AddState(from, to)
	e := edge{from: from, symbol: symbol}
	if b.a.delta[e] == nil {
		b.a.delta[e] = StateSet{}
	}
	b.a.delta[e].Add(to)
	return b
}

// AddEpsilon adds from --ε--> to. A self edge is dropped: it can never
// change an epsilon closure.
func (b *Builder) AddEpsilon(from, to State) *Builder {
	b.AddState(from, to)
	if from == to {
		return b
	}
	if b.a.epsilon[from] == nil {
		b.a.epsilon[from] = StateSet{}
	}
	b.a.epsilon[from].Add(to)
	return b
}

// Include copies the states and both transition relations of other. The
// initial and acceptable sets of other are not copied.
func (b *Builder) Include(other *Automaton) *Builder {
	b.a.states.AddAll(other.states)
	for e, to := range other.delta {
		if b.a.delta[e] == nil {
			b.a.delta[e] = StateSet{}
		}
		b.a.delta[e].AddAll(to)
	}
	for from, to := range other.epsilon {
		if b.a.epsilon[from] == nil {
			b.a.epsilon[from] = StateSet{}
		}
		b.a.epsilon[from].AddAll(to)
	}
	return b
}

func (b *Builder) Build() *Automaton {
	a := b.a
	b.a = nil
	return a
}

/* ----------- Algebra ----------- */

// Union returns an automaton accepting L(x) ∪ L(y). Both initial sets stay
// active at once, so no epsilon fan-out is needed.
func Union(x, y *Automaton) *Automaton {
	b := NewBuilder().Include(x).Include(y)
	for s := range unionSets(x.initial, y.initial) {
		b.AddInitial(s)
	}
	for s := range unionSets(x.acceptable, y.acceptable) {
		b.AddAcceptable(s)
	}
	return b.Build()
}

// Concatenate returns an automaton accepting L(x)·L(y): the initial set of x,
// the acceptable set of y, and an epsilon edge from every accepting state of
// x to every initial state of y.
//
// An accepting state of x that is also an initial state of y already starts y
// and gets no edges. This is what a y compiled at the accepting set of x
// needs: each of its initial states starts L(y) on its own, and an edge
// between two of them would let x repeat.
func Concatenate(x, y *Automaton) *Automaton {
	b := NewBuilder().Include(x).Include(y)
	for s := range x.initial {
		b.AddInitial(s)
	}
	for s := range y.acceptable {
		b.AddAcceptable(s)
	}
	for from := range x.acceptable {
		if y.initial.Has(from) {
			continue
		}
		for to := range y.initial {
			b.AddEpsilon(from, to)
		}
	}
	return b.Build()
}
