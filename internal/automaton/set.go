package automaton

import (
	"sort"
	"strings"
)

// StateSet is a set of states.
type StateSet map[State]struct{}

// NewStateSet returns a set holding states.
func NewStateSet(states ...State) StateSet {
	set := make(StateSet, len(states))
	for _, s := range states {
		set[s] = struct{}{}
	}
	return set
}

func (set StateSet) Add(s State) { set[s] = struct{}{} }

func (set StateSet) Has(s State) bool {
	_, ok := set[s]
	return ok
}

func (set StateSet) Len() int { return len(set) }

// AddAll inserts every member of other and reports whether set grew.
func (set StateSet) AddAll(other StateSet) bool {
	grew := false
	for s := range other {
		if _, ok := set[s]; !ok {
			set[s] = struct{}{}
			grew = true
		}
	}
	return grew
}

func (set StateSet) Clone() StateSet {
	out := make(StateSet, len(set))
	for s := range set {
		out[s] = struct{}{}
	}
	return out
}

// Intersects reports whether set and other share a state.
func (set StateSet) Intersects(other StateSet) bool {
	small, big := set, other
	if len(small) > len(big) {
		small, big = big, small
	}
	for s := range small {
		if big.Has(s) {
			return true
		}
	}
	return false
}

func (set StateSet) Equal(other StateSet) bool {
	if len(set) != len(other) {
		return false
	}
	for s := range set {
		if !other.Has(s) {
			return false
		}
	}
	return true
}

// Sorted returns the members of set in State.Less order.
func (set StateSet) Sorted() []State {
	out := make([]State, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (set StateSet) String() string {
	sorted := set.Sorted()
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func unionSets(a, b StateSet) StateSet {
	out := a.Clone()
	out.AddAll(b)
	return out
}
