package automaton

// EpsilonClosure returns the smallest superset of set closed under epsilon
// transitions. set itself is left untouched. Cycles are harmless: a state is
// pushed only when first added, and the result is bounded by the state count.
func (a *Automaton) EpsilonClosure(set StateSet) StateSet {
	closure := set.Clone()
	stack := make([]State, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for to := range a.epsilon[s] {
			if !closure.Has(to) {
				closure.Add(to)
				stack = append(stack, to)
			}
		}
	}
	return closure
}

// Step returns the epsilon closure of the states reachable from set by one
// transition on symbol.
func (a *Automaton) Step(set StateSet, symbol byte) StateSet {
	next := StateSet{}
	for s := range set {
		next.AddAll(a.delta[edge{from: s, symbol: symbol}])
	}
	return a.EpsilonClosure(next)
}

// Accepts reports whether a accepts the whole of input. The active state set
// lives only in this call, so any number of queries may run concurrently on
// the same automaton.
func (a *Automaton) Accepts(input string) bool {
	active := a.EpsilonClosure(a.initial)
	for i := 0; i < len(input); i++ {
		if len(active) == 0 {
			return false
		}
		active = a.Step(active, input[i])
	}
	return active.Intersects(a.acceptable)
}
