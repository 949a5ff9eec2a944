package fsm

// Matches walks subject through a DFA from its initial state. Epsilon runes
// in subject are skipped. A symbol without an outgoing edge rejects.
func Matches(dfa *Graph, subject string) bool {
	cur := dfa.Initial()
	for _, r := range subject {
		if r == Epsilon {
			continue
		}
		next, ok := dfa.Step(cur, r)
		if !ok {
			return false
		}
		cur = next
	}
	return dfa.IsFinal(cur)
}

// Simulate runs subject through any graph, NFA included, by tracking the
// epsilon-closed set of live states.
func Simulate(g *Graph, subject string) bool {
	closeOver := func(states []int) []int {
		set := map[int]struct{}{}
		for _, s := range states {
			for _, c := range g.EpsilonClosure(s) {
				set[c] = struct{}{}
			}
		}
		return sortedKeys(set)
	}

	cur := closeOver([]int{g.Initial()})
	for _, r := range subject {
		if r == Epsilon {
			continue
		}
		cur = closeOver(g.Move(cur, r))
		if len(cur) == 0 {
			return false
		}
	}
	for _, s := range cur {
		if g.IsFinal(s) {
			return true
		}
	}
	return false
}
