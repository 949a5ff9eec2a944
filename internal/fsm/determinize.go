package fsm

import (
	"strconv"
	"strings"
)

// subsetKey renders a sorted subset as a canonical map key.
func subsetKey(ids []int) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// Determinize runs the subset construction on a Thompson NFA. The DFA's
// initial state is 1; further states are numbered in discovery order.
// A DFA state is final iff its subset holds the NFA's final state.
func Determinize(nfa *Graph) *Graph {
	accept := nfa.Final()
	closures := map[int][]int{}
	closure := func(s int) []int {
		c, ok := closures[s]
		if !ok {
			c = nfa.EpsilonClosure(s)
			closures[s] = c
		}
		return c
	}

	type pending struct {
		subset []int
		id     int
	}

	dfa := NewGraph(nfa.Alphabet()...)
	start := closure(nfa.Initial())
	ids := map[string]int{subsetKey(start): 1}
	dfa.SetInitial(1)
	if contains(start, accept) {
		dfa.AddFinal(1)
	}

	queue := []pending{{subset: start, id: 1}}
	next := 2
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range dfa.Alphabet() {
			moved := nfa.Move(cur.subset, sym)
			if len(moved) == 0 {
				continue
			}
			set := map[int]struct{}{}
			for _, s := range moved {
				for _, c := range closure(s) {
					set[c] = struct{}{}
				}
			}
			subset := sortedKeys(set)
			key := subsetKey(subset)
			id, seen := ids[key]
			if !seen {
				id = next
				next++
				ids[key] = id
				dfa.AddState(id)
				if contains(subset, accept) {
					dfa.AddFinal(id)
				}
				queue = append(queue, pending{subset: subset, id: id})
			}
			dfa.AddTransition(cur.id, id, sym)
		}
	}
	return dfa
}

func contains(sorted []int, id int) bool {
	for _, s := range sorted {
		if s == id {
			return true
		}
		if s > id {
			break
		}
	}
	return false
}
