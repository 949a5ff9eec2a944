package fsm

import "fmt"

type pairStatus uint8

const (
	pairEquivalent pairStatus = iota
	pairUnknown
	pairDistinct
)

// classes is a partition of state indexes 0..n-1. Merges move the smaller
// class into the larger one and re-point every moved member.
type classes struct {
	of      []int
	members map[int][]int
}

func newClasses(n int) *classes {
	c := &classes{of: make([]int, n), members: make(map[int][]int, n)}
	for i := range c.of {
		c.of[i] = i
		c.members[i] = []int{i}
	}
	return c
}

func (c *classes) merge(i, j int) {
	a, b := c.of[i], c.of[j]
	if a == b {
		return
	}
	if len(c.members[a]) < len(c.members[b]) {
		a, b = b, a
	}
	for _, m := range c.members[b] {
		c.of[m] = a
	}
	c.members[a] = append(c.members[a], c.members[b]...)
	delete(c.members, b)
}

func (c *classes) count() int { return len(c.members) }

// Minimize collapses indistinguishable states of a DFA.
//
// Every unordered pair of states is inspected once. A pair is distinct when
// exactly one side is final, when only one side has an edge on some symbol,
// or when some symbol leads to a pair already known distinct. A pair whose
// targets all coincide is merged at once. Otherwise the pair waits on the
// target pairs it leads to; a worklist seeded with every distinct pair then
// propagates distinctness backwards along those dependencies. Waiting pairs
// left untouched are equivalent.
//
// A DFA that is already minimal is returned as is. Otherwise the result is
// rebuilt with classes numbered from 1 in order of their smallest state.
//
// Missing transitions count as distinguishing, which assumes every state
// can reach a final state. Determinize output always satisfies this.
func Minimize(dfa *Graph) *Graph {
	states := dfa.States()
	n := len(states)
	pos := make(map[int]int, n)
	for i, s := range states {
		pos[s] = i
	}
	pair := func(i, j int) int {
		if i > j {
			i, j = j, i
		}
		return i*n + j
	}
	alphabet := dfa.Alphabet()

	status := make([]pairStatus, n*n)
	dependents := map[int][]int{}
	eq := newClasses(n)
	var worklist []int

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			si, sj := states[i], states[j]
			p := pair(i, j)

			if dfa.IsFinal(si) != dfa.IsFinal(sj) {
				status[p] = pairDistinct
				worklist = append(worklist, p)
				continue
			}

			verdict := pairEquivalent
			var conditions []int
			for _, sym := range alphabet {
				t1, ok1 := mustStep(dfa, si, sym)
				t2, ok2 := mustStep(dfa, sj, sym)
				if ok1 != ok2 {
					verdict = pairDistinct
					break
				}
				if !ok1 || t1 == t2 {
					continue
				}
				q := pair(pos[t1], pos[t2])
				if status[q] == pairDistinct {
					verdict = pairDistinct
					break
				}
				conditions = append(conditions, q)
				verdict = pairUnknown
			}

			switch verdict {
			case pairDistinct:
				status[p] = pairDistinct
				worklist = append(worklist, p)
			case pairUnknown:
				status[p] = pairUnknown
				for _, q := range conditions {
					dependents[q] = append(dependents[q], p)
				}
			default:
				eq.merge(i, j)
			}
		}
	}

	for len(worklist) > 0 {
		d := worklist[0]
		worklist = worklist[1:]
		for _, p := range dependents[d] {
			if status[p] == pairUnknown {
				status[p] = pairDistinct
				worklist = append(worklist, p)
			}
		}
	}

	for p, st := range status {
		if st == pairUnknown {
			eq.merge(p/n, p%n)
		}
	}

	if eq.count() == n {
		return dfa
	}

	dense := map[int]int{}
	classOf := make(map[int]int, n)
	for i, s := range states {
		c := eq.of[i]
		id, ok := dense[c]
		if !ok {
			id = len(dense) + 1
			dense[c] = id
		}
		classOf[s] = id
	}
	return dfa.RebuildEquivalent(classOf)
}

func mustStep(dfa *Graph, state int, sym rune) (int, bool) {
	dst := dfa.Move([]int{state}, sym)
	switch len(dst) {
	case 0:
		return 0, false
	case 1:
		return dst[0], true
	default:
		panic(fmt.Sprintf("fsm: state %d has %d transitions on %q in a DFA", state, len(dst), sym))
	}
}
