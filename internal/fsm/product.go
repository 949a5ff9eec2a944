package fsm

import "sort"

// Equivalent reports whether two DFAs accept the same language. It walks
// the product automaton over the union of both alphabets, treating a
// missing edge as a move into a rejecting sink.
func Equivalent(a, b *Graph) bool {
	type side struct {
		state int
		live  bool
	}
	type pair struct{ x, y side }

	accepts := func(g *Graph, s side) bool { return s.live && g.IsFinal(s.state) }
	step := func(g *Graph, s side, sym rune) side {
		if !s.live {
			return s
		}
		t, ok := g.Step(s.state, sym)
		return side{state: t, live: ok}
	}

	alpha := unionRunes(a.Alphabet(), b.Alphabet())
	start := pair{side{a.Initial(), true}, side{b.Initial(), true}}
	seen := map[pair]struct{}{start: {}}
	queue := []pair{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if accepts(a, p.x) != accepts(b, p.y) {
			return false
		}
		for _, c := range alpha {
			np := pair{step(a, p.x, c), step(b, p.y, c)}
			if !np.x.live && !np.y.live {
				continue
			}
			if _, ok := seen[np]; !ok {
				seen[np] = struct{}{}
				queue = append(queue, np)
			}
		}
	}
	return true
}

func unionRunes(a, b []rune) []rune {
	m := map[rune]struct{}{}
	for _, r := range a {
		m[r] = struct{}{}
	}
	for _, r := range b {
		m[r] = struct{}{}
	}
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
