package regexlib

import "regexfsm/internal/fsm"

// Thompson fragments. Every combinator renumbers its operands into disjoint
// id ranges and copies them into a fresh graph; operands are never shared.

func epsilonNFA() *fsm.Graph {
	g := fsm.NewGraph()
	g.SetInitial(1)
	g.AddFinal(2)
	g.AddTransition(1, 2, fsm.Epsilon)
	return g
}

func symbolNFA(r rune) *fsm.Graph {
	g := fsm.NewGraph(r)
	g.SetInitial(1)
	g.AddFinal(2)
	g.AddTransition(1, 2, r)
	return g
}

// absorb copies every state and edge of src into dst.
func absorb(dst, src *fsm.Graph) {
	dst.AddSymbols(src.Alphabet()...)
	for _, s := range src.States() {
		dst.AddState(s)
	}
	dst.AddTransitions(src.Transitions())
}

func unionNFA(left, right *fsm.Graph) *fsm.Graph {
	a, m1 := left.Renumber(2)
	b, m2 := right.Renumber(m1)

	g := fsm.NewGraph()
	g.SetInitial(1)
	g.AddFinal(m2)
	absorb(g, a)
	absorb(g, b)
	g.AddTransition(1, a.Initial(), fsm.Epsilon)
	g.AddTransition(1, b.Initial(), fsm.Epsilon)
	g.AddTransition(a.Final(), m2, fsm.Epsilon)
	g.AddTransition(b.Final(), m2, fsm.Epsilon)
	return g
}

func concatNFA(left, right *fsm.Graph) *fsm.Graph {
	a, m1 := left.Renumber(1)
	b, _ := right.Renumber(m1)

	g := fsm.NewGraph()
	absorb(g, a)
	absorb(g, b)
	g.SetInitial(a.Initial())
	g.AddFinal(b.Final())
	g.AddTransition(a.Final(), b.Initial(), fsm.Epsilon)
	return g
}

func starNFA(inner *fsm.Graph) *fsm.Graph {
	a, m1 := inner.Renumber(2)

	g := fsm.NewGraph()
	g.SetInitial(1)
	g.AddFinal(m1)
	absorb(g, a)
	g.AddTransition(1, a.Initial(), fsm.Epsilon)
	g.AddTransition(1, m1, fsm.Epsilon)
	g.AddTransition(a.Final(), m1, fsm.Epsilon)
	g.AddTransition(a.Final(), a.Initial(), fsm.Epsilon)
	return g
}
