// Package fsm holds the automaton graph shared by NFAs and DFAs together
// with the algorithms that move a graph through the pipeline: subset
// construction, minimization and matching.
//
// States are small integers stored densely in an arena of rows, so a graph
// never aliases the state storage of another graph. Every operation that
// composes graphs (Renumber, RebuildEquivalent) returns a fresh copy.
package fsm

import (
	"sort"
)

// Epsilon labels transitions that consume no input. It is never part of
// the alphabet.
const Epsilon = 'ɛ'

// Edge is one outgoing edge of a state. A state has at most one Edge per
// destination; parallel symbols share the label.
type Edge struct {
	To    int
	Label Label
}

// Transition is a flat (src, dst, symbols) record used to export and
// bulk-import transition tables.
type Transition struct {
	From    int
	To      int
	Symbols []rune
}

type row struct {
	present bool
	final   bool
	edges   []Edge
}

// Graph is a finite automaton. The zero value is not usable, use NewGraph.
type Graph struct {
	alphabet   Label
	base       int
	rows       []row
	initial    int
	hasInitial bool
	finals     []int
	numStates  int
}

// NewGraph returns an empty graph over the given alphabet.
func NewGraph(alphabet ...rune) *Graph {
	g := &Graph{}
	g.AddSymbols(alphabet...)
	return g
}

// AddSymbols extends the alphabet. Epsilon is ignored.
func (g *Graph) AddSymbols(symbols ...rune) {
	for _, r := range symbols {
		if r != Epsilon {
			g.alphabet = g.alphabet.With(r)
		}
	}
}

// Alphabet returns the symbols in ascending order.
func (g *Graph) Alphabet() []rune {
	return append([]rune(nil), g.alphabet...)
}

func (g *Graph) slot(id int) *row {
	if len(g.rows) == 0 {
		g.base = id
		g.rows = make([]row, 1)
		return &g.rows[0]
	}
	if id < g.base {
		grow := make([]row, g.base-id, g.base-id+len(g.rows))
		g.rows = append(grow, g.rows...)
		g.base = id
	}
	if i := id - g.base; i >= len(g.rows) {
		g.rows = append(g.rows, make([]row, i-len(g.rows)+1)...)
	}
	return &g.rows[id-g.base]
}

func (g *Graph) lookup(id int) *row {
	i := id - g.base
	if i < 0 || i >= len(g.rows) || !g.rows[i].present {
		return nil
	}
	return &g.rows[i]
}

// AddState registers id as a state. Adding an existing state is a no-op.
func (g *Graph) AddState(id int) {
	r := g.slot(id)
	if !r.present {
		r.present = true
		g.numStates++
	}
}

// HasState reports whether id is a state of g.
func (g *Graph) HasState(id int) bool { return g.lookup(id) != nil }

// NumStates returns the number of states.
func (g *Graph) NumStates() int { return g.numStates }

// States returns every state id in ascending order.
func (g *Graph) States() []int {
	out := make([]int, 0, g.numStates)
	for i := range g.rows {
		if g.rows[i].present {
			out = append(out, g.base+i)
		}
	}
	return out
}

// SetInitial sets the initial state, adding it to the state set.
func (g *Graph) SetInitial(id int) {
	g.AddState(id)
	g.initial = id
	g.hasInitial = true
}

// Initial returns the initial state.
func (g *Graph) Initial() int { return g.initial }

// AddFinal marks states as final, adding them to the state set.
func (g *Graph) AddFinal(ids ...int) {
	for _, id := range ids {
		g.AddState(id)
		r := g.lookup(id)
		if !r.final {
			r.final = true
			g.finals = append(g.finals, id)
		}
	}
}

// IsFinal reports whether id is a final state.
func (g *Graph) IsFinal(id int) bool {
	r := g.lookup(id)
	return r != nil && r.final
}

// Finals returns the final states in the order they were added.
func (g *Graph) Finals() []int {
	return append([]int(nil), g.finals...)
}

// Final returns the single final state of a Thompson NFA.
func (g *Graph) Final() int {
	if len(g.finals) != 1 {
		panic("fsm: graph does not have exactly one final state")
	}
	return g.finals[0]
}

// AddTransition adds src -> dst labelled with symbols, merging the symbols
// into the label of an existing src -> dst edge.
func (g *Graph) AddTransition(src, dst int, symbols ...rune) {
	g.AddState(src)
	g.AddState(dst)
	for _, r := range symbols {
		if r != Epsilon {
			g.alphabet = g.alphabet.With(r)
		}
	}
	r := g.lookup(src)
	for i := range r.edges {
		if r.edges[i].To == dst {
			r.edges[i].Label = r.edges[i].Label.With(symbols...)
			return
		}
	}
	r.edges = append(r.edges, Edge{To: dst, Label: Label(nil).With(symbols...)})
}

// AddTransitions bulk-imports a transition table.
func (g *Graph) AddTransitions(table []Transition) {
	for _, t := range table {
		g.AddTransition(t.From, t.To, t.Symbols...)
	}
}

// Edges returns the outgoing edges of id ordered by destination.
func (g *Graph) Edges(id int) []Edge {
	r := g.lookup(id)
	if r == nil {
		return nil
	}
	out := make([]Edge, len(r.edges))
	copy(out, r.edges)
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })
	return out
}

// Transitions exports the transition table, ordered by source then
// destination.
func (g *Graph) Transitions() []Transition {
	var out []Transition
	for _, src := range g.States() {
		for _, e := range g.Edges(src) {
			out = append(out, Transition{From: src, To: e.To, Symbols: e.Label.Runes()})
		}
	}
	return out
}

// EpsilonClosure returns id together with every state reachable from it
// over epsilon edges only.
func (g *Graph) EpsilonClosure(id int) []int {
	seen := map[int]struct{}{id: {}}
	stack := []int{id}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r := g.lookup(s)
		if r == nil {
			continue
		}
		for _, e := range r.edges {
			if !e.Label.Has(Epsilon) {
				continue
			}
			if _, ok := seen[e.To]; !ok {
				seen[e.To] = struct{}{}
				stack = append(stack, e.To)
			}
		}
	}
	return sortedKeys(seen)
}

// Move returns the states reachable from any member of states by one edge
// carrying sym.
func (g *Graph) Move(states []int, sym rune) []int {
	dst := map[int]struct{}{}
	for _, s := range states {
		r := g.lookup(s)
		if r == nil {
			continue
		}
		for _, e := range r.edges {
			if e.Label.Has(sym) {
				dst[e.To] = struct{}{}
			}
		}
	}
	return sortedKeys(dst)
}

// InverseMove returns the states with an edge carrying sym into any member
// of states.
func (g *Graph) InverseMove(states []int, sym rune) []int {
	want := make(map[int]struct{}, len(states))
	for _, s := range states {
		want[s] = struct{}{}
	}
	src := map[int]struct{}{}
	for i := range g.rows {
		if !g.rows[i].present {
			continue
		}
		for _, e := range g.rows[i].edges {
			if _, ok := want[e.To]; ok && e.Label.Has(sym) {
				src[g.base+i] = struct{}{}
			}
		}
	}
	return sortedKeys(src)
}

// Step follows the sym edge out of state. It reports false when there is
// none. On a nondeterministic graph the lowest destination wins.
func (g *Graph) Step(state int, sym rune) (int, bool) {
	r := g.lookup(state)
	if r == nil {
		return 0, false
	}
	best, found := 0, false
	for _, e := range r.edges {
		if e.Label.Has(sym) && (!found || e.To < best) {
			best, found = e.To, true
		}
	}
	return best, found
}

// Renumber copies g with its states mapped, in ascending order, onto
// offset, offset+1, ... It returns the copy and the first id past the range.
func (g *Graph) Renumber(offset int) (*Graph, int) {
	next := offset
	translate := make(map[int]int, g.numStates)
	for _, s := range g.States() {
		translate[s] = next
		next++
	}
	return g.rebuild(translate), next
}

// RebuildEquivalent copies g with every state s replaced by classOf[s].
// States that share a class collapse into one, and their edges and final
// flags are unioned. Every state of g must appear in classOf.
func (g *Graph) RebuildEquivalent(classOf map[int]int) *Graph {
	return g.rebuild(classOf)
}

func (g *Graph) rebuild(translate map[int]int) *Graph {
	mapped := func(s int) int {
		t, ok := translate[s]
		if !ok {
			panic("fsm: state missing from translation")
		}
		return t
	}
	out := NewGraph(g.alphabet...)
	for _, s := range g.States() {
		out.AddState(mapped(s))
	}
	if g.hasInitial {
		out.SetInitial(mapped(g.initial))
	}
	for _, f := range g.finals {
		out.AddFinal(mapped(f))
	}
	for _, t := range g.Transitions() {
		out.AddTransition(mapped(t.From), mapped(t.To), t.Symbols...)
	}
	return out
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
