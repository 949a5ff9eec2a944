package fsm

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable listing of the graph. The layout is for
// people, not for parsing back.
func (g *Graph) Dump(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "States: %v\n", g.States())
	fmt.Fprintf(&b, "Init state: %d\n", g.initial)
	fmt.Fprintf(&b, "Final states: %v\n", g.finals)
	b.WriteString("Transitions:\n")
	for _, t := range g.Transitions() {
		for _, r := range t.Symbols {
			fmt.Fprintf(&b, "\t%d --> %d on %c\n", t.From, t.To, r)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (g *Graph) String() string {
	var b strings.Builder
	_ = g.Dump(&b)
	return b.String()
}

// WriteDOT writes the graph in Graphviz format.
func (g *Graph) WriteDOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("    rankdir=LR;\n")
	for _, s := range g.States() {
		shape := "circle"
		if g.IsFinal(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    s%d [shape=%s];\n", s, shape)
	}
	for _, t := range g.Transitions() {
		fmt.Fprintf(&b, "    s%d -> s%d [label=\"%s\"];\n", t.From, t.To, Label(t.Symbols))
	}
	fmt.Fprintf(&b, "    _start [shape=point]; _start -> s%d;\n", g.initial)
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
