package fsm

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Validate and ValidateDFA.
var (
	// ErrNoInitial means the graph has no initial state.
	ErrNoInitial = errors.New("graph has no initial state")

	// ErrNoFinal means the graph has no final state.
	ErrNoFinal = errors.New("graph has no final state")

	// ErrUnknownState means an initial, final or transition endpoint is
	// not in the state set.
	ErrUnknownState = errors.New("state not in graph")

	// ErrNondeterministic means a state has two destinations for one symbol.
	ErrNondeterministic = errors.New("multiple transitions for one symbol")

	// ErrEpsilonInDFA means a DFA carries an epsilon edge.
	ErrEpsilonInDFA = errors.New("epsilon transition in DFA")
)

// Validate checks the structural invariants every graph must hold.
func (g *Graph) Validate() error {
	if !g.hasInitial {
		return ErrNoInitial
	}
	if !g.HasState(g.initial) {
		return fmt.Errorf("initial %d: %w", g.initial, ErrUnknownState)
	}
	if len(g.finals) == 0 {
		return ErrNoFinal
	}
	for _, f := range g.finals {
		if !g.HasState(f) {
			return fmt.Errorf("final %d: %w", f, ErrUnknownState)
		}
	}
	for _, t := range g.Transitions() {
		if !g.HasState(t.From) || !g.HasState(t.To) {
			return fmt.Errorf("transition %d -> %d: %w", t.From, t.To, ErrUnknownState)
		}
	}
	return nil
}

// ValidateDFA runs Validate and additionally checks determinism.
func (g *Graph) ValidateDFA() error {
	if err := g.Validate(); err != nil {
		return err
	}
	for _, s := range g.States() {
		seen := map[rune]int{}
		for _, e := range g.Edges(s) {
			for _, r := range e.Label {
				if r == Epsilon {
					return fmt.Errorf("state %d: %w", s, ErrEpsilonInDFA)
				}
				if prev, ok := seen[r]; ok {
					return fmt.Errorf("state %d on %q to %d and %d: %w", s, r, prev, e.To, ErrNondeterministic)
				}
				seen[r] = e.To
			}
		}
	}
	return nil
}
