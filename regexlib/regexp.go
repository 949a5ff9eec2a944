// Package regexlib compiles regular expressions over letters and digits
// into minimal DFAs and matches whole strings against them.
//
// A pattern is built from symbols, union ('+'), implicit concatenation,
// Kleene star ('*') and grouping. Compilation runs three stages: Thompson
// construction of an NFA, subset construction of a DFA, and minimization.
package regexlib

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"regexfsm/internal/fsm"
)

// Graph is the automaton produced by every pipeline stage.
type Graph = fsm.Graph

// Regex is a compiled pattern. It keeps every intermediate automaton so
// callers can dump them.
type Regex struct {
	pattern string
	nfa     *Graph
	rawDFA  *Graph
	dfa     *Graph
}

// Compile runs the full pipeline on pattern.
func Compile(pattern string) (*Regex, error) {
	return CompileContext(context.Background(), pattern)
}

// CompileContext is Compile with a context for tracing.
func CompileContext(ctx context.Context, pattern string) (*Regex, error) {
	ctx, span := tracer.Start(ctx, "regexlib.Compile",
		trace.WithAttributes(attribute.String("regex.pattern", pattern)))
	defer span.End()

	nfa, err := CompileToNFA(pattern)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pattern error")
		recordPatternError(ctx)
		return nil, err
	}
	raw := Determinize(nfa)
	min := Minimize(raw)

	span.SetAttributes(
		attribute.Int("regex.nfa_states", nfa.NumStates()),
		attribute.Int("regex.dfa_states", raw.NumStates()),
		attribute.Int("regex.min_states", min.NumStates()),
	)
	recordStates(ctx, "nfa", nfa.NumStates())
	recordStates(ctx, "dfa", raw.NumStates())
	recordStates(ctx, "min", min.NumStates())

	return &Regex{pattern: pattern, nfa: nfa, rawDFA: raw, dfa: min}, nil
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(pattern string) *Regex {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// MatchString reports whether the whole subject is in the language.
func (r *Regex) MatchString(subject string) bool { return Matches(r.dfa, subject) }

func (r *Regex) String() string { return r.pattern }

func (r *Regex) NFA() *Graph    { return r.nfa }
func (r *Regex) RawDFA() *Graph { return r.rawDFA }
func (r *Regex) DFA() *Graph    { return r.dfa }

// Determinize converts a Thompson NFA into a DFA.
func Determinize(nfa *Graph) *Graph { return fsm.Determinize(nfa) }

// Minimize returns the minimal DFA equivalent to dfa.
func Minimize(dfa *Graph) *Graph { return fsm.Minimize(dfa) }

// Matches walks subject through dfa. It never fails: a missing transition
// is a rejection.
func Matches(dfa *Graph, subject string) bool { return fsm.Matches(dfa, subject) }

// Match compiles pattern and matches subject against it.
func Match(pattern, subject string) (bool, error) {
	nfa, err := CompileToNFA(pattern)
	if err != nil {
		return false, err
	}
	return Matches(Minimize(Determinize(nfa)), subject), nil
}
