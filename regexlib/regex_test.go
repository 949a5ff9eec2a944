package regexlib

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regexfsm/internal/fsm"
)

// ------------------------------------------------------------------- helpers

func newRE(t *testing.T, pat string) *Regex {
	t.Helper()
	re, err := Compile(pat)
	require.NoError(t, err, "compile %q", pat)
	return re
}

// words returns every string over alpha of length at most n.
func words(alpha string, n int) []string {
	out := []string{""}
	layer := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range layer {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

var corpus = []string{
	"",
	"a",
	"ab",
	"a+b",
	"a*",
	"(a+b)*c",
	"(a+b)*abb",
	"a(b+c)*",
	"(ab+a)*c",
	"a*b*",
	"(a*b*)*",
	"((a))",
	"(a+ab)(b+ba)",
	"(a+b)(a+b)(a+b)",
	"a+b+c",
	"abc+cba",
	"(0+1)*0",
	"c*(a+b)*c",
	"(a*+b)*",
	"aa*+bb*+cc*",
}

// ------------------------------------------------------------------- lexer

func TestTokenize(t *testing.T) {
	toks, err := tokenize("(a+1)*Z")
	require.NoError(t, err)

	var classes []tokenClass
	for _, tok := range toks {
		classes = append(classes, tok.class)
	}
	assert.Equal(t, []tokenClass{
		classOpen, classSymbol, classUnion, classSymbol, classClose, classStar, classSymbol,
	}, classes)
	assert.Equal(t, 'Z', toks[6].sym)
	assert.Equal(t, 6, toks[6].pos)

	_, err = tokenize("ab.c")
	var perr *PatternError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos)
	assert.Contains(t, perr.Msg, `'.'`)
}

// ------------------------------------------------------------------- parser

func TestCompileToNFA_Shape(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
		edges   []fsm.Transition
	}{
		{"", 2, []fsm.Transition{{From: 1, To: 2, Symbols: []rune{fsm.Epsilon}}}},
		{"a", 2, []fsm.Transition{{From: 1, To: 2, Symbols: []rune{'a'}}}},
		{"ab", 4, []fsm.Transition{
			{From: 1, To: 2, Symbols: []rune{'a'}},
			{From: 2, To: 3, Symbols: []rune{fsm.Epsilon}},
			{From: 3, To: 4, Symbols: []rune{'b'}},
		}},
		{"a+b", 6, []fsm.Transition{
			{From: 1, To: 2, Symbols: []rune{fsm.Epsilon}},
			{From: 1, To: 4, Symbols: []rune{fsm.Epsilon}},
			{From: 2, To: 3, Symbols: []rune{'a'}},
			{From: 3, To: 6, Symbols: []rune{fsm.Epsilon}},
			{From: 4, To: 5, Symbols: []rune{'b'}},
			{From: 5, To: 6, Symbols: []rune{fsm.Epsilon}},
		}},
		{"a*", 4, []fsm.Transition{
			{From: 1, To: 2, Symbols: []rune{fsm.Epsilon}},
			{From: 1, To: 4, Symbols: []rune{fsm.Epsilon}},
			{From: 2, To: 3, Symbols: []rune{'a'}},
			{From: 3, To: 2, Symbols: []rune{fsm.Epsilon}},
			{From: 3, To: 4, Symbols: []rune{fsm.Epsilon}},
		}},
		{"(a+b)*c", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			nfa, err := CompileToNFA(tt.pattern)
			require.NoError(t, err)
			require.NoError(t, nfa.Validate())

			assert.Equal(t, tt.states, nfa.NumStates())
			assert.Equal(t, 1, nfa.Initial())
			assert.Equal(t, tt.states, nfa.Final())
			if tt.edges != nil {
				assert.Equal(t, tt.edges, nfa.Transitions())
			}
		})
	}
}

func TestCompileToNFA_Alphabet(t *testing.T) {
	nfa, err := CompileToNFA("(b+a)*c1")
	require.NoError(t, err)
	assert.Equal(t, []rune{'1', 'a', 'b', 'c'}, nfa.Alphabet())

	nfa, err = CompileToNFA("")
	require.NoError(t, err)
	assert.Empty(t, nfa.Alphabet())
}

func TestCompileToNFA_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
	}{
		{"(a", 0},
		{"*a", 0},
		{"a++b", 2},
		{"a)", 1},
		{"()", 1},
		{"a(", 2},
		{"a+", 2},
		{"+a", 0},
		{"a b", 1},
		{"a|b", 1},
		{"a**", 2},
		{"(()", 2},
		{"((a)", 0},
		{"aɛ", 1},
		{"é", 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := CompileToNFA(tt.pattern)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPattern))

			var perr *PatternError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.pattern, perr.Pattern)
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Contains(t, err.Error(), "regex could not be parsed")
		})
	}
}

func TestParserPrecedence(t *testing.T) {
	re := newRE(t, "a+bc*")
	assert.True(t, re.MatchString("a"))
	assert.True(t, re.MatchString("b"))
	assert.True(t, re.MatchString("bccc"))
	assert.False(t, re.MatchString("ac"))
	assert.False(t, re.MatchString("abc"))

	re = newRE(t, "ab+c")
	assert.True(t, re.MatchString("ab"))
	assert.True(t, re.MatchString("c"))
	assert.False(t, re.MatchString("ac"))
}

// ------------------------------------------------------------------- scenarios

func TestMatch_Scenarios(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"a", "a", true},
		{"a", "b", false},
		{"a", "", false},
		{"a+b", "a", true},
		{"a+b", "b", true},
		{"a+b", "c", false},
		{"a+b", "ab", false},
		{"ab", "ab", true},
		{"ab", "ba", false},
		{"a*", "", true},
		{"a*", "a", true},
		{"a*", "aaaa", true},
		{"a*", "b", false},
		{"(a+b)*c", "ababc", true},
		{"(a+b)*c", "abab", false},
		{"", "", true},
		{"", "a", false},
	}

	for _, tt := range tests {
		got, err := Match(tt.pattern, tt.subject)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Match(%q, %q)", tt.pattern, tt.subject)
	}

	for _, bad := range []string{"(a", "*a", "a++b"} {
		_, err := Match(bad, "a")
		assert.ErrorIs(t, err, ErrPattern, "pattern %q", bad)
	}
}

func TestMustCompile(t *testing.T) {
	assert.Equal(t, "a*", MustCompile("a*").String())
	assert.Panics(t, func() { MustCompile("a++") })
}

// ------------------------------------------------------------------- properties

func TestPipelineAgreesWithNFA(t *testing.T) {
	subjects := words("abc", 5)
	for _, pat := range corpus {
		t.Run(pat, func(t *testing.T) {
			re := newRE(t, pat)
			for _, s := range subjects {
				want := fsm.Simulate(re.NFA(), s)
				require.Equal(t, want, re.MatchString(s), "pattern %q subject %q", pat, s)
				require.Equal(t, want, fsm.Matches(re.RawDFA(), s), "raw DFA, pattern %q subject %q", pat, s)
			}
		})
	}
}

func TestPipelineAgreesWithStdlib(t *testing.T) {
	subjects := words("abc01", 4)
	for _, pat := range corpus {
		oracle := regexp.MustCompile("^(?:" + strings.ReplaceAll(pat, "+", "|") + ")$")
		re := newRE(t, pat)
		for _, s := range subjects {
			assert.Equal(t, oracle.MatchString(s), re.MatchString(s), "pattern %q subject %q", pat, s)
		}
	}
}

func TestDeterminizeIsDeterministic(t *testing.T) {
	for _, pat := range corpus {
		re := newRE(t, pat)
		assert.NoError(t, re.RawDFA().ValidateDFA(), "pattern %q", pat)
		assert.NoError(t, re.DFA().ValidateDFA(), "pattern %q", pat)
	}
}

func TestMinimize_Properties(t *testing.T) {
	for _, pat := range corpus {
		t.Run(pat, func(t *testing.T) {
			re := newRE(t, pat)
			raw, min := re.RawDFA(), re.DFA()

			assert.LessOrEqual(t, min.NumStates(), raw.NumStates())
			assert.True(t, fsm.Equivalent(raw, min))
			assert.Same(t, min, Minimize(min), "minimizing twice must be a no-op")
		})
	}
}

func TestMinimize_KnownSizes(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"", 1},
		{"a", 2},
		{"a*", 1},
		{"a+a", 2},
		{"(a+b)*c", 2},
		{"a*b*", 2},
		{"(a+b)*abb", 4},
		{"(a+b)(a+b)(a+b)", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.states, newRE(t, tt.pattern).DFA().NumStates(), "pattern %q", tt.pattern)
	}
}

func TestRenumberPreservesStructure(t *testing.T) {
	for _, pat := range corpus {
		nfa, err := CompileToNFA(pat)
		require.NoError(t, err)

		const offset = 100
		moved, next := nfa.Renumber(offset)
		shift := offset - nfa.States()[0]

		assert.Equal(t, offset+nfa.NumStates(), next)
		assert.Equal(t, nfa.Initial()+shift, moved.Initial())
		assert.Equal(t, nfa.Final()+shift, moved.Final())

		want := nfa.Transitions()
		for i := range want {
			want[i].From += shift
			want[i].To += shift
		}
		assert.Equal(t, want, moved.Transitions(), "pattern %q", pat)
	}
}

// ------------------------------------------------------------------- bench

func BenchmarkMatchLong(b *testing.B) {
	re := MustCompile("(a+b)*abb")
	txt := strings.Repeat("ab", 500_000) + "abb"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = re.MatchString(txt)
	}
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = MustCompile("(a+b)*a(a+b)(a+b)(a+b)")
	}
}
