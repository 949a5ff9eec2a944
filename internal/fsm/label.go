package fsm

import (
	"sort"
	"strings"
)

// Label is the set of symbols carried by one edge, kept sorted.
type Label []rune

// Has reports whether r is in the label.
func (l Label) Has(r rune) bool {
	i := sort.Search(len(l), func(i int) bool { return l[i] >= r })
	return i < len(l) && l[i] == r
}

// With returns the union of l and rs. The receiver is not modified.
func (l Label) With(rs ...rune) Label {
	out := append(Label(nil), l...)
	for _, r := range rs {
		i := sort.Search(len(out), func(i int) bool { return out[i] >= r })
		if i < len(out) && out[i] == r {
			continue
		}
		out = append(out, 0)
		copy(out[i+1:], out[i:])
		out[i] = r
	}
	return out
}

// Runes returns a copy of the symbols.
func (l Label) Runes() []rune { return append([]rune(nil), l...) }

func (l Label) String() string {
	parts := make([]string, len(l))
	for i, r := range l {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
