// Package casefile reads batch match cases and runs them through regexlib.
//
// A case file holds one case per line:
//
//	# comment
//	"(a+b)*c" "ababc" accept
//	"a"       "b"     reject
//	"ab"      "ab"
//
// The expectation is optional; cases without one are only reported.
package casefile

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type File struct {
	Cases []*Case `parser:"@@*"`
}

type Case struct {
	Pos lexer.Position

	Pattern string  `parser:"@String"`
	Subject string  `parser:"@String"`
	Expect  *string `parser:"@('accept' | 'reject')?"`
}

// Expected returns the expected verdict and whether one was given.
func (c *Case) Expected() (accept bool, ok bool) {
	if c.Expect == nil {
		return false, false
	}
	return *c.Expect == "accept", true
}

func (c *Case) String() string {
	return fmt.Sprintf("%q %q", c.Pattern, c.Subject)
}

var caseLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(caseLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
)

func ParseString(name, data string) (*File, error) {
	return parser.ParseString(name, data)
}

func Parse(name string, r io.Reader) (*File, error) {
	return parser.Parse(name, r)
}
