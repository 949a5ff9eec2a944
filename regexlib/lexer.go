package regexlib

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

type tokenClass int

const (
	classStart  tokenClass = iota // before the first token
	classSymbol                   // letter or digit
	classOpen                     // (
	classClose                    // )
	classStar                     // *
	classUnion                    // +
	classConcat                   // implicit, never lexed
	classEnd                      // after the last token
)

func (c tokenClass) String() string {
	switch c {
	case classStart:
		return "start of pattern"
	case classSymbol:
		return "symbol"
	case classOpen:
		return "'('"
	case classClose:
		return "')'"
	case classStar:
		return "'*'"
	case classUnion:
		return "'+'"
	case classConcat:
		return "concatenation"
	default:
		return "end of pattern"
	}
}

type token struct {
	class tokenClass
	sym   rune
	pos   int
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Symbol", Pattern: `[A-Za-z0-9]`},
	{Name: "Open", Pattern: `\(`},
	{Name: "Close", Pattern: `\)`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Union", Pattern: `\+`},
})

var tokenClasses = func() map[lexer.TokenType]tokenClass {
	syms := patternLexer.Symbols()
	return map[lexer.TokenType]tokenClass{
		syms["Symbol"]: classSymbol,
		syms["Open"]:   classOpen,
		syms["Close"]:  classClose,
		syms["Star"]:   classStar,
		syms["Union"]:  classUnion,
	}
}()

// tokenize splits pattern into tokens. Characters outside the pattern
// alphabet are reported with their byte offset.
func tokenize(pattern string) ([]token, error) {
	lex, err := patternLexer.LexString("", pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Pos: 0, Msg: err.Error()}
	}
	var out []token
	offset := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			r, _ := utf8.DecodeRuneInString(pattern[offset:])
			return nil, &PatternError{Pattern: pattern, Pos: offset, Msg: "symbol " + quoteRune(r) + " is not permitted"}
		}
		if tok.Type == lexer.EOF {
			return out, nil
		}
		r, _ := utf8.DecodeRuneInString(tok.Value)
		out = append(out, token{class: tokenClasses[tok.Type], sym: r, pos: tok.Pos.Offset})
		offset = tok.Pos.Offset + len(tok.Value)
	}
}
