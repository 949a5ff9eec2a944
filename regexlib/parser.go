package regexlib

import (
	"fmt"

	"regexfsm/internal/fsm"
)

// legal[prev][next] says whether a token of class next may follow one of
// class prev. classConcat never appears as prev: it is always followed by
// the symbol or '(' that caused it.
var legal = [classEnd + 1][classEnd + 1]bool{
	classStart:  {classSymbol: true, classOpen: true, classEnd: true},
	classSymbol: {classSymbol: true, classOpen: true, classClose: true, classStar: true, classUnion: true, classEnd: true},
	classOpen:   {classSymbol: true, classOpen: true},
	classClose:  {classSymbol: true, classOpen: true, classClose: true, classStar: true, classUnion: true, classEnd: true},
	classStar:   {classSymbol: true, classOpen: true, classClose: true, classUnion: true, classEnd: true},
	classUnion:  {classSymbol: true, classOpen: true},
}

// joinsImplicitly reports whether an operand starting after prev must be
// concatenated onto what came before.
func joinsImplicitly(prev tokenClass) bool {
	return prev == classSymbol || prev == classClose || prev == classStar
}

// parser is a two-stack shunting-yard: operators wait on ops, Thompson
// fragments on nfas. No syntax tree is built.
type parser struct {
	pattern string
	ops     []token
	nfas    []*fsm.Graph
	prev    tokenClass
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &PatternError{Pattern: p.pattern, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// CompileToNFA parses pattern into a Thompson NFA with a single final state.
// The empty pattern yields the epsilon automaton.
func CompileToNFA(pattern string) (*fsm.Graph, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return epsilonNFA(), nil
	}

	p := &parser{pattern: pattern, prev: classStart}
	for _, tok := range tokens {
		if err := p.feed(tok); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

func (p *parser) feed(tok token) error {
	if !legal[p.prev][tok.class] {
		return p.errorf(tok.pos, "unexpected %v after %v", tok.class, p.prev)
	}

	switch tok.class {
	case classSymbol:
		if joinsImplicitly(p.prev) {
			if err := p.pushOp(token{class: classConcat, pos: tok.pos}); err != nil {
				return err
			}
		}
		p.nfas = append(p.nfas, symbolNFA(tok.sym))

	case classOpen:
		if joinsImplicitly(p.prev) {
			if err := p.pushOp(token{class: classConcat, pos: tok.pos}); err != nil {
				return err
			}
		}
		p.ops = append(p.ops, tok)

	case classClose:
		for {
			if len(p.ops) == 0 {
				return p.errorf(tok.pos, "unbalanced ')'")
			}
			op := p.popOp()
			if op.class == classOpen {
				break
			}
			if err := p.apply(op); err != nil {
				return err
			}
		}

	case classStar:
		if err := p.apply(tok); err != nil {
			return err
		}

	case classUnion:
		if err := p.pushOp(tok); err != nil {
			return err
		}
	}

	p.prev = tok.class
	return nil
}

// pushOp applies pending operators of equal class, and any pending
// concatenation, before pushing op.
func (p *parser) pushOp(op token) error {
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		if top.class == classOpen || (top.class != op.class && top.class != classConcat) {
			break
		}
		p.popOp()
		if err := p.apply(top); err != nil {
			return err
		}
	}
	p.ops = append(p.ops, op)
	return nil
}

func (p *parser) popOp() token {
	op := p.ops[len(p.ops)-1]
	p.ops = p.ops[:len(p.ops)-1]
	return op
}

func (p *parser) popNFA() *fsm.Graph {
	g := p.nfas[len(p.nfas)-1]
	p.nfas = p.nfas[:len(p.nfas)-1]
	return g
}

func (p *parser) apply(op token) error {
	switch op.class {
	case classStar:
		if len(p.nfas) == 0 {
			return p.errorf(op.pos, "nothing to repeat")
		}
		p.nfas = append(p.nfas, starNFA(p.popNFA()))
	case classUnion, classConcat:
		if len(p.nfas) < 2 {
			return p.errorf(op.pos, "%v is missing an operand", op.class)
		}
		right := p.popNFA()
		left := p.popNFA()
		if op.class == classUnion {
			p.nfas = append(p.nfas, unionNFA(left, right))
		} else {
			p.nfas = append(p.nfas, concatNFA(left, right))
		}
	default:
		panic(fmt.Sprintf("regexlib: cannot apply %v", op.class))
	}
	return nil
}

func (p *parser) finish() (*fsm.Graph, error) {
	if !legal[p.prev][classEnd] {
		return nil, p.errorf(len(p.pattern), "unexpected %v after %v", classEnd, p.prev)
	}
	for len(p.ops) > 0 {
		op := p.popOp()
		if op.class == classOpen {
			return nil, p.errorf(op.pos, "unbalanced '('")
		}
		if err := p.apply(op); err != nil {
			return nil, err
		}
	}
	if len(p.nfas) != 1 {
		return nil, p.errorf(len(p.pattern), "%d fragments left on the stack", len(p.nfas))
	}
	return p.nfas[0], nil
}
