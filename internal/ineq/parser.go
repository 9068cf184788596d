package ineq

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSyntax means no grammar accepts the text.
	ErrSyntax = errors.New("invalid spell format")
	// ErrDegenerate means x and y both cancel out.
	ErrDegenerate = errors.New("spell has no x or y")
	// ErrUnsupportedOperator is returned for ≠, which is tokenised but
	// does not describe a half-plane.
	ErrUnsupportedOperator = errors.New("≠ is not supported")
)

// term is one signed summand: coef·v, or a constant when v is 0.
type term struct {
	coef float64
	v    byte
}

// statement is the parse tree of "lhs op rhs".
type statement struct {
	lhs []term
	op  Operator
	rhs []term
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func parseStatement(s string) (statement, error) {
	p := parser{toks: tokenize(s)}

	lhs, err := p.side()
	if err != nil {
		return statement{}, err
	}

	t := p.advance()
	switch t.kind {
	case tokOp:
	case tokNotEqual:
		return statement{}, ErrUnsupportedOperator
	default:
		return statement{}, errors.Wrapf(ErrSyntax, "expected comparison, got %s", describe(t))
	}

	rhs, err := p.side()
	if err != nil {
		return statement{}, err
	}
	if end := p.peek(); end.kind != tokEOF {
		if end.kind == tokNotEqual || end.kind == tokOp {
			return statement{}, errors.Wrap(ErrSyntax, "more than one comparison")
		}
		return statement{}, errors.Wrapf(ErrSyntax, "unexpected %s", describe(end))
	}
	return statement{lhs: lhs, op: t.op, rhs: rhs}, nil
}

// side parses ['+'|'-'] term { ('+'|'-') term }.
func (p *parser) side() ([]term, error) {
	var terms []term
	sign := 1.0
	switch p.peek().kind {
	case tokPlus:
		p.advance()
	case tokMinus:
		p.advance()
		sign = -1
	}
	for {
		t, err := p.term(sign)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)

		switch p.peek().kind {
		case tokPlus:
			p.advance()
			sign = 1
		case tokMinus:
			p.advance()
			sign = -1
		default:
			return terms, nil
		}
	}
}

// term parses number ['*'] [var] | var.
func (p *parser) term(sign float64) (term, error) {
	t := p.advance()
	switch t.kind {
	case tokVar:
		return term{coef: sign, v: t.v}, nil
	case tokNumber:
		out := term{coef: sign * t.num}
		if p.peek().kind == tokStar {
			p.advance()
			if p.peek().kind != tokVar {
				return term{}, errors.Wrap(ErrSyntax, "'*' must be followed by x or y")
			}
		}
		if p.peek().kind == tokVar {
			out.v = p.advance().v
		}
		return out, nil
	default:
		return term{}, errors.Wrapf(ErrSyntax, "expected a term, got %s", describe(t))
	}
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	default:
		return fmt.Sprintf("%q", t.text)
	}
}
