package ineq

import "github.com/pkg/errors"

// form is one of the accepted grammars after classification.
type form interface {
	lower() Linear
}

// standardForm: a·x + b·y + c op 0.
type standardForm struct {
	a, b, c float64
	op      Operator
}

// singleVarForm: k·v + c op 0 for v in {x, y}.
type singleVarForm struct {
	v    byte
	k, c float64
	op   Operator
}

// slopeForm: y = m·x + k.
type slopeForm struct {
	m, k float64
}

func (f standardForm) lower() Linear {
	return Linear{A: f.a, B: f.b, C: f.c, Op: f.op}
}

func (f singleVarForm) lower() Linear {
	if f.v == 'x' {
		return Linear{A: f.k, C: f.c, Op: f.op}
	}
	return Linear{B: f.k, C: f.c, Op: f.op}
}

func (f slopeForm) lower() Linear {
	return Linear{A: -f.m, B: 1, C: -f.k, Op: Equal}
}

// sums collects like terms.
type sums struct {
	x, y, c    float64
	hasX, hasY bool
}

func collect(terms []term) sums {
	var s sums
	for _, t := range terms {
		switch t.v {
		case 'x':
			s.x += t.coef
			s.hasX = true
		case 'y':
			s.y += t.coef
			s.hasY = true
		default:
			s.c += t.coef
		}
	}
	return s
}

// literalZero reports whether a side is exactly one constant term equal
// to zero.
func literalZero(terms []term) bool {
	return len(terms) == 1 && terms[0].v == 0 && terms[0].coef == 0
}

// loneY reports whether a side is exactly "y".
func loneY(terms []term) bool {
	return len(terms) == 1 && terms[0].v == 'y' && terms[0].coef == 1
}

// classify tries the grammars in order: standard, single variable, slope.
func classify(st statement) (form, error) {
	if literalZero(st.rhs) {
		s := collect(st.lhs)
		switch {
		case s.hasX && s.hasY:
			return standardForm{a: s.x, b: s.y, c: s.c, op: st.op}, nil
		case s.hasX:
			return singleVarForm{v: 'x', k: s.x, c: s.c, op: st.op}, nil
		case s.hasY:
			return singleVarForm{v: 'y', k: s.y, c: s.c, op: st.op}, nil
		}
		return nil, errors.Wrap(ErrSyntax, "left side has no x or y")
	}

	if st.op == Equal && loneY(st.lhs) {
		r := collect(st.rhs)
		if !r.hasY {
			return slopeForm{m: r.x, k: r.c}, nil
		}
	}
	return nil, errors.Wrap(ErrSyntax, "right side must be 0 unless written as y = mx + k")
}
