// Package ineq holds the linear inequality data model and the parser that
// turns typed text into it.
package ineq

import (
	"math"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"
)

// Epsilon is the tolerance below which a floating point result is treated
// as zero. Every boundary and degeneracy judgement uses it.
const Epsilon = 1e-9

type Operator int

const (
	Less Operator = iota
	LessEq
	Greater
	GreaterEq
	Equal
)

func (op Operator) String() string {
	switch op {
	case Less:
		return "<"
	case LessEq:
		return "≤"
	case Greater:
		return ">"
	case GreaterEq:
		return "≥"
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Strict reports whether points on the boundary line are excluded.
func (op Operator) Strict() bool {
	return op == Less || op == Greater
}

// Reverse returns the operator obtained after multiplying both sides by a
// negative number.
func (op Operator) Reverse() Operator {
	switch op {
	case Less:
		return Greater
	case LessEq:
		return GreaterEq
	case Greater:
		return Less
	case GreaterEq:
		return LessEq
	default:
		return op
	}
}

// Linear is the canonical form A·x + B·y + C Op 0.
type Linear struct {
	A, B, C float64
	Op      Operator
}

func nearZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// Degenerate reports whether both variable coefficients vanish.
func (l Linear) Degenerate() bool {
	return nearZero(l.A) && nearZero(l.B)
}

// Scale multiplies the coefficients by k, reversing the operator when k is
// negative. Scaling by zero is not meaningful and returns l unchanged.
func (l Linear) Scale(k float64) Linear {
	if nearZero(k) {
		return l
	}
	out := Linear{A: l.A * k, B: l.B * k, C: l.C * k, Op: l.Op}
	if k < 0 {
		out.Op = l.Op.Reverse()
	}
	return out
}

// Equivalent is the duplicate check used before accepting a new spell:
// coefficients and operator must match up to Epsilon.
func Equivalent(p, q Linear) bool {
	return p.Op == q.Op &&
		nearZero(p.A-q.A) &&
		nearZero(p.B-q.B) &&
		nearZero(p.C-q.C)
}

type Side int

const (
	RegionA Side = iota + 1 // side the normal (A, B) points into
	RegionB                 // opposite side
	OnLine                  // equations: the solution set is the line itself
)

func (s Side) String() string {
	switch s {
	case RegionA:
		return "A"
	case RegionB:
		return "B"
	case OnLine:
		return "line"
	default:
		return "none"
	}
}

// Solution is the solved state of an inequality. The zero value is
// unsolved; a side can only be held once solved.
type Solution struct {
	side Side
}

func Solved(side Side) Solution {
	return Solution{side: side}
}

func (s Solution) Solved() bool {
	return s.side != 0
}

func (s Solution) Side() (Side, bool) {
	return s.side, s.side != 0
}

// Inequality is an accepted spell on the board.
type Inequality struct {
	ID uuid.UUID
	Linear
	Label    string
	Color    string
	Text     string // formatted canonical expression
	Source   string // raw input as typed
	Solution Solution
}

// Equation reports whether the inequality is really a line (operator =).
func (q Inequality) Equation() bool {
	return q.Op == Equal
}

type VertexStatus int

const (
	VertexUnsolved VertexStatus = iota
	VertexActive
	VertexPartial
	VertexSolved
)

func (s VertexStatus) String() string {
	switch s {
	case VertexActive:
		return "ACTIVE"
	case VertexPartial:
		return "PARTIAL"
	case VertexSolved:
		return "SOLVED"
	default:
		return "UNSOLVED"
	}
}

// IntersectionPoint is a vertex of the feasible region that the learner
// has to locate.
type IntersectionPoint struct {
	vec.Vec2
	Status  VertexStatus
	Correct vec.Vec2
	Between [2]uuid.UUID
}
