// Package geometry decides which side of a boundary line a point lies on,
// intersects boundary lines and builds the polygons used to draw
// half-planes. Everything here is pure and safe to call on every redraw.
package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"halfplane/internal/ineq"
)

// Point is a position in math coordinates.
type Point = vec.Vec2

const (
	// Far is how far from the origin BoundaryPoints places its points.
	Far = 10000.0
	// Extent is the multiplier that pushes a half-plane polygon out to
	// practical infinity.
	Extent = 10000.0
)

func nearZero(v float64) bool {
	return math.Abs(v) < ineq.Epsilon
}

// Evaluate returns a·x + b·y + c.
func Evaluate(l ineq.Linear, p Point) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

// Satisfies reports whether p solves the inequality. On the boundary
// strict operators fail and non-strict ones (and =) hold; off the boundary
// = never holds.
func Satisfies(l ineq.Linear, p Point) bool {
	v := Evaluate(l, p)
	if nearZero(v) {
		return !l.Op.Strict()
	}
	switch l.Op {
	case ineq.Less, ineq.LessEq:
		return v < 0
	case ineq.Greater, ineq.GreaterEq:
		return v > 0
	default:
		return false
	}
}

// CorrectSide returns the region whose points satisfy l: RegionA for > and
// ≥, RegionB for < and ≤, OnLine for equations.
func CorrectSide(l ineq.Linear) ineq.Side {
	switch l.Op {
	case ineq.Greater, ineq.GreaterEq:
		return ineq.RegionA
	case ineq.Less, ineq.LessEq:
		return ineq.RegionB
	default:
		return ineq.OnLine
	}
}

// ClaimCorrect reports whether q is solved with the side that satisfies it.
func ClaimCorrect(q ineq.Inequality) bool {
	side, ok := q.Solution.Side()
	return ok && side == CorrectSide(q.Linear)
}

// Accepted returns the half-plane the learner claimed for q. A wrong claim
// keeps the boundary and strictness but faces the other way. Unsolved
// inequalities have no accepted half-plane.
func Accepted(q ineq.Inequality) (ineq.Linear, bool) {
	if !q.Solution.Solved() {
		return ineq.Linear{}, false
	}
	l := q.Linear
	if !ClaimCorrect(q) && !q.Equation() {
		l.Op = l.Op.Reverse()
	}
	return l, true
}

// SideOf reports which region p is in, or false when it is on the line.
func SideOf(l ineq.Linear, p Point) (ineq.Side, bool) {
	v := Evaluate(l, p)
	switch {
	case nearZero(v):
		return 0, false
	case v > 0:
		return ineq.RegionA, true
	default:
		return ineq.RegionB, true
	}
}

// BoundaryPoints returns two points far apart on the line a·x + b·y + c = 0.
// Vertical lines (b ≈ 0) are solved for x instead of y. Degenerate input
// yields ok == false.
func BoundaryPoints(l ineq.Linear) (p, q Point, ok bool) {
	switch {
	case !nearZero(l.B):
		p = Point{X: -Far, Y: -(l.A*-Far + l.C) / l.B}
		q = Point{X: Far, Y: -(l.A*Far + l.C) / l.B}
	case !nearZero(l.A):
		x := -l.C / l.A
		p = Point{X: x, Y: -Far}
		q = Point{X: x, Y: Far}
	default:
		return Point{}, Point{}, false
	}
	return p, q, true
}

// Intersect solves the two boundary equations with Cramer's rule. It
// returns nil for parallel or coincident lines; callers must not retry.
func Intersect(l1, l2 ineq.Linear) *Point {
	det := l1.A*l2.B - l2.A*l1.B
	if nearZero(det) {
		return nil
	}
	x := (-l1.C*l2.B + l2.C*l1.B) / det
	y := (-l1.A*l2.C + l2.A*l1.C) / det
	return &Point{X: x, Y: y}
}

// Normals returns the unit normals pointing into region A and region B.
func Normals(l ineq.Linear) (a, b Point, ok bool) {
	n := Point{X: l.A, Y: l.B}
	length := n.Length()
	if nearZero(length) {
		return Point{}, Point{}, false
	}
	a = n.Mul(1 / length)
	return a, a.Mul(-1), true
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return p.Add(q).Mul(0.5)
}

// Closest returns the point on the boundary line nearest to p.
func Closest(l ineq.Linear, p Point) (Point, bool) {
	n2 := l.A*l.A + l.B*l.B
	if nearZero(n2) {
		return Point{}, false
	}
	d := Evaluate(l, p) / n2
	return Point{X: p.X - d*l.A, Y: p.Y - d*l.B}, true
}

// FillDirection picks the unit normal pointing into the side to fill. A
// solved inequality uses its claimed side. Before a claim is made, the
// normal whose probe point (mid ± normal) satisfies the inequality wins.
// Equations have no fill side.
func FillDirection(q ineq.Inequality, mid Point) (Point, bool) {
	na, nb, ok := Normals(q.Linear)
	if !ok || q.Equation() {
		return Point{}, false
	}
	if side, solved := q.Solution.Side(); solved {
		switch side {
		case ineq.RegionA:
			return na, true
		case ineq.RegionB:
			return nb, true
		default:
			return Point{}, false
		}
	}
	switch {
	case Satisfies(q.Linear, mid.Add(na)):
		return na, true
	case Satisfies(q.Linear, mid.Add(nb)):
		return nb, true
	}
	return Point{}, false
}

// HalfPlane returns the quad p, q, q+dir·Extent, p+dir·Extent covering the
// side of segment pq that dir points into.
func HalfPlane(p, q, dir Point) []Point {
	off := dir.Mul(Extent)
	return []Point{p, q, q.Add(off), p.Add(off)}
}

// SolutionPolygon builds the fill polygon for q, or nil if q has no side
// to fill.
func SolutionPolygon(q ineq.Inequality) []Point {
	p1, p2, ok := BoundaryPoints(q.Linear)
	if !ok {
		return nil
	}
	dir, ok := FillDirection(q, Midpoint(p1, p2))
	if !ok {
		return nil
	}
	return HalfPlane(p1, p2, dir)
}
