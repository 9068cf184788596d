package geometry

import (
	"github.com/google/uuid"

	"halfplane/internal/ineq"
)

// FeasibleVertices intersects every pair of solved inequalities and keeps
// the crossings that lie in the accepted half-plane of every other solved
// inequality, i.e. the corners of the region the learner has claimed. Crossings shared by more than two lines
// are reported once. Unsolved inequalities are ignored.
func FeasibleVertices(all []ineq.Inequality) []ineq.IntersectionPoint {
	var solved []ineq.Inequality
	for _, q := range all {
		if q.Solution.Solved() {
			solved = append(solved, q)
		}
	}

	var out []ineq.IntersectionPoint
	for i := 0; i < len(solved); i++ {
		for j := i + 1; j < len(solved); j++ {
			p := Intersect(solved[i].Linear, solved[j].Linear)
			if p == nil {
				continue
			}
			if !satisfiesOthers(solved, *p, i, j) || containsPoint(out, *p) {
				continue
			}
			out = append(out, ineq.IntersectionPoint{
				Vec2:    *p,
				Correct: *p,
				Between: [2]uuid.UUID{solved[i].ID, solved[j].ID},
			})
		}
	}
	return out
}

func satisfiesOthers(solved []ineq.Inequality, p Point, i, j int) bool {
	for k, q := range solved {
		if k == i || k == j {
			continue
		}
		if l, _ := Accepted(q); !Satisfies(l, p) {
			return false
		}
	}
	return true
}

// SamePoint compares two points with the shared tolerance, scaled by their
// magnitude so that large coordinates are not held to absolute precision.
func SamePoint(p, q Point) bool {
	scale := 1.0
	for _, v := range []float64{p.X, p.Y, q.X, q.Y} {
		if v < 0 {
			v = -v
		}
		if v > scale {
			scale = v
		}
	}
	return p.Sub(q).Length() < ineq.Epsilon*scale
}

func containsPoint(list []ineq.IntersectionPoint, p Point) bool {
	for _, v := range list {
		if SamePoint(v.Vec2, p) {
			return true
		}
	}
	return false
}
