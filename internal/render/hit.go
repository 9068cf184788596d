package render

import (
	"math"

	"halfplane/internal/view"
)

// HitTest returns the topmost control or vertex under s.
func HitTest(ops []Op, s view.Screen) Target {
	for i := len(ops) - 1; i >= 0; i-- {
		switch op := ops[i].(type) {
		case RegionControl:
			if s.Dist(op.Center) <= math.Max(op.Radius, HitRadius) {
				return op.Target
			}
		case VertexMark:
			if s.Dist(op.At) <= math.Max(op.Radius, HitRadius) {
				return op.Target
			}
		}
	}
	return Target{}
}

// Targets lists the clickable targets in paint order, for keyboard focus.
func Targets(ops []Op) []Target {
	var out []Target
	for _, op := range ops {
		switch op := op.(type) {
		case RegionControl:
			out = append(out, op.Target)
		case VertexMark:
			out = append(out, op.Target)
		}
	}
	return out
}

// Correct reports whether the region control for t is on the solution side.
func Correct(ops []Op, t Target) (correct, found bool) {
	for _, op := range ops {
		if rc, ok := op.(RegionControl); ok && rc.Target == t {
			return rc.Correct, true
		}
	}
	return false, false
}
