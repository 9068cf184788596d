package render

import (
	"math"
	"strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"halfplane/internal/geometry"
	"halfplane/internal/ineq"
	"halfplane/internal/view"
)

// Scene is everything the planner needs for one frame.
type Scene struct {
	Inequalities []ineq.Inequality
	Vertices     []ineq.IntersectionPoint
	Transform    view.Transform
	Width        float64
	Height       float64
	Hover        Target
	Focus        Target
	Reveal       bool // fill unsolved inequalities with their true side
}

// Plan returns the draw operations for s in paint order: background, grid,
// axes and ticks, then per inequality its fill, boundary, label and region
// controls, then the feasible-region vertices. A scene with no area or no
// zoom yet plans only its background.
func Plan(s Scene) []Op {
	ops := []Op{Background{Width: s.Width, Height: s.Height}}
	if s.Width <= 0 || s.Height <= 0 || s.Transform.Zoom <= 0 {
		return ops
	}
	bounds := s.Transform.Bounds(s.Width, s.Height)

	ops = planGrid(ops, s, bounds)
	ops = planAxes(ops, s, bounds)

	for _, q := range s.Inequalities {
		ops = planInequality(ops, s, bounds, q)
	}

	for i, v := range s.Vertices {
		at := s.Transform.ToScreen(v.Vec2)
		if !onScreen(at, s.Width, s.Height) {
			continue
		}
		t := Target{Kind: TargetVertex, Vertex: i}
		ops = append(ops, VertexMark{
			Target: t,
			At:     at,
			Radius: VertexRadius,
			Status: v.Status,
			Hover:  s.Hover == t,
			Focus:  s.Focus == t,
		})
	}
	return ops
}

func onScreen(p view.Screen, w, h float64) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= w && p.Y <= h
}

func planGrid(ops []Op, s Scene, b rect.Rect) []Op {
	for x := math.Ceil(b.LLx); x <= b.URx; x++ {
		sx := s.Transform.ToScreen(vec.Vec2{X: x}).X
		ops = append(ops, GridLine{From: view.Screen{X: sx}, To: view.Screen{X: sx, Y: s.Height}, Vertical: true})
	}
	for y := math.Ceil(b.LLy); y <= b.URy; y++ {
		sy := s.Transform.ToScreen(vec.Vec2{Y: y}).Y
		ops = append(ops, GridLine{From: view.Screen{Y: sy}, To: view.Screen{X: s.Width, Y: sy}})
	}
	return ops
}

// tickStep is the smallest 1-2-5 step whose spacing is at least MinTickGap.
func tickStep(zoom float64) float64 {
	if zoom <= 0 {
		return 1
	}
	for mag := 1.0; ; mag *= 10 {
		for _, m := range []float64{1, 2, 5} {
			if m*mag*zoom >= MinTickGap {
				return m * mag
			}
		}
	}
}

func planAxes(ops []Op, s Scene, b rect.Rect) []Op {
	origin := s.Transform.ToScreen(vec.Vec2{})
	step := tickStep(s.Transform.Zoom)

	if b.LLy <= 0 && 0 <= b.URy {
		ops = append(ops, Axis{From: view.Screen{Y: origin.Y}, To: view.Screen{X: s.Width, Y: origin.Y}})
		for x := math.Ceil(b.LLx/step) * step; x <= b.URx; x += step {
			if x == 0 {
				continue
			}
			ops = append(ops, Tick{
				At:    view.Screen{X: s.Transform.ToScreen(vec.Vec2{X: x}).X, Y: origin.Y},
				Label: strconv.FormatFloat(x, 'f', -1, 64),
			})
		}
	}
	if b.LLx <= 0 && 0 <= b.URx {
		ops = append(ops, Axis{From: view.Screen{X: origin.X, Y: s.Height}, To: view.Screen{X: origin.X}, Vertical: true})
		for y := math.Ceil(b.LLy/step) * step; y <= b.URy; y += step {
			if y == 0 {
				continue
			}
			ops = append(ops, Tick{
				At:       view.Screen{X: origin.X, Y: s.Transform.ToScreen(vec.Vec2{Y: y}).Y},
				Label:    strconv.FormatFloat(y, 'f', -1, 64),
				Vertical: true,
			})
		}
	}
	return ops
}

func planInequality(ops []Op, s Scene, b rect.Rect, q ineq.Inequality) []Op {
	tr := s.Transform

	if q.Solution.Solved() || s.Reveal {
		if poly := geometry.ClipPolygon(geometry.SolutionPolygon(q), b); len(poly) >= 3 {
			ops = append(ops, Fill{Inequality: q.ID, Path: screenPath(tr, poly), Color: q.Color})
		}
	}

	p1, p2, ok := geometry.BoundaryPoints(q.Linear)
	if !ok {
		return ops
	}
	p1, p2, ok = geometry.ClipLine(p1, p2, b)
	if !ok {
		return ops
	}
	from, to := tr.ToScreen(p1), tr.ToScreen(p2)
	ops = append(ops, Boundary{
		Inequality: q.ID,
		From:       from,
		To:         to,
		Dashed:     q.Op.Strict(),
		Color:      q.Color,
	})
	ops = append(ops, Label{At: labelPosition(tr, q, p1, p2), Text: q.Label, Color: q.Color})

	if geometry.ClaimCorrect(q) {
		return ops
	}
	na, nb, ok := geometry.Normals(q.Linear)
	if !ok {
		return ops
	}
	mid := geometry.Midpoint(p1, p2)
	off := tr.Scale(ControlOffset)
	for _, c := range []struct {
		side ineq.Side
		n    geometry.Point
	}{{ineq.RegionA, na}, {ineq.RegionB, nb}} {
		probe := mid.Add(c.n.Mul(off))
		t := Target{Kind: TargetRegion, Inequality: q.ID, Side: c.side}
		ops = append(ops, RegionControl{
			Target:  t,
			Center:  tr.ToScreen(probe),
			Radius:  ControlRadius,
			Color:   q.Color,
			Correct: geometry.Satisfies(q.Linear, probe),
			Hover:   s.Hover == t,
			Focus:   s.Focus == t,
		})
	}
	return ops
}

// labelPosition puts the label near the far end of the visible segment,
// nudged off the line along its normal.
func labelPosition(tr view.Transform, q ineq.Inequality, p1, p2 geometry.Point) view.Screen {
	at := p1.Add(p2.Sub(p1).Mul(0.85))
	if na, _, ok := geometry.Normals(q.Linear); ok {
		at = at.Add(na.Mul(tr.Scale(12)))
	}
	return tr.ToScreen(at)
}

func screenPath(tr view.Transform, poly []geometry.Point) *path.Data {
	pts := make([]geometry.Point, len(poly))
	for i, p := range poly {
		s := tr.ToScreen(p)
		pts[i] = geometry.Point{X: s.X, Y: s.Y}
	}
	return geometry.Path(pts)
}
