package geometry

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// ClipPolygon clips a polygon against an axis-aligned rectangle
// (Sutherland–Hodgman). The result may be empty.
func ClipPolygon(poly []Point, r rect.Rect) []Point {
	edges := []struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}{
		{
			inside: func(p Point) bool { return p.X >= r.LLx },
			cross:  func(a, b Point) Point { return atX(a, b, r.LLx) },
		},
		{
			inside: func(p Point) bool { return p.X <= r.URx },
			cross:  func(a, b Point) Point { return atX(a, b, r.URx) },
		},
		{
			inside: func(p Point) bool { return p.Y >= r.LLy },
			cross:  func(a, b Point) Point { return atY(a, b, r.LLy) },
		},
		{
			inside: func(p Point) bool { return p.Y <= r.URy },
			cross:  func(a, b Point) Point { return atY(a, b, r.URy) },
		},
	}

	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func atY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + t*(b.X-a.X), Y: y}
}

// ClipLine clips the segment pq to r (Liang–Barsky). ok is false when the
// segment misses the rectangle.
func ClipLine(p, q Point, r rect.Rect) (Point, Point, bool) {
	d := q.Sub(p)
	t0, t1 := 0.0, 1.0
	checks := [4][2]float64{
		{-d.X, p.X - r.LLx},
		{d.X, r.URx - p.X},
		{-d.Y, p.Y - r.LLy},
		{d.Y, r.URy - p.Y},
	}
	for _, c := range checks {
		pk, qk := c[0], c[1]
		if nearZero(pk) {
			if qk < 0 {
				return Point{}, Point{}, false
			}
			continue
		}
		t := qk / pk
		if pk < 0 {
			if t > t1 {
				return Point{}, Point{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return Point{}, Point{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return p.Add(d.Mul(t0)), p.Add(d.Mul(t1)), true
}

// Path converts a closed polygon to a path for drawing back ends.
func Path(poly []Point) *path.Data {
	if len(poly) == 0 {
		return &path.Data{}
	}
	d := (&path.Data{}).MoveTo(poly[0])
	for _, p := range poly[1:] {
		d = d.LineTo(p)
	}
	return d.Close()
}

// ContainsConvex reports whether p lies inside (or on) the convex polygon.
// Winding direction does not matter.
func ContainsConvex(poly []Point, p Point) bool {
	if len(poly) < 3 {
		return false
	}
	var pos, neg bool
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		e := cur.Sub(prev)
		w := p.Sub(prev)
		cross := e.X*w.Y - e.Y*w.X
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
		prev = cur
	}
	return true
}
