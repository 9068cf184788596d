// Package view maps between math coordinates and screen pixels.
package view

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	MinZoom     = 10.0
	MaxZoom     = 100.0
	DefaultZoom = 40.0
)

// Screen is a position in pixels, y growing downward.
type Screen struct {
	X, Y float64
}

func (s Screen) Sub(o Screen) Screen {
	return Screen{X: s.X - o.X, Y: s.Y - o.Y}
}

// Dist returns the Euclidean distance between two screen points.
func (s Screen) Dist(o Screen) float64 {
	return math.Hypot(s.X-o.X, s.Y-o.Y)
}

// Limits is the supported zoom range in pixels per unit.
type Limits struct {
	Min, Max float64
}

// DefaultLimits is the range used when none is configured.
var DefaultLimits = Limits{Min: MinZoom, Max: MaxZoom}

func (l Limits) clamp(z float64) float64 {
	if l.Max <= 0 {
		l = DefaultLimits
	}
	return math.Max(l.Min, math.Min(l.Max, z))
}

// Transform places the math origin at Origin (pixels) and scales one unit
// to Zoom pixels.
type Transform struct {
	Zoom   float64
	Origin Screen
	Limits Limits
}

// Default centres the origin in a w×h viewport at the given zoom.
func Default(w, h, zoom float64, limits Limits) Transform {
	return Transform{
		Zoom:   limits.clamp(zoom),
		Origin: Screen{X: w / 2, Y: h / 2},
		Limits: limits,
	}
}

// Matrix returns the math-to-screen map. The y axis is flipped.
func (t Transform) Matrix() matrix.Matrix {
	return matrix.Matrix{t.Zoom, 0, 0, -t.Zoom, t.Origin.X, t.Origin.Y}
}

// ToScreen maps a math point to pixels: origin + (x·zoom, -y·zoom).
func (t Transform) ToScreen(p vec.Vec2) Screen {
	m := t.Matrix()
	return Screen{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ToMath is the inverse of ToScreen.
func (t Transform) ToMath(s Screen) vec.Vec2 {
	return vec.Vec2{
		X: (s.X - t.Origin.X) / t.Zoom,
		Y: (t.Origin.Y - s.Y) / t.Zoom,
	}
}

// Pan moves the plane by (dx, dy) pixels.
func (t Transform) Pan(dx, dy float64) Transform {
	t.Origin.X += dx
	t.Origin.Y += dy
	return t
}

// ZoomAt scales by factor, keeping the math point under s where it is.
func (t Transform) ZoomAt(s Screen, factor float64) Transform {
	anchor := t.ToMath(s)
	t.Zoom = t.Limits.clamp(t.Zoom * factor)
	t.Origin = Screen{
		X: s.X - anchor.X*t.Zoom,
		Y: s.Y + anchor.Y*t.Zoom,
	}
	return t
}

// Resize adapts to a new viewport size, keeping the centre point fixed.
func (t Transform) Resize(oldW, oldH, w, h float64) Transform {
	return t.Pan((w-oldW)/2, (h-oldH)/2)
}

// Bounds returns the math rectangle visible in a w×h viewport.
func (t Transform) Bounds(w, h float64) rect.Rect {
	tl := t.ToMath(Screen{})
	br := t.ToMath(Screen{X: w, Y: h})
	return rect.Rect{LLx: tl.X, LLy: br.Y, URx: br.X, URy: tl.Y}
}

// Scale converts a pixel length to math units.
func (t Transform) Scale(px float64) float64 {
	return px / t.Zoom
}
