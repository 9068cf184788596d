package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func TestToScreen(t *testing.T) {
	tr := Default(800, 600, 40, DefaultLimits)
	assert.Equal(t, Screen{X: 400, Y: 300}, tr.ToScreen(vec.Vec2{}))
	assert.Equal(t, Screen{X: 440, Y: 260}, tr.ToScreen(vec.Vec2{X: 1, Y: 1}))
	assert.Equal(t, Screen{X: 320, Y: 420}, tr.ToScreen(vec.Vec2{X: -2, Y: -3}))
}

func TestRoundTripAcrossZoomRange(t *testing.T) {
	points := []vec.Vec2{{X: 0, Y: 0}, {X: 1.5, Y: -2.25}, {X: -123.4, Y: 56.7}, {X: 1e4, Y: -1e4}}
	for z := MinZoom; z <= MaxZoom; z += 7.5 {
		tr := Transform{Zoom: z, Origin: Screen{X: 313.7, Y: 211.1}, Limits: DefaultLimits}
		for _, p := range points {
			back := tr.ToMath(tr.ToScreen(p))
			assert.InDelta(t, p.X, back.X, 1e-9, "zoom %v", z)
			assert.InDelta(t, p.Y, back.Y, 1e-9, "zoom %v", z)
		}
		s := Screen{X: 17, Y: 599}
		again := tr.ToScreen(tr.ToMath(s))
		assert.InDelta(t, s.X, again.X, 1e-9)
		assert.InDelta(t, s.Y, again.Y, 1e-9)
	}
}

func TestZoomClamped(t *testing.T) {
	tr := Default(100, 100, 500, DefaultLimits)
	assert.Equal(t, MaxZoom, tr.Zoom)

	tr = tr.ZoomAt(Screen{X: 50, Y: 50}, 0.001)
	assert.Equal(t, MinZoom, tr.Zoom)

	tr = Default(100, 100, 40, Limits{Min: 20, Max: 30})
	assert.Equal(t, 30.0, tr.Zoom)
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	tr := Default(800, 600, 40, DefaultLimits)
	s := Screen{X: 123, Y: 456}
	before := tr.ToMath(s)
	tr = tr.ZoomAt(s, 1.5)
	require.Equal(t, 60.0, tr.Zoom)
	after := tr.ToMath(s)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestResizeKeepsCentre(t *testing.T) {
	tr := Default(800, 600, 40, DefaultLimits).Pan(30, -20)
	centre := tr.ToMath(Screen{X: 400, Y: 300})
	tr = tr.Resize(800, 600, 1000, 500)
	moved := tr.ToMath(Screen{X: 500, Y: 250})
	assert.InDelta(t, centre.X, moved.X, 1e-9)
	assert.InDelta(t, centre.Y, moved.Y, 1e-9)
}

func TestBounds(t *testing.T) {
	tr := Default(800, 400, 40, DefaultLimits)
	b := tr.Bounds(800, 400)
	assert.InDelta(t, -10, b.LLx, 1e-12)
	assert.InDelta(t, 10, b.URx, 1e-12)
	assert.InDelta(t, -5, b.LLy, 1e-12)
	assert.InDelta(t, 5, b.URy, 1e-12)
}
