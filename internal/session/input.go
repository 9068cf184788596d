package session

import (
	"math"

	"halfplane/internal/render"
	"halfplane/internal/view"
)

// ZoomStep is the zoom factor for one wheel notch or key press.
const ZoomStep = 1.1

// PointerDown starts a press at p. Whether it becomes a click or a drag is
// decided by the moves that follow.
func (s *Session) PointerDown(p view.Screen) {
	s.ptr = pointer{down: true, start: p, last: p}
}

// PointerMove pans while the pointer is held and tracks hover otherwise.
func (s *Session) PointerMove(p view.Screen) {
	if !s.ptr.down {
		s.hover = render.HitTest(s.Ops(), p)
		return
	}
	if !s.ptr.moved && p.Dist(s.ptr.start) < dragThreshold {
		return
	}
	s.ptr.moved = true
	d := p.Sub(s.ptr.last)
	s.transform = s.transform.Pan(d.X, d.Y)
	s.ptr.last = p
}

// PointerUp ends a press. A press that did not drag clicks whatever is
// under the pointer and reports what it hit.
func (s *Session) PointerUp(p view.Screen) render.Target {
	clicked := s.ptr.down && !s.ptr.moved
	s.ptr = pointer{}
	if !clicked {
		return render.Target{}
	}
	t := render.HitTest(s.Ops(), p)
	s.click(t)
	return t
}

// Wheel zooms about p; positive notches zoom in.
func (s *Session) Wheel(p view.Screen, notches float64) {
	s.transform = s.transform.ZoomAt(p, math.Pow(ZoomStep, notches))
}

// Pan moves the view by dx, dy pixels.
func (s *Session) Pan(dx, dy float64) {
	s.transform = s.transform.Pan(dx, dy)
}

// Zoom zooms about the viewport centre.
func (s *Session) Zoom(notches float64) {
	s.Wheel(view.Screen{X: s.width / 2, Y: s.height / 2}, notches)
}

// FocusNext moves keyboard focus to the next clickable target, wrapping
// around. With nothing clickable the focus is cleared.
func (s *Session) FocusNext() render.Target {
	targets := render.Targets(s.Ops())
	if len(targets) == 0 {
		s.focus = render.Target{}
		return s.focus
	}
	next := 0
	for i, t := range targets {
		if t == s.focus {
			next = (i + 1) % len(targets)
			break
		}
	}
	s.focus = targets[next]
	return s.focus
}

// Activate clicks the focused target.
func (s *Session) Activate() {
	s.click(s.focus)
}

func (s *Session) click(t render.Target) {
	switch t.Kind {
	case render.TargetRegion:
		_, _ = s.ClickRegion(t.Inequality, t.Side)
	case render.TargetVertex:
		s.ClickVertex(t.Vertex)
	}
}
