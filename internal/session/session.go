// Package session is the interaction state machine for one board: the
// spells cast so far, the vertices of their feasible region, the view and
// the pointer. Front ends feed it input events and draw Ops.
package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"halfplane/internal/geometry"
	"halfplane/internal/ineq"
	"halfplane/internal/render"
	"halfplane/internal/view"
)

var (
	ErrDuplicate = errors.New("duplicate spell")
	ErrNotFound  = errors.New("no such spell")
	ErrNoVertex  = errors.New("no active vertex")
)

// dragThreshold is how far the pointer may move before a press stops
// counting as a click.
const dragThreshold = 3.0

type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageInfo
	MessageSuccess
	MessageError
)

// Message is the status line text for the surrounding UI.
type Message struct {
	Kind MessageKind
	Text string
}

type Options struct {
	Zoom   float64
	Limits view.Limits
}

type pointer struct {
	down  bool
	moved bool
	start view.Screen
	last  view.Screen
}

// Session is not safe for concurrent use; it is driven from the UI loop.
type Session struct {
	opts      Options
	parser    *ineq.Parser
	items     []ineq.Inequality
	vertices  []ineq.IntersectionPoint
	transform view.Transform
	width     float64
	height    float64
	hover     render.Target
	focus     render.Target
	ptr       pointer
	message   Message
}

func New(opts Options) *Session {
	if opts.Zoom == 0 {
		opts.Zoom = view.DefaultZoom
	}
	if opts.Limits.Max <= 0 {
		opts.Limits = view.DefaultLimits
	}
	return &Session{
		opts:      opts,
		parser:    ineq.NewParser(),
		transform: view.Default(0, 0, opts.Zoom, opts.Limits),
	}
}

func (s *Session) Inequalities() []ineq.Inequality   { return s.items }
func (s *Session) Vertices() []ineq.IntersectionPoint { return s.vertices }
func (s *Session) Transform() view.Transform          { return s.transform }
func (s *Session) Message() Message                   { return s.message }
func (s *Session) Focus() render.Target               { return s.focus }
func (s *Session) Hover() render.Target               { return s.hover }
func (s *Session) Size() (w, h float64)               { return s.width, s.height }

// Next returns the label and colour the next spell would get.
func (s *Session) Next() (label, color string) {
	return s.parser.Peek()
}

func (s *Session) SetMessage(kind MessageKind, text string) {
	s.message = Message{Kind: kind, Text: text}
}

// Resize sets the viewport size in pixels. The first call centres the
// origin; later calls keep the visible centre in place.
func (s *Session) Resize(w, h float64) {
	if s.width == 0 && s.height == 0 {
		s.transform = view.Default(w, h, s.opts.Zoom, s.opts.Limits)
	} else {
		s.transform = s.transform.Resize(s.width, s.height, w, h)
	}
	s.width, s.height = w, h
}

// Scene snapshots the state for the planner.
func (s *Session) Scene() render.Scene {
	return render.Scene{
		Inequalities: s.items,
		Vertices:     s.vertices,
		Transform:    s.transform,
		Width:        s.width,
		Height:       s.height,
		Hover:        s.hover,
		Focus:        s.focus,
	}
}

func (s *Session) Ops() []render.Op {
	return render.Plan(s.Scene())
}

func (s *Session) duplicate(l ineq.Linear) bool {
	for _, q := range s.items {
		if ineq.Equivalent(q.Linear, l) {
			return true
		}
	}
	return false
}

// Check validates text for a live preview without consuming a label.
func (s *Session) Check(text string) Message {
	if strings.TrimSpace(text) == "" {
		return Message{}
	}
	l, err := s.parser.Check(text)
	switch {
	case err != nil:
		return Message{Kind: MessageError, Text: "Invalid spell format"}
	case s.duplicate(l):
		return Message{Kind: MessageError, Text: "That spell is already on the board"}
	}
	label, _ := s.parser.Peek()
	return Message{Kind: MessageInfo, Text: fmt.Sprintf("%s: %s", label, ineq.Format(l))}
}

// Submit casts a spell. Unparseable text and duplicates of a spell already
// on the board are rejected without using up a label.
func (s *Session) Submit(text string) (ineq.Inequality, error) {
	l, err := s.parser.Check(text)
	if err != nil {
		s.SetMessage(MessageError, "Invalid spell format")
		return ineq.Inequality{}, err
	}
	if s.duplicate(l) {
		s.SetMessage(MessageError, "That spell is already on the board")
		return ineq.Inequality{}, ErrDuplicate
	}
	q, err := s.parser.Parse(text)
	if err != nil {
		s.SetMessage(MessageError, "Invalid spell format")
		return ineq.Inequality{}, err
	}
	s.items = append(s.items, q)
	s.refresh()
	if q.Equation() {
		s.SetMessage(MessageSuccess, fmt.Sprintf("Spell %s cast: %s", q.Label, q.Text))
	} else {
		s.SetMessage(MessageInfo, fmt.Sprintf("Spell %s cast: pick the side that satisfies %s", q.Label, q.Text))
	}
	return q, nil
}

func (s *Session) index(id uuid.UUID) int {
	for i, q := range s.items {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Remove takes a spell off the board and returns it with its position so
// that Insert can undo the removal.
func (s *Session) Remove(id uuid.UUID) (ineq.Inequality, int, error) {
	i := s.index(id)
	if i < 0 {
		return ineq.Inequality{}, -1, ErrNotFound
	}
	q := s.items[i]
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.refresh()
	s.SetMessage(MessageInfo, fmt.Sprintf("Spell %s removed", q.Label))
	return q, i, nil
}

// Insert puts q back at index i, clamped to the list.
func (s *Session) Insert(i int, q ineq.Inequality) {
	if i < 0 || i > len(s.items) {
		i = len(s.items)
	}
	s.items = append(s.items[:i:i], append([]ineq.Inequality{q}, s.items[i:]...)...)
	s.refresh()
}

// Replace overwrites the stored copy of q, matched by ID.
func (s *Session) Replace(q ineq.Inequality) error {
	i := s.index(q.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.items[i] = q
	s.refresh()
	return nil
}

// ClickRegion claims side as the solution of spell id. The claim is kept
// either way and the message says whether it was right. A wrong claim can
// be replaced by clicking again; a right one is final.
func (s *Session) ClickRegion(id uuid.UUID, side ineq.Side) (correct bool, err error) {
	i := s.index(id)
	if i < 0 {
		return false, ErrNotFound
	}
	q := s.items[i]
	if geometry.ClaimCorrect(q) {
		return false, nil
	}
	correct = s.sideCorrect(q, side)
	s.items[i].Solution = ineq.Solved(side)
	s.refresh()
	if correct {
		s.SetMessage(MessageSuccess, "Correct!")
	} else {
		s.SetMessage(MessageError, fmt.Sprintf("Not quite: that side does not satisfy %s", q.Text))
	}
	return correct, nil
}

// sideCorrect asks the render plan so the verdict matches what the control
// on screen was tagged with; off-screen lines fall back to the operator.
func (s *Session) sideCorrect(q ineq.Inequality, side ineq.Side) bool {
	t := render.Target{Kind: render.TargetRegion, Inequality: q.ID, Side: side}
	if c, ok := render.Correct(s.Ops(), t); ok {
		return c
	}
	return geometry.CorrectSide(q.Linear) == side
}

// SolveAll claims the correct side for every spell that is unsolved or
// wrongly claimed.
func (s *Session) SolveAll() {
	for i, q := range s.items {
		if geometry.ClaimCorrect(q) {
			continue
		}
		if side := geometry.CorrectSide(q.Linear); side != 0 {
			s.items[i].Solution = ineq.Solved(side)
		}
	}
	s.refresh()
}

// ClickVertex toggles vertex i between ACTIVE and UNSOLVED. At most one
// vertex is ACTIVE; solved vertices ignore clicks.
func (s *Session) ClickVertex(i int) {
	if i < 0 || i >= len(s.vertices) {
		return
	}
	v := &s.vertices[i]
	switch v.Status {
	case ineq.VertexSolved:
		return
	case ineq.VertexActive:
		v.Status = ineq.VertexUnsolved
		s.SetMessage(MessageInfo, "Vertex deselected")
		return
	}
	if j := s.ActiveVertex(); j >= 0 {
		s.vertices[j].Status = ineq.VertexUnsolved
	}
	v.Status = ineq.VertexActive
	s.SetMessage(MessageInfo, "Enter the coordinates of the highlighted vertex")
}

// ActiveVertex returns the index of the ACTIVE vertex or -1.
func (s *Session) ActiveVertex() int {
	for i, v := range s.vertices {
		if v.Status == ineq.VertexActive {
			return i
		}
	}
	return -1
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// SubmitCoordinates checks the entered coordinates against the ACTIVE
// vertex, comparing each after rounding to one decimal place.
func (s *Session) SubmitCoordinates(xs, ys string) (ineq.VertexStatus, error) {
	i := s.ActiveVertex()
	if i < 0 {
		s.SetMessage(MessageError, "Select a vertex first")
		return ineq.VertexUnsolved, ErrNoVertex
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		s.SetMessage(MessageError, "Enter a number for both coordinates")
		return ineq.VertexActive, errors.Wrap(ineq.ErrSyntax, "coordinates")
	}

	v := &s.vertices[i]
	okX := roundTenth(x) == roundTenth(v.Correct.X)
	okY := roundTenth(y) == roundTenth(v.Correct.Y)
	switch {
	case okX && okY:
		v.Status = ineq.VertexSolved
		s.SetMessage(MessageSuccess, "Correct! Vertex found")
	case okX || okY:
		v.Status = ineq.VertexPartial
		s.SetMessage(MessageInfo, "One coordinate is right")
	default:
		s.SetMessage(MessageError, "Not quite, try again")
	}
	return v.Status, nil
}

// refresh recomputes the vertices after the spell list changed. Vertices
// that survive keep their status.
func (s *Session) refresh() {
	old := s.vertices
	fresh := geometry.FeasibleVertices(s.items)
	for i := range fresh {
		for _, o := range old {
			if geometry.SamePoint(fresh[i].Vec2, o.Vec2) {
				fresh[i].Status = o.Status
				break
			}
		}
	}
	s.vertices = fresh
	s.hover = render.Target{}
	if !s.targetExists(s.focus) {
		s.focus = render.Target{}
	}
}

func (s *Session) targetExists(t render.Target) bool {
	if t.Kind == render.TargetNone {
		return false
	}
	for _, u := range render.Targets(s.Ops()) {
		if u == t {
			return true
		}
	}
	return false
}

// Reset clears the board, restores the default view and restarts labels
// and colours.
func (s *Session) Reset() {
	s.items = nil
	s.vertices = nil
	s.transform = view.Default(s.width, s.height, s.opts.Zoom, s.opts.Limits)
	s.parser.Reset()
	s.hover, s.focus = render.Target{}, render.Target{}
	s.ptr = pointer{}
	s.SetMessage(MessageInfo, "Board cleared")
}
