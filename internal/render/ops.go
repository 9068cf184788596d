// Package render plans the draw operations for a graph and hands them to
// a terminal or PNG back end.
package render

import (
	"github.com/google/uuid"
	"seehuhn.de/go/geom/path"

	"halfplane/internal/ineq"
	"halfplane/internal/view"
)

const (
	ControlOffset = 40.0 // distance of a region control from the line, px
	ControlRadius = 10.0
	VertexRadius  = 6.0
	HitRadius     = 12.0 // minimum pick distance for controls and vertices
	MinTickGap    = 40.0 // minimum distance between tick labels, px
)

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetRegion
	TargetVertex
)

// Target identifies something the learner can click.
type Target struct {
	Kind       TargetKind
	Inequality uuid.UUID
	Side       ineq.Side
	Vertex     int
}

// Op is one draw operation. The concrete types below are the only
// implementations.
type Op interface {
	isOp()
}

type Background struct {
	Width, Height float64
}

type GridLine struct {
	From, To view.Screen
	Vertical bool
}

// Axis is drawn from From to To with an arrowhead at To.
type Axis struct {
	From, To view.Screen
	Vertical bool
}

type Tick struct {
	At       view.Screen
	Label    string
	Vertical bool // tick on the y axis
}

// Fill is a solution half-plane clipped to the viewport, in screen space.
type Fill struct {
	Inequality uuid.UUID
	Path       *path.Data
	Color      string
}

type Boundary struct {
	Inequality uuid.UUID
	From, To   view.Screen
	Dashed     bool
	Color      string
}

type Label struct {
	At    view.Screen
	Text  string
	Color string
}

// RegionControl is a clickable marker on one side of an unsolved line.
// Correct records whether that side satisfies the inequality; it is only
// revealed after the click.
type RegionControl struct {
	Target  Target
	Center  view.Screen
	Radius  float64
	Color   string
	Correct bool
	Hover   bool
	Focus   bool
}

type VertexMark struct {
	Target Target
	At     view.Screen
	Radius float64
	Status ineq.VertexStatus
	Hover  bool
	Focus  bool
}

func (Background) isOp()    {}
func (GridLine) isOp()      {}
func (Axis) isOp()          {}
func (Tick) isOp()          {}
func (Fill) isOp()          {}
func (Boundary) isOp()      {}
func (Label) isOp()         {}
func (RegionControl) isOp() {}
func (VertexMark) isOp()    {}
