package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"halfplane/internal/ineq"
)

const (
	colorBackground = "#1c1c1c"
	colorGrid       = "#4e4e4e"
	colorAxis       = "#d0d0d0"
	colorFeasible   = "#ffffff"
)

// statusColors colour vertices by how far the learner got with them.
var statusColors = map[ineq.VertexStatus]string{
	ineq.VertexUnsolved: "#e4e4e4",
	ineq.VertexActive:   "#ffd700",
	ineq.VertexPartial:  "#ff8c00",
	ineq.VertexSolved:   "#32cd32",
}

func parseHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}

// shade blends hex toward the background; t = 0 keeps the colour.
func shade(hex string, t float64) string {
	return parseHex(hex).BlendRgb(parseHex(colorBackground), t).Hex()
}
