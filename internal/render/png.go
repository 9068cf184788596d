package render

import (
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"seehuhn.de/go/geom/path"

	"halfplane/internal/view"
)

const fontSize = 12.0

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(gomono.TTF)
		if fontErr != nil {
			fontErr = errors.Wrap(fontErr, "failed to parse font")
		}
	})
	return fontTTF, fontErr
}

// Image paints ops onto a new width×height gg context.
func Image(ops []Op, width, height int) (*gg.Context, error) {
	if width < 1 || height < 1 {
		return nil, errors.Errorf("invalid image size %dx%d", width, height)
	}
	ttf, err := loadFont()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for _, op := range ops {
		switch op := op.(type) {
		case Background:
			dc.SetColor(parseHex(colorBackground))
			dc.Clear()
		case GridLine:
			dc.SetLineWidth(1)
			dc.SetColor(parseHex(colorGrid))
			dc.DrawLine(op.From.X, op.From.Y, op.To.X, op.To.Y)
			dc.Stroke()
		case Axis:
			dc.SetLineWidth(1.5)
			dc.SetColor(parseHex(colorAxis))
			dc.DrawLine(op.From.X, op.From.Y, op.To.X, op.To.Y)
			dc.Stroke()
			drawArrowPNG(dc, op.From, op.To)
		case Tick:
			drawTickPNG(dc, op)
		case Fill:
			c := parseHex(op.Color)
			dc.SetRGBA(c.R, c.G, c.B, 0.3)
			tracePath(dc, op.Path)
			dc.Fill()
		case Boundary:
			dc.SetLineWidth(2)
			dc.SetColor(parseHex(op.Color))
			if op.Dashed {
				dc.SetDash(8, 6)
			}
			dc.DrawLine(op.From.X, op.From.Y, op.To.X, op.To.Y)
			dc.Stroke()
			dc.SetDash()
		case Label:
			dc.SetColor(parseHex(op.Color))
			dc.DrawStringAnchored(op.Text, op.At.X, op.At.Y, 0.5, 0.5)
		case RegionControl:
			drawControlPNG(dc, op)
		case VertexMark:
			drawVertexPNG(dc, op)
		}
	}
	return dc, nil
}

// SavePNG renders ops to a PNG file.
func SavePNG(filename string, ops []Op, width, height int) error {
	dc, err := Image(ops, width, height)
	if err != nil {
		return err
	}
	return errors.Wrapf(dc.SavePNG(filename), "failed to write %s", filename)
}

// EncodePNG renders ops as PNG to w.
func EncodePNG(w io.Writer, ops []Op, width, height int) error {
	dc, err := Image(ops, width, height)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func tracePath(dc *gg.Context, d *path.Data) {
	i := 0
	for _, cmd := range d.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			dc.MoveTo(d.Coords[i].X, d.Coords[i].Y)
			i++
		case path.CmdLineTo:
			dc.LineTo(d.Coords[i].X, d.Coords[i].Y)
			i++
		case path.CmdClose:
			dc.ClosePath()
		}
	}
}

func drawArrowPNG(dc *gg.Context, from, to view.Screen) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	const arrowSize = 10.0
	const arrowAngle = 0.5

	dc.MoveTo(to.X, to.Y)
	dc.LineTo(to.X-arrowSize*dx+arrowSize*dy*arrowAngle, to.Y-arrowSize*dy-arrowSize*dx*arrowAngle)
	dc.LineTo(to.X-arrowSize*dx-arrowSize*dy*arrowAngle, to.Y-arrowSize*dy+arrowSize*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

func drawTickPNG(dc *gg.Context, t Tick) {
	dc.SetLineWidth(1)
	dc.SetColor(parseHex(colorAxis))
	if t.Vertical {
		dc.DrawLine(t.At.X-4, t.At.Y, t.At.X+4, t.At.Y)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, t.At.X-8, t.At.Y, 1, 0.5)
		return
	}
	dc.DrawLine(t.At.X, t.At.Y-4, t.At.X, t.At.Y+4)
	dc.Stroke()
	dc.DrawStringAnchored(t.Label, t.At.X, t.At.Y+8, 0.5, 1)
}

func drawControlPNG(dc *gg.Context, rc RegionControl) {
	c := parseHex(rc.Color)
	alpha := 0.6
	if rc.Hover || rc.Focus {
		alpha = 0.9
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
	dc.DrawCircle(rc.Center.X, rc.Center.Y, rc.Radius)
	dc.Fill()
	if rc.Focus {
		dc.SetLineWidth(2)
		dc.SetColor(parseHex(colorFeasible))
		dc.DrawCircle(rc.Center.X, rc.Center.Y, rc.Radius+3)
		dc.Stroke()
	}
}

func drawVertexPNG(dc *gg.Context, v VertexMark) {
	dc.SetColor(parseHex(statusColors[v.Status]))
	dc.DrawCircle(v.At.X, v.At.Y, v.Radius)
	dc.Fill()
	if v.Hover || v.Focus {
		dc.SetLineWidth(2)
		dc.SetColor(parseHex(colorFeasible))
		dc.DrawCircle(v.At.X, v.At.Y, v.Radius+3)
		dc.Stroke()
	}
}
