package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"seehuhn.de/go/geom/vec"

	"halfplane/internal/geometry"
	"halfplane/internal/ineq"
	"halfplane/internal/view"
)

// A terminal cell stands for CellWidth×CellHeight screen pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// CellCenter returns the pixel position of the centre of a cell.
func CellCenter(col, row int) view.Screen {
	return view.Screen{X: (float64(col) + 0.5) * CellWidth, Y: (float64(row) + 0.5) * CellHeight}
}

// Cell is one character of terminal output.
type Cell struct {
	R    rune
	FG   string
	BG   string
	Bold bool
	fill int // number of half-planes covering the cell
}

// Grid is a rasterised frame in character cells.
type Grid struct {
	Cols, Rows int
	cells      [][]Cell
}

func newGrid(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &Grid{Cols: cols, Rows: rows, cells: make([][]Cell, rows)}
	for r := range g.cells {
		g.cells[r] = make([]Cell, cols)
		for c := range g.cells[r] {
			g.cells[r][c] = Cell{R: ' '}
		}
	}
	return g
}

func (g *Grid) At(col, row int) Cell {
	return g.cells[row][col]
}

func (g *Grid) valid(col, row int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

func cellOf(s view.Screen) (int, int) {
	return int(math.Floor(s.X / CellWidth)), int(math.Floor(s.Y / CellHeight))
}

func (g *Grid) set(col, row int, r rune, fg string, bold bool) {
	if !g.valid(col, row) {
		return
	}
	c := &g.cells[row][col]
	c.R, c.FG, c.Bold = r, fg, bold
}

func (g *Grid) text(col, row int, s, fg string, bold bool) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, fg, bold)
	}
}

// Terminal rasterises ops into a cols×rows character grid.
func Terminal(ops []Op, cols, rows int) *Grid {
	g := newGrid(cols, rows)
	fills := 0
	var gridX, gridY []float64
	var arrows []arrowhead

	for _, op := range ops {
		switch op := op.(type) {
		case Background:
			// cells start blank
		case GridLine:
			if op.Vertical {
				gridX = append(gridX, op.From.X)
			} else {
				gridY = append(gridY, op.From.Y)
			}
		case Axis:
			g.drawGridDots(gridX, gridY)
			gridX, gridY = nil, nil
			arrows = append(arrows, g.drawAxis(op))
		case Tick:
			g.drawTick(op)
		case Fill:
			fills++
			g.drawFill(op)
		case Boundary:
			g.drawBoundary(op)
		case Label:
			col, row := cellOf(op.At)
			g.text(col, row, op.Text, op.Color, true)
		case RegionControl:
			col, row := cellOf(op.Center)
			r := '●'
			if op.Hover || op.Focus {
				r = '◉'
			}
			g.set(col, row, r, op.Color, op.Focus)
		case VertexMark:
			col, row := cellOf(op.At)
			r := '◆'
			if op.Hover || op.Focus {
				r = '◈'
			}
			g.set(col, row, r, statusColors[op.Status], op.Focus)
		}
	}
	g.drawGridDots(gridX, gridY)
	for _, a := range arrows {
		g.set(a.col, a.row, a.r, colorAxis, false)
	}

	if fills > 1 {
		for row := range g.cells {
			for col := range g.cells[row] {
				c := &g.cells[row][col]
				if c.fill == fills && (c.R == ' ' || c.R == '·') {
					c.R, c.FG = '░', colorFeasible
				}
			}
		}
	}
	return g
}

// drawGridDots marks grid crossings when they are far enough apart to
// read as a grid rather than noise.
func (g *Grid) drawGridDots(xs, ys []float64) {
	if len(xs) < 2 || len(ys) < 2 {
		return
	}
	if math.Abs(xs[1]-xs[0]) < 2*CellWidth || math.Abs(ys[1]-ys[0]) < CellHeight {
		return
	}
	for _, x := range xs {
		for _, y := range ys {
			col, row := cellOf(view.Screen{X: x, Y: y})
			if g.valid(col, row) && g.cells[row][col].R == ' ' {
				g.set(col, row, '·', colorGrid, false)
			}
		}
	}
}

// arrowhead is stamped after everything else so lines lying on an axis
// cannot hide its direction.
type arrowhead struct {
	col, row int
	r        rune
}

func (g *Grid) drawAxis(op Axis) arrowhead {
	fc, fr := cellOf(op.From)
	tc, tr := cellOf(op.To)
	if op.Vertical {
		if tr < 0 {
			tr = 0
		}
		if fr >= g.Rows {
			fr = g.Rows - 1
		}
		for row := tr; row <= fr; row++ {
			r := '│'
			if g.valid(fc, row) && g.cells[row][fc].R == '─' {
				r = '┼'
			}
			g.set(fc, row, r, colorAxis, false)
		}
		return arrowhead{fc, tr, '▲'}
	}
	if tc >= g.Cols {
		tc = g.Cols - 1
	}
	if fc < 0 {
		fc = 0
	}
	for col := fc; col <= tc; col++ {
		r := '─'
		if g.valid(col, fr) && g.cells[fr][col].R == '│' {
			r = '┼'
		}
		g.set(col, fr, r, colorAxis, false)
	}
	return arrowhead{tc, fr, '▶'}
}

// drawTick marks a tick and writes its label left of the y axis or below
// the x axis. Labels that would cross an edge are moved inward, or dropped
// when the grid is too narrow for them.
func (g *Grid) drawTick(op Tick) {
	col, row := cellOf(op.At)
	if !g.valid(col, row) {
		return
	}
	g.set(col, row, '┼', colorAxis, false)
	n := len([]rune(op.Label))
	if n > g.Cols {
		return
	}
	if op.Vertical {
		start := col - n - 1
		if start < 0 {
			start = col + 1
		}
		if start+n > g.Cols {
			return
		}
		g.text(start, row, op.Label, colorAxis, false)
		return
	}
	start := col - n/2
	if start < 0 {
		start = 0
	}
	if start+n > g.Cols {
		start = g.Cols - n
	}
	g.text(start, row+1, op.Label, colorAxis, false)
}

func (g *Grid) drawFill(op Fill) {
	poly := op.Path.Coords
	bg := shade(op.Color, 0.7)
	for row := range g.cells {
		for col := range g.cells[row] {
			c := CellCenter(col, row)
			if geometry.ContainsConvex(poly, vec.Vec2{X: c.X, Y: c.Y}) {
				g.cells[row][col].BG = bg
				g.cells[row][col].fill++
			}
		}
	}
}

// boundaryGlyph picks a line character from the slope measured in cells.
func boundaryGlyph(dx, dy float64) rune {
	cx, cy := dx/CellWidth, dy/CellHeight
	switch {
	case math.Abs(cy) <= 0.5*math.Abs(cx):
		return '─'
	case math.Abs(cx) <= 0.5*math.Abs(cy):
		return '│'
	case cx*cy > 0:
		return '╲'
	default:
		return '╱'
	}
}

func (g *Grid) drawBoundary(op Boundary) {
	d := op.To.Sub(op.From)
	glyph := boundaryGlyph(d.X, d.Y)
	steps := int(math.Ceil(2 * math.Max(math.Abs(d.X)/CellWidth, math.Abs(d.Y)/CellHeight)))
	if steps < 1 {
		steps = 1
	}
	lastCol, lastRow := math.MinInt, math.MinInt
	cellIndex := 0
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row := cellOf(view.Screen{X: op.From.X + d.X*t, Y: op.From.Y + d.Y*t})
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		cellIndex++
		if op.Dashed && cellIndex%2 == 0 {
			continue
		}
		g.set(col, row, glyph, op.Color, false)
	}
}

// Plain returns the frame as uncoloured text lines.
func (g *Grid) Plain() []string {
	lines := make([]string, g.Rows)
	for row, cells := range g.cells {
		var b strings.Builder
		for _, c := range cells {
			b.WriteRune(c.R)
		}
		lines[row] = b.String()
	}
	return lines
}

// Lines returns the frame styled with lipgloss, one string per row. Runs
// of cells with the same style share one escape sequence.
func (g *Grid) Lines() []string {
	lines := make([]string, g.Rows)
	for row, cells := range g.cells {
		var b strings.Builder
		start := 0
		for col := 1; col <= len(cells); col++ {
			if col < len(cells) && sameStyle(cells[col], cells[start]) {
				continue
			}
			b.WriteString(styleOf(cells[start]).Render(runString(cells[start:col])))
			start = col
		}
		lines[row] = b.String()
	}
	return lines
}

func sameStyle(a, b Cell) bool {
	return a.FG == b.FG && a.BG == b.BG && a.Bold == b.Bold
}

func styleOf(c Cell) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(c.Bold)
	if c.FG != "" {
		st = st.Foreground(lipgloss.Color(c.FG))
	}
	if c.BG != "" {
		st = st.Background(lipgloss.Color(c.BG))
	}
	return st
}

func runString(cells []Cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.R
	}
	return string(rs)
}

// StatusColor exposes the vertex palette to front ends.
func StatusColor(s ineq.VertexStatus) string {
	return statusColors[s]
}
