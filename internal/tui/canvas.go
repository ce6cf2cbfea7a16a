package tui

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/preview"
)

// canvasGrid maps terminal cells onto the canvas box. The grid always covers
// the box exactly, so one cell spans box.Width()/cols canvas pixels across.
type canvasGrid struct {
	box  geom.Rect
	cols int
	rows int
}

func (g canvasGrid) valid() bool {
	return g.cols > 0 && g.rows > 0 && !g.box.Empty()
}

func (g canvasGrid) pxPerCol() float64 { return g.box.Width() / float64(g.cols) }
func (g canvasGrid) pxPerRow() float64 { return g.box.Height() / float64(g.rows) }

func (g canvasGrid) contains(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// center returns the canvas point in the middle of a cell.
func (g canvasGrid) center(col, row int) geom.Point {
	return geom.Point{
		X: g.box.Min.X + (float64(col)+0.5)*g.pxPerCol(),
		Y: g.box.Min.Y + (float64(row)+0.5)*g.pxPerRow(),
	}
}

// delta converts a cell offset into canvas pixels.
func (g canvasGrid) delta(dcol, drow int) geom.Point {
	return geom.Point{X: float64(dcol) * g.pxPerCol(), Y: float64(drow) * g.pxPerRow()}
}

// span returns the inclusive cell range covered by r, clipped to the grid.
func (g canvasGrid) span(r geom.Rect) (c1, r1, c2, r2 int) {
	c1 = clampInt(int(math.Floor((r.Min.X-g.box.Min.X)/g.pxPerCol())), 0, g.cols-1)
	r1 = clampInt(int(math.Floor((r.Min.Y-g.box.Min.Y)/g.pxPerRow())), 0, g.rows-1)
	c2 = clampInt(int(math.Ceil((r.Max.X-g.box.Min.X)/g.pxPerCol()))-1, 0, g.cols-1)
	r2 = clampInt(int(math.Ceil((r.Max.Y-g.box.Min.Y)/g.pxPerRow()))-1, 0, g.rows-1)
	return c1, r1, c2, r2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// thumb is a downscaled frame cached until the frame or the tile size changes.
type thumb struct {
	frame *image.RGBA
	cols  int
	rows  int
	cells [][]string
}

type thumbCache map[string]thumb

func (tc thumbCache) cells(id string, frame *image.RGBA, cols, rows int) [][]string {
	if t, ok := tc[id]; ok && t.frame == frame && t.cols == cols && t.rows == rows {
		return t.cells
	}
	cells := preview.Cells(frame, cols, rows)
	tc[id] = thumb{frame: frame, cols: cols, rows: rows, cells: cells}
	return cells
}

// frameSource yields the cached preview for a monitor id.
type frameSource func(id string) (*image.RGBA, bool)

// renderCanvas paints every placed monitor in registry order, so later
// monitors cover earlier ones exactly as hit testing expects.
func renderCanvas(reg *monitor.Registry, g canvasGrid, frames frameSource, thumbs thumbCache) string {
	grid := make([][]string, g.rows)
	for r := range grid {
		grid[r] = make([]string, g.cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	selected, _ := reg.Selected()
	for _, m := range reg.Monitors {
		if !m.Placed {
			continue
		}
		drawMonitor(grid, g, m, m == selected, frames, thumbs)
	}

	lines := make([]string, g.rows)
	for r, row := range grid {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func drawMonitor(grid [][]string, g canvasGrid, m *monitor.Monitor, selected bool, frames frameSource, thumbs thumbCache) {
	c1, r1, c2, r2 := g.span(m.ScaledRect())

	border := tileBorderStyle
	switch {
	case m.BeingDragged:
		border = tileDraggingStyle
	case selected:
		border = tileSelectedStyle
	}

	// Too small for a frame: fill it.
	if c2-c1 < 2 || r2-r1 < 2 {
		for r := r1; r <= r2; r++ {
			for c := c1; c <= c2; c++ {
				grid[r][c] = border.Render("█")
			}
		}
		return
	}

	// Interior.
	iw, ih := c2-c1-1, r2-r1-1
	var cells [][]string
	fill := preview.FillCell(noFrameColor)
	if !m.Enabled || !m.ProposedStatus {
		fill = preview.FillCell(preview.DisabledColor)
	} else if frame, ok := frames(m.ID); ok {
		cells = thumbs.cells(m.ID, frame, iw, ih)
	}
	for r := 0; r < ih; r++ {
		for c := 0; c < iw; c++ {
			cell := fill
			if r < len(cells) && c < len(cells[r]) {
				cell = cells[r][c]
			}
			grid[r1+1+r][c1+1+c] = cell
		}
	}

	for c := c1 + 1; c < c2; c++ {
		grid[r1][c] = border.Render("─")
		grid[r2][c] = border.Render("─")
	}
	for r := r1 + 1; r < r2; r++ {
		grid[r][c1] = border.Render("│")
		grid[r][c2] = border.Render("│")
	}
	grid[r1][c1] = border.Render("┌")
	grid[r1][c2] = border.Render("┐")
	grid[r2][c1] = border.Render("└")
	grid[r2][c2] = border.Render("┘")

	label := []rune(tileLabel(m))
	if room := c2 - c1 - 1; len(label) > room {
		label = label[:room]
	}
	for i, ch := range label {
		grid[r1][c1+1+i] = border.Render(string(ch))
	}
}

func tileLabel(m *monitor.Monitor) string {
	label := fmt.Sprintf("%s %s", m.Label(), m.EffectiveResolution())
	if !m.ProposedStatus {
		label += " off"
	}
	return label
}

// canvasView wraps the painted grid in the canvas frame.
func canvasView(body string) string {
	return canvasStyle.Render(body)
}
