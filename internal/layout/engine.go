package layout

import (
	"errors"
	"fmt"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/monitor"
)

// DefaultFillRatio leaves a visual margin: monitors occupy at most 80% of the
// canvas along each axis.
const DefaultFillRatio = 0.8

// ErrEmptyRegistry is returned when there is nothing to lay out.
var ErrEmptyRegistry = errors.New("layout: empty monitor registry")

// Engine maps monitor resolutions into a bounded canvas.
type Engine struct {
	Box       geom.Rect
	FillRatio float64
}

// NewEngine creates an engine for the given canvas box. A non-positive fill
// ratio falls back to DefaultFillRatio.
func NewEngine(box geom.Rect, fillRatio float64) *Engine {
	if fillRatio <= 0 || fillRatio > 1 {
		fillRatio = DefaultFillRatio
	}
	return &Engine{Box: box, FillRatio: fillRatio}
}

// Totals returns the summed width and height over every monitor, enabled or
// not.
func Totals(reg *monitor.Registry) (width, height float64) {
	for _, m := range reg.Monitors {
		width += float64(m.Resolution.Width)
		height += float64(m.Resolution.Height)
	}
	return width, height
}

// Scale returns the global scale factors for reg.
func (e *Engine) Scale(reg *monitor.Registry) (sx, sy float64, err error) {
	if e.Box.Empty() {
		return 0, 0, fmt.Errorf("layout: canvas box %vx%v has no area", e.Box.Width(), e.Box.Height())
	}
	totalW, totalH := Totals(reg)
	if reg.Len() == 0 || totalW <= 0 || totalH <= 0 {
		return 0, 0, ErrEmptyRegistry
	}
	sx = (e.Box.Width() / totalW) * e.FillRatio
	sy = (e.Box.Height() / totalH) * e.FillRatio
	return sx, sy, nil
}

// Anchor computes the logical position of the first enabled monitor: packed
// with an equal left margin derived from the unscaled width deficit and
// centered vertically.
func (e *Engine) Anchor(reg *monitor.Registry, sx, sy float64) geom.Point {
	totalW, _ := Totals(reg)
	n := float64(reg.Len())

	first := firstEnabled(reg)
	firstH := 0.0
	if first != nil {
		firstH = float64(first.Resolution.Height)
	}

	return geom.Point{
		X: ((e.Box.Width()/sx - totalW) / n) + e.Box.Min.X/sx,
		Y: (e.Box.Height()/sy)/2 - firstH/2 + e.Box.Min.Y/sy,
	}
}

// SlotWidth is the uniform horizontal step between default placements. It is
// the average monitor width, not the width of any particular monitor.
func SlotWidth(reg *monitor.Registry) float64 {
	totalW, _ := Totals(reg)
	return totalW / float64(reg.Len())
}

// Place runs one layout pass. Monitors that have not been placed yet get a
// default position and a baseline; every placed monitor is clamped back into
// the canvas box.
func (e *Engine) Place(reg *monitor.Registry) error {
	sx, sy, err := e.Scale(reg)
	if err != nil {
		return err
	}

	anchor := e.Anchor(reg, sx, sy)
	reg.Anchor = anchor
	slot := SlotWidth(reg)

	var fresh []*monitor.Monitor

	enabledIdx := 0
	for _, m := range reg.Monitors {
		if !m.Enabled {
			continue
		}
		if !m.Placed {
			m.Position = geom.Point{X: anchor.X + float64(enabledIdx)*slot, Y: anchor.Y}
			fresh = append(fresh, m)
		}
		enabledIdx++
	}

	// Disabled monitors queue up to the right of the rightmost enabled one,
	// one slot apart.
	base := anchor.X - slot
	haveEnabled := false
	for _, m := range reg.Monitors {
		if m.Enabled && (!haveEnabled || m.Position.X > base) {
			base = m.Position.X
			haveEnabled = true
		}
	}
	disabledIdx := 0
	for _, m := range reg.Monitors {
		if m.Enabled {
			continue
		}
		if !m.Placed {
			m.Position = geom.Point{X: base + float64(disabledIdx+1)*slot, Y: anchor.Y}
			fresh = append(fresh, m)
		}
		disabledIdx++
	}

	for _, m := range fresh {
		m.ScaleX = sx
		m.ScaleY = sy
		Clamp(m, e.Box)
		m.InitialScaledPosition = m.ScaledPosition()
		m.Placed = true
	}

	for _, m := range reg.Monitors {
		if m.Placed {
			Clamp(m, e.Box)
		}
	}
	return nil
}

// Rescale moves every placed monitor onto the current global scale factors,
// keeping its canvas position, clamps it and retakes its baseline. Used after
// resolutions change so no monitor keeps a stale per-entity scale.
func (e *Engine) Rescale(reg *monitor.Registry) error {
	sx, sy, err := e.Scale(reg)
	if err != nil {
		return err
	}
	for _, m := range reg.Monitors {
		if !m.Placed {
			continue
		}
		p := m.ScaledPosition()
		m.ScaleX = sx
		m.ScaleY = sy
		m.Position = geom.Point{X: p.X / sx, Y: p.Y / sy}
		Clamp(m, e.Box)
		m.InitialScaledPosition = m.ScaledPosition()
	}
	return e.Place(reg)
}

// Clamp forces m's scaled rectangle back inside box. Each edge is checked
// against the current position, left then right, then top then bottom.
func Clamp(m *monitor.Monitor, box geom.Rect) {
	sx, sy := m.ScaleX, m.ScaleY
	if sx <= 0 || sy <= 0 {
		return
	}
	w := float64(m.Resolution.Width) * sx
	h := float64(m.Resolution.Height) * sy

	if m.Position.X*sx < box.Min.X {
		m.Position.X = box.Min.X / sx
	}
	if m.Position.X*sx+w > box.Max.X {
		m.Position.X = (box.Max.X - w) / sx
	}
	if m.Position.Y*sy < box.Min.Y {
		m.Position.Y = box.Min.Y / sy
	}
	if m.Position.Y*sy+h > box.Max.Y {
		m.Position.Y = (box.Max.Y - h) / sy
	}
}

// HitTest returns the topmost placed monitor containing the canvas point p.
// Later registry entries paint over earlier ones.
func HitTest(reg *monitor.Registry, p geom.Point) *monitor.Monitor {
	for i := len(reg.Monitors) - 1; i >= 0; i-- {
		m := reg.Monitors[i]
		if m.Placed && m.ScaledRect().Contains(p) {
			return m
		}
	}
	return nil
}

func firstEnabled(reg *monitor.Registry) *monitor.Monitor {
	for _, m := range reg.Monitors {
		if m.Enabled {
			return m
		}
	}
	if reg.Len() > 0 {
		return reg.Monitors[0]
	}
	return nil
}
