package layout

import (
	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/monitor"
)

// DragController turns pointer input in canvas pixels into logical
// repositioning of one monitor at a time.
//
// A press followed by motion is a drag; a press released without motion is a
// click and selects the monitor.
type DragController struct {
	Box geom.Rect

	pressed *monitor.Monitor
	moved   bool
}

// NewDragController creates a controller bound to the canvas box.
func NewDragController(box geom.Rect) *DragController {
	return &DragController{Box: box}
}

// Press starts a pointer interaction on m. Any interaction still in flight is
// dropped first so at most one monitor is ever being dragged.
func (d *DragController) Press(reg *monitor.Registry, m *monitor.Monitor) {
	d.Cancel(reg)
	d.pressed = m
	d.moved = false
}

// Move applies a pointer delta to the pressed monitor. The first non-zero
// delta marks the monitor as being dragged. Returns false when there is no
// interaction in progress or the delta is zero.
func (d *DragController) Move(reg *monitor.Registry, delta geom.Point) bool {
	m := d.pressed
	if m == nil || (delta.X == 0 && delta.Y == 0) {
		return false
	}
	if !m.BeingDragged {
		for _, other := range reg.Monitors {
			other.BeingDragged = false
		}
		m.BeingDragged = true
	}
	Translate(m, delta, d.Box)
	d.moved = true
	return true
}

// Release ends the interaction. If the pointer never moved the monitor is
// selected and returned.
func (d *DragController) Release(reg *monitor.Registry) *monitor.Monitor {
	m := d.pressed
	if m == nil {
		return nil
	}
	m.BeingDragged = false
	clicked := !d.moved
	d.pressed = nil
	d.moved = false

	if clicked {
		reg.SelectMonitor(m)
		return m
	}
	return nil
}

// Cancel drops any interaction without selecting.
func (d *DragController) Cancel(reg *monitor.Registry) {
	if d.pressed != nil {
		d.pressed.BeingDragged = false
	}
	d.pressed = nil
	d.moved = false
}

// Active returns the monitor under the pointer interaction, if any.
func (d *DragController) Active() *monitor.Monitor {
	return d.pressed
}

// Translate moves m by a canvas-pixel delta and clamps it into box.
func Translate(m *monitor.Monitor, delta geom.Point, box geom.Rect) {
	if m.ScaleX <= 0 || m.ScaleY <= 0 {
		return
	}
	m.Position = m.Position.Add(geom.Point{X: delta.X / m.ScaleX, Y: delta.Y / m.ScaleY})
	Clamp(m, box)
}
