package layout

import (
	"strings"

	"github.com/1broseidon/monitile/internal/monitor"
)

// moveEpsilon is the canvas-pixel distance below which a monitor counts as
// unmoved.
const moveEpsilon = 1e-3

// Reason describes why a monitor has a pending change.
type Reason string

const (
	ReasonMoved      Reason = "moved"
	ReasonDisabled   Reason = "disabled"
	ReasonResolution Reason = "resolution"
	ReasonStatus     Reason = "status"
)

// Change lists the pending reasons for one monitor.
type Change struct {
	Monitor *monitor.Monitor
	Reasons []Reason
}

func (c Change) String() string {
	parts := make([]string, len(c.Reasons))
	for i, r := range c.Reasons {
		parts[i] = string(r)
	}
	return c.Monitor.Label() + ": " + strings.Join(parts, ", ")
}

// Moved reports whether m has been dragged away from its baseline. Both sides
// are compared in canvas pixels.
func Moved(m *monitor.Monitor) bool {
	if !m.Placed {
		return false
	}
	return !m.ScaledPosition().Near(m.InitialScaledPosition, moveEpsilon)
}

func reasons(m *monitor.Monitor) []Reason {
	var out []Reason
	if Moved(m) {
		out = append(out, ReasonMoved)
	}
	if !m.Enabled {
		out = append(out, ReasonDisabled)
	}
	if m.ProposedResolution != nil && *m.ProposedResolution != m.Resolution {
		out = append(out, ReasonResolution)
	}
	if m.ProposedStatus != m.Enabled {
		out = append(out, ReasonStatus)
	}
	return out
}

// Changes returns every monitor with a pending change, in registry order.
func Changes(reg *monitor.Registry) []Change {
	var out []Change
	for _, m := range reg.Monitors {
		if rs := reasons(m); len(rs) > 0 {
			out = append(out, Change{Monitor: m, Reasons: rs})
		}
	}
	return out
}

// Dirty reports whether there is anything to apply.
func Dirty(reg *monitor.Registry) bool {
	for _, m := range reg.Monitors {
		if len(reasons(m)) > 0 {
			return true
		}
	}
	return false
}
