package monitor

import (
	"fmt"

	"github.com/1broseidon/monitile/internal/geom"
)

// Geometry is the mode and position of an output that is part of the active
// configuration.
type Geometry struct {
	Width  int
	Height int
	X      int
	Y      int
}

// Descriptor is one hardware output as reported by an enumeration source.
// Geometry is nil for outputs that are connected but not driving a CRTC.
type Descriptor struct {
	ID        string
	Connected bool
	Geometry  *Geometry
}

// Registry is the canonical monitor list for one run. It is created once at
// startup and mutated in place by the layout and drag passes.
type Registry struct {
	Monitors []*Monitor

	// Anchor is the logical position assigned to the first monitor by the
	// most recent layout pass.
	Anchor geom.Point

	selected *Monitor
	byID     map[string]*Monitor
}

// Options tune reconciliation.
type Options struct {
	PlaceholderResolution Resolution
}

// NewRegistry builds a registry from enumeration descriptors. Connected outputs
// with geometry become enabled monitors; connected outputs without geometry
// become disabled placeholders; disconnected and unnamed outputs are skipped.
func NewRegistry(descs []Descriptor, opts Options) *Registry {
	placeholder := opts.PlaceholderResolution
	if !placeholder.Valid() {
		placeholder = DefaultResolution
	}

	r := &Registry{byID: make(map[string]*Monitor)}
	for _, d := range descs {
		if !d.Connected || d.ID == "" {
			continue
		}
		if _, dup := r.byID[d.ID]; dup {
			continue
		}

		var m *Monitor
		if d.Geometry != nil {
			res := Resolution{Width: d.Geometry.Width, Height: d.Geometry.Height}
			if !res.Valid() {
				res = DefaultResolution
			}
			proposed := res
			m = &Monitor{
				ID:                 d.ID,
				Enabled:            true,
				Resolution:         res,
				ProposedResolution: &proposed,
				ProposedStatus:     true,
				Origin:             geom.Point{X: float64(d.Geometry.X), Y: float64(d.Geometry.Y)},
			}
		} else {
			m = &Monitor{
				ID:             d.ID,
				Enabled:        false,
				Resolution:     placeholder,
				ProposedStatus: false,
			}
		}
		r.add(m)
	}
	return r
}

// NewRegistryFromMonitors wraps already-built monitors. Used by tests and by
// callers that synthesize entries.
func NewRegistryFromMonitors(monitors ...*Monitor) *Registry {
	r := &Registry{byID: make(map[string]*Monitor)}
	for _, m := range monitors {
		r.add(m)
	}
	return r
}

func (r *Registry) add(m *Monitor) {
	r.Monitors = append(r.Monitors, m)
	if m.ID != "" {
		r.byID[m.ID] = m
	}
}

// Len returns the number of monitors, including placeholders.
func (r *Registry) Len() int {
	return len(r.Monitors)
}

// Get looks a monitor up by output id.
func (r *Registry) Get(id string) (*Monitor, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Lookup is Get with an error for unknown ids.
func (r *Registry) Lookup(id string) (*Monitor, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown monitor %q", id)
	}
	return m, nil
}

// Select marks id as the monitor shown in the settings panel. An empty id
// clears the selection.
func (r *Registry) Select(id string) error {
	if id == "" {
		r.selected = nil
		return nil
	}
	m, err := r.Lookup(id)
	if err != nil {
		return err
	}
	r.selected = m
	return nil
}

// SelectMonitor selects m, which must belong to the registry. Nil clears the
// selection.
func (r *Registry) SelectMonitor(m *Monitor) {
	r.selected = m
}

// Selected returns the selected monitor, if any.
func (r *Registry) Selected() (*Monitor, bool) {
	return r.selected, r.selected != nil
}

// Dragging returns the monitor currently being dragged, if any.
func (r *Registry) Dragging() (*Monitor, bool) {
	for _, m := range r.Monitors {
		if m.BeingDragged {
			return m, true
		}
	}
	return nil, false
}

// AnyDragging reports whether a drag interaction is in progress.
func (r *Registry) AnyDragging() bool {
	_, ok := r.Dragging()
	return ok
}

// Alignment pairs a live hardware list with registry entries.
type Alignment struct {
	// Live holds the registry entries for the live ids, in live order.
	Live []*Monitor
	// Unknown lists live ids with no registry entry.
	Unknown []string
	// Offline holds registry entries absent from the live list, such as
	// disabled placeholders.
	Offline []*Monitor
}

// Align pairs liveIDs with registry entries by identifier. The live list may
// be shorter than the registry and in a different order.
func (r *Registry) Align(liveIDs []string) Alignment {
	var a Alignment
	seen := make(map[string]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		m, ok := r.byID[id]
		if !ok {
			a.Unknown = append(a.Unknown, id)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		a.Live = append(a.Live, m)
	}
	for _, m := range r.Monitors {
		if _, ok := seen[m.ID]; !ok {
			a.Offline = append(a.Offline, m)
		}
	}
	return a
}

// SetDuplicateOf records that id mirrors target. An empty target clears it.
func (r *Registry) SetDuplicateOf(id, target string) error {
	m, err := r.Lookup(id)
	if err != nil {
		return err
	}
	if target == "" {
		m.DuplicateOf = ""
		return nil
	}
	if target == id {
		return fmt.Errorf("monitor %q cannot duplicate itself", id)
	}
	if _, err := r.Lookup(target); err != nil {
		return err
	}
	m.DuplicateOf = target
	return nil
}
