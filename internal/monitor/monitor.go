package monitor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/1broseidon/monitile/internal/geom"
)

// ErrInvalidResolution is returned when resolution text is not WxH with
// positive integers.
var ErrInvalidResolution = errors.New("invalid resolution")

// DefaultResolution is used for placeholders and for unparsable geometry.
var DefaultResolution = Resolution{Width: 1920, Height: 1080}

// Resolution is a pixel size.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Valid reports whether both dimensions are positive.
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// ParseResolution parses "WxH" (for example "2560x1440").
func ParseResolution(s string) (Resolution, error) {
	parts := strings.Split(strings.TrimSpace(s), "x")
	if len(parts) != 2 {
		return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidResolution, s)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidResolution, s)
	}
	r := Resolution{Width: w, Height: h}
	if !r.Valid() {
		return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidResolution, s)
	}
	return r, nil
}

// Monitor is one hardware output as seen by the arrangement canvas.
//
// Position is in logical (unscaled) units. InitialScaledPosition and the scale
// factors are recorded by the layout engine the first time the monitor is
// placed and act as the baseline for change detection.
type Monitor struct {
	ID                 string
	Enabled            bool
	Resolution         Resolution
	ProposedResolution *Resolution
	ProposedStatus     bool

	// Origin is the committed hardware position reported by enumeration.
	Origin geom.Point

	Position              geom.Point
	Placed                bool
	InitialScaledPosition geom.Point
	ScaleX                float64
	ScaleY                float64

	BeingDragged bool
	DuplicateOf  string
	LastCapture  time.Time
}

// EffectiveResolution returns the proposed resolution if set, otherwise the
// committed one.
func (m *Monitor) EffectiveResolution() Resolution {
	if m.ProposedResolution != nil {
		return *m.ProposedResolution
	}
	return m.Resolution
}

// SetProposedResolution parses text and stores it as the proposed resolution.
// Malformed text leaves the previous value untouched.
func (m *Monitor) SetProposedResolution(text string) error {
	r, err := ParseResolution(text)
	if err != nil {
		return err
	}
	m.ProposedResolution = &r
	return nil
}

// ScaledPosition returns Position in canvas pixels.
func (m *Monitor) ScaledPosition() geom.Point {
	return m.Position.Scale(m.ScaleX, m.ScaleY)
}

// ScaledRect returns the monitor's rectangle on the canvas.
func (m *Monitor) ScaledRect() geom.Rect {
	p := m.ScaledPosition()
	return geom.RectFromSize(
		p.X,
		p.Y,
		float64(m.Resolution.Width)*m.ScaleX,
		float64(m.Resolution.Height)*m.ScaleY,
	)
}

// HardwareRect returns the committed rectangle in root-window pixels.
func (m *Monitor) HardwareRect() geom.Rect {
	return geom.RectFromSize(m.Origin.X, m.Origin.Y, float64(m.Resolution.Width), float64(m.Resolution.Height))
}

// CaptureDue reports whether the preview for m should be refreshed.
func (m *Monitor) CaptureDue(now time.Time, interval time.Duration) bool {
	return m.LastCapture.IsZero() || now.Sub(m.LastCapture) > interval
}

// Label is the display name used by the renderers.
func (m *Monitor) Label() string {
	if m.ID == "" {
		return "(unnamed)"
	}
	return m.ID
}
