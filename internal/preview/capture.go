// Package preview keeps per-monitor screen captures for the canvas and turns
// them into terminal thumbnails.
package preview

import (
	"context"
	"errors"
	"image"

	"github.com/1broseidon/monitile/internal/geom"
)

// ErrNoFrame means no new frame is available right now. The previous preview
// stays in place and no error is logged.
var ErrNoFrame = errors.New("preview: no new frame")

// Capturer grabs the screen contents inside a hardware rectangle.
type Capturer interface {
	Capture(ctx context.Context, r geom.Rect) (*image.RGBA, error)
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func(ctx context.Context, r geom.Rect) (*image.RGBA, error)

func (f CapturerFunc) Capture(ctx context.Context, r geom.Rect) (*image.RGBA, error) {
	return f(ctx, r)
}
