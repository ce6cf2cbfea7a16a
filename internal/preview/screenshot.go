package preview

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/1broseidon/monitile/internal/geom"
)

// ScreenshotCapturer captures through github.com/kbinani/screenshot, which
// works without a direct X connection handle.
type ScreenshotCapturer struct{}

func (ScreenshotCapturer) Capture(ctx context.Context, r geom.Rect) (*image.RGBA, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, ErrNoFrame
	}
	rect := image.Rect(int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y))
	if rect.Empty() {
		return nil, fmt.Errorf("capture: empty rect %v", rect)
	}

	type result struct {
		img *image.RGBA
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := screenshot.CaptureRect(rect)
		done <- result{img: img, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("capture %v: %w", rect, res.err)
		}
		return res.img, nil
	}
}
