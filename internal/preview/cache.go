package preview

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/monitile/internal/monitor"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = time.Second
)

// Cache holds the latest frame per monitor id. It is owned by the renderer
// and is not safe for concurrent use.
type Cache struct {
	capturer Capturer
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	now      func() time.Time

	frames map[string]*image.RGBA
}

// NewCache creates a cache. A nil capturer disables capture entirely.
func NewCache(c Capturer, interval, timeout time.Duration, logger *slog.Logger) *Cache {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{
		capturer: c,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
		frames:   make(map[string]*image.RGBA),
	}
}

// Refresh captures every enabled monitor whose preview is due. Nothing is
// captured while any monitor is being dragged. Returns the number of new
// frames.
func (c *Cache) Refresh(ctx context.Context, reg *monitor.Registry) int {
	if c.capturer == nil || reg.AnyDragging() {
		return 0
	}
	now := c.now()
	updated := 0
	for _, m := range reg.Monitors {
		if !m.Enabled || m.ID == "" || !m.CaptureDue(now, c.interval) {
			continue
		}
		m.LastCapture = now

		img, err := c.capture(ctx, m)
		switch {
		case err == nil:
			c.frames[m.ID] = img
			updated++
		case errors.Is(err, ErrNoFrame):
			// Keep trying every pass until the first frame arrives.
			if _, ok := c.frames[m.ID]; !ok {
				m.LastCapture = time.Time{}
			}
		default:
			c.logger.Warn("preview capture failed", "monitor", m.ID, "error", err)
		}
	}
	return updated
}

func (c *Cache) capture(ctx context.Context, m *monitor.Monitor) (*image.RGBA, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	img, err := c.capturer.Capture(ctx, m.HardwareRect())
	if err == nil && img == nil {
		return nil, ErrNoFrame
	}
	return img, err
}

// Frame returns the cached frame for id.
func (c *Cache) Frame(id string) (*image.RGBA, bool) {
	img, ok := c.frames[id]
	return img, ok
}

// Forget drops the frame for id, for example after the monitor is turned off.
func (c *Cache) Forget(id string) {
	delete(c.frames, id)
}
