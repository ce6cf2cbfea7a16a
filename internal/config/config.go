package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/monitor"
)

const (
	EnumeratorXrandr = "xrandr"
	EnumeratorRandR  = "randr"

	CaptureX11        = "x11"
	CaptureScreenshot = "screenshot"
	CaptureNone       = "none"
)

// Canvas is the on-screen box monitors are drawn into, in canvas pixels.
type Canvas struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CaptureConfig tunes the live preview.
type CaptureConfig struct {
	Backend    string `yaml:"backend"`
	IntervalMs int    `yaml:"interval_ms"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// Config is the effective configuration.
type Config struct {
	Canvas            Canvas        `yaml:"canvas"`
	FillRatio         float64       `yaml:"fill_ratio"`
	DefaultResolution string        `yaml:"default_resolution"`
	Enumerator        string        `yaml:"enumerator"`
	XrandrPath        string        `yaml:"xrandr_path"`
	ApplyTimeoutMs    int           `yaml:"apply_timeout_ms"`
	Capture           CaptureConfig `yaml:"capture"`
	LogLevel          string        `yaml:"log_level"`
	LogFile           string        `yaml:"log_file"`
	Display           string        `yaml:"display"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Canvas:            Canvas{X: 100, Y: 100, Width: 500, Height: 300},
		FillRatio:         0.8,
		DefaultResolution: monitor.DefaultResolution.String(),
		Enumerator:        EnumeratorXrandr,
		XrandrPath:        "xrandr",
		ApplyTimeoutMs:    10000,
		Capture: CaptureConfig{
			Backend:    CaptureX11,
			IntervalMs: 5000,
			TimeoutMs:  1000,
		},
		LogLevel: "info",
	}
}

// Box returns the canvas rectangle.
func (c *Config) Box() geom.Rect {
	return geom.RectFromSize(c.Canvas.X, c.Canvas.Y, c.Canvas.Width, c.Canvas.Height)
}

// PlaceholderResolution is the size given to connected outputs that report
// no mode.
func (c *Config) PlaceholderResolution() monitor.Resolution {
	r, err := monitor.ParseResolution(c.DefaultResolution)
	if err != nil {
		return monitor.DefaultResolution
	}
	return r
}

func (c *Config) ApplyTimeout() time.Duration {
	return time.Duration(c.ApplyTimeoutMs) * time.Millisecond
}

func (c *Config) CaptureInterval() time.Duration {
	return time.Duration(c.Capture.IntervalMs) * time.Millisecond
}

func (c *Config) CaptureTimeout() time.Duration {
	return time.Duration(c.Capture.TimeoutMs) * time.Millisecond
}

// GetLogFile returns the log file path with the default applied.
func (c *Config) GetLogFile() string {
	if c != nil && strings.TrimSpace(c.LogFile) != "" {
		return c.LogFile
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		// Last resort fallback - use current directory
		home = "."
	}
	return filepath.Join(home, ".local/share/monitile/monitile.log")
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return &ValidationError{Path: "canvas", Err: fmt.Errorf("canvas width and height must be > 0")}
	}
	if c.Canvas.X < 0 || c.Canvas.Y < 0 {
		return &ValidationError{Path: "canvas", Err: fmt.Errorf("canvas x and y must be >= 0")}
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		return &ValidationError{Path: "fill_ratio", Err: fmt.Errorf("fill_ratio must be in (0, 1]")}
	}
	if _, err := monitor.ParseResolution(c.DefaultResolution); err != nil {
		return &ValidationError{Path: "default_resolution", Err: err}
	}
	switch c.Enumerator {
	case EnumeratorXrandr, EnumeratorRandR:
	default:
		return &ValidationError{Path: "enumerator", Err: fmt.Errorf("enumerator must be one of: xrandr, randr")}
	}
	if c.Enumerator == EnumeratorXrandr && strings.TrimSpace(c.XrandrPath) == "" {
		return &ValidationError{Path: "xrandr_path", Err: fmt.Errorf("xrandr_path is required")}
	}
	if c.ApplyTimeoutMs <= 0 {
		return &ValidationError{Path: "apply_timeout_ms", Err: fmt.Errorf("apply_timeout_ms must be > 0")}
	}
	switch c.Capture.Backend {
	case CaptureX11, CaptureScreenshot, CaptureNone:
	default:
		return &ValidationError{Path: "capture.backend", Err: fmt.Errorf("capture.backend must be one of: x11, screenshot, none")}
	}
	if c.Capture.IntervalMs <= 0 {
		return &ValidationError{Path: "capture.interval_ms", Err: fmt.Errorf("interval_ms must be > 0")}
	}
	if c.Capture.TimeoutMs <= 0 {
		return &ValidationError{Path: "capture.timeout_ms", Err: fmt.Errorf("timeout_ms must be > 0")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}
