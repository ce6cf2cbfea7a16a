package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig overlays raw onto the defaults and validates the
// result.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Canvas != nil {
		if raw.Canvas.X != nil {
			cfg.Canvas.X = *raw.Canvas.X
		}
		if raw.Canvas.Y != nil {
			cfg.Canvas.Y = *raw.Canvas.Y
		}
		if raw.Canvas.Width != nil {
			cfg.Canvas.Width = *raw.Canvas.Width
		}
		if raw.Canvas.Height != nil {
			cfg.Canvas.Height = *raw.Canvas.Height
		}
	}
	if raw.FillRatio != nil {
		cfg.FillRatio = *raw.FillRatio
	}
	if raw.DefaultResolution != nil {
		cfg.DefaultResolution = *raw.DefaultResolution
	}
	if raw.Enumerator != nil {
		cfg.Enumerator = *raw.Enumerator
	}
	if raw.XrandrPath != nil {
		cfg.XrandrPath = *raw.XrandrPath
	}
	if raw.ApplyTimeoutMs != nil {
		cfg.ApplyTimeoutMs = *raw.ApplyTimeoutMs
	}
	if raw.Capture != nil {
		if raw.Capture.Backend != nil {
			cfg.Capture.Backend = *raw.Capture.Backend
		}
		if raw.Capture.IntervalMs != nil {
			cfg.Capture.IntervalMs = *raw.Capture.IntervalMs
		}
		if raw.Capture.TimeoutMs != nil {
			cfg.Capture.TimeoutMs = *raw.Capture.TimeoutMs
		}
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
