package config

// RawConfig mirrors Config with pointer fields so unset keys keep their
// defaults.
type RawConfig struct {
	Canvas            *RawCanvas  `yaml:"canvas"`
	FillRatio         *float64    `yaml:"fill_ratio"`
	DefaultResolution *string     `yaml:"default_resolution"`
	Enumerator        *string     `yaml:"enumerator"`
	XrandrPath        *string     `yaml:"xrandr_path"`
	ApplyTimeoutMs    *int        `yaml:"apply_timeout_ms"`
	Capture           *RawCapture `yaml:"capture"`
	LogLevel          *string     `yaml:"log_level"`
	LogFile           *string     `yaml:"log_file"`
	Display           *string     `yaml:"display"`
}

type RawCanvas struct {
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`
	Width  *float64 `yaml:"width"`
	Height *float64 `yaml:"height"`
}

type RawCapture struct {
	Backend    *string `yaml:"backend"`
	IntervalMs *int    `yaml:"interval_ms"`
	TimeoutMs  *int    `yaml:"timeout_ms"`
}
