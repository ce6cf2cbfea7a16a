package mcp

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes one monitor on the canvas.
type MonitorInfo struct {
	ID                 string  `json:"id"`
	Enabled            bool    `json:"enabled"`
	ProposedEnabled    bool    `json:"proposed_enabled"`
	Resolution         string  `json:"resolution"`
	ProposedResolution string  `json:"proposed_resolution"`
	OriginX            int     `json:"origin_x"`
	OriginY            int     `json:"origin_y"`
	CanvasX            float64 `json:"canvas_x"`
	CanvasY            float64 `json:"canvas_y"`
	CanvasWidth        float64 `json:"canvas_width"`
	CanvasHeight       float64 `json:"canvas_height"`
	Moved              bool    `json:"moved"`
	Selected           bool    `json:"selected"`
	DuplicateOf        string  `json:"duplicate_of,omitempty"`
}

// CanvasInfo is the box monitors are confined to.
type CanvasInfo struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Canvas   CanvasInfo    `json:"canvas"`
	Monitors []MonitorInfo `json:"monitors"`
	Dirty    bool          `json:"dirty"`
}

// MoveMonitorInput is the input for the move_monitor tool.
type MoveMonitorInput struct {
	ID string   `json:"id" jsonschema:"required,Output identifier (e.g. HDMI-1)"`
	X  *float64 `json:"x,omitempty" jsonschema:"Absolute canvas x for the monitor's top-left corner"`
	Y  *float64 `json:"y,omitempty" jsonschema:"Absolute canvas y for the monitor's top-left corner"`
	DX float64  `json:"dx,omitempty" jsonschema:"Relative canvas-pixel shift along x, applied when x is omitted"`
	DY float64  `json:"dy,omitempty" jsonschema:"Relative canvas-pixel shift along y, applied when y is omitted"`
}

// SetMonitorInput is the input for the set_monitor tool.
type SetMonitorInput struct {
	ID          string  `json:"id" jsonschema:"required,Output identifier (e.g. HDMI-1)"`
	Enabled     *bool   `json:"enabled,omitempty" jsonschema:"Proposed on/off state"`
	Resolution  string  `json:"resolution,omitempty" jsonschema:"Proposed mode as WxH (e.g. 2560x1440)"`
	DuplicateOf *string `json:"duplicate_of,omitempty" jsonschema:"Output this monitor mirrors; empty string clears it"`
}

// PlanChangesInput is the input for the plan_changes tool.
type PlanChangesInput struct{}

// ChangeInfo lists the pending reasons for one monitor.
type ChangeInfo struct {
	ID      string   `json:"id"`
	Reasons []string `json:"reasons"`
}

// PlanChangesOutput is the output for the plan_changes tool.
type PlanChangesOutput struct {
	Dirty   bool         `json:"dirty"`
	Changes []ChangeInfo `json:"changes"`
	Command string       `json:"command"`
}

// ApplyChangesInput is the input for the apply_changes tool.
type ApplyChangesInput struct {
	Confirm bool `json:"confirm" jsonschema:"required,Must be true; applying reconfigures the real displays"`
}

// ApplyChangesOutput is the output for the apply_changes tool.
type ApplyChangesOutput struct {
	Applied bool   `json:"applied"`
	Command string `json:"command"`
}
