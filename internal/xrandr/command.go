package xrandr

import (
	"strconv"
	"strings"

	"github.com/1broseidon/monitile/internal/layout"
	"github.com/1broseidon/monitile/internal/monitor"
)

// DefaultBinary is the executable used when no path is configured.
const DefaultBinary = "xrandr"

// Clause configures one output.
type Clause struct {
	Output string
	Off    bool
	Mode   monitor.Resolution
	X      int
	Y      int
}

// Args returns the clause as xrandr arguments.
func (c Clause) Args() []string {
	if c.Off {
		return []string{"--output", c.Output, "--off"}
	}
	return []string{
		"--output", c.Output,
		"--mode", c.Mode.String(),
		"--pos", strconv.Itoa(c.X) + "x" + strconv.Itoa(c.Y),
	}
}

// Command is a full xrandr invocation, one clause per monitor in registry
// order.
type Command struct {
	Clauses []Clause
}

// Args flattens every clause.
func (c Command) Args() []string {
	var out []string
	for _, cl := range c.Clauses {
		out = append(out, cl.Args()...)
	}
	return out
}

// String renders the command line as it would be typed in a shell.
func (c Command) String() string {
	return strings.Join(append([]string{DefaultBinary}, c.Args()...), " ")
}

// Empty reports whether the command has nothing to apply.
func (c Command) Empty() bool {
	return len(c.Clauses) == 0
}

// Build computes the command for reg without touching it.
//
// Monitors that moved on the canvas are positioned relative to the registry
// anchor; unmoved monitors keep their committed origin. The x coordinate is
// emitted as an absolute value and both are truncated toward zero. Monitors
// without an output id cannot be addressed and are skipped.
func Build(reg *monitor.Registry) Command {
	var cmd Command
	for _, m := range reg.Monitors {
		if m.ID == "" {
			continue
		}
		if !m.ProposedStatus {
			cmd.Clauses = append(cmd.Clauses, Clause{Output: m.ID, Off: true})
			continue
		}

		x, y := int(m.Origin.X), int(m.Origin.Y)
		if layout.Moved(m) {
			x = int(reg.Anchor.X - m.Position.X)
			y = int(reg.Anchor.Y - m.Position.Y)
		}
		if x < 0 {
			x = -x
		}
		cmd.Clauses = append(cmd.Clauses, Clause{
			Output: m.ID,
			Mode:   m.EffectiveResolution(),
			X:      x,
			Y:      y,
		})
	}
	return cmd
}

// Synthesize builds the command and commits each monitor's proposed status to
// its enabled flag.
func Synthesize(reg *monitor.Registry) Command {
	cmd := Build(reg)
	for _, m := range reg.Monitors {
		if m.ID == "" {
			continue
		}
		m.Enabled = m.ProposedStatus
	}
	return cmd
}

// Clause returns the clause addressing output id.
func (c Command) Clause(id string) (Clause, bool) {
	for _, cl := range c.Clauses {
		if cl.Output == id {
			return cl, true
		}
	}
	return Clause{}, false
}
