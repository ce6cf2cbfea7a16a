// Package session owns the monitor registry for one run and sequences the
// layout, drag, change detection and apply steps over it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/layout"
	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/xrandr"
)

// ErrNoChanges is returned by Apply when the arrangement matches the hardware.
var ErrNoChanges = errors.New("no pending changes")

// Options configure a session.
type Options struct {
	Box       geom.Rect
	FillRatio float64
	Executor  xrandr.Executor
	Logger    *slog.Logger
}

// Session is the application controller. It is not safe for concurrent use.
type Session struct {
	Registry *monitor.Registry
	Engine   *layout.Engine
	Drag     *layout.DragController

	executor xrandr.Executor
	logger   *slog.Logger
}

// New wraps reg and runs the first layout pass. An empty registry yields
// layout.ErrEmptyRegistry.
func New(reg *monitor.Registry, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		Registry: reg,
		Engine:   layout.NewEngine(opts.Box, opts.FillRatio),
		Drag:     layout.NewDragController(opts.Box),
		executor: opts.Executor,
		logger:   logger,
	}
	if err := s.Layout(); err != nil {
		return nil, err
	}
	return s, nil
}

// Layout runs one layout pass.
func (s *Session) Layout() error {
	return s.Engine.Place(s.Registry)
}

// Press starts a pointer interaction at canvas point p and returns the
// monitor under it.
func (s *Session) Press(p geom.Point) *monitor.Monitor {
	m := layout.HitTest(s.Registry, p)
	if m == nil {
		s.Drag.Cancel(s.Registry)
		return nil
	}
	s.Drag.Press(s.Registry, m)
	return m
}

// Motion forwards a canvas-pixel pointer delta to the drag controller.
func (s *Session) Motion(delta geom.Point) bool {
	return s.Drag.Move(s.Registry, delta)
}

// Release ends the pointer interaction. A click returns the selected monitor.
func (s *Session) Release() *monitor.Monitor {
	return s.Drag.Release(s.Registry)
}

// Select changes the monitor shown in the settings panel.
func (s *Session) Select(id string) error {
	return s.Registry.Select(id)
}

// MoveBy shifts monitor id by a canvas-pixel delta, clamped to the canvas.
func (s *Session) MoveBy(id string, delta geom.Point) (*monitor.Monitor, error) {
	m, err := s.Registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	layout.Translate(m, delta, s.Engine.Box)
	return m, nil
}

// MoveTo puts the top-left corner of monitor id at canvas point p, clamped to
// the canvas.
func (s *Session) MoveTo(id string, p geom.Point) (*monitor.Monitor, error) {
	m, err := s.Registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	cur := m.ScaledPosition()
	layout.Translate(m, geom.Point{X: p.X - cur.X, Y: p.Y - cur.Y}, s.Engine.Box)
	return m, nil
}

// SetEnabled proposes turning monitor id on or off.
func (s *Session) SetEnabled(id string, enabled bool) error {
	m, err := s.Registry.Lookup(id)
	if err != nil {
		return err
	}
	m.ProposedStatus = enabled
	return nil
}

// SetResolution proposes a new mode for monitor id from WxH text. Invalid text
// keeps the previous proposal.
func (s *Session) SetResolution(id, text string) error {
	m, err := s.Registry.Lookup(id)
	if err != nil {
		return err
	}
	if err := m.SetProposedResolution(text); err != nil {
		return fmt.Errorf("monitor %s: %w", id, err)
	}
	return nil
}

// Plan is a dry run of Apply.
type Plan struct {
	Dirty   bool
	Changes []layout.Change
	Command xrandr.Command
}

// Plan reports pending changes and the command Apply would run, without
// mutating anything.
func (s *Session) Plan() Plan {
	return Plan{
		Dirty:   layout.Dirty(s.Registry),
		Changes: layout.Changes(s.Registry),
		Command: xrandr.Build(s.Registry),
	}
}

// Apply synthesizes the command, runs it and on success makes the applied
// arrangement the new baseline. On failure the enabled flags already reflect
// the proposal and the error is returned for display.
func (s *Session) Apply(ctx context.Context) (xrandr.Command, error) {
	cmd, err := s.Prepare()
	if err != nil {
		return cmd, err
	}
	return cmd, s.Commit(cmd, s.Execute(ctx, cmd))
}

// Prepare synthesizes the command for the pending changes and commits the
// proposed enabled flags.
func (s *Session) Prepare() (xrandr.Command, error) {
	if !layout.Dirty(s.Registry) {
		return xrandr.Command{}, ErrNoChanges
	}
	if s.executor == nil {
		return xrandr.Command{}, errors.New("apply: no executor configured")
	}
	cmd := xrandr.Synthesize(s.Registry)
	s.logger.Info("applying layout", "command", cmd.String())
	return cmd, nil
}

// Execute runs cmd. It does not touch the registry and may run outside the
// goroutine that owns the session.
func (s *Session) Execute(ctx context.Context, cmd xrandr.Command) error {
	if s.executor == nil {
		return errors.New("apply: no executor configured")
	}
	return s.executor.Execute(ctx, cmd)
}

// Commit finishes an apply started with Prepare. A nil execErr re-baselines
// the registry; otherwise the error is logged and returned wrapped.
func (s *Session) Commit(cmd xrandr.Command, execErr error) error {
	if execErr != nil {
		s.logger.Error("apply failed", "error", execErr)
		return fmt.Errorf("apply: %w", execErr)
	}
	return s.rebaseline(cmd)
}

func (s *Session) rebaseline(cmd xrandr.Command) error {
	for _, m := range s.Registry.Monitors {
		if m.ProposedResolution != nil {
			m.Resolution = *m.ProposedResolution
		}
		if cl, ok := cmd.Clause(m.ID); ok && !cl.Off {
			m.Origin = geom.Point{X: float64(cl.X), Y: float64(cl.Y)}
			if m.ProposedResolution == nil {
				res := cl.Mode
				m.ProposedResolution = &res
			}
		}
	}
	return s.Engine.Rescale(s.Registry)
}
