package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/layout"
	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/session"
)

func (s *Server) describe(m *monitor.Monitor) MonitorInfo {
	sel, _ := s.session.Registry.Selected()
	r := m.ScaledRect()
	return MonitorInfo{
		ID:                 m.ID,
		Enabled:            m.Enabled,
		ProposedEnabled:    m.ProposedStatus,
		Resolution:         m.Resolution.String(),
		ProposedResolution: m.EffectiveResolution().String(),
		OriginX:            int(m.Origin.X),
		OriginY:            int(m.Origin.Y),
		CanvasX:            r.Min.X,
		CanvasY:            r.Min.Y,
		CanvasWidth:        r.Width(),
		CanvasHeight:       r.Height(),
		Moved:              layout.Moved(m),
		Selected:           sel == m,
		DuplicateOf:        m.DuplicateOf,
	}
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	box := s.session.Engine.Box
	out := ListMonitorsOutput{
		Canvas: CanvasInfo{
			X:      box.Min.X,
			Y:      box.Min.Y,
			Width:  box.Width(),
			Height: box.Height(),
		},
		Monitors: make([]MonitorInfo, 0, s.session.Registry.Len()),
		Dirty:    layout.Dirty(s.session.Registry),
	}
	for _, m := range s.session.Registry.Monitors {
		out.Monitors = append(out.Monitors, s.describe(m))
	}
	return nil, out, nil
}

func (s *Server) handleMoveMonitor(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveMonitorInput) (*mcpsdk.CallToolResult, MonitorInfo, error) {
	if args.ID == "" {
		return nil, MonitorInfo{}, fmt.Errorf("id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.session.Registry.Lookup(args.ID)
	if err != nil {
		return nil, MonitorInfo{}, err
	}

	cur := m.ScaledPosition()
	target := geom.Point{X: cur.X + args.DX, Y: cur.Y + args.DY}
	if args.X != nil {
		target.X = *args.X
	}
	if args.Y != nil {
		target.Y = *args.Y
	}
	if _, err := s.session.MoveTo(args.ID, target); err != nil {
		return nil, MonitorInfo{}, err
	}
	s.logger.Debug("monitor moved", "monitor", args.ID, "canvas_x", m.ScaledPosition().X, "canvas_y", m.ScaledPosition().Y)
	return nil, s.describe(m), nil
}

func (s *Server) handleSetMonitor(_ context.Context, _ *mcpsdk.CallToolRequest, args SetMonitorInput) (*mcpsdk.CallToolResult, MonitorInfo, error) {
	if args.ID == "" {
		return nil, MonitorInfo{}, fmt.Errorf("id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.session.Registry.Lookup(args.ID)
	if err != nil {
		return nil, MonitorInfo{}, err
	}
	if args.Resolution != "" {
		if err := s.session.SetResolution(args.ID, args.Resolution); err != nil {
			return nil, MonitorInfo{}, err
		}
	}
	if args.Enabled != nil {
		if err := s.session.SetEnabled(args.ID, *args.Enabled); err != nil {
			return nil, MonitorInfo{}, err
		}
	}
	if args.DuplicateOf != nil {
		if err := s.session.Registry.SetDuplicateOf(args.ID, *args.DuplicateOf); err != nil {
			return nil, MonitorInfo{}, err
		}
	}
	return nil, s.describe(m), nil
}

func (s *Server) handlePlanChanges(_ context.Context, _ *mcpsdk.CallToolRequest, _ PlanChangesInput) (*mcpsdk.CallToolResult, PlanChangesOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := s.session.Plan()
	out := PlanChangesOutput{
		Dirty:   plan.Dirty,
		Changes: make([]ChangeInfo, 0, len(plan.Changes)),
		Command: plan.Command.String(),
	}
	for _, c := range plan.Changes {
		info := ChangeInfo{ID: c.Monitor.Label()}
		for _, r := range c.Reasons {
			info.Reasons = append(info.Reasons, string(r))
		}
		out.Changes = append(out.Changes, info)
	}
	return nil, out, nil
}

func (s *Server) handleApplyChanges(ctx context.Context, _ *mcpsdk.CallToolRequest, args ApplyChangesInput) (*mcpsdk.CallToolResult, ApplyChangesOutput, error) {
	if !args.Confirm {
		return nil, ApplyChangesOutput{}, fmt.Errorf("confirm must be true to apply changes")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, err := s.session.Apply(ctx)
	if errors.Is(err, session.ErrNoChanges) {
		return nil, ApplyChangesOutput{Applied: false}, nil
	}
	if err != nil {
		return nil, ApplyChangesOutput{}, err
	}
	s.logger.Info("changes applied via mcp", "command", cmd.String())
	return nil, ApplyChangesOutput{Applied: true, Command: cmd.String()}, nil
}
