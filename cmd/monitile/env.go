package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/monitile/internal/config"
	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/preview"
	"github.com/1broseidon/monitile/internal/runtimepath"
	"github.com/1broseidon/monitile/internal/session"
	"github.com/1broseidon/monitile/internal/x11"
	"github.com/1broseidon/monitile/internal/xrandr"
)

// appEnv is the process-wide wiring shared by the subcommands: configuration,
// logger and the lazily opened X connection.
type appEnv struct {
	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
	conn    *x11.Connection
}

// openEnv loads configuration from path (or the default location) and sets
// up logging. Commands that own the terminal log to the configured file;
// one-shot commands log to stderr.
func openEnv(path string, logToFile bool) (*appEnv, error) {
	res, err := loadResult(path)
	if err != nil {
		return nil, err
	}
	cfg := res.Config

	if cfg.Display != "" {
		// xrandr and the screenshot backend read DISPLAY from the environment.
		if err := os.Setenv("DISPLAY", cfg.Display); err != nil {
			return nil, fmt.Errorf("set DISPLAY: %w", err)
		}
	}

	e := &appEnv{cfg: cfg}
	if logToFile {
		f, err := cfg.OpenLogFile()
		if err != nil {
			return nil, err
		}
		e.logFile = f
		e.logger = cfg.NewLogger(f)
	} else {
		e.logger = cfg.NewLogger(os.Stderr)
	}
	return e, nil
}

func (e *appEnv) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *appEnv) connection() (*x11.Connection, error) {
	if e.conn != nil {
		return e.conn, nil
	}
	conn, err := x11.NewConnection(e.cfg.Display)
	if err != nil {
		return nil, err
	}
	e.conn = conn
	return conn, nil
}

func (e *appEnv) executor() *xrandr.CommandExecutor {
	return xrandr.NewCommandExecutor(e.cfg.XrandrPath, e.cfg.ApplyTimeout(), e.logger)
}

// applier is the executor handed to the session. Runs are serialized across
// processes through the runtime lock file.
func (e *appEnv) applier() xrandr.Executor {
	exec := e.executor()
	path, err := runtimepath.ApplyLockPath()
	if err != nil {
		e.logger.Warn("apply lock unavailable", "error", err)
		return exec
	}
	return &xrandr.LockedExecutor{Next: exec, LockPath: path}
}

// enumerate lists hardware outputs with the configured enumerator.
func (e *appEnv) enumerate(ctx context.Context) ([]monitor.Descriptor, error) {
	if e.cfg.Enumerator == config.EnumeratorRandR {
		conn, err := e.connection()
		if err != nil {
			return nil, err
		}
		return conn.Outputs()
	}
	descs, err := e.executor().Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate monitors: %w", err)
	}
	return descs, nil
}

// newSession enumerates outputs and builds the session. An empty registry
// yields layout.ErrEmptyRegistry.
func (e *appEnv) newSession(ctx context.Context) (*session.Session, error) {
	descs, err := e.enumerate(ctx)
	if err != nil {
		return nil, err
	}
	reg := monitor.NewRegistry(descs, monitor.Options{
		PlaceholderResolution: e.cfg.PlaceholderResolution(),
	})
	e.logger.Debug("monitors enumerated", "enumerator", e.cfg.Enumerator, "count", reg.Len())

	return session.New(reg, session.Options{
		Box:       e.cfg.Box(),
		FillRatio: e.cfg.FillRatio,
		Executor:  e.applier(),
		Logger:    e.logger,
	})
}

// capturer returns the configured preview backend, or nil when previews are
// off or the backend is unavailable.
func (e *appEnv) capturer(reg *monitor.Registry) preview.Capturer {
	switch e.cfg.Capture.Backend {
	case config.CaptureNone:
		return nil
	case config.CaptureScreenshot:
		return preview.ScreenshotCapturer{}
	}

	conn, err := e.connection()
	if err != nil {
		e.logger.Warn("preview capture disabled", "error", err)
		return nil
	}
	// The capture rectangles come from the registry, so report any output
	// the X server and the enumerator disagree on.
	if outputs, err := conn.Outputs(); err == nil {
		ids := make([]string, 0, len(outputs))
		for _, d := range outputs {
			if d.Connected {
				ids = append(ids, d.ID)
			}
		}
		a := reg.Align(ids)
		if len(a.Unknown) > 0 {
			e.logger.Warn("outputs missing from enumeration", "ids", a.Unknown)
		}
		for _, m := range a.Offline {
			e.logger.Debug("output not live on the X server", "id", m.ID)
		}
	}
	return conn
}
