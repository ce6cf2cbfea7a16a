package xrandr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/runtimepath"
)

// DefaultTimeout bounds a single xrandr invocation.
const DefaultTimeout = 10 * time.Second

// Executor applies a synthesized command to the hardware.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}

// ExecError describes a failed invocation. It never terminates the process;
// callers surface it to the user.
type ExecError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExecError) Unwrap() error { return e.Err }

// runCommand is swapped out in tests.
var runCommand = func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

func run(ctx context.Context, name string, args ...string) ([]byte, error) {
	stdout, stderr, err := runCommand(ctx, name, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out: %w", ctxErr)
		}
		return stdout, &ExecError{
			Command: strings.Join(append([]string{name}, args...), " "),
			Stderr:  strings.TrimSpace(string(stderr)),
			Err:     err,
		}
	}
	return stdout, nil
}

// CommandExecutor runs the xrandr binary directly with the clause arguments.
// No shell is involved.
type CommandExecutor struct {
	Path    string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewCommandExecutor returns an executor for the binary at path. Empty path
// and non-positive timeout select the defaults.
func NewCommandExecutor(path string, timeout time.Duration, logger *slog.Logger) *CommandExecutor {
	if path == "" {
		path = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CommandExecutor{Path: path, Timeout: timeout, Logger: logger}
}

// Execute runs cmd. An empty command is a no-op.
func (e *CommandExecutor) Execute(ctx context.Context, cmd Command) error {
	if cmd.Empty() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	start := time.Now()
	_, err := run(ctx, e.Path, cmd.Args()...)
	if err != nil {
		e.Logger.Error("xrandr failed", "command", cmd.String(), "error", err)
		return err
	}
	e.Logger.Info("xrandr applied", "command", cmd.String(), "duration", time.Since(start))
	return nil
}

// Query enumerates outputs with the configured binary.
func (e *CommandExecutor) Query(ctx context.Context) ([]monitor.Descriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()
	return Query(ctx, e.Path)
}

// LockedExecutor runs Next while holding an exclusive lock file so that two
// monitile processes never run xrandr at the same time.
type LockedExecutor struct {
	Next     Executor
	LockPath string
}

// Execute fails fast with runtimepath.ErrLocked when the lock is taken.
func (e *LockedExecutor) Execute(ctx context.Context, cmd Command) error {
	if cmd.Empty() {
		return nil
	}
	release, err := runtimepath.Lock(e.LockPath)
	if err != nil {
		if errors.Is(err, runtimepath.ErrLocked) {
			return fmt.Errorf("another apply is in progress: %w", err)
		}
		return err
	}
	defer release()
	return e.Next.Execute(ctx, cmd)
}
