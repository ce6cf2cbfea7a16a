// Package mcp exposes the monitor arrangement session as MCP tools over stdio.
package mcp

import (
	"context"
	"io"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/monitile/internal/session"
)

const (
	ServerName    = "monitile"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for monitor arrangement. Tool calls may arrive
// concurrently; mu serializes access to the session.
type Server struct {
	mcpServer *mcpsdk.Server
	logger    *slog.Logger

	mu      sync.Mutex
	session *session.Session
}

// NewServer creates a new MCP server over sess.
func NewServer(sess *session.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		session: sess,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List every connected monitor with its committed and proposed state and its position on the arrangement canvas.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_monitor",
		Description: "Move a monitor on the arrangement canvas, either to an absolute canvas position (x/y) or by a relative shift (dx/dy). The monitor is clamped inside the canvas. Nothing is applied until apply_changes.",
	}, s.handleMoveMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_monitor",
		Description: "Propose turning a monitor on or off, changing its resolution (WxH), or recording that it mirrors another output. Invalid resolutions are rejected and the previous proposal is kept.",
	}, s.handleSetMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "plan_changes",
		Description: "Show pending changes per monitor and the xrandr command apply_changes would run. Does not modify anything.",
	}, s.handlePlanChanges)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_changes",
		Description: "Apply the pending arrangement to the real displays with a single xrandr invocation. Requires confirm=true.",
	}, s.handleApplyChanges)
}
