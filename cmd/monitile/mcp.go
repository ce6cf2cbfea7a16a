package main

import (
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/monitile/internal/mcp"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: monitile mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'monitile mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: monitile mcp serve [PATH]")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Tools list, move, toggle and resize")
		fmt.Fprintln(os.Stdout, "monitors, preview the xrandr command and apply it on confirmation.")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Example:")
		fmt.Fprintln(os.Stdout, "  claude mcp add monitile -- monitile mcp serve")
		return 0
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	// stdout carries the protocol, so logs always go to the file.
	env, err := openEnv(path, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	defer env.Close()

	ctx, cancel := signalContext()
	defer cancel()

	sess, err := env.newSession(ctx)
	if err != nil {
		return reportStartup(err)
	}

	server := mcp.NewServer(sess, env.logger)
	env.logger.Info("mcp server starting", "monitors", sess.Registry.Len())
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		env.logger.Error("mcp server stopped", "error", err)
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}
