// Package xrandr enumerates outputs from `xrandr --query` and turns a monitor
// registry into a single `xrandr` invocation.
package xrandr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/1broseidon/monitile/internal/monitor"
)

// ParseQuery reads `xrandr --query` output. Every output header line yields a
// descriptor; connected outputs without a WxH+X+Y token get nil geometry.
// Fields that fail to parse fall back to 1920x1080 at (0,0).
func ParseQuery(r io.Reader) ([]monitor.Descriptor, error) {
	var out []monitor.Descriptor
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		// Mode lines are indented; output headers are not.
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		var connected bool
		switch fields[1] {
		case "connected":
			connected = true
		case "disconnected":
			connected = false
		default:
			continue
		}

		d := monitor.Descriptor{ID: fields[0], Connected: connected}
		if connected {
			for _, f := range fields[2:] {
				if strings.Contains(f, "+") {
					g := parseGeometry(f)
					d.Geometry = &g
					break
				}
			}
		}
		out = append(out, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read xrandr output: %w", err)
	}
	return out, nil
}

// parseGeometry parses WxH+X+Y with per-field fallbacks.
func parseGeometry(tok string) monitor.Geometry {
	g := monitor.Geometry{
		Width:  monitor.DefaultResolution.Width,
		Height: monitor.DefaultResolution.Height,
	}

	size, pos, _ := strings.Cut(tok, "+")
	w, h, _ := strings.Cut(size, "x")
	if v, err := strconv.Atoi(w); err == nil && v > 0 {
		g.Width = v
	}
	if v, err := strconv.Atoi(h); err == nil && v > 0 {
		g.Height = v
	}

	x, y, _ := strings.Cut(pos, "+")
	if v, err := strconv.Atoi(x); err == nil {
		g.X = v
	}
	if v, err := strconv.Atoi(y); err == nil {
		g.Y = v
	}
	return g
}

// Query runs `<bin> --query` and parses the result.
func Query(ctx context.Context, bin string) ([]monitor.Descriptor, error) {
	if bin == "" {
		bin = DefaultBinary
	}
	stdout, err := run(ctx, bin, "--query")
	if err != nil {
		return nil, err
	}
	return ParseQuery(bytes.NewReader(stdout))
}
