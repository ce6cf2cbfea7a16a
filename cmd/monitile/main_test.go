package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/layout"
	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/session"
)

const queryOutput = `Screen 0: minimum 8 x 8, current 4480 x 1440, maximum 32767 x 32767
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 193mm
   1920x1080     60.02*+
HDMI-1 connected 2560x1440+1920+0 (normal left inverted right x axis y axis) 597mm x 336mm
   2560x1440     59.95*+
`

const placeholderLine = "DP-1 connected (normal left inverted right x axis y axis)\n"

// fakeXrandr writes a stand-in xrandr script that answers --query with query
// and records every other invocation in the returned log path.
func fakeXrandr(t *testing.T, query string) (bin, logPath string) {
	t.Helper()
	dir := t.TempDir()
	bin = filepath.Join(dir, "xrandr")
	logPath = filepath.Join(dir, "calls.log")
	queryPath := filepath.Join(dir, "query.txt")
	if err := os.WriteFile(queryPath, []byte(query), 0644); err != nil {
		t.Fatalf("write query: %v", err)
	}
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--query\" ]; then cat '" + queryPath + "'; exit 0; fi\n" +
		"echo \"$@\" >> '" + logPath + "'\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return bin, logPath
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func testConfig(t *testing.T, query string) (cfgPath, logPath string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	bin, logPath := fakeXrandr(t, query)
	cfgPath = writeConfig(t, "xrandr_path: "+bin+"\ncapture:\n  backend: none\nlog_level: error\n")
	return cfgPath, logPath
}

func TestRunConfigValidate(t *testing.T) {
	good := writeConfig(t, "fill_ratio: 0.5\n")
	if rc := runConfig([]string{"validate", "--path", good}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}

	bad := writeConfig(t, "fill_ratio: 2\n")
	if rc := runConfig([]string{"validate", "--path", bad}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1", rc)
	}

	if rc := runConfig([]string{"bogus"}); rc != 2 {
		t.Fatalf("unknown subcommand rc=%d, want 2", rc)
	}
}

func TestRunPlan(t *testing.T) {
	cfgPath, logPath := testConfig(t, queryOutput+placeholderLine)

	if rc := runPlan([]string{"--path", cfgPath, "--mode", "HDMI-1=1920x1080"}); rc != 0 {
		t.Fatalf("plan rc=%d, want 0", rc)
	}
	if rc := runPlan([]string{"--path", cfgPath, "--mode", "HDMI-1=huge"}); rc != 2 {
		t.Fatalf("bad mode rc=%d, want 2", rc)
	}
	if rc := runPlan([]string{"--path", cfgPath, "--enable", "VGA-9"}); rc != 2 {
		t.Fatalf("unknown output rc=%d, want 2", rc)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatalf("plan must not run xrandr beyond --query")
	}
}

func TestRunApply(t *testing.T) {
	cfgPath, logPath := testConfig(t, queryOutput+placeholderLine)

	if rc := runApply([]string{"--path", cfgPath, "--enable", "DP-1"}); rc != 2 {
		t.Fatalf("apply without --yes rc=%d, want 2", rc)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatalf("apply without --yes must not run xrandr")
	}

	if rc := runApply([]string{"--path", cfgPath, "--yes", "--enable", "DP-1", "--mode", "HDMI-1=1920x1080"}); rc != 0 {
		t.Fatalf("apply rc=%d, want 0", rc)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := strings.TrimSpace(string(data))
	want := "--output eDP-1 --mode 1920x1080 --pos 0x0 --output HDMI-1 --mode 1920x1080 --pos 1920x0 --output DP-1 --mode 1920x1080"
	if !strings.HasPrefix(got, want) {
		t.Fatalf("unexpected xrandr args\n  got  %s\n  want %s...", got, want)
	}
}

func TestRunApply_CleanIsNoop(t *testing.T) {
	cfgPath, logPath := testConfig(t, queryOutput)
	if rc := runApply([]string{"--path", cfgPath, "--yes"}); rc != 0 {
		t.Fatalf("apply rc=%d, want 0", rc)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatalf("clean apply must not run xrandr")
	}
}

func TestRunMonitors_NoMonitors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	bin := filepath.Join(dir, "xrandr")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\necho 'Screen 0: minimum 8 x 8'\n"), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	cfgPath := writeConfig(t, "xrandr_path: "+bin+"\n")
	if rc := runMonitors([]string{"--path", cfgPath}); rc != 1 {
		t.Fatalf("monitors rc=%d, want 1", rc)
	}
}

func TestPrintMonitors(t *testing.T) {
	reg := monitor.NewRegistry([]monitor.Descriptor{
		{ID: "eDP-1", Connected: true, Geometry: &monitor.Geometry{Width: 1920, Height: 1080}},
		{ID: "DP-1", Connected: true},
	}, monitor.Options{})

	var buf bytes.Buffer
	printMonitors(&buf, reg)
	out := buf.String()
	for _, want := range []string{"OUTPUT", "eDP-1", "+0+0", "DP-1", "off"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestPrintPlan(t *testing.T) {
	reg := monitor.NewRegistry([]monitor.Descriptor{
		{ID: "eDP-1", Connected: true, Geometry: &monitor.Geometry{Width: 1920, Height: 1080}},
	}, monitor.Options{})
	sess, err := session.New(reg, session.Options{Box: geom.RectFromSize(0, 0, 500, 300), FillRatio: layout.DefaultFillRatio})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	var buf bytes.Buffer
	printPlan(&buf, sess.Plan())
	if strings.TrimSpace(buf.String()) != "No pending changes." {
		t.Fatalf("unexpected clean plan %q", buf.String())
	}

	if err := sess.SetResolution("eDP-1", "1280x720"); err != nil {
		t.Fatalf("set resolution: %v", err)
	}
	buf.Reset()
	printPlan(&buf, sess.Plan())
	if !strings.Contains(buf.String(), "eDP-1: resolution") || !strings.Contains(buf.String(), "--mode 1280x720") {
		t.Fatalf("unexpected plan:\n%s", buf.String())
	}
}
