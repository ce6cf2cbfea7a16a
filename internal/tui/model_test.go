package tui

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/monitile/internal/geom"
	"github.com/1broseidon/monitile/internal/layout"
	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/session"
	"github.com/1broseidon/monitile/internal/xrandr"
)

type fakeExecutor struct {
	cmds []xrandr.Command
	err  error
}

func (f *fakeExecutor) Execute(ctx context.Context, cmd xrandr.Command) error {
	f.cmds = append(f.cmds, cmd)
	return f.err
}

// Canvas of 50x30 cells over a 500x300 box: one cell is 10x10 canvas pixels.
const (
	testCols = 50
	testRows = 30
)

func newTestModel(t *testing.T, exec xrandr.Executor) Model {
	t.Helper()
	descs := []monitor.Descriptor{
		{ID: "A", Connected: true, Geometry: &monitor.Geometry{Width: 1920, Height: 1080}},
		{ID: "B", Connected: true, Geometry: &monitor.Geometry{Width: 1080, Height: 1920, X: 1920}},
	}
	sess, err := session.New(monitor.NewRegistry(descs, monitor.Options{}), session.Options{
		Box:       geom.RectFromSize(100, 100, 500, 300),
		FillRatio: layout.DefaultFillRatio,
		Executor:  exec,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	m := New(sess, nil, nil)
	width := testCols + 2 + gapWidth + panelWidth
	height := testRows + 2 + headerHeight + footerHeight
	return update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// screenAt returns the terminal cell over the canvas point p.
func screenAt(m Model, p geom.Point) (x, y int) {
	col := int((p.X - m.grid.box.Min.X) / m.grid.pxPerCol())
	row := int((p.Y - m.grid.box.Min.Y) / m.grid.pxPerRow())
	return col + 1, row + headerHeight + 1
}

func centerOf(mon *monitor.Monitor) geom.Point {
	r := mon.ScaledRect()
	return geom.Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	btn := tea.MouseButtonLeft
	if action == tea.MouseActionRelease {
		btn = tea.MouseButtonNone
	}
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: btn}
}

func TestModel_GridCoversBox(t *testing.T) {
	m := newTestModel(t, nil)
	if m.grid.cols != testCols || m.grid.rows != testRows {
		t.Fatalf("expected %dx%d grid, got %dx%d", testCols, testRows, m.grid.cols, m.grid.rows)
	}
	if m.grid.pxPerCol() != 10 || m.grid.pxPerRow() != 10 {
		t.Fatalf("expected 10px cells, got %vx%v", m.grid.pxPerCol(), m.grid.pxPerRow())
	}
}

func TestModel_DragMovesMonitor(t *testing.T) {
	m := newTestModel(t, nil)
	a, _ := m.session.Registry.Get("A")
	before := a.ScaledPosition()

	x, y := screenAt(m, centerOf(a))
	m = update(t, m, mouse(tea.MouseActionPress, x, y))
	m = update(t, m, mouse(tea.MouseActionMotion, x+1, y))
	if !a.BeingDragged {
		t.Fatalf("expected A to be dragging")
	}
	m = update(t, m, mouse(tea.MouseActionMotion, x+2, y))
	m = update(t, m, mouse(tea.MouseActionRelease, x+2, y))

	if a.BeingDragged {
		t.Fatalf("expected drag to end on release")
	}
	if got := a.ScaledPosition().X - before.X; math.Abs(got-20) > 1e-9 {
		t.Fatalf("expected A to move 20 canvas px, moved %v", got)
	}
	if _, ok := m.session.Registry.Selected(); ok {
		t.Fatalf("a drag should not select")
	}
	if !m.session.Plan().Dirty {
		t.Fatalf("expected pending changes after drag")
	}
}

func TestModel_ClickSelects(t *testing.T) {
	m := newTestModel(t, nil)
	b, _ := m.session.Registry.Get("B")

	x, y := screenAt(m, centerOf(b))
	m = update(t, m, mouse(tea.MouseActionPress, x, y))
	m = update(t, m, mouse(tea.MouseActionRelease, x, y))

	if sel, ok := m.session.Registry.Selected(); !ok || sel != b {
		t.Fatalf("expected click to select B")
	}
	if !strings.Contains(m.View(), "Monitor B") {
		t.Fatalf("expected settings panel for B")
	}
	if m.session.Plan().Dirty {
		t.Fatalf("a click must not change anything")
	}
}

func TestModel_TabCyclesSelection(t *testing.T) {
	m := newTestModel(t, nil)
	reg := m.session.Registry

	want := []string{"A", "B", "A"}
	for _, id := range want {
		m = update(t, m, key("tab"))
		sel, ok := reg.Selected()
		if !ok || sel.ID != id {
			t.Fatalf("expected %s selected", id)
		}
	}
	m = update(t, m, key("shift+tab"))
	if sel, _ := reg.Selected(); sel.ID != "B" {
		t.Fatalf("expected shift+tab to go back to B, got %s", sel.ID)
	}
}

func TestModel_SpaceTogglesEnabled(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, key("tab"))
	m = update(t, m, key("space"))

	a, _ := m.session.Registry.Get("A")
	if a.ProposedStatus {
		t.Fatalf("expected A proposed off")
	}
	if !strings.Contains(m.View(), "pending changes") {
		t.Fatalf("expected pending indicator")
	}

	m = update(t, m, key("space"))
	if !a.ProposedStatus {
		t.Fatalf("expected A proposed on again")
	}
}

func TestModel_ToggleWithoutSelection(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, key("space"))
	if !m.statusErr || m.statusText == "" {
		t.Fatalf("expected an error status, got %q", m.statusText)
	}
}

func TestModel_ResolutionEdit(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, key("tab"))
	m = update(t, m, key("r"))
	if !m.editing {
		t.Fatalf("expected resolution editor open")
	}
	if m.input.Value() != "1920x1080" {
		t.Fatalf("expected editor seeded with current mode, got %q", m.input.Value())
	}

	m.input.SetValue("1280x720")
	m = update(t, m, key("enter"))
	if m.editing {
		t.Fatalf("expected editor closed after valid input")
	}
	a, _ := m.session.Registry.Get("A")
	if got := a.EffectiveResolution(); got != (monitor.Resolution{Width: 1280, Height: 720}) {
		t.Fatalf("expected proposed 1280x720, got %v", got)
	}
}

func TestModel_ResolutionEditRejectsGarbage(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, key("tab"))
	m = update(t, m, key("r"))

	m.input.SetValue("big")
	m = update(t, m, key("enter"))
	if !m.editing || !m.invalid {
		t.Fatalf("expected editor to stay open and flagged invalid")
	}
	if !m.statusErr {
		t.Fatalf("expected error status")
	}
	a, _ := m.session.Registry.Get("A")
	if a.EffectiveResolution() != (monitor.Resolution{Width: 1920, Height: 1080}) {
		t.Fatalf("previous resolution must be kept, got %v", a.EffectiveResolution())
	}

	m = update(t, m, key("esc"))
	if m.editing || m.invalid {
		t.Fatalf("expected esc to close the editor")
	}
}

func TestModel_ArrowNudges(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, key("tab"))
	a, _ := m.session.Registry.Get("A")
	before := a.ScaledPosition()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := a.ScaledPosition().Y - before.Y; math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected one cell down (10px), got %v", got)
	}
}

func TestModel_ApplyWhenClean(t *testing.T) {
	m := newTestModel(t, &fakeExecutor{})
	m = update(t, m, key("a"))
	if m.confirm != nil {
		t.Fatalf("confirmation must not open without changes")
	}
	if m.statusText != "Nothing to apply" {
		t.Fatalf("unexpected status %q", m.statusText)
	}
}

func TestModel_ApplyConfirmCancel(t *testing.T) {
	fe := &fakeExecutor{}
	m := newTestModel(t, fe)
	if err := m.session.SetResolution("B", "1920x1080"); err != nil {
		t.Fatalf("set resolution: %v", err)
	}

	m = update(t, m, key("a"))
	if m.confirm == nil {
		t.Fatalf("expected confirmation form")
	}
	m = update(t, m, key("esc"))
	if m.confirm != nil {
		t.Fatalf("expected esc to close the confirmation")
	}
	if len(fe.cmds) != 0 {
		t.Fatalf("nothing should run after cancel")
	}
}

func TestModel_ApplySuccess(t *testing.T) {
	fe := &fakeExecutor{}
	m := newTestModel(t, fe)
	if err := m.session.SetResolution("B", "1920x1080"); err != nil {
		t.Fatalf("set resolution: %v", err)
	}

	run := m.startApply()
	if !m.applying || run == nil {
		t.Fatalf("expected apply in flight")
	}
	m = update(t, m, key("tab"))
	if _, ok := m.session.Registry.Selected(); ok {
		t.Fatalf("input must be ignored while applying")
	}

	m = update(t, m, run())
	if m.applying {
		t.Fatalf("expected apply finished")
	}
	if len(fe.cmds) != 1 {
		t.Fatalf("expected one xrandr run, got %d", len(fe.cmds))
	}
	if !strings.HasPrefix(m.statusText, "Applied: xrandr --output A") || m.statusErr {
		t.Fatalf("unexpected status %q", m.statusText)
	}
	if m.session.Plan().Dirty {
		t.Fatalf("expected clean after apply")
	}
}

func TestModel_ApplyFailure(t *testing.T) {
	fe := &fakeExecutor{err: &xrandr.ExecError{Command: "xrandr", Stderr: "cannot find mode", Err: errors.New("exit status 1")}}
	m := newTestModel(t, fe)
	if err := m.session.SetResolution("B", "1920x1080"); err != nil {
		t.Fatalf("set resolution: %v", err)
	}

	run := m.startApply()
	m = update(t, m, run())

	if !m.statusErr || !strings.Contains(m.statusText, "cannot find mode") {
		t.Fatalf("expected failure in status line, got %q", m.statusText)
	}
	if !m.session.Plan().Dirty {
		t.Fatalf("failed apply should leave changes pending")
	}
}

func TestModel_StaleClearKeepsNewerStatus(t *testing.T) {
	m := newTestModel(t, nil)
	m.setStatus("first", false)
	stale := clearStatusMsg{seq: m.statusSeq}
	m.setStatus("second", false)

	m = update(t, m, stale)
	if m.statusText != "second" {
		t.Fatalf("stale clear removed newer status")
	}
}

func TestModel_ViewShowsMonitors(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"A 1920x1080", "B 1080x1920", "No monitor selected"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModel_TooSmall(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 5})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Fatalf("expected size warning")
	}
	m = update(t, m, mouse(tea.MouseActionPress, 2, 2))
	if m.pointerDown {
		t.Fatalf("pointer input must be ignored without a canvas")
	}
}
