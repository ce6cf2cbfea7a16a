package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/monitile/internal/monitor"
	"github.com/1broseidon/monitile/internal/preview"
	"github.com/1broseidon/monitile/internal/session"
	"github.com/1broseidon/monitile/internal/xrandr"
)

// Screen layout, in terminal cells.
const (
	headerHeight = 1
	footerHeight = 2 // status + help
	panelWidth   = 40
	gapWidth     = 1
	minCols      = 12
	minRows      = 6
)

const tickInterval = time.Second

// tickMsg drives the layout pass and preview refresh.
type tickMsg time.Time

// clearStatusMsg clears the status line unless a newer status replaced it.
type clearStatusMsg struct {
	seq int
}

// applyResultMsg carries the outcome of an xrandr run back to the update loop.
type applyResultMsg struct {
	cmd xrandr.Command
	err error
}

// Model is the root bubbletea model: a canvas of monitors on the left and a
// settings panel for the selected monitor on the right.
type Model struct {
	ctx     context.Context
	session *session.Session
	cache   *preview.Cache
	logger  *slog.Logger

	width  int
	height int
	grid   canvasGrid

	// Pointer state, in canvas cells.
	pointerDown bool
	lastCol     int
	lastRow     int

	// Resolution editor
	input   textinput.Model
	editing bool
	invalid bool

	// Apply confirmation
	confirm   *huh.Form
	confirmed *bool
	applying  bool

	statusText string
	statusErr  bool
	statusSeq  int

	thumbs thumbCache
}

// New creates the model. A nil cache disables previews.
func New(sess *session.Session, cache *preview.Cache, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ti := textinput.New()
	ti.Placeholder = "e.g. 1920x1080"
	ti.CharLimit = 11
	ti.Width = 12

	return Model{
		ctx:     context.Background(),
		session: sess,
		cache:   cache,
		logger:  logger,
		input:   ti,
		thumbs:  make(thumbCache),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		if !m.applying {
			m.refresh()
		}
		return m, tick()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusText = ""
			m.statusErr = false
		}
		return m, nil

	case applyResultMsg:
		m.applying = false
		if err := m.session.Commit(msg.cmd, msg.err); err != nil {
			return m, m.setStatus("Apply failed: "+err.Error(), true)
		}
		return m, m.setStatus("Applied: "+msg.cmd.String(), false)
	}

	// Input is ignored while xrandr runs.
	if m.applying {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if m.editing {
		return m.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.grid = canvasGrid{
		box:  m.session.Engine.Box,
		cols: width - 2 - gapWidth - panelWidth,
		rows: height - headerHeight - footerHeight - 2,
	}
	if m.grid.cols < minCols || m.grid.rows < minRows {
		m.grid.cols, m.grid.rows = 0, 0
	}
}

func (m *Model) refresh() {
	if err := m.session.Layout(); err != nil {
		m.logger.Error("layout failed", "error", err)
		return
	}
	if m.cache != nil {
		m.cache.Refresh(m.ctx, m.session.Registry)
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.statusText = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)
	case "esc":
		m.session.Registry.SelectMonitor(nil)
	case " ", "space":
		return m, m.toggleEnabled()
	case "r", "enter":
		return m, m.startEditing()
	case "left", "h":
		return m, m.nudge(-1, 0)
	case "right", "l":
		return m, m.nudge(1, 0)
	case "up", "k":
		return m, m.nudge(0, -1)
	case "down", "j":
		return m, m.nudge(0, 1)
	case "a":
		return m, m.startConfirm()
	}
	return m, nil
}

func (m *Model) cycleSelection(step int) {
	reg := m.session.Registry
	n := reg.Len()
	if n == 0 {
		return
	}
	idx := -1
	if sel, ok := reg.Selected(); ok {
		for i, mon := range reg.Monitors {
			if mon == sel {
				idx = i
				break
			}
		}
	}
	if idx < 0 && step < 0 {
		idx = 0
	}
	reg.SelectMonitor(reg.Monitors[(idx+step+n)%n])
}

func (m *Model) selected() (*monitor.Monitor, tea.Cmd) {
	sel, ok := m.session.Registry.Selected()
	if !ok {
		return nil, m.setStatus("Select a monitor first", true)
	}
	return sel, nil
}

func (m *Model) toggleEnabled() tea.Cmd {
	sel, cmd := m.selected()
	if sel == nil {
		return cmd
	}
	if err := m.session.SetEnabled(sel.ID, !sel.ProposedStatus); err != nil {
		return m.setStatus(err.Error(), true)
	}
	if !sel.ProposedStatus {
		// Drop the stale preview so re-enabling waits for a fresh capture.
		if m.cache != nil {
			m.cache.Forget(sel.ID)
		}
		delete(m.thumbs, sel.ID)
	}
	return nil
}

func (m *Model) nudge(dcol, drow int) tea.Cmd {
	sel, cmd := m.selected()
	if sel == nil {
		return cmd
	}
	if !m.grid.valid() {
		return nil
	}
	if _, err := m.session.MoveBy(sel.ID, m.grid.delta(dcol, drow)); err != nil {
		return m.setStatus(err.Error(), true)
	}
	return nil
}

func (m *Model) startEditing() tea.Cmd {
	sel, cmd := m.selected()
	if sel == nil {
		return cmd
	}
	m.editing = true
	m.invalid = false
	m.input.TextStyle = lipgloss.NewStyle()
	m.input.SetValue(sel.EffectiveResolution().String())
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) stopEditing() {
	m.editing = false
	m.invalid = false
	m.input.Blur()
	m.input.Reset()
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.MouseMsg); ok {
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.stopEditing()
			return m, nil
		case "enter":
			sel, ok := m.session.Registry.Selected()
			if !ok {
				m.stopEditing()
				return m, nil
			}
			if err := m.session.SetResolution(sel.ID, m.input.Value()); err != nil {
				m.markInvalid(true)
				return m, m.setStatus(err.Error(), true)
			}
			m.stopEditing()
			return m, m.setStatus(fmt.Sprintf("%s resolution set to %s", sel.Label(), sel.EffectiveResolution()), false)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	_, err := monitor.ParseResolution(m.input.Value())
	m.markInvalid(err != nil)
	return m, cmd
}

func (m *Model) markInvalid(invalid bool) {
	m.invalid = invalid
	if invalid {
		m.input.TextStyle = invalidStyle
	} else {
		m.input.TextStyle = lipgloss.NewStyle()
	}
}

func (m *Model) startConfirm() tea.Cmd {
	plan := m.session.Plan()
	if !plan.Dirty {
		return m.setStatus("Nothing to apply", false)
	}

	confirmed := true
	m.confirmed = &confirmed
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Apply %d change(s)?", len(plan.Changes))).
				Description(plan.Command.String()).
				Affirmative("Apply").
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithWidth(panelWidth - 4).WithShowHelp(false)
	return m.confirm.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.confirm = nil
			return m, m.setStatus("Apply cancelled", false)
		}
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		m.confirm = nil
		if !*m.confirmed {
			return m, m.setStatus("Apply cancelled", false)
		}
		return m, m.startApply()
	case huh.StateAborted:
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}

// startApply commits the proposal and hands the xrandr run to a command so
// the update loop keeps rendering while it executes.
func (m *Model) startApply() tea.Cmd {
	cmd, err := m.session.Prepare()
	if errors.Is(err, session.ErrNoChanges) {
		return m.setStatus("Nothing to apply", false)
	}
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	m.applying = true
	m.statusSeq++
	m.statusText = "Applying " + cmd.String()
	m.statusErr = false

	ctx, sess := m.ctx, m.session
	return func() tea.Msg {
		return applyResultMsg{cmd: cmd, err: sess.Execute(ctx, cmd)}
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.grid.valid() {
		return m, nil
	}
	col, row := msg.X-1, msg.Y-headerHeight-1

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.grid.contains(col, row) {
			m.session.Press(m.grid.center(col, row))
			m.pointerDown = true
			m.lastCol, m.lastRow = col, row
			return m, nil
		}
		return m, m.clickPanel(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if !m.pointerDown {
			return m, nil
		}
		col = clampInt(col, 0, m.grid.cols-1)
		row = clampInt(row, 0, m.grid.rows-1)
		if col != m.lastCol || row != m.lastRow {
			m.session.Motion(m.grid.delta(col-m.lastCol, row-m.lastRow))
			m.lastCol, m.lastRow = col, row
		}

	case tea.MouseActionRelease:
		if !m.pointerDown {
			return m, nil
		}
		m.pointerDown = false
		m.session.Release()
	}
	return m, nil
}

func (m *Model) clickPanel(x, y int) tea.Cmd {
	panelLeft := m.grid.cols + 2 + gapWidth
	if x < panelLeft {
		return nil
	}
	switch y - headerHeight - 1 {
	case panelRowEnabled:
		return m.toggleEnabled()
	case panelRowResolution:
		return m.startEditing()
	case panelRowApply:
		return m.startConfirm()
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if !m.grid.valid() {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Foreground(dimColor).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Terminal too small")
	}

	var frames frameSource = func(string) (*image.RGBA, bool) { return nil, false }
	if m.cache != nil {
		frames = m.cache.Frame
	}

	canvas := canvasView(renderCanvas(m.session.Registry, m.grid, frames, m.thumbs))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvas,
		strings.Repeat(" ", gapWidth),
		m.panelView(m.grid.rows),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.statusView(),
		helpStyle.Width(m.width).Render(helpText),
	)
}

const helpText = "drag: move  tab: select  space: toggle  r: resolution  arrows: nudge  a: apply  q: quit"

func (m Model) headerView() string {
	reg := m.session.Registry
	header := headerStyle.Render("monitile") +
		dimStyle.Render(fmt.Sprintf("  %d monitor(s)", reg.Len()))
	if m.session.Plan().Dirty {
		header += dirtyBadgeStyle.Render("● pending changes")
	}
	return header
}

func (m Model) statusView() string {
	if m.statusErr {
		return statusErrorStyle.Width(m.width).Render(m.statusText)
	}
	return statusStyle.Width(m.width).Render(m.statusText)
}
