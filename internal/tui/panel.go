package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/monitile/internal/layout"
	"github.com/1broseidon/monitile/internal/monitor"
)

// Panel rows that react to clicks, counted from the first line inside the
// panel border.
const (
	panelRowEnabled    = 2
	panelRowResolution = 3
	panelRowApply      = 6
)

func (m Model) panelView(height int) string {
	style := panelStyle.Width(panelWidth - 2).Height(height)

	if m.confirm != nil {
		header := titleStyle.Render("Apply changes") + dimStyle.Render("  (esc to cancel)")
		return style.Render(header + "\n\n" + m.confirm.View())
	}

	reg := m.session.Registry
	plan := m.session.Plan()
	sel, ok := reg.Selected()

	lines := make([]string, 0, 16)
	if ok {
		lines = append(lines,
			titleStyle.Render("Monitor "+sel.Label()),
			"",
			checkbox(sel.ProposedStatus)+" Enabled",
			m.resolutionLine(sel),
			labelStyle.Render("Position   ")+valueStyle.Render(positionText(sel)),
		)
	} else {
		lines = append(lines,
			titleStyle.Render("No monitor selected"),
			"",
			dimStyle.Render("Click a monitor or press tab"),
			"",
			"",
		)
	}
	lines = append(lines, "")

	if plan.Dirty {
		lines = append(lines, applyButtonStyle.Render("Apply"))
	} else {
		lines = append(lines, dimStyle.Render("No pending changes"))
	}

	if plan.Dirty {
		lines = append(lines, "", labelStyle.Render("Pending"))
		for _, c := range plan.Changes {
			lines = append(lines, "  "+c.String())
		}
		lines = append(lines, "", dimStyle.Render(plan.Command.String()))
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) resolutionLine(sel *monitor.Monitor) string {
	label := labelStyle.Render("Resolution ")
	if !m.editing {
		return label + valueStyle.Render(sel.EffectiveResolution().String())
	}
	if m.invalid {
		return invalidStyle.Render("Resolution ") + m.input.View()
	}
	return label + m.input.View()
}

func checkbox(on bool) string {
	if on {
		return valueStyle.Render("[x]")
	}
	return labelStyle.Render("[ ]")
}

func positionText(m *monitor.Monitor) string {
	text := fmt.Sprintf("+%d+%d", int(m.Origin.X), int(m.Origin.Y))
	if layout.Moved(m) {
		text += " " + lipgloss.NewStyle().Foreground(dragColor).Render("moved")
	}
	return text
}
