package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("62")
	dimColor    = lipgloss.Color("241")
	errorColor  = lipgloss.Color("196")
	dragColor   = lipgloss.Color("214")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(accentColor).
			Padding(0, 2)

	dirtyBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)

	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	tileBorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	tileSelectedStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	tileDraggingStyle = lipgloss.NewStyle().Foreground(dragColor).Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	invalidStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	applyButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("28")).
				Padding(0, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Padding(0, 1)
)

// noFrameColor fills enabled monitors that have no preview yet.
const noFrameColor = "#1f2a44"
