package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/shiftclock/internal/domain"
)

// Main UI styles
var (
	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// State label styles
var (
	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorCompleted)

	IdleStyle = lipgloss.NewStyle().
			Foreground(ColorIdle)

	OnBreakStyle = lipgloss.NewStyle().
			Foreground(ColorOnBreak).
			Bold(true)

	WorkingStyle = lipgloss.NewStyle().
			Foreground(ColorWorking).
			Bold(true)
)

// History table styles
var (
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorTableBorder)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTableHeader).
				Padding(0, 1)

	TotalsStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			MarginTop(1)
)

// StateStyle returns the style used to render a state's label
func StateStyle(state domain.State) lipgloss.Style {
	switch state {
	case domain.StateActive:
		return WorkingStyle
	case domain.StatePaused:
		return OnBreakStyle
	case domain.StateCompleted:
		return CompletedStyle
	default:
		return IdleStyle
	}
}
