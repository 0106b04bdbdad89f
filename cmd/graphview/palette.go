package main

import "github.com/charmbracelet/lipgloss"

// Color palette, scoped down from the teacher's internal/ui/style.Palette to
// the subset a single-screen graph viewer needs (no Buy/Sell/Hold, no PnL).
var (
	colorPrimary   = lipgloss.Color("#00E5FF")
	colorSecondary = lipgloss.Color("#FF1B6B")
	colorSuccess   = lipgloss.Color("#2AFFAA")
	colorError     = lipgloss.Color("#FF5555")
	colorWarning   = lipgloss.Color("#FFB500")
	colorMuted     = lipgloss.Color("#6C7280")
	colorText      = lipgloss.Color("#ECEFF4")
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	status    lipgloss.Style
	container lipgloss.Style
	muted     lipgloss.Style
	swap      lipgloss.Style
	pool      lipgloss.Style
	warn      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Margin(0, 0, 1, 0),

		header: lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true),

		status: lipgloss.NewStyle().
			Foreground(colorMuted),

		container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),

		muted: lipgloss.NewStyle().Foreground(colorMuted),

		swap: lipgloss.NewStyle().Foreground(colorSuccess),

		pool: lipgloss.NewStyle().Foreground(colorSecondary),

		warn: lipgloss.NewStyle().Foreground(colorWarning),
	}
}
