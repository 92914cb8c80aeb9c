package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the browser.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Income   lipgloss.Style
	Expense  lipgloss.Style
	Selected lipgloss.Style
	Box      lipgloss.Style
	Footer   lipgloss.Style
	Border   lipgloss.Color
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Border: lipgloss.Color("#404040"),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2EC4B6")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#06D6A0")),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF476F")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#2EC4B6")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	Footer: lipgloss.NewStyle().
		MarginTop(1),
}
