// Package cli renders tally's terminal output and reads answers from the user.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Ledger palette.
var (
	PrimaryColor = lipgloss.Color("#2EC4B6")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
	IncomeColor  = lipgloss.Color("#06D6A0")
	ExpenseColor = lipgloss.Color("#EF476F")
	borderColor  = lipgloss.Color("#333333")
)

var (
	// TitleStyle is used for report and section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)

	// SubtitleStyle is used for secondary headings and empty-state notes.
	SubtitleStyle = lipgloss.NewStyle().Foreground(SubtleColor).MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// IncomeStyle and ExpenseStyle color amounts by direction.
	IncomeStyle  = lipgloss.NewStyle().Foreground(IncomeColor)
	ExpenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)

	// BoxStyle frames the budget and currency panels.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// TableHeaderStyle underlines the transaction table header.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderColor)

	// TableCellStyle pads table cells; callers set the width.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)

	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	TallyIcon   = "💰"
	ChartIcon   = "📊"
)

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return withIcon(SuccessStyle, SuccessIcon, message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return withIcon(ErrorStyle, ErrorIcon, message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return withIcon(WarningStyle, WarningIcon, message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return withIcon(InfoStyle, InfoIcon, message)
}

// FormatTitle formats a report title.
func FormatTitle(title string) string {
	return withIcon(TitleStyle, TallyIcon, title)
}

// FormatPrompt formats the question part of a prompt.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content under a title inside a rounded border.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
