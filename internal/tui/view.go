package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tally/internal/model"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showDetail {
		if t, ok := m.Selected(); ok {
			return lipgloss.JoinVertical(lipgloss.Left,
				m.theme.Title.Render(m.Title()),
				m.renderDetail(t),
				m.theme.Subtitle.Render("enter/esc: back"),
			)
		}
	}

	var body string
	if len(m.txns) == 0 {
		body = m.theme.Subtitle.Render("No transactions found.")
	} else {
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.Title()),
		body,
		m.theme.Footer.Render(m.renderSummary()),
		m.help.View(m.keys),
	)
}

func (m Model) renderSummary() string {
	s := m.summary
	return fmt.Sprintf("%d transactions  %s  %s  Net %s%s",
		s.Count,
		m.theme.Income.Render("Income +"+m.symbol+s.TotalIncome.StringFixed(2)),
		m.theme.Expense.Render("Expense -"+m.symbol+s.TotalExpense.StringFixed(2)),
		m.symbol, s.Net.StringFixed(2),
	)
}

func (m Model) renderDetail(t model.Transaction) string {
	note := t.Note
	if note == "" {
		note = "No note"
	}

	amount := m.theme.Expense.Render(signed(m.symbol, t))
	if t.IsIncome {
		amount = m.theme.Income.Render(signed(m.symbol, t))
	}

	lines := []string{
		"ID:       " + t.ID,
		"Date:     " + t.Date.Format(model.DisplayLayout),
		"Title:    " + t.Title,
		"Type:     " + t.Type(),
		"Category: " + t.CategoryIcon() + " " + t.Category,
		"Amount:   " + amount,
		"Note:     " + note,
	}
	return m.theme.Box.Render(strings.Join(lines, "\n"))
}
