// Package tui implements the interactive transaction browser.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
)

// Source supplies the transactions being browsed.
type Source interface {
	Daily(d time.Time) []model.Transaction
	Weekly(d time.Time) []model.Transaction
	Monthly(ym model.YearMonth) []model.Transaction
	All() []model.Transaction
	Ledger() model.Ledger
}

// Period selects the window of transactions shown.
type Period int

// Browsing periods.
const (
	PeriodDay Period = iota
	PeriodWeek
	PeriodMonth
	PeriodAll
)

func (p Period) String() string {
	switch p {
	case PeriodDay:
		return "Day"
	case PeriodWeek:
		return "Week"
	case PeriodMonth:
		return "Month"
	default:
		return "All"
	}
}

// Model holds the browser state.
type Model struct {
	anchor     time.Time
	source     Source
	theme      Theme
	symbol     string
	txns       []model.Transaction
	summary    report.Summary
	help       help.Model
	keys       KeyMap
	table      table.Model
	period     Period
	width      int
	height     int
	showDetail bool
	quitting   bool
}

// New creates a browser showing the month containing anchor.
func New(source Source, anchor time.Time) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(DefaultTheme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = DefaultTheme.Selected
	t.SetStyles(s)

	m := Model{
		source: source,
		anchor: model.DateOf(anchor),
		period: PeriodMonth,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		table:  t,
		theme:  DefaultTheme,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

func columns(width int) []table.Column {
	// Fixed columns take 10+18+12 plus cell padding.
	flexible := max(width-10-18-12-12, 20)
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Category", Width: 18},
		{Title: "Title", Width: flexible * 3 / 5},
		{Title: "Amount", Width: 12},
		{Title: "Note", Width: flexible - flexible*3/5},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil

	case tea.KeyMsg:
		if m.showDetail {
			if key.Matches(msg, m.keys.Detail) || msg.String() == "esc" {
				m.showDetail = false
				return m, nil
			}
			if msg.String() == "ctrl+c" || msg.String() == "q" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Daily):
			m.setPeriod(PeriodDay)
			return m, nil
		case key.Matches(msg, m.keys.Weekly):
			m.setPeriod(PeriodWeek)
			return m, nil
		case key.Matches(msg, m.keys.Monthly):
			m.setPeriod(PeriodMonth)
			return m, nil
		case key.Matches(msg, m.keys.All):
			m.setPeriod(PeriodAll)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.shift(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.anchor = model.Today()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			if _, ok := m.Selected(); ok {
				m.showDetail = true
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) setPeriod(p Period) {
	m.period = p
	m.refresh()
}

// shift moves the anchor n periods forward or back.
func (m *Model) shift(n int) {
	switch m.period {
	case PeriodDay:
		m.anchor = m.anchor.AddDate(0, 0, n)
	case PeriodWeek:
		m.anchor = m.anchor.AddDate(0, 0, 7*n)
	case PeriodMonth:
		m.anchor = model.YearMonthOf(m.anchor).AddMonths(n).First()
	case PeriodAll:
		return
	}
	m.refresh()
}

// refresh reloads the transactions for the current period.
func (m *Model) refresh() {
	switch m.period {
	case PeriodDay:
		m.txns = m.source.Daily(m.anchor)
	case PeriodWeek:
		m.txns = m.source.Weekly(m.anchor)
	case PeriodMonth:
		m.txns = m.source.Monthly(model.YearMonthOf(m.anchor))
	default:
		m.txns = m.source.All()
	}

	m.symbol = m.source.Ledger().CurrencySymbol()
	m.summary = report.Summarize(m.txns)

	rows := make([]table.Row, 0, len(m.txns))
	for _, t := range m.txns {
		rows = append(rows, table.Row{
			t.Date.Format(model.DisplayLayout),
			t.CategoryIcon() + " " + t.Category,
			t.Title,
			signed(m.symbol, t),
			t.Note,
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func signed(symbol string, t model.Transaction) string {
	sign := "-"
	if t.IsIncome {
		sign = "+"
	}
	return sign + symbol + t.Amount.StringFixed(2)
}

// Title describes the period being shown.
func (m Model) Title() string {
	switch m.period {
	case PeriodDay:
		return "Day " + m.anchor.Format(model.DisplayLayout)
	case PeriodWeek:
		monday, sunday := model.WeekBounds(m.anchor)
		return fmt.Sprintf("Week %s - %s", monday.Format(model.DisplayLayout), sunday.Format(model.DisplayLayout))
	case PeriodMonth:
		return "Month " + model.YearMonthOf(m.anchor).String()
	default:
		return "All transactions"
	}
}

// Period returns the period being shown.
func (m Model) Period() Period {
	return m.period
}

// Anchor returns the date the current period is built around.
func (m Model) Anchor() time.Time {
	return m.anchor
}

// Transactions returns the transactions currently listed.
func (m Model) Transactions() []model.Transaction {
	return m.txns
}

// Selected returns the highlighted transaction.
func (m Model) Selected() (model.Transaction, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.txns) {
		return model.Transaction{}, false
	}
	return m.txns[i], true
}
