package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
)

const (
	shortIDLength = 8
	noteWidth     = 30
	budgetBarSize = 40
)

var transactionColumns = []string{"ID", "Date", "Category", "Title", "Amount", "Note"}

// ShortID trims a transaction id for display.
func ShortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// SignedAmount renders an amount with a sign and the currency symbol.
func SignedAmount(symbol string, t model.Transaction) string {
	if t.IsIncome {
		return "+" + symbol + t.Amount.StringFixed(2)
	}
	return "-" + symbol + t.Amount.StringFixed(2)
}

// RenderTransactions lays out txns as an aligned table.
func RenderTransactions(symbol string, txns []model.Transaction) string {
	if len(txns) == 0 {
		return SubtleStyle.Render("No transactions found.")
	}

	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			ShortID(t.ID),
			t.Date.Format(model.DisplayLayout),
			t.CategoryIcon() + " " + t.Category,
			t.Title,
			SignedAmount(symbol, t),
			truncate(t.Note, noteWidth),
		})
	}

	widths := make([]int, len(transactionColumns))
	for i, h := range transactionColumns {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	header := make([]string, len(transactionColumns))
	for i, h := range transactionColumns {
		header[i] = TableCellStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, header...)))
	b.WriteString("\n")

	amountColumn := 4
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := TableCellStyle.Width(widths[i] + 2)
			if i == amountColumn {
				style = style.Inherit(amountStyle(txns[r]))
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func amountStyle(t model.Transaction) lipgloss.Style {
	if t.IsIncome {
		return IncomeStyle
	}
	return ExpenseStyle
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// RenderTransaction shows every field of t in a box.
func RenderTransaction(symbol string, t model.Transaction) string {
	note := t.Note
	if note == "" {
		note = SubtleStyle.Render("No note")
	}

	lines := []string{
		fmt.Sprintf("ID:       %s", t.ID),
		fmt.Sprintf("Date:     %s", t.Date.Format(model.DisplayLayout)),
		fmt.Sprintf("Title:    %s", t.Title),
		fmt.Sprintf("Type:     %s", t.Type()),
		fmt.Sprintf("Category: %s %s", t.CategoryIcon(), t.Category),
		fmt.Sprintf("Amount:   %s", amountStyle(t).Render(SignedAmount(symbol, t))),
		fmt.Sprintf("Note:     %s", note),
	}
	return RenderBox("Transaction", strings.Join(lines, "\n"))
}

// RenderBudget shows the budget, spent total and a usage bar.
func RenderBudget(status budget.Status) string {
	if !status.HasBudget {
		return lipgloss.JoinVertical(lipgloss.Left,
			FormatWarning("No budget set"),
			fmt.Sprintf("Spent: %s%s", status.Symbol, status.Spent.StringFixed(2)),
		)
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = budgetBarSize

	remaining := fmt.Sprintf("%s%s", status.Symbol, status.Remaining.StringFixed(2))
	if status.Over {
		remaining = ErrorStyle.Render(remaining + " (over budget)")
	} else {
		remaining = SuccessStyle.Render(remaining)
	}

	lines := []string{
		fmt.Sprintf("Budget:    %s%s", status.Symbol, status.Budget.StringFixed(2)),
		fmt.Sprintf("Spent:     %s%s", status.Symbol, status.Spent.StringFixed(2)),
		fmt.Sprintf("Remaining: %s", remaining),
		"",
		bar.ViewAs(status.Used),
	}
	return RenderBox(ChartIcon+" Budget", strings.Join(lines, "\n"))
}

// RenderSummary shows totals and the per-category breakdown.
func RenderSummary(title, symbol string, s report.Summary) string {
	money := func(v interface{ StringFixed(int32) string }) string {
		return symbol + v.StringFixed(2)
	}

	lines := []string{
		fmt.Sprintf("Transactions:  %d", s.Count),
		fmt.Sprintf("Total Income:  %s", IncomeStyle.Render(money(s.TotalIncome))),
		fmt.Sprintf("Total Expense: %s", ExpenseStyle.Render(money(s.TotalExpense))),
		fmt.Sprintf("Net Balance:   %s", BoldStyle.Render(money(s.Net))),
	}

	if categories := s.Categories(); len(categories) > 0 {
		lines = append(lines, "", SubtleStyle.Render("By category"))
		for _, name := range categories {
			ct := s.ByCategory[name]
			lines = append(lines, fmt.Sprintf("  %s %-16s %3d  %s %s",
				model.CategoryIcon(name), name, ct.Count,
				IncomeStyle.Render("+"+money(ct.Income)),
				ExpenseStyle.Render("-"+money(ct.Expense))))
		}
	}

	return RenderBox(title, strings.Join(lines, "\n"))
}
