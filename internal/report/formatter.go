package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"Date", "Title", "Type", "Category", "Amount", "Note"}

const (
	reportRule   = "==============================================="
	periodRule   = "========================================"
	reportBanner = "           TRANSACTION REPORT"
	noNote       = "No note"
	noResults    = "No transactions found."
)

// Formatter renders transactions using a currency symbol.
type Formatter struct {
	symbol string
}

// NewFormatter creates a formatter that prefixes amounts with symbol.
func NewFormatter(symbol string) *Formatter {
	return &Formatter{symbol: symbol}
}

// Symbol returns the currency symbol in use.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Money formats an amount with the currency symbol and two decimals.
func (f *Formatter) Money(amount interface{ StringFixed(int32) string }) string {
	return f.symbol + amount.StringFixed(2)
}

// WriteCSV writes the header and one row per transaction, in input order.
func (f *Formatter) WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, t := range txns {
		record := []string{
			t.Date.Format(model.DateLayout),
			t.Title,
			t.Type(),
			t.Category,
			t.Amount.StringFixed(2),
			t.Note,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSV returns the CSV export as a string.
func (f *Formatter) CSV(txns []model.Transaction) string {
	var buf bytes.Buffer
	// bytes.Buffer never fails a write
	_ = f.WriteCSV(&buf, txns)
	return buf.String()
}

// Line renders one transaction as a report line.
func (f *Formatter) Line(t model.Transaction) string {
	note := t.Note
	if note == "" {
		note = noNote
	}
	return fmt.Sprintf("%s | %s | %s | %s | %s",
		t.Date.Format(model.DisplayLayout),
		t.Title,
		t.Category,
		f.Money(t.Amount),
		note)
}

// Text returns the plain-text export: banner, lines, totals.
func (f *Formatter) Text(txns []model.Transaction) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString(reportBanner + "\n")
	b.WriteString(reportRule + "\n\n")

	for _, t := range txns {
		b.WriteString(f.Line(t) + "\n")
	}

	s := Summarize(txns)
	b.WriteString("\n" + reportRule + "\n")
	fmt.Fprintf(&b, "Total Income:  %s\n", f.Money(s.TotalIncome))
	fmt.Fprintf(&b, "Total Expense: %s\n", f.Money(s.TotalExpense))
	fmt.Fprintf(&b, "Net Balance:   %s\n", f.Money(s.Net))
	b.WriteString(reportRule + "\n")

	return b.String()
}

// WriteText writes the plain-text export to w.
func (f *Formatter) WriteText(w io.Writer, txns []model.Transaction) error {
	_, err := io.WriteString(w, f.Text(txns))
	return err
}

// Period renders an on-screen report for a day, week or month.
func (f *Formatter) Period(title string, txns []model.Transaction) string {
	var b strings.Builder

	b.WriteString(periodRule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(periodRule + "\n\n")

	if len(txns) == 0 {
		b.WriteString(noResults + "\n")
		return b.String()
	}

	for _, t := range txns {
		b.WriteString(f.Line(t) + "\n")
	}

	s := Summarize(txns)
	b.WriteString("\n--- Summary ---\n")
	fmt.Fprintf(&b, "Total Income: %s\n", f.Money(s.TotalIncome))
	fmt.Fprintf(&b, "Total Expense: %s\n", f.Money(s.TotalExpense))
	fmt.Fprintf(&b, "Net Balance: %s\n", f.Money(s.Net))

	return b.String()
}
