package engine

import (
	"io"
	"time"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
)

// Ledger returns a copy of the current ledger.
func (e *Engine) Ledger() model.Ledger {
	return e.ledger
}

// BudgetStatus summarizes the ledger for display.
func (e *Engine) BudgetStatus() budget.Status {
	return budget.StatusOf(e.ledger)
}

// Count returns the number of stored transactions.
func (e *Engine) Count() int {
	return e.store.Len()
}

// Transaction returns the transaction stored under id or common.ErrNotFound.
func (e *Engine) Transaction(id string) (model.Transaction, error) {
	return e.store.Get(id)
}

// Daily returns the transactions dated d.
func (e *Engine) Daily(d time.Time) []model.Transaction {
	return e.store.ByDate(d)
}

// Weekly returns the transactions in the Monday..Sunday week containing d.
func (e *Engine) Weekly(d time.Time) []model.Transaction {
	return e.store.ByWeek(d)
}

// Monthly returns the transactions in month ym.
func (e *Engine) Monthly(ym model.YearMonth) []model.Transaction {
	return e.store.ByMonth(ym)
}

// Range returns the transactions dated from..to inclusive.
func (e *Engine) Range(from, to time.Time) []model.Transaction {
	return e.store.ByRange(from, to)
}

// All returns every transaction sorted by date.
func (e *Engine) All() []model.Transaction {
	return e.store.All()
}

// Summary totals txns.
func (e *Engine) Summary(txns []model.Transaction) report.Summary {
	return report.Summarize(txns)
}

// Formatter returns a report formatter using the ledger's currency symbol.
func (e *Engine) Formatter() *report.Formatter {
	return report.NewFormatter(e.ledger.CurrencySymbol())
}

// ExportCSV writes txns as CSV.
func (e *Engine) ExportCSV(w io.Writer, txns []model.Transaction) error {
	return e.Formatter().WriteCSV(w, txns)
}

// ExportText writes txns as a plain-text report.
func (e *Engine) ExportText(w io.Writer, txns []model.Transaction) error {
	return e.Formatter().WriteText(w, txns)
}
