// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types as they appear in reports and exports.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Transaction represents a single income or expense event.
type Transaction struct {
	Date     time.Time // calendar date, 00:00 UTC
	ID       string
	Title    string
	Category string
	Note     string
	Amount   decimal.Decimal
	IsIncome bool
}

// Type returns "Income" or "Expense".
func (t Transaction) Type() string {
	if t.IsIncome {
		return TypeIncome
	}
	return TypeExpense
}

// CategoryIcon returns the display glyph for the transaction's category.
func (t Transaction) CategoryIcon() string {
	return CategoryIcon(t.Category)
}

// Spending is the amount this transaction contributes to the budget's spent total.
func (t Transaction) Spending() decimal.Decimal {
	if t.IsIncome {
		return decimal.Zero
	}
	return t.Amount
}

// Normalize trims text fields and strips the time component from Date.
func (t Transaction) Normalize() Transaction {
	t.ID = strings.TrimSpace(t.ID)
	t.Title = strings.TrimSpace(t.Title)
	t.Category = strings.TrimSpace(t.Category)
	t.Note = strings.TrimSpace(t.Note)
	t.Date = DateOf(t.Date)
	return t
}

// Equal reports whether two transactions carry the same values.
func (t Transaction) Equal(other Transaction) bool {
	return t.ID == other.ID &&
		t.Date.Equal(other.Date) &&
		t.Title == other.Title &&
		t.Category == other.Category &&
		t.Note == other.Note &&
		t.IsIncome == other.IsIncome &&
		t.Amount.Equal(other.Amount)
}
