package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Supported currency codes.
const (
	CurrencyUSD = "USD"
	CurrencyPKR = "PKR"
	CurrencySAR = "SAR"
	CurrencyEUR = "EUR"
	CurrencyINR = "INR"
	CurrencyGBP = "GBP"
)

// DefaultCurrencySymbol is used for codes outside the supported set.
const DefaultCurrencySymbol = "$"

var currencySymbols = map[string]string{
	CurrencyUSD: "$",
	CurrencyPKR: "Rs ",
	CurrencySAR: "﷼ ",
	CurrencyEUR: "€",
	CurrencyINR: "₹",
	CurrencyGBP: "£",
}

// Currencies returns the supported currency codes in display order.
func Currencies() []string {
	return []string{CurrencyUSD, CurrencyPKR, CurrencySAR, CurrencyEUR, CurrencyINR, CurrencyGBP}
}

// CurrencySymbol maps a currency code to its display symbol.
func CurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return DefaultCurrencySymbol
}

// IsKnownCurrency reports whether code is in the supported set.
func IsKnownCurrency(code string) bool {
	_, ok := currencySymbols[code]
	return ok
}

// Ledger holds the budget ceiling, the running spent total and the display currency.
// Spent always equals the sum of all non-income transaction amounts.
type Ledger struct {
	Budget       decimal.Decimal // 0 means unset
	Spent        decimal.Decimal
	CurrencyCode string
}

// NewLedger returns the first-run ledger.
func NewLedger() Ledger {
	return Ledger{
		Budget:       decimal.Zero,
		Spent:        decimal.Zero,
		CurrencyCode: CurrencyUSD,
	}
}

// CurrencySymbol returns the symbol derived from the ledger's currency code.
func (l Ledger) CurrencySymbol() string {
	return CurrencySymbol(l.CurrencyCode)
}

// WithCurrency returns a copy of the ledger using code, upper-cased.
func (l Ledger) WithCurrency(code string) Ledger {
	l.CurrencyCode = strings.ToUpper(strings.TrimSpace(code))
	return l
}

// Remaining is Budget minus Spent. It goes negative when over budget.
func (l Ledger) Remaining() decimal.Decimal {
	return l.Budget.Sub(l.Spent)
}

// HasBudget reports whether a ceiling has been set.
func (l Ledger) HasBudget() bool {
	return l.Budget.IsPositive()
}

// UsedFraction is Spent/Budget clamped to [0, 1]. It is 0 without a budget.
func (l Ledger) UsedFraction() float64 {
	if !l.HasBudget() || !l.Spent.IsPositive() {
		return 0
	}
	used := l.Spent.Div(l.Budget)
	if used.GreaterThan(decimal.NewFromInt(1)) {
		return 1
	}
	f, _ := used.Float64()
	return f
}
