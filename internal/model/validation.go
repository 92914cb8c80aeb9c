package model

import (
	"github.com/Veraticus/tally/internal/common"
)

// Validate checks the invariants every stored transaction must satisfy.
func (t Transaction) Validate() error {
	if t.Title == "" {
		return common.NewValidationError("title", "must not be empty")
	}
	if !t.Amount.IsPositive() {
		return common.NewValidationError("amount", "must be greater than zero")
	}
	if t.Date.IsZero() {
		return common.NewValidationError("date", "is required")
	}
	if t.Category == "" {
		return common.NewValidationError("category", "is required")
	}
	return nil
}
