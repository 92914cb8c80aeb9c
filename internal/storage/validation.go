// Package storage provides the data persistence layer for tally.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// Validation errors. They wrap common.ErrValidation so a save is never retried on them.
var (
	ErrNilContext         = fmt.Errorf("%w: context cannot be nil", common.ErrValidation)
	ErrEmptyString        = fmt.Errorf("%w: string parameter cannot be empty", common.ErrValidation)
	ErrInvalidTransaction = fmt.Errorf("%w: invalid transaction", common.ErrValidation)
	ErrInvalidLedger      = fmt.Errorf("%w: invalid ledger", common.ErrValidation)
	ErrInvalidCredential  = fmt.Errorf("%w: invalid credential", common.ErrValidation)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions. An empty slice is valid.
func validateTransactions(transactions []model.Transaction) error {
	seen := make(map[string]struct{}, len(transactions))
	for i, txn := range transactions {
		if err := validateTransaction(txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
		if _, dup := seen[txn.ID]; dup {
			return fmt.Errorf("transaction at index %d: %w: duplicate ID %s", i, ErrInvalidTransaction, txn.ID)
		}
		seen[txn.ID] = struct{}{}
	}
	return nil
}

// validateTransaction validates a single stored transaction.
func validateTransaction(txn model.Transaction) error {
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidTransaction)
	}
	return nil
}

// validateLedger validates a ledger before it is written.
func validateLedger(l model.Ledger) error {
	if l.Budget.IsNegative() {
		return fmt.Errorf("%w: negative budget", ErrInvalidLedger)
	}
	if strings.TrimSpace(l.CurrencyCode) == "" {
		return fmt.Errorf("%w: missing currency code", ErrInvalidLedger)
	}
	return nil
}
