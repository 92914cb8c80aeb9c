package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// SaveLedger overwrites the singleton ledger row.
func (s *SQLiteStorage) SaveLedger(ctx context.Context, ledger model.Ledger) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLedger(ledger); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger (id, budget, spent, currency_code, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			budget = excluded.budget,
			spent = excluded.spent,
			currency_code = excluded.currency_code,
			updated_at = excluded.updated_at
	`, ledger.Budget.String(), ledger.Spent.String(), ledger.CurrencyCode)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	return nil
}

// LoadLedger returns the stored ledger, or a fresh one and false on first run.
func (s *SQLiteStorage) LoadLedger(ctx context.Context) (model.Ledger, bool, error) {
	if err := validateContext(ctx); err != nil {
		return model.Ledger{}, false, err
	}

	var budget, spent, code string
	err := s.db.QueryRowContext(ctx,
		"SELECT budget, spent, currency_code FROM ledger WHERE id = 1",
	).Scan(&budget, &spent, &code)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewLedger(), false, nil
	}
	if err != nil {
		return model.Ledger{}, false, fmt.Errorf("failed to load ledger: %w", err)
	}

	ledger := model.Ledger{CurrencyCode: code}
	if ledger.Budget, err = decimal.NewFromString(budget); err != nil {
		return model.Ledger{}, false, fmt.Errorf("%w: ledger budget %q: %w", common.ErrDatabaseCorrupted, budget, err)
	}
	if ledger.Spent, err = decimal.NewFromString(spent); err != nil {
		return model.Ledger{}, false, fmt.Errorf("%w: ledger spent %q: %w", common.ErrDatabaseCorrupted, spent, err)
	}

	return ledger, true, nil
}
