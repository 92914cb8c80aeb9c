package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// SaveTransactions replaces every stored transaction with transactions.
// Slice order is kept as the stored position.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveTransactionsTx(ctx, tx, transactions); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveTransactionsTx(ctx context.Context, tx *sql.Tx, transactions []model.Transaction) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, position, date, title, category, amount, is_income, note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, txn := range transactions {
		_, err := stmt.ExecContext(ctx,
			txn.ID,
			i,
			txn.Date.Format(model.DateLayout),
			txn.Title,
			txn.Category,
			txn.Amount.String(),
			txn.IsIncome,
			txn.Note,
		)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return nil
}

// LoadTransactions returns the stored transactions in saved order.
func (s *SQLiteStorage) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, title, category, amount, is_income, note
		FROM transactions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var (
		txn    model.Transaction
		date   string
		amount string
	)

	if err := rows.Scan(&txn.ID, &date, &txn.Title, &txn.Category, &amount, &txn.IsIncome, &txn.Note); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsedDate, err := model.ParseDate(date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: transaction %s: %w", common.ErrDatabaseCorrupted, txn.ID, err)
	}
	txn.Date = parsedDate

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: transaction %s amount %q: %w", common.ErrDatabaseCorrupted, txn.ID, amount, err)
	}

	return txn, nil
}
