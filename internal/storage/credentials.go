package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/service"
)

// SaveCredential stores the single local account, replacing any previous one.
func (s *SQLiteStorage) SaveCredential(ctx context.Context, cred service.Credential) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCredential(cred); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO credentials (id, username, password_hash)
		VALUES (1, ?, ?)
	`, cred.Username, cred.Hash)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// LoadCredential returns the stored account or common.ErrNotRegistered.
func (s *SQLiteStorage) LoadCredential(ctx context.Context) (service.Credential, error) {
	if err := validateContext(ctx); err != nil {
		return service.Credential{}, err
	}

	var cred service.Credential
	err := s.db.QueryRowContext(ctx,
		"SELECT username, password_hash FROM credentials WHERE id = 1",
	).Scan(&cred.Username, &cred.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Credential{}, common.ErrNotRegistered
	}
	if err != nil {
		return service.Credential{}, fmt.Errorf("failed to load credential: %w", err)
	}
	return cred, nil
}

// DeleteCredential removes the stored account. Deleting nothing is not an error.
func (s *SQLiteStorage) DeleteCredential(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM credentials"); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

func validateCredential(cred service.Credential) error {
	if err := validateString(cred.Username, "username"); err != nil {
		return err
	}
	if len(cred.Hash) == 0 {
		return fmt.Errorf("%w: missing password hash", ErrInvalidCredential)
	}
	return nil
}
