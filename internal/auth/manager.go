// Package auth guards the local data with a single username and password.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/service"
)

// DefaultCost is the bcrypt cost used for new accounts.
const DefaultCost = 12

// Manager implements service.Authenticator over a credential store.
type Manager struct {
	store service.CredentialStore
	cost  int
}

// NewManager creates a Manager. A cost below bcrypt.MinCost uses DefaultCost.
func NewManager(store service.CredentialStore, cost int) *Manager {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	return &Manager{store: store, cost: cost}
}

// IsRegistered reports whether an account exists.
func (m *Manager) IsRegistered(ctx context.Context) (bool, error) {
	_, err := m.store.LoadCredential(ctx)
	if errors.Is(err, common.ErrNotRegistered) {
		return false, nil
	}
	if err != nil {
		return false, common.NewPersistenceError("load credential", err)
	}
	return true, nil
}

// Register creates the account. It fails when one already exists.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return common.NewValidationError("username", "must not be empty")
	}
	if password == "" {
		return common.NewValidationError("password", "must not be empty")
	}

	registered, err := m.IsRegistered(ctx)
	if err != nil {
		return err
	}
	if registered {
		return common.ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := m.store.SaveCredential(ctx, service.Credential{Username: username, Hash: hash}); err != nil {
		return common.NewPersistenceError("save credential", err)
	}

	slog.Info("Registered account", "username", username)
	return nil
}

// Login reports whether username and password match the stored account.
// It returns common.ErrNotRegistered when there is no account.
func (m *Manager) Login(ctx context.Context, username, password string) (bool, error) {
	cred, err := m.store.LoadCredential(ctx)
	if errors.Is(err, common.ErrNotRegistered) {
		return false, err
	}
	if err != nil {
		return false, common.NewPersistenceError("load credential", err)
	}

	if strings.TrimSpace(username) != cred.Username {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword(cred.Hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}

// DeleteAccount removes the stored account.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	if err := m.store.DeleteCredential(ctx); err != nil {
		return common.NewPersistenceError("delete credential", err)
	}
	slog.Info("Deleted account")
	return nil
}
