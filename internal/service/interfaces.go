// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/tally/internal/model"
)

// Persistence defines the contract for our persistence layer.
// Saves overwrite the whole stored state; loads of a first run return empty values.
type Persistence interface {
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)
	SaveLedger(ctx context.Context, ledger model.Ledger) error
	// LoadLedger returns model.NewLedger() and false when nothing was saved yet.
	LoadLedger(ctx context.Context) (model.Ledger, bool, error)
	Clear(ctx context.Context) error
	Close() error
}

// Credential is a stored login. Hash is never the plain password.
type Credential struct {
	Username string
	Hash     []byte
}

// CredentialStore persists the single local account.
type CredentialStore interface {
	SaveCredential(ctx context.Context, cred Credential) error
	// LoadCredential returns common.ErrNotRegistered when no account exists.
	LoadCredential(ctx context.Context) (Credential, error)
	DeleteCredential(ctx context.Context) error
}

// Authenticator gates access to the local data.
type Authenticator interface {
	IsRegistered(ctx context.Context) (bool, error)
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (bool, error)
	DeleteAccount(ctx context.Context) error
}

// Store combines everything a backend provides.
type Store interface {
	Persistence
	CredentialStore
}

// ReportWriter publishes a rendered report somewhere outside the process.
type ReportWriter interface {
	Write(ctx context.Context, symbol string, transactions []model.Transaction) error
}
