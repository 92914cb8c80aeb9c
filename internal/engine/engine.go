// Package engine is the application façade: it owns the transaction store and
// the budget ledger, keeps them consistent, and persists every mutation.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/store"
)

// Engine holds one session's state. It is not safe for concurrent use.
type Engine struct {
	persistence     service.Persistence
	store           *store.TransactionStore
	loadErr         error
	defaultCurrency string
	ledger          model.Ledger
	retry           common.RetryOptions
}

// Config holds configuration options for the engine.
type Config struct {
	DefaultCurrency string
	Retry           common.RetryOptions
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DefaultCurrency: model.CurrencyUSD,
		Retry:           common.DefaultRetryOptions(),
	}
}

// New creates an engine with the default configuration and loads saved state.
func New(ctx context.Context, persistence service.Persistence) *Engine {
	return NewWithConfig(ctx, persistence, DefaultConfig())
}

// NewWithConfig creates an engine and loads saved state. A load failure is
// logged and the engine starts empty; LoadErr reports it.
func NewWithConfig(ctx context.Context, persistence service.Persistence, config Config) *Engine {
	if config.DefaultCurrency == "" {
		config.DefaultCurrency = model.CurrencyUSD
	}

	e := &Engine{
		persistence:     persistence,
		store:           store.New(),
		defaultCurrency: config.DefaultCurrency,
		retry:           config.Retry,
	}
	e.ledger = e.freshLedger()

	if err := e.load(ctx); err != nil {
		e.loadErr = err
		e.store.Reset()
		e.ledger = e.freshLedger()
		slog.Error("Failed to load saved data, starting empty", "error", err)
	}

	return e
}

// LoadErr returns the error that made the engine start empty, if any.
func (e *Engine) LoadErr() error {
	return e.loadErr
}

func (e *Engine) load(ctx context.Context) error {
	txns, err := e.persistence.LoadTransactions(ctx)
	if err != nil {
		return common.NewPersistenceError("load transactions", err)
	}

	ledger, found, err := e.persistence.LoadLedger(ctx)
	if err != nil {
		return common.NewPersistenceError("load ledger", err)
	}
	if !found {
		ledger = e.freshLedger()
	}

	if err := e.store.Replace(txns); err != nil {
		return common.NewPersistenceError("load transactions", err)
	}

	ledger, drifted := budget.Reconcile(ledger, e.store.All())
	if drifted {
		slog.Warn("Saved spent total disagreed with transactions, recomputed",
			"spent", ledger.Spent.StringFixed(2))
	}
	e.ledger = ledger

	slog.Debug("Loaded saved data",
		"transactions", e.store.Len(),
		"currency", e.ledger.CurrencyCode)
	return nil
}

func (e *Engine) freshLedger() model.Ledger {
	return model.NewLedger().WithCurrency(e.defaultCurrency)
}

// AddTransaction validates t, stores it and returns its id. A blank t.ID gets
// a generated one. The returned error is a ValidationError, a duplicate id, or
// a PersistenceError; only the last leaves the transaction in memory.
func (e *Engine) AddTransaction(ctx context.Context, t model.Transaction) (string, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return "", err
	}

	stored, err := e.store.Add(t)
	if err != nil {
		return "", err
	}
	e.ledger = budget.ApplyAdd(e.ledger, stored)

	slog.Debug("Added transaction", "id", stored.ID, "type", stored.Type())
	return stored.ID, e.persist(ctx, "add transaction", true)
}

// UpdateTransaction replaces the transaction stored under id with t.
func (e *Engine) UpdateTransaction(ctx context.Context, id string, t model.Transaction) error {
	before, err := e.store.Get(id)
	if err != nil {
		return err
	}

	t.ID = id
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}

	if err := e.store.Update(id, t); err != nil {
		return err
	}
	e.ledger = budget.ApplyUpdate(e.ledger, before, t)

	slog.Debug("Updated transaction", "id", id)
	return e.persist(ctx, "update transaction", true)
}

// DeleteTransaction removes the transaction stored under id. An unknown id is a no-op.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	removed, err := e.store.Get(id)
	if errors.Is(err, common.ErrNotFound) {
		slog.Debug("Delete of unknown transaction ignored", "id", id)
		return nil
	}
	if err != nil {
		return err
	}

	e.store.Delete(id)
	e.ledger = budget.ApplyDelete(e.ledger, removed)

	slog.Debug("Deleted transaction", "id", id)
	return e.persist(ctx, "delete transaction", true)
}

// ClearAllData empties the store, resets the ledger and wipes persisted data.
// Calling it twice is the same as calling it once.
func (e *Engine) ClearAllData(ctx context.Context) error {
	e.store.Reset()
	e.ledger = e.freshLedger()

	err := common.WithRetry(ctx, func() error {
		return e.persistence.Clear(ctx)
	}, e.retry)
	if err != nil {
		slog.Error("Failed to clear saved data", "error", err)
		return common.NewPersistenceError("clear data", err)
	}

	slog.Info("Cleared all data")
	return nil
}

// SetBudget sets the budget ceiling. amount must be positive.
func (e *Engine) SetBudget(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return common.NewValidationError("budget", "must be greater than zero")
	}

	e.ledger.Budget = amount
	return e.persist(ctx, "set budget", false)
}

// ResetBudget removes the budget ceiling. Spent keeps tracking transactions.
func (e *Engine) ResetBudget(ctx context.Context) error {
	e.ledger.Budget = decimal.Zero
	e.ledger.Spent = budget.Recompute(e.store.All())
	return e.persist(ctx, "reset budget", false)
}

// SetCurrency changes the display currency. Unknown codes are kept and
// display with the default symbol.
func (e *Engine) SetCurrency(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return common.NewValidationError("currency", "must not be empty")
	}

	e.ledger = e.ledger.WithCurrency(code)
	if !model.IsKnownCurrency(e.ledger.CurrencyCode) {
		slog.Warn("Unknown currency code, using default symbol",
			"code", e.ledger.CurrencyCode,
			"symbol", model.DefaultCurrencySymbol)
	}
	return e.persist(ctx, "set currency", false)
}

// persist saves the ledger, and the transactions when withTransactions is set.
// Saves overwrite whole state, so they are retried.
func (e *Engine) persist(ctx context.Context, op string, withTransactions bool) error {
	err := common.WithRetry(ctx, func() error {
		if withTransactions {
			if err := e.persistence.SaveTransactions(ctx, e.store.InsertionOrder()); err != nil {
				return err
			}
		}
		return e.persistence.SaveLedger(ctx, e.ledger)
	}, e.retry)
	if err != nil {
		common.LogError(ctx, err, "Failed to save data", common.Fields{"operation": op})
		return common.NewPersistenceError(op, err)
	}
	return nil
}
