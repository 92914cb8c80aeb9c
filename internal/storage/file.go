package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// File names inside a FileStorage directory.
const (
	transactionsFile = "transactions.json"
	ledgerFile       = "ledger.json"
	credentialsFile  = "credentials.json"
)

// FileStorage implements service.Store with one JSON document per concern.
// Every write goes to a temporary file that is renamed over the target,
// so a crash leaves either the old or the new document.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

type fileTransaction struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note,omitempty"`
	IsIncome bool            `json:"is_income"`
}

type fileLedger struct {
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	CurrencyCode string          `json:"currency_code"`
}

type fileCredential struct {
	Username string `json:"username"`
	Hash     []byte `json:"password_hash"`
}

// NewFileStorage creates a JSON file store rooted at dir.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the data directory.
func (f *FileStorage) Dir() string {
	return f.dir
}

// Close is a no-op; files are closed after every operation.
func (f *FileStorage) Close() error {
	return nil
}

// SaveTransactions overwrites the transactions document.
func (f *FileStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	docs := make([]fileTransaction, len(transactions))
	for i, t := range transactions {
		docs[i] = fileTransaction{
			ID:       t.ID,
			Date:     t.Date.Format(model.DateLayout),
			Title:    t.Title,
			Category: t.Category,
			Amount:   t.Amount,
			Note:     t.Note,
			IsIncome: t.IsIncome,
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return writeJSONAtomic(f.path(transactionsFile), docs)
}

// LoadTransactions reads the transactions document. A missing file is an empty list.
func (f *FileStorage) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var docs []fileTransaction
	found, err := readJSON(f.path(transactionsFile), &docs)
	if err != nil || !found {
		return nil, err
	}

	transactions := make([]model.Transaction, 0, len(docs))
	for _, d := range docs {
		date, err := model.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s: %w", common.ErrDatabaseCorrupted, d.ID, err)
		}
		transactions = append(transactions, model.Transaction{
			ID:       d.ID,
			Date:     date,
			Title:    d.Title,
			Category: d.Category,
			Amount:   d.Amount,
			Note:     d.Note,
			IsIncome: d.IsIncome,
		})
	}
	return transactions, nil
}

// SaveLedger overwrites the ledger document.
func (f *FileStorage) SaveLedger(ctx context.Context, ledger model.Ledger) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLedger(ledger); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return writeJSONAtomic(f.path(ledgerFile), fileLedger{
		Budget:       ledger.Budget,
		Spent:        ledger.Spent,
		CurrencyCode: ledger.CurrencyCode,
	})
}

// LoadLedger reads the ledger document, or returns a fresh ledger and false.
func (f *FileStorage) LoadLedger(ctx context.Context) (model.Ledger, bool, error) {
	if err := validateContext(ctx); err != nil {
		return model.Ledger{}, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var doc fileLedger
	found, err := readJSON(f.path(ledgerFile), &doc)
	if err != nil {
		return model.Ledger{}, false, err
	}
	if !found {
		return model.NewLedger(), false, nil
	}

	return model.Ledger{
		Budget:       doc.Budget,
		Spent:        doc.Spent,
		CurrencyCode: doc.CurrencyCode,
	}, true, nil
}

// Clear removes the transactions and ledger documents. Credentials are kept.
func (f *FileStorage) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, name := range []string{transactionsFile, ledgerFile} {
		if err := os.Remove(f.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

// SaveCredential overwrites the credentials document.
func (f *FileStorage) SaveCredential(ctx context.Context, cred service.Credential) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCredential(cred); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return writeJSONAtomic(f.path(credentialsFile), fileCredential(cred))
}

// LoadCredential reads the credentials document or returns common.ErrNotRegistered.
func (f *FileStorage) LoadCredential(ctx context.Context) (service.Credential, error) {
	if err := validateContext(ctx); err != nil {
		return service.Credential{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var doc fileCredential
	found, err := readJSON(f.path(credentialsFile), &doc)
	if err != nil {
		return service.Credential{}, err
	}
	if !found {
		return service.Credential{}, common.ErrNotRegistered
	}
	return service.Credential(doc), nil
}

// DeleteCredential removes the credentials document.
func (f *FileStorage) DeleteCredential(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(credentialsFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

func (f *FileStorage) path(name string) string {
	return filepath.Join(f.dir, name)
}

// readJSON decodes path into v. It reports false when the file does not exist.
func readJSON(path string, v any) (bool, error) {
	// #nosec G304 - path is one of the fixed document names
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %w", common.ErrDatabaseCorrupted, filepath.Base(path), err)
	}
	return true, nil
}

// writeJSONAtomic writes v to a uniquely named temp file and renames it over path.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
