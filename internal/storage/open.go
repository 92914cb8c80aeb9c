package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/service"
)

// Backend selects a persistence implementation.
type Backend string

// Supported backends.
const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Backends returns every supported backend.
func Backends() []Backend {
	return []Backend{BackendSQLite, BackendFile, BackendMemory}
}

// IsValid reports whether b is a supported backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	}
	return false
}

func (b Backend) String() string {
	return string(b)
}

// Open creates and prepares the store for backend. For sqlite, path is the
// database file; for file, it is the data directory; memory ignores it.
func Open(ctx context.Context, backend Backend, path string) (service.Store, error) {
	if !backend.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", backend)
	}

	switch backend {
	case BackendFile:
		fs, err := NewFileStorage(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		slog.Debug("Initialized file backend", "dir", path)
		return fs, nil
	case BackendMemory:
		path = MemoryPath
	}

	db, err := NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite storage: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Initialized SQLite backend", "db_path", path)
	return db, nil
}
