package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxAutoBackups is how many automatic backups survive cleanup.
const maxAutoBackups = 5

// Backup errors.
var (
	ErrBackupNotFound  = errors.New("backup not found")
	ErrBackupCorrupted = errors.New("backup integrity check failed")
	ErrBackupExists    = errors.New("backup already exists")
	ErrInvalidBackupID = errors.New("invalid backup id: cannot contain path separators")
	ErrNotFileDatabase = errors.New("backups require a file database")
)

// BackupManager snapshots the SQLite database next to its file.
type BackupManager struct {
	db         *sql.DB
	dbPath     string
	backupsDir string
}

// BackupInfo describes one snapshot.
type BackupInfo struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	FileSize      int64     `json:"file_size"`
	Transactions  int       `json:"transactions"`
	SchemaVersion int       `json:"schema_version"`
	IsAuto        bool      `json:"is_auto"`
}

// NewBackupManager creates a backup manager storing snapshots in a "backups"
// directory beside dbPath.
func NewBackupManager(db *sql.DB, dbPath string) (*BackupManager, error) {
	if dbPath == MemoryPath {
		return nil, ErrNotFileDatabase
	}

	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	backupsDir := filepath.Join(filepath.Dir(absPath), "backups")
	if err := os.MkdirAll(backupsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	return &BackupManager{
		db:         db,
		dbPath:     absPath,
		backupsDir: backupsDir,
	}, nil
}

// Create snapshots the database under id. An empty id gets a timestamped name.
func (bm *BackupManager) Create(ctx context.Context, id, description string) (*BackupInfo, error) {
	return bm.create(ctx, id, description, false)
}

// Auto creates a timestamped snapshot before a destructive operation and
// prunes old automatic snapshots.
func (bm *BackupManager) Auto(ctx context.Context, operation string) (*BackupInfo, error) {
	id := fmt.Sprintf("auto-%s-%s", operation, time.Now().Format("2006-01-02-150405"))
	info, err := bm.create(ctx, id, "Automatic backup before "+operation, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-backup: %w", err)
	}

	if err := bm.pruneAuto(ctx); err != nil {
		slog.Warn("failed to prune old auto-backups", "error", err)
	}

	return info, nil
}

func (bm *BackupManager) create(ctx context.Context, id, description string, isAuto bool) (*BackupInfo, error) {
	if id == "" {
		id = "backup-" + time.Now().Format("2006-01-02-150405")
	}
	if err := validateBackupID(id); err != nil {
		return nil, err
	}

	backupPath := bm.dbFile(id)
	if _, err := os.Stat(backupPath); err == nil {
		return nil, ErrBackupExists
	}

	var schemaVersion, transactions int
	if err := bm.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&schemaVersion); err != nil {
		return nil, fmt.Errorf("failed to get schema version: %w", err)
	}
	if err := bm.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&transactions); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	if err := bm.snapshot(ctx, backupPath); err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}

	stat, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	info := BackupInfo{
		ID:            id,
		CreatedAt:     time.Now(),
		Description:   description,
		FileSize:      stat.Size(),
		Transactions:  transactions,
		SchemaVersion: schemaVersion,
		IsAuto:        isAuto,
	}

	if err := writeJSONAtomic(bm.metaFile(id), info); err != nil {
		if rmErr := os.Remove(backupPath); rmErr != nil {
			slog.Error("failed to remove backup file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	if err := bm.recordInDB(ctx, info); err != nil {
		// The snapshot on disk stays valid without the row.
		slog.Warn("failed to store backup metadata in database", "error", err)
	}

	return &info, nil
}

// List returns all backups, newest first.
func (bm *BackupManager) List(_ context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(bm.backupsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}

		info, err := readBackupInfo(filepath.Join(bm.backupsDir, entry.Name()))
		if err != nil {
			slog.Debug("skipping unreadable backup metadata", "file", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore copies the backup over the live database file. The manager's
// connection is closed first; callers must reopen storage afterwards.
func (bm *BackupManager) Restore(_ context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	backupPath := bm.dbFile(id)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to access backup: %w", err)
	}

	if err := verifyIntegrity(backupPath); err != nil {
		return fmt.Errorf("%w: %w", ErrBackupCorrupted, err)
	}

	if err := bm.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	// Stale WAL files would be replayed on top of the restored file.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(bm.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove sqlite sidecar file", "suffix", suffix, "error", err)
		}
	}

	if err := copyFile(backupPath, bm.dbPath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	return nil
}

// Delete removes a backup and its metadata.
func (bm *BackupManager) Delete(ctx context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	if err := os.Remove(bm.dbFile(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to remove backup file: %w", err)
	}

	if err := os.Remove(bm.metaFile(id)); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "id", id)
	}

	if _, err := bm.db.ExecContext(ctx, "DELETE FROM backup_metadata WHERE id = ?", id); err != nil {
		slog.Debug("failed to remove backup metadata from database", "error", err, "id", id)
	}

	return nil
}

func (bm *BackupManager) pruneAuto(ctx context.Context) error {
	backups, err := bm.List(ctx)
	if err != nil {
		return err
	}

	autoCount := 0
	for _, b := range backups {
		if !b.IsAuto {
			continue
		}
		autoCount++
		if autoCount > maxAutoBackups {
			if err := bm.Delete(ctx, b.ID); err != nil {
				slog.Debug("failed to delete old auto-backup", "error", err, "id", b.ID)
			}
		}
	}

	return nil
}

func (bm *BackupManager) snapshot(ctx context.Context, destPath string) error {
	if _, err := bm.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// VACUUM INTO takes a literal; destPath is built from a validated id.
	if strings.ContainsAny(destPath, `'";`) {
		return fmt.Errorf("invalid destination path: contains forbidden characters")
	}
	// #nosec G201 - destPath is validated above
	if _, err := bm.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", destPath)); err != nil {
		slog.Debug("VACUUM INTO failed, falling back to file copy", "error", err)
		return copyFile(bm.dbPath, destPath)
	}

	return nil
}

func (bm *BackupManager) recordInDB(ctx context.Context, info BackupInfo) error {
	_, err := bm.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO backup_metadata
		(id, created_at, description, file_size, transactions, schema_version, is_auto)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, info.ID, info.CreatedAt, info.Description, info.FileSize, info.Transactions, info.SchemaVersion, info.IsAuto)
	return err
}

func (bm *BackupManager) dbFile(id string) string {
	return filepath.Join(bm.backupsDir, id+".db")
}

func (bm *BackupManager) metaFile(id string) string {
	return filepath.Join(bm.backupsDir, id+".meta.json")
}

func validateBackupID(id string) error {
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return ErrInvalidBackupID
	}
	return validateString(id, "id")
}

func readBackupInfo(path string) (*BackupInfo, error) {
	// #nosec G304 - path is built from the backups directory listing
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var info BackupInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func verifyIntegrity(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

func copyFile(src, dst string) error {
	// #nosec G304 - src is the database or a backup inside the backups directory
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			slog.Error("failed to close source file", "error", closeErr)
		}
	}()

	tmp := dst + ".tmp"
	// #nosec G304 - tmp sits next to a validated destination
	destination, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmp)
		return err
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dst)
}
