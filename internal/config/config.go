package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/storage"
)

// Viper keys.
const (
	KeyBackend          = "storage.backend"
	KeyDatabasePath     = "storage.database_path"
	KeyDataDir          = "storage.data_dir"
	KeyDefaultCurrency  = "ledger.default_currency"
	KeyRetryAttempts    = "storage.retry.attempts"
	KeyRetryDelay       = "storage.retry.initial_delay"
	KeyRetryMaxDelay    = "storage.retry.max_delay"
	KeyImportCategory   = "import.default_category"
	KeyAuthRequired     = "auth.required"
	KeyAuthBcryptCost   = "auth.bcrypt_cost"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
	KeyBackupBeforeWipe = "storage.backup_before_clear"
)

// Config is the validated application configuration.
type Config struct {
	Backend          storage.Backend
	DatabasePath     string
	DataDir          string
	DefaultCurrency  string
	ImportCategory   string
	Retry            common.RetryOptions
	BcryptCost       int
	AuthRequired     bool
	BackupBeforeWipe bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, string(storage.BackendSQLite))
	v.SetDefault(KeyDatabasePath, "$HOME/.local/share/tally/tally.db")
	v.SetDefault(KeyDataDir, "$HOME/.local/share/tally/data")
	v.SetDefault(KeyDefaultCurrency, "USD")
	v.SetDefault(KeyRetryAttempts, 3)
	v.SetDefault(KeyRetryDelay, 50*time.Millisecond)
	v.SetDefault(KeyRetryMaxDelay, time.Second)
	v.SetDefault(KeyImportCategory, "Extras")
	v.SetDefault(KeyAuthRequired, false)
	v.SetDefault(KeyAuthBcryptCost, 12)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyBackupBeforeWipe, true)
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Backend:         storage.Backend(strings.ToLower(v.GetString(KeyBackend))),
		DatabasePath:    ExpandPath(v.GetString(KeyDatabasePath)),
		DataDir:         ExpandPath(v.GetString(KeyDataDir)),
		DefaultCurrency: strings.ToUpper(strings.TrimSpace(v.GetString(KeyDefaultCurrency))),
		ImportCategory:  strings.TrimSpace(v.GetString(KeyImportCategory)),
		Retry: common.RetryOptions{
			MaxAttempts:  v.GetInt(KeyRetryAttempts),
			InitialDelay: v.GetDuration(KeyRetryDelay),
			MaxDelay:     v.GetDuration(KeyRetryMaxDelay),
			Multiplier:   2.0,
		},
		BcryptCost:       v.GetInt(KeyAuthBcryptCost),
		AuthRequired:     v.GetBool(KeyAuthRequired),
		BackupBeforeWipe: v.GetBool(KeyBackupBeforeWipe),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	var problems []string

	if !c.Backend.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown storage backend %q (use sqlite, file or memory)", c.Backend))
	}
	if c.Backend == storage.BackendSQLite && c.DatabasePath == "" {
		problems = append(problems, "storage.database_path is required for the sqlite backend")
	}
	if c.Backend == storage.BackendFile && c.DataDir == "" {
		problems = append(problems, "storage.data_dir is required for the file backend")
	}
	if c.DefaultCurrency == "" {
		problems = append(problems, "ledger.default_currency cannot be empty")
	}
	if c.ImportCategory == "" {
		problems = append(problems, "import.default_category cannot be empty")
	}
	if c.Retry.MaxAttempts < 1 {
		problems = append(problems, "storage.retry.attempts must be at least 1")
	}
	if c.Retry.InitialDelay < 0 || c.Retry.MaxDelay < 0 {
		problems = append(problems, "storage.retry delays cannot be negative")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		problems = append(problems, fmt.Sprintf("auth.bcrypt_cost %d out of range 4-31", c.BcryptCost))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// StoragePath returns the location the selected backend reads and writes.
func (c Config) StoragePath() string {
	switch c.Backend {
	case storage.BackendFile:
		return c.DataDir
	case storage.BackendMemory:
		return storage.MemoryPath
	default:
		return c.DatabasePath
	}
}
