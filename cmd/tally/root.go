package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/auth"
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/sheets"
	"github.com/Veraticus/tally/internal/storage"
)

// Viper keys only the CLI reads.
const (
	keyAuthUsername = "auth.username"
	keyAuthPassword = "auth.password"
)

var errInvalidLogin = errors.New("invalid username or password")

// app carries the state one invocation needs.
type app struct {
	v        *viper.Viper
	store    service.Store
	engine   *engine.Engine
	prompter *cli.Prompter
	cfgFile  string
	dataPath string
	cfg      config.Config

	// newReportWriter builds the spreadsheet exporter.
	newReportWriter func(ctx context.Context) (service.ReportWriter, error)
}

func newApp() *app {
	a := &app{v: viper.New()}
	a.newReportWriter = a.sheetsWriter
	return a
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tally",
		Short: "💰 Personal income and expense tracker",
		Long: `tally: A small CLI ledger for your daily income and expenses.

Record transactions, keep an eye on a monthly budget, and print daily,
weekly or monthly reports. Bank statements (OFX/QFX) and tally's own
CSV exports can be imported, and reports can be exported to CSV, text
or Google Sheets.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/tally/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("backend", "", "storage backend (sqlite, file, memory)")
	flags.StringVar(&a.dataPath, "data", "", "database file (sqlite) or data directory (file)")

	// Bind flags to viper
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyBackend, flags.Lookup("backend"))

	// Add commands
	cmd.AddCommand(addCmd(a))
	cmd.AddCommand(editCmd(a))
	cmd.AddCommand(deleteCmd(a))
	cmd.AddCommand(showCmd(a))
	cmd.AddCommand(listCmd(a))
	cmd.AddCommand(reportCmd(a))
	cmd.AddCommand(exportCmd(a))
	cmd.AddCommand(budgetCmd(a))
	cmd.AddCommand(currencyCmd(a))
	cmd.AddCommand(accountCmd(a))
	cmd.AddCommand(clearCmd(a))
	cmd.AddCommand(importCmd(a))
	cmd.AddCommand(browseCmd(a))
	cmd.AddCommand(backupCmd(a))
	cmd.AddCommand(versionCmd())

	return cmd
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// Set up config file
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		a.v.AddConfigPath(filepath.Join(home, ".config", "tally"))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	// Environment variables: storage.backend is TALLY_STORAGE_BACKEND
	a.v.SetEnvPrefix("TALLY")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	// Read config file
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	config.SetDefaults(a.v)

	// Set up logging
	if err := common.SetupLogger(cmd.ErrOrStderr(), a.v.GetString(config.KeyLogLevel), a.v.GetString(config.KeyLogFormat)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	if a.dataPath != "" {
		switch cfg.Backend {
		case storage.BackendFile:
			cfg.DataDir = config.ExpandPath(a.dataPath)
		case storage.BackendSQLite:
			cfg.DatabasePath = config.ExpandPath(a.dataPath)
		}
	}

	a.cfg = cfg
	slog.Debug("Configuration loaded",
		"config_file", a.v.ConfigFileUsed(),
		"backend", cfg.Backend,
		"path", cfg.StoragePath())
	return nil
}

// open connects the configured store and loads the engine from it.
func (a *app) open(cmd *cobra.Command) error {
	ctx := cmd.Context()
	store, err := storage.Open(ctx, a.cfg.Backend, a.cfg.StoragePath())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	a.store = store

	a.engine = engine.NewWithConfig(ctx, store, engine.Config{
		DefaultCurrency: a.cfg.DefaultCurrency,
		Retry:           a.cfg.Retry,
	})
	if err := a.engine.LoadErr(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("Saved data could not be loaded; starting with an empty ledger."))
	}
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
	a.store = nil
	a.engine = nil
}

// withEngine opens storage, checks the login when one is required, and runs fn.
func (a *app) withEngine(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd); err != nil {
			return err
		}
		defer a.close()

		if err := a.authenticate(cmd); err != nil {
			return err
		}
		return fn(cmd, args)
	}
}

// withStore opens storage without the login check.
func (a *app) withStore(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd); err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args)
	}
}

func (a *app) prompt(cmd *cobra.Command) *cli.Prompter {
	if a.prompter == nil {
		a.prompter = cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return a.prompter
}

func (a *app) authenticator() *auth.Manager {
	return auth.NewManager(a.store, a.cfg.BcryptCost)
}

func (a *app) authenticate(cmd *cobra.Command) error {
	if !a.cfg.AuthRequired {
		return nil
	}
	ctx := cmd.Context()
	manager := a.authenticator()

	registered, err := manager.IsRegistered(ctx)
	if err != nil {
		return err
	}
	if !registered {
		return common.NewUserError("an account is required: run 'tally account register' first", common.ErrNotRegistered)
	}

	username, password, err := a.credentials(cmd)
	if err != nil {
		return err
	}

	ok, err := manager.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidLogin
	}

	slog.Debug("Logged in", "username", username)
	return nil
}

// credentials reads the login from config or the environment, prompting for what is missing.
func (a *app) credentials(cmd *cobra.Command) (string, string, error) {
	ctx := cmd.Context()

	username := a.v.GetString(keyAuthUsername)
	if username == "" {
		var err error
		if username, err = a.prompt(cmd).Ask(ctx, "Username", ""); err != nil {
			return "", "", err
		}
	}

	password := a.v.GetString(keyAuthPassword)
	if password == "" {
		var err error
		if password, err = a.prompt(cmd).Password(ctx, "Password"); err != nil {
			return "", "", err
		}
	}

	return username, password, nil
}

// resolveID accepts a full transaction id or a unique prefix of one.
func (a *app) resolveID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", common.NewValidationError("id", "must not be empty")
	}
	if _, err := a.engine.Transaction(arg); err == nil {
		return arg, nil
	}

	var matches []string
	for _, t := range a.engine.All() {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("transaction %s: %w", arg, common.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d transactions", arg, len(matches))
	}
}

func (a *app) symbol() string {
	if a.engine == nil {
		return model.DefaultCurrencySymbol
	}
	return a.engine.Ledger().CurrencySymbol()
}

func (a *app) sheetsWriter(ctx context.Context) (service.ReportWriter, error) {
	cfg, err := config.LoadSheetsConfig(a.v)
	if err != nil {
		return nil, common.NewUserError("Google Sheets is not configured (run 'tally export sheets-login' or set sheets.* options)", err)
	}
	return sheets.NewWriter(ctx, *cfg, slog.Default())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tally %s\n", version)
		},
	}
}
