package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/storage"
)

func clearCmd(a *app) *cobra.Command {
	var (
		force    bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every transaction and reset the budget",
		Long: `Delete every transaction, remove the budget and go back to the default
currency. The account, if any, is kept.

With the sqlite backend an automatic backup is taken first (see 'tally backup
list'), unless storage.backup_before_clear is false or --no-backup is given.`,
		Args: cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !force {
				question := fmt.Sprintf("Delete all %d transactions and reset the budget?", a.engine.Count())
				ok, err := a.prompt(cmd).Confirm(ctx, question)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Nothing was deleted."))
					return nil
				}
			}

			if a.cfg.BackupBeforeWipe && !noBackup {
				manager, err := a.backupManager()
				switch {
				case errors.Is(err, errNoBackups):
					// Nothing to snapshot for this backend
				case err != nil:
					return err
				default:
					info, err := manager.Auto(ctx, "clear")
					if err != nil {
						return fmt.Errorf("refusing to clear without a backup: %w", err)
					}
					fmt.Fprintln(out, cli.FormatInfo("Backup saved as "+info.ID))
				}
			}

			if err := a.engine.ClearAllData(ctx); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess("All data cleared"))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "do not take an automatic backup first")
	return cmd
}

var errNoBackups = errors.New("backups are only available for the sqlite backend with a database file")

// backupManager returns the backup manager of the open sqlite store.
func (a *app) backupManager() (*storage.BackupManager, error) {
	db, ok := a.store.(*storage.SQLiteStorage)
	if !ok {
		return nil, errNoBackups
	}

	manager, err := db.NewBackupManager()
	if errors.Is(err, storage.ErrNotFileDatabase) {
		return nil, errNoBackups
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create backup manager: %w", err)
	}
	return manager, nil
}
