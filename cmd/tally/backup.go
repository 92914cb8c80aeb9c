package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
)

func backupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage database backups",
		Long: `Create, list, restore, and delete backups of the sqlite database.

Backups live in a "backups" directory next to the database file. 'tally clear'
takes one automatically; the five newest automatic backups are kept.`,
		Example: `  # Back up before a big import
  tally backup create --name pre-2024-import

  # List all backups
  tally backup list

  # Restore from a backup
  tally backup restore pre-2024-import`,
	}

	cmd.AddCommand(createBackupCmd(a))
	cmd.AddCommand(listBackupsCmd(a))
	cmd.AddCommand(restoreBackupCmd(a))
	cmd.AddCommand(deleteBackupCmd(a))

	return cmd
}

func createBackupCmd(a *app) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new backup",
		Args:  cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			manager, err := a.backupManager()
			if err != nil {
				return err
			}

			info, err := manager.Create(cmd.Context(), name, description)
			if err != nil {
				return fmt.Errorf("failed to create backup: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Created backup %s (%s, %d transactions)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(info.ID),
				formatFileSize(info.FileSize),
				info.Transactions)
			if info.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", info.Description)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "backup name (auto-generated if not provided)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the backup")
	return cmd
}

func listBackupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all backups",
		Args:  cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			manager, err := a.backupManager()
			if err != nil {
				return err
			}

			backups, err := manager.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list backups: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(backups) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No backups found."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintln(w, strings.Join([]string{
				headerStyle.Render("NAME"),
				headerStyle.Render("CREATED"),
				headerStyle.Render("SIZE"),
				headerStyle.Render("TRANSACTIONS"),
				headerStyle.Render("TYPE"),
			}, "\t"))

			for _, b := range backups {
				typeLabel := "manual"
				if b.IsAuto {
					typeLabel = "auto"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					cli.InfoStyle.Render(b.ID),
					formatRelativeTime(b.CreatedAt),
					formatFileSize(b.FileSize),
					b.Transactions,
					cli.SubtitleStyle.Render(typeLabel),
				)
			}

			return w.Flush()
		}),
	}
}

func restoreBackupCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Replace the database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			manager, err := a.backupManager()
			if err != nil {
				return err
			}

			if !force {
				question := fmt.Sprintf("Replace your current data (%d transactions) with backup %s?", a.engine.Count(), id)
				ok, err := a.prompt(cmd).Confirm(ctx, question)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Restore cancelled."))
					return nil
				}
			}

			// Restore closes the database; the deferred close is then a no-op
			if err := manager.Restore(ctx, id); err != nil {
				return fmt.Errorf("failed to restore backup: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Restored from backup %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(id))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation")
	return cmd
}

func deleteBackupCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			manager, err := a.backupManager()
			if err != nil {
				return err
			}

			if !force {
				ok, err := a.prompt(cmd).Confirm(ctx, fmt.Sprintf("Permanently delete backup %s?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("Deletion cancelled."))
					return nil
				}
			}

			if err := manager.Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete backup: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted backup %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(id))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation")
	return cmd
}
