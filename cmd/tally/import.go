package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/ofx"
	"github.com/Veraticus/tally/internal/report"
)

var errUnsupportedFile = errors.New("unsupported file type (use .ofx, .qfx or .csv)")

func importCmd(a *app) *cobra.Command {
	var dryRun, quiet bool

	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import transactions from OFX/QFX statements or CSV exports",
		Long: `Import transactions from files exported by your bank (OFX or QFX) or by
'tally export' (CSV). Directories are searched for supported files.

Statement transactions keep the bank's id scoped to the account, so importing
the same statement twice adds nothing new. CSV rows carry no id; each row gets
one derived from its contents, so re-importing the same CSV file also adds
nothing, but importing an export back into the store it came from duplicates
every row. Bank fees are filed under "Bills and Fees"; everything
else goes to import.default_category.`,
		Example: `  # Import one statement
  tally import ~/Downloads/checking_jan_2024.qfx

  # Import every statement in a directory
  tally import ~/Downloads/statements

  # Preview without saving
  tally import --dry-run ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			files, err := expandImportPaths(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found to import")
			}

			parser := ofx.NewParser(a.cfg.ImportCategory)
			var txns []model.Transaction
			for _, path := range files {
				parsed, err := parseImportFile(cmd.Context(), parser, path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
				}
				slog.Info("Parsed file", "file", filepath.Base(path), "transactions", len(parsed))
				txns = append(txns, parsed...)
			}

			if len(txns) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No transactions found in the given files."))
				return nil
			}

			if dryRun {
				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Dry run: %d transactions found", len(txns))))
				fmt.Fprintln(out, cli.RenderTransactions(a.symbol(), txns))
				return nil
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx = handler.HandleInterrupts(ctx, true)

			progress := func() {}
			if !quiet {
				bar := newImportBar(len(txns), cmd.ErrOrStderr())
				progress = func() {
					if err := bar.Add(1); err != nil {
						slog.Warn("Failed to update progress bar", "error", err)
					}
				}
			}

			result, err := a.engine.Import(ctx, txns, progress)
			if err != nil && !(handler.WasInterrupted() && errors.Is(err, context.Canceled)) {
				return err
			}

			summary := fmt.Sprintf("Imported %d transactions", result.Added)
			if result.Duplicates > 0 {
				summary += fmt.Sprintf(", %d already present", result.Duplicates)
			}
			if result.Invalid > 0 {
				summary += fmt.Sprintf(", %d invalid skipped", result.Invalid)
			}
			fmt.Fprintln(out, cli.FormatSuccess(summary))

			if status := a.engine.BudgetStatus(); status.Over {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Over budget: %s%s spent of %s%s",
					status.Symbol, status.Spent.StringFixed(2), status.Symbol, status.Budget.StringFixed(2))))
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without saving")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

func isImportable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx", ".csv":
		return true
	}
	return false
}

// expandImportPaths resolves globs and directories into a sorted, de-duplicated file list.
func expandImportPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			slog.Warn("No files found matching pattern", "pattern", pattern)
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				add(match)
				continue
			}

			entries, err := os.ReadDir(match)
			if err != nil {
				return nil, fmt.Errorf("failed to read directory %s: %w", match, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && isImportable(entry.Name()) {
					add(filepath.Join(match, entry.Name()))
				}
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func parseImportFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	if !isImportable(path) {
		return nil, errUnsupportedFile
	}

	f, err := os.Open(path) // #nosec G304 -- user chosen input
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		txns, err := report.ReadCSV(f)
		if err != nil {
			return nil, err
		}
		assignCSVIDs(txns)
		return txns, nil
	}
	return parser.ParseFile(ctx, f)
}

// assignCSVIDs gives every row an id hashed from its fields. Identical rows
// in one file are told apart by their occurrence count.
func assignCSVIDs(txns []model.Transaction) {
	seen := make(map[string]int)
	for i := range txns {
		tx := &txns[i]
		data := fmt.Sprintf("%s|%s|%t|%s|%s|%s",
			tx.Date.Format(model.DateLayout),
			tx.Title,
			tx.IsIncome,
			tx.Category,
			tx.Amount.StringFixed(2),
			tx.Note)
		hash := sha256.Sum256([]byte(data))
		key := hex.EncodeToString(hash[:])[:16]
		seen[key]++
		tx.ID = fmt.Sprintf("csv:%s:%d", key, seen[key])
	}
}

func newImportBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
