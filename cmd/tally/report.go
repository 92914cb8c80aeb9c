package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/sheets"
)

// periodFlags select a day, week, month or date range.
type periodFlags struct {
	day   string
	week  string
	month string
	from  string
	to    string
}

func (p *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.day, "day", "", "a single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.week, "week", "", "the Monday-to-Sunday week containing this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.month, "month", "", "a calendar month (YYYY-MM)")
	cmd.Flags().StringVar(&p.from, "from", "", "first day of a range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.to, "to", "", "last day of a range (YYYY-MM-DD)")

	cmd.MarkFlagsMutuallyExclusive("day", "week", "month", "from")
	cmd.MarkFlagsMutuallyExclusive("day", "week", "month", "to")
	cmd.MarkFlagsRequiredTogether("from", "to")
}

// resolve returns a title and the transactions of the chosen period. With no
// period flag, fallback titles every transaction; an empty fallback means the
// current month instead.
func (p periodFlags) resolve(a *app, fallback string) (string, []model.Transaction, error) {
	switch {
	case p.day != "":
		d, err := parseDate(p.day)
		if err != nil {
			return "", nil, err
		}
		return "Daily Report - " + d.Format(model.DateLayout), a.engine.Daily(d), nil

	case p.week != "":
		d, err := parseDate(p.week)
		if err != nil {
			return "", nil, err
		}
		monday, _ := model.WeekBounds(d)
		return "Weekly Report (Week of " + monday.Format(model.DateLayout) + ")", a.engine.Weekly(d), nil

	case p.month != "":
		ym, err := model.ParseYearMonth(strings.TrimSpace(p.month))
		if err != nil {
			return "", nil, common.NewValidationError("month", err.Error())
		}
		return "Monthly Report - " + ym.String(), a.engine.Monthly(ym), nil

	case p.from != "" || p.to != "":
		from, err := parseDate(p.from)
		if err != nil {
			return "", nil, err
		}
		to, err := parseDate(p.to)
		if err != nil {
			return "", nil, err
		}
		if to.Before(from) {
			return "", nil, common.NewValidationError("to", "must not be before --from")
		}
		title := fmt.Sprintf("Report %s to %s", from.Format(model.DateLayout), to.Format(model.DateLayout))
		return title, a.engine.Range(from, to), nil

	case fallback != "":
		return fallback, a.engine.All(), nil
	}

	ym := model.YearMonthOf(model.Today())
	return "Monthly Report - " + ym.String(), a.engine.Monthly(ym), nil
}

func reportCmd(a *app) *cobra.Command {
	var period periodFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a daily, weekly or monthly report",
		Long:  `Print every transaction of a period followed by income, expense and net totals. Defaults to the current month.`,
		Example: `  # This month
  tally report

  # One day, one week, one month
  tally report --day 2024-05-06
  tally report --week 2024-05-06
  tally report --month 2024-05`,
		Args: cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			title, txns, err := period.resolve(a, "")
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), a.engine.Formatter().Period(title, txns))
			return nil
		}),
	}

	period.register(cmd)
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var (
		period   periodFlags
		format   string
		output   string
		toSheets bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV, text or Google Sheets",
		Long: `Export transactions. Without a period flag every transaction is exported.

CSV and text go to standard output unless --out is given. --sheets replaces
the report sheet of the configured spreadsheet; run 'tally export sheets-login'
once first, or configure a service account.`,
		Example: `  tally export --out transactions.csv
  tally export --format txt --month 2024-05 --out may.txt
  tally export --sheets`,
		Args: cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			_, txns, err := period.resolve(a, "All transactions")
			if err != nil {
				return err
			}

			if len(txns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No transactions to export!"))
				return nil
			}

			if toSheets {
				writer, err := a.newReportWriter(cmd.Context())
				if err != nil {
					return err
				}
				if err := writer.Write(cmd.Context(), a.symbol(), txns); err != nil {
					return fmt.Errorf("failed to export to Google Sheets: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to Google Sheets", len(txns))))
				return nil
			}

			if !cmd.Flags().Changed("format") && strings.EqualFold(filepath.Ext(output), ".txt") {
				format = "txt"
			}
			return a.exportFile(cmd, format, output, txns)
		}),
	}

	period.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format (csv, txt)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "write to this file instead of standard output")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "export to Google Sheets")
	cmd.MarkFlagsMutuallyExclusive("sheets", "out")

	cmd.AddCommand(sheetsLoginCmd(a))
	return cmd
}

func (a *app) exportFile(cmd *cobra.Command, format, output string, txns []model.Transaction) error {
	var write func(io.Writer, []model.Transaction) error
	switch strings.ToLower(format) {
	case "csv":
		write = a.engine.ExportCSV
	case "txt", "text":
		write = a.engine.ExportText
	default:
		return common.NewValidationError("format", fmt.Sprintf("%q must be csv or txt", format))
	}

	if output == "" {
		return write(cmd.OutOrStdout(), txns)
	}

	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644) // #nosec G304 -- user chosen output
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := write(f, txns); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(txns), output)))
	return nil
}

func sheetsLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets-login",
		Short: "Authorize tally to write to Google Sheets",
		Long: `Open Google's consent page and save the resulting refresh token.

Needs sheets.client_id and sheets.client_secret (or GOOGLE_SHEETS_CLIENT_ID and
GOOGLE_SHEETS_CLIENT_SECRET). The token is stored in sheets.token_file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oauthCfg, err := config.LoadSheetsOAuth(a.v)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			token, err := sheets.AuthenticateOAuth2Interactive(cmd.Context(), oauthCfg, func(url string) {
				fmt.Fprintln(out, cli.FormatInfo("Open this URL in your browser to authorize tally:"))
				fmt.Fprintln(out, url)
			})
			if err != nil {
				return fmt.Errorf("google sheets login failed: %w", err)
			}

			if token.RefreshToken == "" {
				fmt.Fprintln(out, cli.FormatWarning("Google did not return a refresh token; remove tally's access from your Google account and log in again."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatSuccess("Saved Google Sheets credentials to "+oauthCfg.TokenFile))
			return nil
		},
	}
}
