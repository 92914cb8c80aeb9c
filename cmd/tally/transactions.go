package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// transactionFlags are the fields add and edit accept.
type transactionFlags struct {
	id       string
	title    string
	amount   string
	category string
	date     string
	kind     string
	note     string
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "short description")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, always positive (e.g. 12.50)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "",
		fmt.Sprintf("category (%s, or your own)", strings.Join(model.Categories(), ", ")))
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.kind, "type", "", "income or expense (default: expense)")
	cmd.Flags().StringVarP(&f.note, "note", "n", "", "optional note")
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, common.NewValidationError("amount", fmt.Sprintf("%q is not a number", s))
	}
	return amount, nil
}

func parseKind(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expense", "e":
		return false, nil
	case "income", "i":
		return true, nil
	default:
		return false, common.NewValidationError("type", fmt.Sprintf("%q must be income or expense", s))
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := model.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, common.NewValidationError("date", err.Error())
	}
	return d, nil
}

func addCmd(a *app) *cobra.Command {
	var f transactionFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Long: `Record a transaction. Anything not given as a flag is asked for.

Amounts are always positive; use --type income for money coming in.`,
		Example: `  # Lunch today
  tally add --title "Lunch" --amount 12.50 --category Food

  # Salary on a given day
  tally add -t "Salary" -a 2500 -c Salary --type income -d 2024-05-31`,
		Args: cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := a.prompt(cmd)

			if f.title == "" {
				title, err := p.Ask(ctx, "Title", "")
				if err != nil {
					return err
				}
				f.title = title
			}
			if f.amount == "" {
				amount, err := p.Ask(ctx, "Amount", "")
				if err != nil {
					return err
				}
				f.amount = amount
			}

			amount, err := parseAmount(f.amount)
			if err != nil {
				return err
			}
			isIncome, err := parseKind(f.kind)
			if err != nil {
				return err
			}

			date := model.Today()
			if f.date != "" {
				if date, err = parseDate(f.date); err != nil {
					return err
				}
			}

			category := model.CategoryExtras
			if f.category != "" {
				category = model.CanonicalCategory(f.category)
			}

			t := model.Transaction{
				ID:       f.id,
				Date:     date,
				Title:    f.title,
				Category: category,
				Note:     f.note,
				Amount:   amount,
				IsIncome: isIncome,
			}

			id, err := a.engine.AddTransaction(ctx, t)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %s %s %s (%s)",
				strings.ToLower(t.Type()), t.Title, cli.SignedAmount(a.symbol(), t), cli.ShortID(id))))

			if status := a.engine.BudgetStatus(); status.Over {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Over budget: %s%s spent of %s%s",
					status.Symbol, status.Spent.StringFixed(2), status.Symbol, status.Budget.StringFixed(2))))
			}
			return nil
		}),
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.id, "id", "", "use this id instead of a generated one")
	return cmd
}

func editCmd(a *app) *cobra.Command {
	var f transactionFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a transaction",
		Long:  `Change the fields given as flags; everything else stays as it was. The id may be shortened to a unique prefix.`,
		Example: `  tally edit 3f2a9c1b --amount 14.00 --note "with tip"`,
		Args:    cobra.ExactArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			t, err := a.engine.Transaction(id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				t.Title = f.title
			}
			if flags.Changed("amount") {
				if t.Amount, err = parseAmount(f.amount); err != nil {
					return err
				}
			}
			if flags.Changed("category") {
				t.Category = model.CanonicalCategory(f.category)
			}
			if flags.Changed("date") {
				if t.Date, err = parseDate(f.date); err != nil {
					return err
				}
			}
			if flags.Changed("type") {
				if t.IsIncome, err = parseKind(f.kind); err != nil {
					return err
				}
			}
			if flags.Changed("note") {
				t.Note = f.note
			}

			if err := a.engine.UpdateTransaction(cmd.Context(), id, t); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated transaction "+cli.ShortID(id)))
			return nil
		}),
	}

	f.register(cmd)
	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if errors.Is(err, common.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("No transaction matches %s, nothing deleted.", args[0])))
				return nil
			}
			if err != nil {
				return err
			}

			if err := a.engine.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted transaction "+cli.ShortID(id)))
			return nil
		}),
	}
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			t, err := a.engine.Transaction(id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTransaction(a.symbol(), t))
			return nil
		}),
	}
}

func listCmd(a *app) *cobra.Command {
	var period periodFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions",
		Long:    `List transactions, oldest first. Without a period flag every transaction is listed.`,
		Example: `  tally list --month 2024-05
  tally list --week 2024-05-15
  tally list --from 2024-05-01 --to 2024-05-10`,
		Args: cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			title, txns, err := period.resolve(a, "All transactions")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(title))
			fmt.Fprintln(out, cli.RenderTransactions(a.symbol(), txns))
			return nil
		}),
	}

	period.register(cmd)
	return cmd
}
