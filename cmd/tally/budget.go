package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
)

func budgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage the spending budget",
		Long: `Set, reset and inspect the budget. Every expense counts towards the
spent total; income never does.`,
		Example: `  tally budget set 1500
  tally budget status
  tally budget reset`,
		Args: cobra.NoArgs,
		RunE: a.withEngine(a.printBudget),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the budget",
		Args:  cobra.ExactArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			if err := a.engine.SetBudget(cmd.Context(), amount); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Budget set to %s%s", a.symbol(), amount.StringFixed(2))))
			return a.printBudget(cmd, nil)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove the budget",
		Args:  cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			if err := a.engine.ResetBudget(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Budget reset"))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show budget, spent and remaining",
		Args:  cobra.NoArgs,
		RunE:  a.withEngine(a.printBudget),
	})

	return cmd
}

func (a *app) printBudget(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBudget(a.engine.BudgetStatus()))
	return nil
}

func currencyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "currency [code]",
		Short: "Show or change the display currency",
		Long: `Without an argument, show the current currency and the known codes.
With a code, switch to it. Amounts are not converted, only relabelled.`,
		Example: `  tally currency
  tally currency EUR`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.withEngine(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if err := a.engine.SetCurrency(cmd.Context(), args[0]); err != nil {
					return err
				}
				ledger := a.engine.Ledger()
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Currency set to %s (%s)", ledger.CurrencyCode, ledger.CurrencySymbol())))
				if !model.IsKnownCurrency(ledger.CurrencyCode) {
					fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%s is not a known currency; amounts show with %s", ledger.CurrencyCode, model.DefaultCurrencySymbol)))
				}
				return nil
			}

			ledger := a.engine.Ledger()
			var b strings.Builder
			for _, code := range model.Currencies() {
				marker := "  "
				if code == ledger.CurrencyCode {
					marker = cli.SuccessIcon + " "
				}
				fmt.Fprintf(&b, "%s%-4s %s\n", marker, code, model.CurrencySymbol(code))
			}

			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Current currency: %s (%s)", ledger.CurrencyCode, ledger.CurrencySymbol())))
			fmt.Fprintln(out, cli.RenderBox("Currencies", strings.TrimRight(b.String(), "\n")))
			return nil
		}),
	}
}
