package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/tui"
)

func browseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions interactively",
		Long: `Open a full-screen browser over your transactions.

d, w, m and a switch between day, week, month and everything; h and l move
to the previous or next period; t jumps back to today; enter shows details.`,
		Args: cobra.NoArgs,
		RunE: a.withEngine(func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), a.engine)
		}),
	}
}
