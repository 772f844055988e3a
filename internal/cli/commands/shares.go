package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microdata-labs/hbstat/internal/report"
	"github.com/microdata-labs/hbstat/internal/stats"
)

// NewSharesCommand creates the shares command.
func NewSharesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shares",
		Short: "Compute national expenditure shares by COICOP category",
		Long: `Compute each COICOP level-1 category's percentage share of total
weighted national expenditure.

Expenses are joined to products and households; rows whose keys have no
match are dropped or abort the run depending on the on_unmatched policy.
The result is written to the shares output file and printed as a table.`,
		Example: `  # Compute shares with the configured policy
  hbstat shares

  # Abort instead of dropping unmatched rows
  hbstat shares --on-unmatched fail`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			logger := newLogger(cfg.Verbose)

			tables, err := loadSurvey(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			res, err := stats.CategoryShares(tables, cfg.Categories, stats.JoinPolicy(cfg.OnUnmatched))
			if err != nil {
				return err
			}

			if err := report.WriteSharesCSV(cfg.SharesPath(), res.Shares); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "National Share of Spending by COICOP Level 1:")
			report.SharesTable(w, res.Shares)
			if dropped := res.DroppedNoProduct + res.DroppedNoHousehold; dropped > 0 {
				fmt.Fprintf(w, "Note: %d expense rows dropped by the join (%d without product, %d without household).\n",
					dropped, res.DroppedNoProduct, res.DroppedNoHousehold)
			}
			fmt.Fprintf(w, "Written to %s\n", cfg.SharesPath())
			return nil
		},
	}
}
