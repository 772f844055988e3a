package commands

import (
	"github.com/spf13/cobra"

	"github.com/microdata-labs/hbstat/internal/report"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Long: `List past pipeline runs from the history database, newest first,
with their input sizes and headline statistics.`,
		Example: `  # Show the last 20 runs
  hbstat history

  # Show more
  hbstat history --limit 100`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}

			report.RunsTable(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}
