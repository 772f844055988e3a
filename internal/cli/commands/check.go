package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/microdata-labs/hbstat/internal/survey"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the survey sanity checks",
		Long: `Check referential consistency and completeness of the input tables.

Two checks run: whether every household has at least one expense record,
and which columns of each table contain missing values. Both findings are
warnings; no data is modified or dropped, and the command succeeds either
way.`,
		Example: `  # Check the default data directory
  hbstat check

  # Check another survey
  hbstat check --data-dir surveys/2024`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			logger := newLogger(cfg.Verbose)

			tables, err := loadSurvey(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), survey.Validate(tables))
			return nil
		},
	}
}

// printReport writes the sanity-check findings in the survey team's
// established console format.
func printReport(w io.Writer, rep survey.Report) {
	fmt.Fprintln(w, "...................................sanity check...........................")
	fmt.Fprintln(w)

	if rep.AllCovered {
		fmt.Fprintf(w, "Yes, every household (%d) has expenses recorded.\n", rep.HouseholdCount)
	} else {
		fmt.Fprintf(w, "Warning: %d households do not have recorded expenses.\n", rep.Uncovered)
	}

	for _, table := range []string{survey.TableHouseholds, survey.TableExpenses, survey.TableProducts} {
		cols := rep.MissingColumns[table]
		if len(cols) == 0 {
			continue
		}
		fmt.Fprintf(w, "Warning: Missing values detected in %s dataset in columns: %v\n", table, cols)
	}
}
