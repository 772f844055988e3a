package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/microdata-labs/hbstat/internal/config"
	"github.com/microdata-labs/hbstat/internal/plotting"
	"github.com/microdata-labs/hbstat/internal/report"
	"github.com/microdata-labs/hbstat/internal/state"
	"github.com/microdata-labs/hbstat/internal/stats"
	"github.com/microdata-labs/hbstat/internal/survey"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var noPlot bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis pipeline",
		Long: `Execute all pipeline stages in order: sanity check, category share
aggregation, and the Lorenz/Gini computation.

The category shares are written to the shares output file, the Lorenz
curve to the plot output file, and the run is recorded in the history
database.`,
		Example: `  # Analyze the default data directory
  hbstat run

  # Analyze a specific survey into a separate output directory
  hbstat run --data-dir surveys/2024 --output-dir results/2024`,
		Aliases: []string{"analyze"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, noPlot)
		},
	}

	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip rendering the Lorenz curve image")

	return cmd
}

func runPipeline(cmd *cobra.Command, noPlot bool) error {
	cfg := getConfig()
	logger := newLogger(cfg.Verbose)
	w := cmd.OutOrStdout()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.BeginRun(cfg.OnUnmatched)
	if err != nil {
		return err
	}

	res, err := executeStages(cmd, cfg, logger, noPlot)
	if err != nil {
		if failErr := store.FailRun(run.ID, err.Error()); failErr != nil {
			logger.Warn("failed to record failed run", "error", failErr)
		}
		return err
	}

	if err := store.CompleteRun(run.ID, *res); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nRun %s recorded.\n", run.ID)
	return nil
}

// executeStages runs check, shares, and lorenz in order, returning the
// figures recorded into the run history.
func executeStages(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, noPlot bool) (*state.Result, error) {
	w := cmd.OutOrStdout()

	tables, err := loadSurvey(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}

	printReport(w, survey.Validate(tables))

	shares, err := stats.CategoryShares(tables, cfg.Categories, stats.JoinPolicy(cfg.OnUnmatched))
	if err != nil {
		return nil, err
	}
	if err := report.WriteSharesCSV(cfg.SharesPath(), shares.Shares); err != nil {
		return nil, err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "National Share of Spending by COICOP Level 1:")
	report.SharesTable(w, shares.Shares)

	curve, err := stats.Lorenz(tables)
	if err != nil {
		return nil, err
	}

	bottom50 := curve.BottomShare(0.5)
	gini := curve.Gini()

	fmt.Fprintf(w, "The bottom 50%% of the population contributes a %.2f%% of the total expenditure\n", bottom50)

	if !noPlot {
		if err := plotting.RenderLorenz(curve, cfg.PlotPath()); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(w, "\nGini Coefficient: %.4f\n", gini)

	return &state.Result{
		Households:         len(tables.Households),
		Expenses:           len(tables.Expenses),
		Products:           len(tables.Products),
		DroppedNoProduct:   shares.DroppedNoProduct,
		DroppedNoHousehold: shares.DroppedNoHousehold,
		Gini:               gini,
		Bottom50:           bottom50,
	}, nil
}
