package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microdata-labs/hbstat/internal/plotting"
	"github.com/microdata-labs/hbstat/internal/stats"
)

// NewLorenzCommand creates the lorenz command.
func NewLorenzCommand() *cobra.Command {
	var noPlot bool

	cmd := &cobra.Command{
		Use:   "lorenz",
		Short: "Compute the Lorenz curve and Gini coefficient",
		Long: `Compute the weighted cumulative distribution of per-capita household
expenditure, the expenditure share of the bottom 50% of the population,
and the Gini coefficient.

The Lorenz curve is rendered to the plot output file unless --no-plot is
given.`,
		Example: `  # Full Lorenz/Gini analysis with plot
  hbstat lorenz

  # Numbers only, skip the image
  hbstat lorenz --no-plot`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			logger := newLogger(cfg.Verbose)

			tables, err := loadSurvey(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			curve, err := stats.Lorenz(tables)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "The bottom 50%% of the population contributes a %.2f%% of the total expenditure\n",
				curve.BottomShare(0.5))

			if !noPlot {
				if err := plotting.RenderLorenz(curve, cfg.PlotPath()); err != nil {
					return err
				}
				fmt.Fprintf(w, "Lorenz curve written to %s\n", cfg.PlotPath())
			}

			fmt.Fprintf(w, "\nGini Coefficient: %.4f\n", curve.Gini())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip rendering the Lorenz curve image")

	return cmd
}
