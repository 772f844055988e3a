// Package cli provides the command-line interface for hbstat.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/microdata-labs/hbstat/internal/cli/commands"
	"github.com/microdata-labs/hbstat/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hbstat",
		Short: "hbstat - Household Budget Survey Statistics",
		Long: `hbstat computes descriptive inequality statistics from household
budget survey data: COICOP category expenditure shares, the Lorenz
curve, and the Gini coefficient.

It reads three CSV tables (households, expenses, products), validates
their referential consistency, and writes the category share table and
the Lorenz curve plot to the output directory.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if cfg.Verbose {
				if used := config.FileUsed(); used != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", used)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Built with Go and DuckDB
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./hbstat.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory containing the input CSV files")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for result files")
	rootCmd.PersistentFlags().String("state", "", "Path to the run-history database")
	rootCmd.PersistentFlags().String("on-unmatched", "", "Join policy for unmatched rows (drop|fail)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("on-unmatched", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.UnmatchedDrop, config.UnmatchedFail}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewSharesCommand())
	rootCmd.AddCommand(commands.NewLorenzCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewInitCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
