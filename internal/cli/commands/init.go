package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/microdata-labs/hbstat/internal/config"
)

// configTemplate mirrors config.Config with yaml tags so the scaffolded
// file uses the same keys the loader reads.
type configTemplate struct {
	DataDir        string            `yaml:"data_dir"`
	HouseholdsFile string            `yaml:"households_file"`
	ExpensesFile   string            `yaml:"expenses_file"`
	ProductsFile   string            `yaml:"products_file"`
	OutputDir      string            `yaml:"output_dir"`
	SharesFile     string            `yaml:"shares_file"`
	PlotFile       string            `yaml:"plot_file"`
	StatePath      string            `yaml:"state_path"`
	OnUnmatched    string            `yaml:"on_unmatched"`
	Categories     map[string]string `yaml:"categories"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an hbstat project",
		Long: `Write an hbstat.yaml with the default configuration, including the
standard COICOP level-1 category mapping, and create the data directory.

Edit the generated file to point at your survey CSVs or to localize the
category names.`,
		Example: `  # Initialize in the current directory
  hbstat init

  # Initialize a new directory
  hbstat init my-survey

  # Overwrite an existing config
  hbstat init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "hbstat.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("hbstat.yaml already exists, use --force to overwrite")
	}

	def := config.Default()
	tmpl := configTemplate{
		DataDir:        def.DataDir,
		HouseholdsFile: def.HouseholdsFile,
		ExpensesFile:   def.ExpensesFile,
		ProductsFile:   def.ProductsFile,
		OutputDir:      def.OutputDir,
		SharesFile:     def.SharesFile,
		PlotFile:       def.PlotFile,
		StatePath:      def.StatePath,
		OnUnmatched:    def.OnUnmatched,
		Categories:     def.Categories,
	}

	data, err := yaml.Marshal(&tmpl)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# hbstat configuration. Precedence: flags > HBSTAT_* env vars > this file.\n")
	if err := os.WriteFile(configPath, append(header, data...), 0640); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	if err := os.MkdirAll(filepath.Join(dir, def.DataDir), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created %s\n", configPath)
	fmt.Fprintf(w, "Place households.csv, expenses.csv, and products.csv in %s\n",
		filepath.Join(dir, def.DataDir))
	return nil
}
