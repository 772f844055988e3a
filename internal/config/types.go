// Package config provides configuration management for hbstat.
//
// Configuration is layered: defaults < hbstat.yaml < HBSTAT_* environment
// variables < command-line flags. Input and output locations, the join
// policy, and the COICOP category mapping are all injectable here so the
// analysis stages carry no hard-coded paths or lookup tables.
package config

import (
	"fmt"
	"path/filepath"
)

// Join policies for rows whose foreign keys have no match.
const (
	// UnmatchedDrop silently drops unmatched rows from the aggregation,
	// reproducing an inner join. Dropped counts are still reported.
	UnmatchedDrop = "drop"

	// UnmatchedFail aborts the aggregation when any row is unmatched.
	UnmatchedFail = "fail"
)

// Config holds all hbstat configuration options.
type Config struct {
	// DataDir is the directory containing the three input CSV files.
	DataDir string `koanf:"data_dir"`

	// Input file names, resolved against DataDir unless absolute.
	HouseholdsFile string `koanf:"households_file"`
	ExpensesFile   string `koanf:"expenses_file"`
	ProductsFile   string `koanf:"products_file"`

	// OutputDir is created on demand before any result file is written.
	OutputDir  string `koanf:"output_dir"`
	SharesFile string `koanf:"shares_file"`
	PlotFile   string `koanf:"plot_file"`

	// StatePath is the path to the run-history SQLite database.
	StatePath string `koanf:"state_path"`

	// OnUnmatched selects the join policy: "drop" or "fail".
	OnUnmatched string `koanf:"on_unmatched"`

	// Categories maps COICOP level-1 codes ("1".."12") to display names.
	Categories map[string]string `koanf:"categories"`

	Verbose bool `koanf:"verbose"`
}

// HouseholdsPath returns the resolved path to households.csv.
func (c *Config) HouseholdsPath() string { return c.resolveInput(c.HouseholdsFile) }

// ExpensesPath returns the resolved path to expenses.csv.
func (c *Config) ExpensesPath() string { return c.resolveInput(c.ExpensesFile) }

// ProductsPath returns the resolved path to products.csv.
func (c *Config) ProductsPath() string { return c.resolveInput(c.ProductsFile) }

// SharesPath returns the resolved path of the category-share output file.
func (c *Config) SharesPath() string { return c.resolveOutput(c.SharesFile) }

// PlotPath returns the resolved path of the Lorenz curve image.
func (c *Config) PlotPath() string { return c.resolveOutput(c.PlotFile) }

func (c *Config) resolveInput(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func (c *Config) resolveOutput(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

// Validate checks invariants that would otherwise surface deep in a stage.
func (c *Config) Validate() error {
	switch c.OnUnmatched {
	case UnmatchedDrop, UnmatchedFail:
	default:
		return fmt.Errorf("invalid on_unmatched policy %q (want %q or %q)",
			c.OnUnmatched, UnmatchedDrop, UnmatchedFail)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("category mapping is empty")
	}
	return nil
}
