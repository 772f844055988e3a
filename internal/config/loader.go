package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// findConfigFile finds the config file to use.
// Priority: explicit path > hbstat.yaml > hbstat.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"hbstat.yaml", "hbstat.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Reset resets the koanf instance. Used for testing.
func Reset() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_dir":        DefaultDataDir,
		"households_file": DefaultHouseholdsFile,
		"expenses_file":   DefaultExpensesFile,
		"products_file":   DefaultProductsFile,
		"output_dir":      DefaultOutputDir,
		"shares_file":     DefaultSharesFile,
		"plot_file":       DefaultPlotFile,
		"state_path":      DefaultStateFile,
		"on_unmatched":    DefaultOnUnmatched,
		"verbose":         false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables (HBSTAT_ prefix)
	// Transform: HBSTAT_OUTPUT_DIR -> output_dir
	if err := k.Load(env.Provider("HBSTAT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "HBSTAT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys.
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI uses --state for brevity, the config key is state_path.
			if key == "state" {
				return "state_path", posflag.FlagVal(flags, f)
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// The category mapping merges awkwardly across layers; an empty result
	// means no layer provided one, so fall back to the COICOP defaults.
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// FileUsed returns the path to the config file being used, if any.
func FileUsed() string {
	return configFileUsed
}

// Current returns the most recently loaded configuration, or nil.
func Current() *Config {
	return currentConfig
}
