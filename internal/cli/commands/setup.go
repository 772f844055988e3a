// Package commands implements the hbstat subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/microdata-labs/hbstat/internal/adapter"
	"github.com/microdata-labs/hbstat/internal/config"
	"github.com/microdata-labs/hbstat/internal/state"
	"github.com/microdata-labs/hbstat/internal/survey"
)

// getConfig returns the current configuration, falling back to defaults
// when no load has happened (direct command construction in tests).
func getConfig() *config.Config {
	if cfg := config.Current(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// newLogger returns a text logger to stderr at debug level when verbose,
// otherwise a discard logger.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadSurvey ingests the three CSV inputs through an in-memory DuckDB
// instance and returns the typed tables.
func loadSurvey(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*survey.Tables, error) {
	db := adapter.NewDuckDBAdapter()
	if err := db.Connect(ctx, adapter.Config{Path: ":memory:"}); err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	loader := survey.NewLoader(db, logger)
	return loader.Load(ctx, cfg.HouseholdsPath(), cfg.ExpensesPath(), cfg.ProductsPath())
}

// openStore opens the run-history store, creating its directory and
// running migrations.
func openStore(cfg *config.Config) (state.Store, error) {
	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
