// Package adapter provides the database adapter used to ingest and
// introspect the survey CSV tables.
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Path is the database file path. Use ":memory:" for an in-memory
	// database, which is the normal mode for a one-shot analysis.
	Path string
}

// Column represents a column in a database table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// Rows wraps sql.Rows so callers don't import database/sql directly.
type Rows struct {
	*sql.Rows
}

// Adapter is the storage interface the survey loader runs against.
type Adapter interface {
	// Connect establishes a connection using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// Columns returns column metadata for a table, in ordinal order.
	Columns(ctx context.Context, table string) ([]Column, error)

	// LoadCSV loads a CSV file into a table, creating or replacing it
	// with a schema inferred from the file.
	LoadCSV(ctx context.Context, tableName string, filePath string) error
}
