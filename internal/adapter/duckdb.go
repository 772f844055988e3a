package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// DuckDBAdapter implements the Adapter interface for DuckDB.
type DuckDBAdapter struct {
	db     *sql.DB
	config Config
}

// NewDuckDBAdapter creates a new DuckDB adapter instance.
func NewDuckDBAdapter() *DuckDBAdapter {
	return &DuckDBAdapter{}
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *DuckDBAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.db = db
	a.config = cfg

	return nil
}

// Close closes the DuckDB connection.
func (a *DuckDBAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (a *DuckDBAdapter) Exec(ctx context.Context, sqlStr string) error {
	if a.db == nil {
		return fmt.Errorf("database connection not established")
	}

	if _, err := a.db.ExecContext(ctx, sqlStr); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}

	return nil
}

// Query executes a SQL statement that returns rows.
func (a *DuckDBAdapter) Query(ctx context.Context, sqlStr string) (*Rows, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := a.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return &Rows{Rows: rows}, nil
}

// Columns returns column metadata for a table via information_schema.
func (a *DuckDBAdapter) Columns(ctx context.Context, table string) ([]Column, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	query := `
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := a.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	for rows.Next() {
		var col Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	return columns, nil
}

// LoadCSV loads data from a CSV file into a table.
// DuckDB infers the schema from the file; a missing or malformed file
// surfaces as an error here, which aborts the pipeline.
func (a *DuckDBAdapter) LoadCSV(ctx context.Context, tableName string, filePath string) error {
	if a.db == nil {
		return fmt.Errorf("database connection not established")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	query := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto('%s', header=true)",
		tableName,
		absPath,
	)

	if err := a.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to load CSV %s: %w", filePath, err)
	}

	return nil
}

// Ensure DuckDBAdapter implements Adapter interface
var _ Adapter = (*DuckDBAdapter)(nil)
