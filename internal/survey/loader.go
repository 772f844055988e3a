package survey

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"

	"github.com/microdata-labs/hbstat/internal/adapter"
)

// Required columns per table. Loading fails fast when any is absent.
var requiredColumns = map[string][]string{
	TableHouseholds: {"hh_id", "weight", "hh_size"},
	TableExpenses:   {"hh_id", "product_id", "annual_expenditure"},
	TableProducts:   {"product_id", "coicop_survey_1"},
}

// Loader ingests the survey CSVs into a database and scans them into
// typed tables.
type Loader struct {
	db     adapter.Adapter
	logger *slog.Logger
}

// NewLoader creates a loader on top of a connected adapter.
func NewLoader(db adapter.Adapter, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{db: db, logger: logger}
}

// Load ingests the three CSV files and returns the typed tables.
func (l *Loader) Load(ctx context.Context, householdsPath, expensesPath, productsPath string) (*Tables, error) {
	files := []struct {
		table string
		path  string
	}{
		{TableHouseholds, householdsPath},
		{TableExpenses, expensesPath},
		{TableProducts, productsPath},
	}

	t := &Tables{MissingColumns: make(map[string][]string)}

	for _, f := range files {
		l.logger.Debug("loading table", "table", f.table, "path", f.path)

		if err := l.db.LoadCSV(ctx, f.table, f.path); err != nil {
			return nil, err
		}

		cols, err := l.db.Columns(ctx, f.table)
		if err != nil {
			return nil, err
		}
		if err := checkRequired(f.table, cols); err != nil {
			return nil, err
		}

		missing, err := l.missingColumns(ctx, f.table, cols)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			t.MissingColumns[f.table] = missing
		}
	}

	var err error
	if t.Households, err = l.scanHouseholds(ctx); err != nil {
		return nil, err
	}
	if t.Expenses, err = l.scanExpenses(ctx); err != nil {
		return nil, err
	}
	if t.Products, err = l.scanProducts(ctx); err != nil {
		return nil, err
	}

	l.logger.Debug("survey loaded",
		"households", len(t.Households),
		"expenses", len(t.Expenses),
		"products", len(t.Products))

	return t, nil
}

func checkRequired(table string, cols []adapter.Column) error {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c.Name] = true
	}
	for _, name := range requiredColumns[table] {
		if !present[name] {
			return fmt.Errorf("table %s is missing required column %q", table, name)
		}
	}
	return nil
}

// missingColumns returns the names of columns containing at least one NULL.
func (l *Loader) missingColumns(ctx context.Context, table string, cols []adapter.Column) ([]string, error) {
	var missing []string
	for _, c := range cols {
		q := fmt.Sprintf(`SELECT count(*) - count("%s") FROM %s`, c.Name, table)
		rows, err := l.db.Query(ctx, q)
		if err != nil {
			return nil, err
		}

		var nulls int64
		if rows.Next() {
			if err := rows.Scan(&nulls); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("failed to count nulls in %s.%s: %w", table, c.Name, err)
			}
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, err
		}
		_ = rows.Close()

		if nulls > 0 {
			missing = append(missing, c.Name)
		}
	}
	return missing, nil
}

func (l *Loader) scanHouseholds(ctx context.Context) ([]Household, error) {
	q := `SELECT CAST(hh_id AS VARCHAR), CAST(weight AS DOUBLE), CAST(hh_size AS BIGINT) FROM households`
	rows, err := l.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Household
	for rows.Next() {
		var id sql.NullString
		var weight sql.NullFloat64
		var size sql.NullInt64
		if err := rows.Scan(&id, &weight, &size); err != nil {
			return nil, fmt.Errorf("failed to scan household row: %w", err)
		}
		out = append(out, Household{
			ID:     id.String,
			Weight: nullFloat(weight),
			Size:   int(size.Int64),
		})
	}
	return out, rows.Err()
}

func (l *Loader) scanExpenses(ctx context.Context) ([]Expense, error) {
	q := `SELECT CAST(hh_id AS VARCHAR), CAST(product_id AS VARCHAR), CAST(annual_expenditure AS DOUBLE) FROM expenses`
	rows, err := l.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Expense
	for rows.Next() {
		var hhID, productID sql.NullString
		var annual sql.NullFloat64
		if err := rows.Scan(&hhID, &productID, &annual); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		out = append(out, Expense{
			HouseholdID: hhID.String,
			ProductID:   productID.String,
			Annual:      nullFloat(annual),
		})
	}
	return out, rows.Err()
}

func (l *Loader) scanProducts(ctx context.Context) ([]Product, error) {
	q := `SELECT CAST(product_id AS VARCHAR), CAST(coicop_survey_1 AS VARCHAR) FROM products`
	rows, err := l.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Product
	for rows.Next() {
		var id, code sql.NullString
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		out = append(out, Product{
			ID:   id.String,
			Code: code.String,
		})
	}
	return out, rows.Err()
}

func nullFloat(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
