// Package survey loads the household budget survey tables and performs
// the referential sanity checks on them.
//
// The three CSV inputs are ingested through DuckDB, which infers the
// schema and handles quoting/typing. Rows are then scanned out into the
// typed slices below. Identifier columns are cast to VARCHAR during the
// scan so string and integer keyed surveys behave identically; missing
// numeric values come out as NaN so downstream stages can tell a gap from
// a real zero. The stats stages skip NaN values when summing.
package survey

// Table names inside the analysis database, also used as report labels.
const (
	TableHouseholds = "households"
	TableExpenses   = "expenses"
	TableProducts   = "products"
)

// Household is one row of the household-level table.
type Household struct {
	ID     string
	Weight float64 // sampling weight, positive
	Size   int     // number of members, positive
}

// Expense is one expenditure record.
type Expense struct {
	HouseholdID string
	ProductID   string
	Annual      float64 // annual expenditure, non-negative
}

// Product maps a product to its COICOP level-1 code.
type Product struct {
	ID   string
	Code string // "1".."12" in a conforming survey
}

// Tables holds the three loaded tables plus load-time diagnostics.
type Tables struct {
	Households []Household
	Expenses   []Expense
	Products   []Product

	// MissingColumns lists, per table, the columns containing at least
	// one missing value. Detected during load, reported by the check
	// stage, never acted on.
	MissingColumns map[string][]string
}
