package survey

// Report is the outcome of the sanity check. Both findings are warnings:
// the pipeline continues regardless, and no rows are modified or dropped
// as a result of the check.
type Report struct {
	// HouseholdCount is the number of rows in the household table.
	HouseholdCount int

	// AllCovered is true when every household in the household table has
	// at least one expense record.
	AllCovered bool

	// Uncovered counts households with no expense records.
	Uncovered int

	// MissingColumns lists, per table, the columns containing missing
	// values. Empty for a complete dataset.
	MissingColumns map[string][]string
}

// Validate checks referential coverage and missing-value completeness.
func Validate(t *Tables) Report {
	withExpenses := make(map[string]struct{}, len(t.Expenses))
	for _, e := range t.Expenses {
		withExpenses[e.HouseholdID] = struct{}{}
	}

	uncovered := 0
	seen := make(map[string]struct{}, len(t.Households))
	for _, h := range t.Households {
		if _, dup := seen[h.ID]; dup {
			continue
		}
		seen[h.ID] = struct{}{}
		if _, ok := withExpenses[h.ID]; !ok {
			uncovered++
		}
	}

	return Report{
		HouseholdCount: len(seen),
		AllCovered:     uncovered == 0,
		Uncovered:      uncovered,
		MissingColumns: t.MissingColumns,
	}
}
