package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microdata-labs/hbstat/internal/survey"
)

func TestLorenz_ThreeEqualWeightHouseholds(t *testing.T) {
	tables := &survey.Tables{
		Households: []survey.Household{
			{ID: "h1", Weight: 1, Size: 1},
			{ID: "h2", Weight: 1, Size: 1},
			{ID: "h3", Weight: 1, Size: 1},
		},
		Expenses: []survey.Expense{
			{HouseholdID: "h1", ProductID: "p1", Annual: 10},
			{HouseholdID: "h2", ProductID: "p1", Annual: 20},
			{HouseholdID: "h3", ProductID: "p1", Annual: 30},
		},
	}

	curve, err := Lorenz(tables)
	require.NoError(t, err)
	require.Len(t, curve.Points, 3)

	// Sorted ascending by per-capita expenditure.
	assert.InDelta(t, 10, curve.Points[0].PerCapita, 1e-12)
	assert.InDelta(t, 30, curve.Points[2].PerCapita, 1e-12)

	assert.InDelta(t, 1.0/3.0, curve.Points[0].CumPopulation, 1e-12)
	assert.InDelta(t, 2.0/3.0, curve.Points[1].CumPopulation, 1e-12)
	assert.InDelta(t, 1.0, curve.Points[2].CumPopulation, 1e-12)

	assert.InDelta(t, 10.0/60.0, curve.Points[0].CumExpenditure, 1e-12)
	assert.InDelta(t, 30.0/60.0, curve.Points[1].CumExpenditure, 1e-12)
	assert.InDelta(t, 1.0, curve.Points[2].CumExpenditure, 1e-12)

	// Trapezoid over the three points is 13/36, so Gini = 1 - 26/36.
	assert.InDelta(t, 5.0/18.0, curve.Gini(), 1e-12)

	// Both 1/3 and 2/3 are one sixth away from 0.5 in exact arithmetic,
	// but the float64 running sums put the second point marginally closer.
	assert.InDelta(t, 50.00, curve.BottomShare(0.5), 1e-12)
}

func TestLorenz_WeightedSizes(t *testing.T) {
	// Two households: one of size 2 with half the per-capita spend of a
	// weighted single-person household.
	tables := &survey.Tables{
		Households: []survey.Household{
			{ID: "a", Weight: 2, Size: 1},
			{ID: "b", Weight: 1, Size: 2},
		},
		Expenses: []survey.Expense{
			{HouseholdID: "a", ProductID: "p", Annual: 30},
			{HouseholdID: "b", ProductID: "p", Annual: 30},
		},
	}

	curve, err := Lorenz(tables)
	require.NoError(t, err)
	require.Len(t, curve.Points, 2)

	// b (per-capita 15) sorts before a (per-capita 30).
	// Population weights: b = 2, a = 2, total 4.
	assert.InDelta(t, 0.5, curve.Points[0].CumPopulation, 1e-12)
	assert.InDelta(t, 1.0, curve.Points[1].CumPopulation, 1e-12)

	// Expenditure weights: b = 30, a = 60, total 90.
	assert.InDelta(t, 1.0/3.0, curve.Points[0].CumExpenditure, 1e-12)
	assert.InDelta(t, 1.0, curve.Points[1].CumExpenditure, 1e-12)

	assert.InDelta(t, 1.0/3.0, curve.Gini(), 1e-12)
	assert.InDelta(t, 33.33, curve.BottomShare(0.5), 1e-12)
}

func TestLorenz_EqualDistributionGiniNearZero(t *testing.T) {
	const n = 100
	tables := &survey.Tables{}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("h%d", i)
		tables.Households = append(tables.Households, survey.Household{ID: id, Weight: 1, Size: 1})
		tables.Expenses = append(tables.Expenses, survey.Expense{HouseholdID: id, ProductID: "p", Annual: 100})
	}

	curve, err := Lorenz(tables)
	require.NoError(t, err)

	// Without a (0,0) anchor the trapezoid leaves exactly 1/n^2.
	assert.InDelta(t, 1.0/(n*n), curve.Gini(), 1e-9)
	assert.Less(t, curve.Gini(), 0.001)
}

func TestLorenz_CumulativeSequencesMonotone(t *testing.T) {
	tables := &survey.Tables{
		Households: []survey.Household{
			{ID: "h1", Weight: 1.5, Size: 3},
			{ID: "h2", Weight: 0.8, Size: 1},
			{ID: "h3", Weight: 2.2, Size: 5},
			{ID: "h4", Weight: 1.0, Size: 2},
		},
		Expenses: []survey.Expense{
			{HouseholdID: "h1", ProductID: "p", Annual: 1200},
			{HouseholdID: "h2", ProductID: "p", Annual: 430},
			{HouseholdID: "h3", ProductID: "p", Annual: 8100},
			{HouseholdID: "h4", ProductID: "p", Annual: 55},
		},
	}

	curve, err := Lorenz(tables)
	require.NoError(t, err)
	require.Len(t, curve.Points, 4)

	for i := 1; i < len(curve.Points); i++ {
		assert.GreaterOrEqual(t, curve.Points[i].CumPopulation, curve.Points[i-1].CumPopulation)
		assert.GreaterOrEqual(t, curve.Points[i].CumExpenditure, curve.Points[i-1].CumExpenditure)
	}

	last := curve.Points[len(curve.Points)-1]
	assert.InDelta(t, 1.0, last.CumPopulation, 1e-12)
	assert.InDelta(t, 1.0, last.CumExpenditure, 1e-12)

	gini := curve.Gini()
	assert.GreaterOrEqual(t, gini, 0.0)
	assert.LessOrEqual(t, gini, 1.0)
}

func TestLorenz_MissingValuesSkipped(t *testing.T) {
	tables := &survey.Tables{
		Households: []survey.Household{
			{ID: "h1", Weight: 1, Size: 1},
			{ID: "h2", Weight: 1, Size: 1},
			{ID: "noweight", Weight: math.NaN(), Size: 1},
			{ID: "gaps", Weight: 1, Size: 1},
		},
		Expenses: []survey.Expense{
			{HouseholdID: "h1", ProductID: "p", Annual: 10},
			{HouseholdID: "h1", ProductID: "p", Annual: math.NaN()},
			{HouseholdID: "h2", ProductID: "p", Annual: 30},
			{HouseholdID: "noweight", ProductID: "p", Annual: 5},
			{HouseholdID: "gaps", ProductID: "p", Annual: math.NaN()},
		},
	}

	curve, err := Lorenz(tables)
	require.NoError(t, err)
	// noweight is skipped; gaps stays, grouped at total 0.
	require.Len(t, curve.Points, 3)

	assert.InDelta(t, 0, curve.Points[0].PerCapita, 1e-12)
	assert.InDelta(t, 0, curve.Points[0].CumExpenditure, 1e-12)
	// h1 and h2 totals are 10 and 30, as if the NaN rows were absent.
	assert.InDelta(t, 0.25, curve.Points[1].CumExpenditure, 1e-12)
	assert.InDelta(t, 1.0, curve.Points[2].CumExpenditure, 1e-12)

	gini := curve.Gini()
	assert.False(t, math.IsNaN(gini))
	assert.GreaterOrEqual(t, gini, 0.0)
	assert.LessOrEqual(t, gini, 1.0)
}

func TestLorenz_HouseholdsWithoutExpensesDropOut(t *testing.T) {
	tables := &survey.Tables{
		Households: []survey.Household{
			{ID: "h1", Weight: 1, Size: 1},
			{ID: "silent", Weight: 1, Size: 1},
		},
		Expenses: []survey.Expense{
			{HouseholdID: "h1", ProductID: "p", Annual: 10},
		},
	}

	curve, err := Lorenz(tables)
	require.NoError(t, err)
	assert.Len(t, curve.Points, 1)
	assert.InDelta(t, 1.0, curve.Points[0].CumPopulation, 1e-12)
}

func TestLorenz_NoMatchingHouseholds(t *testing.T) {
	tables := &survey.Tables{
		Households: []survey.Household{{ID: "h1", Weight: 1, Size: 1}},
		Expenses:   []survey.Expense{{HouseholdID: "ghost", ProductID: "p", Annual: 10}},
	}

	_, err := Lorenz(tables)
	assert.Error(t, err)
}

func TestLorenz_ZeroExpenditure(t *testing.T) {
	tables := &survey.Tables{
		Households: []survey.Household{{ID: "h1", Weight: 1, Size: 1}},
		Expenses:   []survey.Expense{{HouseholdID: "h1", ProductID: "p", Annual: 0}},
	}

	_, err := Lorenz(tables)
	assert.Error(t, err)
}
