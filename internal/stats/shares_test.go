package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microdata-labs/hbstat/internal/survey"
)

var testCategories = map[string]string{
	"1": "FOOD AND NON-ALCOHOLIC BEVERAGES",
	"2": "ALCOHOLIC BEVERAGES, TOBACCO AND NARCOTICS",
}

func sharesFixture() *survey.Tables {
	return &survey.Tables{
		Households: []survey.Household{
			{ID: "h1", Weight: 2, Size: 1},
			{ID: "h2", Weight: 1, Size: 1},
		},
		Products: []survey.Product{
			{ID: "p1", Code: "1"},
			{ID: "p2", Code: "2"},
			{ID: "p3", Code: "99"},
		},
		Expenses: []survey.Expense{
			{HouseholdID: "h1", ProductID: "p1", Annual: 100},
			{HouseholdID: "h2", ProductID: "p2", Annual: 50},
			{HouseholdID: "h1", ProductID: "p3", Annual: 10},
		},
	}
}

func TestCategoryShares_WeightedSharesAndOrdering(t *testing.T) {
	res, err := CategoryShares(sharesFixture(), testCategories, DropUnmatched)
	require.NoError(t, err)
	require.Len(t, res.Shares, 3)

	// Weighted totals: FOOD 200, ALCOHOLIC 50, UNCLASSIFIED 20 of 270.
	// Ordering is alphabetical by category name.
	assert.Equal(t, "ALCOHOLIC BEVERAGES, TOBACCO AND NARCOTICS", res.Shares[0].Category)
	assert.InDelta(t, 18.52, res.Shares[0].Share, 1e-12)

	assert.Equal(t, "FOOD AND NON-ALCOHOLIC BEVERAGES", res.Shares[1].Category)
	assert.InDelta(t, 74.07, res.Shares[1].Share, 1e-12)

	assert.Equal(t, Unclassified, res.Shares[2].Category)
	assert.InDelta(t, 7.41, res.Shares[2].Share, 1e-12)

	assert.Zero(t, res.DroppedNoProduct)
	assert.Zero(t, res.DroppedNoHousehold)
}

func TestCategoryShares_SumToOneHundred(t *testing.T) {
	res, err := CategoryShares(sharesFixture(), testCategories, DropUnmatched)
	require.NoError(t, err)

	var sum float64
	for _, s := range res.Shares {
		sum += s.Share
	}
	assert.InDelta(t, 100, sum, 0.01*float64(len(res.Shares)))
}

func TestCategoryShares_UnmappedCodeBuckets(t *testing.T) {
	// A code outside the mapping lands in the UNCLASSIFIED bucket and
	// still counts toward the grand total.
	res, err := CategoryShares(sharesFixture(), testCategories, DropUnmatched)
	require.NoError(t, err)

	found := false
	for _, s := range res.Shares {
		if s.Category == Unclassified {
			found = true
			assert.Greater(t, s.Share, 0.0)
		}
	}
	assert.True(t, found, "expected an UNCLASSIFIED bucket")
}

func TestCategoryShares_MissingValuesSkipped(t *testing.T) {
	tables := sharesFixture()
	// One expense with a missing amount, one household with a missing
	// weight: both rows must drop out of the sums without touching the
	// shares of the complete rows.
	tables.Households = append(tables.Households,
		survey.Household{ID: "h3", Weight: math.NaN(), Size: 1})
	tables.Expenses = append(tables.Expenses,
		survey.Expense{HouseholdID: "h1", ProductID: "p1", Annual: math.NaN()},
		survey.Expense{HouseholdID: "h3", ProductID: "p1", Annual: 40},
	)

	res, err := CategoryShares(tables, testCategories, DropUnmatched)
	require.NoError(t, err)
	require.Len(t, res.Shares, 3)

	var sum float64
	for _, s := range res.Shares {
		assert.False(t, math.IsNaN(s.Share), "share for %s is NaN", s.Category)
		sum += s.Share
	}
	assert.InDelta(t, 100, sum, 0.01*float64(len(res.Shares)))

	// Identical to the fixture without the incomplete rows.
	assert.InDelta(t, 74.07, res.Shares[1].Share, 1e-12)
	assert.Zero(t, res.DroppedNoProduct)
	assert.Zero(t, res.DroppedNoHousehold)
}

func TestCategoryShares_DropPolicyCountsOrphans(t *testing.T) {
	tables := sharesFixture()
	tables.Expenses = append(tables.Expenses,
		survey.Expense{HouseholdID: "h1", ProductID: "missing-product", Annual: 500},
		survey.Expense{HouseholdID: "ghost", ProductID: "p1", Annual: 500},
	)

	res, err := CategoryShares(tables, testCategories, DropUnmatched)
	require.NoError(t, err)

	// Orphan rows are excluded from the totals, so shares are unchanged.
	assert.Equal(t, 1, res.DroppedNoProduct)
	assert.Equal(t, 1, res.DroppedNoHousehold)
	assert.InDelta(t, 74.07, res.Shares[1].Share, 1e-12)
}

func TestCategoryShares_FailPolicyAborts(t *testing.T) {
	tables := sharesFixture()
	tables.Expenses = append(tables.Expenses,
		survey.Expense{HouseholdID: "ghost", ProductID: "p1", Annual: 500},
	)

	_, err := CategoryShares(tables, testCategories, FailUnmatched)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched")
}

func TestCategoryShares_NoSurvivingRows(t *testing.T) {
	tables := &survey.Tables{
		Households: []survey.Household{{ID: "h1", Weight: 1, Size: 1}},
		Products:   []survey.Product{{ID: "p1", Code: "1"}},
		Expenses:   []survey.Expense{{HouseholdID: "ghost", ProductID: "gone", Annual: 10}},
	}

	_, err := CategoryShares(tables, testCategories, DropUnmatched)
	assert.Error(t, err)
}

func TestCategoryShares_TwelveCategorySurvey(t *testing.T) {
	// Full mapping, one product and expense per division.
	categories := make(map[string]string, 12)
	tables := &survey.Tables{
		Households: []survey.Household{{ID: "h1", Weight: 1, Size: 1}},
	}
	for i := 1; i <= 12; i++ {
		code := fmt.Sprintf("%d", i)
		categories[code] = fmt.Sprintf("DIVISION %02d", i)
		tables.Products = append(tables.Products, survey.Product{ID: "p" + code, Code: code})
		tables.Expenses = append(tables.Expenses, survey.Expense{HouseholdID: "h1", ProductID: "p" + code, Annual: 100})
	}

	res, err := CategoryShares(tables, categories, DropUnmatched)
	require.NoError(t, err)
	require.Len(t, res.Shares, 12)

	var sum float64
	for _, s := range res.Shares {
		assert.InDelta(t, 8.33, s.Share, 1e-12)
		sum += s.Share
	}
	assert.InDelta(t, 100, sum, 0.01*12)
}
