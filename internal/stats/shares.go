// Package stats implements the distributional statistics: weighted
// category expenditure shares, the Lorenz curve, and the Gini coefficient.
//
// Everything here is pure computation over loaded survey tables; file and
// plot output live elsewhere.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/microdata-labs/hbstat/internal/survey"
)

// JoinPolicy controls what happens to expense rows whose product or
// household key has no match.
type JoinPolicy string

const (
	// DropUnmatched drops unmatched rows from the aggregation (inner
	// join). The dropped counts are reported in the result.
	DropUnmatched JoinPolicy = "drop"

	// FailUnmatched aborts the aggregation when any row is unmatched.
	FailUnmatched JoinPolicy = "fail"
)

// Unclassified is the category bucket for codes absent from the mapping.
const Unclassified = "UNCLASSIFIED"

// CategoryShare is one category's percentage of total weighted national
// expenditure, rounded to two decimals.
type CategoryShare struct {
	Category string
	Share    float64
}

// ShareResult holds the category shares and the join diagnostics.
type ShareResult struct {
	Shares []CategoryShare

	// DroppedNoProduct counts expense rows whose product_id resolved to
	// no product. DroppedNoHousehold counts rows whose hh_id resolved to
	// no household weight. Non-zero only under DropUnmatched.
	DroppedNoProduct   int
	DroppedNoHousehold int
}

// CategoryShares aggregates weighted expenditure by category name and
// computes each category's percentage share of the grand total.
//
// Expenses are joined to products by product_id and to households by
// hh_id. Rows with a missing amount or weight (NaN) are skipped. Category
// codes outside the mapping aggregate under Unclassified.
// Shares are sorted by category name, matching the natural ordering of a
// group-by, and sum to 100 within rounding error.
func CategoryShares(t *survey.Tables, categories map[string]string, policy JoinPolicy) (*ShareResult, error) {
	productCode := make(map[string]string, len(t.Products))
	for _, p := range t.Products {
		productCode[p.ID] = p.Code
	}

	weights := make(map[string]float64, len(t.Households))
	for _, h := range t.Households {
		weights[h.ID] = h.Weight
	}

	totals := make(map[string]float64)
	res := &ShareResult{}

	for _, e := range t.Expenses {
		code, ok := productCode[e.ProductID]
		if !ok {
			res.DroppedNoProduct++
			continue
		}
		w, ok := weights[e.HouseholdID]
		if !ok {
			res.DroppedNoHousehold++
			continue
		}

		// Missing numerics load as NaN; rows carrying one are skipped so
		// a single gap doesn't blank every total.
		if math.IsNaN(e.Annual) || math.IsNaN(w) {
			continue
		}

		name, ok := categories[code]
		if !ok {
			name = Unclassified
		}
		totals[name] += e.Annual * w
	}

	if policy == FailUnmatched && res.DroppedNoProduct+res.DroppedNoHousehold > 0 {
		return nil, fmt.Errorf("unmatched expense rows: %d without product, %d without household",
			res.DroppedNoProduct, res.DroppedNoHousehold)
	}

	if len(totals) == 0 {
		return nil, fmt.Errorf("no expense rows survived the joins")
	}

	var grand float64
	for _, v := range totals {
		grand += v
	}
	if grand == 0 {
		return nil, fmt.Errorf("total weighted expenditure is zero")
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	res.Shares = make([]CategoryShare, 0, len(names))
	for _, name := range names {
		res.Shares = append(res.Shares, CategoryShare{
			Category: name,
			Share:    round2(100 * totals[name] / grand),
		})
	}

	return res, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
