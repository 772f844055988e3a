package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/microdata-labs/hbstat/internal/survey"
)

// Point is one household on the Lorenz curve, after sorting ascending by
// per-capita expenditure.
type Point struct {
	PerCapita      float64
	CumPopulation  float64 // running population weight share, (0,1], 1.0 at the last row
	CumExpenditure float64 // running weighted expenditure share, (0,1], 1.0 at the last row
}

// Curve is the weighted cumulative expenditure distribution.
type Curve struct {
	Points []Point
}

// Lorenz computes the cumulative distribution of per-capita expenditure.
//
// Per-household totals are joined to the household table (households
// without expense records drop out, as do expenses without a household),
// per-capita expenditure is total expenditure over household size, and
// rows are sorted ascending by it. Population weight per household is
// hh_size x weight; expenditure weight is total x weight. Missing amounts
// (NaN) contribute nothing to a household's total, and households with a
// missing weight are skipped entirely. Household size is a precondition:
// zero or negative sizes are not guarded here.
func Lorenz(t *survey.Tables) (*Curve, error) {
	totals := make(map[string]float64, len(t.Households))
	for _, e := range t.Expenses {
		v := e.Annual
		if math.IsNaN(v) {
			// Missing amounts contribute nothing; the household still
			// groups, at total 0 if all its amounts are missing.
			v = 0
		}
		totals[e.HouseholdID] += v
	}

	type row struct {
		total  float64
		weight float64
		size   float64
	}

	rows := make([]row, 0, len(t.Households))
	for _, h := range t.Households {
		total, ok := totals[h.ID]
		if !ok {
			continue
		}
		// A missing sampling weight would poison both running sums and
		// give the sort comparator NaN per-capita values; skip the row.
		if math.IsNaN(h.Weight) {
			continue
		}
		rows = append(rows, row{total: total, weight: h.Weight, size: float64(h.Size)})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no households with expense records")
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].total/rows[i].size < rows[j].total/rows[j].size
	})

	var popTotal, expTotal float64
	for _, r := range rows {
		popTotal += r.size * r.weight
		expTotal += r.total * r.weight
	}
	if expTotal == 0 {
		return nil, fmt.Errorf("total weighted expenditure is zero")
	}

	points := make([]Point, len(rows))
	var popRun, expRun float64
	for i, r := range rows {
		popRun += r.size * r.weight
		expRun += r.total * r.weight
		points[i] = Point{
			PerCapita:      r.total / r.size,
			CumPopulation:  popRun / popTotal,
			CumExpenditure: expRun / expTotal,
		}
	}

	return &Curve{Points: points}, nil
}

// Gini returns 1 - 2 x (area under the Lorenz curve), with the area
// estimated by trapezoidal integration over the curve points. The
// integration runs over the household points only, without a synthetic
// (0,0) origin, so a perfectly equal distribution of n households yields
// 1/n^2 rather than exactly zero.
func (c *Curve) Gini() float64 {
	var area float64
	for i := 1; i < len(c.Points); i++ {
		dx := c.Points[i].CumPopulation - c.Points[i-1].CumPopulation
		area += dx * (c.Points[i].CumExpenditure + c.Points[i-1].CumExpenditure) / 2
	}
	return 1 - 2*area
}

// BottomShare returns the cumulative expenditure share, as a percentage
// rounded to two decimals, at the curve point whose cumulative population
// share is nearest to target. Ties go to the first point in sorted order.
func (c *Curve) BottomShare(target float64) float64 {
	best := 0
	bestDiff := math.Inf(1)
	for i, p := range c.Points {
		if d := math.Abs(p.CumPopulation - target); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return round2(100 * c.Points[best].CumExpenditure)
}
