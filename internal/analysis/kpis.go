// Package analysis computes the dashboard aggregates: headline KPIs, the
// regional breakdown, free-form pivots and the intraday timeline.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dhivya90m/LogiSight-Analytics/internal/kpi"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
)

// UnknownCategory labels records without a region.
const UnknownCategory = "Unknown"

// KPIReport holds the headline metrics.
type KPIReport struct {
	Orders      int     `json:"orders"`
	AvgDuration float64 `json:"avgDuration"`
	Revenue     float64 `json:"revenue"`
	LateCount   int     `json:"lateCount"`
	LatePct     float64 `json:"latePct"`
}

// CategoryRow is one region of the breakdown.
type CategoryRow struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Refunds float64 `json:"refunds"`
	AvgTime float64 `json:"avgTime"`
}

// numbers coerces a column to floats; an unmapped column yields nil.
func numbers(set *record.Set, col string) []float64 {
	if col == "" {
		return nil
	}
	vals := set.Column(col)
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v.Float()
	}
	return out
}

// KPIs computes order count, mean duration, revenue and the share of
// deliveries slower than the late threshold.
func KPIs(set *record.Set, cfg schema.Config, settings kpi.Settings) KPIReport {
	rep := KPIReport{Orders: set.Len()}
	if rep.Orders == 0 {
		return rep
	}
	if d := numbers(set, cfg.Column(schema.TotalDuration)); d != nil {
		rep.AvgDuration = stat.Mean(d, nil)
		limit := settings.LateThreshold()
		for _, x := range d {
			if x > limit {
				rep.LateCount++
			}
		}
		rep.LatePct = float64(rep.LateCount) * 100 / float64(rep.Orders)
	}
	if rev := numbers(set, cfg.Column(schema.OrderTotal)); rev != nil {
		rep.Revenue = floats.Sum(rev)
	}
	return rep
}

// Breakdown groups records by region in first-seen order.
func Breakdown(set *record.Set, cfg schema.Config) []CategoryRow {
	if set.Len() == 0 {
		return []CategoryRow{}
	}
	regionCol := cfg.Column(schema.Region)
	durCol := cfg.Column(schema.TotalDuration)
	refundCol := cfg.Column(schema.RefundAmount)

	type acc struct {
		row   CategoryRow
		total float64
	}
	var order []string
	groups := map[string]*acc{}
	for _, r := range set.Rows {
		name := UnknownCategory
		if v := r.Get(regionCol); !v.IsMissing() {
			name = v.String()
		}
		g, ok := groups[name]
		if !ok {
			g = &acc{row: CategoryRow{Name: name}}
			groups[name] = g
			order = append(order, name)
		}
		g.row.Orders++
		g.total += r.Get(durCol).Float()
		g.row.Refunds += r.Get(refundCol).Float()
	}
	out := make([]CategoryRow, 0, len(order))
	for _, name := range order {
		g := groups[name]
		g.row.AvgTime = round(g.total/float64(g.row.Orders), 1)
		out = append(out, g.row)
	}
	return out
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
