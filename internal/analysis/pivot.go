package analysis

import (
	"fmt"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

// ChartMode selects how a pivot is shaped.
type ChartMode string

const (
	Bar     ChartMode = "bar"
	Line    ChartMode = "line"
	Scatter ChartMode = "scatter"
)

// ParseChartMode accepts bar, line or scatter in any case.
func ParseChartMode(s string) (ChartMode, error) {
	switch m := ChartMode(strings.ToLower(strings.TrimSpace(s))); m {
	case Bar, Line, Scatter:
		return m, nil
	case "":
		return Bar, nil
	default:
		return "", fmt.Errorf("unknown chart mode %q (want bar, line or scatter)", s)
	}
}

// SumPredicate decides from the metric column name whether grouped values
// are summed (true) or averaged.
type SumPredicate func(metric string) bool

// DefaultSumPredicate sums metrics whose name mentions an amount or total.
func DefaultSumPredicate(metric string) bool {
	m := strings.ToLower(metric)
	return strings.Contains(m, "amount") || strings.Contains(m, "total")
}

// PivotPoint is one emitted point. Scatter points carry the raw X cell;
// grouped points carry its string form in Name.
type PivotPoint struct {
	Name  string       `json:"name,omitempty"`
	X     record.Value `json:"x"`
	Value float64      `json:"value"`
	Count int          `json:"count,omitempty"`
}

// Pivot aggregates metric y over group x. Scatter mode emits one point per
// record. Bar and line modes group by the string form of x in first-seen
// order and emit the sum or the two-decimal mean according to isSum.
func Pivot(set *record.Set, x, y string, mode ChartMode, isSum SumPredicate) []PivotPoint {
	if x == "" || y == "" || set.Len() == 0 {
		return []PivotPoint{}
	}
	if isSum == nil {
		isSum = DefaultSumPredicate
	}
	if mode == Scatter {
		out := make([]PivotPoint, 0, set.Len())
		for _, r := range set.Rows {
			xv := r.Get(x)
			out = append(out, PivotPoint{Name: xv.String(), X: xv, Value: r.Get(y).Float(), Count: 1})
		}
		return out
	}

	var order []string
	groups := map[string]*PivotPoint{}
	for _, r := range set.Rows {
		xv := r.Get(x)
		key := xv.String()
		p, ok := groups[key]
		if !ok {
			p = &PivotPoint{Name: key, X: xv}
			groups[key] = p
			order = append(order, key)
		}
		p.Value += r.Get(y).Float()
		p.Count++
	}
	sum := isSum(y)
	out := make([]PivotPoint, 0, len(order))
	for _, k := range order {
		p := *groups[k]
		if !sum {
			p.Value = round(p.Value/float64(p.Count), 2)
		}
		out = append(out, p)
	}
	return out
}
