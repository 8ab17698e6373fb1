package analysis

import (
	"sort"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
	"github.com/dhivya90m/LogiSight-Analytics/internal/timefmt"
)

// TimelinePoint is one order placed on the intraday timeline.
type TimelinePoint struct {
	Label    string  `json:"label"`
	Duration float64 `json:"duration"`
	Value    float64 `json:"value"`
	Prep     float64 `json:"prep"`
	Drive    float64 `json:"drive"`
}

// Timeline orders records by the clock time of the mapped time column.
// Records with an unreadable time sort as midnight; ties keep record order.
func Timeline(set *record.Set, cfg schema.Config) []TimelinePoint {
	if set.Len() == 0 {
		return []TimelinePoint{}
	}
	timeCol := cfg.Column(schema.Time)
	rows := append([]record.Record(nil), set.Rows...)
	hours := func(r record.Record) float64 {
		return timefmt.ClockHours(timefmt.NormalizeTime(r.Get(timeCol)))
	}
	sort.SliceStable(rows, func(i, j int) bool { return hours(rows[i]) < hours(rows[j]) })
	out := make([]TimelinePoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, TimelinePoint{
			Label:    timefmt.NormalizeTime(r.Get(timeCol)),
			Duration: r.Get(cfg.Column(schema.TotalDuration)).Float(),
			Value:    r.Get(cfg.Column(schema.OrderTotal)).Float(),
			Prep:     r.Get(cfg.Column(schema.PrepDuration)).Float(),
			Drive:    r.Get(cfg.Column(schema.DriveDuration)).Float(),
		})
	}
	return out
}
