package analysis

import (
	"sort"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
	"github.com/dhivya90m/LogiSight-Analytics/internal/timefmt"
)

// All disables a filter dimension.
const All = "ALL"

// Filter narrows the record set before aggregation. Empty or ALL means no
// restriction on that dimension.
type Filter struct {
	Date   string `json:"date,omitempty"`
	Region string `json:"region,omitempty"`
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

// Apply returns the records whose normalized date and region match the
// filter. A dimension whose role is unmapped is ignored.
func (f Filter) Apply(set *record.Set, cfg schema.Config) *record.Set {
	dateCol := cfg.Column(schema.Date)
	regionCol := cfg.Column(schema.Region)
	useDate := active(f.Date) && dateCol != ""
	useRegion := active(f.Region) && regionCol != ""
	if !useDate && !useRegion {
		return set.Clone()
	}
	return set.Where(func(r record.Record) bool {
		if useDate && timefmt.NormalizeDate(r.Get(dateCol)) != strings.TrimSpace(f.Date) {
			return false
		}
		if useRegion && r.Get(regionCol).String() != f.Region {
			return false
		}
		return true
	})
}

// Options lists the values a user can filter on.
type Options struct {
	Dates   []string `json:"dates"`
	Regions []string `json:"regions"`
}

// FilterOptions returns the distinct normalized dates and the distinct
// regions of the set.
func FilterOptions(set *record.Set, cfg schema.Config) Options {
	return Options{
		Dates:   distinctDates(set, cfg.Column(schema.Date)),
		Regions: set.Distinct(cfg.Column(schema.Region)),
	}
}

func distinctDates(set *record.Set, col string) []string {
	if col == "" {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, v := range set.Column(col) {
		d := timefmt.NormalizeDate(v)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
