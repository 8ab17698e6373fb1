package analysis

import (
	"fmt"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/kpi"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
)

// Report is the dashboard view of a filtered record set.
type Report struct {
	Name       string        `json:"name,omitempty"`
	Filter     Filter        `json:"filter"`
	Settings   kpi.Settings  `json:"settings"`
	KPIs       KPIReport     `json:"kpis"`
	Categories []CategoryRow `json:"categories"`
	Options    Options       `json:"options"`
	Missing    []schema.Role `json:"unmappedRoles,omitempty"`
}

// BuildReport filters the set and computes KPIs and the regional breakdown.
// Filter options are taken from the unfiltered set.
func BuildReport(name string, set *record.Set, cfg schema.Config, settings kpi.Settings, f Filter) *Report {
	view := f.Apply(set, cfg)
	return &Report{
		Name:       name,
		Filter:     f,
		Settings:   settings,
		KPIs:       KPIs(view, cfg, settings),
		Categories: Breakdown(view, cfg),
		Options:    FilterOptions(set, cfg),
		Missing:    cfg.Missing(),
	}
}

// Markdown renders a compact report suitable for terminals or prompts.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DASHBOARD]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Date: %s | Region: %s\n\n", orAll(r.Filter.Date), orAll(r.Filter.Region)))

	b.WriteString("[KPIS]\n")
	b.WriteString(fmt.Sprintf("- Total Orders: %d\n", r.KPIs.Orders))
	b.WriteString(fmt.Sprintf("- Avg Delivery Time: %.1fm\n", r.KPIs.AvgDuration))
	b.WriteString(fmt.Sprintf("- Total Revenue: $%.0f\n", r.KPIs.Revenue))
	b.WriteString(fmt.Sprintf("- Late Order %%: %.1f%% (> %g min)\n\n", r.KPIs.LatePct, r.Settings.LateThreshold()))

	b.WriteString("[REGIONS]\n")
	if len(r.Categories) == 0 {
		b.WriteString("(no records)\n")
	}
	for _, c := range r.Categories {
		b.WriteString(fmt.Sprintf("- %s: orders %d, refunds $%.2f, avg time %.1fm\n", safeVal(c.Name), c.Orders, c.Refunds, c.AvgTime))
	}

	if len(r.Missing) > 0 {
		b.WriteString("\n[UNMAPPED]\n")
		for _, role := range r.Missing {
			b.WriteString(fmt.Sprintf("- %s: %s\n", role.Label(), schema.NotFound))
		}
	}
	return b.String()
}

func orAll(s string) string {
	if !active(s) {
		return All
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
