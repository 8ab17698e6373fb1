package workbench

import (
	"fmt"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/profile"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
)

// ExtremeDurationMinutes flags deliveries that are almost certainly data
// errors.
const ExtremeDurationMinutes = 180

// QualityColumn receives data quality flags.
const QualityColumn = "dataQualityIssue"

// Suggestion is a ready-to-run cleaning statement.
type Suggestion struct {
	Label string `json:"label"`
	SQL   string `json:"sql"`
}

// Suggestions proposes cleaning statements from the import profile.
func Suggestions(profiles []profile.ColumnProfile, cfg schema.Config) []Suggestion {
	var out []Suggestion
	regionCol := cfg.Column(schema.Region)
	for _, p := range profiles {
		isRegion := p.Name == regionCol || (regionCol == "" && strings.Contains(strings.ToLower(p.Name), "region"))
		if !isRegion || p.Missing == 0 {
			continue
		}
		col := Quote(p.Name)
		out = append(out, Suggestion{
			Label: fmt.Sprintf("Remove %d rows with missing Region", p.Missing),
			SQL:   fmt.Sprintf("DELETE FROM %s WHERE %s IS NULL OR %s = ''", Table, col, col),
		})
		break
	}
	if dur := cfg.Column(schema.TotalDuration); dur != "" {
		out = append(out, Suggestion{
			Label: "Flag Long Duration Orders",
			SQL: fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s; UPDATE %s SET %s = 'EXTREME_DURATION' WHERE %s > %d",
				Table, QualityColumn, Table, QualityColumn, Quote(dur), ExtremeDurationMinutes),
		})
	}
	return out
}
