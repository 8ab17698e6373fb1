package profile

import "math"

// Health is the share of valid, missing and malformed cells of a column.
type Health struct {
	Name       string  `json:"name"`
	ValidPct   float64 `json:"validPct"`
	MissingPct float64 `json:"missingPct"`
	InvalidPct float64 `json:"invalidPct"`
}

// Summarize converts profile counts to percentages of rows.
func Summarize(profiles []ColumnProfile, rows int) []Health {
	out := make([]Health, 0, len(profiles))
	for _, p := range profiles {
		h := Health{Name: p.Name, ValidPct: 100}
		if rows > 0 {
			h.MissingPct = float64(p.Missing) * 100 / float64(rows)
			h.InvalidPct = float64(p.Invalid) * 100 / float64(rows)
			h.ValidPct = math.Max(0, 100-h.MissingPct-h.InvalidPct)
		}
		out = append(out, h)
	}
	return out
}
