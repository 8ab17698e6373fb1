// Package profile scans every column of an import batch and reports data
// quality: missing and malformed cells, an observed format label, and
// reviewer guidance.
package profile

import (
	"context"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

// Representation is the format a column is expected to hold.
type Representation string

const (
	Timestamp Representation = "Timestamp"
	Number    Representation = "Number"
	String    Representation = "String"
)

// Observed format labels.
const (
	ObservedSerialDate = "spreadsheet serial date"
	ObservedSlashDate  = "slash-delimited date"
	ObservedNumeric    = "numeric"
	ObservedText       = "text"
)

// Fallback guidance used when no advisor supplies text.
const (
	FallbackDescription = "Standard data column."
	FallbackKPIUtility  = "General reporting."
	FallbackTipMissing  = "Manual review required"
	FallbackTipClean    = "None needed"
	NoSample            = "N/A"
)

// serialDateFloor separates serial day numbers from ordinary small numbers.
const serialDateFloor = 30000

// KindRule maps header keywords to an expected representation.
type KindRule struct {
	Kind     Representation `mapstructure:"kind" yaml:"kind" json:"kind"`
	Keywords []string       `mapstructure:"keywords" yaml:"keywords" json:"keywords"`
}

// ExpectedKinds is the ordered keyword table; the first matching rule wins
// and unmatched columns are String.
var ExpectedKinds = []KindRule{
	{Kind: Timestamp, Keywords: []string{"date", "time"}},
	{Kind: Number, Keywords: []string{"amount", "total", "%", "minutes"}},
}

// Insight is reviewer guidance for one column.
type Insight struct {
	Description   string `json:"description"`
	KPIUtility    string `json:"kpiUtility"`
	ImputationTip string `json:"imputationTip"`
}

// Advisor supplies optional guidance for a batch. Implementations may
// return an empty map.
type Advisor interface {
	Advise(ctx context.Context, columns []string, samples []record.Record) (map[string]Insight, error)
}

// NopAdvisor never has anything to say.
type NopAdvisor struct{}

func (NopAdvisor) Advise(context.Context, []string, []record.Record) (map[string]Insight, error) {
	return map[string]Insight{}, nil
}

// ColumnProfile is the quality report for one column.
type ColumnProfile struct {
	Name          string         `json:"name"`
	Expected      Representation `json:"expected"`
	Observed      string         `json:"observed"`
	Missing       int            `json:"missing"`
	Invalid       int            `json:"invalid"`
	Sample        string         `json:"sample"`
	Valid         bool           `json:"valid"`
	Description   string         `json:"description"`
	KPIUtility    string         `json:"kpiUtility"`
	ImputationTip string         `json:"imputationTip"`
}

// Status is the reviewer action for the column.
func (p ColumnProfile) Status() string {
	if p.Missing > 0 {
		return "Check SQL"
	}
	return "Ready"
}

// ExpectedKind classifies a column by its name.
func ExpectedKind(name string) Representation {
	lower := strings.ToLower(name)
	for _, r := range ExpectedKinds {
		for _, k := range r.Keywords {
			if strings.Contains(lower, strings.ToLower(k)) {
				return r.Kind
			}
		}
	}
	return String
}

// Profile scans all values of a column. insight may be nil.
func Profile(name string, values []record.Value, insight *Insight) ColumnProfile {
	p := ColumnProfile{Name: name, Expected: ExpectedKind(name), Sample: NoSample}
	var first *record.Value
	for i := range values {
		v := values[i]
		if v.IsMissing() {
			p.Missing++
			continue
		}
		if first == nil {
			first = &values[i]
		}
		if p.Expected == Number && !numberLike(v) {
			p.Invalid++
		}
	}
	if first != nil {
		p.Sample = first.String()
	}
	p.Observed = observed(p.Sample, p.Expected, first != nil)
	p.Valid = p.Invalid == 0

	if insight != nil {
		p.Description = insight.Description
		p.KPIUtility = insight.KPIUtility
		p.ImputationTip = insight.ImputationTip
	}
	if p.Description == "" {
		p.Description = FallbackDescription
	}
	if p.KPIUtility == "" {
		p.KPIUtility = FallbackKPIUtility
	}
	if p.ImputationTip == "" {
		if p.Missing > 0 {
			p.ImputationTip = FallbackTipMissing
		} else {
			p.ImputationTip = FallbackTipClean
		}
	}
	return p
}

// All profiles every column of the set in source order.
func All(set *record.Set, insights map[string]Insight) []ColumnProfile {
	if set == nil {
		return nil
	}
	out := make([]ColumnProfile, 0, len(set.Columns))
	for _, col := range set.Columns {
		var in *Insight
		if v, ok := insights[col]; ok {
			in = &v
		}
		out = append(out, Profile(col, set.Column(col), in))
	}
	return out
}

func numberLike(v record.Value) bool {
	if v.Kind == record.Number {
		return true
	}
	_, ok := record.ParseDecimal(stripChars(v.String(), "$,%"))
	return ok
}

func observed(sample string, expected Representation, present bool) string {
	if !present {
		return ObservedText
	}
	if f, ok := record.ParseDecimal(sample); ok && f > serialDateFloor && expected == Timestamp {
		return ObservedSerialDate
	}
	if strings.Contains(sample, "/") {
		return ObservedSlashDate
	}
	if _, ok := record.ParseDecimal(stripChars(sample, "$,")); ok {
		return ObservedNumeric
	}
	return ObservedText
}

func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}
