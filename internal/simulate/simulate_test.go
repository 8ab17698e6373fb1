package simulate

import (
	"strings"
	"testing"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = schema.Config{schema.TotalDuration: "mins", schema.OrderTotal: "total"}

func orders() *record.Set {
	return &record.Set{Rows: []record.Record{
		{"mins": record.Num(30), "total": record.Num(100)},
		{"mins": record.Num(60), "total": record.Num(20)},
		{"mins": record.Num(90), "total": record.Num(40)},
	}}
}

func TestEmptyImpactedSet(t *testing.T) {
	for _, a := range Actions() {
		r := Simulate(orders(), cfg, 500, a)
		assert.Equal(t, 0, r.Impacted, a)
		assert.Equal(t, 0.0, r.Cost, a)
		assert.Equal(t, 0.0, r.HoursSaved, a)
	}
	r := Simulate(&record.Set{}, cfg, 0, FullRefund)
	assert.Equal(t, 0.0, r.Cost)
}

func TestFlatActions(t *testing.T) {
	r := Simulate(orders(), cfg, 60, Credit5)
	assert.Equal(t, 2, r.Impacted, "threshold is inclusive")
	assert.Equal(t, 10.0, r.Cost)
	assert.Equal(t, 0.5, r.HoursSaved)

	assert.Equal(t, 20.0, Simulate(orders(), cfg, 60, Credit10).Cost)
	assert.Equal(t, 0.0, Simulate(orders(), cfg, 60, EmailApology).Cost)
}

func TestFullRefundUsesImpactedMean(t *testing.T) {
	r := Simulate(orders(), cfg, 60, FullRefund)
	// mean of 20 and 40 applied twice
	assert.InDelta(t, 60, r.Cost, 1e-9)
}

func TestUnmappedDuration(t *testing.T) {
	r := Simulate(orders(), schema.Config{}, 0, Credit5)
	assert.Equal(t, 0, r.Impacted)
}

func TestRecommendation(t *testing.T) {
	r := Simulate(orders(), cfg, 60, EmailApology)
	assert.True(t, r.PositiveROI(DefaultHourlyCost))
	assert.True(t, strings.HasPrefix(r.Recommendation(DefaultHourlyCost), "Positive ROI"))

	r = Simulate(orders(), cfg, 60, FullRefund)
	assert.False(t, r.PositiveROI(DefaultHourlyCost))
	assert.True(t, strings.HasPrefix(r.Recommendation(DefaultHourlyCost), "High cost"))

	r = Simulate(orders(), cfg, 999, Credit5)
	assert.Equal(t, "No orders match this rule.", r.Recommendation(DefaultHourlyCost))
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Credit_10 ")
	require.NoError(t, err)
	assert.Equal(t, Credit10, a)
	_, err = ParseAction("voucher")
	assert.Error(t, err)
}
