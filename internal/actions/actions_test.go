package actions

import (
	"testing"

	"github.com/dhivya90m/LogiSight-Analytics/internal/kpi"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = schema.Config{
	schema.TotalDuration: "total",
	schema.PrepDuration:  "prep",
	schema.DriveDuration: "drive",
	schema.RefundAmount:  "refund",
}

func TestHighRefundEscalates(t *testing.T) {
	set := &record.Set{Rows: []record.Record{{"id": record.Str("o1"), "refund": record.Num(60)}}}
	items := Evaluate(set, cfg, kpi.Defaults())
	require.Len(t, items, 1)
	assert.Equal(t, Customer, items[0].Stakeholder)
	assert.Equal(t, ActionFollowUp, items[0].Suggestion)
	assert.Equal(t, "act-c-o1", items[0].ID)
	assert.Equal(t, "$60", items[0].Display)
}

func TestLowRefundIsAutomated(t *testing.T) {
	set := &record.Set{Rows: []record.Record{{"refund": record.Num(12.5)}, {"refund": record.Num(50)}}}
	items := Evaluate(set, cfg, kpi.Defaults())
	require.Len(t, items, 2)
	assert.Equal(t, ActionApology, items[0].Suggestion)
	assert.Equal(t, "$12.5", items[0].Display)
	assert.Equal(t, ActionApology, items[1].Suggestion, "threshold is exclusive")
	assert.Equal(t, "2", items[1].OrderID)
}

func TestUnmappedPrepFallsBackToShare(t *testing.T) {
	inferred := schema.Infer([]string{"Prep Time", "Order Time", "Total Delivery Duration"}, nil)
	require.False(t, inferred.Mapped(schema.PrepDuration))
	set := &record.Set{Rows: []record.Record{{
		"Prep Time": record.Num(5), "Order Time": record.Str("1:00 PM"), "Total Delivery Duration": record.Num(80),
	}}}
	items := Evaluate(set, inferred, kpi.Defaults())
	require.Len(t, items, 2)
	assert.Equal(t, Merchant, items[0].Stakeholder)
	assert.InDelta(t, 24.0, items[0].Value, 1e-9)
	assert.Equal(t, Dasher, items[1].Stakeholder)
	assert.InDelta(t, 56.0, items[1].Value, 1e-9)
}

func TestDedicatedColumnsAndOrder(t *testing.T) {
	set := &record.Set{Rows: []record.Record{
		{"id": record.Num(7), "total": record.Num(30), "prep": record.Num(25), "drive": record.Num(50), "refund": record.Num(5)},
		{"id": record.Num(8), "total": record.Num(30), "prep": record.Num(5), "drive": record.Num(5)},
	}}
	items := Evaluate(set, cfg, kpi.Defaults())
	require.Len(t, items, 3)
	assert.Equal(t, []Stakeholder{Merchant, Dasher, Customer}, []Stakeholder{items[0].Stakeholder, items[1].Stakeholder, items[2].Stakeholder})
	assert.Equal(t, "act-m-7", items[0].ID)
	assert.Equal(t, "25m", items[0].Display)
	assert.Equal(t, IssueHighDrive, items[1].Issue)
	assert.Equal(t, ActionRoute, items[1].Suggestion)
}

func TestFallbackShares(t *testing.T) {
	// 100 minutes: prep 30 > 20, drive 70 > 45.
	set := &record.Set{Rows: []record.Record{{"total": record.Num(100)}}}
	items := Evaluate(set, cfg, kpi.Defaults())
	require.Len(t, items, 2)
	assert.InDelta(t, 30, items[0].Value, 1e-9)
	assert.InDelta(t, 70, items[1].Value, 1e-9)

	// 60 minutes: prep 18, drive 42, both within limits.
	set = &record.Set{Rows: []record.Record{{"total": record.Num(60)}}}
	assert.Empty(t, Evaluate(set, cfg, kpi.Defaults()))

	// Unmapped prep/drive columns fall back to the total.
	items = Evaluate(&record.Set{Rows: []record.Record{{"total": record.Num(100)}}}, schema.Config{schema.TotalDuration: "total"}, kpi.Defaults())
	assert.Len(t, items, 2)
}

func TestSettingsSnapshot(t *testing.T) {
	set := &record.Set{Rows: []record.Record{{"total": record.Num(100)}}}
	loose := kpi.Settings{MaxPrepMinutes: 100, MaxDriveMinutes: 100, HighRefund: 50}
	assert.Empty(t, Evaluate(set, cfg, loose))
	assert.Len(t, Evaluate(set, cfg, kpi.Defaults()), 2)
}

func TestGroupByStakeholder(t *testing.T) {
	set := &record.Set{Rows: []record.Record{
		{"total": record.Num(100), "refund": record.Num(1)},
		{"total": record.Num(100)},
	}}
	g := GroupByStakeholder(Evaluate(set, cfg, kpi.Defaults()))
	require.Len(t, g[Merchant], 2)
	assert.Equal(t, "act-m-1", g[Merchant][0].ID)
	assert.Equal(t, "act-m-2", g[Merchant][1].ID)
	assert.Len(t, g[Customer], 1)
	assert.Empty(t, Evaluate(&record.Set{}, cfg, kpi.Defaults()))
}
