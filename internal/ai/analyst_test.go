package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

type fakeRuntime struct {
	reply string
	err   error
	got   GenerateRequest
}

func (f *fakeRuntime) Generate(_ context.Context, req GenerateRequest) (*GenerateResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &GenerateResponse{Choices: []Choice{{Message: Message{Role: "assistant", Content: f.reply}}}}, nil
}

func rows(n int) *record.Set {
	set := &record.Set{Columns: []string{"id", "Region"}}
	for i := 0; i < n; i++ {
		set.Rows = append(set.Rows, record.Record{"id": record.Num(float64(i + 1)), "Region": record.Str("North")})
	}
	return set
}

func TestAnalystParsesJSON(t *testing.T) {
	rt := &fakeRuntime{reply: "```json\n{\"answer\":\"North is slowest.\",\"sql\":\"SELECT 1\"}\n```"}
	a := &Analyst{Runtime: rt, Model: "m"}
	got := a.Ask(context.Background(), rows(20), "Which region is slowest?")
	assert.Equal(t, "North is slowest.", got.Answer)
	assert.Equal(t, "SELECT 1", got.SQL)

	require.Len(t, rt.got.Messages, 2)
	assert.True(t, rt.got.JSON)
	assert.Equal(t, "Which region is slowest?", rt.got.Messages[1].Content)
	sys := rt.got.Messages[0].Content
	assert.Contains(t, sys, "'deliveries'")
	assert.Contains(t, sys, `"Region"`)
	assert.Contains(t, sys, `"id":15`)
	assert.NotContains(t, sys, `"id":16`)
}

func TestAnalystFallbacks(t *testing.T) {
	ctx := context.Background()
	failing := &Analyst{Runtime: &fakeRuntime{err: errors.New("boom")}}
	got := failing.Ask(ctx, rows(1), "q")
	assert.Equal(t, AnswerUnavailable, got.Answer)
	assert.Equal(t, "", got.SQL)
	assert.Error(t, got.Err)

	empty := &Analyst{Runtime: &fakeRuntime{reply: "  "}}
	got = empty.Ask(ctx, rows(1), "q")
	assert.Equal(t, AnswerEmpty, got.Answer)
	assert.Equal(t, "", got.SQL)

	prose := &Analyst{Runtime: &fakeRuntime{reply: "Deliveries look fine."}}
	got = prose.Ask(ctx, nil, "q")
	assert.Equal(t, "Deliveries look fine.", got.Answer)
	assert.Equal(t, SQLUnparsed, got.SQL)
}

func TestAnalystPromptLimit(t *testing.T) {
	rt := &fakeRuntime{reply: "{}"}
	a := &Analyst{Runtime: rt, MaxPromptTokens: 10}
	a.Ask(context.Background(), rows(15), "q")
	assert.NotContains(t, rt.got.Messages[0].Content, `"id":15`)
}

func TestInsightAdvisor(t *testing.T) {
	rt := &fakeRuntime{reply: `{"Region":{"description":"Delivery zone.","kpiUtility":"Regional SLAs.","imputationTip":"Fill with 'Unknown'"}}`}
	adv := &InsightAdvisor{Runtime: rt, Model: "m"}
	set := rows(5)
	got, err := adv.Advise(context.Background(), set.Columns, set.Rows)
	require.NoError(t, err)
	assert.Equal(t, "Delivery zone.", got["Region"].Description)
	assert.Equal(t, "Fill with 'Unknown'", got["Region"].ImputationTip)

	user := rt.got.Messages[1].Content
	assert.Equal(t, 3, strings.Count(user, `"Region":"North"`))
	assert.Contains(t, user, `"headers":["id","Region"]`)
}

func TestInsightAdvisorEmptyAndErrors(t *testing.T) {
	ctx := context.Background()
	got, err := (&InsightAdvisor{Runtime: &fakeRuntime{reply: ""}}).Advise(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = (&InsightAdvisor{Runtime: &fakeRuntime{reply: "not json"}}).Advise(ctx, nil, nil)
	assert.Error(t, err)

	_, err = (&InsightAdvisor{Runtime: &fakeRuntime{err: errors.New("down")}}).Advise(ctx, nil, nil)
	assert.Error(t, err)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(` {"a":1} `))
}
