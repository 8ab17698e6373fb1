package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/profile"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

// MaxInsightSamples caps how many records leave the machine for column advice.
const MaxInsightSamples = 3

const insightSystemPrompt = `You are a data architect for a food delivery logistics company.
Analyze the provided column headers and sample rows.

For EACH column, provide:
1. description: what the column represents.
2. kpiUtility: how it can be used for decision making or KPIs.
3. imputationTip: how to handle missing values (e.g. "Fill with 'Unknown'", "Calculate from timestamps").

Reply with a JSON object ONLY, keyed by the exact column header name:
{
  "Customer placed order date": {
    "description": "Date the order was initiated.",
    "kpiUtility": "Daily volume analysis and seasonality trends.",
    "imputationTip": "Cannot impute reliably; consider dropping the row."
  }
}`

// InsightAdvisor asks a chat runtime for per-column guidance. It satisfies
// profile.Advisor.
type InsightAdvisor struct {
	Runtime Runtime
	Model   string
}

var _ profile.Advisor = (*InsightAdvisor)(nil)

func (a *InsightAdvisor) Advise(ctx context.Context, columns []string, samples []record.Record) (map[string]profile.Insight, error) {
	if len(samples) > MaxInsightSamples {
		samples = samples[:MaxInsightSamples]
	}
	payload, err := json.Marshal(map[string]any{"headers": columns, "samples": samples})
	if err != nil {
		return nil, fmt.Errorf("marshal samples: %w", err)
	}
	resp, err := a.Runtime.Generate(ctx, GenerateRequest{
		Model: a.Model,
		Messages: []Message{
			{Role: "system", Content: insightSystemPrompt},
			{Role: "user", Content: string(payload)},
		},
		JSON: true,
	})
	if err != nil {
		return nil, err
	}
	text := stripFences(resp.Text())
	out := map[string]profile.Insight{}
	if text == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode column insights: %w", err)
	}
	return out, nil
}

// stripFences removes a Markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
