package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/utils"
	"github.com/dhivya90m/LogiSight-Analytics/internal/workbench"
)

// Analyst replies used when the model cannot produce a usable answer.
const (
	AnswerUnavailable = "Unable to analyze data at this time. Please check your API configuration."
	AnswerEmpty       = "No response generated."
	SQLUnparsed       = "-- SQL generation failed to parse"
)

// MaxAnalystSamples caps how many records are sent as context.
const MaxAnalystSamples = 15

// Answer is the analyst's reply to one question.
type Answer struct {
	Answer string `json:"answer"`
	SQL    string `json:"sql"`
	// Err holds the runtime failure behind AnswerUnavailable, if any.
	Err error `json:"-"`
}

// Analyst answers natural-language questions about a record set and
// proposes SQL against the workbench table.
type Analyst struct {
	Runtime Runtime
	Model   string
	// MaxPromptTokens truncates the sample context when positive.
	MaxPromptTokens int
}

// Ask never fails: runtime errors and malformed replies map to fixed answers.
func (a *Analyst) Ask(ctx context.Context, set *record.Set, question string) Answer {
	resp, err := a.Runtime.Generate(ctx, GenerateRequest{
		Model: a.Model,
		Messages: []Message{
			{Role: "system", Content: a.systemPrompt(set)},
			{Role: "user", Content: question},
		},
		JSON: true,
	})
	if err != nil {
		return Answer{Answer: AnswerUnavailable, Err: err}
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return Answer{Answer: AnswerEmpty}
	}
	var out Answer
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return Answer{Answer: text, SQL: SQLUnparsed}
	}
	return out
}

func (a *Analyst) systemPrompt(set *record.Set) string {
	var cols []string
	var samples []record.Record
	if set != nil {
		cols = set.Columns
		samples = set.Head(MaxAnalystSamples)
	}
	data, err := json.Marshal(samples)
	if err != nil {
		data = []byte("[]")
	}
	sample := string(data)
	if a.MaxPromptTokens > 0 {
		sample = utils.TruncateToTokenLimit(sample, a.MaxPromptTokens)
	}

	var b strings.Builder
	b.WriteString("You are a senior support automation analyst and SQL expert.\n\n")
	fmt.Fprintf(&b, "Dataset schema (table name: '%s'):\n", workbench.Table)
	for _, c := range cols {
		fmt.Fprintf(&b, "- %s\n", workbench.Quote(c))
	}
	fmt.Fprintf(&b, "\nSample data:\n%s\n\n", sample)
	b.WriteString("Your task:\n")
	b.WriteString("1. Answer the user's query analytically based on the data.\n")
	b.WriteString("2. Generate a standard SQL query that would retrieve this answer from the table.\n\n")
	b.WriteString("Reply with a JSON object ONLY:\n")
	fmt.Fprintf(&b, "{\"answer\": \"Your analytical text here...\", \"sql\": \"SELECT ... FROM %s ...\"}\n", workbench.Table)
	return b.String()
}
