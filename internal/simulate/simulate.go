// Package simulate estimates the cost and support time saved by an
// automated remediation rule replayed over historical orders.
package simulate

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
)

// Action is an automated remediation.
type Action string

const (
	Credit5      Action = "credit_5"
	Credit10     Action = "credit_10"
	FullRefund   Action = "full_refund"
	EmailApology Action = "email_apology"
)

// Actions lists the supported remediations.
func Actions() []Action { return []Action{Credit5, Credit10, FullRefund, EmailApology} }

// ParseAction validates a remediation name.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q (want one of credit_5, credit_10, full_refund, email_apology)", s)
}

const (
	// minutesSavedPerAction is the agent handle time one automated action replaces.
	minutesSavedPerAction = 15
	// DefaultHourlyCost values an hour of support agent time.
	DefaultHourlyCost = 25.0
)

var flatCost = map[Action]float64{
	Credit5:      5,
	Credit10:     10,
	EmailApology: 0,
}

// Result is the outcome of a simulation.
type Result struct {
	Threshold  float64 `json:"threshold"`
	Action     Action  `json:"action"`
	Impacted   int     `json:"impactedOrders"`
	Cost       float64 `json:"estimatedCost"`
	HoursSaved float64 `json:"hoursSaved"`
}

// Simulate applies action to every order whose total duration is at least
// threshold minutes.
func Simulate(set *record.Set, cfg schema.Config, threshold float64, action Action) Result {
	res := Result{Threshold: threshold, Action: action}
	durCol := cfg.Column(schema.TotalDuration)
	if durCol == "" || set.Len() == 0 {
		return res
	}
	totalCol := cfg.Column(schema.OrderTotal)
	var totals []float64
	for _, r := range set.Rows {
		if r.Get(durCol).Float() >= threshold {
			totals = append(totals, r.Get(totalCol).Float())
		}
	}
	res.Impacted = len(totals)

	perAction := flatCost[action]
	if action == FullRefund {
		perAction = floats.Sum(totals) / float64(max(res.Impacted, 1))
	}
	res.Cost = float64(res.Impacted) * perAction
	res.HoursSaved = float64(res.Impacted) * minutesSavedPerAction / 60
	return res
}

// LaborValue is the saved agent time priced at hourlyCost.
func (r Result) LaborValue(hourlyCost float64) float64 { return r.HoursSaved * hourlyCost }

// PositiveROI reports whether saved labor is worth more than the payout.
func (r Result) PositiveROI(hourlyCost float64) bool { return r.LaborValue(hourlyCost) > r.Cost }

// Recommendation is a one-line verdict for the operator.
func (r Result) Recommendation(hourlyCost float64) string {
	if r.Impacted == 0 {
		return "No orders match this rule."
	}
	if r.PositiveROI(hourlyCost) {
		return fmt.Sprintf("Positive ROI. Automating saves more in support costs ($%.2f at $%g/hr) than the credit payout ($%.2f).", r.LaborValue(hourlyCost), hourlyCost, r.Cost)
	}
	return fmt.Sprintf("High cost. The payout ($%.2f) exceeds the labor saved ($%.2f at $%g/hr); consider a cheaper action.", r.Cost, r.LaborValue(hourlyCost), hourlyCost)
}
