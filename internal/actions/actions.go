// Package actions turns threshold breaches into per-stakeholder follow-ups.
package actions

import (
	"math"
	"strconv"

	"github.com/dhivya90m/LogiSight-Analytics/internal/kpi"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
)

// Stakeholder is who an action item is addressed to.
type Stakeholder string

const (
	Merchant Stakeholder = "Merchant"
	Dasher   Stakeholder = "Dasher"
	Customer Stakeholder = "Customer"
)

// Stakeholders lists the dimensions in evaluation order.
func Stakeholders() []Stakeholder { return []Stakeholder{Merchant, Dasher, Customer} }

// Issue labels and suggested actions.
const (
	IssueSlowPrep   = "Slow Prep Time"
	IssueHighDrive  = "High Drive Time"
	IssueRefund     = "Refund Processed"
	ActionPrepEmail = "Send Process Improvement Email"
	ActionRoute     = "Flag for Route Review"
	ActionFollowUp  = "Personal Follow-up Required"
	ActionApology   = "Automated Apology Sent"
)

// Share of total delivery time attributed to prep and drive when the
// export has no dedicated column.
const (
	prepShare  = 0.3
	driveShare = 0.7
)

// OrderIDColumn is read for the order reference when present.
const OrderIDColumn = "id"

// Item is one suggested follow-up.
type Item struct {
	ID          string      `json:"id"`
	OrderID     string      `json:"orderId"`
	Stakeholder Stakeholder `json:"stakeholder"`
	Issue       string      `json:"issue"`
	Value       float64     `json:"value"`
	Display     string      `json:"display"`
	Suggestion  string      `json:"suggestedAction"`
}

// Evaluate checks every record against the thresholds. Items follow record
// order and, within a record, merchant, dasher, customer.
func Evaluate(set *record.Set, cfg schema.Config, settings kpi.Settings) []Item {
	out := []Item{}
	if set.Len() == 0 {
		return out
	}
	totalCol := cfg.Column(schema.TotalDuration)
	prepCol := cfg.Column(schema.PrepDuration)
	driveCol := cfg.Column(schema.DriveDuration)
	refundCol := cfg.Column(schema.RefundAmount)

	for i, r := range set.Rows {
		order := orderID(r, i)
		total := r.Get(totalCol).Float()

		prep := r.Get(prepCol).Float()
		if prep == 0 {
			prep = total * prepShare
		}
		if prep > settings.MaxPrepMinutes {
			out = append(out, Item{
				ID: "act-m-" + order, OrderID: order, Stakeholder: Merchant,
				Issue: IssueSlowPrep, Value: prep, Display: minutes(prep), Suggestion: ActionPrepEmail,
			})
		}

		drive := r.Get(driveCol).Float()
		if drive == 0 {
			drive = total * driveShare
		}
		if drive > settings.MaxDriveMinutes {
			out = append(out, Item{
				ID: "act-d-" + order, OrderID: order, Stakeholder: Dasher,
				Issue: IssueHighDrive, Value: drive, Display: minutes(drive), Suggestion: ActionRoute,
			})
		}

		if refund := r.Get(refundCol).Float(); refund > 0 {
			suggestion := ActionApology
			if refund > settings.HighRefund {
				suggestion = ActionFollowUp
			}
			out = append(out, Item{
				ID: "act-c-" + order, OrderID: order, Stakeholder: Customer,
				Issue: IssueRefund, Value: refund, Display: "$" + strconv.FormatFloat(refund, 'f', -1, 64), Suggestion: suggestion,
			})
		}
	}
	return out
}

// GroupByStakeholder splits items per stakeholder, keeping their order.
func GroupByStakeholder(items []Item) map[Stakeholder][]Item {
	out := make(map[Stakeholder][]Item, 3)
	for _, it := range items {
		out[it.Stakeholder] = append(out[it.Stakeholder], it)
	}
	return out
}

func orderID(r record.Record, idx int) string {
	if v := r.Get(OrderIDColumn); !v.IsMissing() {
		return v.String()
	}
	return strconv.Itoa(idx + 1)
}

func minutes(v float64) string { return strconv.FormatFloat(math.Round(v), 'f', 0, 64) + "m" }
