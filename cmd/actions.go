package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/actions"
	"github.com/dhivya90m/LogiSight-Analytics/internal/simulate"
)

var (
	actionsIn          inputFlags
	actionsStakeholder string

	simulateIn        inputFlags
	simulateThreshold float64
	simulateAction    string
)

var actionsCmd = &cobra.Command{
	Use:   "actions <file>",
	Short: "List merchant, dasher and customer follow-ups for threshold breaches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var only actions.Stakeholder
		if actionsStakeholder != "" {
			for _, s := range actions.Stakeholders() {
				if strings.EqualFold(string(s), actionsStakeholder) {
					only = s
				}
			}
			if only == "" {
				return fmt.Errorf("unknown --stakeholder %q (use merchant, dasher or customer)", actionsStakeholder)
			}
		}
		b, err := actionsIn.loadBatch(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		items := actions.Evaluate(actionsIn.filter().Apply(b.Set, b.Schema), b.Schema, settings())
		groups := actions.GroupByStakeholder(items)
		if only != "" {
			items = groups[only]
			if items == nil {
				items = []actions.Item{}
			}
		}
		out := cmd.OutOrStdout()
		if actionsIn.json {
			return writeJSON(out, items)
		}
		for _, s := range actions.Stakeholders() {
			if only != "" && s != only {
				continue
			}
			list := groups[s]
			fmt.Fprintf(out, "[%s] %d\n", strings.ToUpper(string(s)), len(list))
			for _, it := range list {
				fmt.Fprintf(out, "- #%s %s (%s): %s\n", it.OrderID, it.Issue, it.Display, it.Suggestion)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <file>",
	Short: "Estimate the cost and agent time saved by an automated late-order remedy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := simulate.ParseAction(simulateAction)
		if err != nil {
			return err
		}
		b, err := simulateIn.loadBatch(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		res := simulate.Simulate(simulateIn.filter().Apply(b.Set, b.Schema), b.Schema, simulateThreshold, action)
		rate := hourlyCost()
		out := cmd.OutOrStdout()
		if simulateIn.json {
			return writeJSON(out, struct {
				simulate.Result
				LaborValue     float64 `json:"laborValue"`
				PositiveROI    bool    `json:"positiveRoi"`
				Recommendation string  `json:"recommendation"`
			}{res, res.LaborValue(rate), res.PositiveROI(rate), res.Recommendation(rate)})
		}
		fmt.Fprintf(out, "Rule: IF delivery time >= %g min THEN %s\n", res.Threshold, res.Action)
		fmt.Fprintf(out, "- Impacted orders: %d\n", res.Impacted)
		fmt.Fprintf(out, "- Estimated cost: $%.2f\n", res.Cost)
		fmt.Fprintf(out, "- Agent hours saved: %.2f ($%.2f at $%g/hr)\n", res.HoursSaved, res.LaborValue(rate), rate)
		fmt.Fprintln(out, res.Recommendation(rate))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(simulateCmd)
	actionsIn.register(actionsCmd)
	simulateIn.register(simulateCmd)
	actionsCmd.Flags().StringVar(&actionsStakeholder, "stakeholder", "", "only one stakeholder: merchant|dasher|customer")
	simulateCmd.Flags().Float64Var(&simulateThreshold, "threshold", 60, "minimum delivery time in minutes for the rule to apply")
	simulateCmd.Flags().StringVar(&simulateAction, "action", string(simulate.Credit5), "remedy: credit_5|credit_10|full_refund|email_apology")
}
