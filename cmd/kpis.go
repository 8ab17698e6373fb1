package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/analysis"
)

var (
	kpisIn      inputFlags
	breakdownIn inputFlags
)

var kpisCmd = &cobra.Command{
	Use:   "kpis <file>",
	Short: "Show headline KPIs and the regional breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := kpisIn.loadBatch(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		rep := analysis.BuildReport(b.Name, b.Set, b.Schema, settings(), kpisIn.filter())
		if kpisIn.json {
			return writeJSON(cmd.OutOrStdout(), rep)
		}
		fmt.Fprint(cmd.OutOrStdout(), rep.Markdown())
		return nil
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <file>",
	Short: "Per-region orders, refunds and average delivery time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := breakdownIn.loadBatch(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		rows := analysis.Breakdown(breakdownIn.filter().Apply(b.Set, b.Schema), b.Schema)
		if breakdownIn.json {
			return writeJSON(cmd.OutOrStdout(), rows)
		}
		cells := make([][]string, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, []string{
				r.Name, strconv.Itoa(r.Orders),
				fmt.Sprintf("$%.2f", r.Refunds), fmt.Sprintf("%.1fm", r.AvgTime),
			})
		}
		table(cmd.OutOrStdout(), []string{"Region", "Orders", "Refunds", "Avg Time"}, cells)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kpisCmd)
	rootCmd.AddCommand(breakdownCmd)
	kpisIn.register(kpisCmd)
	breakdownIn.register(breakdownCmd)
}
