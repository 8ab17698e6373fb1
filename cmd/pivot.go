package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/analysis"
)

var (
	pivotIn   inputFlags
	pivotX    string
	pivotY    string
	pivotMode string

	timelineIn inputFlags
)

var pivotCmd = &cobra.Command{
	Use:   "pivot <file>",
	Short: "Aggregate a metric column by a dimension column",
	Long: `Pivot groups records by --x and aggregates --y. Metrics whose name mentions
an amount or total are summed; others are averaged to two decimals.
Scatter mode emits one point per record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := analysis.ParseChartMode(pivotMode)
		if err != nil {
			return err
		}
		b, err := pivotIn.loadBatch(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		for _, col := range []string{pivotX, pivotY} {
			if !b.Set.HasColumn(col) {
				return fmt.Errorf("column %q not found in %s", col, b.Name)
			}
		}
		points := analysis.Pivot(pivotIn.filter().Apply(b.Set, b.Schema), pivotX, pivotY, mode, analysis.DefaultSumPredicate)
		if pivotIn.json {
			return writeJSON(cmd.OutOrStdout(), points)
		}
		agg := "mean"
		if mode == analysis.Scatter {
			agg = "value"
		} else if analysis.DefaultSumPredicate(pivotY) {
			agg = "sum"
		}
		cells := make([][]string, 0, len(points))
		for _, p := range points {
			cells = append(cells, []string{p.Name, strconv.FormatFloat(p.Value, 'f', -1, 64), strconv.Itoa(p.Count)})
		}
		table(cmd.OutOrStdout(), []string{pivotX, fmt.Sprintf("%s (%s)", pivotY, agg), "Records"}, cells)
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <file>",
	Short: "Orders in order of placement time with duration and value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := timelineIn.loadBatch(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		points := analysis.Timeline(timelineIn.filter().Apply(b.Set, b.Schema), b.Schema)
		if timelineIn.json {
			return writeJSON(cmd.OutOrStdout(), points)
		}
		cells := make([][]string, 0, len(points))
		for _, p := range points {
			cells = append(cells, []string{
				p.Label, fmt.Sprintf("%.1f", p.Duration), fmt.Sprintf("%.2f", p.Value),
				fmt.Sprintf("%.1f", p.Prep), fmt.Sprintf("%.1f", p.Drive),
			})
		}
		table(cmd.OutOrStdout(), []string{"Time", "Duration", "Order Total", "Prep", "Drive"}, cells)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pivotCmd)
	rootCmd.AddCommand(timelineCmd)
	pivotIn.register(pivotCmd)
	timelineIn.register(timelineCmd)
	pivotCmd.Flags().StringVar(&pivotX, "x", "", "dimension column to group by")
	pivotCmd.Flags().StringVar(&pivotY, "y", "", "metric column to aggregate")
	pivotCmd.Flags().StringVar(&pivotMode, "mode", "bar", "chart mode: bar|line|scatter")
	_ = pivotCmd.MarkFlagRequired("x")
	_ = pivotCmd.MarkFlagRequired("y")
}
