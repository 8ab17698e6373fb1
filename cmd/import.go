package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/ai"
	"github.com/dhivya90m/LogiSight-Analytics/internal/importer"
	"github.com/dhivya90m/LogiSight-Analytics/internal/profile"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
	"github.com/dhivya90m/LogiSight-Analytics/internal/workbench"
)

var (
	importIn       inputFlags
	importAdvise   bool
	importProvider string
	importModel    string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Map columns to delivery roles and review data quality",
	Long: `Import reads an export, infers which column plays each delivery role and
profiles every column: expected format, observed format, missing and malformed
cells. With --advise, a language model adds a description, KPI usage and an
imputation tip per column; only the header and three sample rows are sent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var advisor profile.Advisor
		advise := importAdvise || (cfg != nil && cfg.AdvisorEnabled && !cmd.Flags().Changed("advise"))
		if advise {
			rt, _, model, err := buildRuntime(cfg, runtimeOptions{ProviderFlag: importProvider, ModelFlag: importModel})
			if err != nil {
				return err
			}
			advisor = &ai.InsightAdvisor{Runtime: rt, Model: model}
		}
		b, err := importIn.loadBatch(cmd.Context(), args[0], advisor)
		if err != nil {
			return err
		}
		suggestions := workbench.Suggestions(b.Profiles, b.Schema)

		out := cmd.OutOrStdout()
		if importIn.json {
			return writeJSON(out, struct {
				*importer.Batch
				Rows        int                    `json:"rows"`
				Suggestions []workbench.Suggestion `json:"suggestions"`
			}{b, b.Rows(), suggestions})
		}

		fmt.Fprintf(out, "✓ Imported %s: %d rows, %d columns (batch %s)\n\n", b.Name, b.Rows(), len(b.Set.Columns), b.ID)
		fmt.Fprintln(out, "[SCHEMA]")
		var rows [][]string
		for _, r := range schema.Roles() {
			rows = append(rows, []string{r.Label(), b.Schema.Display(r)})
		}
		table(out, []string{"Role", "Column"}, rows)

		fmt.Fprintln(out, "\n[COLUMNS]")
		rows = rows[:0]
		for i, p := range b.Profiles {
			h := b.Health[i]
			rows = append(rows, []string{
				p.Name, string(p.Expected), p.Observed,
				strconv.Itoa(p.Missing), strconv.Itoa(p.Invalid),
				fmt.Sprintf("%.0f%%", h.ValidPct), p.Sample, p.Status(),
			})
		}
		table(out, []string{"Column", "Expected", "Observed", "Missing", "Invalid", "Valid", "Sample", "Status"}, rows)

		if advise {
			fmt.Fprintln(out, "\n[INSIGHTS]")
			for _, p := range b.Profiles {
				fmt.Fprintf(out, "- %s: %s KPI: %s Missing values: %s\n", p.Name, p.Description, p.KPIUtility, p.ImputationTip)
			}
		}
		if len(suggestions) > 0 {
			fmt.Fprintln(out, "\n[SUGGESTED SQL]")
			for _, s := range suggestions {
				fmt.Fprintf(out, "- %s\n  %s\n", s.Label, s.SQL)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importIn.registerSource(importCmd)
	importCmd.Flags().BoolVar(&importAdvise, "advise", false, "ask the configured model for column insights")
	importCmd.Flags().StringVar(&importProvider, "provider", "", "override provider: openrouter|openai|ollama")
	importCmd.Flags().StringVar(&importModel, "model", "", "override model")
}
