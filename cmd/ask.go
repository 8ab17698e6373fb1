package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/ai"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/workbench"
)

var (
	askIn       inputFlags
	askProvider string
	askModel    string
	askRun      bool
)

var askCmd = &cobra.Command{
	Use:   "ask <file> <question...>",
	Short: "Ask a question about an export and get an answer with SQL",
	Long: `Ask sends the column names and up to fifteen sample records to the configured
model and prints its answer together with a SQL query over the 'deliveries'
table. With --run the query is executed locally against the full export.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args[1:], " "))
		if question == "" {
			return fmt.Errorf("question is empty")
		}
		rt, provider, model, err := buildRuntime(cfg, runtimeOptions{ProviderFlag: askProvider, ModelFlag: askModel})
		if err != nil {
			return err
		}
		b, err := askIn.loadBatch(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		an := &ai.Analyst{Runtime: rt, Model: model}
		if cfg != nil {
			an.MaxPromptTokens = cfg.AnalystMaxTokens
		}
		ans := an.Ask(cmd.Context(), b.Set, question)
		if ans.Err != nil {
			log.Warn("analyst unavailable", "provider", provider, "model", model, "err", ai.Hint(ans.Err, provider, model))
		}

		var rows *record.Set
		if askRun && runnable(ans.SQL) {
			wb, err := workbench.Open(cmd.Context(), b.Set)
			if err != nil {
				return err
			}
			defer wb.Close()
			res, err := wb.Exec(cmd.Context(), ans.SQL)
			if err != nil {
				return fmt.Errorf("run suggested SQL: %w", err)
			}
			if res.Mutated {
				return fmt.Errorf("suggested SQL modifies the table; run it with 'logisight sql' instead")
			}
			rows = res.Set
		}

		out := cmd.OutOrStdout()
		if askIn.json {
			return writeJSON(out, struct {
				ai.Answer
				Rows []record.Record `json:"rows,omitempty"`
			}{ans, rowsOf(rows)})
		}
		fmt.Fprintln(out, ans.Answer)
		if ans.SQL != "" {
			fmt.Fprintf(out, "\n[SQL]\n%s\n", ans.SQL)
		}
		if rows != nil {
			fmt.Fprintln(out, "\n[RESULT]")
			return printSet(out, rows, false)
		}
		return nil
	},
}

// runnable reports whether the analyst returned a real statement.
func runnable(sql string) bool {
	s := strings.TrimSpace(sql)
	return s != "" && s != ai.SQLUnparsed && !strings.HasPrefix(s, "--")
}

func rowsOf(set *record.Set) []record.Record {
	if set == nil {
		return nil
	}
	return set.Rows
}

func init() {
	rootCmd.AddCommand(askCmd)
	askIn.registerSource(askCmd)
	askCmd.Flags().StringVar(&askProvider, "provider", "", "override provider: openrouter|openai|ollama")
	askCmd.Flags().StringVar(&askModel, "model", "", "override model")
	askCmd.Flags().BoolVar(&askRun, "run", false, "execute the returned SQL and print its rows")
}
