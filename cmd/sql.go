package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/importer"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/source"
	"github.com/dhivya90m/LogiSight-Analytics/internal/utils"
	"github.com/dhivya90m/LogiSight-Analytics/internal/workbench"
)

var (
	sqlIn      inputFlags
	sqlSuggest bool
	sqlApply   []int
	sqlOut     string
	sqlLimit   int
)

var sqlCmd = &cobra.Command{
	Use:   "sql <file> [statement...]",
	Short: "Query or clean an export with SQL against the 'deliveries' table",
	Long: `The export is loaded into an in-memory SQLite table named 'deliveries'.
SELECT-like statements print their rows. Other statements change the table;
with --out the cleaned table is written as CSV or JSON (by extension) and
re-profiled. --suggest lists cleaning statements derived from the profile and
--apply runs suggestions by number.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		b, err := sqlIn.loadBatch(ctx, args[0], nil)
		if err != nil {
			return err
		}
		suggestions := workbench.Suggestions(b.Profiles, b.Schema)
		if sqlSuggest {
			if sqlIn.json {
				return writeJSON(out, suggestions)
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "(no suggestions)")
			}
			for i, s := range suggestions {
				fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, s.Label, s.SQL)
			}
			return nil
		}

		var statements []string
		for _, n := range sqlApply {
			if n < 1 || n > len(suggestions) {
				return fmt.Errorf("--apply %d: only %d suggestions available", n, len(suggestions))
			}
			statements = append(statements, suggestions[n-1].SQL)
		}
		if len(args) > 1 {
			statements = append(statements, strings.Join(args[1:], " "))
		}
		if len(statements) == 0 {
			return fmt.Errorf("nothing to run: pass a statement, --apply or --suggest")
		}

		wb, err := workbench.Open(ctx, b.Set)
		if err != nil {
			return err
		}
		defer wb.Close()

		mutated := false
		for _, stmt := range statements {
			res, err := wb.Exec(ctx, stmt)
			if err != nil {
				return err
			}
			log.Debug("statement executed", "sql", stmt, "mutated", res.Mutated, "affected", res.Affected)
			if res.Mutated {
				mutated = true
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ %d rows affected, table now has %d rows\n", res.Affected, res.Set.Len())
				continue
			}
			view := res.Set
			if sqlLimit > 0 && view.Len() > sqlLimit {
				view = &record.Set{Columns: view.Columns, Rows: view.Head(sqlLimit)}
			}
			if err := printSet(out, view, sqlIn.json); err != nil {
				return err
			}
		}

		if !mutated {
			return nil
		}
		snap, err := wb.Snapshot(ctx)
		if err != nil {
			return err
		}
		b.Replace(snap)
		if sqlOut == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: changes not saved, use --out to write the cleaned table")
			return nil
		}
		if err := saveSet(sqlOut, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Committed %d rows to %s\n", b.Rows(), sqlOut)
		return nil
	},
}

func printSet(w io.Writer, set *record.Set, asJSON bool) error {
	if asJSON {
		return source.WriteJSON(w, set)
	}
	cells := make([][]string, 0, set.Len())
	for _, r := range set.Rows {
		row := make([]string, len(set.Columns))
		for i, c := range set.Columns {
			row[i] = r.Get(c).String()
		}
		cells = append(cells, row)
	}
	table(w, set.Columns, cells)
	return nil
}

// saveSet writes the committed table in the format implied by path.
func saveSet(path string, b *importer.Batch) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := source.WriteJSON(&buf, b.Set); err != nil {
			return err
		}
	case ".csv", "":
		if err := source.WriteCSV(&buf, b.Set); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %s (use .csv or .json)", filepath.Ext(path))
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func init() {
	rootCmd.AddCommand(sqlCmd)
	sqlIn.registerSource(sqlCmd)
	sqlCmd.Flags().BoolVar(&sqlSuggest, "suggest", false, "list suggested cleaning statements")
	sqlCmd.Flags().IntSliceVar(&sqlApply, "apply", nil, "run suggested statements by number (repeatable)")
	sqlCmd.Flags().StringVar(&sqlOut, "out", "", "write the cleaned table to this .csv or .json file")
	sqlCmd.Flags().IntVar(&sqlLimit, "limit", 50, "maximum rows to print for queries (0 = all)")
}
