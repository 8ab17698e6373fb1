package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/analysis"
	"github.com/dhivya90m/LogiSight-Analytics/internal/importer"
	"github.com/dhivya90m/LogiSight-Analytics/internal/utils"
	"github.com/dhivya90m/LogiSight-Analytics/internal/workbench"
)

var (
	reportIn    inputFlags
	reportOut   string
	reportQuiet bool
)

var reportCmd = &cobra.Command{
	Use:   "report <files...>",
	Short: "Write a dashboard for each of several exports (globs allowed)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if reportOut != "" {
			if err := os.MkdirAll(reportOut, 0o755); err != nil {
				return err
			}
		}

		total := len(files)
		for i, path := range files {
			if !reportQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			b, err := reportIn.loadBatch(cmd.Context(), path, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			md := dashboard(b, reportIn.filter())
			if reportOut == "" {
				fmt.Fprintln(out, md)
				continue
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			target := freeName(reportOut, base, ".dashboard.md")
			if filepath.Base(target) != base+".dashboard.md" && !reportQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Detected existing dashboard, writing to %s to avoid overwrite.\n", filepath.Base(target))
			}
			if err := utils.SafeWriteFile(target, []byte(md)); err != nil {
				return fmt.Errorf("write dashboard: %w", err)
			}
			if !reportQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", target)
			}
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths into a sorted, deduplicated
// file list.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// freeName returns dir/base+suffix, or the first dir/base__N+suffix that does
// not exist yet.
func freeName(dir, base, suffix string) string {
	path := filepath.Join(dir, base+suffix)
	for idx := 2; ; idx++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s__%d%s", base, idx, suffix))
	}
}

// dashboard renders the KPI report followed by column quality and cleaning
// suggestions.
func dashboard(b *importer.Batch, f analysis.Filter) string {
	var sb strings.Builder
	sb.WriteString(analysis.BuildReport(b.Name, b.Set, b.Schema, settings(), f).Markdown())

	sb.WriteString("\n[DATA QUALITY]\n")
	rows := make([][]string, 0, len(b.Profiles))
	for i, p := range b.Profiles {
		rows = append(rows, []string{
			p.Name, string(p.Expected),
			fmt.Sprintf("%d", p.Missing), fmt.Sprintf("%d", p.Invalid),
			fmt.Sprintf("%.0f%%", b.Health[i].ValidPct), p.Status(),
		})
	}
	table(&sb, []string{"Column", "Expected", "Missing", "Invalid", "Valid", "Status"}, rows)

	if s := workbench.Suggestions(b.Profiles, b.Schema); len(s) > 0 {
		sb.WriteString("\n[SUGGESTED SQL]\n")
		for _, x := range s {
			sb.WriteString(fmt.Sprintf("- %s: `%s`\n", x.Label, x.SQL))
		}
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportIn.register(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "directory for <name>.dashboard.md files (default prints)")
	reportCmd.Flags().BoolVar(&reportQuiet, "quiet", false, "suppress progress and non-essential output")
}
