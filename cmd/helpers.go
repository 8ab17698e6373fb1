package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/ai"
	"github.com/dhivya90m/LogiSight-Analytics/internal/analysis"
	cfgpkg "github.com/dhivya90m/LogiSight-Analytics/internal/config"
	"github.com/dhivya90m/LogiSight-Analytics/internal/importer"
	"github.com/dhivya90m/LogiSight-Analytics/internal/kpi"
	"github.com/dhivya90m/LogiSight-Analytics/internal/profile"
	"github.com/dhivya90m/LogiSight-Analytics/internal/simulate"
	"github.com/dhivya90m/LogiSight-Analytics/internal/source"
	"github.com/dhivya90m/LogiSight-Analytics/internal/utils"
)

// inputFlags are shared by every command that reads an export file.
type inputFlags struct {
	schemaFile string
	sheet      string
	encoding   string
	delimiter  string
	maxRows    int
	date       string
	region     string
	json       bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	f.registerSource(cmd)
	cmd.Flags().StringVar(&f.date, "date", analysis.All, "only records on this normalized date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.region, "region", analysis.All, "only records in this region")
}

// registerSource adds the reading flags without the record filters.
func (f *inputFlags) registerSource(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.schemaFile, "schema", "", "YAML/JSON file pinning roles to columns (skips inference)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "CSV/TSV text encoding: utf-8|utf-16|latin1|windows-1252")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "maximum rows to read (0 = unlimited)")
	cmd.Flags().BoolVar(&f.json, "json", false, "emit JSON instead of text")
}

func (f *inputFlags) filter() analysis.Filter {
	return analysis.Filter{Date: f.date, Region: f.region}
}

func (f *inputFlags) options() (importer.Options, error) {
	opt := importer.Options{
		SchemaFile: f.schemaFile,
		Source:     source.Options{Sheet: f.sheet, Encoding: f.encoding, MaxRows: f.maxRows},
	}
	switch f.delimiter {
	case "":
	case ",":
		opt.Source.Delimiter = ','
	case ";":
		opt.Source.Delimiter = ';'
	case "\t", "tab":
		opt.Source.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", f.delimiter)
	}
	if cfg != nil {
		opt.Rules = cfg.Rules()
		opt.AdvisorTimeout = time.Duration(cfg.AdvisorTimeoutSec) * time.Second
	}
	return opt, nil
}

// loadBatch imports path. advisor may be nil.
func (f *inputFlags) loadBatch(ctx context.Context, path string, advisor profile.Advisor) (*importer.Batch, error) {
	opt, err := f.options()
	if err != nil {
		return nil, err
	}
	b, err := importer.Import(ctx, path, opt, advisor, log)
	if err != nil {
		return nil, err
	}
	if missing := b.Schema.Missing(); len(missing) > 0 {
		log.Info("unmapped roles", "file", b.Name, "roles", missing)
	}
	return b, nil
}

func settings() kpi.Settings {
	if cfg == nil {
		return kpi.Defaults()
	}
	return cfg.KPI
}

func hourlyCost() float64 {
	if cfg == nil || cfg.HourlyCost <= 0 {
		return simulate.DefaultHourlyCost
	}
	return cfg.HourlyCost
}

type runtimeOptions struct {
	ProviderFlag string
	ModelFlag    string
}

// buildRuntime resolves provider, credentials and retry knobs from config,
// environment and flags.
func buildRuntime(c *cfgpkg.Global, opts runtimeOptions) (ai.Runtime, string, string, error) {
	if c == nil {
		loaded, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return nil, "", "", err
		}
		c = loaded
	}
	httpTimeout := 60 * time.Second
	if c.HTTPTimeoutSec > 0 {
		httpTimeout = time.Duration(c.HTTPTimeoutSec) * time.Second
	}
	providerName := c.Provider
	if opts.ProviderFlag != "" {
		providerName = opts.ProviderFlag
	}
	providerName = ai.NormalizeProvider(providerName)
	model := c.Model
	if opts.ModelFlag != "" {
		model = opts.ModelFlag
	}

	rc := ai.RuntimeConfig{
		HTTPTimeout: httpTimeout,
		RetryMax:    c.RetryMaxAttempts,
		BaseDelay:   time.Duration(c.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:    time.Duration(c.RetryMaxDelayMs) * time.Millisecond,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Host:        c.OllamaHost,
	}
	if rc.APIKey == "" {
		// widely used names for the same credential
		for _, k := range []string{"OPENROUTER_API_KEY", "OPENAI_API_KEY"} {
			if v := os.Getenv(k); v != "" {
				rc.APIKey = v
				break
			}
		}
	}
	rt, ok := ai.GetRuntime(providerName, rc)
	if !ok {
		return nil, providerName, model, fmt.Errorf("provider not supported: %s (use openrouter, openai or ollama)", providerName)
	}
	return rt, providerName, model, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// table renders rows as a Markdown table. Pipes and newlines in cells are
// replaced so the layout survives.
func table(w io.Writer, header []string, rows [][]string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))
	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = strings.ReplaceAll(strings.ReplaceAll(c, "\n", " "), "|", "/")
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
}
