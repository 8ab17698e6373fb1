// Package importer turns an export file into a profiled import batch: the
// record set, its inferred or pinned schema, and per-column quality.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dhivya90m/LogiSight-Analytics/internal/profile"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
	"github.com/dhivya90m/LogiSight-Analytics/internal/source"
)

// DefaultAdvisorTimeout bounds the advisory call when Options leaves it unset.
const DefaultAdvisorTimeout = 30 * time.Second

// Options controls one import.
type Options struct {
	Source source.Options
	// SchemaFile pins the role mapping instead of inferring it.
	SchemaFile string
	// Rules drive inference; nil uses schema.DefaultRules.
	Rules schema.Rules

	AdvisorTimeout time.Duration
}

// Batch is one imported file.
type Batch struct {
	ID         uuid.UUID                  `json:"id"`
	Name       string                     `json:"name"`
	ImportedAt time.Time                  `json:"importedAt"`
	Set        *record.Set                `json:"-"`
	Schema     schema.Config              `json:"schema"`
	Profiles   []profile.ColumnProfile    `json:"profiles"`
	Health     []profile.Health           `json:"health"`
	Insights   map[string]profile.Insight `json:"-"`
}

// Rows is the committed record count.
func (b *Batch) Rows() int { return b.Set.Len() }

// Import reads path and builds its batch. advisor may be nil.
func Import(ctx context.Context, path string, opts Options, advisor profile.Advisor, log *slog.Logger) (*Batch, error) {
	set, err := source.ReadFile(path, opts.Source)
	if err != nil {
		return nil, err
	}
	return FromSet(ctx, filepath.Base(path), set, opts, advisor, log)
}

// FromSet builds a batch from records already in memory.
func FromSet(ctx context.Context, name string, set *record.Set, opts Options, advisor profile.Advisor, log *slog.Logger) (*Batch, error) {
	if log == nil {
		log = slog.Default()
	}
	cfg, err := resolveSchema(set, opts)
	if err != nil {
		return nil, err
	}
	b := &Batch{
		ID:         uuid.New(),
		Name:       name,
		ImportedAt: time.Now().UTC(),
		Set:        set,
		Schema:     cfg,
	}
	log.Debug("schema resolved", "batch", b.ID, "rows", set.Len(), "columns", len(set.Columns), "unmapped", len(cfg.Missing()))

	b.Insights = advise(ctx, set, opts.AdvisorTimeout, advisor, log.With("batch", b.ID))
	b.profile()
	return b, nil
}

// Replace commits a new record set, such as a workbench snapshot, and
// re-profiles it. The schema and advisory insights are kept.
func (b *Batch) Replace(set *record.Set) {
	b.Set = set
	b.profile()
}

func (b *Batch) profile() {
	b.Profiles = profile.All(b.Set, b.Insights)
	b.Health = profile.Summarize(b.Profiles, b.Set.Len())
}

func resolveSchema(set *record.Set, opts Options) (schema.Config, error) {
	if opts.SchemaFile != "" {
		cfg, err := schema.LoadConfig(opts.SchemaFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(set.Columns); err != nil {
			return nil, fmt.Errorf("schema %s: %w", filepath.Base(opts.SchemaFile), err)
		}
		return cfg, nil
	}
	rules := opts.Rules
	if len(rules) == 0 {
		rules = schema.DefaultRules()
	}
	return schema.Infer(set.Columns, rules), nil
}

func advise(ctx context.Context, set *record.Set, timeout time.Duration, advisor profile.Advisor, log *slog.Logger) map[string]profile.Insight {
	if advisor == nil || set.Len() == 0 {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultAdvisorTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	insights, err := advisor.Advise(ctx, set.Columns, set.Head(3))
	if err != nil {
		log.Warn("column insights unavailable, using defaults", "err", err)
		return nil
	}
	log.Debug("column insights received", "columns", len(insights), "elapsed", time.Since(start))
	return insights
}
