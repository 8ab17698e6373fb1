package importer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhivya90m/LogiSight-Analytics/internal/profile"
	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
)

const exportCSV = `Customer placed order date,Customer placed order time,Delivery Region,Total Delivery Duration,Order Total,Refund Amount
45292,0.5,North,42,25.5,0
45292,0.75,,65,40,12
45293,0.25,South,30,18,0
`

type stubAdvisor struct {
	insights map[string]profile.Insight
	err      error
	block    bool
	samples  int
}

func (s *stubAdvisor) Advise(ctx context.Context, _ []string, samples []record.Record) (map[string]profile.Insight, error) {
	s.samples = len(samples)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.insights, s.err
}

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(exportCSV), 0o644))
	return path
}

func TestImportInfersAndProfiles(t *testing.T) {
	adv := &stubAdvisor{insights: map[string]profile.Insight{
		"Delivery Region": {Description: "Zone.", KPIUtility: "SLA by zone.", ImputationTip: "Fill with 'Unknown'"},
	}}
	b, err := Import(context.Background(), writeExport(t), Options{}, adv, nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, "export.csv", b.Name)
	assert.Equal(t, 3, b.Rows())
	assert.Equal(t, 3, adv.samples)
	assert.Equal(t, "Delivery Region", b.Schema.Column(schema.Region))
	assert.Equal(t, "Total Delivery Duration", b.Schema.Column(schema.TotalDuration))

	require.Len(t, b.Profiles, 6)
	region := b.Profiles[2]
	assert.Equal(t, "Delivery Region", region.Name)
	assert.Equal(t, 1, region.Missing)
	assert.Equal(t, "Zone.", region.Description)
	assert.Equal(t, "Check SQL", region.Status())
	assert.Equal(t, profile.FallbackDescription, b.Profiles[0].Description)
	require.Len(t, b.Health, 6)
}

func TestImportAdvisorFailureFallsBack(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	b, err := Import(context.Background(), writeExport(t), Options{}, &stubAdvisor{err: errors.New("quota")}, log)
	require.NoError(t, err)
	assert.Equal(t, profile.FallbackDescription, b.Profiles[2].Description)
	assert.Equal(t, profile.FallbackTipMissing, b.Profiles[2].ImputationTip)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "quota")
}

func TestImportAdvisorTimeout(t *testing.T) {
	start := time.Now()
	b, err := Import(context.Background(), writeExport(t), Options{AdvisorTimeout: 50 * time.Millisecond}, &stubAdvisor{block: true}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, profile.FallbackKPIUtility, b.Profiles[0].KPIUtility)
}

func TestImportPinnedSchema(t *testing.T) {
	dir := t.TempDir()
	pinned := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(pinned, []byte("region: Delivery Region\ntotal_duration: Order Total\n"), 0o644))
	b, err := Import(context.Background(), writeExport(t), Options{SchemaFile: pinned}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Order Total", b.Schema.Column(schema.TotalDuration))
	assert.Equal(t, "", b.Schema.Column(schema.Date))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("region: Nope\n"), 0o644))
	_, err = Import(context.Background(), writeExport(t), Options{SchemaFile: bad}, nil, nil)
	assert.Error(t, err)
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(context.Background(), filepath.Join(t.TempDir(), "none.csv"), Options{}, nil, nil)
	assert.Error(t, err)
}

func TestReplaceReprofiles(t *testing.T) {
	b, err := Import(context.Background(), writeExport(t), Options{}, nil, nil)
	require.NoError(t, err)
	cleaned := b.Set.Where(func(r record.Record) bool { return !r.Get("Delivery Region").IsMissing() })
	b.Replace(cleaned)
	assert.Equal(t, 2, b.Rows())
	assert.Equal(t, 0, b.Profiles[2].Missing)
	assert.Equal(t, "Ready", b.Profiles[2].Status())
}
