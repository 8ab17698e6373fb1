package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferExample(t *testing.T) {
	cfg := Infer([]string{"Order Date", "City", "Total Deliver Time (minutes)", "Refund Amount"}, nil)
	assert.Equal(t, "Order Date", cfg.Column(Date))
	assert.Equal(t, "City", cfg.Column(Region))
	assert.Equal(t, "Total Deliver Time (minutes)", cfg.Column(TotalDuration))
	assert.Equal(t, "Refund Amount", cfg.Column(RefundAmount))
	assert.Equal(t, "", cfg.Column(OrderTotal))
	assert.Equal(t, "", cfg.Column(Time))
}

func TestInferEmpty(t *testing.T) {
	cfg := Infer(nil, nil)
	for _, r := range Roles() {
		assert.Equal(t, "", cfg.Column(r), r)
	}
	assert.Len(t, cfg.Missing(), len(Roles()))
}

func TestInferFirstColumnWins(t *testing.T) {
	cfg := Infer([]string{"Zone", "Region", "City"}, nil)
	assert.Equal(t, "Zone", cfg.Column(Region))
}

func TestInferTieKeepsEarlierRule(t *testing.T) {
	cfg := Infer([]string{"Prep Time", "Order Time", "Total Delivery Duration"}, nil)
	assert.Equal(t, "Prep Time", cfg.Column(Time))
	assert.Equal(t, "", cfg.Column(PrepDuration))
	assert.Equal(t, "Total Delivery Duration", cfg.Column(TotalDuration))
}

func TestInferDeliveryExport(t *testing.T) {
	cols := []string{
		"Customer placed order date",
		"Customer placed order time",
		"Restaurant ID",
		"Driver ID",
		"Order total",
		"Amount of discount",
		"Refunded amount",
		"Region",
		"Total Deliver Time (minutes)",
		"Prep Time (mins)",
		"Drive Time (mins)",
	}
	cfg := Infer(cols, nil)
	assert.Equal(t, "Customer placed order date", cfg.Column(Date))
	assert.Equal(t, "Customer placed order time", cfg.Column(Time))
	assert.Equal(t, "Restaurant ID", cfg.Column(RestaurantID))
	assert.Equal(t, "Driver ID", cfg.Column(DriverID))
	assert.Equal(t, "Order total", cfg.Column(OrderTotal))
	assert.Equal(t, "Refunded amount", cfg.Column(RefundAmount))
	assert.Equal(t, "Region", cfg.Column(Region))
	assert.Equal(t, "Total Deliver Time (minutes)", cfg.Column(TotalDuration))
	assert.Equal(t, "Prep Time (mins)", cfg.Column(PrepDuration))
	assert.Equal(t, "Drive Time (mins)", cfg.Column(DriveDuration))

	seen := map[string]Role{}
	for _, r := range Roles() {
		col := cfg.Column(r)
		if col == "" {
			continue
		}
		prev, dup := seen[col]
		assert.False(t, dup, "column %q held by %s and %s", col, prev, r)
		seen[col] = r
	}
}

func TestInferCustomRules(t *testing.T) {
	rules := Rules{{Role: Region, Keywords: []string{"market"}}}
	require.NoError(t, rules.Validate())
	cfg := Infer([]string{"Region", "Market"}, rules)
	assert.Equal(t, "Market", cfg.Column(Region))
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
	assert.Error(t, Rules{{Role: "bogus", Keywords: []string{"x"}}}.Validate())
	assert.Error(t, Rules{{Role: Region}}.Validate())
	assert.Error(t, Rules{{Role: Region, Keywords: []string{"a"}}, {Role: Region, Keywords: []string{"b"}}}.Validate())
	assert.Error(t, Rules{{Role: Region, Keywords: []string{" "}}}.Validate())
}

func TestConfigDisplayAndValidate(t *testing.T) {
	cfg := Config{Region: "City"}
	assert.Equal(t, "City", cfg.Display(Region))
	assert.Equal(t, NotFound, cfg.Display(Date))
	require.NoError(t, cfg.Validate([]string{"City"}))
	assert.Error(t, cfg.Validate([]string{"Zone"}))
	assert.Equal(t, "Region Col", Region.Label())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: \" Zone \"\norder_total: Subtotal\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Zone", cfg.Column(Region))
	assert.Equal(t, "Subtotal", cfg.Column(OrderTotal))
	assert.False(t, cfg.Mapped(Date))

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
