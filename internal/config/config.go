package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dhivya90m/LogiSight-Analytics/internal/kpi"
	"github.com/dhivya90m/LogiSight-Analytics/internal/schema"
)

// EnvPrefix namespaces environment overrides, e.g. LOGISIGHT_API_KEY.
const EnvPrefix = "LOGISIGHT"

// Global configuration structure.
type Global struct {
	KPI kpi.Settings `mapstructure:"kpi" yaml:"kpi"`

	// Generative collaborators
	Provider          string `mapstructure:"provider" yaml:"provider"`
	Model             string `mapstructure:"model" yaml:"model"`
	APIKey            string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL           string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	OllamaHost        string `mapstructure:"ollama_host" yaml:"ollama_host"`
	AdvisorEnabled    bool   `mapstructure:"advisor_enabled" yaml:"advisor_enabled"`
	AdvisorTimeoutSec int    `mapstructure:"advisor_timeout_sec" yaml:"advisor_timeout_sec"`
	AnalystMaxTokens  int    `mapstructure:"analyst_max_prompt_tokens" yaml:"analyst_max_prompt_tokens"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	// Simulation labor cost in dollars per agent hour.
	HourlyCost float64 `mapstructure:"hourly_cost" yaml:"hourly_cost"`
	// SchemaRules replaces the built-in header keyword table when set.
	SchemaRules schema.Rules `mapstructure:"schema_rules" yaml:"schema_rules,omitempty"`
	LogLevel    string       `mapstructure:"log_level" yaml:"log_level"`
}

// Dir is the default configuration directory, ~/.logisight.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".logisight"), nil
}

// Rules returns the configured schema rules or the built-in defaults.
func (c *Global) Rules() schema.Rules {
	if len(c.SchemaRules) > 0 {
		return c.SchemaRules
	}
	return schema.DefaultRules()
}

// Validate checks values a user may have edited by hand.
func (c *Global) Validate() error {
	if err := c.KPI.Validate(); err != nil {
		return err
	}
	if c.HourlyCost < 0 {
		return fmt.Errorf("hourly_cost must not be negative, got %v", c.HourlyCost)
	}
	if len(c.SchemaRules) > 0 {
		if err := c.SchemaRules.Validate(); err != nil {
			return fmt.Errorf("schema_rules: %w", err)
		}
	}
	return nil
}

// Save writes the given configuration to cfgFile. If cfgFile is empty,
// it writes to ~/.logisight/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := kpi.Defaults()
	v.SetDefault("kpi.max_prep_minutes", d.MaxPrepMinutes)
	v.SetDefault("kpi.max_drive_minutes", d.MaxDriveMinutes)
	v.SetDefault("kpi.high_refund", d.HighRefund)
	v.SetDefault("kpi.late_delivery_minutes", d.LateDeliveryMinutes)

	v.SetDefault("provider", "openrouter")
	v.SetDefault("model", "google/gemini-2.5-flash")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("ollama_host", "http://127.0.0.1:11434")
	v.SetDefault("advisor_enabled", false)
	v.SetDefault("advisor_timeout_sec", 30)
	v.SetDefault("analyst_max_prompt_tokens", 8000)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	v.SetDefault("hourly_cost", 25.0)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, a malformed one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}
