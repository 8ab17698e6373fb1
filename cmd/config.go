package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhivya90m/LogiSight-Analytics/internal/ai"
	cfgpkg "github.com/dhivya90m/LogiSight-Analytics/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set LogiSight configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "kpi.max_prep_minutes: %g\n", c.KPI.MaxPrepMinutes)
		fmt.Fprintf(out, "kpi.max_drive_minutes: %g\n", c.KPI.MaxDriveMinutes)
		fmt.Fprintf(out, "kpi.high_refund: %g\n", c.KPI.HighRefund)
		fmt.Fprintf(out, "kpi.late_delivery_minutes: %g\n", c.KPI.LateDeliveryMinutes)
		fmt.Fprintf(out, "provider: %s\n", c.Provider)
		fmt.Fprintf(out, "model: %s\n", c.Model)
		fmt.Fprintf(out, "api_key: %s\n", mask(c.APIKey))
		if c.BaseURL != "" {
			fmt.Fprintf(out, "base_url: %s\n", c.BaseURL)
		}
		fmt.Fprintf(out, "ollama_host: %s\n", c.OllamaHost)
		fmt.Fprintf(out, "advisor_enabled: %t\n", c.AdvisorEnabled)
		fmt.Fprintf(out, "advisor_timeout_sec: %d\n", c.AdvisorTimeoutSec)
		fmt.Fprintf(out, "analyst_max_prompt_tokens: %d\n", c.AnalystMaxTokens)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Fprintf(out, "retry_max_attempts: %d\n", c.RetryMaxAttempts)
		fmt.Fprintf(out, "retry_base_delay_ms: %d\n", c.RetryBaseDelayMs)
		fmt.Fprintf(out, "retry_max_delay_ms: %d\n", c.RetryMaxDelayMs)
		fmt.Fprintf(out, "hourly_cost: %g\n", c.HourlyCost)
		if len(c.SchemaRules) > 0 {
			fmt.Fprintf(out, "schema_rules: %d custom roles\n", len(c.SchemaRules))
		}
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		if k, ok := strings.CutPrefix(key, "kpi."); ok {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid number for %s: %w", key, err)
			}
			s, err := c.KPI.With(k, f)
			if err != nil {
				return err
			}
			c.KPI = s
		} else if err := setScalar(c, key, val); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setScalar(c *cfgpkg.Global, key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "provider":
		p := ai.NormalizeProvider(val)
		if _, ok := ai.GetRuntime(p, ai.RuntimeConfig{}); !ok {
			return fmt.Errorf("invalid provider: %s (use openrouter, openai or ollama)", val)
		}
		c.Provider = p
	case "model":
		c.Model = val
	case "api_key":
		c.APIKey = val
	case "base_url":
		c.BaseURL = val
	case "ollama_host":
		c.OllamaHost = val
	case "advisor_enabled":
		b, perr := strconv.ParseBool(val)
		if perr != nil {
			return fmt.Errorf("invalid bool for advisor_enabled: %v", val)
		}
		c.AdvisorEnabled = b
	case "advisor_timeout_sec":
		c.AdvisorTimeoutSec, err = atoi()
	case "analyst_max_prompt_tokens":
		c.AnalystMaxTokens, err = atoi()
	case "http_timeout_sec":
		c.HTTPTimeoutSec, err = atoi()
	case "retry_max_attempts":
		c.RetryMaxAttempts, err = atoi()
	case "retry_base_delay_ms":
		c.RetryBaseDelayMs, err = atoi()
	case "retry_max_delay_ms":
		c.RetryMaxDelayMs, err = atoi()
	case "hourly_cost":
		f, perr := strconv.ParseFloat(val, 64)
		if perr != nil {
			return fmt.Errorf("invalid float for hourly_cost: %w", perr)
		}
		c.HourlyCost = f
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

// ensureConfig returns the loaded configuration, loading it when the root
// initializer has not run.
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return c, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
