// Package kpi holds the operational thresholds every computation reads.
package kpi

import (
	"errors"
	"fmt"
)

const defaultLateMinutes = 60

// Settings is an immutable snapshot of the user-editable thresholds. It is
// passed by value into every computation.
type Settings struct {
	MaxPrepMinutes      float64 `mapstructure:"max_prep_minutes" yaml:"max_prep_minutes" json:"maxPrepMinutes"`
	MaxDriveMinutes     float64 `mapstructure:"max_drive_minutes" yaml:"max_drive_minutes" json:"maxDriveMinutes"`
	HighRefund          float64 `mapstructure:"high_refund" yaml:"high_refund" json:"highRefund"`
	LateDeliveryMinutes float64 `mapstructure:"late_delivery_minutes" yaml:"late_delivery_minutes" json:"lateDeliveryMinutes"`
}

// Defaults returns the out-of-the-box thresholds.
func Defaults() Settings {
	return Settings{
		MaxPrepMinutes:      20,
		MaxDriveMinutes:     45,
		HighRefund:          50,
		LateDeliveryMinutes: defaultLateMinutes,
	}
}

// LateThreshold is the late-delivery cutoff, falling back to 60 minutes when
// unset.
func (s Settings) LateThreshold() float64 {
	if s.LateDeliveryMinutes <= 0 {
		return defaultLateMinutes
	}
	return s.LateDeliveryMinutes
}

// Validate rejects negative thresholds.
func (s Settings) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative (got %g)", name, v))
		}
	}
	check("max_prep_minutes", s.MaxPrepMinutes)
	check("max_drive_minutes", s.MaxDriveMinutes)
	check("high_refund", s.HighRefund)
	check("late_delivery_minutes", s.LateDeliveryMinutes)
	return errors.Join(errs...)
}

// With returns a copy with one field replaced by its config key.
func (s Settings) With(key string, v float64) (Settings, error) {
	switch key {
	case "max_prep_minutes":
		s.MaxPrepMinutes = v
	case "max_drive_minutes":
		s.MaxDriveMinutes = v
	case "high_refund":
		s.HighRefund = v
	case "late_delivery_minutes":
		s.LateDeliveryMinutes = v
	default:
		return s, fmt.Errorf("unknown KPI setting %q", key)
	}
	return s, s.Validate()
}
