// Package schema maps loosely named export headers onto the semantic roles
// the analytics engine understands.
package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role is a semantic column role.
type Role string

const (
	Date          Role = "date"
	Time          Role = "time"
	Region        Role = "region"
	TotalDuration Role = "total_duration"
	OrderTotal    Role = "order_total"
	RefundAmount  Role = "refund_amount"
	RestaurantID  Role = "restaurant_id"
	DriverID      Role = "driver_id"
	PrepDuration  Role = "prep_duration"
	DriveDuration Role = "drive_duration"
)

// Roles lists every role in canonical order.
func Roles() []Role {
	return []Role{Date, Time, Region, TotalDuration, OrderTotal, RefundAmount, RestaurantID, DriverID, PrepDuration, DriveDuration}
}

var roleLabels = map[Role]string{
	Date:          "Date Col",
	Time:          "Time Col",
	Region:        "Region Col",
	TotalDuration: "Duration Col",
	OrderTotal:    "Order Total Col",
	RefundAmount:  "Refund Col",
	RestaurantID:  "Restaurant ID Col",
	DriverID:      "Driver ID Col",
	PrepDuration:  "Prep Time Col",
	DriveDuration: "Drive Time Col",
}

// Label is the display name of the role.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// Known reports whether r is one of the defined roles.
func (r Role) Known() bool {
	_, ok := roleLabels[r]
	return ok
}

// NotFound is shown in place of an unmapped column.
const NotFound = "Not Found"

// Config maps each role to a source column name. An empty or absent entry
// means the role is unmapped.
type Config map[Role]string

// Column returns the column mapped to role, or "".
func (c Config) Column(role Role) string {
	if c == nil {
		return ""
	}
	return c[role]
}

// Mapped reports whether role has a column.
func (c Config) Mapped(role Role) bool { return c.Column(role) != "" }

// Missing lists unmapped roles in canonical order.
func (c Config) Missing() []Role {
	var out []Role
	for _, r := range Roles() {
		if !c.Mapped(r) {
			out = append(out, r)
		}
	}
	return out
}

// Display returns the mapped column or NotFound.
func (c Config) Display(role Role) string {
	if col := c.Column(role); col != "" {
		return col
	}
	return NotFound
}

// Validate checks that every mapped column exists among columns.
func (c Config) Validate(columns []string) error {
	have := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		have[col] = struct{}{}
	}
	var errs []error
	for _, r := range Roles() {
		col := c.Column(r)
		if col == "" {
			continue
		}
		if _, ok := have[col]; !ok {
			errs = append(errs, fmt.Errorf("%s: column %q not in dataset", r, col))
		}
	}
	for r := range c {
		if !r.Known() {
			errs = append(errs, fmt.Errorf("unknown role %q", r))
		}
	}
	return errors.Join(errs...)
}

// LoadConfig reads a pinned role mapping from a YAML or JSON file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	for r, col := range c {
		c[r] = strings.TrimSpace(col)
	}
	return c, nil
}
