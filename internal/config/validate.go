package config

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Valid enum values for configuration fields.
var (
	ValidVehicleTypes = []string{"carros", "motos", "caminhoes"}
	ValidThemeNames   = []string{"none", "default", "nord", "gruvbox"}
	ValidThemeModes   = []string{"auto", "light", "dark"}
)

// ValidateVehicleType validates a vehicle type against ValidVehicleTypes.
// Exported for use in CLI flag validation.
func ValidateVehicleType(vt string) error {
	return validateEnum(vt, "vehicle_type", ValidVehicleTypes)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

func validateLocale(tag string) error {
	if tag == "" {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("invalid catalog.locale %q: %w", tag, err)
	}
	return nil
}

func (c Config) validate() error {
	if err := ValidatePath(c.DataDir, "data_dir"); err != nil {
		return err
	}
	if err := validateEnum(c.Catalog.VehicleType, "catalog.vehicle_type", ValidVehicleTypes); err != nil {
		return err
	}
	if c.Catalog.ProbeTimeoutMs < 0 {
		return fmt.Errorf("catalog.probe_timeout_ms must be positive, got %d", c.Catalog.ProbeTimeoutMs)
	}
	if c.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("catalog.requests_per_second must not be negative, got %v", c.Catalog.RequestsPerSecond)
	}
	if err := validateLocale(c.Catalog.Locale); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
