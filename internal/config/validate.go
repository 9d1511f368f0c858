package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ilohealth/hcilo/internal/errors"
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hcilo only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade hcilo or lower the version field.")
	}

	if strings.TrimSpace(cfg.Inventory) == "" {
		return errors.New(errors.ErrConfig,
			"Inventory path is empty",
			"Set 'inventory' in your config or pass --inventory.")
	}

	if err := validateReport(cfg.Report); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'report' section in your config.")
	}

	if err := validateILO(cfg.ILO); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'ilo' section in your config.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your config.")
	}

	return nil
}

func validateReport(r ReportConfig) error {
	if strings.TrimSpace(r.Dir) == "" {
		return fmt.Errorf("report.dir is empty")
	}
	if strings.TrimSpace(r.Prefix) == "" {
		return fmt.Errorf("report.prefix is empty")
	}
	if strings.ContainsAny(r.Prefix, `/\`) {
		return fmt.Errorf("report.prefix %q contains a path separator", r.Prefix)
	}
	if !hexColor.MatchString(r.HeaderColor) {
		return fmt.Errorf("report.header_color %q is not a 6-digit hex color", r.HeaderColor)
	}
	return nil
}

func validateILO(c ILOConfig) error {
	if c.Timeout <= 0 {
		return fmt.Errorf("ilo.timeout must be positive, got %s", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("ilo.retries cannot be negative, got %d", c.Retries)
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	switch o.Color {
	case "", "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("output.color %q is invalid, use auto, always, or never", o.Color)
	}
}
