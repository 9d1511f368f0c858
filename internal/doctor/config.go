package doctor

import (
	"fmt"

	"github.com/ilohealth/hcilo/internal/config"
)

// ConfigFileCheck reports which config file is in effect.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return result(c, StatusFail, fmt.Sprintf("Error finding config: %v", err),
			"Check the --config path")
	}
	if path == "" {
		return result(c, StatusWarn, "No config file, using defaults",
			"Run 'hcilo init' to write one")
	}
	return result(c, StatusPass, "Config file: "+path, "")
}

// ConfigSchemaCheck loads and validates the effective config.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return "CONFIG" }

func (c *ConfigSchemaCheck) Run() CheckResult {
	cfg, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return result(c, StatusFail, "Failed to load config", "Check the YAML syntax in your config file")
	}
	if err := config.Validate(cfg); err != nil {
		return result(c, StatusFail, "Config is invalid", "Fix the values reported by 'hcilo --all'")
	}
	return result(c, StatusPass, "Config valid", "")
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}
