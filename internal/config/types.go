package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete hcilo configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Inventory is the path to the node inventory file.
	Inventory string `yaml:"inventory" mapstructure:"inventory"`

	Report ReportConfig `yaml:"report" mapstructure:"report"`
	ILO    ILOConfig    `yaml:"ilo" mapstructure:"ilo"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// ReportConfig controls where and how the workbook is written.
type ReportConfig struct {
	// Dir is the directory holding the dated report files.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Prefix is the report file name prefix; the file is <prefix>_<YYYY-MM-DD>.xlsx.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// HeaderColor is the RGB hex fill of the header row.
	HeaderColor string `yaml:"header_color" mapstructure:"header_color"`

	// KeepHistory limits cleanup to today's report instead of every dated report.
	KeepHistory bool `yaml:"keep_history" mapstructure:"keep_history"`
}

// ILOConfig controls how iLO interfaces are reached.
type ILOConfig struct {
	// Username pre-fills the username prompt.
	Username string `yaml:"username" mapstructure:"username"`

	// Timeout bounds each HTTPS request to an iLO.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Insecure skips TLS certificate verification (iLOs ship self-signed certs).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// Retries is the number of extra attempts on transport errors and 5xx.
	Retries int `yaml:"retries" mapstructure:"retries"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with the tool's defaults. Paths are not
// expanded; call ExpandPaths before using them.
func DefaultConfig() *Config {
	return &Config{
		Version:   CurrentConfigVersion,
		Inventory: "~/.ilo_inventory",
		Report: ReportConfig{
			Dir:         "~/Desktop",
			Prefix:      "ILO_HealthCheck",
			HeaderColor: "00B0F0",
		},
		ILO: ILOConfig{
			Timeout:  60 * time.Second,
			Insecure: true,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// ExpandPaths replaces a leading ~ in path values with the home directory.
func (c *Config) ExpandPaths() {
	c.Inventory = ExpandTilde(c.Inventory)
	c.Report.Dir = ExpandTilde(c.Report.Dir)
}
