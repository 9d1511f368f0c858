package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ilohealth/hcilo/internal/config"
	"github.com/ilohealth/hcilo/internal/ui"
	"github.com/muesli/termenv"
)

// loadConfig loads the config file (or defaults), applies the global flag
// overrides and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, inventoryFlag, outputDirFlag)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	applyColorMode(cfg.Output.Color, noColor)
	return cfg, nil
}

func applyOverrides(cfg *config.Config, inventory, outputDir string) {
	if inventory != "" {
		cfg.Inventory = config.ExpandTilde(inventory)
	}
	if outputDir != "" {
		cfg.Report.Dir = config.ExpandTilde(outputDir)
	}
}

// applyColorMode honors --no-color, NO_COLOR and output.color.
func applyColorMode(mode string, disable bool) {
	switch {
	case disable, os.Getenv("NO_COLOR") != "", mode == "never":
		ui.DisableColors()
	case mode == "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}
