package cli

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/ilohealth/hcilo/internal/config"
	"github.com/ilohealth/hcilo/internal/ui"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestApplyOverrides(t *testing.T) {
	t.Setenv("HOME", "/home/op")

	cfg := config.DefaultConfig()
	cfg.ExpandPaths()
	applyOverrides(cfg, "", "")
	assert.Equal(t, "/home/op/.ilo_inventory", cfg.Inventory)
	assert.Equal(t, "/home/op/Desktop", cfg.Report.Dir)

	applyOverrides(cfg, "~/inv", "/srv/reports")
	assert.Equal(t, "/home/op/inv", cfg.Inventory)
	assert.Equal(t, "/srv/reports", cfg.Report.Dir)
}

func TestApplyColorMode(t *testing.T) {
	orig := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(orig)
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		name    string
		mode    string
		disable bool
		want    bool
	}{
		{"never", "never", false, false},
		{"flag wins", "always", true, false},
		{"always", "always", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lipgloss.SetColorProfile(termenv.TrueColor)
			applyColorMode(tt.mode, tt.disable)
			assert.Equal(t, tt.want, ui.ColorsEnabled())
		})
	}

	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		lipgloss.SetColorProfile(termenv.TrueColor)
		applyColorMode("auto", false)
		assert.False(t, ui.ColorsEnabled())
	})
}
