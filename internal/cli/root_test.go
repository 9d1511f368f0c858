package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/ilohealth/hcilo/internal/inventory"
	"github.com/ilohealth/hcilo/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs rootCmd with args and restores global flag state afterwards.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgFile, inventoryFlag, outputDirFlag = "", "", ""
		allFlag, noColor, verbose = false, false, false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_NoArgsPrintsUsageHint(t *testing.T) {
	out, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, usageHint+"\n", out)
}

func TestRoot_UnknownNodeType(t *testing.T) {
	inv := filepath.Join(t.TempDir(), "inventory")
	require.NoError(t, os.WriteFile(inv, []byte(testInventory), 0644))

	_, err := executeRoot(t, "--inventory", inv, "--no-color", "Storage")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Storage")
}

func TestRoot_InvalidConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("report:\n  header_color: blue\n"), 0644))

	_, err := executeRoot(t, "--config", cfg, "--all")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "header_color")
}

func TestRoot_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"categories", "init", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestSelectCategories(t *testing.T) {
	inv := inventory.Parse(strings.NewReader(testInventory), logger.Noop())

	tests := []struct {
		name    string
		args    []string
		all     bool
		want    []string
		wantErr string
	}{
		{name: "all", all: true, want: []string{"WebServers", "DBServers"}},
		{name: "all wins over names", args: []string{"DBServers"}, all: true, want: []string{"WebServers", "DBServers"}},
		{name: "argument order", args: []string{"DBServers", "WebServers"}, want: []string{"DBServers", "WebServers"}},
		{name: "repeats dropped", args: []string{"DBServers", "DBServers"}, want: []string{"DBServers"}},
		{name: "case sensitive", args: []string{"webservers"}, wantErr: "Unknown node type: webservers"},
		{name: "several unknown", args: []string{"A", "WebServers", "B"}, wantErr: "Unknown node types: A, B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectCategories(inv, tt.args, tt.all)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
