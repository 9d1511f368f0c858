package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ilohealth/hcilo/internal/config"
	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/ilohealth/hcilo/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initForce bool

// initCmd writes a default config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Write a config file with the default settings to ~/.config/hcilo/config.yaml
(or the --config path).

Examples:
  hcilo init
  hcilo init --force
  hcilo init --config ./hcilo.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		return Init(InitOptions{
			Path:        path,
			Overwrite:   initForce,
			Interactive: ui.IsTerminal(os.Stdin),
			Out:         cmd.OutOrStdout(),
			Confirm:     ui.Confirm,
		})
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for Init.
type InitOptions struct {
	Path        string // Config file to write
	Overwrite   bool   // Overwrite existing config without asking
	Interactive bool   // Ask before overwriting
	Out         io.Writer
	Confirm     func(title string) (bool, error)
}

const configHeader = `# hcilo configuration
# Environment variables override keys, e.g. HCILO_REPORT_DIR or HCILO_ILO_USERNAME.

`

// Init writes the default configuration to opts.Path.
func Init(opts InitOptions) error {
	if opts.Path == "" {
		return errors.New(errors.ErrConfig,
			"Cannot determine where to write the config",
			"Pass a path with --config")
	}

	if _, err := os.Stat(opts.Path); err == nil && !opts.Overwrite {
		if !opts.Interactive || opts.Confirm == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+opts.Path,
				"Use --force to overwrite")
		}
		overwrite, err := opts.Confirm(fmt.Sprintf("Config file '%s' already exists. Overwrite?", opts.Path))
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory: "+filepath.Dir(opts.Path),
			"Check directory permissions")
	}
	if err := os.WriteFile(opts.Path, []byte(configHeader+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+opts.Path,
			"Check directory permissions")
	}

	fmt.Fprintf(opts.Out, "%s Created %s\n\n", ui.SymbolSuccess, opts.Path)
	fmt.Fprintln(opts.Out, "Next steps:")
	fmt.Fprintln(opts.Out, "  hcilo categories   - List node types in the inventory")
	fmt.Fprintln(opts.Out, "  hcilo --all        - Check every node")
	return nil
}
