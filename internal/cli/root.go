package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ilohealth/hcilo/internal/logger"
	"github.com/spf13/cobra"
)

// usageHint is printed when neither --all nor a node type is given.
const usageHint = "Please specify either --all or one or more node types."

// Global flags
var (
	cfgFile       string
	inventoryFlag string
	outputDirFlag string
	noColor       bool
	verbose       bool
)

var allFlag bool

// rootCmd runs a health check over the selected inventory categories.
var rootCmd = &cobra.Command{
	Use:   "hcilo [node type...]",
	Short: "Write an HP iLO health check report",
	Long: `Query the "health at a glance" summary of every HP iLO listed in the
inventory and write it to a dated Excel workbook, one sheet per node type.

The inventory (~/.ilo_inventory by default) lists node types as lines ending
in ':' followed by comma-separated iLO addresses:

  WebServers:
  10.0.0.1, 10.0.0.2
  DBServers:
  10.0.1.1

Examples:
  hcilo --all
  hcilo WebServers
  hcilo WebServers DBServers --output-dir ~/reports`,
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: completeNodeTypes,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetDebug(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !allFlag && len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), usageHint)
			return nil
		}
		return runHealthCheck(cmd, args, allFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/hcilo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&inventoryFlag, "inventory", "", "inventory file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outputDirFlag, "output-dir", "", "report directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")

	rootCmd.Flags().BoolVarP(&allFlag, "all", "a", false, "check every node type in the inventory")
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight iLO requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
