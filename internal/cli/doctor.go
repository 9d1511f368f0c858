package cli

import (
	"fmt"
	"io"

	"github.com/ilohealth/hcilo/internal/config"
	"github.com/ilohealth/hcilo/internal/doctor"
	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/ilohealth/hcilo/internal/ui"
	"github.com/spf13/cobra"
)

var doctorProbe bool

// doctorCmd diagnoses config, inventory and report directory problems
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and connectivity issues",
	Long: `Check the config file, the inventory and the report directory, and
optionally whether every iLO in the inventory accepts HTTPS connections.

Examples:
  hcilo doctor
  hcilo doctor --probe`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			cfg = config.DefaultConfig()
			cfg.ExpandPaths()
		}
		applyOverrides(cfg, inventoryFlag, outputDirFlag)
		applyColorMode(cfg.Output.Color, noColor)
		return runDoctor(cmd.OutOrStdout(), cfg, cfgFile, doctorProbe)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorProbe, "probe", false, "open a TCP connection to each iLO's HTTPS port")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(w io.Writer, cfg *config.Config, configPath string, probe bool) error {
	checks := doctor.NewConfigChecks(configPath)
	checks = append(checks,
		&doctor.InventoryCheck{Path: cfg.Inventory},
		&doctor.ReportDirCheck{Dir: cfg.Report.Dir},
		&doctor.ReportLockCheck{Dir: cfg.Report.Dir, Prefix: cfg.Report.Prefix},
	)
	results := doctor.RunAll(checks)

	if probe {
		probes := doctor.NewReachabilityChecks(doctor.Addresses(cfg.Inventory), doctor.DefaultProbeTimeout)
		results = append(results, doctor.RunAllParallel(probes)...)
	}

	rows := make([]ui.DoctorCheckRow, len(results))
	for i, r := range results {
		rows[i] = ui.DoctorCheckRow{
			Status:     r.Status.String(),
			Category:   r.Category,
			Message:    r.Message,
			Suggestion: r.Suggestion,
		}
	}
	fmt.Fprint(w, ui.RenderDoctorTable(rows))
	fmt.Fprintln(w, doctor.Summary(results))

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrConfig,
			"Doctor found problems",
			"Fix the failed checks above and run 'hcilo doctor' again")
	}
	return nil
}
