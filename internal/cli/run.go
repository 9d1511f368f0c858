package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ilohealth/hcilo/internal/clean"
	"github.com/ilohealth/hcilo/internal/config"
	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/ilohealth/hcilo/internal/health"
	"github.com/ilohealth/hcilo/internal/inventory"
	"github.com/ilohealth/hcilo/internal/lock"
	"github.com/ilohealth/hcilo/internal/logger"
	"github.com/ilohealth/hcilo/internal/report"
	"github.com/ilohealth/hcilo/internal/ui"
	"github.com/ilohealth/hcilo/internal/util"
	"github.com/ilohealth/hcilo/pkg/ilo"
	"github.com/spf13/cobra"
)

// completionMessage closes every successful run.
const completionMessage = "Successfully written."

// HealthCheck is one report run. The zero value is not usable; fill every
// field (runHealthCheck does this for the CLI, tests use fakes).
type HealthCheck struct {
	Config      *config.Config
	Dial        ilo.Dialer
	Credentials func() (ilo.Credentials, error)
	Now         func() time.Time
	Out         io.Writer
	Log         logger.Logger
	Animate     bool // draw spinners (output is a terminal)
	Width       int  // terminal columns for the completion line

	// Remove deletes previous reports; nil means clean.Remove.
	Remove func(prefix string, reports []clean.Report) ([]string, []error)
}

// RunResult describes what a run wrote.
type RunResult struct {
	Path      string
	Removed   []string
	Summaries []health.Summary
}

// runHealthCheck wires a HealthCheck to the real terminal and iLOs.
func runHealthCheck(cmd *cobra.Command, args []string, all bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := ui.NewConsoleLogger(cmd.ErrOrStderr())
	logger.SetDefault(log)

	hc := &HealthCheck{
		Config: cfg,
		Dial: ilo.NewDialer(
			ilo.WithTimeout(cfg.ILO.Timeout),
			ilo.WithInsecureSkipVerify(cfg.ILO.Insecure),
			ilo.WithRetries(cfg.ILO.Retries),
			ilo.WithLogger(log),
		),
		Credentials: func() (ilo.Credentials, error) {
			return newCredentialPrompt(cmd.InOrStdin(), cmd.ErrOrStderr(), cfg.ILO.Username).collect()
		},
		Now:     time.Now,
		Out:     out,
		Log:     log,
		Animate: ui.IsTerminal(os.Stdout) && out == os.Stdout,
		Width:   ui.TerminalWidth(os.Stdout),
	}

	_, err = hc.Run(cmd.Context(), args, all)
	return err
}

// Run loads the inventory, resolves the node types to check, collects
// credentials, locks the report directory, removes previous reports and then writes one sheet per node
// type, querying nodes one at a time in inventory order.
func (h *HealthCheck) Run(ctx context.Context, args []string, all bool) (*RunResult, error) {
	inv := inventory.Load(h.Config.Inventory, h.Log)

	categories, err := selectCategories(inv, args, all)
	if err != nil {
		return nil, err
	}

	creds, err := h.Credentials()
	if err != nil {
		return nil, err
	}

	rc := h.Config.Report
	lk, err := lock.Acquire(rc.Dir, rc.Prefix, commandLine(args, all), lock.DefaultStale)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lk.Release(); err != nil {
			h.Log.Warn("%v", err)
		}
	}()

	result := &RunResult{}
	result.Removed, err = h.removePrevious()
	if err != nil {
		return nil, err
	}

	result.Path = report.DatedPath(rc.Dir, rc.Prefix, h.Now())
	wb, err := report.Open(result.Path,
		report.WithHeaderColor(rc.HeaderColor),
		report.WithLogger(h.Log))
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	for _, category := range categories {
		for _, addr := range inv.Addresses(category) {
			summary, err := h.checkNode(ctx, wb, category, addr, creds)
			if err != nil {
				return nil, err
			}
			result.Summaries = append(result.Summaries, summary)
		}
	}

	if err := wb.Save(); err != nil {
		return nil, err
	}

	if table := ui.RenderHealthSummary(result.Summaries); table != "" {
		fmt.Fprintln(h.Out)
		fmt.Fprintln(h.Out, table)
	}
	fmt.Fprintln(h.Out, ui.Centered(completionMessage, h.Width))
	return result, nil
}

// checkNode queries one iLO, appends its rows and saves the workbook.
func (h *HealthCheck) checkNode(ctx context.Context, wb *report.Workbook, category, addr string, creds ilo.Credentials) (health.Summary, error) {
	spinner := ui.NewSpinner(h.Out, "Querying "+addr, h.Animate)
	spinner.Start()

	client := h.Dial(addr, creds)

	node, err := client.ServerName(ctx)
	if err != nil {
		spinner.Fail("")
		return health.Summary{}, nodeError(addr, err)
	}
	h.Log.Debug("%s is %s", addr, node)

	glance, err := client.HealthAtAGlance(ctx)
	if err != nil {
		spinner.Fail("")
		return health.Summary{}, nodeError(addr, err)
	}

	rows := health.Rows(node, glance)
	if err := wb.Append(category, rows); err != nil {
		spinner.Fail("")
		return health.Summary{}, err
	}
	if err := wb.Save(); err != nil {
		spinner.Fail("")
		return health.Summary{}, err
	}
	spinner.Success()

	fmt.Fprintf(h.Out, "Data has been written for %s in '%s'\n", node, wb.Path())
	return health.Summarize(category, rows), nil
}

// removePrevious deletes earlier dated reports before anything is written.
// Any report left behind fails the run, since Open would append to it.
func (h *HealthCheck) removePrevious() ([]string, error) {
	rc := h.Config.Report
	found, err := clean.Discover(rc.Dir, rc.Prefix)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrReport,
			"Cannot look for previous reports in "+rc.Dir,
			"Check permissions or set report.dir in your config")
	}

	stale := clean.Select(found, rc.KeepHistory, h.Now())
	if len(stale) == 0 {
		fmt.Fprintln(h.Out, "No older HealthCheck Report found. Continuing ...")
		return nil, nil
	}

	fmt.Fprintln(h.Out, "Older HealthCheck Report Found. Removing...")
	remove := h.Remove
	if remove == nil {
		remove = clean.Remove
	}
	removed, errs := remove(rc.Prefix, stale)
	for _, path := range removed {
		fmt.Fprintf(h.Out, "Deleted old file: %s\n", path)
	}
	if len(errs) > 0 {
		return removed, errors.WrapWithCode(stderrors.Join(errs...), errors.ErrReport,
			fmt.Sprintf("Failed to remove %s",
				util.CountNoun(len(errs), "previous report", "previous reports")),
			"Close the reports if they are open in Excel, or delete them by hand, then rerun")
	}
	return removed, nil
}

// selectCategories returns the node types to check, in processing order.
// --all wins over positional names. Repeated names are checked once.
func selectCategories(inv *inventory.Inventory, args []string, all bool) ([]string, error) {
	if all {
		return inv.Categories(), nil
	}

	var unknown, selected []string
	seen := make(map[string]bool, len(args))
	for _, name := range args {
		if seen[name] {
			continue
		}
		seen[name] = true
		if !inv.Has(name) {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, name)
	}

	if len(unknown) > 0 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown %s: %s",
				util.Pluralize(len(unknown), "node type", "node types"),
				util.JoinOrNone(unknown)),
			"Valid choices: "+util.JoinOrNone(inv.Categories()))
	}
	return selected, nil
}

// commandLine describes the run in the lock file.
func commandLine(args []string, all bool) string {
	parts := append([]string{"hcilo"}, args...)
	if all {
		parts = append(parts, "--all")
	}
	return strings.Join(parts, " ")
}

// nodeError classifies a failed iLO call.
func nodeError(addr string, err error) error {
	if ilo.IsAuthError(err) {
		return errors.WrapWithCode(err, errors.ErrAuth,
			"Authentication failed for iLO "+addr,
			"Check the username and password, or that the account is not locked out")
	}
	return errors.WrapWithCode(err, errors.ErrILO,
		"Failed to read health from iLO "+addr,
		"Check the iLO is reachable over HTTPS, or raise ilo.timeout / ilo.retries in your config")
}

// completeNodeTypes completes positional args from the inventory.
func completeNodeTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	applyOverrides(cfg, inventoryFlag, outputDirFlag)

	used := make(map[string]bool, len(args))
	for _, a := range args {
		used[a] = true
	}

	var names []string
	for _, c := range inventory.Load(cfg.Inventory, logger.Noop()).Categories() {
		if !used[c] {
			names = append(names, c)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
