// Package clean discovers and removes previous health check reports.
package clean

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ilohealth/hcilo/internal/report"
)

// Report is a dated report file found on disk.
type Report struct {
	Path string    // Full path (e.g., ~/Desktop/ILO_HealthCheck_2024-11-03.xlsx)
	Date time.Time // Date parsed from the file name
	Size int64     // Size in bytes
}

// Discover lists the reports in dir named "<prefix>_YYYY-MM-DD.xlsx",
// oldest first. A missing dir yields no reports.
func Discover(dir, prefix string) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var reports []Report
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		day, ok := parseName(entry.Name(), prefix)
		if !ok {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		reports = append(reports, Report{
			Path: filepath.Join(dir, entry.Name()),
			Date: day,
			Size: size,
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Date.Before(reports[j].Date)
	})
	return reports, nil
}

// Select returns the reports a run should delete. With keepHistory only the
// report for today is selected, otherwise all of them are.
func Select(reports []Report, keepHistory bool, today time.Time) []Report {
	if !keepHistory {
		return reports
	}
	day := today.Format(report.DateLayout)
	var out []Report
	for _, r := range reports {
		if r.Date.Format(report.DateLayout) == day {
			out = append(out, r)
		}
	}
	return out
}

// Remove deletes the given reports. Each path is checked against the report
// naming pattern first; anything else is refused. Returns the paths that
// were removed and any errors.
func Remove(prefix string, reports []Report) (removed []string, errs []error) {
	for _, r := range reports {
		if err := validateRemovalTarget(r.Path, prefix); err != nil {
			errs = append(errs, fmt.Errorf("refusing to delete %q: %s", r.Path, err))
			continue
		}
		if err := os.Remove(r.Path); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", r.Path, err))
			continue
		}
		removed = append(removed, r.Path)
	}
	return removed, errs
}

// validateRemovalTarget only allows regular files whose base name is
// exactly "<prefix>_<date>.xlsx" with a date that parses.
func validateRemovalTarget(path, prefix string) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return fmt.Errorf("empty path")
	}
	if _, ok := parseName(filepath.Base(trimmed), prefix); !ok {
		return fmt.Errorf("not a %s report", prefix)
	}
	info, err := os.Lstat(trimmed)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}
	return nil
}

// parseName extracts the date from a "<prefix>_YYYY-MM-DD.xlsx" file name.
func parseName(name, prefix string) (time.Time, bool) {
	if prefix == "" || strings.ContainsAny(prefix, `/\`) {
		return time.Time{}, false
	}
	rest, ok := strings.CutPrefix(name, prefix+"_")
	if !ok {
		return time.Time{}, false
	}
	stamp, ok := strings.CutSuffix(rest, report.Extension)
	if !ok || len(stamp) != len(report.DateLayout) {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(report.DateLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
