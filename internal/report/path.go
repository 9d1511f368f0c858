package report

import (
	"fmt"
	"path/filepath"
	"time"
)

// DateLayout is the date format embedded in report file names.
const DateLayout = "2006-01-02"

// Extension is the report file extension.
const Extension = ".xlsx"

// FileName returns "<prefix>_<YYYY-MM-DD>.xlsx" for day.
func FileName(prefix string, day time.Time) string {
	return fmt.Sprintf("%s_%s%s", prefix, day.Format(DateLayout), Extension)
}

// DatedPath returns the report path for day inside dir.
func DatedPath(dir, prefix string, day time.Time) string {
	return filepath.Join(dir, FileName(prefix, day))
}
