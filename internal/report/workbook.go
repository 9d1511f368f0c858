// Package report writes health rows into a dated xlsx workbook with one
// sheet per inventory category.
package report

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/ilohealth/hcilo/internal/health"
	"github.com/ilohealth/hcilo/internal/logger"
	"github.com/xuri/excelize/v2"
)

// DefaultHeaderColor is the header fill (aqua).
const DefaultHeaderColor = "00B0F0"

// nodesColumn is the 1-based column of the "Nodes" values.
const nodesColumn = 1

var columnWidths = []float64{28, 32, 14, 16}

// sheet is a lazily created handle on one worksheet.
type sheet struct {
	name    string
	nextRow int
}

type styles struct {
	header int
	cell   int
	merged int
}

// Workbook is an open report file. Sheets are created on first use and
// cached by case-folded name; nothing reaches disk until Save.
type Workbook struct {
	path         string
	file         *excelize.File
	sheets       map[string]*sheet
	blankDefault string
	headerColor  string
	styles       *styles
	log          logger.Logger
}

// Option configures a Workbook.
type Option func(*Workbook)

// WithHeaderColor sets the header fill as 6-digit RGB hex.
func WithHeaderColor(hex string) Option {
	return func(w *Workbook) {
		if hex != "" {
			w.headerColor = hex
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Workbook) { w.log = l }
}

// Open loads the workbook at path, or starts a new one whose default blank
// sheet is renamed by the first Append.
func Open(path string, opts ...Option) (*Workbook, error) {
	w := &Workbook{
		path:        path,
		sheets:      make(map[string]*sheet),
		headerColor: DefaultHeaderColor,
		log:         logger.Noop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		f, openErr := excelize.OpenFile(path)
		if openErr != nil {
			return nil, errors.WrapWithCode(openErr, errors.ErrReport,
				"Failed to open report "+path,
				"Close the file if it is open in Excel, or delete it and rerun")
		}
		w.file = f
		w.log.Debug("opened existing report %s", path)
	case stderrors.Is(err, fs.ErrNotExist):
		w.file = excelize.NewFile()
		w.blankDefault = w.file.GetSheetName(0)
		w.log.Debug("starting new report %s", path)
	default:
		return nil, errors.WrapWithCode(err, errors.ErrReport,
			"Cannot access report "+path,
			"Check permissions on the report directory")
	}

	return w, nil
}

// Path returns the file the workbook saves to.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Append writes rows to the sheet named category. The header row is written
// only when the sheet is empty; rows start at the first free row and
// consecutive rows of the same node get their "Nodes" cells merged.
func (w *Workbook) Append(category string, rows []health.Row) error {
	sh, err := w.sheet(category)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	st, err := w.getStyles()
	if err != nil {
		return err
	}

	first := sh.nextRow
	nodes := make([]string, len(rows))
	for i, r := range rows {
		nodes[i] = r.Node
		for c, v := range r.Values() {
			if err := w.file.SetCellValue(sh.name, cellName(c+1, first+i), v); err != nil {
				return w.writeErr(sh.name, err)
			}
		}
	}
	last := first + len(rows) - 1

	if err := w.file.SetCellStyle(sh.name, cellName(1, first), cellName(len(health.Columns), last), st.cell); err != nil {
		return w.writeErr(sh.name, err)
	}

	for _, span := range MergeSpans(first, nodes) {
		top, bottom := cellName(nodesColumn, span.Start), cellName(nodesColumn, span.End)
		if err := w.file.MergeCell(sh.name, top, bottom); err != nil {
			return w.writeErr(sh.name, err)
		}
		if err := w.file.SetCellStyle(sh.name, top, bottom, st.merged); err != nil {
			return w.writeErr(sh.name, err)
		}
		w.log.Debug("merged %s!%s:%s (%s)", sh.name, top, bottom, span.Value)
	}

	sh.nextRow = last + 1
	return nil
}

// Save writes the workbook to its path, replacing any previous save.
func (w *Workbook) Save() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Cannot create report directory "+filepath.Dir(w.path),
			"Check permissions or set report.dir in your config")
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Failed to save report "+w.path,
			"Close the file if it is open in Excel and rerun")
	}
	return nil
}

// Close releases the workbook's resources without saving.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// sheet returns the cached handle for name, creating the worksheet (or
// renaming the blank default sheet) and its header on first use. Sheet
// names are case-insensitive, so "Web" and "web" share one handle.
func (w *Workbook) sheet(name string) (*sheet, error) {
	key := strings.ToLower(name)
	if sh, ok := w.sheets[key]; ok {
		return sh, nil
	}

	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return nil, w.writeErr(name, err)
	}
	switch {
	case idx == -1:
		if err := w.createSheet(name); err != nil {
			return nil, w.writeErr(name, err)
		}
		if idx, err = w.file.GetSheetIndex(name); err != nil {
			return nil, w.writeErr(name, err)
		}
	case strings.EqualFold(name, w.blankDefault):
		w.blankDefault = ""
	}
	resolved := w.file.GetSheetName(idx)
	if resolved != name {
		w.log.Debug("category %q writes to existing sheet %q", name, resolved)
	}

	existing, err := w.file.GetRows(resolved)
	if err != nil {
		return nil, w.writeErr(resolved, err)
	}

	sh := &sheet{name: resolved, nextRow: len(existing) + 1}
	if len(existing) == 0 {
		if err := w.writeHeader(resolved); err != nil {
			return nil, w.writeErr(resolved, err)
		}
		sh.nextRow = 2
	}

	w.sheets[key] = sh
	return sh, nil
}

func (w *Workbook) createSheet(name string) error {
	if w.blankDefault != "" {
		blank := w.blankDefault
		w.blankDefault = ""
		w.log.Debug("renaming default sheet %q to %q", blank, name)
		return w.file.SetSheetName(blank, name)
	}
	_, err := w.file.NewSheet(name)
	return err
}

func (w *Workbook) writeHeader(name string) error {
	st, err := w.getStyles()
	if err != nil {
		return err
	}
	for i, title := range health.Columns {
		if err := w.file.SetCellValue(name, cellName(i+1, 1), title); err != nil {
			return err
		}
	}
	if err := w.file.SetCellStyle(name, cellName(1, 1), cellName(len(health.Columns), 1), st.header); err != nil {
		return err
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.file.SetColWidth(name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) getStyles() (*styles, error) {
	if w.styles != nil {
		return w.styles, nil
	}

	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	header, err := w.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{w.headerColor}, Pattern: 1},
		Alignment: center,
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrReport, "Invalid header style", "Check report.header_color is 6-digit hex")
	}

	cell, err := w.file.NewStyle(&excelize.Style{Border: thinBorder()})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrReport, "Invalid cell style", "")
	}

	merged, err := w.file.NewStyle(&excelize.Style{Border: thinBorder(), Alignment: center})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrReport, "Invalid merged cell style", "")
	}

	w.styles = &styles{header: header, cell: cell, merged: merged}
	return w.styles, nil
}

func (w *Workbook) writeErr(sheetName string, err error) error {
	return errors.WrapWithCode(err, errors.ErrReport,
		fmt.Sprintf("Failed to write sheet %q", sheetName),
		"Sheet names must be at most 31 characters and cannot contain : \\ / ? * [ ]")
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	border := make([]excelize.Border, len(sides))
	for i, side := range sides {
		border[i] = excelize.Border{Type: side, Color: "000000", Style: 1}
	}
	return border
}

// cellName converts 1-based coordinates to an A1 reference. Coordinates
// here are always in range, so the error is impossible.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
