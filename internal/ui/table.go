package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilohealth/hcilo/internal/health"
	"github.com/ilohealth/hcilo/internal/util"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a non-focused Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// Nothing is selectable; keep the first row looking like the others.
	s.Selected = s.Cell

	return table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2), // header text + bottom border
		table.WithStyles(s),
	)
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// SummaryColumns are the columns of the end-of-run summary.
var SummaryColumns = []TableColumn{
	{Title: "Category", Width: 16},
	{Title: "Node", Width: 28},
	{Title: "Components", Width: 11},
	{Title: "OK", Width: 5},
	{Title: "Needs attention", Width: 24},
}

// RenderHealthSummary renders one line per node written during a run.
// Column widths grow to fit long category or node names.
func RenderHealthSummary(summaries []health.Summary) string {
	if len(summaries) == 0 {
		return ""
	}

	cols := make([]TableColumn, len(SummaryColumns))
	copy(cols, SummaryColumns)

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		attention := SymbolSuccess
		if len(s.Degraded) > 0 {
			attention = SymbolWarning + " " + util.JoinOrNone(s.Degraded)
		}
		rows[i] = []string{
			s.Category,
			s.Node,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.OK),
			attention,
		}
		for c, v := range rows[i] {
			if w := lipgloss.Width(v) + 1; w > cols[c].Width {
				cols[c].Width = w
			}
		}
	}

	return RenderSimpleTable(cols, rows)
}

// DoctorCheckRow represents a row in the doctor diagnostic table.
type DoctorCheckRow struct {
	Status     string // "pass", "warn", "fail"
	Category   string // Check category
	Message    string // Check result message
	Suggestion string // Suggestion for fixing (if not passing)
}

// RenderDoctorTable renders doctor check results grouped by category, in
// first-seen category order.
func RenderDoctorTable(rows []DoctorCheckRow) string {
	if len(rows) == 0 {
		return "No checks to display"
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	categories := make(map[string][]DoctorCheckRow)
	var order []string
	for _, row := range rows {
		if _, exists := categories[row.Category]; !exists {
			order = append(order, row.Category)
		}
		categories[row.Category] = append(categories[row.Category], row)
	}

	var b strings.Builder
	for _, cat := range order {
		b.WriteString(headerStyle.Render(cat) + "\n")

		for _, row := range categories[cat] {
			var icon string
			switch row.Status {
			case "pass":
				icon = fg(ColorSuccess).Render(SymbolComplete)
			case "warn":
				icon = fg(ColorWarning).Render(SymbolWarning)
			case "fail":
				icon = fg(ColorError).Render(SymbolFail)
			default:
				icon = fg(ColorMuted).Render(SymbolPending)
			}
			b.WriteString("  " + icon + " " + row.Message + "\n")

			if row.Suggestion != "" && row.Status != "pass" {
				b.WriteString("    " + fg(ColorMuted).Render(row.Suggestion) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
