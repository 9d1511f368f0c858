package report

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/ilohealth/hcilo/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exampleRows = []health.Row{
	{Node: "NodeA", Component: "C1", Status: "OK", Redundancy: "Yes"},
	{Node: "NodeA", Component: "C2", Status: "OK", Redundancy: "No"},
	{Node: "NodeB", Component: "C1", Status: "Degraded", Redundancy: "Yes"},
}

func reportPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ILO_HealthCheck_2024-11-03.xlsx")
}

// readBack opens the saved file and returns it for assertions.
func readBack(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func mergedRanges(t *testing.T, f *excelize.File, sheet string) []string {
	t.Helper()
	cells, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	var out []string
	for _, mc := range cells {
		out = append(out, mc.GetStartAxis()+":"+mc.GetEndAxis())
	}
	sort.Strings(out)
	return out
}

func appendAndSave(t *testing.T, path, category string, rows []health.Row) {
	t.Helper()
	wb, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, wb.Append(category, rows))
	require.NoError(t, wb.Save())
	require.NoError(t, wb.Close())
}

func TestAppend_NewWorkbook(t *testing.T) {
	path := reportPath(t)
	appendAndSave(t, path, "WebServers", exampleRows)

	f := readBack(t, path)
	assert.Equal(t, []string{"WebServers"}, f.GetSheetList(), "default sheet is renamed, not kept")

	rows, err := f.GetRows("WebServers")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, health.Columns, rows[0])
	assert.Equal(t, []string{"NodeA", "C1", "OK", "Yes"}, rows[1])
	assert.Equal(t, []string{"NodeB", "C1", "Degraded", "Yes"}, rows[3])

	assert.Equal(t, []string{"A2:A3"}, mergedRanges(t, f, "WebServers"),
		"NodeA rows merge, NodeB's single row does not")
}

func TestAppend_HeaderStyled(t *testing.T) {
	path := reportPath(t)
	appendAndSave(t, path, "Web", exampleRows[:1])

	f := readBack(t, path)
	headerStyle, err := f.GetCellStyle("Web", "A1")
	require.NoError(t, err)
	dataStyle, err := f.GetCellStyle("Web", "B2")
	require.NoError(t, err)

	assert.NotZero(t, headerStyle)
	assert.NotZero(t, dataStyle, "data cells carry a border style")
	assert.NotEqual(t, headerStyle, dataStyle)

	lastHeader, err := f.GetCellStyle("Web", "D1")
	require.NoError(t, err)
	assert.Equal(t, headerStyle, lastHeader)
}

func TestAppend_ExistingSheetAppendsWithoutHeader(t *testing.T) {
	path := reportPath(t)
	appendAndSave(t, path, "Web", exampleRows)

	more := []health.Row{
		{Node: "NodeC", Component: "C1", Status: "OK"},
		{Node: "NodeC", Component: "C2", Status: "OK"},
	}
	appendAndSave(t, path, "Web", more)

	f := readBack(t, path)
	rows, err := f.GetRows("Web")
	require.NoError(t, err)
	require.Len(t, rows, 6, "header + 3 + 2, header not repeated")

	headers := 0
	for _, r := range rows {
		if len(r) > 0 && r[0] == health.ColumnNodes {
			headers++
		}
	}
	assert.Equal(t, 1, headers)

	v, err := f.GetCellValue("Web", "A5")
	require.NoError(t, err)
	assert.Equal(t, "NodeC", v, "append starts at max_row + 1")

	assert.Equal(t, []string{"A2:A3", "A5:A6"}, mergedRanges(t, f, "Web"))
}

func TestAppend_SingleRowAfterPriorData(t *testing.T) {
	path := reportPath(t)
	appendAndSave(t, path, "Web", exampleRows)
	appendAndSave(t, path, "Web", []health.Row{{Node: "NodeD", Component: "C1", Status: "OK"}})

	f := readBack(t, path)
	assert.Equal(t, []string{"A2:A3"}, mergedRanges(t, f, "Web"))

	v, err := f.GetCellValue("Web", "A5")
	require.NoError(t, err)
	assert.Equal(t, "NodeD", v)
}

func TestAppend_SameNodeAcrossBatchesNotJoined(t *testing.T) {
	path := reportPath(t)
	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.Append("Web", []health.Row{{Node: "n", Component: "a"}, {Node: "n", Component: "b"}}))
	require.NoError(t, wb.Append("Web", []health.Row{{Node: "n", Component: "c"}, {Node: "n", Component: "d"}}))
	require.NoError(t, wb.Save())

	f := readBack(t, path)
	assert.Equal(t, []string{"A2:A3", "A4:A5"}, mergedRanges(t, f, "Web"), "merges never reach into earlier batches")
}

func TestAppend_MultipleSheets(t *testing.T) {
	path := reportPath(t)
	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.Append("WebServers", exampleRows[:2]))
	require.NoError(t, wb.Append("DBServers", exampleRows[2:]))
	require.NoError(t, wb.Append("WebServers", exampleRows[2:]))
	require.NoError(t, wb.Save())

	assert.Equal(t, []string{"WebServers", "DBServers"}, wb.SheetNames())

	f := readBack(t, path)
	web, err := f.GetRows("WebServers")
	require.NoError(t, err)
	assert.Len(t, web, 4)

	db, err := f.GetRows("DBServers")
	require.NoError(t, err)
	assert.Len(t, db, 2)
	assert.Empty(t, mergedRanges(t, f, "DBServers"))
}

func TestAppend_NewSheetInExistingWorkbook(t *testing.T) {
	path := reportPath(t)
	appendAndSave(t, path, "WebServers", exampleRows)
	appendAndSave(t, path, "DBServers", exampleRows)

	f := readBack(t, path)
	assert.Equal(t, []string{"WebServers", "DBServers"}, f.GetSheetList())
}

func TestAppend_EmptyRowsWritesHeaderOnly(t *testing.T) {
	path := reportPath(t)
	appendAndSave(t, path, "Spare", nil)

	f := readBack(t, path)
	rows, err := f.GetRows("Spare")
	require.NoError(t, err)
	assert.Equal(t, [][]string{health.Columns}, rows)
}

func TestAppend_CategoryNamedLikeDefaultSheet(t *testing.T) {
	path := reportPath(t)
	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.Append("Sheet1", exampleRows[:1]))
	require.NoError(t, wb.Append("Other", exampleRows[:1]))

	assert.Equal(t, []string{"Sheet1", "Other"}, wb.SheetNames())
}

func nodeRows(nodes ...string) []health.Row {
	rows := make([]health.Row, len(nodes))
	for i, n := range nodes {
		rows[i] = health.Row{Node: n, Component: n + "-c" + string(rune('1'+i)), Status: "OK", Redundancy: "Yes"}
	}
	return rows
}

func TestAppend_CaseOnlyDifferentCategoriesShareSheet(t *testing.T) {
	path := reportPath(t)
	wb, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, wb.Append("Web", nodeRows("a1", "a1")))
	require.NoError(t, wb.Append("web", nodeRows("b1", "b1")))
	require.NoError(t, wb.Append("Web", nodeRows("c1", "c1")))
	require.NoError(t, wb.Save())
	require.NoError(t, wb.Close())

	f := readBack(t, path)
	assert.Equal(t, []string{"Web"}, f.GetSheetList())

	cols, err := f.GetCols("Web")
	require.NoError(t, err)
	require.Len(t, cols, len(health.Columns))
	assert.Equal(t, []string{health.Columns[1], "a1-c1", "a1-c2", "b1-c1", "b1-c2", "c1-c1", "c1-c2"}, cols[1],
		"no batch overwrites another")
	for cell, node := range map[string]string{"A2": "a1", "A4": "b1", "A6": "c1"} {
		v, err := f.GetCellValue("Web", cell)
		require.NoError(t, err)
		assert.Equal(t, node, v, cell)
	}
	assert.Equal(t, []string{"A2:A3", "A4:A5", "A6:A7"}, mergedRanges(t, f, "Web"))
}

func TestAppend_LowercaseDefaultSheetName(t *testing.T) {
	wb, err := Open(reportPath(t))
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.Append("sheet1", exampleRows[:1]))
	require.NoError(t, wb.Append("Other", exampleRows[:1]))

	assert.Equal(t, []string{"Sheet1", "Other"}, wb.SheetNames())
}

func TestSave_EmptyWorkbookKeepsDefaultSheet(t *testing.T) {
	path := reportPath(t)
	wb, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, wb.Save())
	require.NoError(t, wb.Close())

	f := readBack(t, path)
	assert.Len(t, f.GetSheetList(), 1)
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reports", "r.xlsx")
	appendAndSave(t, path, "Web", exampleRows)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_CorruptFile(t *testing.T) {
	path := reportPath(t)
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrReport))
}

func TestAppend_InvalidSheetName(t *testing.T) {
	wb, err := Open(reportPath(t))
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.Append("First", exampleRows[:1]))
	err = wb.Append("bad/name", exampleRows[:1])
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrReport))
}

func TestWithHeaderColor(t *testing.T) {
	wb, err := Open(reportPath(t), WithHeaderColor("FFCC00"))
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, "FFCC00", wb.headerColor)

	wb2, err := Open(reportPath(t), WithHeaderColor(""))
	require.NoError(t, err)
	defer wb2.Close()
	assert.Equal(t, DefaultHeaderColor, wb2.headerColor)
}
