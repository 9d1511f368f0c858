package ui

import (
	"strings"
	"testing"

	"github.com/ilohealth/hcilo/internal/health"
	"github.com/stretchr/testify/assert"
)

func TestRenderSimpleTable(t *testing.T) {
	out := RenderSimpleTable(
		[]TableColumn{{Title: "Category", Width: 12}, {Title: "Nodes", Width: 6}},
		[][]string{{"WebServers", "2"}, {"DBServers", "1"}},
	)

	assert.Contains(t, out, "Category")
	assert.Contains(t, out, "WebServers")
	assert.Contains(t, out, "DBServers")
}

func TestRenderSimpleTable_Empty(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "x", Width: 3}}, nil))
}

func TestRenderHealthSummary(t *testing.T) {
	out := RenderHealthSummary([]health.Summary{
		{Category: "WebServers", Node: "web01.example.com", Total: 10, OK: 10},
		{Category: "WebServers", Node: "web02.example.com", Total: 10, OK: 9, Degraded: []string{"fans"}},
	})

	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), 4, "header, border and one line per node")
	assert.Contains(t, out, "Needs attention")
	assert.Contains(t, out, "web01.example.com")
	assert.Contains(t, out, "⚠ fans")
	assert.Contains(t, out, SymbolSuccess)
}

func TestRenderHealthSummary_WidensColumns(t *testing.T) {
	long := "a-very-long-node-name.datacenter.example.com"
	out := RenderHealthSummary([]health.Summary{{Category: "c", Node: long, Total: 1, OK: 1}})
	assert.Contains(t, out, long, "node names are not truncated")
}

func TestRenderHealthSummary_Empty(t *testing.T) {
	assert.Empty(t, RenderHealthSummary(nil))
}

func TestRenderDoctorTable(t *testing.T) {
	out := RenderDoctorTable([]DoctorCheckRow{
		{Status: "pass", Category: "CONFIG", Message: "Config valid"},
		{Status: "fail", Category: "ILO", Message: "10.0.0.9 unreachable", Suggestion: "Check the address"},
		{Status: "warn", Category: "CONFIG", Message: "No config file", Suggestion: "Run 'hcilo init'"},
	})

	assert.Equal(t,
		"CONFIG\n"+
			"  ● Config valid\n"+
			"  ⚠ No config file\n"+
			"    Run 'hcilo init'\n"+
			"\n"+
			"ILO\n"+
			"  ✗ 10.0.0.9 unreachable\n"+
			"    Check the address\n"+
			"\n",
		out)
}

func TestRenderDoctorTable_Empty(t *testing.T) {
	assert.Equal(t, "No checks to display", RenderDoctorTable(nil))
}
