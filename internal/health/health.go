// Package health turns an iLO health-at-a-glance summary into report rows.
package health

import (
	"sort"

	"github.com/ilohealth/hcilo/pkg/ilo"
)

// Column titles of a health report, in sheet order.
const (
	ColumnNodes      = "Nodes"
	ColumnComponent  = "Component"
	ColumnStatus     = "Status"
	ColumnRedundancy = "Redundancy"
)

// Columns lists the report columns in order.
var Columns = []string{ColumnNodes, ColumnComponent, ColumnStatus, ColumnRedundancy}

// Row is one (node, component) health record.
type Row struct {
	Node       string
	Component  string
	Status     string
	Redundancy string
}

// Values returns the row cells in Columns order.
func (r Row) Values() []string {
	return []string{r.Node, r.Component, r.Status, r.Redundancy}
}

// Rows builds one row per component of glance, all tagged with node.
// Known components come first in ilo.ComponentOrder, unknown ones follow
// alphabetically.
func Rows(node string, glance ilo.Glance) []Row {
	rows := make([]Row, 0, len(glance))
	seen := make(map[string]bool, len(glance))

	for _, component := range ilo.ComponentOrder {
		h, ok := glance[component]
		if !ok {
			continue
		}
		seen[component] = true
		rows = append(rows, newRow(node, component, h))
	}

	var extra []string
	for component := range glance {
		if !seen[component] {
			extra = append(extra, component)
		}
	}
	sort.Strings(extra)
	for _, component := range extra {
		rows = append(rows, newRow(node, component, glance[component]))
	}

	return rows
}

func newRow(node, component string, h ilo.ComponentHealth) Row {
	return Row{
		Node:       node,
		Component:  component,
		Status:     h.Status,
		Redundancy: h.Redundancy,
	}
}

// Summary counts rows by status for the end-of-run table.
type Summary struct {
	Node     string
	Category string
	Total    int
	OK       int
	Degraded []string
}

// Summarize reports how many of a node's components are healthy. Anything
// other than "OK" (case-sensitive, as iLO reports it) counts as degraded.
func Summarize(category string, rows []Row) Summary {
	s := Summary{Category: category, Total: len(rows)}
	for _, r := range rows {
		if s.Node == "" {
			s.Node = r.Node
		}
		if r.Status == "OK" {
			s.OK++
			continue
		}
		s.Degraded = append(s.Degraded, r.Component)
	}
	return s
}
