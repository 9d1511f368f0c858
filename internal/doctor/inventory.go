package doctor

import (
	"fmt"
	"os"

	"github.com/ilohealth/hcilo/internal/inventory"
	"github.com/ilohealth/hcilo/internal/logger"
	"github.com/ilohealth/hcilo/internal/util"
)

// InventoryCheck parses the inventory and reports its shape and any
// lines the parser had to skip.
type InventoryCheck struct {
	Path string
}

func (c *InventoryCheck) Name() string     { return "inventory" }
func (c *InventoryCheck) Category() string { return "INVENTORY" }

func (c *InventoryCheck) Run() CheckResult {
	if _, err := os.Stat(c.Path); err != nil {
		return result(c, StatusFail, "Inventory not found: "+c.Path,
			"Create it with one 'NodeType:' line followed by comma-separated iLO addresses")
	}

	log := logger.NewBufferLogger()
	inv := inventory.Load(c.Path, log)
	if inv.Len() == 0 {
		return result(c, StatusFail, "Inventory has no node types: "+c.Path,
			"Add a line ending in ':' to start a node type")
	}

	msg := fmt.Sprintf("%s in %s",
		util.CountNoun(inv.Total(), "node", "nodes"),
		util.CountNoun(inv.Len(), "node type", "node types"))

	var warnings []string
	for _, m := range log.Messages {
		if m.Level == "warn" || m.Level == "error" {
			warnings = append(warnings, m.Message)
		}
	}
	if len(warnings) > 0 {
		return result(c, StatusWarn,
			fmt.Sprintf("%s, %s", msg, util.CountNoun(len(warnings), "warning", "warnings")),
			warnings[0])
	}
	return result(c, StatusPass, msg, "")
}

// Addresses returns every address in the inventory at path, in order.
func Addresses(path string) []string {
	inv := inventory.Load(path, logger.Noop())
	var out []string
	for _, cat := range inv.Categories() {
		out = append(out, inv.Addresses(cat)...)
	}
	return out
}
