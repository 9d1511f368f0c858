package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ilohealth/hcilo/internal/inventory"
	"github.com/ilohealth/hcilo/internal/ui"
	"github.com/ilohealth/hcilo/internal/util"
	"github.com/spf13/cobra"
)

// categoriesCmd lists the node types in the inventory
var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"types"},
	Short:   "List node types in the inventory",
	Long: `List the node types defined in the inventory with their iLO addresses.

Any listed name can be passed to hcilo as a positional argument.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		inv := inventory.Load(cfg.Inventory, ui.NewConsoleLogger(cmd.ErrOrStderr()))
		listCategories(cmd.OutOrStdout(), inv, cfg.Inventory)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func listCategories(w io.Writer, inv *inventory.Inventory, path string) {
	if inv.Len() == 0 {
		fmt.Fprintf(w, "No node types found in %s\n", path)
		return
	}

	cols := []ui.TableColumn{
		{Title: "Node type", Width: 20},
		{Title: "Nodes", Width: 6},
		{Title: "Addresses", Width: 48},
	}
	rows := make([][]string, 0, inv.Len())
	for _, c := range inv.Categories() {
		addrs := inv.Addresses(c)
		rows = append(rows, []string{c, strconv.Itoa(len(addrs)), util.JoinOrNone(addrs)})
		if width := len(c) + 2; width > cols[0].Width {
			cols[0].Width = width
		}
	}

	fmt.Fprintln(w, ui.RenderSimpleTable(cols, rows))
	fmt.Fprintf(w, "%s in %s\n",
		util.CountNoun(inv.Total(), "node", "nodes"),
		util.CountNoun(inv.Len(), "node type", "node types"))
}
