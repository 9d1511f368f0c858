// Package inventory parses the node inventory file: category header lines
// ending in ':' followed by comma-separated iLO addresses.
//
//	WebServers:
//	10.0.0.1, 10.0.0.2
//	DBServers:
//	10.0.1.1
package inventory

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ilohealth/hcilo/internal/logger"
)

// Inventory is an ordered mapping from category name to iLO addresses.
// Categories keep the order in which they first appear in the file.
type Inventory struct {
	order     []string
	addresses map[string][]string
}

// New returns an empty inventory.
func New() *Inventory {
	return &Inventory{addresses: make(map[string][]string)}
}

// Categories returns category names in file order.
func (inv *Inventory) Categories() []string {
	out := make([]string, len(inv.order))
	copy(out, inv.order)
	return out
}

// Addresses returns the addresses of category, or nil if it is unknown.
func (inv *Inventory) Addresses(category string) []string {
	addrs, ok := inv.addresses[category]
	if !ok {
		return nil
	}
	out := make([]string, len(addrs))
	copy(out, addrs)
	return out
}

// Has reports whether category exists.
func (inv *Inventory) Has(category string) bool {
	_, ok := inv.addresses[category]
	return ok
}

// Len returns the number of categories.
func (inv *Inventory) Len() int {
	return len(inv.order)
}

// Total returns the number of addresses across all categories.
func (inv *Inventory) Total() int {
	n := 0
	for _, addrs := range inv.addresses {
		n += len(addrs)
	}
	return n
}

// Map returns a copy of the category -> addresses mapping.
func (inv *Inventory) Map() map[string][]string {
	out := make(map[string][]string, len(inv.addresses))
	for _, c := range inv.order {
		out[c] = inv.Addresses(c)
	}
	return out
}

// addCategory registers name and reports whether it was new.
func (inv *Inventory) addCategory(name string) bool {
	if _, ok := inv.addresses[name]; ok {
		return false
	}
	inv.order = append(inv.order, name)
	inv.addresses[name] = []string{}
	return true
}

func (inv *Inventory) add(category string, addrs ...string) {
	inv.addresses[category] = append(inv.addresses[category], addrs...)
}

// Parse reads inventory text from r. Problems are reported through log and
// never abort parsing: a data line before any header (or after an empty one)
// is skipped, a repeated header continues the existing category, and a read
// error returns whatever was parsed so far.
func Parse(r io.Reader, log logger.Logger) *Inventory {
	inv := New()
	current := ""
	haveCurrent := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			current = strings.TrimSpace(strings.TrimSuffix(line, ":"))
			if current == "" {
				log.Warn("Empty category name on line %d; skipping its nodes", lineNo)
				haveCurrent = false
				continue
			}
			haveCurrent = true
			if !inv.addCategory(current) {
				log.Warn("Category %q is declared more than once (line %d); merging its nodes", current, lineNo)
			}
			continue
		}

		if !haveCurrent {
			log.Warn("No current category set for line %d: %s", lineNo, line)
			continue
		}

		inv.add(current, splitAddresses(line)...)
	}

	if err := scanner.Err(); err != nil {
		log.Error("An error occurred reading the inventory: %v", err)
	}

	return inv
}

// Load parses the inventory file at path. A missing or unreadable file is
// reported through log and yields an empty inventory.
func Load(path string, log logger.Logger) *Inventory {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error("The inventory file '%s' was not found.", path)
		} else {
			log.Error("An error occurred opening '%s': %v", path, err)
		}
		return New()
	}
	defer f.Close()

	return Parse(f, log)
}

// splitAddresses splits a comma-separated line, trimming tokens and dropping
// empty ones.
func splitAddresses(line string) []string {
	var out []string
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
