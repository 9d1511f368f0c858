// Package cli implements the hcilo command-line interface.
//
// The root command is the health check itself:
//
//	hcilo --all                    - Check every node type in the inventory
//	hcilo <node type>...           - Check the named node types
//	hcilo categories               - List node types
//	hcilo init                     - Write a default config file
//	hcilo version                  - Print version information
//	hcilo completion <shell>       - Generate a completion script
//
// A run is driven by HealthCheck: load the inventory, resolve node types,
// collect credentials, delete previous reports, then query each iLO in turn
// and append its rows to the dated workbook, saving after every node.
package cli
