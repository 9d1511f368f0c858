// Package ui provides terminal output helpers for hcilo.
//
// Colors are ANSI codes rendered with Lip Gloss; DisableColors switches to
// plain ASCII for --no-color. The package also holds the per-node Spinner,
// the end-of-run summary table (Bubbles), the centered completion line, the
// Huh credential prompts and ConsoleLogger, which adapts logger.Logger to
// styled terminal output.
//
//	s := ui.NewSpinner(os.Stdout, "Querying 10.0.0.5", ui.IsTerminal(os.Stdout))
//	s.Start()
//	// ... fetch ...
//	s.Success()
package ui
