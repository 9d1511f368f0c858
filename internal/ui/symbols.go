package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Node written, report saved
	SymbolFail     = "✗" // Node failed
	SymbolWarning  = "⚠" // Degraded component or recoverable problem
	SymbolPending  = "○" // Not started
	SymbolComplete = "●" // Done
	SymbolSkipped  = "⊘" // Skipped
)
