package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Action completed successfully
	SymbolFail     = "✗" // Action failed
	SymbolPending  = "○" // Action not yet started
	SymbolProgress = "◐" // Action in progress
	SymbolComplete = "●" // Action done (alternative to success)
	SymbolSkipped  = "⊘" // Action skipped
	SymbolWarning  = "⚠" // Warning
)
