package ui

// Unicode symbols for link status lines.
const (
	SymbolConnected = "●" // Link open, frames flowing
	SymbolLost      = "○" // Link down, waiting to retry
	SymbolFail      = "✗" // Fatal error
)
