// Package ui renders cpuglow's terminal output with Lip Gloss.
//
// Two kinds of line are printed:
//
//	LinkDisplay - one line per link state change (connected, lost)
//	StatusLine  - with --verbose, one line per color frame: CPU percent,
//	              a swatch of the sent color, and a sparkline of recent samples
//
// Device colors are scaled up before display because the firmware gradient
// tops out at half brightness. Use SetColorMode to pick auto, always, or
// never; auto drops color when stdout is not a terminal.
package ui
