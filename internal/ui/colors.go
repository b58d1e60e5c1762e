package ui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rileyhilliard/cpuglow/internal/gradient"
)

// Text colors for content hierarchy, as ANSI codes for terminal compatibility
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
)

// deviceScale brightens device colors for the terminal. The default gradient
// tops out at 127 per channel, which reads as murky on screen.
const deviceScale = 2.0

// Hex renders a device color as #RRGGBB, scaled up for display.
func Hex(c gradient.Color) string {
	return toColorful(c).Hex()
}

// LipglossColor converts a device color to a lipgloss true color.
func LipglossColor(c gradient.Color) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

func toColorful(c gradient.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) * deviceScale / 255,
		G: float64(c.G) * deviceScale / 255,
		B: float64(c.B) * deviceScale / 255,
	}.Clamped()
}
