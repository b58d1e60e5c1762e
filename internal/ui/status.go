package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/cpuglow/internal/gradient"
	"golang.org/x/term"
)

// Color modes accepted by SetColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultSparklineWidth is how many samples the status line shows.
const DefaultSparklineWidth = 30

// SetColorMode configures lipgloss output. "auto" turns color off when out is
// not a terminal.
func SetColorMode(mode string, out *os.File) {
	switch mode {
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		if out == nil || !term.IsTerminal(int(out.Fd())) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

// Swatch renders a two-cell block in the given device color plus its hex code.
func Swatch(c gradient.Color) string {
	block := lipgloss.NewStyle().
		Background(LipglossColor(c)).
		Render("  ")
	return block + " " + lipgloss.NewStyle().Foreground(ColorMuted).Render(Hex(c))
}

// FormatPercent renders a CPU percentage with fixed width.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%5.1f%%", pct)
}

// HistorySource supplies recent samples for the sparkline.
type HistorySource interface {
	Last(count int) []float64
	Average() float64
}

// StatusLine prints one line per color frame.
type StatusLine struct {
	out     io.Writer
	history HistorySource
	width   int
}

// NewStatusLine creates a status printer. history may be nil.
func NewStatusLine(out io.Writer, history HistorySource) *StatusLine {
	return &StatusLine{out: out, history: history, width: DefaultSparklineWidth}
}

// Render builds the status text for a sample and the color sent for it.
func (s *StatusLine) Render(pct float64, c gradient.Color) string {
	label := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("cpu")
	line := fmt.Sprintf("%s %s  %s", label, FormatPercent(pct), Swatch(c))

	if s.history != nil {
		if spark := RenderSparkline(s.history.Last(s.width), s.width, LipglossColor(c)); spark != "" {
			line += "  " + spark
			line += lipgloss.NewStyle().Foreground(ColorMuted).Render("  avg " + FormatPercent(s.history.Average()))
		}
	}
	return line
}

// Print writes the status line for a sample.
func (s *StatusLine) Print(pct float64, c gradient.Color) {
	fmt.Fprintln(s.out, s.Render(pct, c))
}
