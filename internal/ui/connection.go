package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LinkDisplay prints one line each time the device link comes up or drops.
//
// Example output:
//
//	● Connected to /dev/ttyUSB0                               attempt 1
//	○ Link lost: Failed to write to device              retrying in 5s
type LinkDisplay struct {
	mu     sync.Mutex
	w      io.Writer
	device string
}

// NewLinkDisplay creates a link display for device writing to w.
func NewLinkDisplay(w io.Writer, device string) *LinkDisplay {
	return &LinkDisplay{w: w, device: device}
}

// Connected reports that the link opened on the given attempt.
func (d *LinkDisplay) Connected(attempt int) {
	d.render(SymbolConnected, ColorSuccess,
		"Connected to "+d.device,
		fmt.Sprintf("attempt %d", attempt))
}

// Lost reports that the link dropped and when it will be retried.
func (d *LinkDisplay) Lost(reason string, backoff time.Duration) {
	d.render(SymbolLost, ColorError,
		"Link lost: "+reason,
		"retrying in "+backoff.String())
}

// render prints "<symbol> <message><padding><status>" with the status
// right-aligned to a ~60 column line.
func (d *LinkDisplay) render(symbol string, symbolColor lipgloss.Color, message, status string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	statusStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	padding := 58 - lipgloss.Width(message) - lipgloss.Width(status)
	if padding < 2 {
		padding = 2
	}

	fmt.Fprintf(d.w, "%s %s%*s%s\n",
		symbolStyle.Render(symbol),
		message,
		padding, "",
		statusStyle.Render(status),
	)
}
