package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/cpuglow/internal/gradient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainOutput disables color for the duration of a test.
func plainOutput(t *testing.T) {
	t.Helper()
	original := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(original) })
}

func containsBlockChar(s string) bool {
	for _, r := range s {
		if strings.ContainsRune(sparklineBlocks, r) {
			return true
		}
	}
	return false
}

func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

type fixedHistory []float64

func (h fixedHistory) Last(count int) []float64 {
	if count < len(h) {
		return h[len(h)-count:]
	}
	return h
}

func (h fixedHistory) Average() float64 {
	if len(h) == 0 {
		return 0
	}
	var sum float64
	for _, v := range h {
		sum += v
	}
	return sum / float64(len(h))
}

func TestHex(t *testing.T) {
	tests := []struct {
		name  string
		color gradient.Color
		want  string
	}{
		{name: "black", color: gradient.Color{}, want: "#000000"},
		{name: "green", color: gradient.Green, want: "#00fe00"},
		{name: "yellow", color: gradient.Yellow, want: "#fefe00"},
		{name: "red", color: gradient.Red, want: "#fe0000"},
		{name: "bright channel clamps", color: gradient.Color{R: 200, G: 255, B: 64}, want: "#ffff80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hex(tt.color))
			assert.Equal(t, lipgloss.Color(tt.want), LipglossColor(tt.color))
		})
	}
}

func TestSwatch(t *testing.T) {
	plainOutput(t)

	out := stripANSI(Swatch(gradient.Yellow))
	assert.Contains(t, out, "#fefe00")
	assert.True(t, strings.HasPrefix(out, "  "), "swatch block comes first")
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "  0.0%", FormatPercent(0))
	assert.Equal(t, " 42.5%", FormatPercent(42.5))
	assert.Equal(t, "100.0%", FormatPercent(100))
}

func TestStatusLine_Render(t *testing.T) {
	plainOutput(t)

	s := NewStatusLine(&bytes.Buffer{}, fixedHistory{0, 50, 100})
	line := stripANSI(s.Render(25, gradient.Color{R: 64, G: 127}))

	assert.Contains(t, line, "cpu")
	assert.Contains(t, line, " 25.0%")
	assert.Contains(t, line, "#80fe00")
	assert.Contains(t, line, "▁▄█")
	assert.Contains(t, line, "avg  50.0%")
}

func TestStatusLine_NoHistory(t *testing.T) {
	plainOutput(t)

	s := NewStatusLine(&bytes.Buffer{}, nil)
	line := stripANSI(s.Render(10, gradient.Green))

	assert.False(t, containsBlockChar(line))
}

func TestStatusLine_Print(t *testing.T) {
	plainOutput(t)

	var buf bytes.Buffer
	NewStatusLine(&buf, nil).Print(99, gradient.Red)

	require.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), " 99.0%")
}

func TestSetColorMode(t *testing.T) {
	original := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(original)

	SetColorMode(ColorAlways, nil)
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile())

	SetColorMode(ColorNever, nil)
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())

	lipgloss.SetColorProfile(termenv.TrueColor)
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	SetColorMode(ColorAuto, f)
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile(), "a plain file is not a terminal")
}

func TestLinkDisplay(t *testing.T) {
	plainOutput(t)

	var buf bytes.Buffer
	d := NewLinkDisplay(&buf, "/dev/ttyUSB0")
	d.Connected(1)
	d.Lost("Failed to write to device", 5*time.Second)
	d.Connected(2)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], SymbolConnected+" Connected to /dev/ttyUSB0"))
	assert.True(t, strings.HasSuffix(lines[0], "attempt 1"))
	assert.True(t, strings.HasPrefix(lines[1], SymbolLost+" Link lost: Failed to write to device"))
	assert.True(t, strings.HasSuffix(lines[1], "retrying in 5s"))
	assert.True(t, strings.HasSuffix(lines[2], "attempt 2"))

	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]), "status column is right-aligned")
}

func TestLinkDisplay_LongMessageKeepsGap(t *testing.T) {
	plainOutput(t)

	var buf bytes.Buffer
	NewLinkDisplay(&buf, "/dev/serial/by-id/usb-1a86_USB2.0-Serial-if00-port0-with-a-very-long-name").Connected(3)

	assert.Contains(t, buf.String(), "port0-with-a-very-long-name  attempt 3")
}
