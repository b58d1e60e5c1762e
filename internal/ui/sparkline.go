package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline draws the most recent width percentages on a fixed 0-100
// scale, so a flat line at 90% looks different from a flat line at 10%.
// The line is drawn in color.
func RenderSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)

	for _, v := range data {
		sb.WriteRune(sparklineBlockRunes[level(v)])
	}

	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// level maps a percentage to a block index.
func level(pct float64) int {
	if math.IsNaN(pct) {
		return 0
	}
	numLevels := len(sparklineBlockRunes)
	l := int(pct / 100 * float64(numLevels-1))
	if l < 0 {
		return 0
	}
	if l >= numLevels {
		return numLevels - 1
	}
	return l
}
