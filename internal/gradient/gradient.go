// Package gradient maps a percentage in [0,100] to an RGB color using a
// linear gradient defined by a sorted list of color stops.
package gradient

import (
	"fmt"
	"math"
)

// Color is an RGB triple as sent to the device.
type Color struct {
	R, G, B uint8
}

// String renders the color as r,g,b.
func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Stop is a fixed point in the gradient: at Pct percent the color is Color.
type Stop struct {
	Pct   float64
	Color Color
}

// Gradient is an immutable, ascending sequence of stops.
type Gradient struct {
	stops []Stop
}

// Default colors used by the monitor.
var (
	Green  = Color{R: 0, G: 127, B: 0}
	Yellow = Color{R: 127, G: 127, B: 0}
	Red    = Color{R: 127, G: 0, B: 0}
)

// New builds a gradient from stops. Stops must be non-empty, sorted ascending
// by Pct, and must not repeat a percentage.
func New(stops ...Stop) (*Gradient, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("gradient needs at least one stop")
	}
	for i, s := range stops {
		if math.IsNaN(s.Pct) || math.IsInf(s.Pct, 0) {
			return nil, fmt.Errorf("stop %d has non-finite percentage %v", i, s.Pct)
		}
		if i == 0 {
			continue
		}
		prev := stops[i-1].Pct
		if s.Pct == prev {
			return nil, fmt.Errorf("stops %d and %d share percentage %v", i-1, i, s.Pct)
		}
		if s.Pct < prev {
			return nil, fmt.Errorf("stop %d (%v%%) is below stop %d (%v%%); stops must be ascending", i, s.Pct, i-1, prev)
		}
	}

	owned := make([]Stop, len(stops))
	copy(owned, stops)
	return &Gradient{stops: owned}, nil
}

// MustNew is like New but panics on invalid stops.
func MustNew(stops ...Stop) *Gradient {
	g, err := New(stops...)
	if err != nil {
		panic(err)
	}
	return g
}

// Default returns the green → yellow → red gradient.
func Default() *Gradient {
	return MustNew(
		Stop{Pct: 0, Color: Green},
		Stop{Pct: 50, Color: Yellow},
		Stop{Pct: 100, Color: Red},
	)
}

// Stops returns a copy of the gradient's stops.
func (g *Gradient) Stops() []Stop {
	out := make([]Stop, len(g.stops))
	copy(out, g.stops)
	return out
}

// ColorAt returns the color at pct.
//
// Values at or above 100 give the last stop, values at or below 0 (and NaN)
// give the first stop. Between stops each channel is linearly interpolated
// and rounded to nearest with ties going up.
func (g *Gradient) ColorAt(pct float64) Color {
	first, last := g.stops[0], g.stops[len(g.stops)-1]

	switch {
	case math.IsNaN(pct):
		return first.Color
	case pct >= 100:
		return last.Color
	case pct <= 0:
		return first.Color
	}

	for i, upper := range g.stops {
		if upper.Pct < pct {
			continue
		}
		if i == 0 || upper.Pct == pct {
			return upper.Color
		}
		return between(g.stops[i-1], upper, pct)
	}

	// Every stop sits below pct.
	return last.Color
}

// between interpolates the color at pct, which lies strictly inside (lower, upper).
func between(lower, upper Stop, pct float64) Color {
	t := (pct - lower.Pct) / (upper.Pct - lower.Pct)
	return Color{
		R: lerp(lower.Color.R, upper.Color.R, t),
		G: lerp(lower.Color.G, upper.Color.G, t),
		B: lerp(lower.Color.B, upper.Color.B, t),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	v := math.Floor(float64(a) + t*(float64(b)-float64(a)) + 0.5)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
