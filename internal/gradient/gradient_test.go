package gradient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		stops   []Stop
		wantErr string
	}{
		{
			name:    "empty",
			stops:   nil,
			wantErr: "at least one stop",
		},
		{
			name:    "duplicate percentage",
			stops:   []Stop{{Pct: 0, Color: Green}, {Pct: 0, Color: Red}},
			wantErr: "share percentage",
		},
		{
			name:    "descending",
			stops:   []Stop{{Pct: 50, Color: Green}, {Pct: 10, Color: Red}},
			wantErr: "ascending",
		},
		{
			name:    "nan percentage",
			stops:   []Stop{{Pct: math.NaN(), Color: Green}},
			wantErr: "non-finite",
		},
		{
			name:  "single stop",
			stops: []Stop{{Pct: 30, Color: Yellow}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.stops...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew() })
}

func TestNew_CopiesStops(t *testing.T) {
	stops := []Stop{{Pct: 0, Color: Green}, {Pct: 100, Color: Red}}
	g := MustNew(stops...)

	stops[0].Color = Yellow
	assert.Equal(t, Green, g.ColorAt(0))

	out := g.Stops()
	out[1].Color = Yellow
	assert.Equal(t, Red, g.ColorAt(100))
}

func TestColorAt_DefaultGradient(t *testing.T) {
	g := Default()

	tests := []struct {
		name string
		pct  float64
		want Color
	}{
		{name: "zero", pct: 0, want: Green},
		{name: "quarter", pct: 25, want: Color{R: 64, G: 127, B: 0}},
		{name: "half", pct: 50, want: Yellow},
		{name: "three quarters", pct: 75, want: Color{R: 127, G: 64, B: 0}},
		{name: "full", pct: 100, want: Red},
		{name: "just above zero", pct: 0.1, want: Color{R: 0, G: 127, B: 0}},
		{name: "ten percent", pct: 10, want: Color{R: 25, G: 127, B: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.ColorAt(tt.pct))
		})
	}
}

func TestColorAt_ClampsByValue(t *testing.T) {
	g := Default()

	for _, pct := range []float64{0, -0.0001, -5, -100, math.Inf(-1), math.NaN()} {
		assert.Equal(t, Green, g.ColorAt(pct), "pct %v", pct)
	}
	for _, pct := range []float64{100, 100.0001, 150, math.Inf(1)} {
		assert.Equal(t, Red, g.ColorAt(pct), "pct %v", pct)
	}
}

func TestColorAt_StopsOutsideLogicalRange(t *testing.T) {
	// Stops stored beyond [0,100] are still reached only through the value clamp.
	g := MustNew(
		Stop{Pct: -50, Color: Color{R: 10}},
		Stop{Pct: 150, Color: Color{R: 210}},
	)

	assert.Equal(t, Color{R: 10}, g.ColorAt(-1))
	assert.Equal(t, Color{R: 210}, g.ColorAt(101))
	// 50% sits halfway between -50 and 150.
	assert.Equal(t, Color{R: 110}, g.ColorAt(50))
}

func TestColorAt_ExactStops(t *testing.T) {
	g := MustNew(
		Stop{Pct: 0, Color: Color{R: 1, G: 2, B: 3}},
		Stop{Pct: 12.5, Color: Color{R: 200, G: 17, B: 99}},
		Stop{Pct: 33, Color: Color{R: 5, G: 250, B: 40}},
		Stop{Pct: 100, Color: Color{R: 255, G: 255, B: 255}},
	)

	for _, s := range g.Stops() {
		assert.Equal(t, s.Color, g.ColorAt(s.Pct), "stop at %v", s.Pct)
	}
}

func TestColorAt_BelowFirstStop(t *testing.T) {
	g := MustNew(
		Stop{Pct: 20, Color: Green},
		Stop{Pct: 80, Color: Red},
	)

	assert.Equal(t, Green, g.ColorAt(5))
	assert.Equal(t, Green, g.ColorAt(20))
}

func TestColorAt_AboveLastStop(t *testing.T) {
	g := MustNew(
		Stop{Pct: 20, Color: Green},
		Stop{Pct: 80, Color: Red},
	)

	assert.Equal(t, Red, g.ColorAt(90))
}

func TestColorAt_SingleStop(t *testing.T) {
	g := MustNew(Stop{Pct: 40, Color: Yellow})

	for _, pct := range []float64{-1, 0, 10, 40, 70, 100} {
		assert.Equal(t, Yellow, g.ColorAt(pct))
	}
}

func TestColorAt_RoundsTiesUp(t *testing.T) {
	g := MustNew(
		Stop{Pct: 0, Color: Color{R: 0, G: 0, B: 0}},
		Stop{Pct: 100, Color: Color{R: 1, G: 3, B: 5}},
	)

	// At 50%: 0.5, 1.5, 2.5 all round up.
	assert.Equal(t, Color{R: 1, G: 2, B: 3}, g.ColorAt(50))
}

func TestColorAt_BoundedAndMonotonic(t *testing.T) {
	g := MustNew(
		Stop{Pct: 0, Color: Color{R: 0, G: 255, B: 30}},
		Stop{Pct: 40, Color: Color{R: 200, G: 0, B: 30}},
		Stop{Pct: 70, Color: Color{R: 90, G: 90, B: 255}},
		Stop{Pct: 100, Color: Color{R: 255, G: 0, B: 0}},
	)
	stops := g.Stops()

	channel := func(c Color, i int) int {
		return []int{int(c.R), int(c.G), int(c.B)}[i]
	}

	for s := 1; s < len(stops); s++ {
		lower, upper := stops[s-1], stops[s]
		prev := lower.Color

		for pct := lower.Pct + 0.25; pct < upper.Pct; pct += 0.25 {
			got := g.ColorAt(pct)
			for ch := 0; ch < 3; ch++ {
				lo, hi := channel(lower.Color, ch), channel(upper.Color, ch)
				v := channel(got, ch)
				if lo > hi {
					lo, hi = hi, lo
				}
				assert.GreaterOrEqual(t, v, lo, "pct %v channel %d", pct, ch)
				assert.LessOrEqual(t, v, hi, "pct %v channel %d", pct, ch)

				step := v - channel(prev, ch)
				if channel(upper.Color, ch) >= channel(lower.Color, ch) {
					assert.GreaterOrEqual(t, step, 0, "pct %v channel %d should not decrease", pct, ch)
				} else {
					assert.LessOrEqual(t, step, 0, "pct %v channel %d should not increase", pct, ch)
				}
			}
			prev = got
		}
	}
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "(127,127,0)", Yellow.String())
}
