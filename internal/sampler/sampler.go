// Package sampler measures host CPU utilization.
package sampler

import (
	"context"
	"math"
	"time"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/shirou/gopsutil/v4/cpu"
)

// Sampler returns CPU usage in percent, measured over window.
// Implementations block for roughly window; callers rely on that for pacing.
type Sampler interface {
	Sample(ctx context.Context, window time.Duration) (float64, error)
}

// PercentFunc matches cpu.PercentWithContext.
type PercentFunc func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)

// CPU samples aggregate utilization across all cores via gopsutil.
type CPU struct {
	percent PercentFunc
	now     func() time.Time
	wait    func(ctx context.Context, d time.Duration) error
}

// NewCPU returns a sampler backed by gopsutil.
func NewCPU() *CPU {
	return &CPU{
		percent: cpu.PercentWithContext,
		now:     time.Now,
		wait:    Wait,
	}
}

// NewCPUWith returns a sampler using custom percent and clock functions.
// Useful for tests.
func NewCPUWith(percent PercentFunc, now func() time.Time, wait func(ctx context.Context, d time.Duration) error) *CPU {
	return &CPU{percent: percent, now: now, wait: wait}
}

// Sample measures CPU usage over window. If the underlying call returns early
// (an error, or a platform that does not block), the rest of the window is
// waited out so the caller's cadence holds.
func (c *CPU) Sample(ctx context.Context, window time.Duration) (float64, error) {
	start := c.now()
	values, err := c.percent(ctx, window, false)

	if remaining := window - c.now().Sub(start); remaining > 0 {
		if werr := c.wait(ctx, remaining); werr != nil {
			return 0, werr
		}
	}

	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, errors.WrapWithCode(err, errors.ErrSample,
			"Failed to read CPU usage",
			"Check that /proc/stat (or the platform equivalent) is readable")
	}
	if len(values) == 0 {
		return 0, errors.New(errors.ErrSample,
			"CPU usage sample came back empty",
			"")
	}

	return Clamp(values[0]), nil
}

// Clamp limits pct to [0,100]. NaN becomes 0.
func Clamp(pct float64) float64 {
	switch {
	case math.IsNaN(pct), pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// Wait sleeps for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
