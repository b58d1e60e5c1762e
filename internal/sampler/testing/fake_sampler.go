// Package testing provides test doubles for the sampler package.
package testing

import (
	"context"
	"sync"
	"time"
)

// FakeSampler replays a list of readings without blocking.
// After the list runs out the last value repeats.
type FakeSampler struct {
	mu      sync.Mutex
	values  []float64
	errs    map[int]error
	windows []time.Duration

	// OnSample runs after each call with the 1-based call number.
	// Tests use it to cancel a context after N samples.
	OnSample func(call int)
}

// NewFakeSampler creates a sampler returning values in order.
func NewFakeSampler(values ...float64) *FakeSampler {
	return &FakeSampler{
		values: values,
		errs:   make(map[int]error),
	}
}

// FailOn makes the given 1-based call return err.
func (f *FakeSampler) FailOn(call int, err error) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[call] = err
	return f
}

// Sample returns the next reading.
func (f *FakeSampler) Sample(ctx context.Context, window time.Duration) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f.mu.Lock()
	f.windows = append(f.windows, window)
	call := len(f.windows)
	err := f.errs[call]
	var v float64
	if len(f.values) > 0 {
		i := call - 1
		if i >= len(f.values) {
			i = len(f.values) - 1
		}
		v = f.values[i]
	}
	hook := f.OnSample
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Calls reports how many times Sample was called.
func (f *FakeSampler) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.windows)
}

// Windows returns the window passed to each call.
func (f *FakeSampler) Windows() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.windows))
	copy(out, f.windows)
	return out
}
