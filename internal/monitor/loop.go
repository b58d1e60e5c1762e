package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/rileyhilliard/cpuglow/internal/gradient"
	"github.com/rileyhilliard/cpuglow/internal/logger"
	"github.com/rileyhilliard/cpuglow/internal/protocol"
	"github.com/rileyhilliard/cpuglow/internal/sampler"
)

// Timing defaults for a loop.
const (
	DefaultInterval      = time.Second
	DefaultWarmup        = 5 * time.Second
	DefaultAnnounceEvery = 10
)

// State is the lifecycle stage of a Loop.
type State int

const (
	// StateStarting covers the warm-up delay and the first interval frame.
	StateStarting State = iota
	// StateRunning is the sample/write cycle.
	StateRunning
	// StateFailed is terminal: a write to the device failed.
	StateFailed
	// StateStopped is terminal: the context was canceled.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config controls loop timing.
type Config struct {
	// Interval is the CPU sampling window, echoed to the device in ms.
	// Must stay below protocol.MaxIntervalMillis.
	Interval time.Duration

	// Warmup is how long to wait after the link opens before sending anything.
	Warmup time.Duration

	// AnnounceEvery is the number of color frames between interval frames.
	AnnounceEvery int
}

// DefaultConfig returns the standard timing.
func DefaultConfig() Config {
	return Config{
		Interval:      DefaultInterval,
		Warmup:        DefaultWarmup,
		AnnounceEvery: DefaultAnnounceEvery,
	}
}

// Reading is one sample and the color it produced.
type Reading struct {
	Percent float64
	Color   gradient.Color
}

// Stats counts what a loop has sent.
type Stats struct {
	ColorFrames    int
	IntervalFrames int
	SampleErrors   int
}

// Loop samples CPU usage and drives the device over out.
// A Loop runs once; after Run returns, build a new one for the next link.
type Loop struct {
	out      io.Writer
	sampler  sampler.Sampler
	gradient *gradient.Gradient
	cfg      Config
	log      logger.Logger
	wait     func(ctx context.Context, d time.Duration) error
	history  *History
	observe  func(Reading)

	state State
	// colors sent since the last interval frame
	sinceAnnounce int
	stats         Stats
}

// Option customizes a Loop.
type Option func(*Loop)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(lp *Loop) { lp.log = l }
}

// WithGradient replaces the default gradient.
func WithGradient(g *gradient.Gradient) Option {
	return func(lp *Loop) { lp.gradient = g }
}

// WithWait replaces the warm-up sleep. Tests use it to skip real delays.
func WithWait(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(lp *Loop) { lp.wait = wait }
}

// WithHistory records every successful sample into h.
func WithHistory(h *History) Option {
	return func(lp *Loop) { lp.history = h }
}

// WithObserver is called after each color frame is written.
func WithObserver(fn func(Reading)) Option {
	return func(lp *Loop) { lp.observe = fn }
}

// NewLoop creates a loop writing frames to out. A non-positive Interval or
// AnnounceEvery falls back to its default.
func NewLoop(out io.Writer, s sampler.Sampler, cfg Config, opts ...Option) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.AnnounceEvery <= 0 {
		cfg.AnnounceEvery = DefaultAnnounceEvery
	}
	l := &Loop{
		out:      out,
		sampler:  s,
		gradient: gradient.Default(),
		cfg:      cfg,
		log:      logger.Noop(),
		wait:     sampler.Wait,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Stats returns frame counters.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run warms up, announces the interval, then samples and writes colors until
// a write fails or ctx is done. A write failure returns an ErrSerial error and
// leaves the loop in StateFailed; cancellation returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	if l.state != StateStarting {
		return fmt.Errorf("monitor loop already ran (state %s)", l.state)
	}

	l.log.Debug("warming up for %s", l.cfg.Warmup)
	if err := l.wait(ctx, l.cfg.Warmup); err != nil {
		return l.stop(err)
	}
	if err := l.writeInterval(); err != nil {
		return l.fail(err)
	}

	l.state = StateRunning
	for {
		pct, err := l.sampler.Sample(ctx, l.cfg.Interval)
		if ctx.Err() != nil {
			return l.stop(ctx.Err())
		}
		if err != nil {
			// The device keeps showing the last color until the next good sample.
			l.stats.SampleErrors++
			l.log.Warn("skipping tick: %s", errors.Summarize(err))
			continue
		}

		reading, err := l.writeColor(pct)
		if err != nil {
			return l.fail(err)
		}
		if l.history != nil {
			l.history.Push(pct)
		}
		if l.observe != nil {
			l.observe(reading)
		}

		l.sinceAnnounce++
		if l.sinceAnnounce >= l.cfg.AnnounceEvery {
			if err := l.writeInterval(); err != nil {
				return l.fail(err)
			}
			l.sinceAnnounce = 0
		}
	}
}

func (l *Loop) writeColor(pct float64) (Reading, error) {
	c := l.gradient.ColorAt(pct)
	if err := l.write(protocol.EncodeColor(c.R, c.G, c.B)); err != nil {
		return Reading{}, err
	}
	l.stats.ColorFrames++
	l.log.Debug("cpu %.1f%% -> %s", pct, c)
	return Reading{Percent: pct, Color: c}, nil
}

func (l *Loop) writeInterval() error {
	millis := protocol.IntervalMillis(l.cfg.Interval)
	if err := l.write(protocol.EncodeInterval(millis)); err != nil {
		return err
	}
	l.stats.IntervalFrames++
	l.log.Debug("announced interval %dms", millis)
	return nil
}

func (l *Loop) write(frame []byte) error {
	n, err := l.out.Write(frame)
	if err == nil && n < len(frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSerial,
			"Failed to write to device",
			"The link will be reopened")
	}
	return nil
}

func (l *Loop) fail(err error) error {
	l.state = StateFailed
	return err
}

func (l *Loop) stop(err error) error {
	l.state = StateStopped
	return err
}
