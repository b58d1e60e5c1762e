// Package link keeps the device connection alive across I/O failures.
package link

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/rileyhilliard/cpuglow/internal/logger"
	"github.com/rileyhilliard/cpuglow/internal/serial"
)

// DefaultBackoff is the wait between a failed attempt and the next open.
const DefaultBackoff = 5 * time.Second

// Opener opens a fresh device link.
type Opener func(ctx context.Context) (serial.Port, error)

// Runner is one connection's worth of work, normally a *monitor.Loop.
// Run returns when the link fails or ctx is done.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFactory builds a Runner bound to an open port.
type RunnerFactory func(port serial.Port) Runner

// EventKind says what happened to the link.
type EventKind int

const (
	// EventOpened fires once the port is open, before the runner starts.
	EventOpened EventKind = iota
	// EventFailed fires when an attempt ends with an error, before the backoff.
	EventFailed
)

// Event describes a link state change.
type Event struct {
	Kind    EventKind
	Attempt int
	// Err and Backoff are set for EventFailed.
	Err     error
	Backoff time.Duration
}

// Supervisor opens the link, runs a fresh Runner on it, and on failure
// closes the link, backs off, and starts over. Only one attempt is active
// at a time.
type Supervisor struct {
	open      Opener
	newRunner RunnerFactory
	backoff   time.Duration
	wait      func(ctx context.Context, d time.Duration) error
	log       logger.Logger
	notify    func(Event)

	attempts int
	lastErr  error
}

// Option customizes a Supervisor.
type Option func(*Supervisor)

// WithBackoff sets the delay between attempts.
func WithBackoff(d time.Duration) Option {
	return func(s *Supervisor) { s.backoff = d }
}

// WithWait replaces the backoff sleep. Tests use it to skip real delays.
func WithWait(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Supervisor) { s.wait = wait }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Supervisor) { s.log = l }
}

// WithNotify registers fn to hear about link state changes.
func WithNotify(fn func(Event)) Option {
	return func(s *Supervisor) { s.notify = fn }
}

// New creates a supervisor.
func New(open Opener, newRunner RunnerFactory, opts ...Option) *Supervisor {
	s := &Supervisor{
		open:      open,
		newRunner: newRunner,
		backoff:   DefaultBackoff,
		wait:      sleep,
		log:       logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attempts returns how many times the link has been opened (or tried).
func (s *Supervisor) Attempts() int {
	return s.attempts
}

// LastError returns the error that ended the most recent attempt.
func (s *Supervisor) LastError() error {
	return s.lastErr
}

// Run supervises the link until ctx is done. Interruption is not a failure,
// so Run always returns nil; attempt errors are logged and retried.
func (s *Supervisor) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		s.attempts++
		err := s.attempt(ctx)
		if ctx.Err() != nil {
			break
		}

		if err == nil {
			err = errors.New(errors.ErrSerial, "Device loop exited without an error", "")
		}
		s.lastErr = err
		s.log.Error("attempt %d: %s", s.attempts, errors.Summarize(err))
		s.log.Info("retrying in %s", s.backoff)
		s.emit(Event{Kind: EventFailed, Attempt: s.attempts, Err: err, Backoff: s.backoff})

		if werr := s.wait(ctx, s.backoff); werr != nil {
			break
		}
	}

	s.log.Debug("stopping after %d attempt(s)", s.attempts)
	return nil
}

// attempt opens one link, runs one Runner on it, and releases the handle.
// When ctx ends the port is closed right away, so a Write stuck on an
// unresponsive device returns instead of holding up shutdown.
func (s *Supervisor) attempt(ctx context.Context) error {
	port, err := s.open(ctx)
	if err != nil {
		return err
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			if cerr := port.Close(); cerr != nil {
				s.log.Debug("closing link: %v", cerr)
			}
		})
	}
	done := make(chan struct{})
	defer release()
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			release()
		case <-done:
		}
	}()

	s.log.Info("link open (attempt %d)", s.attempts)
	s.emit(Event{Kind: EventOpened, Attempt: s.attempts})
	return s.newRunner(port).Run(ctx)
}

func (s *Supervisor) emit(e Event) {
	if s.notify != nil {
		s.notify(e)
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
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
