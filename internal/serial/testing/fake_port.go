// Package testing provides test doubles for the serial package.
package testing

import (
	"errors"
	"sync"
)

// ErrInjected is returned by FakePort on a scheduled failure.
var ErrInjected = errors.New("injected write failure")

// FakePort records frames written to it and can fail on a chosen write.
type FakePort struct {
	mu      sync.Mutex
	frames  [][]byte
	writes  int
	failOn  int
	failErr error
	short   bool
	closed  bool
	flushes int
}

// NewFakePort creates a port that accepts every write.
func NewFakePort() *FakePort {
	return &FakePort{}
}

// FailOnWrite makes the nth write (1-based) fail with err.
// Later writes keep failing, like a device that went away.
func (p *FakePort) FailOnWrite(n int, err error) *FakePort {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	p.failOn = n
	p.failErr = err
	return p
}

// ShortWriteOn makes the nth write accept one byte less than asked, with no error.
func (p *FakePort) ShortWriteOn(n int) *FakePort {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failOn = n
	p.short = true
	return p
}

// Write records b unless a failure is scheduled.
func (p *FakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.writes++
	if p.closed {
		return 0, errors.New("write on closed port")
	}
	if p.failOn > 0 && p.writes >= p.failOn {
		if p.short {
			if p.writes == p.failOn {
				return len(b) - 1, nil
			}
		} else {
			return 0, p.failErr
		}
	}

	frame := make([]byte, len(b))
	copy(frame, b)
	p.frames = append(p.frames, frame)
	return len(b), nil
}

// Close marks the port closed.
func (p *FakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Flush counts flush calls.
func (p *FakePort) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushes++
	return nil
}

// Frames returns copies of the successfully written frames.
func (p *FakePort) Frames() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.frames))
	for i, f := range p.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// Writes reports how many writes were attempted.
func (p *FakePort) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// Closed reports whether Close was called.
func (p *FakePort) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
