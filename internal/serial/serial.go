// Package serial opens the link to the display device.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/rileyhilliard/cpuglow/internal/logger"
	"github.com/rileyhilliard/cpuglow/internal/protocol"
	"github.com/tarm/serial"
)

// Defaults for the device link. The protocol is write-only, so the read
// timeout only bounds how long opening the port can stall.
const (
	DefaultBaud        = 9600
	DefaultReadTimeout = time.Second
)

// Port is a write side of the device link.
type Port interface {
	io.WriteCloser

	// Flush discards any buffered data not yet transmitted
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate expected by the device firmware
	Baud int

	// ReadTimeout bounds blocking reads and open (0 = blocking)
	ReadTimeout time.Duration
}

// DefaultConfig returns the configuration the device firmware expects.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
	}
}

// NativePort wraps the tarm/serial implementation
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSerial,
			fmt.Sprintf("Failed to open serial port %s", cfg.Device),
			"Check the device is plugged in and you have permission to use it (dialout group on Linux)")
	}

	return &NativePort{port: port, cfg: cfg}, nil
}

// Write writes data to the serial port
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush discards pending data in the port buffers
func (p *NativePort) Flush() error {
	return p.port.Flush()
}

// Device returns the path the port was opened on.
func (p *NativePort) Device() string {
	return p.cfg.Device
}

// LogSink is a Port that logs decoded frames instead of sending them.
// It backs --dry-run.
type LogSink struct {
	log    logger.Logger
	closed bool
}

// NewLogSink creates a dry-run port.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// Write decodes b as a single frame and logs it.
func (s *LogSink) Write(b []byte) (int, error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	msg, err := protocol.Decode(b)
	if err != nil {
		s.log.Warn("dry-run: undecodable frame % X: %v", b, err)
		return len(b), nil
	}
	s.log.Info("dry-run: %s (% X)", msg, b)
	return len(b), nil
}

// Close marks the sink closed; later writes fail.
func (s *LogSink) Close() error {
	s.closed = true
	return nil
}

// Flush is a no-op.
func (s *LogSink) Flush() error {
	return nil
}
