// Package protocol encodes the binary frames understood by the display device.
//
// Every frame starts with StartByte and ends with a marker naming its kind:
//
//	color:    [0xFF, R, G, B, 0xF0]
//	interval: [0xFF, MSB, LSB, 0xF1]
//
// The interval is carried in milliseconds as two 7-bit fields, so only
// values up to MaxIntervalMillis survive the trip. Larger values are masked,
// not rejected; callers must keep the interval in range.
package protocol

import (
	"errors"
	"fmt"
	"time"
)

// Frame markers
const (
	StartByte   byte = 0xFF
	ColorEnd    byte = 0xF0
	IntervalEnd byte = 0xF1
)

// Frame sizes
const (
	ColorFrameLen    = 5
	IntervalFrameLen = 4
)

// MaxIntervalMillis is the largest interval representable in 14 bits.
const MaxIntervalMillis = 1<<14 - 1

const sevenBits = 0x7F

// EncodeColor builds a color frame.
func EncodeColor(r, g, b uint8) []byte {
	return []byte{StartByte, r, g, b, ColorEnd}
}

// EncodeInterval builds an interval frame. Only the low 14 bits of millis are kept.
func EncodeInterval(millis int) []byte {
	msb := byte((millis >> 7) & sevenBits)
	lsb := byte(millis & sevenBits)
	return []byte{StartByte, msb, lsb, IntervalEnd}
}

// IntervalMillis converts d to whole milliseconds for EncodeInterval.
func IntervalMillis(d time.Duration) int {
	return int(d / time.Millisecond)
}

// Kind identifies a decoded frame.
type Kind int

const (
	KindColor Kind = iota
	KindInterval
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindInterval:
		return "interval"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message is a decoded frame.
type Message struct {
	Kind           Kind
	R, G, B        uint8
	IntervalMillis int
}

func (m Message) String() string {
	if m.Kind == KindInterval {
		return fmt.Sprintf("interval %dms", m.IntervalMillis)
	}
	return fmt.Sprintf("color (%d,%d,%d)", m.R, m.G, m.B)
}

// Decode errors
var (
	ErrShortFrame = errors.New("frame too short")
	ErrBadStart   = errors.New("frame does not begin with start byte")
	ErrBadEnd     = errors.New("frame has unknown end marker")
)

// Decode parses a single frame produced by EncodeColor or EncodeInterval.
func Decode(frame []byte) (Message, error) {
	if len(frame) < IntervalFrameLen {
		return Message{}, ErrShortFrame
	}
	if frame[0] != StartByte {
		return Message{}, ErrBadStart
	}

	switch {
	case len(frame) == IntervalFrameLen && frame[3] == IntervalEnd:
		return Message{
			Kind:           KindInterval,
			IntervalMillis: int(frame[1]&sevenBits)<<7 | int(frame[2]&sevenBits),
		}, nil
	case len(frame) == ColorFrameLen && frame[4] == ColorEnd:
		return Message{Kind: KindColor, R: frame[1], G: frame[2], B: frame[3]}, nil
	case len(frame) < ColorFrameLen && frame[len(frame)-1] == ColorEnd:
		return Message{}, ErrShortFrame
	default:
		return Message{}, fmt.Errorf("%w: 0x%02X", ErrBadEnd, frame[len(frame)-1])
	}
}
