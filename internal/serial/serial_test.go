package serial

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/rileyhilliard/cpuglow/internal/logger"
	"github.com/rileyhilliard/cpuglow/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")

	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, 9600, cfg.Baud)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
}

func TestOpen_NilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestOpen_MissingDevice(t *testing.T) {
	device := filepath.Join(t.TempDir(), "no-such-tty")

	port, err := Open(DefaultConfig(device))

	require.Error(t, err)
	assert.Nil(t, port)
	assert.True(t, errors.IsCode(err, errors.ErrSerial))
	assert.Contains(t, err.Error(), device)
}

func TestLogSink_LogsFrames(t *testing.T) {
	log := logger.NewBufferLogger()
	sink := NewLogSink(log)

	n, err := sink.Write(protocol.EncodeInterval(1000))
	require.NoError(t, err)
	assert.Equal(t, protocol.IntervalFrameLen, n)

	n, err = sink.Write(protocol.EncodeColor(64, 127, 0))
	require.NoError(t, err)
	assert.Equal(t, protocol.ColorFrameLen, n)

	assert.True(t, log.Contains("info", "interval 1000ms"))
	assert.True(t, log.Contains("info", "color (64,127,0)"))
	assert.NoError(t, sink.Flush())
}

func TestLogSink_WarnsOnGarbage(t *testing.T) {
	log := logger.NewBufferLogger()
	sink := NewLogSink(log)

	n, err := sink.Write([]byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, log.HasLevel("warn"))
}

func TestLogSink_WriteAfterClose(t *testing.T) {
	sink := NewLogSink(logger.Noop())
	require.NoError(t, sink.Close())

	_, err := sink.Write(protocol.EncodeColor(1, 2, 3))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestPortImplementations(t *testing.T) {
	var _ Port = (*NativePort)(nil)
	var _ Port = (*LogSink)(nil)
}
