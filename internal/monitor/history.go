package monitor

import "sync"

// DefaultHistorySize is the default number of CPU samples to retain.
const DefaultHistorySize = 60

// History keeps the most recent CPU samples in a ring buffer.
// It is safe for concurrent use so a status renderer can read while the
// loop writes.
type History struct {
	mu  sync.RWMutex
	buf *ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history with room for size samples.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{buf: newRingBuffer(size)}
}

// Push records a CPU percentage.
func (h *History) Push(pct float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.push(pct)
}

// Last returns up to count recent samples, oldest first.
func (h *History) Last(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.getLast(count)
}

// All returns every stored sample, oldest first.
func (h *History) All() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.getLast(h.buf.count)
}

// Count returns the number of stored samples.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.count
}

// Average returns the mean of stored samples, or 0 when empty.
func (h *History) Average() float64 {
	values := h.All()
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head is the next write position, so the newest value sits at head-1.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}
