package monitor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory(5)
	assert.Equal(t, 0, h.Count())
	assert.Nil(t, h.All())

	assert.Equal(t, DefaultHistorySize, NewHistory(0).buf.size)
	assert.Equal(t, DefaultHistorySize, NewHistory(-3).buf.size)
}

func TestHistoryPushAndLast(t *testing.T) {
	h := NewHistory(5)
	for _, v := range []float64{10, 20, 30} {
		h.Push(v)
	}

	assert.Equal(t, 3, h.Count())
	assert.Equal(t, []float64{10, 20, 30}, h.All())
	assert.Equal(t, []float64{20, 30}, h.Last(2))
	assert.Equal(t, []float64{10, 20, 30}, h.Last(10))
	assert.Nil(t, h.Last(0))
}

func TestHistoryRingBufferOverflow(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 7; i++ {
		h.Push(float64(i))
	}

	assert.Equal(t, 3, h.Count())
	assert.Equal(t, []float64{5, 6, 7}, h.All())
}

func TestHistoryAverage(t *testing.T) {
	h := NewHistory(4)
	assert.Equal(t, 0.0, h.Average())

	h.Push(10)
	h.Push(30)
	assert.Equal(t, 20.0, h.Average())
}

func TestHistoryConcurrency(t *testing.T) {
	h := NewHistory(16)
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(v float64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Push(v)
			}
		}(float64(i))
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = h.Last(8)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, h.Count())
}
