package core

import (
	"sync"
	"time"
)

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling average over the last AVG_COUNT samples along
// with a running total. It is safe for concurrent use.
type Metrics struct {
	mutex sync.Mutex

	avgCounter uint8
	filled     uint8
	times      [AVG_COUNT]time.Duration
	count      int64
	total      time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Update records one sample.
func (m *Metrics) Update(elapsed time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.times[m.avgCounter] = elapsed
	m.avgCounter++
	m.avgCounter %= AVG_COUNT
	if m.filled < AVG_COUNT {
		m.filled++
	}

	m.count++
	m.total += elapsed
}

// Average returns the mean of the most recent samples.
func (m *Metrics) Average() time.Duration {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.filled == 0 {
		return 0
	}
	var sum time.Duration
	for i := uint8(0); i < m.filled; i++ {
		sum += m.times[i]
	}
	return sum / time.Duration(m.filled)
}

// Totals returns how many samples were recorded and their sum.
func (m *Metrics) Totals() (int64, time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.count, m.total
}
