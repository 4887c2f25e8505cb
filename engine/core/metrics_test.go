package core

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_Average(t *testing.T) {
	m := NewMetrics()
	if m.Average() != 0 {
		t.Errorf("Average() of no samples = %v, want 0", m.Average())
	}
	m.Update(10 * time.Millisecond)
	m.Update(30 * time.Millisecond)
	if got := m.Average(); got != 20*time.Millisecond {
		t.Errorf("Average() = %v, want 20ms", got)
	}
}

func TestMetrics_RollingWindow(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(time.Second)
	}
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(time.Millisecond)
	}
	if got := m.Average(); got != time.Millisecond {
		t.Errorf("Average() = %v, want only the last %d samples", got, AVG_COUNT)
	}
	count, total := m.Totals()
	if count != 2*int64(AVG_COUNT) || total != time.Duration(AVG_COUNT)*(time.Second+time.Millisecond) {
		t.Errorf("Totals() = %d, %v", count, total)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Update(time.Microsecond)
			}
		}()
	}
	wg.Wait()
	if count, _ := m.Totals(); count != 800 {
		t.Errorf("Totals() count = %d, want 800", count)
	}
}
