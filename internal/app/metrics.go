package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/harness/internal/event"
)

// Metrics tracks main loop statistics.
type Metrics struct {
	mu sync.RWMutex

	// Loop iterations
	pumpCount atomic.Uint64

	// Event handling
	eventCount    atomic.Uint64
	eventTotalNs  atomic.Int64
	eventMaxNs    atomic.Int64
	handlerErrors atomic.Uint64
	byKind        map[event.Kind]uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		byKind:    make(map[event.Kind]uint64),
		startTime: time.Now(),
	}
}

// RecordPump records one pass over the queue.
func (m *Metrics) RecordPump() {
	m.pumpCount.Add(1)
}

// RecordEvent records one handled event and the time its handler took.
func (m *Metrics) RecordEvent(kind event.Kind, duration time.Duration) {
	ns := duration.Nanoseconds()

	m.eventCount.Add(1)
	m.eventTotalNs.Add(ns)

	for {
		old := m.eventMaxNs.Load()
		if ns <= old {
			break
		}
		if m.eventMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}

	m.mu.Lock()
	m.byKind[kind]++
	m.mu.Unlock()
}

// RecordHandlerError records a handler that returned an error.
func (m *Metrics) RecordHandlerError() {
	m.handlerErrors.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the loop metrics.
type MetricsSnapshot struct {
	Pumps         uint64
	Events        uint64
	HandlerErrors uint64
	AvgEventTime  time.Duration
	MaxEventTime  time.Duration
	EventsByKind  map[event.Kind]uint64
	Uptime        time.Duration
	SnapshotTime  time.Time
}

// Snapshot returns the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Pumps:         m.pumpCount.Load(),
		Events:        m.eventCount.Load(),
		HandlerErrors: m.handlerErrors.Load(),
		MaxEventTime:  time.Duration(m.eventMaxNs.Load()),
		SnapshotTime:  time.Now(),
	}
	if s.Events > 0 {
		s.AvgEventTime = time.Duration(m.eventTotalNs.Load() / int64(s.Events))
	}

	m.mu.RLock()
	s.Uptime = s.SnapshotTime.Sub(m.startTime)
	s.EventsByKind = make(map[event.Kind]uint64, len(m.byKind))
	for k, n := range m.byKind {
		s.EventsByKind[k] = n
	}
	m.mu.RUnlock()

	return s
}

// Reset clears all metrics and restarts the uptime clock.
func (m *Metrics) Reset() {
	m.pumpCount.Store(0)
	m.eventCount.Store(0)
	m.eventTotalNs.Store(0)
	m.eventMaxNs.Store(0)
	m.handlerErrors.Store(0)

	m.mu.Lock()
	m.byKind = make(map[event.Kind]uint64)
	m.startTime = time.Now()
	m.mu.Unlock()
}
