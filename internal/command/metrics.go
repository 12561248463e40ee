package command

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects execution statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-command metrics
	commands map[string]*CommandMetrics

	// Global counters
	totalExecutions uint64
	totalFailures   uint64
	totalPanics     uint64
	totalUnknown    uint64
	totalRejected   uint64
	totalTruncated  uint64

	// Timing
	totalDuration time.Duration
}

// CommandMetrics holds metrics for a single command.
type CommandMetrics struct {
	Name           string
	ExecutionCount uint64
	FailureCount   uint64
	TotalDuration  time.Duration
	MinDuration    time.Duration
	MaxDuration    time.Duration
	LastCode       int
	LastExecution  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*CommandMetrics),
	}
}

// RecordExecution records one handler invocation and its return code.
func (m *Metrics) RecordExecution(name string, duration time.Duration, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalExecutions++
	m.totalDuration += duration
	if code != 0 {
		m.totalFailures++
	}

	cm := m.commands[name]
	if cm == nil {
		cm = &CommandMetrics{
			Name:        name,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.commands[name] = cm
	}

	cm.ExecutionCount++
	cm.TotalDuration += duration
	cm.LastCode = code
	cm.LastExecution = time.Now()

	if duration < cm.MinDuration {
		cm.MinDuration = duration
	}
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}
	if code != 0 {
		cm.FailureCount++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// RecordUnknown records a sub-command naming an unregistered command.
func (m *Metrics) RecordUnknown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalUnknown++
}

// RecordRejected records a sub-command the tokenizer could not parse.
func (m *Metrics) RecordRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRejected++
}

// RecordTruncated records a sub-command cut by the line or token limit.
func (m *Metrics) RecordTruncated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalTruncated++
}

// CommandStats returns a copy of the metrics for name, or nil.
func (m *Metrics) CommandStats(name string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commands[name]
	if cm == nil {
		return nil
	}
	c := *cm
	return &c
}

// TopCommands returns the n most executed commands.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmds := make([]*CommandMetrics, 0, len(m.commands))
	for _, cm := range m.commands {
		c := *cm
		cmds = append(cmds, &c)
	}

	sort.Slice(cmds, func(i, j int) bool {
		if cmds[i].ExecutionCount != cmds[j].ExecutionCount {
			return cmds[i].ExecutionCount > cmds[j].ExecutionCount
		}
		return cmds[i].Name < cmds[j].Name
	})

	if n > len(cmds) {
		n = len(cmds)
	}
	return cmds[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = make(map[string]*CommandMetrics)
	m.totalExecutions = 0
	m.totalFailures = 0
	m.totalPanics = 0
	m.totalUnknown = 0
	m.totalRejected = 0
	m.totalTruncated = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalExecutions uint64
	TotalFailures   uint64
	TotalPanics     uint64
	TotalUnknown    uint64
	TotalRejected   uint64
	TotalTruncated  uint64
	AverageDuration time.Duration
	CommandCount    int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalExecutions: m.totalExecutions,
		TotalFailures:   m.totalFailures,
		TotalPanics:     m.totalPanics,
		TotalUnknown:    m.totalUnknown,
		TotalRejected:   m.totalRejected,
		TotalTruncated:  m.totalTruncated,
		CommandCount:    len(m.commands),
		Timestamp:       time.Now(),
	}

	if m.totalExecutions > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalExecutions)
	}

	return snapshot
}

// AverageDuration returns the average handler duration for the command.
func (cm *CommandMetrics) AverageDuration() time.Duration {
	if cm.ExecutionCount == 0 {
		return 0
	}
	return cm.TotalDuration / time.Duration(cm.ExecutionCount)
}

// FailureRate returns the failure rate as a percentage.
func (cm *CommandMetrics) FailureRate() float64 {
	if cm.ExecutionCount == 0 {
		return 0
	}
	return float64(cm.FailureCount) / float64(cm.ExecutionCount) * 100
}
