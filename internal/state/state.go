// Package state keeps a thread-safe record of the calculations run in a session.
package state

import (
	"sync"
	"time"
)

// Entry is one finished calculation.
type Entry struct {
	Timestamp time.Time
	Mode      string
	Summary   string // one-line result; empty on failure
	Err       error
	Duration  time.Duration
}

// Failed reports whether the calculation returned an error.
func (e Entry) Failed() bool {
	return e.Err != nil
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEntries int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 50,
	}
}

// Manager records calculations with thread-safe access. Calculations run
// off the UI loop, so Record and Snapshot may be called concurrently.
type Manager struct {
	mu sync.RWMutex

	// Ring buffer of recent entries
	entries    []Entry
	maxEntries int
	writeAt    int

	// Totals over the whole session
	runs      int
	failures  int
	totalTime time.Duration
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 50
	}
	return &Manager{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

// Record adds a finished calculation.
func (m *Manager) Record(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs++
	if e.Failed() {
		m.failures++
	}
	m.totalTime += e.Duration

	if len(m.entries) < m.maxEntries {
		m.entries = append(m.entries, e)
	} else {
		m.entries[m.writeAt] = e
		m.writeAt = (m.writeAt + 1) % m.maxEntries
	}
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Entries   []Entry // oldest first
	Runs      int
	Failures  int
	TotalTime time.Duration
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Entries:   m.entriesOrdered(),
		Runs:      m.runs,
		Failures:  m.failures,
		TotalTime: m.totalTime,
	}
}

// entriesOrdered returns entries in chronological order.
func (m *Manager) entriesOrdered() []Entry {
	if len(m.entries) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.entries) < m.maxEntries {
		result := make([]Entry, len(m.entries))
		copy(result, m.entries)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Entry, m.maxEntries)
	for i := 0; i < m.maxEntries; i++ {
		result[i] = m.entries[(m.writeAt+i)%m.maxEntries]
	}
	return result
}

// Recent returns the last n entries, oldest first.
func (m *Manager) Recent(n int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.entriesOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasEntries reports whether anything has been recorded.
func (m *Manager) HasEntries() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs > 0
}
