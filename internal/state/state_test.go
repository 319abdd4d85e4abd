package state

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	m := NewManager(DefaultConfig())
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.HasEntries() {
		t.Error("HasEntries should be false initially")
	}
	if snap := m.Snapshot(); snap.Entries != nil || snap.Runs != 0 {
		t.Errorf("initial snapshot = %+v", snap)
	}

	if m := NewManager(Config{}); m.maxEntries != 50 {
		t.Errorf("zero config maxEntries = %d, want 50", m.maxEntries)
	}
}

func TestManager_Record(t *testing.T) {
	m := NewManager(DefaultConfig())
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	m.Record(Entry{Timestamp: now, Mode: "propagate", Summary: "ok", Duration: 2 * time.Millisecond})
	m.Record(Entry{Timestamp: now.Add(time.Second), Mode: "elements", Err: errors.New("zero-norm position"), Duration: time.Millisecond})

	snap := m.Snapshot()
	if snap.Runs != 2 || snap.Failures != 1 {
		t.Errorf("runs/failures = %d/%d, want 2/1", snap.Runs, snap.Failures)
	}
	if snap.TotalTime != 3*time.Millisecond {
		t.Errorf("TotalTime = %v, want 3ms", snap.TotalTime)
	}
	if len(snap.Entries) != 2 || snap.Entries[0].Mode != "propagate" {
		t.Fatalf("entries = %+v", snap.Entries)
	}
	if snap.Entries[0].Failed() || !snap.Entries[1].Failed() {
		t.Error("Failed() should follow Err")
	}
	if !m.HasEntries() {
		t.Error("HasEntries should be true after Record")
	}
}

func TestManager_RingBuffer(t *testing.T) {
	m := NewManager(Config{MaxEntries: 5})
	start := time.Now()

	for i := 0; i < 12; i++ {
		m.Record(Entry{Timestamp: start.Add(time.Duration(i) * time.Second), Mode: fmt.Sprintf("run%d", i)})
	}

	entries := m.Recent(100)
	if len(entries) != 5 {
		t.Fatalf("entries count = %d, want 5 (max)", len(entries))
	}
	if entries[0].Mode != "run7" || entries[4].Mode != "run11" {
		t.Errorf("entries span %s..%s, want run7..run11", entries[0].Mode, entries[4].Mode)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Errorf("entries not in chronological order at index %d", i)
		}
	}

	if last := m.Recent(2); len(last) != 2 || last[1].Mode != "run11" {
		t.Errorf("Recent(2) = %+v", last)
	}
	if snap := m.Snapshot(); snap.Runs != 12 {
		t.Errorf("Runs = %d, want 12 (totals survive eviction)", snap.Runs)
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Record(Entry{Mode: "propagate"})

	snap := m.Snapshot()
	snap.Entries[0].Mode = "mutated"

	if got := m.Snapshot().Entries[0].Mode; got != "propagate" {
		t.Errorf("snapshot aliased manager state: %q", got)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(Config{MaxEntries: 10})

	var wg sync.WaitGroup
	iterations := 100

	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				m.Record(Entry{Timestamp: time.Now(), Mode: "propagate"})
			}
		}()
	}

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.Recent(3)
				_ = m.HasEntries()
			}
		}()
	}

	wg.Wait()

	if snap := m.Snapshot(); snap.Runs != 3*iterations || len(snap.Entries) != 10 {
		t.Errorf("runs = %d entries = %d", snap.Runs, len(snap.Entries))
	}
}
