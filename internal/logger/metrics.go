package logger

import (
	"sync"
	"time"
)

// Metrics tracks counters and timings. All operations are thread-safe.
// Counters track incrementing values (cache hits, requests issued).
// Timings track durations with min/max/average computed on snapshot.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1, creating it at 1 if absent.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// RecordTiming records one duration measurement under name.
func (m *Metrics) RecordTiming(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], d)
}

// Counter returns the current value of a counter.
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Snapshot returns a copy of all metrics: counter values plus per-timing
// statistics (count, total, average, min, max). Safe to use concurrently
// with updates.
func (m *Metrics) Snapshot() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}

	timings := make(map[string]map[string]any, len(m.timings))
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}
		var total time.Duration
		min, max := durations[0], durations[0]
		for _, d := range durations {
			total += d
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
		}
		timings[name] = map[string]any{
			"count":   len(durations),
			"total":   total.String(),
			"average": (total / time.Duration(len(durations))).String(),
			"min":     min.String(),
			"max":     max.String(),
		}
	}

	return map[string]any{
		"counters": counters,
		"timings":  timings,
	}
}

// Package-level metrics functions using the default tracker

func IncrCounter(name string) { defaultMetrics.IncrCounter(name) }

func RecordTiming(name string, d time.Duration) { defaultMetrics.RecordTiming(name, d) }

func Counter(name string) int64 { return defaultMetrics.Counter(name) }

func MetricsSnapshot() map[string]any { return defaultMetrics.Snapshot() }
