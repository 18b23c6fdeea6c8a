package geosearch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIndex is called after each IndexModel call.
	// duration covers extraction and commit, err is nil if successful.
	RecordIndex(duration time.Duration, err error)

	// RecordBatchIndex is called after each IndexBatch call.
	// count is the number of models attempted, failed is the number that failed.
	RecordBatchIndex(count, failed int, duration time.Duration)

	// RecordSearch is called after each search.
	// k is the number of results requested, candidates the number scored.
	RecordSearch(k, candidates int, duration time.Duration, err error)

	// RecordRemove is called after each RemoveModel call.
	RecordRemove(duration time.Duration, removed bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIndex(time.Duration, error)            {}
func (NoopMetricsCollector) RecordBatchIndex(int, int, time.Duration)    {}
func (NoopMetricsCollector) RecordSearch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRemove(time.Duration, bool)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IndexCount       atomic.Int64
	IndexErrors      atomic.Int64
	IndexTotalNanos  atomic.Int64
	BatchIndexCount  atomic.Int64
	BatchIndexItems  atomic.Int64
	BatchIndexFailed atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchCandidates atomic.Int64
	SearchTotalNanos atomic.Int64
	RemoveCount      atomic.Int64
	RemoveMisses     atomic.Int64
}

// RecordIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndex(duration time.Duration, err error) {
	b.IndexCount.Add(1)
	b.IndexTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IndexErrors.Add(1)
	}
}

// RecordBatchIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchIndex(count, failed int, duration time.Duration) {
	b.BatchIndexCount.Add(1)
	b.BatchIndexItems.Add(int64(count))
	b.BatchIndexFailed.Add(int64(failed))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k, candidates int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchCandidates.Add(int64(candidates))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, removed bool) {
	b.RemoveCount.Add(1)
	if !removed {
		b.RemoveMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IndexCount:       b.IndexCount.Load(),
		IndexErrors:      b.IndexErrors.Load(),
		IndexAvgNanos:    avg(b.IndexTotalNanos.Load(), b.IndexCount.Load()),
		BatchIndexCount:  b.BatchIndexCount.Load(),
		BatchIndexItems:  b.BatchIndexItems.Load(),
		BatchIndexFailed: b.BatchIndexFailed.Load(),
		SearchCount:      b.SearchCount.Load(),
		SearchErrors:     b.SearchErrors.Load(),
		SearchCandidates: b.SearchCandidates.Load(),
		SearchAvgNanos:   avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		RemoveCount:      b.RemoveCount.Load(),
		RemoveMisses:     b.RemoveMisses.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IndexCount       int64
	IndexErrors      int64
	IndexAvgNanos    int64
	BatchIndexCount  int64
	BatchIndexItems  int64
	BatchIndexFailed int64
	SearchCount      int64
	SearchErrors     int64
	SearchCandidates int64
	SearchAvgNanos   int64
	RemoveCount      int64
	RemoveMisses     int64
}
