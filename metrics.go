package mnistknn

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; package
// prommetrics provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordQuery is called after each single-sample prediction.
	// duration is the total time taken, err is nil if successful.
	RecordQuery(duration time.Duration, err error)

	// RecordBatch is called after each batch prediction.
	// count is the number of queries attempted, failed is the number that failed,
	// duration is the total time taken.
	RecordBatch(count, failed int, duration time.Duration)

	// RecordAccuracy is called after a partition is scored.
	RecordAccuracy(partition string, accuracy float64)

	// RecordLoad is called after a dataset load.
	RecordLoad(samples int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuery(time.Duration, error)     {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)  {}
func (NoopMetricsCollector) RecordAccuracy(string, float64)       {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QueryCount       atomic.Int64
	QueryErrors      atomic.Int64
	QueryTotalNanos  atomic.Int64
	BatchCount       atomic.Int64
	BatchQueries     atomic.Int64
	BatchFailed      atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	LoadedSamples    atomic.Int64
	lastAccuracyBits sync.Map // partition -> uint64 float bits
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchQueries.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// RecordAccuracy implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAccuracy(partition string, accuracy float64) {
	b.lastAccuracyBits.Store(partition, math.Float64bits(accuracy))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(samples int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadedSamples.Add(int64(samples))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		QueryCount:     b.QueryCount.Load(),
		QueryErrors:    b.QueryErrors.Load(),
		QueryAvgNanos:  b.getAvgQueryNanos(),
		BatchCount:     b.BatchCount.Load(),
		BatchQueries:   b.BatchQueries.Load(),
		BatchFailed:    b.BatchFailed.Load(),
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		LoadedSamples:  b.LoadedSamples.Load(),
		LastAccuracies: map[string]float64{},
	}
	b.lastAccuracyBits.Range(func(k, v any) bool {
		stats.LastAccuracies[k.(string)] = math.Float64frombits(v.(uint64))
		return true
	})
	return stats
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QueryCount     int64
	QueryErrors    int64
	QueryAvgNanos  int64
	BatchCount     int64
	BatchQueries   int64
	BatchFailed    int64
	LoadCount      int64
	LoadErrors     int64
	LoadedSamples  int64
	LastAccuracies map[string]float64
}
