package factgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordAppend is called after each single-fact append.
	RecordAppend(duration time.Duration, err error)

	// RecordBatchAppend is called after each batch append. count is the
	// number of facts attempted.
	RecordBatchAppend(count int, duration time.Duration, err error)

	// RecordQuery is called after each query execution. results is the
	// number of facts returned.
	RecordQuery(results int, duration time.Duration, err error)

	// RecordTokenize is called once per tokenize run, after the stream is
	// exhausted. tokens is the number of completed tokens produced.
	RecordTokenize(tokens int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAppend(time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatchAppend(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordTokenize(int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AppendCount      atomic.Int64
	AppendErrors     atomic.Int64
	AppendTotalNanos atomic.Int64
	BatchCount       atomic.Int64
	BatchFacts       atomic.Int64
	BatchErrors      atomic.Int64
	QueryCount       atomic.Int64
	QueryErrors      atomic.Int64
	QueryResults     atomic.Int64
	QueryTotalNanos  atomic.Int64
	TokenizeCount    atomic.Int64
	TokenizeErrors   atomic.Int64
	TokenizeTokens   atomic.Int64
}

// RecordAppend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAppend(duration time.Duration, err error) {
	b.AppendCount.Add(1)
	b.AppendTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AppendErrors.Add(1)
	}
}

// RecordBatchAppend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchAppend(count int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchFacts.Add(int64(count))
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(results int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryResults.Add(int64(results))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordTokenize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTokenize(tokens int, duration time.Duration, err error) {
	b.TokenizeCount.Add(1)
	b.TokenizeTokens.Add(int64(tokens))
	if err != nil {
		b.TokenizeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AppendCount:    b.AppendCount.Load(),
		AppendErrors:   b.AppendErrors.Load(),
		AppendAvgNanos: b.avgAppendNanos(),
		BatchCount:     b.BatchCount.Load(),
		BatchFacts:     b.BatchFacts.Load(),
		BatchErrors:    b.BatchErrors.Load(),
		QueryCount:     b.QueryCount.Load(),
		QueryErrors:    b.QueryErrors.Load(),
		QueryResults:   b.QueryResults.Load(),
		QueryAvgNanos:  b.avgQueryNanos(),
		TokenizeCount:  b.TokenizeCount.Load(),
		TokenizeErrors: b.TokenizeErrors.Load(),
		TokenizeTokens: b.TokenizeTokens.Load(),
	}
}

func (b *BasicMetricsCollector) avgAppendNanos() int64 {
	count := b.AppendCount.Load()
	if count == 0 {
		return 0
	}
	return b.AppendTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) avgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AppendCount    int64
	AppendErrors   int64
	AppendAvgNanos int64
	BatchCount     int64
	BatchFacts     int64
	BatchErrors    int64
	QueryCount     int64
	QueryErrors    int64
	QueryResults   int64
	QueryAvgNanos  int64
	TokenizeCount  int64
	TokenizeErrors int64
	TokenizeTokens int64
}
