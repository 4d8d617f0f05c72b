package vector

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting block management
// metrics. Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    growCounter   prometheus.Counter
//	    growHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordGrow(oldCap, newCap int, duration time.Duration, err error) {
//	    p.growCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordGrow is called after each attempt to move the elements into a
	// larger block. newCap equals oldCap if err is not nil.
	RecordGrow(oldCap, newCap int, duration time.Duration, err error)

	// RecordShrink is called after a shrink to fit replaced the block.
	RecordShrink(oldCap, newCap int)

	// RecordRelease is called after a block was handed back to the allocator.
	RecordRelease(capacity int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordShrink(int, int)                     {}
func (NoopMetricsCollector) RecordRelease(int)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// A single collector may be shared by many vectors.
type BasicMetricsCollector struct {
	GrowCount      atomic.Int64
	GrowErrors     atomic.Int64
	GrowTotalNanos atomic.Int64
	SlotsAllocated atomic.Int64
	ShrinkCount    atomic.Int64
	SlotsReclaimed atomic.Int64
	ReleaseCount   atomic.Int64
	SlotsReleased  atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldCap, newCap int, duration time.Duration, err error) {
	b.GrowCount.Add(1)
	b.GrowTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GrowErrors.Add(1)
		return
	}
	b.SlotsAllocated.Add(int64(newCap))
}

// RecordShrink implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShrink(oldCap, newCap int) {
	b.ShrinkCount.Add(1)
	b.SlotsReclaimed.Add(int64(oldCap - newCap))
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(capacity int) {
	b.ReleaseCount.Add(1)
	b.SlotsReleased.Add(int64(capacity))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:      b.GrowCount.Load(),
		GrowErrors:     b.GrowErrors.Load(),
		GrowAvgNanos:   b.getAvgGrowNanos(),
		SlotsAllocated: b.SlotsAllocated.Load(),
		ShrinkCount:    b.ShrinkCount.Load(),
		SlotsReclaimed: b.SlotsReclaimed.Load(),
		ReleaseCount:   b.ReleaseCount.Load(),
		SlotsReleased:  b.SlotsReleased.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgGrowNanos() int64 {
	count := b.GrowCount.Load()
	if count == 0 {
		return 0
	}
	return b.GrowTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount      int64
	GrowErrors     int64
	GrowAvgNanos   int64
	SlotsAllocated int64
	ShrinkCount    int64
	SlotsReclaimed int64
	ReleaseCount   int64
	SlotsReleased  int64
}
