package vector

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/vector/alloc"
)

type options struct {
	allocator        any // alloc.Allocator[T] for the vector's T
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures vector construction.
//
// Options are untyped so the same option list can be shared between
// constructors; WithAllocator is checked against the element type when the
// vector is built.
type Option func(*options)

// WithAllocator configures the allocation capability of the vector.
//
// If nil is passed, alloc.Heap is used. A capability for an element type
// other than the vector's makes the constructor fail with
// ErrAllocatorMismatch.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	v, _ := vector.New[int](vector.WithAllocator(alloc.NewBudgeted[int](nil, rc)))
func WithAllocator[T any](a alloc.Allocator[T]) Option {
	return func(o *options) {
		o.allocator = a // a nil interface stays nil
	}
}

// WithMetricsCollector configures a metrics collector for block management.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vector.BasicMetricsCollector{}
//	v, _ := vector.New[int](vector.WithMetricsCollector(metrics))
//	// ... use v ...
//	stats := metrics.GetStats()
//	fmt.Printf("Grows: %d, Avg latency: %dns\n", stats.GrowCount, stats.GrowAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for block management.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vector.NewJSONLogger(slog.LevelDebug)
//	v, _ := vector.New[int](vector.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func defaultOptions() options {
	return options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

func applyOptions(base options, optFns []Option) options {
	o := base
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// allocatorFor resolves the configured capability for element type T.
func allocatorFor[T any](o options) (alloc.Allocator[T], error) {
	if o.allocator == nil {
		return alloc.Heap[T]{}, nil
	}
	a, ok := o.allocator.(alloc.Allocator[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %T for %T", ErrAllocatorMismatch, o.allocator, zero)
	}
	return a, nil
}
