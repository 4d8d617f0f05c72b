package vector

import (
	"iter"

	"github.com/hupe1980/vector/alloc"
	"github.com/hupe1980/vector/resource"
)

// Configure creates a new vector builder for element type T.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration, so one builder can be shared as a template.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	v, err := vector.Configure[float32]().
//	    Budget(rc).
//	    Metrics(&vector.BasicMetricsCollector{}).
//	    Reserve(1024).
//	    Build()
func Configure[T any]() Builder[T] {
	return Builder[T]{}
}

// Builder is an immutable fluent builder for vectors.
type Builder[T any] struct {
	allocator alloc.Allocator[T]
	budget    *resource.Controller
	logger    *Logger
	metrics   MetricsCollector
	reserve   int
}

// Allocator sets the allocation capability. Default: alloc.Heap.
func (b Builder[T]) Allocator(a alloc.Allocator[T]) Builder[T] {
	b.allocator = a
	return b
}

// Budget charges every block of the built vectors against rc. Vectors built
// from the same builder and controller share the budget and compare as the
// same capability.
func (b Builder[T]) Budget(rc *resource.Controller) Builder[T] {
	b.budget = rc
	return b
}

// MemoryLimit is Budget with a fresh controller limited to bytes.
func (b Builder[T]) MemoryLimit(bytes int64) Builder[T] {
	return b.Budget(resource.NewController(resource.Config{MemoryLimitBytes: bytes}))
}

// Logger sets the structured logger for block management.
func (b Builder[T]) Logger(l *Logger) Builder[T] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder[T]) Metrics(mc MetricsCollector) Builder[T] {
	b.metrics = mc
	return b
}

// Reserve sets the capacity the built vectors start with, at least.
func (b Builder[T]) Reserve(n int) Builder[T] {
	b.reserve = n
	return b
}

// Build creates an empty vector.
func (b Builder[T]) Build() (*Vector[T], error) {
	return b.finish(New[T](b.options()...))
}

// Sized creates a vector of n zero values.
func (b Builder[T]) Sized(n int) (*Vector[T], error) {
	return b.finish(NewSized[T](n, b.options()...))
}

// Filled creates a vector of n copies of value.
func (b Builder[T]) Filled(n int, value T) (*Vector[T], error) {
	return b.finish(NewFilled(n, value, b.options()...))
}

// Of creates a vector holding copies of values.
func (b Builder[T]) Of(values []T) (*Vector[T], error) {
	return b.finish(Of(values, b.options()...))
}

// FromSeq creates a vector holding the values yielded by seq.
func (b Builder[T]) FromSeq(seq iter.Seq[T]) (*Vector[T], error) {
	return b.finish(FromSeq(seq, b.options()...))
}

func (b Builder[T]) options() []Option {
	var opts []Option
	a := b.allocator
	if b.budget != nil {
		a = alloc.NewBudgeted(a, b.budget)
	}
	if a != nil {
		opts = append(opts, WithAllocator(a))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	return opts
}

func (b Builder[T]) finish(v *Vector[T], err error) (*Vector[T], error) {
	if err != nil {
		return nil, err
	}
	if err := v.Reserve(b.reserve); err != nil {
		v.Clear()
		return nil, err
	}
	return v, nil
}
