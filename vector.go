package vector

import (
	"fmt"
	"iter"
	"time"
	"unsafe"

	"github.com/hupe1980/vector/alloc"
	"github.com/hupe1980/vector/internal/conv"
	"github.com/hupe1980/vector/internal/storage"
)

// Vector is a growable sequence of T stored in one contiguous block obtained
// from an alloc.Allocator.
//
// Elements live in Data()[0:Len()]; the block has room for Cap() elements.
// When an insertion needs more room, the block is replaced by one of
// max(required, 2*Cap()) slots and the elements are moved over.
//
// The zero value is an empty vector using alloc.Heap, without logging or
// metrics. A Vector must not be copied after first use; use Clone, Take or
// CopyFrom. It is not safe for concurrent mutation.
type Vector[T any] struct {
	buf storage.Buffer[T]
	obs *observer
}

// observer forwards block events to the configured logger and metrics.
type observer struct {
	logger  *Logger
	metrics MetricsCollector
}

func (o *observer) Grown(oldCap, newCap int, d time.Duration, err error) {
	if o == nil {
		return
	}
	o.metrics.RecordGrow(oldCap, newCap, d, err)
	o.logger.LogGrow(oldCap, newCap, d, err)
}

func (o *observer) Shrunk(oldCap, newCap int) {
	if o == nil {
		return
	}
	o.metrics.RecordShrink(oldCap, newCap)
	o.logger.LogShrink(oldCap, newCap)
}

func (o *observer) Released(oldCap int) {
	if o == nil {
		return
	}
	o.metrics.RecordRelease(oldCap)
	o.logger.LogRelease(oldCap)
}

func build[T any](o options) (*Vector[T], error) {
	a, err := allocatorFor[T](o)
	if err != nil {
		return nil, err
	}
	obs := &observer{logger: o.logger, metrics: o.metricsCollector}
	return &Vector[T]{buf: storage.New(a, obs), obs: obs}, nil
}

// options reconstructs the configuration v was built with.
func (v *Vector[T]) options() options {
	o := defaultOptions()
	o.allocator = v.buf.Allocator()
	if v.obs != nil {
		o.logger = v.obs.logger
		o.metricsCollector = v.obs.metrics
	}
	return o
}

// Allocator returns the capability the vector draws its block from.
func (v *Vector[T]) Allocator() alloc.Allocator[T] {
	return v.buf.Allocator()
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.buf.Len() }

// Cap returns the number of elements the current block can hold.
func (v *Vector[T]) Cap() int { return v.buf.Cap() }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.buf.Len() == 0 }

// MaxSize returns the largest element count a block could ever be requested
// for.
func (v *Vector[T]) MaxSize() int {
	var zero T
	return conv.MaxSlots(unsafe.Sizeof(zero))
}

// At returns the element at i. It fails with an *OutOfRangeError if i is not
// in [0, Len()).
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.buf.Len() {
		var zero T
		return zero, &OutOfRangeError{Index: i, Size: v.buf.Len()}
	}
	return v.buf.Block()[i], nil
}

// Get returns the element at i. It panics if i is not in [0, Len()).
func (v *Vector[T]) Get(i int) T {
	return v.buf.Live()[i]
}

// Set overwrites the element at i with x by plain assignment; no Destroy
// hook runs for the previous value. It panics if i is not in [0, Len()).
func (v *Vector[T]) Set(i int, x T) {
	v.buf.Live()[i] = x
}

// Ptr returns a pointer to the element at i, valid until the next call that
// may reallocate. It panics if i is not in [0, Len()).
func (v *Vector[T]) Ptr(i int) *T {
	return &v.buf.Live()[i]
}

// Front returns the first element. It panics on an empty vector.
func (v *Vector[T]) Front() T {
	return v.buf.Live()[0]
}

// Back returns the last element. It panics on an empty vector.
func (v *Vector[T]) Back() T {
	return v.buf.Live()[v.buf.Len()-1]
}

// Data returns the elements as a slice sharing the vector's block. Its
// capacity is clipped to Len(). The slice is invalidated like an iterator.
func (v *Vector[T]) Data() []T {
	return v.buf.Live()
}

// All returns an iterator over index-value pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.buf.Live() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.buf.Live() {
			if !yield(x) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		live := v.buf.Live()
		for i := len(live) - 1; i >= 0; i-- {
			if !yield(i, live[i]) {
				return
			}
		}
	}
}

func (v *Vector[T]) String() string {
	return fmt.Sprint(v.buf.Live())
}

// aliases reports whether s points into the vector's block.
func (v *Vector[T]) aliases(s []T) bool {
	block := v.buf.Block()
	var zero T
	size := unsafe.Sizeof(zero)
	if len(s) == 0 || len(block) == 0 || size == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
	hi := lo + uintptr(len(block))*size
	p := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	return p >= lo && p < hi
}
