package alloc

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/vector/internal/conv"
)

// Heap is the default capability. Blocks come from the Go heap and are
// reclaimed by the garbage collector once deallocated.
//
// All Heap values are interchangeable.
type Heap[T any] struct{}

// Allocate implements Allocator.
func (Heap[T]) Allocate(n int) ([]T, error) {
	var zero T
	if _, err := conv.BlockBytes(n, unsafe.Sizeof(zero)); err != nil {
		return nil, fmt.Errorf("%w: %d slots: %w", ErrAllocationFailure, n, err)
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

// Deallocate implements Allocator.
func (Heap[T]) Deallocate(block []T) {
	// Drop references held by stale slot contents.
	clear(block)
}

// Construct implements Allocator.
func (Heap[T]) Construct(slot *T, ctor Constructor[T]) error {
	v, err := ctor()
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// Destroy implements Allocator.
func (Heap[T]) Destroy(slot *T) {
	destroyElement(slot)
}
