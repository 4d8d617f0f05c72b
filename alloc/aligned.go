package alloc

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/vector/internal/conv"
)

// Alignment is the block alignment produced by Aligned (one AVX-512 register
// or cache line).
const Alignment = 64

// Aligned is a heap capability whose blocks start on an Alignment boundary,
// for element types handed to SIMD kernels.
//
// Alignment is reached by skipping whole leading elements of a slightly
// larger allocation, so it is only guaranteed when the element size is a
// power of two equal to the element alignment (float32, float64, int64 and
// the like). Other types get an ordinary heap block.
type Aligned[T any] struct{}

// Allocate implements Allocator.
func (Aligned[T]) Allocate(n int) ([]T, error) {
	var zero T
	size := unsafe.Sizeof(zero)
	if _, err := conv.BlockBytes(n, size); err != nil {
		return nil, fmt.Errorf("%w: %d slots: %w", ErrAllocationFailure, n, err)
	}
	if n == 0 {
		return nil, nil
	}
	if size == 0 || size&(size-1) != 0 || size >= Alignment || unsafe.Alignof(zero) != size {
		return make([]T, n), nil
	}

	pad := int(Alignment / size)
	if _, err := conv.BlockBytes(n+pad, size); err != nil {
		return nil, fmt.Errorf("%w: %d slots with padding", ErrAllocationFailure, n)
	}
	buf := make([]T, n+pad)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf))) //nolint:gosec // unsafe is required for memory alignment
	offset := int(((Alignment - addr&(Alignment-1)) & (Alignment - 1)) / size)
	return buf[offset : offset+n : offset+n], nil
}

// Deallocate implements Allocator.
func (Aligned[T]) Deallocate(block []T) {
	clear(block)
}

// Construct implements Allocator.
func (Aligned[T]) Construct(slot *T, ctor Constructor[T]) error {
	return Heap[T]{}.Construct(slot, ctor)
}

// Destroy implements Allocator.
func (Aligned[T]) Destroy(slot *T) {
	destroyElement(slot)
}
