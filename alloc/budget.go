package alloc

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/vector/internal/conv"
	"github.com/hupe1980/vector/resource"
)

// Budgeted charges every block handed out by an inner capability against a
// resource.Controller. A request that would exceed the controller's limit
// fails with ErrAllocationFailure wrapping resource.ErrMemoryLimitExceeded;
// nothing is allocated in that case.
type Budgeted[T any] struct {
	inner Allocator[T]
	rc    *resource.Controller
}

// NewBudgeted wraps inner. A nil inner selects Heap.
func NewBudgeted[T any](inner Allocator[T], rc *resource.Controller) *Budgeted[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Budgeted[T]{inner: inner, rc: rc}
}

// Controller returns the controller blocks are charged against.
func (b *Budgeted[T]) Controller() *resource.Controller {
	return b.rc
}

// Allocate implements Allocator.
func (b *Budgeted[T]) Allocate(n int) ([]T, error) {
	bytes, err := b.blockBytes(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %d slots: %w", ErrAllocationFailure, n, err)
	}
	if err := b.rc.AcquireMemory(bytes); err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrAllocationFailure, bytes, err)
	}
	block, err := b.inner.Allocate(n)
	if err != nil {
		b.rc.ReleaseMemory(bytes)
		return nil, err
	}
	return block, nil
}

// Deallocate implements Allocator.
func (b *Budgeted[T]) Deallocate(block []T) {
	b.inner.Deallocate(block)
	if bytes, err := b.blockBytes(len(block)); err == nil {
		b.rc.ReleaseMemory(bytes)
	}
}

// Construct implements Allocator.
func (b *Budgeted[T]) Construct(slot *T, ctor Constructor[T]) error {
	return b.inner.Construct(slot, ctor)
}

// Destroy implements Allocator.
func (b *Budgeted[T]) Destroy(slot *T) {
	b.inner.Destroy(slot)
}

// Forget implements Forgetter.
func (b *Budgeted[T]) Forget(slot *T) {
	Forget(b.inner, slot)
}

// Relocate implements Relocator.
func (b *Budgeted[T]) Relocate(dst, src *T) {
	Relocated(b.inner, dst, src)
}

// Equal implements Equaler. Budgeted capabilities are the same when they
// charge the same controller and wrap the same capability.
func (b *Budgeted[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(*Budgeted[T])
	if !ok {
		return false
	}
	return b == o || (b.rc == o.rc && Same(b.inner, o.inner))
}

func (b *Budgeted[T]) blockBytes(n int) (int64, error) {
	var zero T
	return conv.BlockBytes(n, unsafe.Sizeof(zero))
}
