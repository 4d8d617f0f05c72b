package testutil

import (
	"errors"
	"sync"

	"github.com/hupe1980/vector/alloc"
)

// Injected failures.
var (
	ErrInjectedAllocation = errors.New("testutil: injected allocation failure")
	ErrInjectedConstruct  = errors.New("testutil: injected construction failure")
)

// FaultyAllocator wraps a capability and fails Allocate or Construct once a
// configured number of calls has succeeded. A failing Construct never runs
// the constructor.
type FaultyAllocator[T any] struct {
	inner alloc.Allocator[T]

	mu              sync.Mutex
	allocateBudget  int // -1 disables
	constructBudget int // -1 disables
	allocates       int
	constructs      int
}

// NewFaultyAllocator wraps inner. A nil inner selects alloc.Heap. No failures
// are armed.
func NewFaultyAllocator[T any](inner alloc.Allocator[T]) *FaultyAllocator[T] {
	if inner == nil {
		inner = alloc.Heap[T]{}
	}
	return &FaultyAllocator[T]{
		inner:           inner,
		allocateBudget:  -1,
		constructBudget: -1,
	}
}

// FailAllocateAfter makes every Allocate fail once n more calls succeeded.
// A negative n disarms the fault.
func (f *FaultyAllocator[T]) FailAllocateAfter(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allocateBudget = n
}

// FailConstructAfter makes every Construct fail once n more calls succeeded.
// A negative n disarms the fault.
func (f *FaultyAllocator[T]) FailConstructAfter(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructBudget = n
}

// Disarm removes all armed faults.
func (f *FaultyAllocator[T]) Disarm() {
	f.FailAllocateAfter(-1)
	f.FailConstructAfter(-1)
}

// Allocations returns the number of successful Allocate calls.
func (f *FaultyAllocator[T]) Allocations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allocates
}

// Constructions returns the number of successful Construct calls.
func (f *FaultyAllocator[T]) Constructions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.constructs
}

// Allocate implements alloc.Allocator.
func (f *FaultyAllocator[T]) Allocate(n int) ([]T, error) {
	f.mu.Lock()
	if f.allocateBudget == 0 {
		f.mu.Unlock()
		return nil, ErrInjectedAllocation
	}
	if f.allocateBudget > 0 {
		f.allocateBudget--
	}
	f.mu.Unlock()

	block, err := f.inner.Allocate(n)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.allocates++
	f.mu.Unlock()
	return block, nil
}

// Deallocate implements alloc.Allocator.
func (f *FaultyAllocator[T]) Deallocate(block []T) {
	f.inner.Deallocate(block)
}

// Construct implements alloc.Allocator.
func (f *FaultyAllocator[T]) Construct(slot *T, ctor alloc.Constructor[T]) error {
	f.mu.Lock()
	if f.constructBudget == 0 {
		f.mu.Unlock()
		return ErrInjectedConstruct
	}
	if f.constructBudget > 0 {
		f.constructBudget--
	}
	f.mu.Unlock()

	if err := f.inner.Construct(slot, ctor); err != nil {
		return err
	}

	f.mu.Lock()
	f.constructs++
	f.mu.Unlock()
	return nil
}

// Destroy implements alloc.Allocator.
func (f *FaultyAllocator[T]) Destroy(slot *T) {
	f.inner.Destroy(slot)
}

// Forget implements alloc.Forgetter.
func (f *FaultyAllocator[T]) Forget(slot *T) {
	alloc.Forget(f.inner, slot)
}

// Relocate implements alloc.Relocator.
func (f *FaultyAllocator[T]) Relocate(dst, src *T) {
	alloc.Relocated(f.inner, dst, src)
}
