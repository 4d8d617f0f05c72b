package storage

import (
	"errors"
	"fmt"
	"math"
	"time"
	"unsafe"

	"github.com/hupe1980/vector/alloc"
)

// GrowthFactor is the factor applied to the current capacity when a block
// has to grow.
const GrowthFactor = 2

// Observer is notified about block changes.
type Observer interface {
	// Grown is called after an attempt to replace the block with a larger one.
	Grown(oldCap, newCap int, d time.Duration, err error)
	// Shrunk is called after the block was replaced by a smaller one.
	Shrunk(oldCap, newCap int)
	// Released is called after the block was handed back to the allocator.
	Released(oldCap int)
}

// Buffer is an exclusively owned block of slots plus its live mark.
//
// The zero value is an empty buffer using alloc.Heap.
type Buffer[T any] struct {
	block []T
	live  int
	alloc alloc.Allocator[T]
	obs   Observer
}

// New returns an empty buffer drawing from a. A nil a selects alloc.Heap.
func New[T any](a alloc.Allocator[T], obs Observer) Buffer[T] {
	return Buffer[T]{alloc: a, obs: obs}
}

// Allocator returns the capability backing b.
func (b *Buffer[T]) Allocator() alloc.Allocator[T] {
	if b.alloc == nil {
		b.alloc = alloc.Heap[T]{}
	}
	return b.alloc
}

// SetObserver replaces the observer.
func (b *Buffer[T]) SetObserver(obs Observer) {
	b.obs = obs
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int {
	return b.live
}

// Cap returns the number of allocated slots.
func (b *Buffer[T]) Cap() int {
	return len(b.block)
}

// Block returns the whole block, uninitialized tail included.
func (b *Buffer[T]) Block() []T {
	return b.block
}

// Live returns the live elements.
func (b *Buffer[T]) Live() []T {
	return b.block[:b.live:b.live]
}

// EnsureCapacity guarantees room for required elements. When the block has
// to grow, the new capacity is max(required, Cap()*GrowthFactor).
//
// On error the buffer is unchanged.
func (b *Buffer[T]) EnsureCapacity(required int) error {
	if required <= len(b.block) {
		return nil
	}
	newCap := max(required, len(b.block)*GrowthFactor)

	start := time.Now()
	oldCap := len(b.block)
	err := b.reallocate(newCap)
	if b.obs != nil {
		b.obs.Grown(oldCap, len(b.block), time.Since(start), err)
	}
	return err
}

// EnsureRoom guarantees room for n more elements. A count that cannot be
// added to Len() fails with alloc.ErrAllocationFailure.
//
// On error the buffer is unchanged.
func (b *Buffer[T]) EnsureRoom(n int) error {
	if n > math.MaxInt-b.live {
		err := fmt.Errorf("%w: %d slots after %d", alloc.ErrAllocationFailure, n, b.live)
		if b.obs != nil {
			b.obs.Grown(len(b.block), len(b.block), 0, err)
		}
		return err
	}
	return b.EnsureCapacity(b.live + n)
}

// ShrinkToFit reduces the capacity to the number of live elements. An empty
// buffer releases its block entirely.
//
// On error the buffer is unchanged.
func (b *Buffer[T]) ShrinkToFit() error {
	oldCap := len(b.block)
	if b.live == oldCap {
		return nil
	}
	if b.live == 0 {
		b.Release()
		return nil
	}
	if err := b.reallocate(b.live); err != nil {
		return err
	}
	if b.obs != nil {
		b.obs.Shrunk(oldCap, len(b.block))
	}
	return nil
}

// Release destroys every live element and hands the block back, returning
// the buffer to the no-allocation state.
func (b *Buffer[T]) Release() {
	if b.block == nil {
		return
	}
	b.DestroyFrom(0)

	oldCap := len(b.block)
	b.Allocator().Deallocate(b.block)
	b.block = nil
	if b.obs != nil {
		b.obs.Released(oldCap)
	}
}

// Swap exchanges the contents and capabilities of b and other. Observers stay
// with their buffers.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.block, other.block = other.block, b.block
	b.live, other.live = other.live, b.live
	b.alloc, other.alloc = other.alloc, b.alloc
}

// reallocate moves the live elements into a block of exactly newCap slots.
func (b *Buffer[T]) reallocate(newCap int) error {
	a := b.Allocator()

	nb, err := a.Allocate(newCap)
	if err != nil {
		if errors.Is(err, alloc.ErrAllocationFailure) {
			return fmt.Errorf("allocate %d slots: %w", newCap, err)
		}
		return fmt.Errorf("%w: %d slots: %w", alloc.ErrAllocationFailure, newCap, err)
	}
	if len(nb) != newCap {
		if nb != nil {
			a.Deallocate(nb)
		}
		return fmt.Errorf("%w: requested %d slots, got %d", alloc.ErrAllocationFailure, newCap, len(nb))
	}

	if sameBlock(nb, b.block) {
		// The allocator resized in place; every element is already where it
		// belongs.
		b.block = nb
		return nil
	}

	for i := 0; i < b.live; i++ {
		b.relocate(&nb[i], &b.block[i])
	}
	if b.block != nil {
		a.Deallocate(b.block)
	}
	b.block = nb
	return nil
}

func sameBlock[T any](x, y []T) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	return unsafe.SliceData(x) == unsafe.SliceData(y)
}
