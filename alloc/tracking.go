package alloc

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/bits-and-blooms/bitset"
)

// Tracking errors reported through (*Tracking).Err.
var (
	ErrUnknownBlock     = errors.New("alloc: block was not allocated by this capability")
	ErrUnknownSlot      = errors.New("alloc: slot is outside every outstanding block")
	ErrDoubleConstruct  = errors.New("alloc: construct over a live element")
	ErrDestroyDead      = errors.New("alloc: destroy of an uninitialized slot")
	ErrLeakedElements   = errors.New("alloc: block released with live elements")
	ErrRelocateDeadSlot = errors.New("alloc: relocation from an uninitialized slot")
	ErrForgetDead       = errors.New("alloc: forget of an uninitialized slot")
)

// TrackingStats is a snapshot of a Tracking capability's counters.
type TrackingStats struct {
	Allocations   uint64 // blocks handed out
	Deallocations uint64 // blocks released
	Constructs    uint64 // successful constructions
	Destroys      uint64
	Forgets       uint64 // elements moved out to another block
	Relocations   uint64
	Outstanding   int // blocks currently held
	Live          int // live elements across all outstanding blocks
}

type trackedBlock struct {
	base  uintptr
	slots int
	live  *bitset.BitSet
}

// Tracking records which slots of every outstanding block hold live
// elements. Contract violations do not panic; they are collected and
// reported by Err.
//
// Tracking is safe for concurrent use by multiple containers.
type Tracking[T any] struct {
	inner Allocator[T]

	mu     sync.Mutex
	blocks map[uintptr]*trackedBlock
	stats  TrackingStats
	errs   []error
}

// NewTracking wraps inner. A nil inner selects Heap.
func NewTracking[T any](inner Allocator[T]) *Tracking[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Tracking[T]{
		inner:  inner,
		blocks: make(map[uintptr]*trackedBlock),
	}
}

// Allocate implements Allocator.
func (t *Tracking[T]) Allocate(n int) ([]T, error) {
	block, err := t.inner.Allocate(n)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Allocations++
	if len(block) > 0 && elemSize[T]() > 0 {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(block))) //nolint:gosec // address used as identity only
		t.blocks[base] = &trackedBlock{
			base:  base,
			slots: len(block),
			live:  bitset.New(uint(len(block))),
		}
	}
	return block, nil
}

// Deallocate implements Allocator.
func (t *Tracking[T]) Deallocate(block []T) {
	t.mu.Lock()
	t.stats.Deallocations++
	if len(block) > 0 && elemSize[T]() > 0 {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(block))) //nolint:gosec // address used as identity only
		tb, ok := t.blocks[base]
		switch {
		case !ok:
			t.errs = append(t.errs, fmt.Errorf("%w: %d slots at %#x", ErrUnknownBlock, len(block), base))
		case tb.live.Count() > 0:
			t.errs = append(t.errs, fmt.Errorf("%w: %d live of %d", ErrLeakedElements, tb.live.Count(), tb.slots))
			t.stats.Live -= int(tb.live.Count()) //nolint:gosec // bounded by slots
			delete(t.blocks, base)
		default:
			delete(t.blocks, base)
		}
	}
	t.mu.Unlock()

	t.inner.Deallocate(block)
}

// Construct implements Allocator.
func (t *Tracking[T]) Construct(slot *T, ctor Constructor[T]) error {
	t.mu.Lock()
	tb, idx := t.locate(slot)
	if tb != nil && tb.live.Test(idx) {
		t.errs = append(t.errs, fmt.Errorf("%w: slot %d", ErrDoubleConstruct, idx))
	}
	t.mu.Unlock()

	if err := t.inner.Construct(slot, ctor); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Constructs++
	if tb != nil && !tb.live.Test(idx) {
		tb.live.Set(idx)
		t.stats.Live++
	}
	return nil
}

// Destroy implements Allocator.
func (t *Tracking[T]) Destroy(slot *T) {
	t.mu.Lock()
	tb, idx := t.locate(slot)
	if tb != nil {
		if tb.live.Test(idx) {
			tb.live.Clear(idx)
			t.stats.Live--
		} else {
			t.errs = append(t.errs, fmt.Errorf("%w: slot %d", ErrDestroyDead, idx))
		}
	}
	t.stats.Destroys++
	t.mu.Unlock()

	t.inner.Destroy(slot)
}

// Forget implements Forgetter.
func (t *Tracking[T]) Forget(slot *T) {
	t.mu.Lock()
	tb, idx := t.locate(slot)
	if tb != nil {
		if tb.live.Test(idx) {
			tb.live.Clear(idx)
			t.stats.Live--
		} else {
			t.errs = append(t.errs, fmt.Errorf("%w: slot %d", ErrForgetDead, idx))
		}
	}
	t.stats.Forgets++
	t.mu.Unlock()

	Forget(t.inner, slot)
}

// Relocate implements Relocator.
func (t *Tracking[T]) Relocate(dst, src *T) {
	t.mu.Lock()
	srcBlock, srcIdx := t.locate(src)
	dstBlock, dstIdx := t.locate(dst)
	if srcBlock != nil {
		if srcBlock.live.Test(srcIdx) {
			srcBlock.live.Clear(srcIdx)
			t.stats.Live--
		} else {
			t.errs = append(t.errs, fmt.Errorf("%w: slot %d", ErrRelocateDeadSlot, srcIdx))
		}
	}
	if dstBlock != nil {
		if dstBlock.live.Test(dstIdx) {
			t.errs = append(t.errs, fmt.Errorf("%w: slot %d", ErrDoubleConstruct, dstIdx))
		} else {
			dstBlock.live.Set(dstIdx)
			t.stats.Live++
		}
	}
	t.stats.Relocations++
	t.mu.Unlock()

	Relocated(t.inner, dst, src)
}

// Stats returns a snapshot of the counters.
func (t *Tracking[T]) Stats() TrackingStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stats
	s.Outstanding = len(t.blocks)
	return s
}

// Live returns the number of live elements across all outstanding blocks.
func (t *Tracking[T]) Live() int {
	return t.Stats().Live
}

// Outstanding returns the number of blocks not yet deallocated.
func (t *Tracking[T]) Outstanding() int {
	return t.Stats().Outstanding
}

// LiveSlots returns the indices of the live slots of block, or nil if block
// is not outstanding.
func (t *Tracking[T]) LiveSlots(block []T) []int {
	if len(block) == 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	base := uintptr(unsafe.Pointer(unsafe.SliceData(block))) //nolint:gosec // address used as identity only
	tb, ok := t.blocks[base]
	if !ok {
		return nil
	}
	out := make([]int, 0, tb.live.Count())
	for i, ok := tb.live.NextSet(0); ok; i, ok = tb.live.NextSet(i + 1) {
		out = append(out, int(i)) //nolint:gosec // bounded by slots
	}
	return out
}

// Err returns every contract violation recorded so far, or nil.
func (t *Tracking[T]) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return errors.Join(t.errs...)
}

// locate maps slot to its block and index. Zero-sized element types cannot be
// told apart by address and are not tracked per slot.
// Callers must hold t.mu.
func (t *Tracking[T]) locate(slot *T) (*trackedBlock, uint) {
	size := elemSize[T]()
	if size == 0 {
		return nil, 0
	}
	addr := uintptr(unsafe.Pointer(slot)) //nolint:gosec // address used as identity only
	for _, tb := range t.blocks {
		end := tb.base + uintptr(tb.slots)*size
		if addr >= tb.base && addr < end {
			return tb, uint((addr - tb.base) / size)
		}
	}
	t.errs = append(t.errs, fmt.Errorf("%w: %#x", ErrUnknownSlot, addr))
	return nil, 0
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
