package storage

import (
	"github.com/hupe1980/vector/alloc"
)

// ConstructBack constructs n elements at the end of the live range, the i-th
// from ctor(i). Capacity for Len()+n elements must already be available.
//
// If a construction fails, the elements built by this call are destroyed in
// order and the live range is left as it was.
func (b *Buffer[T]) ConstructBack(n int, ctor func(i int) alloc.Constructor[T]) error {
	a := b.Allocator()
	start := b.live
	for i := 0; i < n; i++ {
		if err := a.Construct(&b.block[start+i], ctor(i)); err != nil {
			b.destroy(start, start+i)
			return err
		}
	}
	b.live = start + n
	return nil
}

// DestroyFrom destroys the elements in [i, Len()) in order and moves the live
// mark back to i.
func (b *Buffer[T]) DestroyFrom(i int) {
	b.destroy(i, b.live)
	b.live = i
}

// Insert constructs n elements at pos, the i-th from ctor(i), shifting
// [pos, Len()) right by n. The block grows as needed.
//
// If growth or a construction fails, the buffer keeps its original elements in
// their original order. Only the capacity may have grown.
func (b *Buffer[T]) Insert(pos, n int, ctor func(i int) alloc.Constructor[T]) error {
	if n == 0 {
		return nil
	}
	if err := b.EnsureRoom(n); err != nil {
		return err
	}

	a := b.Allocator()
	end := b.live
	b.shift(pos+n, pos, end-pos)
	b.live = end + n

	for i := 0; i < n; i++ {
		if err := a.Construct(&b.block[pos+i], ctor(i)); err != nil {
			b.destroy(pos, pos+i)
			b.shift(pos, pos+n, end-pos)
			b.live = end
			return err
		}
	}
	return nil
}

// Erase destroys the elements in [first, last) and shifts the tail left to
// close the gap.
func (b *Buffer[T]) Erase(first, last int) {
	if first == last {
		return
	}
	b.destroy(first, last)
	b.shift(first, last, b.live-last)
	b.live -= last - first
}

func (b *Buffer[T]) destroy(first, last int) {
	a := b.Allocator()
	for i := first; i < last; i++ {
		a.Destroy(&b.block[i])
	}
}

// shift moves count elements from src to dst inside the block. Vacated slots
// that are not overwritten are left zeroed and uninitialized.
func (b *Buffer[T]) shift(dst, src, count int) {
	if dst == src || count == 0 {
		return
	}
	if dst > src {
		for k := count - 1; k >= 0; k-- {
			b.relocate(&b.block[dst+k], &b.block[src+k])
		}
		return
	}
	for k := 0; k < count; k++ {
		b.relocate(&b.block[dst+k], &b.block[src+k])
	}
}

// relocate moves the element at src into the uninitialized slot dst.
func (b *Buffer[T]) relocate(dst, src *T) {
	var zero T
	*dst = *src
	*src = zero
	alloc.Relocated(b.Allocator(), dst, src)
}

// MoveBack moves every element of src to the end of b, constructing each
// one through b's capability. On success src keeps its block but holds no
// elements.
//
// If growth or a construction fails, b and src are left as they were.
func (b *Buffer[T]) MoveBack(src *Buffer[T]) error {
	n := src.live
	if n == 0 {
		return nil
	}
	if err := b.EnsureRoom(n); err != nil {
		return err
	}

	a := b.Allocator()
	start := b.live
	for i := 0; i < n; i++ {
		v := src.block[i]
		if err := a.Construct(&b.block[start+i], alloc.Value(v)); err != nil {
			// The copies share their referents with src and are forgotten
			// rather than destroyed.
			for j := start; j < start+i; j++ {
				alloc.Forget(a, &b.block[j])
			}
			return err
		}
	}
	b.live = start + n

	from := src.Allocator()
	for i := 0; i < n; i++ {
		alloc.Forget(from, &src.block[i])
	}
	src.live = 0
	return nil
}
