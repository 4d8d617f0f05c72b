package vector

import (
	"iter"
	"slices"

	"github.com/hupe1980/vector/alloc"
	"github.com/hupe1980/vector/internal/storage"
)

// Reserve makes room for at least n elements without changing Len. It never
// shrinks the block; growing follows the usual growth rule.
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		return invalidSize(n)
	}
	return v.buf.EnsureCapacity(n)
}

// ShrinkToFit replaces the block with one of exactly Len slots. An empty
// vector gives its block back.
func (v *Vector[T]) ShrinkToFit() error {
	return v.buf.ShrinkToFit()
}

// Resize changes the number of elements to n, appending zero values or
// destroying the elements past n. Shrinking keeps the capacity.
func (v *Vector[T]) Resize(n int) error {
	return v.resize(n, func(int) alloc.Constructor[T] { return alloc.Default[T]() })
}

// ResizeFill is like Resize but appends copies of value.
func (v *Vector[T]) ResizeFill(n int, value T) error {
	return v.resize(n, func(int) alloc.Constructor[T] { return alloc.CopyOf(value) })
}

func (v *Vector[T]) resize(n int, ctor func(int) alloc.Constructor[T]) error {
	if n < 0 {
		return invalidSize(n)
	}
	if n <= v.Len() {
		v.buf.DestroyFrom(n)
		return nil
	}
	return v.appendN(n-v.Len(), ctor)
}

// PushBack appends x, taking ownership of it.
func (v *Vector[T]) PushBack(x T) error {
	return v.EmplaceBack(alloc.Value(x))
}

// EmplaceBack appends the element built by ctor. If ctor fails the vector
// is unchanged apart from a possibly larger capacity.
func (v *Vector[T]) EmplaceBack(ctor alloc.Constructor[T]) error {
	return v.appendN(1, func(int) alloc.Constructor[T] { return ctor })
}

// PopBack destroys the last element. It panics on an empty vector.
func (v *Vector[T]) PopBack() {
	n := v.Len()
	if n == 0 {
		panic("vector: PopBack on empty vector")
	}
	v.buf.DestroyFrom(n - 1)
}

func (v *Vector[T]) appendN(n int, ctor func(int) alloc.Constructor[T]) error {
	if n == 0 {
		return nil
	}
	if err := v.buf.EnsureRoom(n); err != nil {
		return err
	}
	return v.buf.ConstructBack(n, ctor)
}

// Insert places x before pos, taking ownership of it, and returns an
// iterator to the inserted element.
//
// Iterators at or after pos are invalidated, and all of them if the block
// grew. On error the elements and their order are unchanged.
func (v *Vector[T]) Insert(pos Iterator[T], x T) (Iterator[T], error) {
	return v.insert(pos, 1, func(int) alloc.Constructor[T] { return alloc.Value(x) })
}

// InsertN places n copies of x before pos and returns an iterator to the
// first of them, or pos if n is zero.
func (v *Vector[T]) InsertN(pos Iterator[T], n int, x T) (Iterator[T], error) {
	if n < 0 {
		return pos, invalidSize(n)
	}
	return v.insert(pos, n, func(int) alloc.Constructor[T] { return alloc.CopyOf(x) })
}

// InsertRange places copies of [first, last) before pos. The range may
// belong to v itself.
func (v *Vector[T]) InsertRange(pos, first, last Iterator[T]) (Iterator[T], error) {
	return v.InsertSlice(pos, first.span(last))
}

// InsertSlice places copies of values before pos. values may share v's
// block.
func (v *Vector[T]) InsertSlice(pos Iterator[T], values []T) (Iterator[T], error) {
	if v.aliases(values) {
		// Shifting moves the source; keep a shallow view that stays put.
		values = slices.Clone(values)
	}
	return v.insert(pos, len(values), copyFrom(values))
}

// Emplace places the element built by ctor before pos.
func (v *Vector[T]) Emplace(pos Iterator[T], ctor alloc.Constructor[T]) (Iterator[T], error) {
	return v.insert(pos, 1, func(int) alloc.Constructor[T] { return ctor })
}

func (v *Vector[T]) insert(pos Iterator[T], n int, ctor func(int) alloc.Constructor[T]) (Iterator[T], error) {
	i := v.index(pos)
	if err := v.buf.Insert(i, n, ctor); err != nil {
		return v.iter(i), err
	}
	return v.iter(i), nil
}

// Erase destroys the element at pos and returns an iterator to the element
// that followed it. pos must be dereferenceable.
func (v *Vector[T]) Erase(pos Iterator[T]) Iterator[T] {
	i := v.index(pos)
	if i == v.Len() {
		panic("vector: Erase at End")
	}
	v.buf.Erase(i, i+1)
	return v.iter(i)
}

// EraseRange destroys [first, last) and returns an iterator to the element
// that followed the range.
func (v *Vector[T]) EraseRange(first, last Iterator[T]) Iterator[T] {
	i, j := v.index(first), v.index(last)
	if i > j {
		panic("vector: EraseRange with first after last")
	}
	v.buf.Erase(i, j)
	return v.iter(i)
}

// AssignN replaces the contents with n copies of value.
func (v *Vector[T]) AssignN(n int, value T) error {
	if n < 0 {
		return invalidSize(n)
	}
	return v.assign(n, func(int) alloc.Constructor[T] { return alloc.CopyOf(value) }, false)
}

// AssignRange replaces the contents with copies of [first, last). The range
// may belong to v itself.
func (v *Vector[T]) AssignRange(first, last Iterator[T]) error {
	return v.AssignSlice(first.span(last))
}

// AssignSlice replaces the contents with copies of values.
func (v *Vector[T]) AssignSlice(values []T) error {
	return v.assign(len(values), copyFrom(values), v.aliases(values))
}

// AssignSeq replaces the contents with the values yielded by seq, stored as
// yielded.
func (v *Vector[T]) AssignSeq(seq iter.Seq[T]) error {
	values := slices.Collect(seq)
	return v.assign(len(values), valueFrom(values), false)
}

// CopyFrom makes v a deep copy of other, keeping v's allocator. The current
// block is reused when it is large enough. Copying from v itself does
// nothing.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	return v.assign(other.Len(), copyFrom(other.buf.Live()), false)
}

// MoveFrom makes v hold the elements of other, leaving other empty with no
// block. Moving from v itself does nothing.
//
// When both allocators are the same capability the block changes hands.
// Otherwise the elements are moved into a block from v's allocator; if that
// fails both vectors are unchanged.
func (v *Vector[T]) MoveFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	if alloc.Same(v.buf.Allocator(), other.buf.Allocator()) {
		v.buf.Release()
		v.buf.Swap(&other.buf)
		return nil
	}

	fresh := storage.New(v.buf.Allocator(), v.obs)
	if err := fresh.MoveBack(&other.buf); err != nil {
		fresh.Release()
		return err
	}
	other.buf.Release()
	v.buf.Release()
	v.buf.Swap(&fresh)
	return nil
}

// assign rebuilds the contents from n constructors.
//
// When the current block is too small, or the source lives in it, the new
// contents are built in a fresh block first and v is unchanged on error.
// Otherwise the old elements are destroyed first and an error leaves v
// empty.
func (v *Vector[T]) assign(n int, ctor func(int) alloc.Constructor[T], aliased bool) error {
	if n <= v.Cap() && !aliased {
		v.buf.DestroyFrom(0)
		return v.buf.ConstructBack(n, ctor)
	}

	fresh := storage.New(v.buf.Allocator(), v.obs)
	if err := fresh.EnsureCapacity(n); err != nil {
		return err
	}
	if err := fresh.ConstructBack(n, ctor); err != nil {
		fresh.Release()
		return err
	}
	v.buf.Release()
	v.buf.Swap(&fresh)
	return nil
}

// Clear destroys every element and gives the block back. Capacity becomes
// zero.
func (v *Vector[T]) Clear() {
	v.buf.Release()
}

// Close releases the vector's block like Clear. The vector stays usable.
// It always returns nil and exists so a vector can be handed to code that
// closes io.Closer values.
func (v *Vector[T]) Close() error {
	if v == nil {
		return nil
	}
	v.buf.Release()
	return nil
}

// Swap exchanges the contents and allocators of v and other. No element is
// touched and no iterator is invalidated, but iterators keep referring to
// the block they were obtained from.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf.Swap(&other.buf)
}
