package vector

import "unsafe"

// Iterator is a random-access cursor into a vector's block. It owns nothing
// and does not keep the vector alive.
//
// Any call that may reallocate or shift elements (growth, insertion,
// erasure, assignment, Clear, Resize, ShrinkToFit) invalidates iterators
// into the affected vector. Using an invalidated iterator, or dereferencing
// End, is a caller error; it panics or yields stale values.
//
// The zero value compares equal to Begin and End of an empty vector with no
// block.
type Iterator[T any] struct {
	block []T
	pos   int
}

// Begin returns an iterator to the first element.
func (v *Vector[T]) Begin() Iterator[T] { return v.iter(0) }

// End returns an iterator one past the last element.
func (v *Vector[T]) End() Iterator[T] { return v.iter(v.Len()) }

// CBegin returns a read-only iterator to the first element.
func (v *Vector[T]) CBegin() ConstIterator[T] { return v.Begin().Const() }

// CEnd returns a read-only iterator one past the last element.
func (v *Vector[T]) CEnd() ConstIterator[T] { return v.End().Const() }

// RBegin returns a reverse iterator to the last element.
func (v *Vector[T]) RBegin() ReverseIterator[T] { return Reverse(v.End()) }

// REnd returns a reverse iterator one before the first element.
func (v *Vector[T]) REnd() ReverseIterator[T] { return Reverse(v.Begin()) }

// CRBegin returns a read-only reverse iterator to the last element.
func (v *Vector[T]) CRBegin() ConstReverseIterator[T] { return v.RBegin().Const() }

// CREnd returns a read-only reverse iterator one before the first element.
func (v *Vector[T]) CREnd() ConstReverseIterator[T] { return v.REnd().Const() }

func (v *Vector[T]) iter(i int) Iterator[T] {
	return Iterator[T]{block: v.buf.Block(), pos: i}
}

// index converts a position argument into an offset into the live range.
// Iterators into another block panic, as do positions outside [0, Len()].
func (v *Vector[T]) index(it Iterator[T]) int {
	if len(it.block) != 0 && !sameBlock(it.block, v.buf.Block()) {
		panic("vector: iterator does not belong to this vector")
	}
	if it.pos < 0 || it.pos > v.Len() {
		panic("vector: iterator out of range")
	}
	return it.pos
}

// Get returns the element it refers to.
func (it Iterator[T]) Get() T { return it.block[it.pos] }

// Set overwrites the element it refers to by plain assignment.
func (it Iterator[T]) Set(x T) { it.block[it.pos] = x }

// Ptr returns a pointer to the element it refers to.
func (it Iterator[T]) Ptr() *T { return &it.block[it.pos] }

// At returns the element k positions away.
func (it Iterator[T]) At(k int) T { return it.block[it.pos+k] }

// Index returns the offset of it from the start of the block.
func (it Iterator[T]) Index() int { return it.pos }

// Next returns an iterator to the following element.
func (it Iterator[T]) Next() Iterator[T] { return it.Add(1) }

// Prev returns an iterator to the preceding element.
func (it Iterator[T]) Prev() Iterator[T] { return it.Sub(1) }

// Inc advances it and returns the new position.
func (it *Iterator[T]) Inc() Iterator[T] {
	it.pos++
	return *it
}

// Dec moves it back and returns the new position.
func (it *Iterator[T]) Dec() Iterator[T] {
	it.pos--
	return *it
}

// PostInc advances it and returns the previous position.
func (it *Iterator[T]) PostInc() Iterator[T] {
	old := *it
	it.pos++
	return old
}

// PostDec moves it back and returns the previous position.
func (it *Iterator[T]) PostDec() Iterator[T] {
	old := *it
	it.pos--
	return old
}

// Add returns an iterator k positions forward.
func (it Iterator[T]) Add(k int) Iterator[T] {
	it.pos += k
	return it
}

// Sub returns an iterator k positions back.
func (it Iterator[T]) Sub(k int) Iterator[T] {
	it.pos -= k
	return it
}

// Diff returns the signed distance from other to it.
func (it Iterator[T]) Diff(other Iterator[T]) int { return it.pos - other.pos }

// Equal reports whether both iterators refer to the same position of the
// same block.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.pos == other.pos && sameBlock(it.block, other.block)
}

// NotEqual reports whether it and other refer to different positions.
func (it Iterator[T]) NotEqual(other Iterator[T]) bool { return !it.Equal(other) }

// Less reports whether it comes before other.
func (it Iterator[T]) Less(other Iterator[T]) bool { return it.pos < other.pos }

// Greater reports whether it comes after other.
func (it Iterator[T]) Greater(other Iterator[T]) bool { return it.pos > other.pos }

// LessEq reports whether it does not come after other.
func (it Iterator[T]) LessEq(other Iterator[T]) bool { return it.pos <= other.pos }

// GreaterEq reports whether it does not come before other.
func (it Iterator[T]) GreaterEq(other Iterator[T]) bool { return it.pos >= other.pos }

// Const returns a read-only view of it.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{it: it} }

// span returns the elements of [it, last).
func (it Iterator[T]) span(last Iterator[T]) []T {
	return it.block[it.pos:last.pos:last.pos]
}

func sameBlock[T any](x, y []T) bool {
	return unsafe.SliceData(x) == unsafe.SliceData(y)
}

// ConstIterator is the read-only form of Iterator. Its methods mirror the
// ones of Iterator without Set and Ptr.
type ConstIterator[T any] struct {
	it Iterator[T]
}

func (c ConstIterator[T]) Get() T                               { return c.it.Get() }
func (c ConstIterator[T]) At(k int) T                           { return c.it.At(k) }
func (c ConstIterator[T]) Index() int                           { return c.it.pos }
func (c ConstIterator[T]) Next() ConstIterator[T]               { return c.Add(1) }
func (c ConstIterator[T]) Prev() ConstIterator[T]               { return c.Sub(1) }
func (c ConstIterator[T]) Add(k int) ConstIterator[T]           { return c.it.Add(k).Const() }
func (c ConstIterator[T]) Sub(k int) ConstIterator[T]           { return c.it.Sub(k).Const() }
func (c ConstIterator[T]) Diff(other ConstIterator[T]) int      { return c.it.Diff(other.it) }
func (c ConstIterator[T]) Equal(other ConstIterator[T]) bool    { return c.it.Equal(other.it) }
func (c ConstIterator[T]) NotEqual(other ConstIterator[T]) bool { return !c.it.Equal(other.it) }
func (c ConstIterator[T]) Less(other ConstIterator[T]) bool     { return c.it.Less(other.it) }
func (c ConstIterator[T]) Greater(other ConstIterator[T]) bool  { return c.it.Greater(other.it) }
func (c ConstIterator[T]) LessEq(other ConstIterator[T]) bool   { return c.it.LessEq(other.it) }
func (c ConstIterator[T]) GreaterEq(other ConstIterator[T]) bool {
	return c.it.GreaterEq(other.it)
}

func (c *ConstIterator[T]) Inc() ConstIterator[T]     { c.it.Inc(); return *c }
func (c *ConstIterator[T]) Dec() ConstIterator[T]     { c.it.Dec(); return *c }
func (c *ConstIterator[T]) PostInc() ConstIterator[T] { return c.it.PostInc().Const() }
func (c *ConstIterator[T]) PostDec() ConstIterator[T] { return c.it.PostDec().Const() }

// ReverseIterator walks a vector back to front. It wraps a forward iterator
// to the element after the one it refers to, so Reverse(End()) refers to the
// last element.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// Reverse returns a reverse iterator referring to the element before base.
func Reverse[T any](base Iterator[T]) ReverseIterator[T] {
	return ReverseIterator[T]{base: base}
}

// Base returns the underlying forward iterator.
func (r ReverseIterator[T]) Base() Iterator[T] { return r.base }

// Get returns the element r refers to.
func (r ReverseIterator[T]) Get() T { return r.base.At(-1) }

// Set overwrites the element r refers to by plain assignment.
func (r ReverseIterator[T]) Set(x T) { r.base.Sub(1).Set(x) }

// Ptr returns a pointer to the element r refers to.
func (r ReverseIterator[T]) Ptr() *T { return r.base.Sub(1).Ptr() }

// At returns the element k positions further toward the front.
func (r ReverseIterator[T]) At(k int) T { return r.base.At(-1 - k) }

// Next returns an iterator to the preceding element of the vector.
func (r ReverseIterator[T]) Next() ReverseIterator[T] { return r.Add(1) }

// Prev returns an iterator to the following element of the vector.
func (r ReverseIterator[T]) Prev() ReverseIterator[T] { return r.Sub(1) }

// Add returns an iterator k positions toward the front.
func (r ReverseIterator[T]) Add(k int) ReverseIterator[T] { return Reverse(r.base.Sub(k)) }

// Sub returns an iterator k positions toward the back.
func (r ReverseIterator[T]) Sub(k int) ReverseIterator[T] { return Reverse(r.base.Add(k)) }

// Diff returns the signed distance from other to r in walking order.
func (r ReverseIterator[T]) Diff(other ReverseIterator[T]) int {
	return other.base.pos - r.base.pos
}

// Inc advances r toward the front and returns the new position.
func (r *ReverseIterator[T]) Inc() ReverseIterator[T] {
	r.base.pos--
	return *r
}

// Dec moves r toward the back and returns the new position.
func (r *ReverseIterator[T]) Dec() ReverseIterator[T] {
	r.base.pos++
	return *r
}

// PostInc advances r and returns the previous position.
func (r *ReverseIterator[T]) PostInc() ReverseIterator[T] {
	old := *r
	r.base.pos--
	return old
}

// PostDec moves r back and returns the previous position.
func (r *ReverseIterator[T]) PostDec() ReverseIterator[T] {
	old := *r
	r.base.pos++
	return old
}

// Equal reports whether both iterators refer to the same element.
func (r ReverseIterator[T]) Equal(other ReverseIterator[T]) bool { return r.base.Equal(other.base) }

// NotEqual reports whether r and other refer to different elements.
func (r ReverseIterator[T]) NotEqual(other ReverseIterator[T]) bool { return !r.base.Equal(other.base) }

// Less reports whether r comes before other in walking order.
func (r ReverseIterator[T]) Less(other ReverseIterator[T]) bool { return r.base.pos > other.base.pos }

// Greater reports whether r comes after other in walking order.
func (r ReverseIterator[T]) Greater(other ReverseIterator[T]) bool { return r.base.pos < other.base.pos }

// LessEq reports whether r does not come after other in walking order.
func (r ReverseIterator[T]) LessEq(other ReverseIterator[T]) bool { return r.base.pos >= other.base.pos }

// GreaterEq reports whether r does not come before other in walking order.
func (r ReverseIterator[T]) GreaterEq(other ReverseIterator[T]) bool {
	return r.base.pos <= other.base.pos
}

// Const returns a read-only view of r.
func (r ReverseIterator[T]) Const() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{r: r}
}

// ConstReverseIterator is the read-only form of ReverseIterator. Its methods
// mirror the ones of ReverseIterator without Set and Ptr.
type ConstReverseIterator[T any] struct {
	r ReverseIterator[T]
}

func (c ConstReverseIterator[T]) Base() ConstIterator[T]          { return c.r.base.Const() }
func (c ConstReverseIterator[T]) Get() T                          { return c.r.Get() }
func (c ConstReverseIterator[T]) At(k int) T                      { return c.r.At(k) }
func (c ConstReverseIterator[T]) Next() ConstReverseIterator[T]   { return c.r.Next().Const() }
func (c ConstReverseIterator[T]) Prev() ConstReverseIterator[T]   { return c.r.Prev().Const() }
func (c ConstReverseIterator[T]) Add(k int) ConstReverseIterator[T] {
	return c.r.Add(k).Const()
}
func (c ConstReverseIterator[T]) Sub(k int) ConstReverseIterator[T] {
	return c.r.Sub(k).Const()
}
func (c ConstReverseIterator[T]) Diff(other ConstReverseIterator[T]) int {
	return c.r.Diff(other.r)
}
func (c ConstReverseIterator[T]) Equal(other ConstReverseIterator[T]) bool {
	return c.r.Equal(other.r)
}
func (c ConstReverseIterator[T]) NotEqual(other ConstReverseIterator[T]) bool {
	return !c.r.Equal(other.r)
}
func (c ConstReverseIterator[T]) Less(other ConstReverseIterator[T]) bool {
	return c.r.Less(other.r)
}
func (c ConstReverseIterator[T]) Greater(other ConstReverseIterator[T]) bool {
	return c.r.Greater(other.r)
}
func (c ConstReverseIterator[T]) LessEq(other ConstReverseIterator[T]) bool {
	return c.r.LessEq(other.r)
}
func (c ConstReverseIterator[T]) GreaterEq(other ConstReverseIterator[T]) bool {
	return c.r.GreaterEq(other.r)
}

func (c *ConstReverseIterator[T]) Inc() ConstReverseIterator[T]     { c.r.Inc(); return *c }
func (c *ConstReverseIterator[T]) Dec() ConstReverseIterator[T]     { c.r.Dec(); return *c }
func (c *ConstReverseIterator[T]) PostInc() ConstReverseIterator[T] { return c.r.PostInc().Const() }
func (c *ConstReverseIterator[T]) PostDec() ConstReverseIterator[T] { return c.r.PostDec().Const() }
