package alloc

import (
	"errors"
	"reflect"
)

// ErrAllocationFailure is returned when a capability cannot satisfy a request.
var ErrAllocationFailure = errors.New("alloc: allocation failed")

// Constructor produces the value placed into a slot.
type Constructor[T any] func() (T, error)

// Allocator is the allocation capability of a container.
type Allocator[T any] interface {
	// Allocate returns a block of exactly n uninitialized slots.
	// Allocate(0) may return a nil block.
	Allocate(n int) ([]T, error)

	// Deallocate releases a block previously returned by Allocate.
	// All of its slots must be uninitialized.
	Deallocate(block []T)

	// Construct runs ctor and stores its result in slot. On error the slot
	// stays uninitialized.
	Construct(slot *T, ctor Constructor[T]) error

	// Destroy ends the lifetime of the element in slot and leaves the slot
	// uninitialized.
	Destroy(slot *T)
}

// Relocator is implemented by capabilities that observe element moves.
// Relocate is called after the element has been moved from src to dst.
type Relocator[T any] interface {
	Relocate(dst, src *T)
}

// Forgetter is implemented by capabilities that observe elements leaving a
// slot without being destroyed, such as the source of a move into another
// capability's block.
type Forgetter[T any] interface {
	Forget(slot *T)
}

// Equaler is implemented by capabilities with a custom notion of equality.
type Equaler[T any] interface {
	Equal(other Allocator[T]) bool
}

// Cloner is implemented by element types whose copies need more than an
// assignment.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Destroyer is implemented by element types holding resources that must be
// released when the element is destroyed.
type Destroyer interface {
	Destroy()
}

// Default returns a constructor producing the zero value of T.
func Default[T any]() Constructor[T] {
	return func() (T, error) {
		var zero T
		return zero, nil
	}
}

// Value returns a constructor handing v over as-is.
func Value[T any](v T) Constructor[T] {
	return func() (T, error) {
		return v, nil
	}
}

// CopyOf returns a constructor producing a copy of v.
// Elements implementing Cloner are copied through Clone.
func CopyOf[T any](v T) Constructor[T] {
	return func() (T, error) {
		return Copy(v)
	}
}

// Copy returns a copy of v, using Clone when T implements Cloner.
func Copy[T any](v T) (T, error) {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(&v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v, nil
}

// Relocated informs a, if it implements Relocator, that an element moved from
// src to dst.
func Relocated[T any](a Allocator[T], dst, src *T) {
	if r, ok := a.(Relocator[T]); ok {
		r.Relocate(dst, src)
	}
}

// Forget zeroes slot without running any Destroyer hook and informs a, if it
// implements Forgetter, that the slot no longer holds a live element.
func Forget[T any](a Allocator[T], slot *T) {
	var zero T
	*slot = zero
	if f, ok := a.(Forgetter[T]); ok {
		f.Forget(slot)
	}
}

// Same reports whether storage obtained from a may be released through b.
//
// Capabilities implementing Equaler decide for themselves. Otherwise two
// capabilities are the same when they have the same comparable dynamic type
// and compare equal.
func Same[T any](a, b Allocator[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(Equaler[T]); ok {
		return eq.Equal(b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// destroyElement runs the Destroyer hook of a live element and zeroes the slot.
func destroyElement[T any](slot *T) {
	switch d := any(*slot).(type) {
	case Destroyer:
		d.Destroy()
	default:
		if d, ok := any(slot).(Destroyer); ok {
			d.Destroy()
		}
	}
	var zero T
	*slot = zero
}
