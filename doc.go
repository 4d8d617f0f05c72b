// Package vector provides a generic growable array with a pluggable
// allocation capability.
//
// A Vector keeps its elements in one contiguous block obtained from an
// alloc.Allocator. The allocator decides where blocks come from and how
// elements are constructed, destroyed and moved; alloc.Heap is the default,
// alloc.Budgeted charges blocks against a shared memory budget and
// alloc.Tracking verifies element lifetimes.
//
// # Quick Start
//
//	v, _ := vector.Of([]int{9, 6, 44})
//	_ = v.PushBack(52)
//	it, _ := v.Insert(v.Begin().Next(), 7)
//	fmt.Println(v, it.Get()) // [9 7 6 44 52] 7
//
// # Capacity
//
// Len elements are live and the block has room for Cap. When an insertion
// needs more room the block is replaced by one of max(required, 2*Cap())
// slots, so appends run in amortized constant time. Reserve grows ahead of
// time, ShrinkToFit trims the block to Len and Clear gives it back.
//
// # Errors
//
// Operations that allocate or construct return an error instead of
// panicking:
//
//   - ErrAllocationFailure when no block could be obtained. The vector is
//     unchanged.
//   - The constructor's own error when building an element fails. Elements
//     built by the failed call are destroyed again; inserts and appends leave
//     the vector as it was, assignments that reuse the block leave it empty.
//   - *OutOfRangeError (matching ErrOutOfRange) from At.
//
// Unchecked access (Get, Set, Ptr, Front, Back, PopBack, iterator
// dereference) panics on a bad index like a slice would.
//
// # Iterators
//
// Iterator, ConstIterator, ReverseIterator and ConstReverseIterator are
// random-access cursors for code written against positions. Any call that
// may reallocate or shift elements invalidates them. Go range loops are
// served by All, Values and Backward.
//
// # Element Types
//
// Elements are moved bitwise. Element types that own resources can
// implement alloc.Cloner to control copies and alloc.Destroyer to be told
// when a vector drops them. Every live element is destroyed exactly once.
//
// # Observability
//
// WithLogger and WithMetricsCollector report block growth, shrinking and
// release. See BasicMetricsCollector for an in-memory collector.
package vector
