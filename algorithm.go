package vector

import (
	"cmp"
	"slices"
)

// Sort sorts [first, last) in ascending order.
func Sort[T cmp.Ordered](first, last Iterator[T]) {
	slices.Sort(first.span(last))
}

// SortFunc sorts [first, last) in the order defined by cmp.
func SortFunc[T any](first, last Iterator[T], cmp func(a, b T) int) {
	slices.SortFunc(first.span(last), cmp)
}

// SortStableFunc is like SortFunc but keeps equal elements in their
// original order.
func SortStableFunc[T any](first, last Iterator[T], cmp func(a, b T) int) {
	slices.SortStableFunc(first.span(last), cmp)
}

// ReverseRange reverses the elements of [first, last) in place.
func ReverseRange[T any](first, last Iterator[T]) {
	slices.Reverse(first.span(last))
}

// Find returns an iterator to the first element of [first, last) equal to
// x, or last if there is none.
func Find[T comparable](first, last Iterator[T], x T) Iterator[T] {
	if i := slices.Index(first.span(last), x); i >= 0 {
		return first.Add(i)
	}
	return last
}

// Distance returns the number of elements in [first, last).
func Distance[T any](first, last Iterator[T]) int {
	return last.Diff(first)
}
