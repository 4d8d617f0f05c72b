package vector

import "cmp"

// Equal reports whether a and b have the same length and equal elements in
// the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T, U any](a *Vector[T], b *Vector[U], eq func(T, U) bool) bool {
	x, y := a.Data(), b.Data()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !eq(x[i], y[i]) {
			return false
		}
	}
	return true
}

// NotEqual is !Equal(a, b).
func NotEqual[T comparable](a, b *Vector[T]) bool {
	return !Equal(a, b)
}

// Less reports whether a orders before b lexicographically. The first
// element pair that differs in either direction decides; if one vector is a
// prefix of the other, the shorter one is less.
func Less[T cmp.Ordered](a, b *Vector[T]) bool {
	x, y := a.Data(), b.Data()
	n := min(len(x), len(y))
	for i := 0; i < n; i++ {
		if cmp.Less(x[i], y[i]) {
			return true
		}
		if cmp.Less(y[i], x[i]) {
			return false
		}
	}
	return len(x) < len(y)
}

// Greater is Less(b, a).
func Greater[T cmp.Ordered](a, b *Vector[T]) bool {
	return Less(b, a)
}

// LessEq is !Less(b, a).
func LessEq[T cmp.Ordered](a, b *Vector[T]) bool {
	return !Less(b, a)
}

// GreaterEq is !Less(a, b).
func GreaterEq[T cmp.Ordered](a, b *Vector[T]) bool {
	return !Less(a, b)
}

// Compare returns -1, 0 or +1 depending on the lexicographic order of a and
// b.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is like Compare but orders elements with cmp.
func CompareFunc[T, U any](a *Vector[T], b *Vector[U], cmp func(T, U) int) int {
	x, y := a.Data(), b.Data()
	n := min(len(x), len(y))
	for i := 0; i < n; i++ {
		if c := cmp(x[i], y[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}
