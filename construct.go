package vector

import (
	"iter"
	"slices"

	"github.com/hupe1980/vector/alloc"
)

// New returns an empty vector. No block is allocated until the first
// insertion or Reserve.
func New[T any](opts ...Option) (*Vector[T], error) {
	return build[T](applyOptions(defaultOptions(), opts))
}

// NewSized returns a vector of n zero values.
func NewSized[T any](n int, opts ...Option) (*Vector[T], error) {
	return construct(applyOptions(defaultOptions(), opts), n, func(int) alloc.Constructor[T] {
		return alloc.Default[T]()
	})
}

// NewFilled returns a vector of n copies of value. Elements implementing
// alloc.Cloner are copied through Clone.
func NewFilled[T any](n int, value T, opts ...Option) (*Vector[T], error) {
	return construct(applyOptions(defaultOptions(), opts), n, func(int) alloc.Constructor[T] {
		return alloc.CopyOf(value)
	})
}

// FromRange returns a vector holding copies of [first, last).
func FromRange[T any](first, last Iterator[T], opts ...Option) (*Vector[T], error) {
	src := first.span(last)
	return construct(applyOptions(defaultOptions(), opts), len(src), copyFrom(src))
}

// Of returns a vector holding copies of values, in order.
func Of[T any](values []T, opts ...Option) (*Vector[T], error) {
	return construct(applyOptions(defaultOptions(), opts), len(values), copyFrom(values))
}

// FromSeq returns a vector holding the values yielded by seq, in order. The
// values are stored as yielded, without copying.
func FromSeq[T any](seq iter.Seq[T], opts ...Option) (*Vector[T], error) {
	values := slices.Collect(seq)
	return construct(applyOptions(defaultOptions(), opts), len(values), valueFrom(values))
}

// Clone returns a deep copy of v. The copy uses the same allocator, logger
// and metrics collector as v unless overridden by opts.
func (v *Vector[T]) Clone(opts ...Option) (*Vector[T], error) {
	return construct(applyOptions(v.options(), opts), v.Len(), copyFrom(v.buf.Live()))
}

// Take returns a vector holding the elements of src, leaving src empty with
// no block.
//
// When the resulting allocator is the same capability as src's (see
// alloc.Same), the block itself changes hands and no element is touched.
// Otherwise every element is moved into a block from the new allocator; if
// that fails src is left as it was.
func Take[T any](src *Vector[T], opts ...Option) (*Vector[T], error) {
	dst, err := build[T](applyOptions(src.options(), opts))
	if err != nil {
		return nil, err
	}
	if alloc.Same(dst.buf.Allocator(), src.buf.Allocator()) {
		dst.buf.Swap(&src.buf)
		return dst, nil
	}
	if err := dst.buf.MoveBack(&src.buf); err != nil {
		dst.Clear()
		return nil, err
	}
	src.buf.Release()
	return dst, nil
}

func construct[T any](o options, n int, ctor func(int) alloc.Constructor[T]) (*Vector[T], error) {
	if n < 0 {
		return nil, invalidSize(n)
	}
	v, err := build[T](o)
	if err != nil {
		return nil, err
	}
	if err := v.appendN(n, ctor); err != nil {
		v.Clear()
		return nil, err
	}
	return v, nil
}

func copyFrom[T any](src []T) func(int) alloc.Constructor[T] {
	return func(i int) alloc.Constructor[T] {
		return alloc.CopyOf(src[i])
	}
}

func valueFrom[T any](src []T) func(int) alloc.Constructor[T] {
	return func(i int) alloc.Constructor[T] {
		return alloc.Value(src[i])
	}
}
