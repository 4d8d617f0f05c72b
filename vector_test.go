package vector_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/hupe1980/vector"
	"github.com/hupe1980/vector/alloc"
	"github.com/hupe1980/vector/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counted = testutil.Counted

// token is a Destroyer whose zero value is an ordinary live element.
type token struct{ id int }

var tokensDestroyed int

func (token) Destroy() { tokensDestroyed++ }

func mustOf[T any](t *testing.T, values []T, opts ...vector.Option) *vector.Vector[T] {
	t.Helper()
	v, err := vector.Of(values, opts...)
	require.NoError(t, err)
	return v
}

// fill appends fresh values 0..n-1 created by c.
func fill(t *testing.T, v *vector.Vector[counted], c *testutil.Counter, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, v.PushBack(c.New(i)))
	}
}

func ids(v *vector.Vector[counted]) []int {
	out := make([]int, 0, v.Len())
	for x := range v.Values() {
		out = append(out, x.ID)
	}
	return out
}

func TestScenarios(t *testing.T) {
	t.Run("push back", func(t *testing.T) {
		v, err := vector.New[int]()
		require.NoError(t, err)
		for _, x := range []int{9, 6, 44, 52, 1} {
			require.NoError(t, v.PushBack(x))
		}
		assert.Equal(t, 5, v.Len())
		assert.Equal(t, []int{9, 6, 44, 52, 1}, v.Data())
	})

	t.Run("insert", func(t *testing.T) {
		v := mustOf(t, []int{1, 3, 4})
		it, err := v.Insert(v.Begin().Add(1), 2)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, v.Data())
		assert.Equal(t, 2, it.Get())
		assert.Equal(t, 1, it.Index())
	})

	t.Run("erase range", func(t *testing.T) {
		v := mustOf(t, []int{1, 2, 3, 3, 3, 3, 4})
		it := v.EraseRange(v.Begin().Add(2), v.Begin().Add(5))
		assert.Equal(t, []int{1, 2, 3, 4}, v.Data())
		assert.Equal(t, 3, it.Get())
		assert.Equal(t, 2, it.Index())
	})

	t.Run("resize with fill", func(t *testing.T) {
		v := mustOf(t, []int{1, 2, 3, 4})
		require.NoError(t, v.ResizeFill(6, 3))
		assert.Equal(t, []int{1, 2, 3, 4, 3, 3}, v.Data())
		assert.Equal(t, 6, v.Len())
	})

	t.Run("sort", func(t *testing.T) {
		v := mustOf(t, []int{5, 3, 2, 4, 1, 0})
		vector.Sort(v.Begin(), v.End())
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, v.Data())
	})

	t.Run("checked access", func(t *testing.T) {
		v := mustOf(t, []int{1, 2, 3, 4})
		x, err := v.At(3)
		require.NoError(t, err)
		assert.Equal(t, 4, x)

		_, err = v.At(4)
		require.ErrorIs(t, err, vector.ErrOutOfRange)
		var oor *vector.OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, 4, oor.Index)
		assert.Equal(t, 4, oor.Size)

		_, err = v.At(-1)
		assert.ErrorIs(t, err, vector.ErrOutOfRange)
	})
}

func TestVector_ZeroValue(t *testing.T) {
	var v vector.Vector[string]
	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Cap())
	assert.Equal(t, "[]", v.String())
	assert.IsType(t, alloc.Heap[string]{}, v.Allocator())

	require.NoError(t, v.PushBack("a"))
	require.NoError(t, v.PushBack("b"))
	assert.Equal(t, "[a b]", v.String())

	v.Clear()
	assert.Equal(t, 0, v.Cap())
}

func TestConstructors(t *testing.T) {
	t.Run("sized", func(t *testing.T) {
		v, err := vector.NewSized[int](3)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0}, v.Data())
		assert.GreaterOrEqual(t, v.Cap(), 3)
	})

	t.Run("filled", func(t *testing.T) {
		v, err := vector.NewFilled(2, "x")
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "x"}, v.Data())
	})

	t.Run("from range", func(t *testing.T) {
		src := mustOf(t, []int{1, 2, 3, 4, 5})
		v, err := vector.FromRange(src.Begin().Add(1), src.End().Sub(1))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 4}, v.Data())
		assert.Equal(t, 3, v.Cap())

		v.Set(0, 20)
		assert.Equal(t, 2, src.Get(1), "the range must be copied")
	})

	t.Run("from seq", func(t *testing.T) {
		v, err := vector.FromSeq(slices.Values([]int{7, 8, 9}))
		require.NoError(t, err)
		assert.Equal(t, []int{7, 8, 9}, v.Data())
	})

	t.Run("empty", func(t *testing.T) {
		v, err := vector.Of[int](nil)
		require.NoError(t, err)
		assert.True(t, v.Empty())
		assert.Equal(t, 0, v.Cap())
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := vector.NewSized[int](-1)
		assert.ErrorIs(t, err, vector.ErrInvalidSize)
		_, err = vector.NewFilled(-2, 1)
		assert.ErrorIs(t, err, vector.ErrInvalidSize)
	})

	t.Run("allocator mismatch", func(t *testing.T) {
		_, err := vector.New[int](vector.WithAllocator[string](alloc.Heap[string]{}))
		assert.ErrorIs(t, err, vector.ErrAllocatorMismatch)
	})

	t.Run("copy failure rolls back", func(t *testing.T) {
		var c testutil.Counter
		proto := c.New(1)
		c.FailCloneAfter(2)

		_, err := vector.NewFilled(4, proto)
		require.ErrorIs(t, err, testutil.ErrCloneFailed)
		assert.Equal(t, 1, c.Live())
	})

	t.Run("allocation failure", func(t *testing.T) {
		fa := testutil.NewFaultyAllocator[int](nil)
		fa.FailAllocateAfter(0)
		_, err := vector.NewSized[int](4, vector.WithAllocator[int](fa))
		assert.ErrorIs(t, err, testutil.ErrInjectedAllocation)
		assert.ErrorIs(t, err, vector.ErrAllocationFailure)
	})
}

func TestVector_Clone(t *testing.T) {
	var c testutil.Counter
	tr := alloc.NewTracking[counted](nil)
	src, err := vector.New[counted](vector.WithAllocator[counted](tr))
	require.NoError(t, err)
	fill(t, src, &c, 3)

	dup, err := src.Clone()
	require.NoError(t, err)
	assert.Equal(t, ids(src), ids(dup))
	assert.Equal(t, 6, c.Live())
	assert.Same(t, tr, dup.Allocator(), "the copy inherits the allocator")

	other, err := src.Clone(vector.WithAllocator[counted](alloc.Heap[counted]{}))
	require.NoError(t, err)
	assert.IsType(t, alloc.Heap[counted]{}, other.Allocator())

	t.Run("failure", func(t *testing.T) {
		c.FailCloneAfter(1)
		defer c.FailCloneAfter(-1)
		_, err := src.Clone()
		require.ErrorIs(t, err, testutil.ErrCloneFailed)
		assert.Equal(t, 9, c.Live())
	})

	src.Clear()
	dup.Clear()
	other.Clear()
	assert.Equal(t, 0, c.Live())
	assert.Equal(t, 0, tr.Outstanding())
	require.NoError(t, tr.Err())
}

func TestTake(t *testing.T) {
	t.Run("same allocator transfers the block", func(t *testing.T) {
		src := mustOf(t, []int{1, 2, 3})
		first := &src.Data()[0]

		dst, err := vector.Take(src)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, dst.Data())
		assert.Same(t, first, &dst.Data()[0])
		assert.True(t, src.Empty())
		assert.Equal(t, 0, src.Cap())
	})

	t.Run("unequal allocator moves elements", func(t *testing.T) {
		var c testutil.Counter
		src, err := vector.New[counted]()
		require.NoError(t, err)
		fill(t, src, &c, 4)

		tr := alloc.NewTracking[counted](nil)
		dst, err := vector.Take(src, vector.WithAllocator[counted](tr))
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1, 2, 3}, ids(dst))
		assert.Equal(t, 4, c.Live(), "moving must neither copy nor destroy")
		assert.Equal(t, 0, src.Len())
		assert.Equal(t, 0, src.Cap())
		assert.Equal(t, 4, tr.Live())

		dst.Clear()
		assert.Equal(t, 0, c.Live())
		require.NoError(t, tr.Err())
	})

	t.Run("failure leaves the source intact", func(t *testing.T) {
		var c testutil.Counter
		src, err := vector.New[counted]()
		require.NoError(t, err)
		fill(t, src, &c, 4)

		fa := testutil.NewFaultyAllocator[counted](nil)
		fa.FailConstructAfter(2)
		_, err = vector.Take(src, vector.WithAllocator[counted](fa))
		require.ErrorIs(t, err, testutil.ErrInjectedConstruct)

		assert.Equal(t, []int{0, 1, 2, 3}, ids(src))
		assert.Equal(t, 4, c.Live())
	})
}

func TestVector_Capacity(t *testing.T) {
	v, err := vector.New[int]()
	require.NoError(t, err)

	var caps []int
	for i := 0; i < 9; i++ {
		require.NoError(t, v.PushBack(i))
		caps = append(caps, v.Cap())
	}
	assert.Equal(t, []int{1, 2, 4, 4, 8, 8, 8, 8, 16}, caps)

	t.Run("reserve never shrinks", func(t *testing.T) {
		require.NoError(t, v.Reserve(4))
		assert.Equal(t, 16, v.Cap())
		require.NoError(t, v.Reserve(20))
		assert.GreaterOrEqual(t, v.Cap(), 20)
		assert.Equal(t, 9, v.Len())
		assert.ErrorIs(t, v.Reserve(-1), vector.ErrInvalidSize)
	})

	t.Run("shrink to fit", func(t *testing.T) {
		require.NoError(t, v.ShrinkToFit())
		assert.Equal(t, v.Len(), v.Cap())
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, v.Data())
	})

	t.Run("resize down keeps capacity", func(t *testing.T) {
		require.NoError(t, v.Resize(3))
		assert.Equal(t, []int{0, 1, 2}, v.Data())
		assert.Equal(t, 9, v.Cap())

		require.NoError(t, v.Resize(5))
		assert.Equal(t, []int{0, 1, 2, 0, 0}, v.Data())
		assert.ErrorIs(t, v.Resize(-1), vector.ErrInvalidSize)
	})

	t.Run("clear releases the block", func(t *testing.T) {
		v.Clear()
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, 0, v.Cap())
		require.NoError(t, v.ShrinkToFit())
		assert.Equal(t, 0, v.Cap())
	})

	t.Run("max size", func(t *testing.T) {
		assert.Equal(t, math.MaxInt64/8, v.MaxSize())
		var bytes vector.Vector[byte]
		assert.Equal(t, math.MaxInt64, bytes.MaxSize())
	})
}

func TestVector_ElementAccess(t *testing.T) {
	v := mustOf(t, []int{10, 20, 30})

	assert.Equal(t, 10, v.Front())
	assert.Equal(t, 30, v.Back())
	assert.Equal(t, 20, v.Get(1))

	v.Set(1, 21)
	*v.Ptr(2) = 31
	assert.Equal(t, []int{10, 21, 31}, v.Data())
	assert.Equal(t, 3, cap(v.Data()), "Data must not expose the uninitialized tail")

	assert.Panics(t, func() { v.Get(3) })

	var pairs [][2]int
	for i, x := range v.All() {
		pairs = append(pairs, [2]int{i, x})
	}
	assert.Equal(t, [][2]int{{0, 10}, {1, 21}, {2, 31}}, pairs)

	var back []int
	for i, x := range v.Backward() {
		back = append(back, i, x)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{2, 31, 1, 21}, back)
}

func TestVector_PopBack(t *testing.T) {
	var c testutil.Counter
	v, err := vector.New[counted]()
	require.NoError(t, err)
	fill(t, v, &c, 2)

	v.PopBack()
	assert.Equal(t, []int{0}, ids(v))
	assert.Equal(t, 1, c.Live())
	assert.Equal(t, 2, v.Cap())

	v.PopBack()
	assert.True(t, v.Empty())
	assert.Panics(t, func() { v.PopBack() })
}

func TestVector_EmplaceBack(t *testing.T) {
	boom := errors.New("boom")
	build := func(x int, err error) alloc.Constructor[int] {
		return func() (int, error) { return x, err }
	}

	tests := []struct {
		name    string
		reserve int
		ctor    alloc.Constructor[int]
		want    []int
		err     error
	}{
		{name: "spare capacity", reserve: 8, ctor: build(4, nil), want: []int{1, 2, 3, 4}},
		{name: "full block", ctor: build(4, nil), want: []int{1, 2, 3, 4}},
		{name: "failure with spare capacity", reserve: 8, ctor: build(0, boom), want: []int{1, 2, 3}, err: boom},
		{name: "failure on a full block", ctor: build(0, boom), want: []int{1, 2, 3}, err: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustOf(t, []int{1, 2, 3})
			require.NoError(t, v.Reserve(tt.reserve))

			err := v.EmplaceBack(tt.ctor)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, v.Data())
			assert.Equal(t, len(tt.want), v.Len())
			assert.LessOrEqual(t, v.Len(), v.Cap())
		})
	}

	t.Run("tracked failure on a full block", func(t *testing.T) {
		var c testutil.Counter
		tr := alloc.NewTracking[counted](nil)
		v, err := vector.New[counted](vector.WithAllocator[counted](tr))
		require.NoError(t, err)
		fill(t, v, &c, 2)
		require.Equal(t, v.Len(), v.Cap())

		err = v.EmplaceBack(func() (counted, error) { return counted{}, boom })
		require.ErrorIs(t, err, boom)
		assert.Equal(t, []int{0, 1}, ids(v))
		assert.Equal(t, []int{0, 1}, tr.LiveSlots(v.Data()))
		assert.Equal(t, 2, c.Live())

		v.Clear()
		require.NoError(t, tr.Err())
	})
}

func TestVector_Insert(t *testing.T) {
	tests := []struct {
		name string
		do   func(v *vector.Vector[int]) (vector.Iterator[int], error)
		want []int
		at   int
	}{
		{
			name: "front",
			do:   func(v *vector.Vector[int]) (vector.Iterator[int], error) { return v.Insert(v.Begin(), 0) },
			want: []int{0, 1, 2, 3},
		},
		{
			name: "end",
			do:   func(v *vector.Vector[int]) (vector.Iterator[int], error) { return v.Insert(v.End(), 4) },
			want: []int{1, 2, 3, 4},
			at:   3,
		},
		{
			name: "n copies",
			do: func(v *vector.Vector[int]) (vector.Iterator[int], error) {
				return v.InsertN(v.Begin().Add(1), 2, 9)
			},
			want: []int{1, 9, 9, 2, 3},
			at:   1,
		},
		{
			name: "zero copies",
			do: func(v *vector.Vector[int]) (vector.Iterator[int], error) {
				return v.InsertN(v.Begin().Add(2), 0, 9)
			},
			want: []int{1, 2, 3},
			at:   2,
		},
		{
			name: "slice",
			do: func(v *vector.Vector[int]) (vector.Iterator[int], error) {
				return v.InsertSlice(v.End().Sub(1), []int{7, 8})
			},
			want: []int{1, 2, 7, 8, 3},
			at:   2,
		},
		{
			name: "own range with growth",
			do: func(v *vector.Vector[int]) (vector.Iterator[int], error) {
				return v.InsertRange(v.Begin(), v.Begin(), v.End())
			},
			want: []int{1, 2, 3, 1, 2, 3},
		},
		{
			name: "own range in place",
			do: func(v *vector.Vector[int]) (vector.Iterator[int], error) {
				if err := v.Reserve(10); err != nil {
					return vector.Iterator[int]{}, err
				}
				return v.InsertRange(v.Begin().Add(1), v.Begin(), v.Begin().Add(2))
			},
			want: []int{1, 1, 2, 2, 3},
			at:   1,
		},
		{
			name: "emplace",
			do: func(v *vector.Vector[int]) (vector.Iterator[int], error) {
				return v.Emplace(v.Begin().Add(1), func() (int, error) { return 5, nil })
			},
			want: []int{1, 5, 2, 3},
			at:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustOf(t, []int{1, 2, 3})
			it, err := tt.do(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Data())
			assert.Equal(t, tt.at, it.Index())
			assert.LessOrEqual(t, v.Len(), v.Cap())
		})
	}

	t.Run("negative count", func(t *testing.T) {
		v := mustOf(t, []int{1})
		_, err := v.InsertN(v.Begin(), -1, 0)
		assert.ErrorIs(t, err, vector.ErrInvalidSize)
	})

	t.Run("count overflow", func(t *testing.T) {
		v := mustOf(t, []int{1, 2})
		_, err := v.InsertN(v.Begin(), math.MaxInt, 0)
		require.ErrorIs(t, err, vector.ErrAllocationFailure)
		assert.Equal(t, []int{1, 2}, v.Data())
		assert.Equal(t, 2, v.Cap())

		_, err = v.InsertN(v.End(), math.MaxInt-1, 0)
		require.ErrorIs(t, err, vector.ErrAllocationFailure)
		assert.Equal(t, []int{1, 2}, v.Data())
	})

	t.Run("bad position", func(t *testing.T) {
		v := mustOf(t, []int{1})
		assert.Panics(t, func() { _, _ = v.Insert(v.End().Add(1), 0) })
	})

	t.Run("iterator of another vector", func(t *testing.T) {
		v := mustOf(t, []int{1, 2})
		other := mustOf(t, []int{3, 4})

		assert.Panics(t, func() { _, _ = v.Insert(other.Begin().Add(1), 0) })
		assert.Panics(t, func() { v.Erase(other.Begin()) })
		assert.Panics(t, func() { v.EraseRange(other.Begin(), other.End()) })

		stale := v.Begin()
		v.Swap(other)
		assert.Panics(t, func() { _, _ = v.Insert(stale, 0) })

		assert.Equal(t, []int{3, 4}, v.Data())
		assert.Equal(t, []int{1, 2}, other.Data())
	})
}

func TestVector_InsertRollback(t *testing.T) {
	var c testutil.Counter
	tr := alloc.NewTracking[counted](nil)
	fa := testutil.NewFaultyAllocator[counted](tr)
	v, err := vector.New[counted](vector.WithAllocator[counted](fa))
	require.NoError(t, err)
	fill(t, v, &c, 3)
	require.NoError(t, v.Reserve(8))

	proto := c.New(100)

	fa.FailConstructAfter(2)
	_, err = v.InsertN(v.Begin().Add(1), 3, proto)
	require.ErrorIs(t, err, testutil.ErrInjectedConstruct)
	assert.Equal(t, []int{0, 1, 2}, ids(v))
	assert.Equal(t, 4, c.Live())
	assert.Equal(t, []int{0, 1, 2}, tr.LiveSlots(v.Data()))

	fa.Disarm()
	c.FailCloneAfter(1)
	_, err = v.InsertN(v.End(), 2, proto)
	require.ErrorIs(t, err, testutil.ErrCloneFailed)
	assert.Equal(t, []int{0, 1, 2}, ids(v))
	assert.Equal(t, 4, c.Live())
	c.FailCloneAfter(-1)

	t.Run("growth failure", func(t *testing.T) {
		full, err := vector.New[counted](vector.WithAllocator[counted](fa))
		require.NoError(t, err)
		fill(t, full, &c, 2)
		fa.FailAllocateAfter(0)
		defer fa.Disarm()

		_, err = full.Insert(full.Begin(), c.New(9))
		require.ErrorIs(t, err, testutil.ErrInjectedAllocation)
		assert.Equal(t, []int{0, 1}, ids(full))
		assert.Equal(t, 2, full.Cap())
		full.Clear()
	})

	proto.Destroy()
	v.Clear()
	require.NoError(t, tr.Err())
	assert.Equal(t, 0, tr.Outstanding())
}

func TestVector_Erase(t *testing.T) {
	var c testutil.Counter
	v, err := vector.New[counted]()
	require.NoError(t, err)
	fill(t, v, &c, 5)

	it := v.Erase(v.Begin().Add(1))
	assert.Equal(t, []int{0, 2, 3, 4}, ids(v))
	assert.Equal(t, 2, it.Get().ID)
	assert.Equal(t, 4, c.Live())

	it = v.Erase(v.End().Sub(1))
	assert.True(t, it.Equal(v.End()))

	it = v.EraseRange(v.Begin(), v.Begin())
	assert.Equal(t, 0, it.Index())
	assert.Equal(t, 3, v.Len())

	v.EraseRange(v.Begin(), v.End())
	assert.True(t, v.Empty())
	assert.Equal(t, 0, c.Live())
	assert.Equal(t, 8, v.Cap())

	assert.Panics(t, func() { v.Erase(v.End()) })
}

func TestVector_InsertEraseRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)
	for trial := 0; trial < 50; trial++ {
		orig := rng.Ints(rng.Intn(20), 100)
		v := mustOf(t, orig)

		pos := rng.Intn(len(orig) + 1)
		extra := rng.Ints(rng.Intn(10), 100)
		_, err := v.InsertSlice(v.Begin().Add(pos), extra)
		require.NoError(t, err)
		require.Equal(t, len(orig)+len(extra), v.Len())

		v.EraseRange(v.Begin().Add(pos), v.Begin().Add(pos+len(extra)))
		require.True(t, slices.Equal(orig, v.Data()), "seed %d trial %d", rng.Seed(), trial)
	}
}

func TestVector_SizeNeverExceedsCapacity(t *testing.T) {
	rng := testutil.NewRNG(7)
	v, err := vector.New[int]()
	require.NoError(t, err)

	for step := 0; step < 500; step++ {
		switch rng.Intn(7) {
		case 0:
			require.NoError(t, v.PushBack(step))
		case 1:
			if !v.Empty() {
				v.PopBack()
			}
		case 2:
			_, err = v.InsertN(v.Begin().Add(rng.Intn(v.Len()+1)), rng.Intn(4), step)
			require.NoError(t, err)
		case 3:
			if !v.Empty() {
				i := rng.Intn(v.Len())
				v.EraseRange(v.Begin().Add(i), v.Begin().Add(i+rng.Intn(v.Len()-i+1)))
			}
		case 4:
			require.NoError(t, v.Resize(rng.Intn(16)))
		case 5:
			require.NoError(t, v.ShrinkToFit())
			require.Equal(t, v.Len(), v.Cap())
		case 6:
			require.NoError(t, v.Reserve(rng.Intn(32)))
		}
		require.LessOrEqual(t, v.Len(), v.Cap())
	}
}

func TestVector_Assign(t *testing.T) {
	t.Run("n copies", func(t *testing.T) {
		v := mustOf(t, []int{1, 2, 3})
		require.NoError(t, v.AssignN(2, 7))
		assert.Equal(t, []int{7, 7}, v.Data())
		assert.Equal(t, 3, v.Cap())
		assert.ErrorIs(t, v.AssignN(-1, 0), vector.ErrInvalidSize)
	})

	t.Run("slice growing", func(t *testing.T) {
		v := mustOf(t, []int{1})
		require.NoError(t, v.AssignSlice([]int{4, 5, 6}))
		assert.Equal(t, []int{4, 5, 6}, v.Data())
	})

	t.Run("own range", func(t *testing.T) {
		v := mustOf(t, []int{1, 2, 3, 4})
		require.NoError(t, v.AssignRange(v.Begin().Add(1), v.Begin().Add(3)))
		assert.Equal(t, []int{2, 3}, v.Data())
	})

	t.Run("seq", func(t *testing.T) {
		v := mustOf(t, []int{1, 2, 3})
		require.NoError(t, v.AssignSeq(slices.Values([]int{9})))
		assert.Equal(t, []int{9}, v.Data())
	})

	t.Run("failure while growing keeps contents", func(t *testing.T) {
		var c testutil.Counter
		v, err := vector.New[counted]()
		require.NoError(t, err)
		fill(t, v, &c, 3)
		require.NoError(t, v.ShrinkToFit())

		proto := c.New(50)
		c.FailCloneAfter(4)
		defer c.FailCloneAfter(-1)

		require.ErrorIs(t, v.AssignN(10, proto), testutil.ErrCloneFailed)
		assert.Equal(t, []int{0, 1, 2}, ids(v))
		assert.Equal(t, 4, c.Live())
	})

	t.Run("failure in place leaves the vector empty", func(t *testing.T) {
		var c testutil.Counter
		v, err := vector.New[counted]()
		require.NoError(t, err)
		fill(t, v, &c, 3)
		require.NoError(t, v.Reserve(8))

		proto := c.New(50)
		c.FailCloneAfter(1)
		defer c.FailCloneAfter(-1)

		require.ErrorIs(t, v.AssignN(2, proto), testutil.ErrCloneFailed)
		assert.True(t, v.Empty())
		assert.Equal(t, 8, v.Cap())
		assert.Equal(t, 1, c.Live())
	})
}

func TestVector_CopyFrom(t *testing.T) {
	src := mustOf(t, []int{1, 2, 3})

	t.Run("reuses capacity", func(t *testing.T) {
		dst := mustOf(t, []int{9})
		require.NoError(t, dst.Reserve(10))
		require.NoError(t, dst.CopyFrom(src))
		assert.Equal(t, []int{1, 2, 3}, dst.Data())
		assert.Equal(t, 10, dst.Cap())

		dst.Set(0, 100)
		assert.Equal(t, 1, src.Get(0))
	})

	t.Run("grows", func(t *testing.T) {
		dst := mustOf(t, []int{9})
		require.NoError(t, dst.CopyFrom(src))
		assert.Equal(t, []int{1, 2, 3}, dst.Data())
		assert.Equal(t, 3, dst.Cap())
	})

	t.Run("self", func(t *testing.T) {
		before := src.Cap()
		require.NoError(t, src.CopyFrom(src))
		assert.Equal(t, []int{1, 2, 3}, src.Data())
		assert.Equal(t, before, src.Cap())
	})
}

func TestVector_MoveFrom(t *testing.T) {
	t.Run("same allocator", func(t *testing.T) {
		src := mustOf(t, []int{1, 2, 3})
		dst := mustOf(t, []int{7})
		first := &src.Data()[0]

		require.NoError(t, dst.MoveFrom(src))
		assert.Equal(t, []int{1, 2, 3}, dst.Data())
		assert.Same(t, first, &dst.Data()[0])
		assert.True(t, src.Empty())
		assert.Equal(t, 0, src.Cap())
	})

	t.Run("unequal allocator", func(t *testing.T) {
		var c testutil.Counter
		tr := alloc.NewTracking[counted](nil)
		src, err := vector.New[counted]()
		require.NoError(t, err)
		fill(t, src, &c, 3)
		dst, err := vector.New[counted](vector.WithAllocator[counted](tr))
		require.NoError(t, err)
		require.NoError(t, dst.PushBack(c.New(9)))

		require.NoError(t, dst.MoveFrom(src))
		assert.Equal(t, []int{0, 1, 2}, ids(dst))
		assert.Equal(t, 3, c.Live())
		assert.Equal(t, 0, src.Cap())
		assert.Same(t, tr, dst.Allocator())

		dst.Clear()
		require.NoError(t, tr.Err())
		assert.Equal(t, 0, tr.Outstanding())
	})

	t.Run("self", func(t *testing.T) {
		v := mustOf(t, []int{1, 2})
		require.NoError(t, v.MoveFrom(v))
		assert.Equal(t, []int{1, 2}, v.Data())
	})
}

func TestVector_Swap(t *testing.T) {
	a := mustOf(t, []int{1, 2})
	tr := alloc.NewTracking[int](nil)
	b := mustOf(t, []int{3}, vector.WithAllocator[int](tr))
	it := a.Begin()

	a.Swap(b)
	assert.Equal(t, []int{3}, a.Data())
	assert.Equal(t, []int{1, 2}, b.Data())
	assert.Same(t, tr, a.Allocator())
	assert.True(t, it.Equal(b.Begin()), "iterators follow the block")

	a.Clear()
	require.NoError(t, tr.Err())
}

func TestVector_DestroysZeroValues(t *testing.T) {
	tokensDestroyed = 0
	v, err := vector.NewSized[token](3)
	require.NoError(t, err)
	require.NoError(t, v.PushBack(token{}))
	require.NoError(t, v.PushBack(token{id: 7}))

	require.NoError(t, v.Resize(4))
	assert.Equal(t, 1, tokensDestroyed)

	v.Clear()
	assert.Equal(t, 5, tokensDestroyed)

	t.Run("moves across allocators do not destroy", func(t *testing.T) {
		tokensDestroyed = 0
		src, err := vector.NewSized[token](3)
		require.NoError(t, err)

		tr := alloc.NewTracking[token](nil)
		dst, err := vector.Take(src, vector.WithAllocator[token](tr))
		require.NoError(t, err)
		assert.Equal(t, 0, tokensDestroyed)
		assert.Equal(t, 3, tr.Live())

		dst.Clear()
		assert.Equal(t, 3, tokensDestroyed)
		require.NoError(t, tr.Err())
	})
}

func TestVector_Close(t *testing.T) {
	var c testutil.Counter
	v, err := vector.New[counted]()
	require.NoError(t, err)
	fill(t, v, &c, 3)

	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
	assert.Equal(t, 0, c.Live())
	assert.Equal(t, 0, v.Cap())

	var nilVector *vector.Vector[int]
	assert.NoError(t, nilVector.Close())
}

func TestVector_TrackedLifetimes(t *testing.T) {
	var c testutil.Counter
	tr := alloc.NewTracking[counted](nil)
	v, err := vector.New[counted](vector.WithAllocator[counted](tr))
	require.NoError(t, err)

	fill(t, v, &c, 10)
	_, err = v.InsertN(v.Begin().Add(3), 4, c.New(-1))
	require.NoError(t, err)
	v.EraseRange(v.Begin().Add(2), v.Begin().Add(6))
	require.NoError(t, v.Resize(20))
	require.NoError(t, v.Resize(5))
	require.NoError(t, v.ShrinkToFit())

	assert.Equal(t, v.Len(), tr.Live())
	assert.Equal(t, 1, tr.Outstanding())
	require.NoError(t, tr.Err())

	v.Clear()
	assert.Equal(t, 0, tr.Outstanding())
	assert.Equal(t, 1, c.Live(), "only the prototype passed to InsertN remains")
	require.NoError(t, tr.Err())

	stats := tr.Stats()
	assert.Equal(t, stats.Allocations, stats.Deallocations)
	assert.Equal(t, stats.Constructs, stats.Destroys)
	assert.Positive(t, stats.Relocations)
}

func TestVector_Arena(t *testing.T) {
	arena := alloc.NewArena[int](alloc.WithChunkSlots(64))
	v, err := vector.New[int](vector.WithAllocator[int](arena))
	require.NoError(t, err)
	for i := range 20 {
		require.NoError(t, v.PushBack(i))
	}
	assert.Equal(t, 32, v.Cap())
	assert.Equal(t, uint64(32), arena.Stats().SlotsUsed)

	same, err := vector.Take(v)
	require.NoError(t, err)
	assert.Same(t, arena, same.Allocator())
	assert.Equal(t, uint64(32), arena.Stats().SlotsUsed, "a move within one arena keeps the block")

	other := alloc.NewArena[int]()
	moved, err := vector.Take(same, vector.WithAllocator[int](other))
	require.NoError(t, err)
	assert.Equal(t, 20, moved.Len())
	assert.Equal(t, 19, moved.Back())
	assert.Equal(t, uint64(0), arena.Stats().SlotsUsed)
	assert.Equal(t, uint64(20), other.Stats().SlotsUsed)

	moved.Clear()
	arena.Reset()
	other.Reset()
}
