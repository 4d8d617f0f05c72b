package vector

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vector/alloc"
)

var (
	// ErrOutOfRange is returned by checked element access for an index
	// outside [0, Len()).
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidSize is returned when a negative element count is requested.
	ErrInvalidSize = errors.New("invalid size")

	// ErrAllocatorMismatch is returned when WithAllocator was given a
	// capability for a different element type.
	ErrAllocatorMismatch = errors.New("allocator does not match element type")

	// ErrAllocationFailure is returned when a block cannot be obtained. The
	// container is left unchanged.
	ErrAllocationFailure = alloc.ErrAllocationFailure
)

// OutOfRangeError reports a failed checked access.
//
// It matches ErrOutOfRange via errors.Is.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0:%d)", e.Index, e.Size)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

func invalidSize(n int) error {
	return fmt.Errorf("%w: %d", ErrInvalidSize, n)
}
