package conv

import (
	"fmt"
	"math"
)

// IntToUint64 converts int to uint64 safely.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint64 (negative)", v)
	}
	return uint64(v), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// BlockBytes returns the byte size of n slots of elemSize bytes each.
// It fails for negative counts and for products that do not fit in an int64.
func BlockBytes(n int, elemSize uintptr) (int64, error) {
	un, err := IntToUint64(n)
	if err != nil {
		return 0, err
	}
	if elemSize == 0 || un == 0 {
		return 0, nil
	}
	if un > math.MaxInt64/uint64(elemSize) {
		return 0, fmt.Errorf("integer overflow: %d slots of %d bytes exceed int64", n, elemSize)
	}
	return int64(un * uint64(elemSize)), nil //nolint:gosec // bounded above
}

// MaxSlots returns the largest slot count whose byte size fits in an int64,
// clamped to math.MaxInt. Zero-sized elements are limited only by math.MaxInt.
func MaxSlots(elemSize uintptr) int {
	if elemSize == 0 {
		return math.MaxInt
	}
	n, err := Uint64ToInt(math.MaxInt64 / uint64(elemSize))
	if err != nil {
		return math.MaxInt
	}
	return n
}
