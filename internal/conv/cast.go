package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow reports a value that does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// IntToUint32 converts a count or position to the 32-bit header width.
func IntToUint32(v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit uint32", ErrOverflow, v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts a header field to int.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d does not fit int", ErrOverflow, v)
	}
	return int(v), nil
}

// MulInt multiplies non-negative factors, failing instead of wrapping.
// The product of no factors is 1.
func MulInt(factors ...int) (int, error) {
	product := 1
	for _, f := range factors {
		switch {
		case f < 0:
			return 0, fmt.Errorf("%w: negative factor %d", ErrOverflow, f)
		case f != 0 && product > math.MaxInt/f:
			return 0, fmt.Errorf("%w: product of %v exceeds int", ErrOverflow, factors)
		}
		product *= f
	}
	return product, nil
}
