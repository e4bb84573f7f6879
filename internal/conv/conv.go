// Package conv provides checked integer conversions for automaton state IDs.
//
// State identifiers are 32-bit and the top two values of the range are
// reserved for sentinels (invalid and dead states). The helpers panic on
// overflow since that indicates a pattern too large for the internal limits,
// which is a programming error rather than a recoverable condition.
package conv

import "math"

// MaxID is the largest identifier that does not collide with a sentinel.
const MaxID = math.MaxUint32 - 2

// ID converts a slice index into a 32-bit identifier type.
// Panics if n < 0 or n > MaxID.
//
//go:inline
func ID[T ~uint32](n int) T {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > MaxID {
		panic("integer overflow: state index out of identifier range")
	}
	return T(n)
}

// Int32 converts a slice index into an int32.
// Panics if n < 0 or n > math.MaxInt32.
func Int32(n int) int32 {
	if n < 0 || int64(n) > math.MaxInt32 {
		panic("integer overflow: index out of int32 range")
	}
	return int32(n)
}
