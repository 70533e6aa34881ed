// Package utils implements various helper functions.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Min returns the minimum value of the two inputs.
func Min[V constraints.Ordered](a, b V) (r V) {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum value of the two inputs.
func Max[V constraints.Ordered](a, b V) (r V) {
	if a >= b {
		return a
	}
	return b
}

// MulSafe returns the product of the non-negative inputs and false if the
// product does not fit in an int. Any negative input also yields false.
func MulSafe(values ...int) (prod int, ok bool) {

	if len(values) == 0 {
		return 0, true
	}

	p := uint64(1)
	for _, v := range values {

		if v < 0 {
			return 0, false
		}

		hi, lo := bits.Mul64(p, uint64(v))

		if hi != 0 || lo > uint64(MaxInt) {
			return 0, false
		}

		p = lo
	}

	return int(p), true
}

// MaxInt is the largest value of type int.
const MaxInt = int(^uint(0) >> 1)

// AllDistinct returns true if all elements in s are distinct, and false otherwise.
func AllDistinct[V comparable](s []V) bool {
	m := make(map[V]struct{}, len(s))
	for _, si := range s {
		if _, exists := m[si]; exists {
			return false
		}
		m[si] = struct{}{}
	}
	return true
}
