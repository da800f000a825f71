// Package utils implements small generic helpers shared across the library.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum of a and b.
func Min[V constraints.Ordered](a, b V) (r V) {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum of a and b.
func Max[V constraints.Ordered](a, b V) (r V) {
	if a >= b {
		return a
	}
	return b
}

// EqualSlice checks the equality between two slices of comparables.
func EqualSlice[V comparable](a, b []V) (v bool) {
	if len(a) != len(b) {
		return false
	}
	v = true
	for i := range a {
		v = v && (a[i] == b[i])
	}
	return
}

// IsInSlice checks if x is in slice.
func IsInSlice[V comparable](x V, slice []V) (v bool) {
	for i := range slice {
		v = v || (slice[i] == x)
	}
	return
}
