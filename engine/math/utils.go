package math

import "golang.org/x/exp/constraints"

// Clamp limits v to [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	return min(max(v, low), high)
}

// Abs works on any signed integer or float. The minimum signed integer has no
// positive counterpart and comes back unchanged.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
