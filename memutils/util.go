package memutils

import (
	"golang.org/x/exp/constraints"
)

// Abs returns the magnitude of a signed integer. Segment tags store their state in the sign,
// so most address arithmetic runs through this.
func Abs[T constraints.Signed](value T) T {
	if value < 0 {
		return -value
	}
	return value
}

func Max[T constraints.Integer](left, right T) T {
	if left > right {
		return left
	}
	return right
}
