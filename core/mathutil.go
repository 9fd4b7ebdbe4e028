package core

import "golang.org/x/exp/constraints"

// ceilDiv returns ceil(a/b) for positive integers.
func ceilDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// roundDiv returns floor((a + b/2)/b), classic rounding for positives.
func roundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}
