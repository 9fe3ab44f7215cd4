package mutils

import "golang.org/x/exp/constraints"

func Clamp[T constraints.Integer | constraints.Float](x, min, max T) T {
	if x < min {
		return min
	}

	if x > max {
		return max
	}

	return x
}

func Abs[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}

	return a
}
