// internal/utils/math.go
package utils

import "golang.org/x/exp/constraints"

// Lerp выполняет стандартную линейную интерполяцию
func Lerp[T constraints.Float](from, to T, t T) T {
	return from + (to-from)*t
}

// MoveTowards сдвигает from к to не больше чем на maxDelta, не перескакивая цель
func MoveTowards[T constraints.Float](from, to, maxDelta T) T {
	if to-from <= maxDelta && from-to <= maxDelta {
		return to
	}
	if to > from {
		return from + maxDelta
	}
	return from - maxDelta
}
