package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// RangeConvert maps value from [oldMin, oldMax] onto [newMin, newMax].
func RangeConvert[T constraints.Float](value, oldMin, oldMax, newMin, newMax T) T {
	if oldMax == oldMin {
		return newMin
	}
	return ((value-oldMin)*(newMax-newMin))/(oldMax-oldMin) + newMin
}

// Mix linearly interpolates between a and b, like the shading language mix().
func Mix[T constraints.Float](a, b, t T) T {
	return a*(1-t) + b*t
}

// Sincos is math.Sincos for float32 angles in radians.
func Sincos(angle float32) (sin, cos float32) {
	s, c := gomath.Sincos(float64(angle))
	return float32(s), float32(c)
}
