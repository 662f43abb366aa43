package raster

import (
	"math"

	"golang.org/x/exp/constraints"
)

// UnsignedAxisIndex converts value to an axis index, reporting whether the
// conversion succeeded. It fails if value exceeds the addressing range.
func UnsignedAxisIndex[T constraints.Unsigned](value T) (AxisIndex, bool) {
	if uint64(value) > math.MaxUint32 {
		return 0, false
	}
	return AxisIndex(value), true
}

// SignedAxisIndex converts value to an axis index, reporting whether the
// conversion succeeded. It fails if value is negative or exceeds the
// addressing range.
func SignedAxisIndex[T constraints.Signed](value T) (AxisIndex, bool) {
	if value < 0 || uint64(value) > math.MaxUint32 {
		return 0, false
	}
	return AxisIndex(value), true
}

// FloatAxisIndex converts value to an axis index by truncating toward zero,
// reporting whether the conversion succeeded. It fails if value is not
// finite, has a negative sign bit, or truncates to a value that exceeds the
// addressing range.
func FloatAxisIndex[T constraints.Float](value T) (AxisIndex, bool) {
	f := float64(value)
	if math.IsNaN(f) || math.Signbit(f) || f >= 1<<32 {
		return 0, false
	}
	return AxisIndex(f), true
}

// ClampUnsignedAxisIndex converts value to an axis index in [0, max],
// saturating to max.
func ClampUnsignedAxisIndex[T constraints.Unsigned](value T, max AxisIndex) AxisIndex {
	if uint64(value) > uint64(max) {
		return max
	}
	return AxisIndex(value)
}

// ClampSignedAxisIndex converts value to an axis index in [0, max],
// saturating negative values to 0 and values above max to max.
func ClampSignedAxisIndex[T constraints.Signed](value T, max AxisIndex) AxisIndex {
	if value < 0 {
		return 0
	}
	if uint64(value) > uint64(max) {
		return max
	}
	return AxisIndex(value)
}

// ClampFloatAxisIndex converts value to an axis index in [0, max],
// truncating toward zero. NaN and values with a negative sign bit saturate
// to 0; positive infinity and values at or above max saturate to max.
func ClampFloatAxisIndex[T constraints.Float](value T, max AxisIndex) AxisIndex {
	f := float64(value)
	switch {
	case math.IsNaN(f) || math.Signbit(f):
		return 0
	case f >= float64(max):
		return max
	default:
		return AxisIndex(f)
	}
}
