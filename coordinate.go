package raster

import (
	"image"

	"golang.org/x/exp/constraints"
)

// A Coordinate is a candidate pixel position. Any two-component
// representation whose components share a numeric domain can implement it.
type Coordinate interface {
	// ImageCoordinate returns the (x, y) pixel indices. It reports false if
	// either component is invalid.
	ImageCoordinate() (x, y AxisIndex, ok bool)
	// ImageCoordinateClamped returns the (x, y) pixel indices clamped to the
	// bounds (0, 0) and (right, bottom).
	ImageCoordinateClamped(right, bottom AxisIndex) (x, y AxisIndex)
}

// An UnsignedPoint is an (x, y) pair of unsigned integer components.
type UnsignedPoint[T constraints.Unsigned] struct {
	X T
	Y T
}

func (p UnsignedPoint[T]) ImageCoordinate() (AxisIndex, AxisIndex, bool) {
	x, okX := UnsignedAxisIndex(p.X)
	y, okY := UnsignedAxisIndex(p.Y)
	return x, y, okX && okY
}

func (p UnsignedPoint[T]) ImageCoordinateClamped(right, bottom AxisIndex) (AxisIndex, AxisIndex) {
	return ClampUnsignedAxisIndex(p.X, right), ClampUnsignedAxisIndex(p.Y, bottom)
}

// A SignedPoint is an (x, y) pair of signed integer components.
type SignedPoint[T constraints.Signed] struct {
	X T
	Y T
}

func (p SignedPoint[T]) ImageCoordinate() (AxisIndex, AxisIndex, bool) {
	x, okX := SignedAxisIndex(p.X)
	y, okY := SignedAxisIndex(p.Y)
	return x, y, okX && okY
}

func (p SignedPoint[T]) ImageCoordinateClamped(right, bottom AxisIndex) (AxisIndex, AxisIndex) {
	return ClampSignedAxisIndex(p.X, right), ClampSignedAxisIndex(p.Y, bottom)
}

// A FloatPoint is an (x, y) pair of floating-point components.
type FloatPoint[T constraints.Float] struct {
	X T
	Y T
}

func (p FloatPoint[T]) ImageCoordinate() (AxisIndex, AxisIndex, bool) {
	x, okX := FloatAxisIndex(p.X)
	y, okY := FloatAxisIndex(p.Y)
	return x, y, okX && okY
}

func (p FloatPoint[T]) ImageCoordinateClamped(right, bottom AxisIndex) (AxisIndex, AxisIndex) {
	return ClampFloatAxisIndex(p.X, right), ClampFloatAxisIndex(p.Y, bottom)
}

// An UnsignedPair is a two-element [x, y] sequence of unsigned integer
// components.
type UnsignedPair[T constraints.Unsigned] [2]T

func (p UnsignedPair[T]) ImageCoordinate() (AxisIndex, AxisIndex, bool) {
	return UnsignedPoint[T]{X: p[0], Y: p[1]}.ImageCoordinate()
}

func (p UnsignedPair[T]) ImageCoordinateClamped(right, bottom AxisIndex) (AxisIndex, AxisIndex) {
	return UnsignedPoint[T]{X: p[0], Y: p[1]}.ImageCoordinateClamped(right, bottom)
}

// A SignedPair is a two-element [x, y] sequence of signed integer components.
type SignedPair[T constraints.Signed] [2]T

func (p SignedPair[T]) ImageCoordinate() (AxisIndex, AxisIndex, bool) {
	return SignedPoint[T]{X: p[0], Y: p[1]}.ImageCoordinate()
}

func (p SignedPair[T]) ImageCoordinateClamped(right, bottom AxisIndex) (AxisIndex, AxisIndex) {
	return SignedPoint[T]{X: p[0], Y: p[1]}.ImageCoordinateClamped(right, bottom)
}

// A FloatPair is a two-element [x, y] sequence of floating-point components.
type FloatPair[T constraints.Float] [2]T

func (p FloatPair[T]) ImageCoordinate() (AxisIndex, AxisIndex, bool) {
	return FloatPoint[T]{X: p[0], Y: p[1]}.ImageCoordinate()
}

func (p FloatPair[T]) ImageCoordinateClamped(right, bottom AxisIndex) (AxisIndex, AxisIndex) {
	return FloatPoint[T]{X: p[0], Y: p[1]}.ImageCoordinateClamped(right, bottom)
}

// An ImagePoint adapts a stdlib [image.Point] to a Coordinate.
type ImagePoint image.Point

func (p ImagePoint) ImageCoordinate() (AxisIndex, AxisIndex, bool) {
	return SignedPoint[int]{X: p.X, Y: p.Y}.ImageCoordinate()
}

func (p ImagePoint) ImageCoordinateClamped(right, bottom AxisIndex) (AxisIndex, AxisIndex) {
	return SignedPoint[int]{X: p.X, Y: p.Y}.ImageCoordinateClamped(right, bottom)
}
