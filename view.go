package raster

// Edges returns the right and bottom index edges of r, i.e. the maximum valid
// column and row. It panics if r is empty: the edges of a zero-extent raster
// are undefined.
func Edges[P any](r Raster[P]) (right, bottom AxisIndex) {
	width, height := r.Width(), r.Height()
	if width == 0 || height == 0 {
		panic("raster: edges of empty raster")
	}
	return width - 1, height - 1
}

// WithinBounds reports whether coord converts to a valid pixel position
// within the bounds of r.
func WithinBounds[P any](r Raster[P], coord Coordinate) bool {
	x, y, ok := coord.ImageCoordinate()
	return ok && x < r.Width() && y < r.Height()
}

// GetPixelAt returns the pixel of r at coord. It reports false if coord is
// invalid or out of bounds.
func GetPixelAt[P any](r Raster[P], coord Coordinate) (P, bool) {
	x, y, ok := coord.ImageCoordinate()
	if !ok || x >= r.Width() || y >= r.Height() {
		var zero P
		return zero, false
	}
	return r.PixelAt(x, y), true
}

// GetPixelClamped returns the pixel of r at coord, clamping coord to the
// bounds of r. It panics if r is empty.
func GetPixelClamped[P any](r Raster[P], coord Coordinate) P {
	right, bottom := Edges(r)
	x, y := coord.ImageCoordinateClamped(right, bottom)
	return r.PixelAt(x, y)
}

// InBounds reports whether (x, y) is within the bounds of r. It is
// equivalent to [WithinBounds] with a signed 32-bit coordinate, without the
// generic conversion step.
func InBounds[P any](r Raster[P], x, y int32) bool {
	return x >= 0 && y >= 0 && AxisIndex(x) < r.Width() && AxisIndex(y) < r.Height()
}

// GetPixel returns the pixel of r at (x, y). It reports false if (x, y) is
// out of bounds.
func GetPixel[P any](r Raster[P], x, y int32) (P, bool) {
	if !InBounds(r, x, y) {
		var zero P
		return zero, false
	}
	return r.PixelAt(AxisIndex(x), AxisIndex(y)), true
}

// ClampPixel returns the pixel of r at (x, y), clamping (x, y) to the bounds
// of r. It panics if r is empty.
func ClampPixel[P any](r Raster[P], x, y int32) P {
	right, bottom := Edges(r)
	return r.PixelAt(ClampSignedAxisIndex(x, right), ClampSignedAxisIndex(y, bottom))
}
