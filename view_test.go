package raster_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-raster"
)

var outsideCoords = []raster.SignedPoint[int32]{
	{X: -1, Y: -1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

func TestWithinBounds_EmptyRaster(t *testing.T) {
	gray := raster.NewGray(0, 0)
	assert.False(t, raster.WithinBounds(gray, raster.SignedPoint[int32]{X: 0, Y: 0}))
	for _, coord := range outsideCoords {
		assert.False(t, raster.WithinBounds(gray, coord))
	}
}

func TestWithinBounds_NonEmptyRaster(t *testing.T) {
	gray := raster.NewGray(1, 1)
	assert.True(t, raster.WithinBounds(gray, raster.SignedPoint[int32]{X: 0, Y: 0}))
	for _, coord := range outsideCoords {
		assert.False(t, raster.WithinBounds(gray, coord))
	}
}

func TestGetPixelAt_EmptyRaster(t *testing.T) {
	gray := raster.NewGray(0, 0)
	_, ok := raster.GetPixelAt(gray, raster.SignedPoint[int32]{X: 0, Y: 0})
	assert.False(t, ok)
	for _, coord := range outsideCoords {
		_, ok := raster.GetPixelAt(gray, coord)
		assert.False(t, ok)
	}
}

func TestGetPixelAt_NonEmptyRaster(t *testing.T) {
	gray, err := raster.NewGrayFromPixels(1, 1, []uint8{255})
	assert.NoError(t, err)

	_, ok := raster.GetPixelAt(gray, raster.SignedPoint[int32]{X: -1, Y: -1})
	assert.False(t, ok)
	_, ok = raster.GetPixelAt(gray, raster.SignedPoint[int32]{X: 1, Y: 1})
	assert.False(t, ok)
	pixel, ok := raster.GetPixelAt(gray, raster.SignedPoint[int32]{X: 0, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, uint8(255), pixel)
}

func TestEdges_EmptyRaster(t *testing.T) {
	assert.Panics(t, func() {
		raster.Edges(raster.NewGray(0, 0))
	})
	assert.Panics(t, func() {
		raster.GetPixelClamped(raster.NewGray(0, 1), raster.SignedPoint[int32]{X: 0, Y: 0})
	})
	assert.Panics(t, func() {
		raster.ClampPixel(raster.NewGray(1, 0), 0, 0)
	})
}

func TestGetPixelClamped(t *testing.T) {
	gray, err := raster.NewGrayFromPixels(2, 2, []uint8{32, 64, 128, 255})
	assert.NoError(t, err)

	for _, tc := range []struct {
		name     string
		coord    raster.SignedPoint[int32]
		expected uint8
	}{
		// Near the top-left corner.
		{name: "top_left_diagonal", coord: raster.SignedPoint[int32]{X: -1, Y: -1}, expected: 32},
		{name: "top_left_above", coord: raster.SignedPoint[int32]{X: 0, Y: -1}, expected: 32},
		{name: "top_left_left", coord: raster.SignedPoint[int32]{X: -1, Y: 0}, expected: 32},
		// Near the bottom-right corner.
		{name: "bottom_right_diagonal", coord: raster.SignedPoint[int32]{X: 2, Y: 2}, expected: 255},
		{name: "bottom_right_right", coord: raster.SignedPoint[int32]{X: 2, Y: 1}, expected: 255},
		{name: "bottom_right_below", coord: raster.SignedPoint[int32]{X: 1, Y: 2}, expected: 255},
		// Near the top-right corner.
		{name: "top_right_right", coord: raster.SignedPoint[int32]{X: 2, Y: 0}, expected: 64},
		{name: "top_right_above", coord: raster.SignedPoint[int32]{X: 1, Y: -1}, expected: 64},
		{name: "top_right_diagonal", coord: raster.SignedPoint[int32]{X: 2, Y: -1}, expected: 64},
		// Near the bottom-left corner.
		{name: "bottom_left_left", coord: raster.SignedPoint[int32]{X: -1, Y: 1}, expected: 128},
		{name: "bottom_left_diagonal", coord: raster.SignedPoint[int32]{X: -1, Y: 2}, expected: 128},
		{name: "bottom_left_below", coord: raster.SignedPoint[int32]{X: 0, Y: 2}, expected: 128},
		// Far outside.
		{name: "far_outside", coord: raster.SignedPoint[int32]{X: 5, Y: 5}, expected: 255},
		// Corners of the raster are unchanged.
		{name: "corner_top_left", coord: raster.SignedPoint[int32]{X: 0, Y: 0}, expected: 32},
		{name: "corner_top_right", coord: raster.SignedPoint[int32]{X: 1, Y: 0}, expected: 64},
		{name: "corner_bottom_left", coord: raster.SignedPoint[int32]{X: 0, Y: 1}, expected: 128},
		{name: "corner_bottom_right", coord: raster.SignedPoint[int32]{X: 1, Y: 1}, expected: 255},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, raster.GetPixelClamped(gray, tc.coord))
			// The raw int32 path is behaviorally identical.
			assert.Equal(t, tc.expected, raster.ClampPixel(gray, tc.coord.X, tc.coord.Y))
		})
	}
}

func TestGetPixelClamped_FloatCoordinates(t *testing.T) {
	gray, err := raster.NewGrayFromPixels(2, 2, []uint8{32, 64, 128, 255})
	assert.NoError(t, err)

	assert.Equal(t, uint8(32), raster.GetPixelClamped(gray, raster.FloatPoint[float64]{X: math.NaN(), Y: math.NaN()}))
	assert.Equal(t, uint8(64), raster.GetPixelClamped(gray, raster.FloatPoint[float64]{X: math.Inf(1), Y: math.Inf(-1)}))
	assert.Equal(t, uint8(128), raster.GetPixelClamped(gray, raster.FloatPoint[float64]{X: -0.5, Y: math.Inf(1)}))
	assert.Equal(t, uint8(255), raster.GetPixelClamped(gray, raster.FloatPoint[float64]{X: 1.5, Y: 1.5}))
	assert.Equal(t, uint8(32), raster.GetPixelClamped(gray, raster.FloatPoint[float64]{X: 0.9, Y: 0.9}))
}

func TestGetPixel(t *testing.T) {
	gray, err := raster.NewGrayFromPixels(2, 2, []uint8{32, 64, 128, 255})
	assert.NoError(t, err)

	assert.True(t, raster.InBounds(gray, 0, 0))
	assert.True(t, raster.InBounds(gray, 1, 1))
	assert.False(t, raster.InBounds(gray, -1, 0))
	assert.False(t, raster.InBounds(gray, 0, 2))

	pixel, ok := raster.GetPixel(gray, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, uint8(32), pixel)
	pixel, ok = raster.GetPixel(gray, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, uint8(64), pixel)
	_, ok = raster.GetPixel(gray, 2, 2)
	assert.False(t, ok)
	_, ok = raster.GetPixel(gray, -1, -1)
	assert.False(t, ok)

	// The generic path agrees with the raw int32 path across the whole
	// neighborhood of the raster.
	for y := int32(-2); y <= 3; y++ {
		for x := int32(-2); x <= 3; x++ {
			coord := raster.SignedPoint[int32]{X: x, Y: y}
			assert.Equal(t, raster.InBounds(gray, x, y), raster.WithinBounds(gray, coord))
			genericPixel, genericOK := raster.GetPixelAt(gray, coord)
			rawPixel, rawOK := raster.GetPixel(gray, x, y)
			assert.Equal(t, genericOK, rawOK)
			assert.Equal(t, genericPixel, rawPixel)
		}
	}
}

func TestGetPixelAt_CoordinateRepresentations(t *testing.T) {
	gray, err := raster.NewGrayFromPixels(2, 2, []uint8{32, 64, 128, 255})
	assert.NoError(t, err)

	pixel, ok := raster.GetPixelAt(gray, raster.SignedPoint[int]{X: 0, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, uint8(128), pixel)

	pixel, ok = raster.GetPixelAt(gray, raster.SignedPair[int]{1, 0})
	assert.True(t, ok)
	assert.Equal(t, uint8(64), pixel)

	pixel, ok = raster.GetPixelAt(gray, raster.ImagePoint(image.Pt(1, 1)))
	assert.True(t, ok)
	assert.Equal(t, uint8(255), pixel)

	assert.Equal(t, uint8(32), raster.GetPixelClamped(gray, raster.SignedPair[int]{-1, -1}))
	assert.Equal(t, uint8(255), raster.GetPixelClamped(gray, raster.ImagePoint(image.Pt(5, 5))))
}

func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 32})
	img.SetGray(1, 0, color.Gray{Y: 64})
	img.SetGray(0, 1, color.Gray{Y: 128})
	img.SetGray(1, 1, color.Gray{Y: 255})
	r := raster.FromImage(img)

	assert.Equal(t, raster.AxisIndex(2), r.Width())
	assert.Equal(t, raster.AxisIndex(2), r.Height())

	assert.True(t, raster.WithinBounds(r, raster.SignedPoint[int]{X: 0, Y: 0}))
	assert.True(t, raster.WithinBounds(r, raster.SignedPoint[int]{X: 1, Y: 1}))
	assert.False(t, raster.WithinBounds(r, raster.SignedPoint[int]{X: -1, Y: 0}))
	assert.False(t, raster.WithinBounds(r, raster.SignedPoint[int]{X: 2, Y: 0}))

	pixel, ok := raster.GetPixelAt(r, raster.SignedPoint[int]{X: 0, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, color.Gray{Y: 128}, pixel.(color.Gray))

	assert.Equal(t, color.Gray{Y: 32}, raster.GetPixelClamped(r, raster.SignedPoint[int]{X: -1, Y: -1}).(color.Gray))
	assert.Equal(t, color.Gray{Y: 64}, raster.GetPixelClamped(r, raster.SignedPoint[int]{X: 2, Y: -1}).(color.Gray))
	assert.Equal(t, color.Gray{Y: 255}, raster.GetPixelClamped(r, raster.SignedPoint[int]{X: 5, Y: 5}).(color.Gray))
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(10, 10, 12, 12))
	img.SetGray(10, 10, color.Gray{Y: 32})
	img.SetGray(11, 11, color.Gray{Y: 255})
	r := raster.FromImage(img)

	pixel, ok := raster.GetPixelAt(r, raster.SignedPoint[int]{X: 0, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, color.Gray{Y: 32}, pixel.(color.Gray))
	pixel, ok = raster.GetPixelAt(r, raster.SignedPoint[int]{X: 1, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, color.Gray{Y: 255}, pixel.(color.Gray))
}
