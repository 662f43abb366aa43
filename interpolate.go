package raster

import "math"

// SampleBilinear returns the bilinearly interpolated sample of r at the
// fractional pixel coordinate (x, y). The four surrounding pixels are
// fetched with clamped access, so coordinates outside the raster project
// onto the nearest edge pixels. It panics if r is empty.
func SampleBilinear(r Raster[float64], x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	dx := x - x0
	dy := y - y0
	s00 := GetPixelClamped(r, FloatPoint[float64]{X: x0, Y: y0})
	s10 := GetPixelClamped(r, FloatPoint[float64]{X: x0 + 1, Y: y0})
	s01 := GetPixelClamped(r, FloatPoint[float64]{X: x0, Y: y0 + 1})
	s11 := GetPixelClamped(r, FloatPoint[float64]{X: x0 + 1, Y: y0 + 1})
	return 0 +
		s00*(1-dx)*(1-dy) +
		s10*dx*(1-dy) +
		s01*(1-dx)*dy +
		s11*dx*dy
}
