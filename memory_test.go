package raster

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewGrayFromPixels(t *testing.T) {
	gray, err := NewGrayFromPixels(2, 2, []uint8{32, 64, 128, 255})
	assert.NoError(t, err)
	assert.Equal(t, AxisIndex(2), gray.Width())
	assert.Equal(t, AxisIndex(2), gray.Height())
	assert.Equal(t, uint8(32), gray.PixelAt(0, 0))
	assert.Equal(t, uint8(64), gray.PixelAt(1, 0))
	assert.Equal(t, uint8(128), gray.PixelAt(0, 1))
	assert.Equal(t, uint8(255), gray.PixelAt(1, 1))

	_, err = NewGrayFromPixels(2, 2, []uint8{32, 64})
	assert.Error(t, err)
}

func TestGray_SetPixelAt(t *testing.T) {
	gray := NewGray(2, 1)
	assert.Equal(t, uint8(0), gray.PixelAt(1, 0))
	gray.SetPixelAt(1, 0, 42)
	assert.Equal(t, uint8(42), gray.PixelAt(1, 0))
}

func TestNewGridFromSamples(t *testing.T) {
	grid, err := NewGridFromSamples(2, 1, []float64{1.5, math.NaN()})
	assert.NoError(t, err)
	assert.Equal(t, AxisIndex(2), grid.Width())
	assert.Equal(t, AxisIndex(1), grid.Height())
	assert.Equal(t, 1.5, grid.PixelAt(0, 0))
	assert.True(t, math.IsNaN(grid.PixelAt(1, 0)))

	_, err = NewGridFromSamples(3, 3, []float64{0})
	assert.Error(t, err)
}

func TestGrid_SetSampleAt(t *testing.T) {
	grid := NewGrid(1, 2)
	grid.SetSampleAt(0, 1, 2.5)
	assert.Equal(t, 0.0, grid.PixelAt(0, 0))
	assert.Equal(t, 2.5, grid.PixelAt(0, 1))
}
