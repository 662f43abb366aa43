package raster

import (
	"fmt"
	"image"
	"image/color"
)

// A Gray is an in-memory 8-bit grayscale raster with row-major pixels.
type Gray struct {
	width  AxisIndex
	height AxisIndex
	pix    []uint8
}

// NewGray returns a new Gray with the given extent and all pixels zero.
func NewGray(width, height AxisIndex) *Gray {
	return &Gray{
		width:  width,
		height: height,
		pix:    make([]uint8, int(width)*int(height)),
	}
}

// NewGrayFromPixels returns a new Gray with the given extent and row-major
// pixels.
func NewGrayFromPixels(width, height AxisIndex, pix []uint8) (*Gray, error) {
	if len(pix) != int(width)*int(height) {
		return nil, fmt.Errorf("got %d pixels, expected %d", len(pix), int(width)*int(height))
	}
	return &Gray{
		width:  width,
		height: height,
		pix:    pix,
	}, nil
}

func (g *Gray) Width() AxisIndex  { return g.width }
func (g *Gray) Height() AxisIndex { return g.height }

func (g *Gray) PixelAt(x, y AxisIndex) uint8 {
	return g.pix[int(x)+int(y)*int(g.width)]
}

// SetPixelAt sets the pixel at (x, y), which must be within bounds.
func (g *Gray) SetPixelAt(x, y AxisIndex, pixel uint8) {
	g.pix[int(x)+int(y)*int(g.width)] = pixel
}

// A Grid is an in-memory float64 sample raster with row-major samples.
type Grid struct {
	width   AxisIndex
	height  AxisIndex
	samples []float64
}

// NewGrid returns a new Grid with the given extent and all samples zero.
func NewGrid(width, height AxisIndex) *Grid {
	return &Grid{
		width:   width,
		height:  height,
		samples: make([]float64, int(width)*int(height)),
	}
}

// NewGridFromSamples returns a new Grid with the given extent and row-major
// samples.
func NewGridFromSamples(width, height AxisIndex, samples []float64) (*Grid, error) {
	if len(samples) != int(width)*int(height) {
		return nil, fmt.Errorf("got %d samples, expected %d", len(samples), int(width)*int(height))
	}
	return &Grid{
		width:   width,
		height:  height,
		samples: samples,
	}, nil
}

func (g *Grid) Width() AxisIndex  { return g.width }
func (g *Grid) Height() AxisIndex { return g.height }

func (g *Grid) PixelAt(x, y AxisIndex) float64 {
	return g.samples[int(x)+int(y)*int(g.width)]
}

// SetSampleAt sets the sample at (x, y), which must be within bounds.
func (g *Grid) SetSampleAt(x, y AxisIndex, sample float64) {
	g.samples[int(x)+int(y)*int(g.width)] = sample
}

type imageRaster struct {
	img image.Image
}

// FromImage adapts a stdlib [image.Image] to a Raster, addressed relative to
// the minimum point of its bounds.
func FromImage(img image.Image) Raster[color.Color] {
	return imageRaster{img: img}
}

func (r imageRaster) Width() AxisIndex {
	return AxisIndex(r.img.Bounds().Dx())
}

func (r imageRaster) Height() AxisIndex {
	return AxisIndex(r.img.Bounds().Dy())
}

func (r imageRaster) PixelAt(x, y AxisIndex) color.Color {
	bounds := r.img.Bounds()
	return r.img.At(bounds.Min.X+int(x), bounds.Min.Y+int(y))
}
