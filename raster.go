// Package raster provides bounds-checked and clamped pixel addressing for
// 2-D rasters. Coordinates expressed in any numeric type are either rejected
// as invalid or deterministically projected onto the raster's valid index
// range, so that storage only ever sees two unsigned indices known to be in
// bounds.
package raster

// An AxisIndex is a validated pixel index along a single raster axis, always
// in [0, extent-1].
type AxisIndex uint32

// A TileCoord is a tile coordinate within a tiled raster.
type TileCoord struct {
	C int // Column.
	R int // Row.
}

// A Raster is a 2-D grid of pixels with a fixed extent.
//
// PixelAt is the unchecked fetch primitive: it must only be called with
// x < Width() and y < Height(), and its behavior is undefined otherwise. The
// bounds-checked and clamped lookup functions in this package are the
// sanctioned callers.
type Raster[P any] interface {
	Width() AxisIndex
	Height() AxisIndex
	PixelAt(x, y AxisIndex) P
}
