package raster

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/google/tiff"
	_ "github.com/google/tiff/bigtiff"
	"github.com/maypok86/otter/v2"
	"golang.org/x/image/tiff/lzw"
)

var errShortRead = errors.New("short read")

// A TIFFRaster is an open tiled TIFF file with a single 32-bit float sample
// per pixel. It implements [Raster] with float64 pixels; samples equal to
// the file's no-data value read as NaN.
type TIFFRaster struct {
	file                      *os.File
	imageWidth                AxisIndex
	imageLength               AxisIndex
	tileWidth                 int
	tileLength                int
	tilesAcross               int
	tilesDown                 int
	tileOffsets               []uint64
	tileByteCounts            []uint64
	smallestTileByteCount     uint64
	tileSampleCount           int
	tileByteCountUncompressed int
	tileCacheSizeBytes        int
	tileSamplesCache          *otter.Cache[TileCoord, []float32]
	emptyTileBytes            []byte
	noData                    float32
	hasNoData                 bool
}

type TIFFRasterOption func(*TIFFRaster)

// A tiffIFD is a struct into which github.com/google/tiff can unmarshal an
// IFD.
type tiffIFD struct {
	ImageWidth                uint16   `tiff:"field,tag=256"`
	ImageLength               uint16   `tiff:"field,tag=257"`
	BitsPerSample             uint16   `tiff:"field,tag=258"`
	Compression               uint16   `tiff:"field,tag=259"`
	PhotometricInterpretation uint16   `tiff:"field,tag=262"`
	SamplesPerPixel           uint16   `tiff:"field,tag=277"`
	PlanarConfiguration       uint16   `tiff:"field,tag=284"`
	Predictor                 uint16   `tiff:"field,tag=317"`
	TileWidth                 uint16   `tiff:"field,tag=322"`
	TileLength                uint16   `tiff:"field,tag=323"`
	TileOffsets               []uint64 `tiff:"field,tag=324"`
	TileByteCounts            []uint64 `tiff:"field,tag=325"`
	SampleFormat              uint16   `tiff:"field,tag=339"`
	GDALNoData                string   `tiff:"field,tag=42113"`
}

// NewTIFFRaster returns a new TIFFRaster.
func NewTIFFRaster(fsys fs.FS, filename string, options ...TIFFRasterOption) (*TIFFRaster, error) {
	var err error
	ok := false

	f := &TIFFRaster{
		tileCacheSizeBytes: 128 << 20, // 128MB.
	}
	for _, option := range options {
		option(f)
	}

	file, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}
	if _, ok := file.(*os.File); !ok {
		return nil, errors.ErrUnsupported
	}
	f.file = file.(*os.File)
	defer func() {
		if !ok {
			_ = f.file.Close()
		}
	}()

	tiffTIFF, err := tiff.Parse(f.file, nil, nil)
	if err != nil {
		return nil, err
	}

	if len(tiffTIFF.IFDs()) != 1 {
		return nil, fmt.Errorf("found %d IFDs, expected 1", len(tiffTIFF.IFDs()))
	}

	var ifd tiffIFD
	if err := tiff.UnmarshalIFD(tiffTIFF.IFDs()[0], &ifd); err != nil {
		return nil, err
	}

	if ifd.BitsPerSample != 32 ||
		ifd.Compression != 5 ||
		ifd.PhotometricInterpretation != 1 ||
		ifd.SamplesPerPixel != 1 ||
		ifd.PlanarConfiguration != 1 ||
		ifd.Predictor != 1 ||
		ifd.SampleFormat != 3 {
		return nil, errors.ErrUnsupported
	}

	if ifd.GDALNoData != "" {
		noData, err := strconv.ParseFloat(ifd.GDALNoData, 32)
		if err != nil {
			return nil, err
		}
		f.noData = float32(noData)
		f.hasNoData = true
	}

	f.imageWidth = AxisIndex(ifd.ImageWidth)
	f.imageLength = AxisIndex(ifd.ImageLength)
	f.tileWidth = int(ifd.TileWidth)
	f.tileLength = int(ifd.TileLength)
	f.tilesAcross = (int(f.imageWidth) + f.tileWidth - 1) / f.tileWidth
	f.tilesDown = (int(f.imageLength) + f.tileLength - 1) / f.tileLength
	tilesPerImage := f.tilesAcross * f.tilesDown
	if len(ifd.TileByteCounts) != tilesPerImage || len(ifd.TileOffsets) != tilesPerImage {
		return nil, errors.New("incorrect number of tile byte counts or offsets")
	}
	f.tileOffsets = ifd.TileOffsets
	f.tileByteCounts = ifd.TileByteCounts
	f.smallestTileByteCount = ifd.TileByteCounts[0]
	for _, tileByteCount := range ifd.TileByteCounts[1:] {
		if tileByteCount < f.smallestTileByteCount {
			f.smallestTileByteCount = tileByteCount
		}
	}
	f.tileSampleCount = f.tileWidth * f.tileLength
	f.tileByteCountUncompressed = f.tileSampleCount * int(ifd.BitsPerSample) / 8

	tileCacheCount := max(f.tileCacheSizeBytes/f.tileByteCountUncompressed, 1)
	f.tileSamplesCache, err = otter.New(&otter.Options[TileCoord, []float32]{
		MaximumSize: tileCacheCount,
	})
	if err != nil {
		return nil, err
	}

	ok = true
	return f, nil
}

func WithTileCacheSize(tileCacheSize int) TIFFRasterOption {
	return func(f *TIFFRaster) {
		f.tileCacheSizeBytes = tileCacheSize
	}
}

func (f *TIFFRaster) Close() error {
	return f.file.Close()
}

// Width returns f's width in pixels.
func (f *TIFFRaster) Width() AxisIndex {
	return f.imageWidth
}

// Height returns f's height in pixels.
func (f *TIFFRaster) Height() AxisIndex {
	return f.imageLength
}

// PixelAt returns the sample of f at (x, y), which must be within bounds.
// Known-empty tiles and tiles that cannot be read return NaN.
func (f *TIFFRaster) PixelAt(x, y AxisIndex) float64 {
	tileSamples, err := f.getTileSamplesCached(context.Background(), f.tileCoord(x, y))
	if err != nil {
		return math.NaN()
	}
	return f.tileSample(tileSamples, x, y)
}

// Sample returns the sample of f at coord. Invalid and out-of-bounds
// coordinates return NaN, as do known-empty tiles.
func (f *TIFFRaster) Sample(ctx context.Context, coord Coordinate) (float64, error) {
	x, y, ok := coord.ImageCoordinate()
	if !ok || x >= f.imageWidth || y >= f.imageLength {
		return math.NaN(), nil
	}
	switch tileSamples, err := f.getTileSamplesCached(ctx, f.tileCoord(x, y)); {
	case errors.Is(err, otter.ErrNotFound):
		return math.NaN(), nil
	case err != nil:
		return 0, err
	default:
		return f.tileSample(tileSamples, x, y), nil
	}
}

// getCompressedTileData returns the compressed tile data for the tile at
// tileCoord. If the tile is known to be empty, it returns the error
// otter.ErrNotFound.
func (f *TIFFRaster) getCompressedTileData(tileCoord TileCoord) ([]byte, error) {
	tileIndex := tileCoord.C + f.tilesAcross*tileCoord.R
	tileByteCount := f.tileByteCounts[tileIndex]
	tileOffset := f.tileOffsets[tileIndex]
	compressedData := make([]byte, tileByteCount)
	switch n, err := f.file.ReadAt(compressedData, int64(tileOffset)); {
	case err != nil:
		return nil, err
	case n != int(tileByteCount):
		return nil, errShortRead
	case f.emptyTileBytes != nil && bytes.Equal(compressedData, f.emptyTileBytes):
		return nil, otter.ErrNotFound
	default:
		return compressedData, nil
	}
}

// decompressTileData decompresses the tile data in compressedData.
func (f *TIFFRaster) decompressTileData(compressedData []byte) ([]byte, error) {
	tileData := make([]byte, f.tileByteCountUncompressed)
	r := lzw.NewReader(bytes.NewReader(compressedData), lzw.MSB, 8)
	for bytesRead := 0; bytesRead < f.tileByteCountUncompressed; {
		n, err := r.Read(tileData[bytesRead:])
		if err != nil {
			return nil, err
		}
		bytesRead += n
	}
	return tileData, nil
}

// decodeTileData decodes tileData.
func (f *TIFFRaster) decodeTileData(tileData []byte) []float32 {
	tileSamples := make([]float32, f.tileSampleCount)
	for i := range f.tileSampleCount {
		b := binary.LittleEndian.Uint32(tileData[i*4 : (i+1)*4])
		tileSamples[i] = math.Float32frombits(b)
	}
	return tileSamples
}

// getTileSamples returns the tile samples at tileCoord.
func (f *TIFFRaster) getTileSamples(ctx context.Context, tileCoord TileCoord) ([]float32, error) {
	// Retrieve the compressed tile data.
	compressedTileData, err := f.getCompressedTileData(tileCoord)
	if err != nil {
		return nil, err
	}

	// Decompress the tile data and decode it.
	tileData, err := f.decompressTileData(compressedTileData)
	if err != nil {
		return nil, err
	}
	tileSamples := f.decodeTileData(tileData)

	// If we do not know what an empty tile looks like compressed, check to see
	// if this is an empty tile, and, if so, use its bytes to detect empty tiles
	// before they are decompressed. We assume that the empty tile is the
	// smallest tile.
	if f.hasNoData && f.emptyTileBytes == nil && len(compressedTileData) == int(f.smallestTileByteCount) {
		isEmptyTile := true
		for _, sample := range tileSamples {
			if sample != f.noData {
				isEmptyTile = false
				break
			}
		}
		if isEmptyTile {
			f.emptyTileBytes = compressedTileData
			return nil, otter.ErrNotFound
		}
	}

	return tileSamples, nil
}

// getTileSamplesCached returns the tile samples at tileCoord using f's cache.
func (f *TIFFRaster) getTileSamplesCached(ctx context.Context, tileCoord TileCoord) ([]float32, error) {
	return f.tileSamplesCache.Get(ctx, tileCoord, otter.LoaderFunc[TileCoord, []float32](f.getTileSamples))
}

// tileCoord returns the tile coordinate containing the pixel at (x, y).
func (f *TIFFRaster) tileCoord(x, y AxisIndex) TileCoord {
	return TileCoord{
		C: int(x) / f.tileWidth,
		R: int(y) / f.tileLength,
	}
}

// tileSample returns the sample from tileSamples at (x, y).
func (f *TIFFRaster) tileSample(tileSamples []float32, x, y AxisIndex) float64 {
	sample := tileSamples[int(x)%f.tileWidth+(int(y)%f.tileLength)*f.tileWidth]
	if f.hasNoData && sample == f.noData {
		return math.NaN()
	}
	return float64(sample)
}
