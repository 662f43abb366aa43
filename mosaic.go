package raster

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	missingTileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raster_missing_tile_cache_hits_total",
		Help: "The total number of hits on the missing tile cache",
	})
	missingTileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raster_missing_tile_cache_misses_total",
		Help: "The total number of misses on the missing tile cache",
	})
	openRasterCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raster_open_raster_cache_hits_total",
		Help: "The total number of hits on the open raster cache",
	})
	openRasterCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raster_open_raster_cache_misses_total",
		Help: "The total number of misses on the open raster cache",
	})
	openRasterCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raster_open_raster_cache_evictions_total",
		Help: "The total number of evictions from the open raster cache",
	})
)

// A TileFilenameFunc returns the tile filename for a tile coordinate.
type TileFilenameFunc func(TileCoord) string

// A Mosaic is a virtual raster assembled from equally-sized TIFF tile files
// on a filesystem, addressed in global pixel space. Pixels in missing tiles
// read as NaN.
type Mosaic struct {
	mutex             sync.Mutex
	fsys              fs.FS
	width             AxisIndex
	height            AxisIndex
	tileWidth         int
	tileHeight        int
	tileFilenameFunc  TileFilenameFunc
	missingTiles      sync.Map
	tiffRasterOptions []TIFFRasterOption
	cacheSize         int
	tiffRasterCache   *lru.Cache[TileCoord, *TIFFRaster]
}

// A MosaicOption sets an option on a Mosaic.
type MosaicOption func(*Mosaic)

// NewMosaic returns a new Mosaic with the given options.
func NewMosaic(options ...MosaicOption) (*Mosaic, error) {
	m := &Mosaic{
		cacheSize: 32,
	}
	for _, option := range options {
		option(m)
	}

	if m.tileWidth <= 0 || m.tileHeight <= 0 {
		return nil, errors.New("no tile extent")
	}
	if m.tileFilenameFunc == nil {
		return nil, errors.New("no tile filename function")
	}

	var err error
	m.tiffRasterCache, err = lru.NewWithEvict(m.cacheSize, func(key TileCoord, value *TIFFRaster) {
		if value != nil {
			value.Close()
		}
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func WithCacheSize(cacheSize int) MosaicOption {
	return func(m *Mosaic) {
		m.cacheSize = cacheSize
	}
}

func WithExtent(width, height AxisIndex) MosaicOption {
	return func(m *Mosaic) {
		m.width = width
		m.height = height
	}
}

func WithFS(fsys fs.FS) MosaicOption {
	return func(m *Mosaic) {
		m.fsys = fsys
	}
}

func WithTIFFRasterOptions(tiffRasterOptions ...TIFFRasterOption) MosaicOption {
	return func(m *Mosaic) {
		m.tiffRasterOptions = tiffRasterOptions
	}
}

func WithTileExtent(tileWidth, tileHeight int) MosaicOption {
	return func(m *Mosaic) {
		m.tileWidth = tileWidth
		m.tileHeight = tileHeight
	}
}

func WithTileFilenameFunc(tileFilenameFunc TileFilenameFunc) MosaicOption {
	return func(m *Mosaic) {
		m.tileFilenameFunc = tileFilenameFunc
	}
}

// Width returns m's width in pixels.
func (m *Mosaic) Width() AxisIndex {
	return m.width
}

// Height returns m's height in pixels.
func (m *Mosaic) Height() AxisIndex {
	return m.height
}

// PixelAt returns the sample of m at (x, y), which must be within bounds.
// Pixels in missing or unreadable tiles read as NaN.
func (m *Mosaic) PixelAt(x, y AxisIndex) float64 {
	tile, err := m.getTileCached(m.tileCoord(x, y))
	if err != nil || tile == nil {
		return math.NaN()
	}
	localX, localY := m.localCoord(x, y)
	if localX >= tile.Width() || localY >= tile.Height() {
		return math.NaN()
	}
	return tile.PixelAt(localX, localY)
}

// Samples returns the samples at coords. Invalid coordinates, out-of-bounds
// coordinates, and missing samples are represented by NaNs.
func (m *Mosaic) Samples(ctx context.Context, coords []Coordinate) ([]float64, error) {
	samples := make([]float64, len(coords))

	// Group indexes by tile coord.
	type groupStruct struct {
		xs      []AxisIndex
		ys      []AxisIndex
		indexes []int
	}
	groupsByTileCoord := make(map[TileCoord]*groupStruct)
	for index, coord := range coords {
		x, y, ok := coord.ImageCoordinate()
		if !ok || x >= m.width || y >= m.height {
			samples[index] = math.NaN()
			continue
		}
		tileCoord := m.tileCoord(x, y)
		group, ok := groupsByTileCoord[tileCoord]
		if !ok {
			group = &groupStruct{}
			groupsByTileCoord[tileCoord] = group
		}
		group.xs = append(group.xs, x)
		group.ys = append(group.ys, y)
		group.indexes = append(group.indexes, index)
	}

	// Populate samples one tile at a time.
	for tileCoord, group := range groupsByTileCoord {
		tile, err := m.getTileCached(tileCoord)
		if err != nil {
			return nil, err
		}
		if tile == nil {
			for _, index := range group.indexes {
				samples[index] = math.NaN()
			}
			continue
		}
		for i, index := range group.indexes {
			localX, localY := m.localCoord(group.xs[i], group.ys[i])
			if localX >= tile.Width() || localY >= tile.Height() {
				samples[index] = math.NaN()
				continue
			}
			sample, err := tile.Sample(ctx, UnsignedPoint[AxisIndex]{X: localX, Y: localY})
			if err != nil {
				return nil, err
			}
			samples[index] = sample
		}
	}

	return samples, nil
}

// tileCoord returns the tile coordinate containing the pixel at (x, y).
func (m *Mosaic) tileCoord(x, y AxisIndex) TileCoord {
	return TileCoord{
		C: int(x) / m.tileWidth,
		R: int(y) / m.tileHeight,
	}
}

// localCoord returns the coordinate of the pixel at (x, y) within its tile.
func (m *Mosaic) localCoord(x, y AxisIndex) (AxisIndex, AxisIndex) {
	return AxisIndex(int(x) % m.tileWidth), AxisIndex(int(y) % m.tileHeight)
}

// getTile returns the tile at the given tile coordinate, or nil if the tile
// is missing.
func (m *Mosaic) getTile(tileCoord TileCoord) (*TIFFRaster, error) {
	filename := m.tileFilenameFunc(tileCoord)
	switch tiffRaster, err := NewTIFFRaster(m.fsys, filename, m.tiffRasterOptions...); {
	case errors.Is(err, fs.ErrNotExist):
		m.missingTiles.Store(tileCoord, struct{}{})
		missingTileCacheMisses.Inc()
		return nil, nil
	case err != nil:
		return nil, err
	default:
		return tiffRaster, nil
	}
}

// getTileCached returns the tile at the given tile coordinate, using the
// cache if possible.
func (m *Mosaic) getTileCached(tileCoord TileCoord) (*TIFFRaster, error) {
	if _, ok := m.missingTiles.Load(tileCoord); ok {
		missingTileCacheHits.Inc()
		return nil, nil
	}

	if tile, ok := m.tiffRasterCache.Get(tileCoord); ok {
		openRasterCacheHits.Inc()
		return tile, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.missingTiles.Load(tileCoord); ok {
		missingTileCacheHits.Inc()
		return nil, nil
	}

	if tile, ok := m.tiffRasterCache.Get(tileCoord); ok {
		openRasterCacheHits.Inc()
		return tile, nil
	}

	openRasterCacheMisses.Inc()

	tile, err := m.getTile(tileCoord)
	if err != nil {
		return nil, err
	}
	if tile == nil {
		return nil, nil
	}

	if eviction := m.tiffRasterCache.Add(tileCoord, tile); eviction {
		openRasterCacheEvictions.Inc()
	}

	return tile, nil
}
