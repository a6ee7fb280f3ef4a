package terrain

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/logger"
)

// Grid construction errors.
var (
	ErrRasterTooSmall  = errors.New("heightmap needs at least 2x2 samples")
	ErrRasterNotSquare = errors.New("heightmap sample count does not match size")
	ErrInvalidSize     = errors.New("terrain size must be positive")
)

func log() *zap.Logger {
	return logger.Named("terrain")
}

// SampleHeight maps a packed RGB sample to a height in [-maxHeight, maxHeight).
func SampleHeight(sample uint32, maxHeight float32) float32 {
	const half = MaxPixelColor / 2
	return (float32(sample) - half) / half * maxHeight
}

// BuildHeightGrid converts raster samples to heights.
func BuildHeightGrid(r Raster, opts GridOptions) (*HeightGrid, error) {
	if r.Size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrRasterTooSmall, r.Size)
	}
	if len(r.Samples) != r.Size*r.Size {
		return nil, fmt.Errorf("%w: %d samples for size %d", ErrRasterNotSquare, len(r.Samples), r.Size)
	}

	heights := make([][]float32, r.Size)
	for row := range r.Size {
		heights[row] = make([]float32, r.Size)
		for col := range r.Size {
			heights[row][col] = SampleHeight(r.At(row, col), opts.MaxHeight)
		}
	}

	return newGrid(heights, opts)
}

// NewHeightGrid wraps precomputed heights, indexed [row][col]. The slices are
// copied.
func NewHeightGrid(heights [][]float32, opts GridOptions) (*HeightGrid, error) {
	n := len(heights)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d rows", ErrRasterTooSmall, n)
	}

	owned := make([][]float32, n)
	for row, h := range heights {
		if len(h) != n {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrRasterNotSquare, row, len(h), n)
		}
		owned[row] = append([]float32(nil), h...)
	}

	return newGrid(owned, opts)
}

func newGrid(heights [][]float32, opts GridOptions) (*HeightGrid, error) {
	if !(opts.Size > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSize, opts.Size)
	}
	return &HeightGrid{
		heights: heights,
		opts:    opts,
		cell:    opts.Size / float32(len(heights)-1),
	}, nil
}

// Resolution returns the number of samples along one side.
func (g *HeightGrid) Resolution() int {
	return len(g.heights)
}

// Options returns the options the grid was built with.
func (g *HeightGrid) Options() GridOptions {
	return g.opts
}

// CellSize returns the world distance between adjacent samples.
func (g *HeightGrid) CellSize() float32 {
	return g.cell
}

// At returns the height at (row, col). Samples outside the grid read as 0.
func (g *HeightGrid) At(row, col int) float32 {
	if row < 0 || col < 0 || row >= len(g.heights) || col >= len(g.heights) {
		return 0
	}
	return g.heights[row][col]
}
