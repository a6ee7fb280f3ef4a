// Package terrain builds heightfield meshes from raster heightmaps and answers
// ground height queries against them.
package terrain

import gmath "github.com/Faultbox/groundwork/pkg/math"

// MaxPixelColor is the number of distinct 24-bit RGB samples.
const MaxPixelColor = 256 * 256 * 256

// Defaults match a single 800x800 tile with a 40 unit height range.
const (
	DefaultSize      = 800
	DefaultMaxHeight = 40
)

// Raster is a square heightmap of packed 0xRRGGBB samples, row-major.
type Raster struct {
	Size    int
	Samples []uint32
}

// At returns the sample at (row, col).
func (r Raster) At(row, col int) uint32 {
	return r.Samples[row*r.Size+col]
}

// GridOptions controls how raster samples map to world space.
type GridOptions struct {
	MaxHeight float32 // height of the brightest sample
	Size      float32 // world footprint of one side
	OriginX   float32 // world position of grid column 0
	OriginZ   float32 // world position of grid row 0
}

// DefaultGridOptions returns options for a single tile at the origin.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		MaxHeight: DefaultMaxHeight,
		Size:      DefaultSize,
	}
}

// HeightGrid holds the per-sample heights a terrain was built from.
// It is immutable after construction and safe for concurrent readers.
type HeightGrid struct {
	heights [][]float32 // [row][col], row runs along +Z, col along +X
	opts    GridOptions
	cell    float32 // world distance between adjacent samples
}

// HeightQuery answers ground height at a world position.
type HeightQuery interface {
	HeightAt(x, z float32) float32
}

// Mesh holds terrain vertex arrays ready for GPU upload.
// Positions are local to the grid; OriginX/OriginZ give the world offset.
type Mesh struct {
	Positions []float32 // xyz
	Normals   []float32 // xyz
	TexCoords []float32 // uv
	Indices   []uint32

	OriginX float32
	OriginZ float32
	Bounds  Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds = gmath.Bounds
