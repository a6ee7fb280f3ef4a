package terrain

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateTile is returned when BuildTiles gets the same coordinate twice.
var ErrDuplicateTile = errors.New("duplicate terrain tile")

// TileCoord addresses a tile on the terrain grid. Tile (X, Z) covers world
// [X*Size, (X+1)*Size) x [Z*Size, (Z+1)*Size).
type TileCoord struct {
	X, Z int
}

// Tile is one square of terrain with its own height grid and mesh.
type Tile struct {
	Coord TileCoord
	Grid  *HeightGrid
	Mesh  *Mesh
}

// TileSet routes height queries to the tile that owns the point.
type TileSet struct {
	size  float32
	tiles []*Tile
	index map[TileCoord]*Tile
}

// BuildTiles builds one tile per coordinate from the same raster, concurrently.
// opts.OriginX and opts.OriginZ are ignored; each tile is anchored by its
// coordinate.
func BuildTiles(ctx context.Context, r Raster, opts GridOptions, coords []TileCoord) (*TileSet, error) {
	if !(opts.Size > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSize, opts.Size)
	}

	set := &TileSet{
		size:  opts.Size,
		tiles: make([]*Tile, len(coords)),
		index: make(map[TileCoord]*Tile, len(coords)),
	}
	for _, c := range coords {
		if _, dup := set.index[c]; dup {
			return nil, fmt.Errorf("%w: (%d, %d)", ErrDuplicateTile, c.X, c.Z)
		}
		set.index[c] = nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, c := range coords {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tileOpts := opts
			tileOpts.OriginX = float32(c.X) * opts.Size
			tileOpts.OriginZ = float32(c.Z) * opts.Size

			grid, err := BuildHeightGrid(r, tileOpts)
			if err != nil {
				return fmt.Errorf("tile (%d, %d): %w", c.X, c.Z, err)
			}
			set.tiles[i] = &Tile{Coord: c, Grid: grid, Mesh: BuildMesh(grid)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, t := range set.tiles {
		set.index[t.Coord] = t
	}

	log().Info("built terrain tiles",
		zap.Int("tiles", len(set.tiles)),
		zap.Int("resolution", r.Size),
		zap.Float32("size", opts.Size),
	)
	return set, nil
}

// Tiles returns the tiles in the order their coordinates were given.
func (s *TileSet) Tiles() []*Tile {
	return s.tiles
}

// Tile returns the tile at c.
func (s *TileSet) Tile(c TileCoord) (*Tile, bool) {
	t, ok := s.index[c]
	return t, ok
}

// TileAt returns the coordinate of the tile covering world (x, z). The result
// agrees with the tile origins, so the owning grid always contains the point.
func (s *TileSet) TileAt(x, z float32) TileCoord {
	return TileCoord{X: s.tileIndex(x), Z: s.tileIndex(z)}
}

func (s *TileSet) tileIndex(v float32) int {
	i := int(gomath.Floor(float64(v / s.size)))
	switch {
	case v < float32(i)*s.size:
		i--
	case v >= float32(i+1)*s.size:
		i++
	}
	return i
}

// HeightAt returns the height at world (x, z), or 0 where no tile exists.
func (s *TileSet) HeightAt(x, z float32) float32 {
	t, ok := s.index[s.TileAt(x, z)]
	if !ok {
		return 0
	}
	return t.Grid.HeightAt(x, z)
}
