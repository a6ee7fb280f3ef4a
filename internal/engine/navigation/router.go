package navigation

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

// Router plans walks over a tile set with one PathFinder per tile.
type Router struct {
	tiles *terrain.TileSet
	paths map[terrain.TileCoord]*PathFinder
}

// NewRouter precomputes walkability for every tile in tiles.
func NewRouter(tiles *terrain.TileSet, maxSlope float32) *Router {
	r := &Router{
		tiles: tiles,
		paths: make(map[terrain.TileCoord]*PathFinder),
	}
	for _, t := range tiles.Tiles() {
		r.paths[t.Coord] = NewPathFinder(t.Grid, maxSlope)
	}
	return r
}

// Route returns waypoints from (fromX, fromZ) to (toX, toZ). Paths do not
// cross tile borders: when the endpoints sit on different tiles, or outside
// any tile, Route returns the destination alone and direct is true. A nil
// path means the destination is unreachable.
func (r *Router) Route(fromX, fromZ, toX, toZ float32) (path []mgl32.Vec2, direct bool) {
	tile := r.tiles.TileAt(fromX, fromZ)
	pf, ok := r.paths[tile]
	if !ok || r.tiles.TileAt(toX, toZ) != tile {
		return []mgl32.Vec2{{toX, toZ}}, true
	}
	return pf.WorldPath(fromX, fromZ, toX, toZ), false
}
