package navigation

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

// wallTiles builds tiles (0,0) and (1,0), each 4 units wide, from a 5x5
// raster. When wall is set, column 2 of every tile is a ridge.
func wallTiles(t *testing.T, wall bool) *terrain.TileSet {
	t.Helper()
	samples := make([]uint32, 25)
	for i := range samples {
		samples[i] = terrain.MaxPixelColor / 2
		if wall && i%5 == 2 {
			samples[i] = terrain.MaxPixelColor - 1
		}
	}
	r := terrain.Raster{Size: 5, Samples: samples}
	set, err := terrain.BuildTiles(context.Background(), r,
		terrain.GridOptions{Size: 4, MaxHeight: 10},
		[]terrain.TileCoord{{X: 0, Z: 0}, {X: 1, Z: 0}})
	if err != nil {
		t.Fatalf("BuildTiles failed: %v", err)
	}
	return set
}

func TestRouter_Route(t *testing.T) {
	tests := []struct {
		name       string
		wall       bool
		from, to   mgl32.Vec2
		wantNil    bool
		wantDirect bool
	}{
		{name: "same tile", from: mgl32.Vec2{0.2, 0.2}, to: mgl32.Vec2{3.1, 3.2}},
		{name: "across tiles", from: mgl32.Vec2{1, 1}, to: mgl32.Vec2{6, 1}, wantDirect: true},
		{name: "off terrain", from: mgl32.Vec2{-3, 1}, to: mgl32.Vec2{1, 1}, wantDirect: true},
		{name: "blocked by ridge", wall: true, from: mgl32.Vec2{0, 1}, to: mgl32.Vec2{3.9, 1}, wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(wallTiles(t, tt.wall), DefaultMaxSlope)
			path, direct := r.Route(tt.from.X(), tt.from.Y(), tt.to.X(), tt.to.Y())

			if direct != tt.wantDirect {
				t.Errorf("Route() direct = %v, want %v", direct, tt.wantDirect)
			}
			if tt.wantNil {
				if path != nil {
					t.Errorf("Route() = %v, want nil", path)
				}
				return
			}
			if len(path) == 0 {
				t.Fatal("Route() returned no waypoints")
			}
			if last := path[len(path)-1]; last != tt.to {
				t.Errorf("last waypoint = %v, want %v", last, tt.to)
			}
			if tt.wantDirect && len(path) != 1 {
				t.Errorf("direct route has %d waypoints, want 1", len(path))
			}
		})
	}
}
