// Package scene assembles terrain tiles and scattered models into a world
// the renderer can draw.
package scene

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/groundwork/internal/config"
	"github.com/Faultbox/groundwork/internal/engine/model"
	"github.com/Faultbox/groundwork/internal/engine/placement"
	"github.com/Faultbox/groundwork/internal/engine/terrain"
	"github.com/Faultbox/groundwork/internal/logger"
	gmath "github.com/Faultbox/groundwork/pkg/math"
)

func log() *zap.Logger {
	return logger.Named("scene")
}

// Instance draws Meshes[Mesh] with a model matrix.
type Instance struct {
	Mesh      int
	Transform mgl32.Mat4
	Variant   int
}

// Scene is the CPU side of the world: meshes plus where to draw them.
type Scene struct {
	Terrain   *terrain.TileSet
	Meshes    []GPUMesh
	Instances []Instance

	// TerrainMeshes is the number of leading Meshes that are terrain tiles.
	TerrainMeshes int

	// Bounds is the world-space box around the terrain.
	Bounds gmath.Bounds
}

// Load reads the heightmap and every model named by cfg, then scatters model
// instances over the terrain. Terrain tiles and models load concurrently.
// Placements depend only on cfg.Scatter.Seed and the model order.
func Load(ctx context.Context, cfg *config.Config) (*Scene, error) {
	raster, err := terrain.LoadRaster(cfg.Terrain.Heightmap)
	if err != nil {
		return nil, fmt.Errorf("loading heightmap: %w", err)
	}

	var tiles *terrain.TileSet
	models := make([]*model.MeshData, len(cfg.Models))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tiles, err = terrain.BuildTiles(gctx, raster, cfg.Terrain.GridOptions(), cfg.Terrain.TileCoords())
		if err != nil {
			return fmt.Errorf("building terrain: %w", err)
		}
		return nil
	})
	for i, mc := range cfg.Models {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			md, err := model.LoadFile(mc.Path, model.BuildOptions{Tangents: mc.Tangents})
			if err != nil {
				return err
			}
			models[i] = md
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Scene{
		Terrain: tiles,
		Bounds:  gmath.EmptyBounds(),
	}
	s.addTerrain(tiles)
	s.addModels(cfg, models)

	log().Info("scene loaded",
		zap.Int("meshes", len(s.Meshes)),
		zap.Int("instances", len(s.Instances)),
		zap.Int64("seed", cfg.Scatter.Seed),
	)
	return s, nil
}

func (s *Scene) addTerrain(tiles *terrain.TileSet) {
	for _, t := range tiles.Tiles() {
		m := t.Mesh
		s.Instances = append(s.Instances, Instance{
			Mesh:      len(s.Meshes),
			Transform: mgl32.Translate3D(m.OriginX, 0, m.OriginZ),
		})
		s.Meshes = append(s.Meshes, FromTerrain(fmt.Sprintf("terrain(%d,%d)", t.Coord.X, t.Coord.Z), m))

		s.Bounds.Union(m.Bounds.Translate([3]float32{m.OriginX, 0, m.OriginZ}))
	}
	s.TerrainMeshes = len(s.Meshes)
}

func (s *Scene) addModels(cfg *config.Config, models []*model.MeshData) {
	rng := rand.New(rand.NewSource(cfg.Scatter.Seed))
	area := cfg.Scatter.Area.Area()

	for i, md := range models {
		meshIndex := len(s.Meshes)
		s.Meshes = append(s.Meshes, FromModel(md))

		for _, p := range placement.Scatter(rng, s.Terrain, area, cfg.Models[i].Scatter.Options()) {
			s.Instances = append(s.Instances, Instance{
				Mesh:      meshIndex,
				Transform: p.Transform(),
				Variant:   p.Variant,
			})
		}
	}
}

// HeightAt returns the terrain height at world (x, z).
func (s *Scene) HeightAt(x, z float32) float32 {
	if s.Terrain == nil {
		return 0
	}
	return s.Terrain.HeightAt(x, z)
}

// Center returns the middle of the terrain bounds.
func (s *Scene) Center() mgl32.Vec3 {
	return s.Bounds.Center()
}
