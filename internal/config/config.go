// Package config handles viewer and tool configuration loading and management.
package config

import (
	"github.com/Faultbox/groundwork/internal/engine/placement"
	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

// Config holds all settings.
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Models   []ModelConfig  `yaml:"models"`
	Scatter  ScatterConfig  `yaml:"scatter"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerrainConfig holds heightmap and tile layout settings.
type TerrainConfig struct {
	Heightmap string       `yaml:"heightmap"`  // Path to the heightmap image
	Size      float32      `yaml:"size"`       // World size of one tile side
	MaxHeight float32      `yaml:"max_height"` // Height of the brightest sample
	Tiles     []TileConfig `yaml:"tiles"`
}

// TileConfig places one terrain tile on the tile grid.
type TileConfig struct {
	X int `yaml:"grid_x"`
	Z int `yaml:"grid_z"`
}

// ModelConfig describes an OBJ model and how to scatter it.
type ModelConfig struct {
	Path     string             `yaml:"path"`
	Tangents bool               `yaml:"tangents"`
	Scatter  ModelScatterConfig `yaml:"scatter"`
}

// ModelScatterConfig controls instance placement for one model.
type ModelScatterConfig struct {
	Count    int     `yaml:"count"`
	Variants int     `yaml:"variants"`
	YOffset  float32 `yaml:"y_offset"`
	Scale    float32 `yaml:"scale"`
}

// ScatterConfig holds settings shared by all scatter passes.
type ScatterConfig struct {
	Seed int64      `yaml:"seed"`
	Area AreaConfig `yaml:"area"`
}

// AreaConfig is a rectangle on the XZ plane.
type AreaConfig struct {
	MinX float32 `yaml:"min_x"`
	MinZ float32 `yaml:"min_z"`
	MaxX float32 `yaml:"max_x"`
	MaxZ float32 `yaml:"max_z"`
}

// PhysicsConfig holds camera body movement settings.
type PhysicsConfig struct {
	Speed     float32 `yaml:"speed"`
	JumpSpeed float32 `yaml:"jump_speed"`
	Gravity   float32 `yaml:"gravity"`
	MaxSlope  float32 `yaml:"max_slope"` // Steepest rise over run click-to-move paths may climb
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Fullscreen bool      `yaml:"fullscreen"`
	VSync      bool      `yaml:"vsync"`
	FPSLimit   int       `yaml:"fps_limit"`
	Sun        SunConfig `yaml:"sun"`
	Font       string    `yaml:"font"` // TTF for the inspector UI; empty keeps the built-in font
}

// SunConfig positions the directional light, in degrees.
type SunConfig struct {
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Heightmap: "heightmap.png",
			Size:      terrain.DefaultSize,
			MaxHeight: terrain.DefaultMaxHeight,
			Tiles:     []TileConfig{{X: -1, Z: -1}},
		},
		Scatter: ScatterConfig{
			Seed: 1,
			Area: AreaConfig{MinX: -800, MinZ: -800, MaxX: 0, MaxZ: 0},
		},
		Physics: PhysicsConfig{
			Speed:     15,
			JumpSpeed: 30,
			Gravity:   -75,
			MaxSlope:  1,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			Sun:        SunConfig{Azimuth: 90, Elevation: 60},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// GridOptions converts terrain settings for the terrain builder.
func (t TerrainConfig) GridOptions() terrain.GridOptions {
	return terrain.GridOptions{
		MaxHeight: t.MaxHeight,
		Size:      t.Size,
	}
}

// TileCoords returns the configured tile coordinates.
func (t TerrainConfig) TileCoords() []terrain.TileCoord {
	coords := make([]terrain.TileCoord, len(t.Tiles))
	for i, tile := range t.Tiles {
		coords[i] = terrain.TileCoord{X: tile.X, Z: tile.Z}
	}
	return coords
}

// Area converts the rectangle for the placement package.
func (a AreaConfig) Area() placement.Area {
	return placement.Area{MinX: a.MinX, MinZ: a.MinZ, MaxX: a.MaxX, MaxZ: a.MaxZ}
}

// Options converts per-model scatter settings for the placement package.
func (s ModelScatterConfig) Options() placement.Options {
	return placement.Options{
		Count:    s.Count,
		Variants: s.Variants,
		YOffset:  s.YOffset,
		Scale:    s.Scale,
	}
}
