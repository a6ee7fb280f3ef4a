package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ErrInvalid is wrapped by every validation problem.
var ErrInvalid = errors.New("invalid config")

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the config and reports every problem found.
func (c *Config) Validate() error {
	var err error
	add := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Terrain.Heightmap == "" {
		add("terrain.heightmap is empty")
	}
	if !(c.Terrain.Size > 0) {
		add("terrain.size must be positive, got %v", c.Terrain.Size)
	}
	if len(c.Terrain.Tiles) == 0 {
		add("terrain.tiles is empty")
	}
	seen := make(map[TileConfig]bool, len(c.Terrain.Tiles))
	for _, t := range c.Terrain.Tiles {
		if seen[t] {
			add("terrain.tiles has duplicate tile (%d, %d)", t.X, t.Z)
		}
		seen[t] = true
	}

	for i, m := range c.Models {
		if m.Path == "" {
			add("models[%d].path is empty", i)
		}
		if m.Scatter.Count < 0 {
			add("models[%d].scatter.count must not be negative, got %d", i, m.Scatter.Count)
		}
		if m.Scatter.Variants < 0 {
			add("models[%d].scatter.variants must not be negative, got %d", i, m.Scatter.Variants)
		}
		if m.Scatter.Scale < 0 {
			add("models[%d].scatter.scale must not be negative, got %v", i, m.Scatter.Scale)
		}
	}

	a := c.Scatter.Area
	if a.MaxX < a.MinX || a.MaxZ < a.MinZ {
		add("scatter.area max corner (%v, %v) is below min corner (%v, %v)", a.MaxX, a.MaxZ, a.MinX, a.MinZ)
	}

	if c.Physics.Speed < 0 {
		add("physics.speed must not be negative, got %v", c.Physics.Speed)
	}
	if !(c.Physics.MaxSlope > 0) {
		add("physics.max_slope must be positive, got %v", c.Physics.MaxSlope)
	}
	if c.Physics.Gravity >= 0 {
		add("physics.gravity must be negative, got %v", c.Physics.Gravity)
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		add("graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FPSLimit < 0 {
		add("graphics.fps_limit must not be negative, got %d", c.Graphics.FPSLimit)
	}

	if e := c.Graphics.Sun.Elevation; e < 0 || e > 90 {
		add("graphics.sun.elevation must be within [0, 90], got %v", e)
	}

	if !validLevels[strings.ToLower(c.Logging.Level)] {
		add("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return err
}
