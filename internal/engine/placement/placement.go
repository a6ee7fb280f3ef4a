// Package placement scatters object instances across terrain.
package placement

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/engine/terrain"
	"github.com/Faultbox/groundwork/internal/logger"
)

// Area is a rectangle on the XZ plane.
type Area struct {
	MinX, MinZ float32
	MaxX, MaxZ float32
}

// Contains reports whether (x, z) lies inside the area, max edges excluded.
func (a Area) Contains(x, z float32) bool {
	return x >= a.MinX && x < a.MaxX && z >= a.MinZ && z < a.MaxZ
}

// inside pulls a point that float32 rounding put on a max edge back into the
// area. Degenerate areas are left alone.
func (a Area) inside(x, z float32) (float32, float32) {
	if a.Contains(x, z) {
		return x, z
	}
	if x >= a.MaxX && a.MaxX > a.MinX {
		x = math.Nextafter32(a.MaxX, a.MinX)
	}
	if z >= a.MaxZ && a.MaxZ > a.MinZ {
		z = math.Nextafter32(a.MaxZ, a.MinZ)
	}
	return x, z
}

// Options controls a scatter pass.
type Options struct {
	Count int
	// Variants is the number of texture atlas entries to pick from. Values
	// below 2 leave every placement on variant 0.
	Variants int
	// YOffset is added to the ground height, e.g. to sink or lift a model.
	YOffset float32
	Scale   float32
}

// Placement is one instance of a model in the world.
type Placement struct {
	Position mgl32.Vec3
	Variant  int
	Scale    float32
}

// Scatter places opts.Count instances uniformly inside area, each resting on
// ground. The same rng state always yields the same placements.
func Scatter(rng *rand.Rand, ground terrain.HeightQuery, area Area, opts Options) []Placement {
	if opts.Count <= 0 {
		return nil
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	width := area.MaxX - area.MinX
	depth := area.MaxZ - area.MinZ

	out := make([]Placement, 0, opts.Count)
	for range opts.Count {
		x := area.MinX + rng.Float32()*width
		z := area.MinZ + rng.Float32()*depth
		x, z = area.inside(x, z)

		variant := 0
		if opts.Variants > 1 {
			variant = rng.Intn(opts.Variants)
		}

		out = append(out, Placement{
			Position: mgl32.Vec3{x, ground.HeightAt(x, z) + opts.YOffset, z},
			Variant:  variant,
			Scale:    scale,
		})
	}

	logger.Named("placement").Debug("scattered instances",
		zap.Int("count", len(out)),
		zap.Int("variants", opts.Variants),
		zap.Float32("min_x", area.MinX),
		zap.Float32("min_z", area.MinZ),
		zap.Float32("max_x", area.MaxX),
		zap.Float32("max_z", area.MaxZ),
	)
	return out
}

// Transform returns the model matrix of a placement.
func (p Placement) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).
		Mul4(mgl32.Scale3D(p.Scale, p.Scale, p.Scale))
}
