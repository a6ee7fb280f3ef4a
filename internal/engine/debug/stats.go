package debug

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/scene"
	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

// fpsWindow is how often the FPS figure is refreshed, in seconds.
const fpsWindow = 0.5

// FrameStats averages frame rate over short windows.
type FrameStats struct {
	fps        float64
	frameTime  float64 // ms
	accumTime  float64 // seconds since last FPS update
	accumCount int
}

// Update records one frame that took deltaMs milliseconds.
func (f *FrameStats) Update(deltaMs float64) {
	f.frameTime = deltaMs
	f.accumCount++
	f.accumTime += deltaMs / 1000.0

	if f.accumTime >= fpsWindow {
		f.fps = float64(f.accumCount) / f.accumTime
		f.accumCount = 0
		f.accumTime = 0
	}
}

// FPS returns the frame rate of the last complete window.
func (f *FrameStats) FPS() float64 { return f.fps }

// FrameTime returns the duration of the last frame in milliseconds.
func (f *FrameStats) FrameTime() float64 { return f.frameTime }

// SceneStats counts what a scene draws each frame.
type SceneStats struct {
	Meshes    int
	Instances int
	Models    int // instances that are not terrain tiles
	Triangles int
}

// CountScene sums triangles over every drawn instance.
func CountScene(s *scene.Scene) SceneStats {
	st := SceneStats{
		Meshes:    len(s.Meshes),
		Instances: len(s.Instances),
	}
	for _, inst := range s.Instances {
		if inst.Mesh >= s.TerrainMeshes {
			st.Models++
		}
		st.Triangles += s.Meshes[inst.Mesh].TriangleCount()
	}
	return st
}

// StatusLine is the one-line summary shown in window titles.
func StatusLine(f *FrameStats, pos mgl32.Vec3, tile terrain.TileCoord) string {
	return fmt.Sprintf("%.1f FPS | pos %.1f, %.1f, %.1f | tile %d, %d",
		f.FPS(), pos.X(), pos.Y(), pos.Z(), tile.X, tile.Z)
}
