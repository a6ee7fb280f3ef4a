package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/scene"
)

// NormalLines returns one line per vertex from its position along its
// normal, length units long.
func NormalLines(m scene.GPUMesh, length float32) []float32 {
	return vectorLines(m.Positions, m.Normals, length)
}

// TangentLines is NormalLines for tangents. It returns nil for meshes
// built without tangents.
func TangentLines(m scene.GPUMesh, length float32) []float32 {
	if m.Tangents == nil {
		return nil
	}
	return vectorLines(m.Positions, m.Tangents, length)
}

func vectorLines(positions, dirs []float32, length float32) []float32 {
	n := min(len(positions), len(dirs)) / 3
	out := make([]float32, 0, n*6)
	for i := range n {
		p := positions[3*i : 3*i+3]
		d := dirs[3*i : 3*i+3]
		out = append(out,
			p[0], p[1], p[2],
			p[0]+d[0]*length, p[1]+d[1]*length, p[2]+d[2]*length,
		)
	}
	return out
}

// InstanceLines applies lines to the mesh of every model instance in s and
// returns the segments in world space. Terrain instances are skipped.
func InstanceLines(s *scene.Scene, lines func(scene.GPUMesh) []float32) []float32 {
	var out []float32
	for _, inst := range s.Instances {
		if inst.Mesh < s.TerrainMeshes {
			continue
		}
		local := lines(s.Meshes[inst.Mesh])
		for i := 0; i+2 < len(local); i += 3 {
			p := inst.Transform.Mul4x1(mgl32.Vec4{local[i], local[i+1], local[i+2], 1})
			out = append(out, p[0], p[1], p[2])
		}
	}
	return out
}
