package scene

import (
	"github.com/Faultbox/groundwork/internal/engine/picking"
)

// InstanceAABB returns the world box of instance i. Instance transforms are a
// uniform scale followed by a translation.
func (s *Scene) InstanceAABB(i int) picking.AABB {
	inst := s.Instances[i]
	b := s.Meshes[inst.Mesh].Bounds()
	scale := inst.Transform.Col(0).Vec3().Len()
	return picking.TransformAABB(b.Min, b.Max, inst.Transform.Col(3).Vec3(), scale)
}

// PickInstance returns the nearest model instance whose box the ray hits.
// Terrain instances are skipped.
func (s *Scene) PickInstance(r picking.Ray) (index int, t float32, ok bool) {
	index = -1
	for i, inst := range s.Instances {
		if inst.Mesh < s.TerrainMeshes {
			continue
		}
		d, hit := r.IntersectAABB(s.InstanceAABB(i))
		if !hit {
			continue
		}
		if !ok || d < t {
			index, t, ok = i, d, true
		}
	}
	return index, t, ok
}
