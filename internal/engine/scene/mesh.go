package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/groundwork/internal/engine/model"
	"github.com/Faultbox/groundwork/internal/engine/terrain"
	gmath "github.com/Faultbox/groundwork/pkg/math"
)

var (
	// ErrMismatchedArrays is returned when attribute arrays disagree on vertex count.
	ErrMismatchedArrays = errors.New("mismatched vertex arrays")
	// ErrIndexOutOfRange is returned when an index references a missing vertex.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// GPUMesh is the flat array layout handed to the renderer. Attribute arrays
// are parallel: vertex i owns Positions[3i:3i+3], TexCoords[2i:2i+2] and so on.
// Tangents may be nil.
type GPUMesh struct {
	Name      string
	Positions []float32
	TexCoords []float32
	Normals   []float32
	Tangents  []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m GPUMesh) VertexCount() int {
	return len(m.Positions) / 3
}

// IndexCount returns the length of the index buffer.
func (m GPUMesh) IndexCount() int {
	return len(m.Indices)
}

// Bounds returns the local-space box around the mesh positions.
func (m GPUMesh) Bounds() gmath.Bounds {
	return gmath.BoundsOf(m.Positions)
}

// TriangleCount returns the number of indexed triangles.
func (m GPUMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that the arrays describe one consistent vertex set.
func (m GPUMesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %s: %d position floats", ErrMismatchedArrays, m.Name, len(m.Positions))
	}
	n := m.VertexCount()
	if len(m.TexCoords) != 2*n {
		return fmt.Errorf("%w: %s: %d texcoord floats for %d vertices", ErrMismatchedArrays, m.Name, len(m.TexCoords), n)
	}
	if len(m.Normals) != 3*n {
		return fmt.Errorf("%w: %s: %d normal floats for %d vertices", ErrMismatchedArrays, m.Name, len(m.Normals), n)
	}
	if m.Tangents != nil && len(m.Tangents) != 3*n {
		return fmt.Errorf("%w: %s: %d tangent floats for %d vertices", ErrMismatchedArrays, m.Name, len(m.Tangents), n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %s: %d indices is not whole triangles", ErrMismatchedArrays, m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: %s: index %d is %d, have %d vertices", ErrIndexOutOfRange, m.Name, i, idx, n)
		}
	}
	return nil
}

// FromModel wraps a built OBJ model. The arrays are shared, not copied.
func FromModel(md *model.MeshData) GPUMesh {
	return GPUMesh{
		Name:      md.Name,
		Positions: md.Positions,
		TexCoords: md.TexCoords,
		Normals:   md.Normals,
		Tangents:  md.Tangents,
		Indices:   md.Indices,
	}
}

// FromTerrain wraps a terrain tile mesh. Positions stay local to the tile.
func FromTerrain(name string, m *terrain.Mesh) GPUMesh {
	return GPUMesh{
		Name:      name,
		Positions: m.Positions,
		TexCoords: m.TexCoords,
		Normals:   m.Normals,
		Indices:   m.Indices,
	}
}
