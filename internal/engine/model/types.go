// Package model turns parsed OBJ data into indexed vertex buffers ready for GPU upload.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	gmath "github.com/Faultbox/groundwork/pkg/math"
)

// NoIndex marks an attribute slot no face corner has claimed yet, and the end
// of a duplicate chain.
const NoIndex = -1

// Vertex is one output vertex in the build arena.
//
// Root vertex i corresponds to OBJ position i. When a later corner touches the
// same position with a different (TexCoord, Normal) pair, a duplicate is
// appended to the arena and linked from the end of the chain through Next.
type Vertex struct {
	Position    mgl32.Vec3
	TexCoord    int // index into OBJ.TexCoords, NoIndex until assigned
	Normal      int // index into OBJ.Normals, NoIndex until assigned
	OutputIndex int
	Next        int // arena index of the next duplicate, NoIndex at chain end

	// Tangents holds one contribution per triangle using this vertex.
	Tangents []mgl32.Vec3
	// Tangent is the normalized sum of Tangents, set after accumulation.
	Tangent mgl32.Vec3
}

// IsSet reports whether a corner has assigned both attributes.
func (v *Vertex) IsSet() bool {
	return v.TexCoord != NoIndex && v.Normal != NoIndex
}

// HasAttributes reports whether v carries the given attribute pair.
func (v *Vertex) HasAttributes(texCoord, normal int) bool {
	return v.TexCoord == texCoord && v.Normal == normal
}

// MeshData holds flat vertex arrays and the triangle index buffer.
// Every attribute array has one entry per output vertex, in OutputIndex order.
type MeshData struct {
	Name      string
	Positions []float32 // xyz
	TexCoords []float32 // uv, v flipped to image convention (1 - v)
	Normals   []float32 // xyz
	Tangents  []float32 // xyz, nil unless BuildOptions.Tangents
	Indices   []uint32

	// FurthestPoint is the largest distance of any vertex from the model origin.
	FurthestPoint float32
	Bounds        Bounds
}

// VertexCount returns the number of output vertices.
func (m *MeshData) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasTangents reports whether tangent data was generated.
func (m *MeshData) HasTangents() bool {
	return len(m.Tangents) > 0
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds = gmath.Bounds

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// Tangents enables per-vertex tangent generation for normal mapping.
	Tangents bool
}
