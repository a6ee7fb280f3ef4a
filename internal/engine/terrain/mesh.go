package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	gmath "github.com/Faultbox/groundwork/pkg/math"
)

// BuildMesh creates the terrain mesh for a height grid.
//
// Vertex (row, col) is stored at index row*H+col. Each grid cell emits two
// triangles split along the top-right/bottom-left diagonal, the same split
// HeightAt uses, wound so normals face +Y.
func BuildMesh(g *HeightGrid) *Mesh {
	n := g.Resolution()
	last := float32(n - 1)

	mesh := &Mesh{
		Positions: make([]float32, 0, n*n*3),
		Normals:   make([]float32, 0, n*n*3),
		TexCoords: make([]float32, 0, n*n*2),
		Indices:   make([]uint32, 0, 6*(n-1)*(n-1)),
		OriginX:   g.opts.OriginX,
		OriginZ:   g.opts.OriginZ,
		Bounds:    gmath.EmptyBounds(),
	}

	for row := range n {
		for col := range n {
			u := float32(col) / last
			v := float32(row) / last
			p := [3]float32{u * g.opts.Size, g.heights[row][col], v * g.opts.Size}
			normal := g.normalAt(row, col)

			mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])
			mesh.Normals = append(mesh.Normals, normal[0], normal[1], normal[2])
			mesh.TexCoords = append(mesh.TexCoords, u, v)
			mesh.Bounds.Extend(p)
		}
	}

	for row := 0; row < n-1; row++ {
		for col := 0; col < n-1; col++ {
			topLeft := uint32(row*n + col)
			topRight := topLeft + 1
			bottomLeft := uint32((row+1)*n + col)
			bottomRight := bottomLeft + 1
			mesh.Indices = append(mesh.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	log().Debug("built terrain mesh",
		zap.Int("resolution", n),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32("origin_x", mesh.OriginX),
		zap.Float32("origin_z", mesh.OriginZ),
	)

	return mesh
}

// normalAt estimates the surface normal by central differences. Neighbours
// past the edge count as height 0, which tilts border normals; tiles built
// from the same heightmap therefore show a lighting seam at their edges.
func (g *HeightGrid) normalAt(row, col int) mgl32.Vec3 {
	left := g.At(row, col-1)
	right := g.At(row, col+1)
	down := g.At(row-1, col)
	up := g.At(row+1, col)
	return mgl32.Vec3{left - right, 2, down - up}.Normalize()
}
