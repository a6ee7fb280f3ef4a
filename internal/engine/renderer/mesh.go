package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/engine/scene"
)

// Attribute locations shared with the diffuse shader.
const (
	locPosition = 0
	locTexCoord = 1
	locNormal   = 2
	locTangent  = 3
)

// Mesh is a GPU-resident copy of a scene.GPUMesh.
type Mesh struct {
	Name       string
	vao        uint32
	vbos       []uint32
	ebo        uint32
	indexCount int32
}

// Upload copies the arrays of m into GPU buffers: one VBO per attribute and
// an element buffer for the indices.
func Upload(m scene.GPUMesh) (*Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload %s: %w", m.Name, err)
	}
	if len(m.Indices) == 0 {
		return &Mesh{Name: m.Name}, nil
	}

	gm := &Mesh{Name: m.Name, indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gm.attribute(locPosition, 3, m.Positions)
	gm.attribute(locTexCoord, 2, m.TexCoords)
	gm.attribute(locNormal, 3, m.Normals)
	if m.Tangents != nil {
		gm.attribute(locTangent, 3, m.Tangents)
	} else {
		gl.VertexAttrib3f(locTangent, 1, 0, 0)
	}

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	log().Debug("uploaded mesh",
		zap.String("name", m.Name),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", m.IndexCount()),
		zap.Bool("tangents", m.Tangents != nil),
	)
	return gm, nil
}

func (gm *Mesh) attribute(loc uint32, size int32, data []float32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
	gm.vbos = append(gm.vbos, vbo)
}

// Destroy releases the GPU buffers.
func (gm *Mesh) Destroy() {
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
	if len(gm.vbos) > 0 {
		gl.DeleteBuffers(int32(len(gm.vbos)), &gm.vbos[0])
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
	}
	*gm = Mesh{Name: gm.Name}
}

// UploadScene uploads every mesh of s, in order. On error the meshes already
// uploaded are released.
func UploadScene(s *scene.Scene) ([]*Mesh, error) {
	meshes := make([]*Mesh, 0, len(s.Meshes))
	for _, m := range s.Meshes {
		gm, err := Upload(m)
		if err != nil {
			for _, done := range meshes {
				done.Destroy()
			}
			return nil, err
		}
		meshes = append(meshes, gm)
	}
	return meshes, nil
}
