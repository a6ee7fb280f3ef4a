package scene

import (
	"errors"
	"testing"

	"github.com/Faultbox/groundwork/internal/engine/model"
	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

func triangle() GPUMesh {
	return GPUMesh{
		Name:      "tri",
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		TexCoords: []float32{0, 0, 1, 0, 0, 1},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestGPUMesh_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(m *GPUMesh)
		want   error
	}{
		{"valid", func(m *GPUMesh) {}, nil},
		{"with tangents", func(m *GPUMesh) { m.Tangents = []float32{1, 0, 0, 1, 0, 0, 1, 0, 0} }, nil},
		{"ragged positions", func(m *GPUMesh) { m.Positions = m.Positions[:8] }, ErrMismatchedArrays},
		{"short texcoords", func(m *GPUMesh) { m.TexCoords = m.TexCoords[:4] }, ErrMismatchedArrays},
		{"short normals", func(m *GPUMesh) { m.Normals = m.Normals[:6] }, ErrMismatchedArrays},
		{"short tangents", func(m *GPUMesh) { m.Tangents = []float32{1, 0, 0} }, ErrMismatchedArrays},
		{"partial triangle", func(m *GPUMesh) { m.Indices = []uint32{0, 1} }, ErrMismatchedArrays},
		{"index past end", func(m *GPUMesh) { m.Indices = []uint32{0, 1, 3} }, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := triangle()
			tt.modify(&m)
			err := m.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromModel(t *testing.T) {
	md := &model.MeshData{
		Name:      "m",
		Positions: []float32{0, 0, 0},
		TexCoords: []float32{0, 1},
		Normals:   []float32{0, 1, 0},
		Tangents:  []float32{1, 0, 0},
	}
	got := FromModel(md)
	if got.Name != "m" || got.VertexCount() != 1 || len(got.Tangents) != 3 {
		t.Errorf("FromModel() = %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestFromTerrain(t *testing.T) {
	g, err := terrain.NewHeightGrid([][]float32{{0, 0}, {0, 0}}, terrain.GridOptions{Size: 1})
	if err != nil {
		t.Fatalf("NewHeightGrid failed: %v", err)
	}
	got := FromTerrain("t", terrain.BuildMesh(g))
	if got.VertexCount() != 4 || got.IndexCount() != 6 {
		t.Errorf("FromTerrain() has %d vertices and %d indices, want 4 and 6", got.VertexCount(), got.IndexCount())
	}
	if got.Tangents != nil {
		t.Error("terrain mesh should carry no tangents")
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
