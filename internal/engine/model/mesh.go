package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/groundwork/pkg/formats"
	gmath "github.com/Faultbox/groundwork/pkg/math"
)

// Mesh build errors.
var (
	ErrEmptyModel         = errors.New("model has no positions or faces")
	ErrIncompleteTriangle = errors.New("corner count is not a multiple of 3")
	ErrPositionOutOfRange = errors.New("position index out of range")
	ErrTexCoordOutOfRange = errors.New("texture coordinate index out of range")
	ErrNormalOutOfRange   = errors.New("normal index out of range")
)

// CornerError reports a face corner that references a missing attribute.
// The whole load fails: skipping the face would shift every later index.
type CornerError struct {
	File   string
	Line   int
	Corner int // position in OBJ.Corners
	Err    error
}

func (e *CornerError) Error() string {
	return fmt.Sprintf("%s:%d: corner %d: %v", e.File, e.Line, e.Corner, e.Err)
}

func (e *CornerError) Unwrap() error {
	return e.Err
}

// builder owns the scratch state of a single mesh build.
type builder struct {
	obj      *formats.OBJ
	vertices []Vertex
	indices  []uint32
}

// Build converts parsed OBJ data into indexed vertex buffers.
//
// Corners that share a position and the same (texcoord, normal) pair reuse one
// output vertex; a position referenced with N distinct pairs produces N output
// vertices. Positions no face uses still get an output vertex (with attribute
// pair (0,0)) but are never indexed.
func Build(obj *formats.OBJ, opts BuildOptions) (*MeshData, error) {
	if len(obj.Positions) == 0 || len(obj.Corners) == 0 {
		return nil, fmt.Errorf("%s: %w", obj.Name, ErrEmptyModel)
	}
	if len(obj.Corners)%3 != 0 {
		return nil, fmt.Errorf("%s: %w", obj.Name, ErrIncompleteTriangle)
	}

	b := &builder{
		obj:      obj,
		vertices: make([]Vertex, len(obj.Positions), len(obj.Positions)+len(obj.Positions)/2),
		indices:  make([]uint32, 0, len(obj.Corners)),
	}
	for i, p := range obj.Positions {
		b.vertices[i] = Vertex{
			Position:    p,
			TexCoord:    NoIndex,
			Normal:      NoIndex,
			OutputIndex: i,
			Next:        NoIndex,
		}
	}

	for i, c := range obj.Corners {
		if err := b.checkCorner(c); err != nil {
			return nil, &CornerError{File: obj.Name, Line: c.Line, Corner: i, Err: err}
		}
		b.indices = append(b.indices, uint32(b.resolve(c.Position, c.TexCoord, c.Normal)))
	}

	b.defaultOrphans()

	if opts.Tangents {
		b.accumulateTangents()
	}

	return b.emit(opts), nil
}

func (b *builder) checkCorner(c formats.OBJCorner) error {
	if c.Position < 0 || c.Position >= len(b.obj.Positions) {
		return fmt.Errorf("%w: %d (have %d)", ErrPositionOutOfRange, c.Position+1, len(b.obj.Positions))
	}
	if c.TexCoord < 0 || c.TexCoord >= len(b.obj.TexCoords) {
		return fmt.Errorf("%w: %d (have %d)", ErrTexCoordOutOfRange, c.TexCoord+1, len(b.obj.TexCoords))
	}
	if c.Normal < 0 || c.Normal >= len(b.obj.Normals) {
		return fmt.Errorf("%w: %d (have %d)", ErrNormalOutOfRange, c.Normal+1, len(b.obj.Normals))
	}
	return nil
}

// resolve returns the output index for a corner, claiming the root vertex,
// reusing a vertex in the duplicate chain, or appending a new duplicate.
func (b *builder) resolve(position, texCoord, normal int) int {
	root := &b.vertices[position]
	if !root.IsSet() {
		root.TexCoord = texCoord
		root.Normal = normal
		return root.OutputIndex
	}

	last := position
	for i := position; i != NoIndex; i = b.vertices[i].Next {
		if b.vertices[i].HasAttributes(texCoord, normal) {
			return b.vertices[i].OutputIndex
		}
		last = i
	}

	// Arena index doubles as output index.
	idx := len(b.vertices)
	b.vertices = append(b.vertices, Vertex{
		Position:    b.vertices[position].Position,
		TexCoord:    texCoord,
		Normal:      normal,
		OutputIndex: idx,
		Next:        NoIndex,
	})
	b.vertices[last].Next = idx
	return idx
}

// defaultOrphans gives unused positions attribute pair (0,0) so emission stays
// in range. At least one corner passed checkCorner, so both tables are non-empty.
func (b *builder) defaultOrphans() {
	for i := range b.vertices {
		if !b.vertices[i].IsSet() {
			b.vertices[i].TexCoord = 0
			b.vertices[i].Normal = 0
		}
	}
}

func (b *builder) emit(opts BuildOptions) *MeshData {
	n := len(b.vertices)
	md := &MeshData{
		Name:      b.obj.Name,
		Positions: make([]float32, n*3),
		TexCoords: make([]float32, n*2),
		Normals:   make([]float32, n*3),
		Indices:   b.indices,
		Bounds:    gmath.EmptyBounds(),
	}
	if opts.Tangents {
		md.Tangents = make([]float32, n*3)
	}

	for i := range b.vertices {
		v := &b.vertices[i]
		uv := b.obj.TexCoords[v.TexCoord]
		normal := b.obj.Normals[v.Normal]

		copy(md.Positions[i*3:i*3+3], v.Position[:])
		md.TexCoords[i*2] = uv.X()
		md.TexCoords[i*2+1] = 1 - uv.Y()
		copy(md.Normals[i*3:i*3+3], normal[:])
		if opts.Tangents {
			copy(md.Tangents[i*3:i*3+3], v.Tangent[:])
		}

		if l := v.Position.Len(); l > md.FurthestPoint {
			md.FurthestPoint = l
		}
		md.Bounds.Extend(v.Position)
	}

	return md
}
