package model

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTangent stands in for triangles whose UV mapping has zero area.
var DefaultTangent = mgl32.Vec3{1, 0, 0}

// Determinants smaller than this are treated as a degenerate UV mapping.
const degenerateUVEpsilon = 1e-12

// TriangleTangent returns the tangent of a triangle from its positions and
// texture coordinates. ok is false when the UV mapping is degenerate, in which
// case DefaultTangent is returned.
func TriangleTangent(p0, p1, p2 mgl32.Vec3, t0, t1, t2 mgl32.Vec2) (tangent mgl32.Vec3, ok bool) {
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	dUV1 := t1.Sub(t0)
	dUV2 := t2.Sub(t0)

	det := dUV1.X()*dUV2.Y() - dUV1.Y()*dUV2.X()
	if gomath.Abs(float64(det)) < degenerateUVEpsilon {
		return DefaultTangent, false
	}

	r := 1 / det
	tangent = edge1.Mul(dUV2.Y()).Sub(edge2.Mul(dUV1.Y())).Mul(r)
	if !isFinite(tangent) {
		return DefaultTangent, false
	}
	return tangent, true
}

// AverageTangent normalizes the sum of contributions. No contributions yield
// the zero vector; contributions that cancel out yield DefaultTangent.
func AverageTangent(contributions []mgl32.Vec3) mgl32.Vec3 {
	if len(contributions) == 0 {
		return mgl32.Vec3{}
	}

	var sum mgl32.Vec3
	for _, t := range contributions {
		sum = sum.Add(t)
	}

	l := sum.Len()
	if l == 0 || !isFinite(sum) || gomath.IsInf(float64(l), 0) {
		return DefaultTangent
	}
	return sum.Mul(1 / l)
}

// accumulateTangents walks the final index buffer, so contributions land on
// output vertices (duplicates included) rather than on raw positions.
func (b *builder) accumulateTangents() {
	tc := b.obj.TexCoords
	degenerate := 0

	for i := 0; i+2 < len(b.indices); i += 3 {
		v0 := &b.vertices[b.indices[i]]
		v1 := &b.vertices[b.indices[i+1]]
		v2 := &b.vertices[b.indices[i+2]]

		t, ok := TriangleTangent(
			v0.Position, v1.Position, v2.Position,
			tc[v0.TexCoord], tc[v1.TexCoord], tc[v2.TexCoord],
		)
		if !ok {
			degenerate++
		}

		v0.Tangents = append(v0.Tangents, t)
		v1.Tangents = append(v1.Tangents, t)
		v2.Tangents = append(v2.Tangents, t)
	}

	for i := range b.vertices {
		b.vertices[i].Tangent = AverageTangent(b.vertices[i].Tangents)
	}

	if degenerate > 0 {
		log().Sugar().Debugf("%s: %d triangles with degenerate UVs used the default tangent", b.obj.Name, degenerate)
	}
}
