package terrain

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// HeightAt returns the terrain height at world (x, z), interpolated across the
// triangle of the grid cell containing the point. Points whose cell lies
// outside the grid return 0.
func (g *HeightGrid) HeightAt(x, z float32) float32 {
	col, fracX, okX := g.locate(x - g.opts.OriginX)
	row, fracZ, okZ := g.locate(z - g.opts.OriginZ)
	if !okX || !okZ {
		return 0
	}
	pos := mgl32.Vec2{fracX, fracZ}

	h := g.heights
	if fracX <= 1-fracZ {
		return Barycentric(
			mgl32.Vec3{0, h[row][col], 0},
			mgl32.Vec3{1, h[row][col+1], 0},
			mgl32.Vec3{0, h[row+1][col], 1},
			pos,
		)
	}
	return Barycentric(
		mgl32.Vec3{1, h[row][col+1], 0},
		mgl32.Vec3{1, h[row+1][col+1], 1},
		mgl32.Vec3{0, h[row+1][col], 1},
		pos,
	)
}

// locate returns the cell index along one axis and the position inside it in
// [0, 1]. Index and fraction come from the same quotient so a point just
// below a cell boundary never lands a full cell off.
func (g *HeightGrid) locate(local float32) (idx int, frac float32, ok bool) {
	last := len(g.heights) - 1
	if local < 0 || local >= g.opts.Size {
		return 0, 0, false
	}

	f := local / g.cell
	idx = int(gomath.Floor(float64(f)))
	if idx >= last {
		// local is inside the grid but the quotient rounded up onto the far edge.
		idx = last - 1
	}
	frac = min(max(f-float32(idx), 0), 1)
	return idx, frac, true
}

// Barycentric interpolates the Y of triangle p1,p2,p3 at pos, where pos.X and
// pos.Y are coordinates on the triangle's XZ plane.
func Barycentric(p1, p2, p3 mgl32.Vec3, pos mgl32.Vec2) float32 {
	det := (p2.Z()-p3.Z())*(p1.X()-p3.X()) + (p3.X()-p2.X())*(p1.Z()-p3.Z())
	l1 := ((p2.Z()-p3.Z())*(pos.X()-p3.X()) + (p3.X()-p2.X())*(pos.Y()-p3.Z())) / det
	l2 := ((p3.Z()-p1.Z())*(pos.X()-p3.X()) + (p1.X()-p3.X())*(pos.Y()-p3.Z())) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y() + l2*p2.Y() + l3*p3.Y()
}
