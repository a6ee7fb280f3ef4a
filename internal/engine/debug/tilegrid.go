package debug

import "github.com/Faultbox/groundwork/internal/engine/terrain"

// GridLines drapes a wireframe over a height grid, one line along every
// `every`-th row and column, lifted by lift to avoid z-fighting. Positions
// are in world space.
func GridLines(g *terrain.HeightGrid, every int, lift float32) []float32 {
	if every < 1 {
		every = 1
	}
	n := g.Resolution()
	cell := g.CellSize()
	opts := g.Options()

	point := func(row, col int) (float32, float32, float32) {
		return opts.OriginX + float32(col)*cell, g.At(row, col) + lift, opts.OriginZ + float32(row)*cell
	}

	var out []float32
	segment := func(r0, c0, r1, c1 int) {
		x0, y0, z0 := point(r0, c0)
		x1, y1, z1 := point(r1, c1)
		out = append(out, x0, y0, z0, x1, y1, z1)
	}

	for row := 0; row < n; row += every {
		for col := 0; col < n-1; col++ {
			segment(row, col, row, col+1)
		}
	}
	for col := 0; col < n; col += every {
		for row := 0; row < n-1; row++ {
			segment(row, col, row+1, col)
		}
	}
	return out
}
