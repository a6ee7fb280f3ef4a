// Package navigation finds walkable paths across terrain.
package navigation

import (
	"container/heap"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

// DefaultMaxSlope is the steepest rise over run a body can walk.
const DefaultMaxSlope = 1.0

// PathNode represents a node in the A* search. Nodes are height grid
// vertices addressed by column (x) and row (z).
type PathNode struct {
	Col, Row int
	G        float32 // Cost from start
	H        float32 // Heuristic (estimated cost to goal)
	F        float32 // Total cost (G + H)
	Parent   *PathNode
	Index    int // Index in heap
}

// PathHeap implements a priority queue for A* pathfinding.
type PathHeap []*PathNode

func (h PathHeap) Len() int           { return len(h) }
func (h PathHeap) Less(i, j int) bool { return h[i].F < h[j].F }
func (h PathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *PathHeap) Push(x any) {
	node := x.(*PathNode)
	node.Index = len(*h)
	*h = append(*h, node)
}

func (h *PathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[:n-1]
	return node
}

// PathFinder searches one height grid. A vertex is walkable when the slope
// to each of its four neighbours is at most the maximum slope.
type PathFinder struct {
	grid     *terrain.HeightGrid
	n        int
	cell     float32
	walkable []bool
}

// directions for 8-way movement; odd entries are diagonal.
var directions = [8][2]int{
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
}

const (
	straightCost = float32(1.0)
	diagonalCost = float32(gomath.Sqrt2)
)

// NewPathFinder precomputes walkability for g.
func NewPathFinder(g *terrain.HeightGrid, maxSlope float32) *PathFinder {
	n := g.Resolution()
	pf := &PathFinder{
		grid:     g,
		n:        n,
		cell:     g.CellSize(),
		walkable: make([]bool, n*n),
	}

	maxRise := maxSlope * pf.cell
	for row := range n {
		for col := range n {
			h := g.At(row, col)
			ok := true
			for i := 0; i < len(directions); i += 2 {
				c, r := col+directions[i][0], row+directions[i][1]
				if !pf.inBounds(c, r) {
					continue
				}
				if abs32(g.At(r, c)-h) > maxRise {
					ok = false
					break
				}
			}
			pf.walkable[pf.key(col, row)] = ok
		}
	}
	return pf
}

// FindPath finds a path between two grid vertices using A*.
// The path includes both ends. Returns nil if no path exists.
func (pf *PathFinder) FindPath(startCol, startRow, goalCol, goalRow int) [][2]int {
	if !pf.IsWalkable(startCol, startRow) || !pf.IsWalkable(goalCol, goalRow) {
		return nil
	}

	openSet := &PathHeap{}
	heap.Init(openSet)

	closedSet := make(map[int]bool)
	nodeMap := make(map[int]*PathNode)

	start := &PathNode{Col: startCol, Row: startRow, H: heuristic(startCol, startRow, goalCol, goalRow)}
	start.F = start.H
	heap.Push(openSet, start)
	nodeMap[pf.key(startCol, startRow)] = start

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PathNode)
		if current.Col == goalCol && current.Row == goalRow {
			return reconstructPath(current)
		}
		closedSet[pf.key(current.Col, current.Row)] = true

		for i, dir := range directions {
			nc, nr := current.Col+dir[0], current.Row+dir[1]
			if !pf.IsWalkable(nc, nr) || closedSet[pf.key(nc, nr)] {
				continue
			}

			moveCost := straightCost
			if i%2 == 1 {
				moveCost = diagonalCost
				// Diagonals may not cut corners.
				if !pf.IsWalkable(current.Col+dir[0], current.Row) ||
					!pf.IsWalkable(current.Col, current.Row+dir[1]) {
					continue
				}
			}
			g := current.G + moveCost

			neighbor, exists := nodeMap[pf.key(nc, nr)]
			if !exists {
				neighbor = &PathNode{
					Col:    nc,
					Row:    nr,
					G:      g,
					H:      heuristic(nc, nr, goalCol, goalRow),
					Parent: current,
				}
				neighbor.F = neighbor.G + neighbor.H
				nodeMap[pf.key(nc, nr)] = neighbor
				heap.Push(openSet, neighbor)
			} else if g < neighbor.G {
				neighbor.G = g
				neighbor.F = neighbor.G + neighbor.H
				neighbor.Parent = current
				heap.Fix(openSet, neighbor.Index)
			}
		}
	}

	return nil
}

// IsWalkable reports whether a grid vertex exists and is walkable.
func (pf *PathFinder) IsWalkable(col, row int) bool {
	return pf.inBounds(col, row) && pf.walkable[pf.key(col, row)]
}

// VertexAt returns the grid vertex nearest to world (x, z), clamped to the grid.
func (pf *PathFinder) VertexAt(x, z float32) (col, row int) {
	opts := pf.grid.Options()
	col = int(gomath.Round(float64((x - opts.OriginX) / pf.cell)))
	row = int(gomath.Round(float64((z - opts.OriginZ) / pf.cell)))
	return clamp(col, 0, pf.n-1), clamp(row, 0, pf.n-1)
}

// WorldPath returns (x, z) waypoints from (fromX, fromZ) to (toX, toZ). The
// start vertex is dropped and the last waypoint is the exact destination.
// Returns nil if the destination cannot be reached.
func (pf *PathFinder) WorldPath(fromX, fromZ, toX, toZ float32) []mgl32.Vec2 {
	sc, sr := pf.VertexAt(fromX, fromZ)
	gc, gr := pf.VertexAt(toX, toZ)
	path := pf.FindPath(sc, sr, gc, gr)
	if path == nil {
		return nil
	}

	opts := pf.grid.Options()
	points := make([]mgl32.Vec2, 0, len(path))
	for _, p := range path[1:] {
		points = append(points, mgl32.Vec2{
			opts.OriginX + float32(p[0])*pf.cell,
			opts.OriginZ + float32(p[1])*pf.cell,
		})
	}
	if len(points) == 0 {
		return []mgl32.Vec2{{toX, toZ}}
	}
	points[len(points)-1] = mgl32.Vec2{toX, toZ}
	return points
}

// heuristic is the octile distance between two vertices.
func heuristic(c1, r1, c2, r2 int) float32 {
	dx := abs(c2 - c1)
	dy := abs(r2 - r1)
	if dx < dy {
		return float32(dx)*diagonalCost + float32(dy-dx)
	}
	return float32(dy)*diagonalCost + float32(dx-dy)
}

func (pf *PathFinder) inBounds(col, row int) bool {
	return col >= 0 && col < pf.n && row >= 0 && row < pf.n
}

func (pf *PathFinder) key(col, row int) int {
	return row*pf.n + col
}

func reconstructPath(node *PathNode) [][2]int {
	var path [][2]int
	for node != nil {
		path = append(path, [2]int{node.Col, node.Row})
		node = node.Parent
	}
	// Built from goal to start
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
