// Package math provides small geometry helpers shared by the mesh builders.
package math

// Bounds is an axis-aligned bounding box. The zero value is a degenerate box
// at the origin; start from EmptyBounds when extending point by point.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns an inverted box that the first Extend collapses onto
// its point.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows b to contain o. Empty boxes are ignored.
func (b *Bounds) Union(o Bounds) {
	if o.Empty() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Translate returns b moved by d.
func (b Bounds) Translate(d [3]float32) Bounds {
	for i := range 3 {
		b.Min[i] += d[i]
		b.Max[i] += d[i]
	}
	return b
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// BoundsOf returns the bounds of a flat xyz position array.
func BoundsOf(positions []float32) Bounds {
	b := EmptyBounds()
	for i := 0; i+2 < len(positions); i += 3 {
		b.Extend([3]float32{positions[i], positions[i+1], positions[i+2]})
	}
	return b
}
