// Package debug builds line geometry and screenshots for inspecting the scene.
package debug

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 1.0

// BBoxWireframe creates line vertices for a wireframe bounding box, expanded
// by padding on every side. Format: [x, y, z] per vertex, two per edge.
func BBoxWireframe(minB, maxB [3]float32, padding float32) []float32 {
	minX, minY, minZ := minB[0]-padding, minB[1]-padding, minB[2]-padding
	maxX, maxY, maxZ := maxB[0]+padding, maxB[1]+padding, maxB[2]+padding

	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
