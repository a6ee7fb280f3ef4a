package model

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// isFinite reports whether every component of v is a real number.
func isFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return false
		}
	}
	return true
}
