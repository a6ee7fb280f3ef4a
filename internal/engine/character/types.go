// Package character moves a body across terrain: walking, click-to-move
// navigation and jumping under gravity.
package character

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/terrain"
)

// Movement defaults.
const (
	DefaultSpeed     = 15.0  // world units per second
	DefaultJumpSpeed = 30.0  // initial upward velocity of a jump
	DefaultGravity   = -75.0 // vertical acceleration while airborne

	// MouseSensitivity converts mouse motion to degrees of rotation.
	MouseSensitivity = 0.2

	// ArrivalThreshold is the distance at which a body is considered to have
	// reached its destination.
	ArrivalThreshold = 0.5
)

// Body is a point that walks on the ground and can jump.
// Yaw 0 faces -Z; angles are in degrees.
type Body struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	VerticalVelocity float32
	Jumping          bool

	Speed     float32
	JumpSpeed float32
	Gravity   float32

	// Click-to-move navigation.
	DestX, DestZ   float32
	HasDestination bool
	Moving         bool
	// Waypoints still to visit after the destination, as (x, z).
	Waypoints []mgl32.Vec2
}

// Ground is the height query a body stands on.
type Ground = terrain.HeightQuery

// NewBody returns a body at pos with default movement parameters.
func NewBody(pos mgl32.Vec3) *Body {
	return &Body{
		Position:  pos,
		Speed:     DefaultSpeed,
		JumpSpeed: DefaultJumpSpeed,
		Gravity:   DefaultGravity,
	}
}
