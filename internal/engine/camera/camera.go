// Package camera provides the view and projection matrices of the viewer.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/character"
)

// Projection defaults.
const (
	FieldOfView = 70.0 // degrees, vertical
	NearPlane   = 0.1
	FarPlane    = 5000.0
)

// Projection returns the perspective matrix for a viewport.
func Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		RotationX:       0.5,
		MinDistance:     5.0,
		MaxDistance:     4000.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	offset := mgl32.Vec3{
		float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
	}
	return c.Center.Add(offset.Mul(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point relative to the current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sin := float32(gomath.Sin(float64(c.RotationY)))
	cos := float32(gomath.Cos(float64(c.RotationY)))

	// W moves "into" the scene, away from the camera
	c.Center[0] += (-sin*forward + cos*right) * speed
	c.Center[2] += (-cos*forward - sin*right) * speed
	c.Center[1] += up * speed
}

// FitToBounds adjusts camera to view the given bounding box.
func (c *OrbitCamera) FitToBounds(minB, maxB [3]float32) {
	c.Center = mgl32.Vec3{
		(minB[0] + maxB[0]) / 2,
		(minB[1] + maxB[1]) / 2,
		(minB[2] + maxB[2]) / 2,
	}

	size := max(maxB[0]-minB[0], maxB[2]-minB[2])
	c.Distance = mgl32.Clamp(size*0.8, c.MinDistance, c.MaxDistance)

	c.RotationX = 0.6 // ~35 degrees down
	c.RotationY = 0.0
}

// FirstPersonCamera looks out of a character body.
type FirstPersonCamera struct {
	EyeHeight float32
}

// NewFirstPersonCamera returns a camera with the eye slightly above the feet.
func NewFirstPersonCamera() *FirstPersonCamera {
	return &FirstPersonCamera{EyeHeight: 2}
}

// Position returns the eye position for b.
func (c *FirstPersonCamera) Position(b *character.Body) mgl32.Vec3 {
	return b.Position.Add(mgl32.Vec3{0, c.EyeHeight, 0})
}

// ViewMatrix returns the view of b: pitch about X, then yaw about Y, then the
// eye translation. Positive pitch looks down.
func (c *FirstPersonCamera) ViewMatrix(b *character.Body) mgl32.Mat4 {
	eye := c.Position(b)
	return mgl32.HomogRotate3DX(mgl32.DegToRad(b.Pitch)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(b.Yaw))).
		Mul4(mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z()))
}
