package character

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Look rotates the body by mouse motion. Pitch is clamped to [-90, 90] and
// yaw wrapped to [0, 360).
func (b *Body) Look(dx, dy float32) {
	b.Pitch = mgl32.Clamp(b.Pitch+dy*MouseSensitivity, -90, 90)

	yaw := float32(gomath.Mod(float64(b.Yaw+dx*MouseSensitivity), 360))
	if yaw < 0 {
		yaw += 360
	}
	b.Yaw = yaw
}

// Forward returns the unit direction the body faces on the XZ plane.
func (b *Body) Forward() mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(b.Yaw))
	return mgl32.Vec3{float32(gomath.Sin(rad)), 0, -float32(gomath.Cos(rad))}
}

// Right returns the unit direction to the body's right on the XZ plane.
func (b *Body) Right() mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(b.Yaw))
	return mgl32.Vec3{float32(gomath.Cos(rad)), 0, float32(gomath.Sin(rad))}
}

// Move walks the body relative to its facing. forward and right are axis
// inputs, typically -1, 0 or 1. Manual movement cancels click-to-move.
func (b *Body) Move(forward, right, dt float32) {
	if forward == 0 && right == 0 {
		return
	}
	b.ClearDestination()

	step := b.Forward().Mul(forward).Add(b.Right().Mul(right)).Mul(b.Speed * dt)
	b.Position[0] += step[0]
	b.Position[2] += step[2]
}

// SetDestination starts click-to-move navigation straight towards (x, z).
func (b *Body) SetDestination(x, z float32) {
	b.DestX = x
	b.DestZ = z
	b.HasDestination = true
	b.Waypoints = nil
}

// FollowPath walks through points in order. An empty path stops navigation.
func (b *Body) FollowPath(points []mgl32.Vec2) {
	if len(points) == 0 {
		b.ClearDestination()
		return
	}
	b.SetDestination(points[0].X(), points[0].Y())
	b.Waypoints = points[1:]
}

// ClearDestination stops click-to-move navigation.
func (b *Body) ClearDestination() {
	b.HasDestination = false
	b.Moving = false
	b.Waypoints = nil
}

// Jump launches the body upwards. It has no effect while already airborne.
func (b *Body) Jump() {
	if b.Jumping {
		return
	}
	b.Jumping = true
	b.VerticalVelocity = b.JumpSpeed
}

// Update advances navigation and vertical motion by dt seconds. While
// grounded the body is snapped to the terrain; while jumping it follows its
// vertical velocity and lands once it drops below the terrain.
func (b *Body) Update(dt float32, ground Ground) {
	b.updateNavigation(dt)

	var height float32
	if ground != nil {
		height = ground.HeightAt(b.Position.X(), b.Position.Z())
	}

	if !b.Jumping {
		b.Position[1] = height
		return
	}

	b.Position[1] += b.VerticalVelocity * dt
	b.VerticalVelocity += b.Gravity * dt

	if b.Position[1] < height {
		b.Position[1] = height
		b.Jumping = false
		b.VerticalVelocity = 0
	}
}

func (b *Body) updateNavigation(dt float32) {
	if !b.HasDestination {
		return
	}

	dx := b.DestX - b.Position.X()
	dz := b.DestZ - b.Position.Z()
	dist := float32(gomath.Sqrt(float64(dx*dx + dz*dz)))

	if dist < ArrivalThreshold {
		if len(b.Waypoints) == 0 {
			b.ClearDestination()
			return
		}
		next := b.Waypoints[0]
		b.DestX, b.DestZ = next.X(), next.Y()
		b.Waypoints = b.Waypoints[1:]
		return
	}

	dx /= dist
	dz /= dist

	moveAmount := b.Speed * dt
	if moveAmount > dist {
		moveAmount = dist
	}

	b.Position[0] += dx * moveAmount
	b.Position[2] += dz * moveAmount
	b.Moving = true

	// Face the direction of travel.
	yaw := mgl32.RadToDeg(float32(gomath.Atan2(float64(dx), float64(-dz))))
	if yaw < 0 {
		yaw += 360
	}
	b.Yaw = yaw
}
