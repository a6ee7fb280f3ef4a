package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/character"
)

func toView(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestOrbitCamera_Position(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{10, 0, 10}
	c.Distance = 5
	c.RotationX = 0
	c.RotationY = 0

	if got, want := c.Position(), (mgl32.Vec3{10, 0, 15}); !near(got, want, 1e-5) {
		t.Errorf("Position() = %v, want %v", got, want)
	}

	got := toView(c.ViewMatrix(), c.Center)
	if want := (mgl32.Vec3{0, 0, -5}); !near(got, want, 1e-4) {
		t.Errorf("center in view space = %v, want %v", got, want)
	}
}

func TestOrbitCamera_Clamps(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want MaxPitch %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want MinPitch %v", c.RotationX, c.MinPitch)
	}

	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want MinDistance %v", c.Distance, c.MinDistance)
	}
	c.HandleZoom(-1e6)
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want MaxDistance %v", c.Distance, c.MaxDistance)
	}
}

func TestOrbitCamera_HandleMovement(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 100
	c.HandleMovement(1, 0, 0)

	// Yaw 0 puts the camera on +Z, so forward pans towards -Z.
	if want := (mgl32.Vec3{0, 0, -1}); !near(c.Center, want, 1e-4) {
		t.Errorf("Center = %v, want %v", c.Center, want)
	}
}

func TestOrbitCamera_FitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds([3]float32{-800, -40, -800}, [3]float32{0, 40, 0})

	if want := (mgl32.Vec3{-400, 0, -400}); !near(c.Center, want, 1e-4) {
		t.Errorf("Center = %v, want %v", c.Center, want)
	}
	if c.Distance != 640 {
		t.Errorf("Distance = %v, want 640", c.Distance)
	}
}

func TestFirstPersonCamera_ViewMatrix(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		offset     mgl32.Vec3 // from the eye, world space
		want       mgl32.Vec3
	}{
		{"facing -Z", 0, 0, mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, -5}},
		{"facing +X", 90, 0, mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 0, -5}},
		{"right of +X is +Z", 90, 0, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{5, 0, 0}},
		{"pitched down", 0, 45, mgl32.Vec3{0, -1, -1}, mgl32.Vec3{0, 0, -1.4142135}},
	}

	c := NewFirstPersonCamera()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := character.NewBody(mgl32.Vec3{3, 1, -2})
			b.Yaw = tt.yaw
			b.Pitch = tt.pitch

			p := c.Position(b).Add(tt.offset)
			got := toView(c.ViewMatrix(b), p)
			if !near(got, tt.want, 1e-4) {
				t.Errorf("view(%v) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestProjection(t *testing.T) {
	p := Projection(1280, 720)
	near := p.Mul4x1(mgl32.Vec4{0, 0, -NearPlane, 1})
	if z := near.Z() / near.W(); z < -1-1e-4 || z > -1+1e-4 {
		t.Errorf("near plane depth = %v, want -1", z)
	}

	if got := Projection(100, 0); got != Projection(1, 1) {
		t.Errorf("Projection with zero height = %v, want square aspect", got)
	}
}

// near reports whether a and b are within eps of each other.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}
