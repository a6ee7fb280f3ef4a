// Package session holds the interactive state both viewer front ends share:
// cameras, the walking body, the selected instance and the debug overlays.
// It draws nothing itself.
package session

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/config"
	"github.com/Faultbox/groundwork/internal/engine/camera"
	"github.com/Faultbox/groundwork/internal/engine/character"
	"github.com/Faultbox/groundwork/internal/engine/debug"
	"github.com/Faultbox/groundwork/internal/engine/navigation"
	"github.com/Faultbox/groundwork/internal/engine/picking"
	"github.com/Faultbox/groundwork/internal/engine/scene"
	"github.com/Faultbox/groundwork/internal/logger"
)

// PickDistance bounds the terrain ray march of a mouse click.
const PickDistance = 2000

// Debug line settings.
const (
	gridEvery    = 8
	gridLift     = 0.05
	vectorLength = 0.5
)

func log() *zap.Logger {
	return logger.Named("session")
}

// Mode selects how the camera is driven.
type Mode int

const (
	ModeOrbit Mode = iota // free orbit around the terrain, click to send the body
	ModeWalk              // first person from the body
)

func (m Mode) String() string {
	if m == ModeWalk {
		return "walk"
	}
	return "orbit"
}

// Controls is one frame of movement input, each axis in [-1, 1].
type Controls struct {
	Forward, Right, Up float32
	// Mouse motion in pixels. In orbit mode it rotates the camera only
	// while Drag is set.
	LookX, LookY float32
	Drag         bool
}

// Lines is a batch of world-space segments with one color.
type Lines struct {
	Vertices []float32
	Color    mgl32.Vec3
}

// Session is the state of one interactive viewing.
type Session struct {
	Scene *scene.Scene
	Body  *character.Body
	Orbit *camera.OrbitCamera
	Eye   *camera.FirstPersonCamera
	Mode  Mode
	Seed  int64

	ShowGrid     bool
	ShowNormals  bool
	ShowTangents bool

	// Selected is the instance index picked last, or -1.
	Selected int

	Frames debug.FrameStats
	Counts debug.SceneStats

	router       *navigation.Router
	gridLines    []float32
	normalLines  []float32
	tangentLines []float32
}

// New places the body at the middle of s and fits the orbit camera to it.
func New(cfg *config.Config, s *scene.Scene) *Session {
	ss := &Session{
		Scene:    s,
		Orbit:    camera.NewOrbitCamera(),
		Eye:      camera.NewFirstPersonCamera(),
		Seed:     cfg.Scatter.Seed,
		Selected: -1,
		Counts:   debug.CountScene(s),
		router:   navigation.NewRouter(s.Terrain, cfg.Physics.MaxSlope),
	}

	ss.Orbit.FitToBounds(s.Bounds.Min, s.Bounds.Max)
	ss.Body = character.NewBody(s.Center())
	ss.Body.Speed = cfg.Physics.Speed
	ss.Body.JumpSpeed = cfg.Physics.JumpSpeed
	ss.Body.Gravity = cfg.Physics.Gravity
	ss.Body.Update(0, s)

	for _, t := range s.Terrain.Tiles() {
		ss.gridLines = append(ss.gridLines, debug.GridLines(t.Grid, gridEvery, gridLift)...)
	}
	ss.normalLines = debug.InstanceLines(s, func(m scene.GPUMesh) []float32 {
		return debug.NormalLines(m, vectorLength)
	})
	ss.tangentLines = debug.InstanceLines(s, func(m scene.GPUMesh) []float32 {
		return debug.TangentLines(m, vectorLength)
	})
	return ss
}

// SetMode switches the camera mode.
func (ss *Session) SetMode(m Mode) {
	ss.Mode = m
	log().Info("camera mode", zap.Stringer("mode", m))
}

// ToggleMode switches between orbit and walk.
func (ss *Session) ToggleMode() {
	ss.SetMode(1 - ss.Mode)
}

// View returns the view matrix of the current mode.
func (ss *Session) View() mgl32.Mat4 {
	if ss.Mode == ModeWalk {
		return ss.Eye.ViewMatrix(ss.Body)
	}
	return ss.Orbit.ViewMatrix()
}

// ViewProj returns projection times view for a width x height viewport.
func (ss *Session) ViewProj(width, height int) mgl32.Mat4 {
	return camera.Projection(width, height).Mul4(ss.View())
}

// Pick handles a click along r. A model instance under the ray is selected
// and the body walks to its base; otherwise the body walks to the terrain
// point under the ray. It reports whether anything was hit.
func (ss *Session) Pick(r picking.Ray) bool {
	if i, _, ok := ss.Scene.PickInstance(r); ok {
		ss.Selected = i
		pos := ss.Scene.Instances[i].Transform.Col(3)
		log().Debug("instance selected", zap.Int("index", i), zap.String("mesh", ss.Scene.Meshes[ss.Scene.Instances[i].Mesh].Name))
		ss.walkTo(pos.X(), pos.Z())
		return true
	}

	hit, ok := r.IntersectGround(ss.Scene, PickDistance, picking.DefaultStep)
	if !ok {
		return false
	}
	ss.Selected = -1
	ss.walkTo(hit.X(), hit.Z())
	return true
}

func (ss *Session) walkTo(x, z float32) {
	from := ss.Body.Position
	path, direct := ss.router.Route(from.X(), from.Z(), x, z)
	switch {
	case path == nil:
		log().Debug("no walkable path", zap.Float32("x", x), zap.Float32("z", z))
	case direct:
		ss.Body.SetDestination(x, z)
		log().Debug("destination set", zap.Float32("x", x), zap.Float32("z", z))
	default:
		ss.Body.FollowPath(path)
		log().Debug("path set", zap.Int("waypoints", len(path)))
	}
}

// Update advances one frame of dt seconds.
func (ss *Session) Update(dt float32, c Controls) {
	switch ss.Mode {
	case ModeWalk:
		ss.Body.Look(c.LookX, c.LookY)
		ss.Body.Move(c.Forward, c.Right, dt)
	case ModeOrbit:
		if c.Drag {
			ss.Orbit.HandleDrag(c.LookX, c.LookY)
		}
		ss.Orbit.HandleMovement(c.Forward*dt*10, c.Right*dt*10, c.Up*dt*10)
	}
	ss.Body.Update(dt, ss.Scene)
	ss.Frames.Update(float64(dt) * 1000)
}

// Jump makes the body jump in walk mode.
func (ss *Session) Jump() {
	if ss.Mode == ModeWalk {
		ss.Body.Jump()
	}
}

// Overlays returns the debug lines to draw this frame.
func (ss *Session) Overlays() []Lines {
	var out []Lines
	if ss.Mode == ModeOrbit {
		p := ss.Body.Position
		marker := debug.BBoxWireframe([3]float32{p[0], p[1], p[2]}, [3]float32{p[0], p[1] + 2, p[2]}, 0.5)
		out = append(out, Lines{marker, mgl32.Vec3{1, 0.2, 0.2}})
	}
	if ss.Selected >= 0 {
		box := ss.Scene.InstanceAABB(ss.Selected)
		out = append(out, Lines{debug.BBoxWireframe(box.Min, box.Max, 0.1), mgl32.Vec3{1, 0.85, 0.1}})
	}
	if ss.ShowGrid {
		out = append(out, Lines{ss.gridLines, mgl32.Vec3{0.1, 0.1, 0.1}})
	}
	if ss.ShowNormals {
		out = append(out, Lines{ss.normalLines, mgl32.Vec3{0.2, 0.4, 1}})
	}
	if ss.ShowTangents {
		out = append(out, Lines{ss.tangentLines, mgl32.Vec3{1, 0.3, 0.3}})
	}
	return out
}

// SelectedName returns the mesh name of the selected instance, or "".
func (ss *Session) SelectedName() string {
	if ss.Selected < 0 {
		return ""
	}
	return ss.Scene.Meshes[ss.Scene.Instances[ss.Selected].Mesh].Name
}

// Status is the one-line summary for window titles.
func (ss *Session) Status() string {
	p := ss.Body.Position
	return debug.StatusLine(&ss.Frames, p, ss.Scene.Terrain.TileAt(p.X(), p.Z()))
}
