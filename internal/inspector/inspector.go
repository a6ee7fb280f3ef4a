// Package inspector is the ImGui front end of the terrain viewer. It renders
// the scene offscreen, shows it behind a debug overlay and drives the same
// session as the SDL viewer.
package inspector

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/config"
	"github.com/Faultbox/groundwork/internal/engine/debug"
	"github.com/Faultbox/groundwork/internal/engine/framebuffer"
	"github.com/Faultbox/groundwork/internal/engine/lighting"
	"github.com/Faultbox/groundwork/internal/engine/picking"
	"github.com/Faultbox/groundwork/internal/engine/renderer"
	"github.com/Faultbox/groundwork/internal/engine/scene"
	"github.com/Faultbox/groundwork/internal/engine/ui"
	"github.com/Faultbox/groundwork/internal/logger"
	"github.com/Faultbox/groundwork/internal/session"
)

const windowTitle = "Groundwork Inspector"

func log() *zap.Logger {
	return logger.Named("inspector")
}

// Inspector is the ImGui application.
type Inspector struct {
	backend  *ui.Backend
	renderer *renderer.Renderer
	target   *framebuffer.Framebuffer
	meshes   []*renderer.Mesh

	session     *session.Session
	overlay     *ui.DebugOverlay
	screenshots *debug.ScreenshotCapture

	lastFrame  time.Time
	lastTitle  time.Time
	lastMouse  imgui.Vec2
	screenshot bool
}

// New opens the window and uploads s to the GPU.
func New(cfg *config.Config, s *scene.Scene) (*Inspector, error) {
	in := &Inspector{
		session:     session.New(cfg, s),
		overlay:     ui.NewDebugOverlay(),
		screenshots: debug.NewScreenshotCapture("screenshots", "inspector"),
	}

	var err error
	in.backend, err = ui.NewBackend(windowTitle, cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.Font)
	if err != nil {
		return nil, fmt.Errorf("failed to create UI backend: %w", err)
	}

	in.renderer, err = renderer.New(renderer.Config{Width: cfg.Graphics.Width, Height: cfg.Graphics.Height})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	in.renderer.LightDir = lighting.SunDirection(cfg.Graphics.Sun.Azimuth, cfg.Graphics.Sun.Elevation)

	in.target, err = framebuffer.New(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("failed to create scene target: %w", err)
	}

	in.meshes, err = renderer.UploadScene(s)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("failed to upload scene: %w", err)
	}

	log().Info("inspector initialized",
		zap.Int("meshes", len(in.meshes)),
		zap.Int("instances", len(s.Instances)),
	)
	return in, nil
}

// Run blocks until the window is closed.
func (in *Inspector) Run() {
	in.lastFrame = time.Now()
	in.lastTitle = in.lastFrame
	log().Info("starting main loop")
	in.backend.Run(in.frame)
}

func (in *Inspector) frame() {
	now := time.Now()
	dt := min(float32(now.Sub(in.lastFrame).Seconds()), 0.1)
	in.lastFrame = now

	pos, size := ui.Viewport()
	in.target.Resize(int32(size.X), int32(size.Y))
	if w, h := in.target.Size(); w != in.renderer.Width() || h != in.renderer.Height() {
		in.renderer.Resize(w, h)
	}

	in.handleKeys()
	hovered := ui.SceneImage(in.target.Texture(), pos, size)
	controls := in.handleMouse(hovered, pos, size)

	in.session.Update(dt, controls)
	in.overlay.Update(float64(dt) * 1000)
	in.overlay.Render(in.session)

	in.renderScene()
	if in.screenshot {
		in.screenshot = false
		w, h := in.target.Size()
		if _, err := in.screenshots.CaptureFromPixels(in.target.ReadPixels(), w, h); err != nil {
			log().Warn("screenshot failed", zap.Error(err))
		}
	}

	if now.Sub(in.lastTitle) >= time.Second {
		in.backend.SetWindowTitle(windowTitle + " | " + in.session.Status())
		in.lastTitle = now
	}
}

func (in *Inspector) handleKeys() {
	ss := in.session
	switch {
	case ui.KeyPressed(imgui.KeyTab):
		ss.ToggleMode()
	case ui.KeyPressed(imgui.KeySpace):
		ss.Jump()
	case ui.KeyPressed(imgui.KeyG):
		ss.ShowGrid = !ss.ShowGrid
	case ui.KeyPressed(imgui.KeyN):
		ss.ShowNormals = !ss.ShowNormals
	case ui.KeyPressed(imgui.KeyT):
		ss.ShowTangents = !ss.ShowTangents
	case ui.KeyPressed(imgui.KeyF12):
		in.screenshot = true
	}
}

// handleMouse reads the mouse over the scene image. Right drag orbits in
// orbit mode and looks around in walk mode; left click picks.
func (in *Inspector) handleMouse(hovered bool, pos, size imgui.Vec2) session.Controls {
	c := session.Controls{
		Forward: ui.Axis(imgui.KeyS, imgui.KeyW),
		Right:   ui.Axis(imgui.KeyA, imgui.KeyD),
		Up:      ui.Axis(imgui.KeyQ, imgui.KeyE),
	}

	mouse := imgui.MousePos()
	defer func() { in.lastMouse = mouse }()
	if !hovered {
		return c
	}

	if imgui.IsMouseDragging(imgui.MouseButtonRight) {
		c.LookX = mouse.X - in.lastMouse.X
		c.LookY = mouse.Y - in.lastMouse.Y
		c.Drag = true
	}

	if in.session.Mode != session.ModeOrbit {
		return c
	}
	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		in.session.Orbit.HandleZoom(wheel)
	}
	if imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
		in.pick(mouse.X-pos.X, mouse.Y-pos.Y, size)
	}
	return c
}

func (in *Inspector) pick(x, y float32, size imgui.Vec2) {
	r := picking.ScreenToRay(x, y, size.X, size.Y, in.viewProj().Inv())
	in.session.Pick(r)
}

func (in *Inspector) viewProj() mgl32.Mat4 {
	return in.session.ViewProj(in.target.Size())
}

func (in *Inspector) renderScene() {
	restore := in.target.Bind()
	defer restore()

	viewProj := in.viewProj()
	in.renderer.Begin()
	in.renderer.DrawScene(in.session.Scene, in.meshes, viewProj)
	for _, l := range in.session.Overlays() {
		in.renderer.DrawLines(l.Vertices, viewProj, l.Color)
	}
	in.renderer.End()
}

// Close releases GPU resources. The window closes when Run returns.
func (in *Inspector) Close() {
	log().Info("closing inspector")
	for _, m := range in.meshes {
		m.Destroy()
	}
	in.meshes = nil
	if in.target != nil {
		in.target.Destroy()
	}
	if in.renderer != nil {
		in.renderer.Close()
	}
}
