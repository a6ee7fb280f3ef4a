// Package viewer runs the SDL terrain viewer: window, input and the render
// loop around a session.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/config"
	"github.com/Faultbox/groundwork/internal/engine/debug"
	"github.com/Faultbox/groundwork/internal/engine/input"
	"github.com/Faultbox/groundwork/internal/engine/lighting"
	"github.com/Faultbox/groundwork/internal/engine/picking"
	"github.com/Faultbox/groundwork/internal/engine/renderer"
	"github.com/Faultbox/groundwork/internal/engine/scene"
	"github.com/Faultbox/groundwork/internal/engine/window"
	"github.com/Faultbox/groundwork/internal/logger"
	"github.com/Faultbox/groundwork/internal/session"
)

const windowTitle = "Groundwork"

func log() *zap.Logger {
	return logger.Named("viewer")
}

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	session     *session.Session
	meshes      []*renderer.Mesh
	screenshots *debug.ScreenshotCapture
}

// New opens the window and uploads s to the GPU.
func New(cfg *config.Config, s *scene.Scene) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		screenshots: debug.NewScreenshotCapture("screenshots", "groundwork"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, which owns the GL context.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.LightDir = lighting.SunDirection(cfg.Graphics.Sun.Azimuth, cfg.Graphics.Sun.Elevation)

	v.meshes, err = renderer.UploadScene(s)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to upload scene: %w", err)
	}

	v.input = input.New()

	v.session = session.New(cfg, s)

	log().Info("viewer initialized",
		zap.Int("meshes", len(v.meshes)),
		zap.Int("instances", len(s.Instances)),
	)
	return v, nil
}

// Run starts the main loop. It returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	titleTimer := time.Now()

	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	log().Info("starting main loop", zap.Stringer("mode", v.session.Mode))
	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		// Long stalls such as window drags would otherwise launch the body.
		dt = min(dt, 0.1)

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.update(dt)
		v.render()
		v.window.SwapBuffers()

		if time.Since(titleTimer) >= time.Second {
			v.window.SetTitle(windowTitle + " | " + v.session.Status())
			log().Debug("fps", zap.Float64("fps", v.session.Frames.FPS()), zap.Float32("dt_ms", dt*1000))
			titleTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_TAB:
				v.session.ToggleMode()
				v.window.SetMouseCaptured(v.session.Mode == session.ModeWalk)
			case sdl.SCANCODE_SPACE:
				v.session.Jump()
			case sdl.SCANCODE_G:
				v.session.ShowGrid = !v.session.ShowGrid
			case sdl.SCANCODE_N:
				v.session.ShowNormals = !v.session.ShowNormals
			case sdl.SCANCODE_T:
				v.session.ShowTangents = !v.session.ShowTangents
			case sdl.SCANCODE_F12:
				v.screenshot()
			}

		case input.EventMouseDown:
			if v.session.Mode == session.ModeOrbit && event.Button == sdl.BUTTON_LEFT {
				v.pick(event.MouseX, event.MouseY)
			}

		case input.EventMouseWheel:
			if v.session.Mode == session.ModeOrbit {
				v.session.Orbit.HandleZoom(float32(event.DeltaY))
			}
		}
	}
}

// pick selects the instance or terrain point under the cursor. The window
// is measured in points, the drawable in pixels.
func (v *Viewer) pick(x, y int) {
	ww, wh := v.window.GetSize()
	r := picking.ScreenToRay(float32(x), float32(y), float32(ww), float32(wh), v.viewProj().Inv())
	v.session.Pick(r)
}

func (v *Viewer) update(dt float32) {
	dx, dy := v.input.MouseMotion()
	v.session.Update(dt, session.Controls{
		Forward: v.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
		Right:   v.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
		Up:      v.input.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_E),
		LookX:   float32(dx),
		LookY:   float32(dy),
		Drag:    v.input.IsButtonDown(sdl.BUTTON_RIGHT),
	})
}

func (v *Viewer) viewProj() mgl32.Mat4 {
	return v.session.ViewProj(v.renderer.Size())
}

func (v *Viewer) render() {
	viewProj := v.viewProj()

	v.renderer.Begin()
	v.renderer.DrawScene(v.session.Scene, v.meshes, viewProj)
	for _, l := range v.session.Overlays() {
		v.renderer.DrawLines(l.Vertices, viewProj, l.Color)
	}
	v.renderer.End()
}

func (v *Viewer) screenshot() {
	w, h := v.renderer.Size()
	if _, err := v.screenshots.CaptureFromPixels(v.renderer.ReadPixels(), w, h); err != nil {
		log().Warn("screenshot failed", zap.Error(err))
	}
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	log().Info("closing viewer")
	for _, m := range v.meshes {
		m.Destroy()
	}
	v.meshes = nil
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
