// Package ui provides the ImGui window and overlays of the inspector.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/logger"
)

// FontSize is the pixel size of a configured UI font.
const FontSize = 16.0

// latinGlyphRanges covers Basic Latin and Latin-1, zero terminated.
var latinGlyphRanges = []imgui.Wchar{0x0020, 0x00FF, 0}

func log() *zap.Logger {
	return logger.Named("ui")
}

// Backend owns the SDL window and GL context that ImGui draws into.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend opens a window. fontPath may be empty.
func NewBackend(title string, width, height int, fontPath string) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added once the context exists and before the first frame.
	b.backend.SetAfterCreateContextHook(func() {
		loadFont(fontPath)
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

func loadFont(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		log().Warn("UI font not found, using default", zap.String("path", path), zap.Error(err))
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()
	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, FontSize, fontCfg, &latinGlyphRanges[0])
	log().Info("UI font loaded", zap.String("path", path))
}

// Run calls frame once per frame until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func Viewport() (pos, size imgui.Vec2) {
	vp := imgui.MainViewport()
	return vp.WorkPos(), vp.WorkSize()
}

// KeyPressed reports whether key went down this frame.
func KeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// Axis returns -1, 0 or 1 from a pair of held keys.
func Axis(negative, positive imgui.Key) float32 {
	var v float32
	if imgui.IsKeyDown(negative) {
		v--
	}
	if imgui.IsKeyDown(positive) {
		v++
	}
	return v
}

// SceneImage draws texture across the viewport, flipped for GL's bottom-left
// origin, behind every other window. It reports whether the mouse is over it.
func SceneImage(texture uint32, pos, size imgui.Vec2) (hovered bool) {
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texture))
		imgui.ImageV(*texRef, size, imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
		hovered = imgui.IsItemHovered()
	}
	imgui.End()
	imgui.PopStyleVar()
	return hovered
}
