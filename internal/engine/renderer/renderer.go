// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/engine/scene"
	"github.com/Faultbox/groundwork/internal/engine/shader"
	"github.com/Faultbox/groundwork/internal/logger"
)

func log() *zap.Logger {
	return logger.Named("renderer")
}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws uploaded meshes with a single diffuse shader.
type Renderer struct {
	config Config

	program     uint32
	locMVP      int32
	locModel    int32
	locLightDir int32
	locColor    int32

	lines *lineBatch

	// LightDir points towards the light, world space.
	LightDir mgl32.Vec3
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		LightDir: mgl32.Vec3{0.5, 0.866, 0.0}.Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log().Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	program, err := shader.CompileProgram(diffuseVertexShader, diffuseFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("diffuse shader: %w", err)
	}
	r.program = program
	r.locMVP = shader.MustGetUniform(program, "uMVP")
	r.locModel = shader.MustGetUniform(program, "uModel")
	r.locLightDir = shader.MustGetUniform(program, "uLightDir")
	r.locColor = shader.MustGetUniform(program, "uColor")

	if r.lines, err = newLineBatch(); err != nil {
		gl.DeleteProgram(program)
		return nil, err
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	log().Info("closing renderer")
	if r.lines != nil {
		r.lines.destroy()
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	log().Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Width returns the viewport width.
func (r *Renderer) Width() int { return r.config.Width }

// Height returns the viewport height.
func (r *Renderer) Height() int { return r.config.Height }

// Begin clears the frame and binds the diffuse program. Clear color and depth
// test are set every frame since an ImGui pass may share the context.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(skyColor[0], skyColor[1], skyColor[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
	shader.SetVec3(r.locLightDir, r.LightDir)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Draw draws m with a model matrix and a flat color. Begin must have been
// called this frame.
func (r *Renderer) Draw(m *Mesh, model, viewProj mgl32.Mat4, color mgl32.Vec3) {
	if m == nil || m.indexCount == 0 {
		return
	}
	shader.SetMat4(r.locMVP, viewProj.Mul4(model))
	shader.SetMat4(r.locModel, model)
	shader.SetVec3(r.locColor, color)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

// DrawScene draws every instance of s. meshes[i] must be the upload of
// s.Meshes[i].
func (r *Renderer) DrawScene(s *scene.Scene, meshes []*Mesh, viewProj mgl32.Mat4) {
	for _, inst := range s.Instances {
		color := terrainColor
		if inst.Mesh >= s.TerrainMeshes {
			color = variantColor(inst.Variant)
		}
		r.Draw(meshes[inst.Mesh], inst.Transform, viewProj, color)
	}
}

// DrawLines draws world-space line segments, two xyz vertices each.
// The diffuse program is rebound afterwards.
func (r *Renderer) DrawLines(vertices []float32, viewProj mgl32.Mat4, color mgl32.Vec3) {
	r.lines.draw(vertices, viewProj, color)
	gl.UseProgram(r.program)
}

// ReadPixels reads the back buffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels() []byte {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

var (
	skyColor     = mgl32.Vec3{0.55, 0.7, 0.85}
	terrainColor = mgl32.Vec3{0.42, 0.55, 0.3}
)

var variantColors = []mgl32.Vec3{
	{0.75, 0.72, 0.65},
	{0.35, 0.5, 0.25},
	{0.55, 0.4, 0.28},
	{0.62, 0.62, 0.7},
}

func variantColor(v int) mgl32.Vec3 {
	return variantColors[v%len(variantColors)]
}
