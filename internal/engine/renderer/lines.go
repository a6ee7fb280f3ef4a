package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/groundwork/internal/engine/shader"
)

// lineBatch streams debug line vertices to a dynamic buffer.
type lineBatch struct {
	program     uint32
	locViewProj int32
	locColor    int32
	vao, vbo    uint32
	capacity    int // floats
}

func newLineBatch() (*lineBatch, error) {
	program, err := shader.CompileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	lb := &lineBatch{
		program:     program,
		locViewProj: shader.MustGetUniform(program, "uViewProj"),
		locColor:    shader.MustGetUniform(program, "uColor"),
	}

	gl.GenVertexArrays(1, &lb.vao)
	gl.BindVertexArray(lb.vao)
	gl.GenBuffers(1, &lb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)
	gl.VertexAttribPointerWithOffset(locPosition, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(locPosition)
	gl.BindVertexArray(0)
	return lb, nil
}

func (lb *lineBatch) draw(vertices []float32, viewProj mgl32.Mat4, color mgl32.Vec3) {
	if len(vertices) < 6 {
		return
	}
	gl.BindVertexArray(lb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)
	if len(vertices) > lb.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
		lb.capacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, unsafe.Pointer(&vertices[0]))
	}

	gl.UseProgram(lb.program)
	shader.SetMat4(lb.locViewProj, viewProj)
	shader.SetVec3(lb.locColor, color)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
}

func (lb *lineBatch) destroy() {
	gl.DeleteVertexArrays(1, &lb.vao)
	gl.DeleteBuffers(1, &lb.vbo)
	gl.DeleteProgram(lb.program)
}
