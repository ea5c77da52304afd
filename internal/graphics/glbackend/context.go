package glbackend

import (
	"fmt"

	"mini-ra/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Context implements graphics.Backend on OpenGL 4.1 core. It owns one
// dynamic vertex buffer sized to the shared scratch capacity; every draw
// orphans and refills it.
//
// Construction and all calls must happen on the thread holding the GL
// context.
type Context struct {
	vao uint32
	vbo uint32

	tempBufferSize int
	currentBlend   graphics.BlendMode
	blendSet       bool
}

// NewContext initializes the GL bindings and the batch vertex buffer.
// tempBufferSize is the scratch capacity in vertices.
func NewContext(tempBufferSize int) (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize gl: %w", err)
	}

	c := &Context{tempBufferSize: tempBufferSize}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, tempBufferSize*graphics.FloatsPerVertex*4, nil, gl.DYNAMIC_DRAW)

	// Attribute layout mirrors graphics.Vertex: position, UV, sampler
	// pair, palette index, tint color with alpha.
	stride := int32(graphics.FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 7*4)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointerWithOffset(4, 4, gl.FLOAT, false, stride, 8*4)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return c, nil
}

// TempBufferSize reports the scratch capacity in vertices.
func (c *Context) TempBufferSize() int {
	return c.tempBufferSize
}

// SetBlendMode applies framebuffer blend state, skipping redundant
// changes.
func (c *Context) SetBlendMode(mode graphics.BlendMode) {
	if c.blendSet && mode == c.currentBlend {
		return
	}
	c.currentBlend = mode
	c.blendSet = true

	if mode == graphics.BlendNone {
		gl.Disable(gl.BLEND)
		return
	}

	gl.Enable(gl.BLEND)
	switch mode {
	case graphics.BlendAlpha:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	case graphics.BlendAdditive:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case graphics.BlendSubtractive:
		gl.BlendEquation(gl.FUNC_REVERSE_SUBTRACT)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case graphics.BlendMultiply:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.DST_COLOR, gl.ONE_MINUS_SRC_ALPHA)
	case graphics.BlendScreen:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_COLOR)
	}
}

// DrawBatch uploads verts[first:first+count] and issues one draw call.
func (c *Context) DrawBatch(verts []graphics.Vertex, first, count int, mode graphics.PrimitiveMode) {
	if count == 0 {
		return
	}

	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)

	// Deterministic orphan to avoid GPU stalls on dynamic updates
	size := count * graphics.FloatsPerVertex * 4
	gl.BufferData(gl.ARRAY_BUFFER, c.tempBufferSize*graphics.FloatsPerVertex*4, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(&verts[first]))

	gl.DrawArrays(glPrimitive(mode), 0, int32(count))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// NewTexture allocates an empty texture with nearest filtering.
func (c *Context) NewTexture() graphics.Texture {
	return newTexture()
}

// Clear wipes the color buffer.
func (c *Context) Clear() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Dispose releases the batch buffer objects.
func (c *Context) Dispose() {
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func glPrimitive(mode graphics.PrimitiveMode) uint32 {
	switch mode {
	case graphics.LineList:
		return gl.LINES
	case graphics.PointList:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
