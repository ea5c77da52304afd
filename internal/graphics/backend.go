package graphics

// Backend is the device-facing surface the renderers draw through. The
// production implementation lives in the glbackend package; tests use an
// in-memory recorder.
type Backend interface {
	// SetBlendMode applies framebuffer blend state for subsequent draws.
	SetBlendMode(mode BlendMode)
	// DrawBatch uploads verts[first:first+count] and issues one draw call
	// with the given topology.
	DrawBatch(verts []Vertex, first, count int, mode PrimitiveMode)
	// TempBufferSize reports the shared per-frame scratch capacity in
	// vertices. Batch buffers are sized to it at construction.
	TempBufferSize() int
	// NewTexture allocates an empty device texture.
	NewTexture() Texture
	// Clear resets the color buffer at the start of a frame.
	Clear()
}

// Shader is a compiled program with named uniforms and samplers.
type Shader interface {
	// Prepare binds the program and its queued textures before a draw.
	Prepare()
	SetTexture(name string, t Texture)
	SetBool(name string, value bool)
	SetFloat(name string, value float32)
	SetVec2(name string, x, y float32)
	SetVec3(name string, x, y, z float32)
	SetMatrix(name string, value *float32)
}

// Texture is a device texture handle. Pixel data is tightly packed RGBA.
type Texture interface {
	SetData(pix []byte, width, height int)
	Size() (int, int)
	Dispose()
}

// BatchRenderer is anything that buffers geometry between draw calls and
// can be told to submit it. The Renderer tracks a single current batch so
// two batching strategies never interleave writes within a frame.
type BatchRenderer interface {
	Flush()
}
