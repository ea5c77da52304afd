package glbackend

import "github.com/go-gl/gl/v4.1-core/gl"

// Texture implements graphics.Texture. Sheets hold pixel-art atlases, so
// sampling is nearest with clamp to edge.
type Texture struct {
	id     uint32
	width  int
	height int
}

func newTexture() *Texture {
	t := &Texture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// SetData uploads tightly packed RGBA pixels.
func (t *Texture) SetData(pix []byte, width, height int) {
	t.width = width
	t.height = height

	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Dispose deletes the GL texture.
func (t *Texture) Dispose() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
