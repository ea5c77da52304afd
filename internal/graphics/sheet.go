package graphics

import "image"

// Sheet is a texture atlas shared by many sprites. Sheets are compared by
// pointer identity everywhere in the batcher: two sheets with identical
// pixels are still distinct for sampler allocation.
//
// Pixel data lives CPU-side until a draw actually needs the texture; the
// upload happens lazily in Texture and repeats only after MarkDirty.
type Sheet struct {
	backend Backend
	size    image.Point
	data    []byte
	texture Texture
	dirty   bool
}

// NewSheet creates an empty RGBA sheet of the given size.
func NewSheet(backend Backend, size image.Point) *Sheet {
	return &Sheet{
		backend: backend,
		size:    size,
		data:    make([]byte, size.X*size.Y*4),
	}
}

// Size returns the sheet dimensions in pixels.
func (s *Sheet) Size() image.Point {
	return s.size
}

// Data exposes the CPU pixel buffer (tightly packed RGBA, row-major).
// Callers that write through it must MarkDirty afterwards.
func (s *Sheet) Data() []byte {
	return s.data
}

// WriteRegion copies src into the sheet at the given top-left corner.
func (s *Sheet) WriteRegion(src *image.RGBA, at image.Point) {
	b := src.Bounds()
	for row := 0; row < b.Dy(); row++ {
		dst := ((at.Y+row)*s.size.X + at.X) * 4
		srcOff := src.PixOffset(b.Min.X, b.Min.Y+row)
		copy(s.data[dst:dst+b.Dx()*4], src.Pix[srcOff:srcOff+b.Dx()*4])
	}
	s.dirty = true
}

// MarkDirty schedules a re-upload on the next Texture call.
func (s *Sheet) MarkDirty() {
	s.dirty = true
}

// Texture returns the device texture, creating and uploading it on first
// use and re-uploading after MarkDirty.
func (s *Sheet) Texture() Texture {
	if s.texture == nil {
		s.texture = s.backend.NewTexture()
		s.dirty = true
	}
	if s.dirty {
		s.texture.SetData(s.data, s.size.X, s.size.Y)
		s.dirty = false
	}
	return s.texture
}

// Dispose releases the device texture. The CPU buffer stays valid.
func (s *Sheet) Dispose() {
	if s.texture != nil {
		s.texture.Dispose()
		s.texture = nil
		s.dirty = true
	}
}
