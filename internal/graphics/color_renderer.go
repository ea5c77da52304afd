package graphics

import "github.com/go-gl/mathgl/mgl32"

// RgbaColorRenderer draws solid-color lines and rectangles through the
// sprite batcher's raw vertex path, so color geometry batches and flushes
// together with sprite quads.
type RgbaColorRenderer struct {
	parent *SpriteRenderer
	quad   [vertsPerQuad]Vertex
}

// NewRgbaColorRenderer wraps a sprite batcher.
func NewRgbaColorRenderer(parent *SpriteRenderer) *RgbaColorRenderer {
	return &RgbaColorRenderer{parent: parent}
}

func colorVertex(x, y, z float32, color mgl32.Vec3, alpha float32) Vertex {
	return Vertex{
		X: x, Y: y, Z: z,
		SamplerA: -1,
		R:        color.X(),
		G:        color.Y(),
		B:        color.Z(),
		A:        alpha,
	}
}

func (cr *RgbaColorRenderer) fillQuad(a, b, c, d mgl32.Vec3, color mgl32.Vec3, alpha float32, blend BlendMode) {
	cr.quad[0] = colorVertex(a.X(), a.Y(), a.Z(), color, alpha)
	cr.quad[1] = colorVertex(b.X(), b.Y(), b.Z(), color, alpha)
	cr.quad[2] = colorVertex(c.X(), c.Y(), c.Z(), color, alpha)
	cr.quad[3] = cr.quad[2]
	cr.quad[4] = colorVertex(d.X(), d.Y(), d.Z(), color, alpha)
	cr.quad[5] = cr.quad[0]
	cr.parent.DrawVertices(cr.quad[:], blend)
}

// FillRect fills an axis-aligned rectangle.
func (cr *RgbaColorRenderer) FillRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	cr.fillQuad(
		mgl32.Vec3{x, y, 0},
		mgl32.Vec3{x + w, y, 0},
		mgl32.Vec3{x + w, y + h, 0},
		mgl32.Vec3{x, y + h, 0},
		color, alpha, BlendAlpha,
	)
}

// DrawLine draws a straight line segment of the given width by expanding
// it into a quad perpendicular to its direction.
func (cr *RgbaColorRenderer) DrawLine(start, end mgl32.Vec2, width float32, color mgl32.Vec3, alpha float32) {
	dir := end.Sub(start)
	if dir.Len() == 0 {
		return
	}
	n := mgl32.Vec2{-dir.Y(), dir.X()}.Normalize().Mul(width / 2)
	cr.fillQuad(
		mgl32.Vec3{start.X() - n.X(), start.Y() - n.Y(), 0},
		mgl32.Vec3{start.X() + n.X(), start.Y() + n.Y(), 0},
		mgl32.Vec3{end.X() + n.X(), end.Y() + n.Y(), 0},
		mgl32.Vec3{end.X() - n.X(), end.Y() - n.Y(), 0},
		color, alpha, BlendAlpha,
	)
}

// DrawRect outlines an axis-aligned rectangle with lines of the given
// width, drawn inside the rectangle bounds.
func (cr *RgbaColorRenderer) DrawRect(x, y, w, h float32, width float32, color mgl32.Vec3, alpha float32) {
	cr.FillRect(x, y, w, width, color, alpha)
	cr.FillRect(x, y+h-width, w, width, color, alpha)
	cr.FillRect(x, y+width, width, h-2*width, color, alpha)
	cr.FillRect(x+w-width, y+width, width, h-2*width, color, alpha)
}
