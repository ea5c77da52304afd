package graphics

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the wire format shared by every renderer that writes into the
// per-frame scratch buffer. Sprites are emitted as 6 vertices per quad
// (two triangles, no index buffer).
//
// SamplerA/SamplerB index the texture units bound for the current batch.
// A negative SamplerA marks an untextured vertex; the fragment shader then
// outputs the vertex color unmodified. A negative SamplerB marks a sprite
// without a secondary sheet, so no coverage mask is sampled.
type Vertex struct {
	X, Y, Z  float32
	U, V     float32
	SamplerA float32
	SamplerB float32
	Palette  float32
	R, G, B  float32
	A        float32
}

const (
	// FloatsPerVertex is the attribute stride in float32 units.
	FloatsPerVertex = 12

	vertsPerQuad = 6
)

// emitQuad writes the two triangles for a sprite quad into out[0:6].
// Corners run clockwise from the top-left: a, b, c, d.
func emitQuad(out []Vertex, s *Sprite, samplerA, samplerB, paletteIndex float32, a, b, c, d mgl32.Vec3, tint mgl32.Vec3, alpha float32) {
	v := Vertex{
		SamplerA: samplerA,
		SamplerB: samplerB,
		Palette:  paletteIndex,
		R:        tint.X(),
		G:        tint.Y(),
		B:        tint.Z(),
		A:        alpha,
	}

	va := v
	va.X, va.Y, va.Z = a.X(), a.Y(), a.Z()
	va.U, va.V = s.Left, s.Top

	vb := v
	vb.X, vb.Y, vb.Z = b.X(), b.Y(), b.Z()
	vb.U, vb.V = s.Right, s.Top

	vc := v
	vc.X, vc.Y, vc.Z = c.X(), c.Y(), c.Z()
	vc.U, vc.V = s.Right, s.Bottom

	vd := v
	vd.X, vd.Y, vd.Z = d.X(), d.Y(), d.Z()
	vd.U, vd.V = s.Left, s.Bottom

	out[0] = va
	out[1] = vb
	out[2] = vc
	out[3] = vc
	out[4] = vd
	out[5] = va
}
