package graphics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxBatchSheets is the number of texture units a single batch can bind.
const MaxBatchSheets = 8

// samplerNames maps a sampler slot to the shader uniform it binds to.
var samplerNames = [MaxBatchSheets]string{
	"Texture0", "Texture1", "Texture2", "Texture3",
	"Texture4", "Texture5", "Texture6", "Texture7",
}

var white = mgl32.Vec3{1, 1, 1}

// SpriteRenderer accumulates sprite quads into a fixed vertex buffer and
// submits them in as few draw calls as the sampler and buffer limits
// allow. A batch is flushed when its blend mode changes, when the buffer
// cannot take another quad, or when a draw references more distinct
// sheets than MaxBatchSheets.
//
// All methods must be called from the render thread; the buffer and sheet
// table are mutated in place with no locking.
type SpriteRenderer struct {
	renderer *Renderer
	shader   Shader

	vertices     []Vertex
	sheets       [MaxBatchSheets]*Sheet
	nv           int
	ns           int
	currentBlend BlendMode
}

// NewSpriteRenderer creates a batcher over the renderer's shared scratch
// capacity, drawing through the given shader.
func NewSpriteRenderer(renderer *Renderer, shader Shader) *SpriteRenderer {
	return &SpriteRenderer{
		renderer: renderer,
		shader:   shader,
		vertices: make([]Vertex, renderer.TempBufferSize()),
	}
}

// resolveTextureIndex picks the palette index a draw call will stamp on
// its vertices. Sprites carrying direct RGBA color skip the palette
// lookup entirely unless the palette applies a color shift.
func resolveTextureIndex(s *Sprite, pal *PaletteReference) float32 {
	if pal == nil {
		return 0
	}
	if s.Channel == ChannelRGBA && !pal.HasColorShift() {
		return 0
	}
	return pal.TextureIndex()
}

// setRenderState claims the shared buffer, applies the flush policy for
// the sprite's blend mode and buffer headroom, and maps the sprite's
// sheets to sampler slots for the current batch. It returns the primary
// and secondary slot indices to stamp on the emitted vertices.
func (sr *SpriteRenderer) setRenderState(s *Sprite) (float32, float32) {
	sr.renderer.SetCurrentBatch(sr)

	if s.BlendMode != sr.currentBlend || sr.nv+vertsPerQuad > len(sr.vertices) {
		sr.Flush()
	}
	sr.currentBlend = s.BlendMode

	// Reuse the slot of an already-bound sheet; otherwise claim the next
	// free one (index ns, committed below).
	primary := 0
	for ; primary < sr.ns; primary++ {
		if sr.sheets[primary] == s.Sheet {
			break
		}
	}

	secondary := 0
	if s.Secondary != nil {
		for ; secondary < sr.ns; secondary++ {
			if sr.sheets[secondary] == s.Secondary {
				break
			}
		}
		// Two distinct unbound sheets must not claim the same free slot.
		if primary == sr.ns && secondary == primary && s.Secondary != s.Sheet {
			secondary++
		}
	}

	// The pair does not fit this batch: flush and restart on the empty
	// table.
	if primary >= MaxBatchSheets || secondary >= MaxBatchSheets {
		sr.Flush()
		primary = 0
		secondary = 0
		if s.Secondary != nil && s.Secondary != s.Sheet {
			secondary = 1
		}
	}

	if primary >= sr.ns {
		sr.sheets[primary] = s.Sheet
		sr.ns++
	}
	if s.Secondary != nil && secondary >= sr.ns {
		sr.sheets[secondary] = s.Secondary
		sr.ns++
	}

	return float32(primary), float32(secondary)
}

// Flush submits the buffered vertices as one draw call and resets the
// batch. Flushing an empty batch is a no-op.
//
// Sheet table entries are cleared as they are bound: the table holds weak
// references, and a stale handle must not alias a next-frame sheet during
// slot allocation. The current blend mode is deliberately kept; the next
// draw call's comparison overwrites it.
func (sr *SpriteRenderer) Flush() {
	if sr.nv == 0 {
		return
	}

	for i := 0; i < sr.ns; i++ {
		sr.shader.SetTexture(samplerNames[i], sr.sheets[i].Texture())
		sr.sheets[i] = nil
	}

	backend := sr.renderer.backend
	backend.SetBlendMode(sr.currentBlend)
	sr.shader.Prepare()
	backend.DrawBatch(sr.vertices, 0, sr.nv, TriangleList)
	backend.SetBlendMode(BlendNone)

	sr.renderer.countDraw(sr.nv, true)
	sr.nv = 0
	sr.ns = 0
}

// DrawVertices appends pre-formed vertices to the batch, subject to the
// same blend and capacity flush rules as quad drawing. The caller is
// responsible for the sampler and palette indices its vertices carry; no
// sheet tracking happens on this path. vs must fit the scratch capacity;
// larger one-shot buffers go through DrawVertexBuffer.
func (sr *SpriteRenderer) DrawVertices(vs []Vertex, blend BlendMode) {
	sr.renderer.SetCurrentBatch(sr)

	if blend != sr.currentBlend || sr.nv+len(vs) > len(sr.vertices) {
		sr.Flush()
	}
	sr.currentBlend = blend

	copy(sr.vertices[sr.nv:], vs)
	sr.nv += len(vs)
}

// DrawVertexBuffer submits an externally-owned vertex slice immediately,
// bypassing the accumulator. sheets are bound to sampler slots in order;
// more than MaxBatchSheets is a usage error and nothing is submitted.
func (sr *SpriteRenderer) DrawVertexBuffer(vs []Vertex, first, count int, mode PrimitiveMode, sheets []*Sheet, blend BlendMode) error {
	if len(sheets) > MaxBatchSheets {
		return fmt.Errorf("sheets: cannot bind %d sheets in one draw, the sampler limit is %d", len(sheets), MaxBatchSheets)
	}

	for i, sh := range sheets {
		if sh != nil {
			sr.shader.SetTexture(samplerNames[i], sh.Texture())
		}
	}

	backend := sr.renderer.backend
	backend.SetBlendMode(blend)
	sr.shader.Prepare()
	backend.DrawBatch(vs, first, count, mode)
	backend.SetBlendMode(BlendNone)

	sr.renderer.countDraw(count, false)
	return nil
}

func (sr *SpriteRenderer) drawQuad(s *Sprite, pal *PaletteReference, a, b, c, d mgl32.Vec3, tint mgl32.Vec3, alpha float32) {
	paletteIndex := resolveTextureIndex(s, pal)
	samplerA, samplerB := sr.setRenderState(s)
	if s.Secondary == nil {
		// A negative index tells the shader there is no mask to sample.
		samplerB = -1
	}
	emitQuad(sr.vertices[sr.nv:], s, samplerA, samplerB, paletteIndex, a, b, c, d, tint, alpha)
	sr.nv += vertsPerQuad
}

// drawScaled places the quad from a location and per-axis scale. The
// sprite's Z size leans the bottom edge back for depth-sorted scenes.
func (sr *SpriteRenderer) drawScaled(s *Sprite, pal *PaletteReference, location, scale mgl32.Vec3, tint mgl32.Vec3, alpha float32) {
	o := mgl32.Vec3{
		location.X() + scale.X()*s.Offset.X(),
		location.Y() + scale.Y()*s.Offset.Y(),
		location.Z() + scale.Z()*s.Offset.Z(),
	}
	sx := scale.X() * s.Size.X()
	sy := scale.Y() * s.Size.Y()
	sz := scale.Z() * s.Size.Z()

	b := mgl32.Vec3{o.X() + sx, o.Y(), o.Z()}
	c := mgl32.Vec3{o.X() + sx, o.Y() + sy, o.Z() + sz}
	d := mgl32.Vec3{o.X(), o.Y() + sy, o.Z() + sz}
	sr.drawQuad(s, pal, o, b, c, d, tint, alpha)
}

// DrawSprite draws the sprite at its natural size.
func (sr *SpriteRenderer) DrawSprite(s *Sprite, pal *PaletteReference, location mgl32.Vec3) {
	sr.drawScaled(s, pal, location, mgl32.Vec3{1, 1, 1}, white, 1)
}

// DrawSpriteTinted draws the sprite at its natural size with an explicit
// tint color and alpha multiplier.
func (sr *SpriteRenderer) DrawSpriteTinted(s *Sprite, pal *PaletteReference, location mgl32.Vec3, tint mgl32.Vec3, alpha float32) {
	sr.drawScaled(s, pal, location, mgl32.Vec3{1, 1, 1}, tint, alpha)
}

// DrawSpriteScaled draws the sprite scaled uniformly on all axes.
func (sr *SpriteRenderer) DrawSpriteScaled(s *Sprite, pal *PaletteReference, location mgl32.Vec3, scale float32) {
	sr.drawScaled(s, pal, location, mgl32.Vec3{scale, scale, scale}, white, 1)
}

// DrawSpriteScaledTinted draws the sprite scaled uniformly with an
// explicit tint and alpha.
func (sr *SpriteRenderer) DrawSpriteScaledTinted(s *Sprite, pal *PaletteReference, location mgl32.Vec3, scale float32, tint mgl32.Vec3, alpha float32) {
	sr.drawScaled(s, pal, location, mgl32.Vec3{scale, scale, scale}, tint, alpha)
}

// DrawSpriteStretched draws the sprite with independent per-axis scale.
func (sr *SpriteRenderer) DrawSpriteStretched(s *Sprite, pal *PaletteReference, location, scale mgl32.Vec3) {
	sr.drawScaled(s, pal, location, scale, white, 1)
}

// DrawSpriteStretchedTinted draws the sprite with independent per-axis
// scale and an explicit tint and alpha.
func (sr *SpriteRenderer) DrawSpriteStretchedTinted(s *Sprite, pal *PaletteReference, location, scale mgl32.Vec3, tint mgl32.Vec3, alpha float32) {
	sr.drawScaled(s, pal, location, scale, tint, alpha)
}

// DrawSpriteQuad draws the sprite across four explicit corners, clockwise
// from the top-left.
func (sr *SpriteRenderer) DrawSpriteQuad(s *Sprite, pal *PaletteReference, a, b, c, d mgl32.Vec3) {
	sr.drawQuad(s, pal, a, b, c, d, white, 1)
}

// DrawSpriteQuadTinted draws the sprite across four explicit corners with
// an explicit tint and alpha.
func (sr *SpriteRenderer) DrawSpriteQuadTinted(s *Sprite, pal *PaletteReference, a, b, c, d mgl32.Vec3, tint mgl32.Vec3, alpha float32) {
	sr.drawQuad(s, pal, a, b, c, d, tint, alpha)
}

// SetPalette points the shader at the combined palette texture.
func (sr *SpriteRenderer) SetPalette(hp *HardwarePalette) {
	sr.shader.SetTexture("Palette", hp.Texture())
	sr.shader.SetFloat("PaletteRows", float32(hp.Height()))
}

// SetViewportParams pushes the screen transform for the given window
// size, zoom factor and scroll offset.
func (sr *SpriteRenderer) SetViewportParams(width, height int, zoom float32, scroll mgl32.Vec2) {
	proj := mgl32.Ortho(0, float32(width)/zoom, float32(height)/zoom, 0, -float32(height), float32(height))
	view := mgl32.Translate3D(-scroll.X(), -scroll.Y(), 0)
	transform := proj.Mul4(view)
	sr.shader.SetMatrix("Transform", &transform[0])
}

// SetDepthPreview toggles the depth buffer visualization mode.
func (sr *SpriteRenderer) SetDepthPreview(enabled bool, contrast, offset float32) {
	sr.shader.SetBool("EnableDepthPreview", enabled)
	sr.shader.SetVec2("DepthPreviewParams", contrast, offset)
}

// SetAntialiasingPixelsPerTexel configures the sprite edge smoothing
// applied when the viewport zoom is not pixel-aligned. Zero disables it.
func (sr *SpriteRenderer) SetAntialiasingPixelsPerTexel(pxPerTx float32) {
	sr.shader.SetFloat("AntialiasPixelsPerTexel", pxPerTx)
}
