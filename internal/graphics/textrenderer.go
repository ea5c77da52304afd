package graphics

import "github.com/go-gl/mathgl/mgl32"

// TextRenderer draws strings glyph by glyph through the sprite batcher,
// so text shares draw calls with every other sprite on the same sheets.
type TextRenderer struct {
	atlas   *FontAtlas
	sprites *SpriteRenderer
}

// NewTextRenderer pairs a baked atlas with a sprite batcher.
func NewTextRenderer(atlas *FontAtlas, sprites *SpriteRenderer) *TextRenderer {
	return &TextRenderer{atlas: atlas, sprites: sprites}
}

// Draw renders text with its baseline starting at (x, y).
func (tr *TextRenderer) Draw(text string, x, y float32, color mgl32.Vec3) {
	tr.DrawScaled(text, x, y, 1, color)
}

// DrawScaled renders text scaled around the pen position. Newlines move
// the pen down by the atlas line height.
func (tr *TextRenderer) DrawScaled(text string, x, y, scale float32, color mgl32.Vec3) {
	penX, penY := x, y
	for _, r := range text {
		if r == '\n' {
			penX = x
			penY += tr.atlas.LineHeight() * scale
			continue
		}
		g, ok := tr.atlas.Glyph(r)
		if !ok {
			continue
		}
		if g.Sprite != nil {
			tr.sprites.DrawSpriteScaledTinted(g.Sprite, nil, mgl32.Vec3{penX, penY, 0}, scale, color, 1)
		}
		penX += g.Advance * scale
	}
}

// Measure returns the pixel extents the text will occupy at the given
// scale.
func (tr *TextRenderer) Measure(text string, scale float32) (float32, float32) {
	var lineW, maxW float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			if lineW > maxW {
				maxW = lineW
			}
			lineW = 0
			lines++
			continue
		}
		if g, ok := tr.atlas.Glyph(r); ok {
			lineW += g.Advance * scale
		}
	}
	if lineW > maxW {
		maxW = lineW
	}
	return maxW, float32(lines) * tr.atlas.LineHeight() * scale
}
