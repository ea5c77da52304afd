package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is one baked character. Sprite is nil for glyphs with no visible
// bitmap (space); Advance still applies.
type Glyph struct {
	Sprite  *Sprite
	Advance float32
}

// FontAtlas holds the ASCII glyph set of one font size, baked as white
// RGBA sprites so text picks up its color from the per-vertex tint.
type FontAtlas struct {
	glyphs     map[rune]Glyph
	lineHeight float32
}

// BuildFontAtlas loads a TrueType font file and bakes the printable ASCII
// range into the builder's sheets at the given pixel size.
func BuildFontAtlas(sb *SheetBuilder, fontPath string, fontPixels int) (*FontAtlas, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	atlas := &FontAtlas{
		glyphs:     make(map[rune]Glyph),
		lineHeight: float32(face.Metrics().Height.Round()),
	}

	for r := rune(32); r <= rune(126); r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		adv := float32(math.Round(float64(advance) / 64.0))

		gw := dr.Dx()
		gh := dr.Dy()
		if gw == 0 || gh == 0 {
			// Space or non-drawable glyph; record the advance only.
			atlas.glyphs[r] = Glyph{Advance: adv}
			continue
		}

		// Copy the coverage mask into a white RGBA bitmap.
		cov := image.NewAlpha(image.Rect(0, 0, gw, gh))
		draw.Draw(cov, cov.Bounds(), mask, maskp, draw.Src)
		glyph := image.NewRGBA(image.Rect(0, 0, gw, gh))
		for i, a := range cov.Pix {
			glyph.Pix[i*4+0] = 0xff
			glyph.Pix[i*4+1] = 0xff
			glyph.Pix[i*4+2] = 0xff
			glyph.Pix[i*4+3] = a
		}

		// The bearing goes into the sprite offset, so drawing at the pen
		// position lands the glyph on the baseline.
		offset := mgl32.Vec3{float32(dr.Min.X), float32(dr.Min.Y), 0}
		sprite, err := sb.Add(glyph, offset)
		if err != nil {
			return nil, fmt.Errorf("pack glyph %q: %w", r, err)
		}
		sprite.Channel = ChannelRGBA

		atlas.glyphs[r] = Glyph{Sprite: sprite, Advance: adv}
	}

	return atlas, nil
}

// Glyph returns the baked glyph for r, falling back to space for runes
// outside the baked set.
func (fa *FontAtlas) Glyph(r rune) (Glyph, bool) {
	g, ok := fa.glyphs[r]
	if !ok {
		g, ok = fa.glyphs[' ']
	}
	return g, ok
}

// LineHeight returns the vertical pen advance between lines in pixels.
func (fa *FontAtlas) LineHeight() float32 {
	return fa.lineHeight
}
