package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureChannel classifies how a sprite's pixels are interpreted.
// Indexed sprites store a palette index in one color channel and need a
// palette lookup; ChannelRGBA sprites carry direct color.
type TextureChannel int

const (
	ChannelRed TextureChannel = iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha
	ChannelRGBA
)

// Sprite is a rectangular region of a sheet plus the metadata the batcher
// needs to draw it: blend mode, placement offset, logical size and the
// channel classification used for the palette-skip optimization.
//
// Secondary optionally references a second sheet sampled at the same UVs,
// for art whose color data and auxiliary mask live in different atlases.
type Sprite struct {
	Sheet     *Sheet
	Secondary *Sheet

	// Normalized UV rectangle within the sheet.
	Left, Top, Right, Bottom float32

	Offset mgl32.Vec3
	Size   mgl32.Vec3

	BlendMode BlendMode
	Channel   TextureChannel
}

// NewSprite builds a sprite over the given pixel bounds of a sheet.
func NewSprite(sheet *Sheet, bounds image.Rectangle, offset mgl32.Vec3) *Sprite {
	w := float32(sheet.Size().X)
	h := float32(sheet.Size().Y)
	return &Sprite{
		Sheet:     sheet,
		Left:      float32(bounds.Min.X) / w,
		Top:       float32(bounds.Min.Y) / h,
		Right:     float32(bounds.Max.X) / w,
		Bottom:    float32(bounds.Max.Y) / h,
		Offset:    offset,
		Size:      mgl32.Vec3{float32(bounds.Dx()), float32(bounds.Dy()), 0},
		BlendMode: BlendAlpha,
		Channel:   ChannelRed,
	}
}

// WithSecondary returns a copy of the sprite that also samples the given
// sheet at the same UV coordinates.
func (s *Sprite) WithSecondary(sheet *Sheet) *Sprite {
	c := *s
	c.Secondary = sheet
	return &c
}
