package main

import (
	"fmt"
	"image"
	"path/filepath"

	"mini-ra/internal/graphics"
	"mini-ra/pkg/spritemeta"

	"github.com/go-gl/mathgl/mgl32"
)

// metaSprite is an animated strip described by an on-disk sequence
// definition, cut out of a sheet loaded through the cache.
type metaSprite struct {
	frames  []*graphics.Sprite
	palette *graphics.PaletteReference
	rate    float32
	clock   float32
}

// loadMetaSprite reads assets/sequences/<name>.json and builds one sprite
// per frame from the sheet the sequence references.
func loadMetaSprite(cache *graphics.SheetCache, palettes *graphics.HardwarePalette, name string) (*metaSprite, error) {
	loader := spritemeta.NewLoader("assets")
	seq, err := loader.LoadSequence(name)
	if err != nil {
		return nil, err
	}
	if seq.Sheet == "" || len(seq.Frames) == 0 {
		return nil, fmt.Errorf("sequence '%s' has no sheet or frames", name)
	}

	sheet, err := cache.Get(filepath.Join("assets", seq.Sheet))
	if err != nil {
		return nil, err
	}

	blend := graphics.BlendAlpha
	if seq.Blend != "" {
		if blend, err = graphics.ParseBlendMode(seq.Blend); err != nil {
			return nil, err
		}
	}

	ms := &metaSprite{rate: 10}
	if seq.Rate != nil {
		ms.rate = *seq.Rate
	}
	if seq.Palette != "" {
		if ms.palette, err = palettes.Reference(seq.Palette); err != nil {
			return nil, err
		}
	}

	var offset mgl32.Vec3
	if seq.Offset != nil {
		offset = mgl32.Vec3{seq.Offset[0], seq.Offset[1], seq.Offset[2]}
	}

	for _, f := range seq.Frames {
		sp := graphics.NewSprite(sheet, image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height), offset)
		sp.BlendMode = blend
		sp.Channel = graphics.ChannelRGBA
		ms.frames = append(ms.frames, sp)
	}
	return ms, nil
}

func (m *metaSprite) update(dt float32) {
	m.clock += dt * m.rate
	for m.clock >= float32(len(m.frames)) {
		m.clock -= float32(len(m.frames))
	}
}

func (m *metaSprite) current() *graphics.Sprite {
	return m.frames[int(m.clock)]
}
