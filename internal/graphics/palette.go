package graphics

import "fmt"

// PaletteSize is the number of color entries per palette row.
const PaletteSize = 256

// Palette is one row of indexed colors, RGBA byte order.
type Palette struct {
	colors [PaletteSize * 4]byte
}

// NewPalette builds a palette from up to 256 packed 0xRRGGBBAA entries.
func NewPalette(colors []uint32) *Palette {
	p := &Palette{}
	for i, c := range colors {
		if i >= PaletteSize {
			break
		}
		p.colors[i*4+0] = byte(c >> 24)
		p.colors[i*4+1] = byte(c >> 16)
		p.colors[i*4+2] = byte(c >> 8)
		p.colors[i*4+3] = byte(c)
	}
	return p
}

// HardwarePalette flattens named palettes into a single 256-wide RGBA
// texture, one row per palette. Rows are assigned in registration order;
// the row index is what sprite vertices carry as their palette index.
type HardwarePalette struct {
	backend Backend
	texture Texture

	rows    []*Palette
	indices map[string]int
	shifts  map[string]bool
	dirty   bool
}

// NewHardwarePalette creates an empty palette collection.
func NewHardwarePalette(backend Backend) *HardwarePalette {
	return &HardwarePalette{
		backend: backend,
		indices: make(map[string]int),
		shifts:  make(map[string]bool),
	}
}

// Add registers a named palette row. hasColorShift marks palettes whose
// colors are remapped at lookup time; sprites with direct RGBA color only
// take the palette path when the flag is set.
func (hp *HardwarePalette) Add(name string, p *Palette, hasColorShift bool) error {
	if _, ok := hp.indices[name]; ok {
		return fmt.Errorf("palette %q already registered", name)
	}
	hp.indices[name] = len(hp.rows)
	hp.shifts[name] = hasColorShift
	hp.rows = append(hp.rows, p)
	hp.dirty = true
	return nil
}

// Height returns the number of registered palette rows.
func (hp *HardwarePalette) Height() int {
	return len(hp.rows)
}

// Reference resolves a palette name into the handle draw calls consume.
// References snapshot the row's texture coordinate, so they should be
// created after all palettes are registered.
func (hp *HardwarePalette) Reference(name string) (*PaletteReference, error) {
	row, ok := hp.indices[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	return &PaletteReference{
		name:          name,
		textureIndex:  (float32(row) + 0.5) / float32(len(hp.rows)),
		hasColorShift: hp.shifts[name],
	}, nil
}

// Texture returns the combined palette texture, rebuilding it lazily
// after registrations.
func (hp *HardwarePalette) Texture() Texture {
	if hp.texture == nil {
		hp.texture = hp.backend.NewTexture()
		hp.dirty = true
	}
	if hp.dirty {
		data := make([]byte, PaletteSize*4*len(hp.rows))
		for i, p := range hp.rows {
			copy(data[i*PaletteSize*4:], p.colors[:])
		}
		hp.texture.SetData(data, PaletteSize, len(hp.rows))
		hp.dirty = false
	}
	return hp.texture
}

// Dispose releases the device texture.
func (hp *HardwarePalette) Dispose() {
	if hp.texture != nil {
		hp.texture.Dispose()
		hp.texture = nil
		hp.dirty = true
	}
}

// PaletteReference identifies one palette row for draw calls. A nil
// reference resolves to palette index 0.
type PaletteReference struct {
	name          string
	textureIndex  float32
	hasColorShift bool
}

// Name returns the palette name the reference was created for.
func (pr *PaletteReference) Name() string {
	return pr.name
}

// TextureIndex is the normalized mid-row V coordinate within the combined
// palette texture.
func (pr *PaletteReference) TextureIndex() float32 {
	return pr.textureIndex
}

// HasColorShift reports whether lookups through this palette remap colors
// even for sprites carrying direct RGBA data.
func (pr *PaletteReference) HasColorShift() bool {
	return pr.hasColorShift
}
