package graphics

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// SheetBuilder packs images into fixed-size sheets row by row. When the
// current row cannot take an image it starts a new row; when the sheet is
// full it rolls over to a fresh sheet. Sprites stay valid after rollover
// because each keeps a reference to the sheet it was packed into.
type SheetBuilder struct {
	backend   Backend
	sheetSize int
	padding   int

	current   *Sheet
	sheets    []*Sheet
	x, y      int
	rowHeight int
}

// NewSheetBuilder creates a builder producing square sheets of the given
// pixel size.
func NewSheetBuilder(backend Backend, sheetSize int) *SheetBuilder {
	return &SheetBuilder{
		backend:   backend,
		sheetSize: sheetSize,
		padding:   1,
	}
}

// Add packs the image into a sheet and returns a sprite covering it.
// An image larger than the sheet itself cannot be packed.
func (sb *SheetBuilder) Add(src *image.RGBA, offset mgl32.Vec3) (*Sprite, error) {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w+sb.padding > sb.sheetSize || h+sb.padding > sb.sheetSize {
		return nil, fmt.Errorf("image %dx%d does not fit a %d pixel sheet", w, h, sb.sheetSize)
	}

	if sb.current == nil {
		sb.newSheet()
	}
	if sb.x+w+sb.padding > sb.sheetSize {
		sb.x = 0
		sb.y += sb.rowHeight + sb.padding
		sb.rowHeight = 0
	}
	if sb.y+h+sb.padding > sb.sheetSize {
		sb.newSheet()
	}

	at := image.Pt(sb.x, sb.y)
	sb.current.WriteRegion(src, at)
	sb.x += w + sb.padding
	if h > sb.rowHeight {
		sb.rowHeight = h
	}

	return NewSprite(sb.current, image.Rectangle{Min: at, Max: at.Add(image.Pt(w, h))}, offset), nil
}

// Current returns the sheet being packed into, if any.
func (sb *SheetBuilder) Current() *Sheet {
	return sb.current
}

// Sheets returns every sheet the builder has produced.
func (sb *SheetBuilder) Sheets() []*Sheet {
	return sb.sheets
}

// Dispose releases the device textures of all produced sheets.
func (sb *SheetBuilder) Dispose() {
	for _, s := range sb.sheets {
		s.Dispose()
	}
}

func (sb *SheetBuilder) newSheet() {
	sb.current = NewSheet(sb.backend, image.Pt(sb.sheetSize, sb.sheetSize))
	sb.sheets = append(sb.sheets, sb.current)
	sb.x = 0
	sb.y = 0
	sb.rowHeight = 0
}
