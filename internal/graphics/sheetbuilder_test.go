package graphics

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestBuilderPacksLeftToRight(t *testing.T) {
	sb := NewSheetBuilder(newFakeBackend(64), 64)

	s1, err := sb.Add(testImage(16, 16), mgl32.Vec3{})
	if err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}
	s2, err := sb.Add(testImage(16, 16), mgl32.Vec3{})
	if err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}

	if s1.Left != 0 || s1.Top != 0 || s1.Right != 16.0/64 {
		t.Errorf("Expected first sprite at the origin, got L=%v T=%v R=%v", s1.Left, s1.Top, s1.Right)
	}
	// One padding pixel between entries.
	if s2.Left != 17.0/64 || s2.Top != 0 {
		t.Errorf("Expected second sprite at x=17, got L=%v T=%v", s2.Left, s2.Top)
	}
	if s1.Sheet != s2.Sheet {
		t.Errorf("Expected both sprites on the same sheet")
	}
}

func TestBuilderRowAdvance(t *testing.T) {
	sb := NewSheetBuilder(newFakeBackend(64), 64)

	if _, err := sb.Add(testImage(40, 8), mgl32.Vec3{}); err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}
	s2, err := sb.Add(testImage(40, 8), mgl32.Vec3{})
	if err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}

	if s2.Left != 0 || s2.Top != 9.0/64 {
		t.Errorf("Expected second sprite on a new row at y=9, got L=%v T=%v", s2.Left, s2.Top)
	}
}

func TestBuilderSheetRollover(t *testing.T) {
	sb := NewSheetBuilder(newFakeBackend(64), 64)

	s1, err := sb.Add(testImage(60, 60), mgl32.Vec3{})
	if err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}
	s2, err := sb.Add(testImage(60, 60), mgl32.Vec3{})
	if err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}

	if len(sb.Sheets()) != 2 {
		t.Fatalf("Expected rollover to a second sheet, got %d", len(sb.Sheets()))
	}
	if s1.Sheet == s2.Sheet {
		t.Errorf("Expected the sprites on different sheets")
	}
	if s2.Left != 0 || s2.Top != 0 {
		t.Errorf("Expected the second sprite at the new sheet origin, got L=%v T=%v", s2.Left, s2.Top)
	}
	if sb.Current() != s2.Sheet {
		t.Errorf("Expected the current sheet to be the second one")
	}
}

func TestBuilderRejectsOversized(t *testing.T) {
	sb := NewSheetBuilder(newFakeBackend(64), 64)
	if _, err := sb.Add(testImage(100, 10), mgl32.Vec3{}); err == nil {
		t.Errorf("Expected an error for an image wider than the sheet")
	}
}

func TestBuilderSpriteDefaults(t *testing.T) {
	sb := NewSheetBuilder(newFakeBackend(64), 64)
	offset := mgl32.Vec3{-8, -8, 0}

	s, err := sb.Add(testImage(16, 16), offset)
	if err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}

	if s.Offset != offset {
		t.Errorf("Expected offset %v, got %v", offset, s.Offset)
	}
	if s.Size != (mgl32.Vec3{16, 16, 0}) {
		t.Errorf("Expected size 16x16, got %v", s.Size)
	}
	if s.BlendMode != BlendAlpha {
		t.Errorf("Expected alpha blending by default, got %v", s.BlendMode)
	}
	if s.Channel != ChannelRed {
		t.Errorf("Expected the red channel by default, got %v", s.Channel)
	}
}

func TestBuilderWritesPixels(t *testing.T) {
	sb := NewSheetBuilder(newFakeBackend(64), 8)

	img := testImage(2, 2)
	img.Pix[0] = 7 // red byte of the first pixel

	if _, err := sb.Add(img, mgl32.Vec3{}); err != nil {
		t.Fatalf("Failed to add image: %v", err)
	}

	data := sb.Current().Data()
	if data[0] != 7 || data[3] != 255 {
		t.Errorf("Expected the image pixels copied to the sheet, got %v", data[:4])
	}
}
