package graphics

import (
	"math"
	"testing"
)

func TestHardwarePaletteDuplicateName(t *testing.T) {
	hp := NewHardwarePalette(newFakeBackend(64))
	if err := hp.Add("player", NewPalette(nil), false); err != nil {
		t.Fatalf("Failed to add palette: %v", err)
	}
	if err := hp.Add("player", NewPalette(nil), false); err == nil {
		t.Errorf("Expected an error for a duplicate palette name")
	}
}

func TestHardwarePaletteUnknownReference(t *testing.T) {
	hp := NewHardwarePalette(newFakeBackend(64))
	if _, err := hp.Reference("missing"); err == nil {
		t.Errorf("Expected an error for an unknown palette name")
	}
}

func TestReferenceTextureIndex(t *testing.T) {
	hp := NewHardwarePalette(newFakeBackend(64))
	names := []string{"a", "b", "c"}
	for _, n := range names {
		if err := hp.Add(n, NewPalette(nil), false); err != nil {
			t.Fatalf("Failed to add palette %s: %v", n, err)
		}
	}
	if hp.Height() != 3 {
		t.Fatalf("Expected 3 rows, got %d", hp.Height())
	}

	for i, n := range names {
		ref, err := hp.Reference(n)
		if err != nil {
			t.Fatalf("Failed to resolve %s: %v", n, err)
		}
		want := (float32(i) + 0.5) / 3
		if math.Abs(float64(ref.TextureIndex()-want)) > 1e-6 {
			t.Errorf("Expected %s at texture index %v, got %v", n, want, ref.TextureIndex())
		}
		if ref.Name() != n {
			t.Errorf("Expected reference name %s, got %s", n, ref.Name())
		}
	}
}

func TestReferenceColorShiftFlag(t *testing.T) {
	hp := NewHardwarePalette(newFakeBackend(64))
	if err := hp.Add("plain", NewPalette(nil), false); err != nil {
		t.Fatalf("Failed to add palette: %v", err)
	}
	if err := hp.Add("shift", NewPalette(nil), true); err != nil {
		t.Fatalf("Failed to add palette: %v", err)
	}

	plain, _ := hp.Reference("plain")
	shift, _ := hp.Reference("shift")
	if plain.HasColorShift() {
		t.Errorf("Expected plain palette without color shift")
	}
	if !shift.HasColorShift() {
		t.Errorf("Expected shift palette with color shift")
	}
}

func TestPaletteTextureLayout(t *testing.T) {
	hp := NewHardwarePalette(newFakeBackend(64))
	if err := hp.Add("first", NewPalette([]uint32{0x00000000, 0xFF0000FF}), false); err != nil {
		t.Fatalf("Failed to add palette: %v", err)
	}
	if err := hp.Add("second", NewPalette([]uint32{0x00000000, 0x00FF00FF}), false); err != nil {
		t.Fatalf("Failed to add palette: %v", err)
	}

	tex := hp.Texture().(*fakeTexture)
	if tex.width != PaletteSize || tex.height != 2 {
		t.Fatalf("Expected a %dx2 texture, got %dx%d", PaletteSize, tex.width, tex.height)
	}
	if len(tex.pix) != PaletteSize*4*2 {
		t.Fatalf("Expected %d bytes, got %d", PaletteSize*4*2, len(tex.pix))
	}

	// Entry 1 of the first row is red, entry 1 of the second row green.
	r := tex.pix[4:8]
	if r[0] != 255 || r[1] != 0 || r[2] != 0 || r[3] != 255 {
		t.Errorf("Expected red at row 0 entry 1, got %v", r)
	}
	g := tex.pix[PaletteSize*4+4 : PaletteSize*4+8]
	if g[0] != 0 || g[1] != 255 || g[2] != 0 || g[3] != 255 {
		t.Errorf("Expected green at row 1 entry 1, got %v", g)
	}
}

func TestPaletteTextureUploadsLazily(t *testing.T) {
	hp := NewHardwarePalette(newFakeBackend(64))
	if err := hp.Add("only", NewPalette(nil), false); err != nil {
		t.Fatalf("Failed to add palette: %v", err)
	}

	tex := hp.Texture().(*fakeTexture)
	if tex.uploads != 1 {
		t.Fatalf("Expected 1 upload, got %d", tex.uploads)
	}
	hp.Texture()
	if tex.uploads != 1 {
		t.Errorf("Expected no re-upload without changes, got %d", tex.uploads)
	}

	if err := hp.Add("late", NewPalette(nil), false); err != nil {
		t.Fatalf("Failed to add palette: %v", err)
	}
	tex = hp.Texture().(*fakeTexture)
	if tex.uploads != 2 || tex.height != 2 {
		t.Errorf("Expected a re-upload with 2 rows, got uploads=%d height=%d", tex.uploads, tex.height)
	}
}
