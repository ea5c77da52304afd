package atlaspack

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPackSingle(t *testing.T) {
	atlas, err := Pack(context.Background(), []Source{
		{Name: "red", Path: fixturePath("red_16.png")},
	}, Options{PageSize: 64, Padding: 1, Workers: 1}, nil)
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}

	if len(atlas.Pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(atlas.Pages))
	}
	entry, ok := atlas.Lookup("red")
	if !ok {
		t.Fatalf("Expected entry for 'red'")
	}
	if entry.X != 1 || entry.Y != 1 || entry.Width != 16 || entry.Height != 16 {
		t.Errorf("Expected entry at (1,1) 16x16, got (%d,%d) %dx%d", entry.X, entry.Y, entry.Width, entry.Height)
	}

	r, _, _, a := atlas.Pages[0].At(1, 1).RGBA()
	if r == 0 || a == 0 {
		t.Errorf("Expected red pixel copied to page at (1,1)")
	}
	_, _, _, a = atlas.Pages[0].At(0, 0).RGBA()
	if a != 0 {
		t.Errorf("Expected padding pixel at (0,0) to stay transparent")
	}
}

func TestPackNameOrder(t *testing.T) {
	// Sources given out of order must still pack alphabetically.
	atlas, err := Pack(context.Background(), []Source{
		{Name: "zz", Path: fixturePath("green_16.png")},
		{Name: "aa", Path: fixturePath("red_16.png")},
	}, Options{PageSize: 64, Padding: 1, Workers: 2}, nil)
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}

	if atlas.Entries[0].Name != "aa" || atlas.Entries[1].Name != "zz" {
		t.Fatalf("Expected entries sorted by name, got %s, %s", atlas.Entries[0].Name, atlas.Entries[1].Name)
	}
	if atlas.Entries[0].X != 1 {
		t.Errorf("Expected 'aa' placed first at x=1, got x=%d", atlas.Entries[0].X)
	}
	if atlas.Entries[1].X != 18 {
		t.Errorf("Expected 'zz' placed second at x=18, got x=%d", atlas.Entries[1].X)
	}
}

func TestPackRollover(t *testing.T) {
	sources := []Source{
		{Name: "s1", Path: fixturePath("red_16.png")},
		{Name: "s2", Path: fixturePath("green_16.png")},
		{Name: "s3", Path: fixturePath("red_16.png")},
		{Name: "s4", Path: fixturePath("green_16.png")},
		{Name: "s5", Path: fixturePath("red_16.png")},
	}
	atlas, err := Pack(context.Background(), sources, Options{PageSize: 40, Padding: 1, Workers: 2}, nil)
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}

	if len(atlas.Pages) != 2 {
		t.Fatalf("Expected rollover to 2 pages, got %d", len(atlas.Pages))
	}
	onFirst := 0
	for _, e := range atlas.Entries {
		if e.Page == 0 {
			onFirst++
		}
	}
	if onFirst != 4 {
		t.Errorf("Expected 4 entries on first page, got %d", onFirst)
	}

	// No two entries on the same page may overlap
	for i := range atlas.Entries {
		for j := i + 1; j < len(atlas.Entries); j++ {
			a, b := atlas.Entries[i], atlas.Entries[j]
			if a.Page != b.Page {
				continue
			}
			ra := image.Rect(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
			rb := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
			if ra.Overlaps(rb) {
				t.Errorf("Entries %s and %s overlap on page %d", a.Name, b.Name, a.Page)
			}
		}
	}
}

func TestPackTooBig(t *testing.T) {
	_, err := Pack(context.Background(), []Source{
		{Name: "big", Path: fixturePath("big_64.png")},
	}, Options{PageSize: 32, Padding: 1, Workers: 1}, nil)
	if err == nil {
		t.Fatalf("Expected an error for an image larger than the page")
	}
}

func TestPackRescale(t *testing.T) {
	atlas, err := Pack(context.Background(), []Source{
		{Name: "wide", Path: fixturePath("wide_64x32.png")},
	}, Options{PageSize: 64, Padding: 1, Workers: 1, MaxDim: 16}, nil)
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}

	entry, _ := atlas.Lookup("wide")
	if entry.Width != 16 || entry.Height != 8 {
		t.Errorf("Expected 64x32 scaled to 16x8, got %dx%d", entry.Width, entry.Height)
	}
}

func TestPackProgress(t *testing.T) {
	calls := 0
	lastDone, lastTotal := 0, 0
	_, err := Pack(context.Background(), []Source{
		{Name: "a", Path: fixturePath("red_16.png")},
		{Name: "b", Path: fixturePath("green_16.png")},
	}, Options{PageSize: 64, Workers: 1}, func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}

	if calls != 2 {
		t.Errorf("Expected 2 progress calls, got %d", calls)
	}
	if lastDone != 2 || lastTotal != 2 {
		t.Errorf("Expected final progress 2/2, got %d/%d", lastDone, lastTotal)
	}
}

func TestPackMissingFile(t *testing.T) {
	_, err := Pack(context.Background(), []Source{
		{Name: "ghost", Path: fixturePath("does_not_exist.png")},
	}, Options{PageSize: 64, Workers: 1}, nil)
	if err == nil {
		t.Fatalf("Expected an error for a missing source file")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	atlas, err := Pack(context.Background(), []Source{
		{Name: "red", Path: fixturePath("red_16.png")},
	}, Options{PageSize: 64, Padding: 1, Workers: 1}, nil)
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}

	manifest, err := atlas.Manifest([]string{"page0.png"})
	if err != nil {
		t.Fatalf("Failed to build manifest: %v", err)
	}

	path := fixturePath("manifest.yaml")
	if err := manifest.Save(path); err != nil {
		t.Fatalf("Failed to save manifest: %v", err)
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}

	if loaded.PageSize != 64 {
		t.Errorf("Expected page size 64, got %d", loaded.PageSize)
	}
	if len(loaded.Pages) != 1 || loaded.Pages[0] != "page0.png" {
		t.Errorf("Expected pages [page0.png], got %v", loaded.Pages)
	}
	placement, ok := loaded.Sprites["red"]
	if !ok {
		t.Fatalf("Expected 'red' in loaded manifest")
	}
	if placement.X != 1 || placement.Y != 1 || placement.Width != 16 || placement.Height != 16 {
		t.Errorf("Expected placement (1,1) 16x16, got (%d,%d) %dx%d",
			placement.X, placement.Y, placement.Width, placement.Height)
	}
}

func TestManifestPageNameMismatch(t *testing.T) {
	atlas, err := Pack(context.Background(), []Source{
		{Name: "red", Path: fixturePath("red_16.png")},
	}, Options{PageSize: 64, Workers: 1}, nil)
	if err != nil {
		t.Fatalf("Failed to pack: %v", err)
	}

	if _, err := atlas.Manifest(nil); err == nil {
		t.Errorf("Expected an error when page name count does not match")
	}
}

func TestMain(m *testing.M) {
	// Create image fixtures for packing tests
	os.MkdirAll("pack-test", 0755)

	writeTestPNG("pack-test/red_16.png", 16, 16, color.RGBA{R: 255, A: 255})
	writeTestPNG("pack-test/green_16.png", 16, 16, color.RGBA{G: 255, A: 255})
	writeTestPNG("pack-test/big_64.png", 64, 64, color.RGBA{B: 255, A: 255})
	writeTestPNG("pack-test/wide_64x32.png", 64, 32, color.RGBA{R: 255, G: 255, A: 255})

	exitCode := m.Run()
	os.RemoveAll("pack-test")
	os.Exit(exitCode)
}

func fixturePath(name string) string {
	return filepath.Join("pack-test", name)
}

func writeTestPNG(path string, w, h int, c color.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}
