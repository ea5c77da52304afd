package spritemeta

import (
	"os"
	"testing"
)

func TestLoadSimpleSequence(t *testing.T) {
	loader := NewLoader("meta-test")
	seq, err := loader.LoadSequence("torch_idle")
	if err != nil {
		t.Fatalf("Failed to load sequence: %v", err)
	}

	if seq.Sheet != "props" {
		t.Errorf("Expected sheet 'props', got '%s'", seq.Sheet)
	}
	if seq.Blend != "alpha" {
		t.Errorf("Expected blend 'alpha', got '%s'", seq.Blend)
	}
	if len(seq.Frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(seq.Frames))
	}
	if seq.Frames[1].X != 16 || seq.Frames[1].Width != 16 {
		t.Errorf("Expected second frame at x=16 width=16, got x=%d width=%d", seq.Frames[1].X, seq.Frames[1].Width)
	}
}

func TestLoadChildSequence(t *testing.T) {
	loader := NewLoader("meta-test")
	seq, err := loader.LoadSequence("torch_glow")
	if err != nil {
		t.Fatalf("Failed to load sequence: %v", err)
	}

	if seq.Sheet != "props" {
		t.Errorf("Expected sheet to be inherited as 'props', got '%s'", seq.Sheet)
	}
	if seq.Blend != "additive" {
		t.Errorf("Expected blend override 'additive', got '%s'", seq.Blend)
	}
	if len(seq.Frames) != 2 {
		t.Errorf("Expected 2 frames from parent, got %d", len(seq.Frames))
	}
	if seq.Rate == nil || *seq.Rate != 8 {
		t.Errorf("Expected rate 8 to be inherited")
	}
}

func TestCompactFrameForm(t *testing.T) {
	loader := NewLoader("meta-test")
	seq, err := loader.LoadSequence("spark")
	if err != nil {
		t.Fatalf("Failed to load sequence: %v", err)
	}

	if len(seq.Frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(seq.Frames))
	}
	f := seq.Frames[2]
	if f.X != 16 || f.Y != 8 || f.Width != 8 || f.Height != 8 {
		t.Errorf("Expected frame [16 8 8 8], got [%d %d %d %d]", f.X, f.Y, f.Width, f.Height)
	}
}

func TestSequenceCache(t *testing.T) {
	loader := NewLoader("meta-test")
	seq1, err := loader.LoadSequence("torch_idle")
	if err != nil {
		t.Fatalf("Failed to load sequence first time: %v", err)
	}

	seq2, err := loader.LoadSequence("torch_idle")
	if err != nil {
		t.Fatalf("Failed to load sequence second time: %v", err)
	}

	if seq1 != seq2 {
		t.Errorf("Expected the same sequence instance to be returned from cache")
	}
}

func TestParentNotMutatedByChildren(t *testing.T) {
	loader := NewLoader("meta-test")

	c1, err := loader.LoadSequence("torch_glow")
	if err != nil {
		t.Fatalf("Failed to load first child: %v", err)
	}
	c2, err := loader.LoadSequence("torch_smoke")
	if err != nil {
		t.Fatalf("Failed to load second child: %v", err)
	}

	if c1.Palette != "fire" {
		t.Errorf("Expected first child palette 'fire', got '%s'", c1.Palette)
	}
	if c2.Palette != "ash" {
		t.Errorf("Expected second child palette 'ash', got '%s'", c2.Palette)
	}

	parent, err := loader.LoadSequence("torch_idle")
	if err != nil {
		t.Fatalf("Failed to load parent: %v", err)
	}
	if parent.Palette != "" {
		t.Errorf("Parent sequence in cache was mutated! Got palette '%s'", parent.Palette)
	}
	if parent.Blend != "alpha" {
		t.Errorf("Parent sequence in cache was mutated! Got blend '%s'", parent.Blend)
	}
}

func TestMissingSequence(t *testing.T) {
	loader := NewLoader("meta-test")
	if _, err := loader.LoadSequence("does_not_exist"); err == nil {
		t.Errorf("Expected an error for a missing sequence file")
	}
}

func TestMain(m *testing.M) {
	// Create dummy files for testing
	os.MkdirAll("meta-test/sequences", 0755)

	// torch_idle.json
	writeTestFile("meta-test/sequences/torch_idle.json", `{
		"sheet": "props",
		"blend": "alpha",
		"rate": 8,
		"frames": [ { "x": 0, "y": 0, "width": 16, "height": 32 }, { "x": 16, "y": 0, "width": 16, "height": 32 } ]
	}`)

	// torch_glow.json
	writeTestFile("meta-test/sequences/torch_glow.json", `{
		"parent": "torch_idle",
		"blend": "additive",
		"palette": "fire"
	}`)

	// torch_smoke.json
	writeTestFile("meta-test/sequences/torch_smoke.json", `{
		"parent": "torch_idle",
		"palette": "ash"
	}`)

	// spark.json uses the compact frame form
	writeTestFile("meta-test/sequences/spark.json", `{
		"sheet": "effects",
		"blend": "additive",
		"frames": [ [0, 8, 8, 8], [8, 8, 8, 8], [16, 8, 8, 8] ]
	}`)

	exitCode := m.Run()
	os.RemoveAll("meta-test")
	os.Exit(exitCode)
}

func writeTestFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		panic(err)
	}
}
