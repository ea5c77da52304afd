package graphics

import "testing"

func TestParseBlendMode(t *testing.T) {
	for m := BlendNone; m <= BlendScreen; m++ {
		got, err := ParseBlendMode(m.String())
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", m.String(), err)
		}
		if got != m {
			t.Errorf("Expected %v, got %v", m, got)
		}
	}

	if _, err := ParseBlendMode("overlay"); err == nil {
		t.Errorf("Expected an error for an unknown mode name")
	}
}
