package atlaspack

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Placement is one sprite's location inside the atlas.
type Placement struct {
	Page   int `yaml:"page"`
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Manifest describes a baked atlas on disk.
type Manifest struct {
	PageSize int                  `yaml:"page_size"`
	Pages    []string             `yaml:"pages"`
	Sprites  map[string]Placement `yaml:"sprites"`
}

// Manifest builds the on-disk description for this atlas. pageNames must
// have one file name per page.
func (a *Atlas) Manifest(pageNames []string) (Manifest, error) {
	if len(pageNames) != len(a.Pages) {
		return Manifest{}, fmt.Errorf("got %d page names for %d pages", len(pageNames), len(a.Pages))
	}

	m := Manifest{
		PageSize: a.PageSize,
		Pages:    pageNames,
		Sprites:  make(map[string]Placement, len(a.Entries)),
	}
	for _, e := range a.Entries {
		m.Sprites[e.Name] = Placement{
			Page:   e.Page,
			X:      e.X,
			Y:      e.Y,
			Width:  e.Width,
			Height: e.Height,
		}
	}
	return m, nil
}

// Save writes the manifest as YAML.
func (m Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("could not marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write manifest file: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest back from disk.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("could not read manifest file: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("could not unmarshal manifest yaml: %w", err)
	}
	return m, nil
}
