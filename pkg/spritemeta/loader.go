package spritemeta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Loader reads sequence definitions from an assets directory and resolves
// parent inheritance. Loaded sequences are cached by name.
type Loader struct {
	assetsPath string
	cache      map[string]*Sequence
}

func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		cache:      make(map[string]*Sequence),
	}
}

func (l *Loader) LoadSequence(name string) (*Sequence, error) {
	if seq, ok := l.cache[name]; ok {
		return seq, nil
	}

	path := filepath.Join(l.assetsPath, "sequences", name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read sequence file: %w", err)
	}

	var seq Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("could not unmarshal sequence json: %w", err)
	}

	if seq.Parent != "" {
		parent, err := l.LoadSequence(seq.Parent)
		if err != nil {
			return nil, fmt.Errorf("could not load parent sequence '%s': %w", seq.Parent, err)
		}

		if seq.Sheet == "" {
			seq.Sheet = parent.Sheet
		}
		if seq.Blend == "" {
			seq.Blend = parent.Blend
		}
		if seq.Palette == "" {
			seq.Palette = parent.Palette
		}
		if seq.Offset == nil {
			seq.Offset = parent.Offset
		}
		if seq.Rate == nil {
			seq.Rate = parent.Rate
		}
		if len(seq.Frames) == 0 {
			seq.Frames = parent.Frames
		}
	}

	l.cache[name] = &seq
	return &seq, nil
}
