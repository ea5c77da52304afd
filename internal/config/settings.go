package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the on-disk configuration file layout.
type Settings struct {
	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`
	Renderer struct {
		FPSLimit       int  `yaml:"fps_limit"`
		VSync          bool `yaml:"vsync"`
		TempBufferSize int  `yaml:"temp_buffer_size"`
		SheetSize      int  `yaml:"sheet_size"`
	} `yaml:"renderer"`
	Viewport struct {
		Zoom float32 `yaml:"zoom"`
	} `yaml:"viewport"`
}

// DefaultSettings captures the current global values.
func DefaultSettings() Settings {
	var s Settings
	s.Window.Width, s.Window.Height = GetWindowSize()
	s.Renderer.FPSLimit = GetFPSLimit()
	s.Renderer.VSync = GetVSync()
	s.Renderer.TempBufferSize = GetTempBufferSize()
	s.Renderer.SheetSize = GetSheetSize()
	s.Viewport.Zoom = GetZoom()
	return s
}

// LoadSettings reads a YAML settings file. A missing file yields the
// defaults without an error.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// SaveSettings writes the settings as YAML.
func SaveSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Apply pushes the settings into the global accessors, clamping each
// value the same way the individual setters do.
func (s Settings) Apply() {
	SetWindowSize(s.Window.Width, s.Window.Height)
	SetFPSLimit(s.Renderer.FPSLimit)
	SetVSync(s.Renderer.VSync)
	SetTempBufferSize(s.Renderer.TempBufferSize)
	SetSheetSize(s.Renderer.SheetSize)
	SetZoom(s.Viewport.Zoom)
}
