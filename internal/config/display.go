package config

import "sync"

// DisplaySettings holds window and viewport configuration
type DisplaySettings struct {
	mu     sync.RWMutex
	width  int
	height int
	zoom   float32
}

var globalDisplaySettings = &DisplaySettings{
	width:  900,
	height: 600,
	zoom:   1.0,
}

// GetWindowSize returns the configured window dimensions
func GetWindowSize() (int, int) {
	globalDisplaySettings.mu.RLock()
	defer globalDisplaySettings.mu.RUnlock()
	return globalDisplaySettings.width, globalDisplaySettings.height
}

// SetWindowSize sets the window dimensions
func SetWindowSize(width, height int) {
	globalDisplaySettings.mu.Lock()
	defer globalDisplaySettings.mu.Unlock()

	if width < 320 {
		width = 320
	}
	if height < 240 {
		height = 240
	}

	globalDisplaySettings.width = width
	globalDisplaySettings.height = height
}

// GetZoom returns the viewport zoom factor
func GetZoom() float32 {
	globalDisplaySettings.mu.RLock()
	defer globalDisplaySettings.mu.RUnlock()
	return globalDisplaySettings.zoom
}

// SetZoom sets the viewport zoom factor
func SetZoom(zoom float32) {
	globalDisplaySettings.mu.Lock()
	defer globalDisplaySettings.mu.Unlock()

	if zoom < 0.25 {
		zoom = 0.25
	}
	if zoom > 4 {
		zoom = 4
	}

	globalDisplaySettings.zoom = zoom
}
