package config

import "sync"

// RenderSettings holds renderer configuration
type RenderSettings struct {
	mu             sync.RWMutex
	fpsLimit       int
	vsync          bool
	tempBufferSize int // in vertices
	sheetSize      int // in pixels
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:       120,
	vsync:          false,
	tempBufferSize: 8192,
	sheetSize:      512,
}

// GetFPSLimit returns the frame rate cap; 0 means uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap; 0 disables the limiter
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetVSync returns whether buffer swaps wait for vertical sync
func GetVSync() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.vsync
}

// SetVSync sets whether buffer swaps wait for vertical sync
func SetVSync(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.vsync = enabled
}

// GetTempBufferSize returns the shared scratch buffer capacity in vertices
func GetTempBufferSize() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.tempBufferSize
}

// SetTempBufferSize sets the shared scratch buffer capacity in vertices
func SetTempBufferSize(size int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values; the buffer must hold whole quads
	if size < 512 {
		size = 512
	}
	if size > 1<<20 {
		size = 1 << 20
	}
	size -= size % 6

	globalRenderSettings.tempBufferSize = size
}

// GetSheetSize returns the square sheet dimension used by sheet builders
func GetSheetSize() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.sheetSize
}

// SetSheetSize sets the square sheet dimension used by sheet builders
func SetSheetSize(size int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if size < 64 {
		size = 64
	}
	if size > 4096 {
		size = 4096
	}

	globalRenderSettings.sheetSize = size
}
