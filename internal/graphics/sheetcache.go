package graphics

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"
	"sync"
)

// LoadSheet reads an image file into a new sheet. The device texture is
// created lazily on first draw.
func LoadSheet(backend Backend, path string) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	sheet := NewSheet(backend, rgba.Rect.Size())
	sheet.WriteRegion(rgba, image.Point{})
	return sheet, nil
}

// SheetCache loads sheets from disk at most once per path.
type SheetCache struct {
	backend Backend
	mu      sync.RWMutex
	sheets  map[string]*Sheet
}

// NewSheetCache creates an empty cache loading through the backend.
func NewSheetCache(backend Backend) *SheetCache {
	return &SheetCache{
		backend: backend,
		sheets:  make(map[string]*Sheet),
	}
}

// Get returns the cached sheet for the given path, loading it from disk
// on first use.
func (c *SheetCache) Get(path string) (*Sheet, error) {
	c.mu.RLock()
	if sheet, ok := c.sheets[path]; ok {
		c.mu.RUnlock()
		return sheet, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if sheet, ok := c.sheets[path]; ok {
		return sheet, nil
	}

	sheet, err := LoadSheet(c.backend, path)
	if err != nil {
		return nil, err
	}

	c.sheets[path] = sheet
	return sheet, nil
}

// Dispose releases the device textures of all cached sheets and empties
// the cache.
func (c *SheetCache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, sheet := range c.sheets {
		sheet.Dispose()
		delete(c.sheets, path)
	}
}
