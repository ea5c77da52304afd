package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport tracks the window size, zoom and scroll offset of a 2D scene
// and pushes them to a sprite batcher as its screen transform. Scrolling
// can be animated with an easing tween.
type Viewport struct {
	width, height int
	zoom          float32
	scroll        mgl32.Vec2

	panX *gween.Tween
	panY *gween.Tween
}

// NewViewport creates a viewport at zoom 1 with no scroll.
func NewViewport(width, height int) *Viewport {
	return &Viewport{width: width, height: height, zoom: 1}
}

// Size returns the viewport dimensions in pixels.
func (v *Viewport) Size() (int, int) {
	return v.width, v.height
}

// SetSize updates the viewport dimensions after a window resize.
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float32 {
	return v.zoom
}

// SetZoom sets the zoom factor. Values at or below zero are ignored.
func (v *Viewport) SetZoom(zoom float32) {
	if zoom > 0 {
		v.zoom = zoom
	}
}

// Scroll returns the current scroll offset in world pixels.
func (v *Viewport) Scroll() mgl32.Vec2 {
	return v.scroll
}

// SetScroll jumps to a scroll offset, cancelling any running animation.
func (v *Viewport) SetScroll(x, y float32) {
	v.scroll = mgl32.Vec2{x, y}
	v.panX = nil
	v.panY = nil
}

// CenterOn scrolls so the given world position sits mid-screen.
func (v *Viewport) CenterOn(x, y float32) {
	v.SetScroll(x-float32(v.width)/(2*v.zoom), y-float32(v.height)/(2*v.zoom))
}

// ScrollTo animates the scroll offset to (x, y) over the given duration
// in seconds using the easing function.
func (v *Viewport) ScrollTo(x, y, duration float32, fn ease.TweenFunc) {
	v.panX = gween.New(v.scroll.X(), x, duration, fn)
	v.panY = gween.New(v.scroll.Y(), y, duration, fn)
}

// Update advances a running scroll animation by dt seconds and reports
// whether the viewport is still moving.
func (v *Viewport) Update(dt float32) bool {
	if v.panX == nil {
		return false
	}
	x, doneX := v.panX.Update(dt)
	y, doneY := v.panY.Update(dt)
	v.scroll = mgl32.Vec2{x, y}
	if doneX && doneY {
		v.panX = nil
		v.panY = nil
		return false
	}
	return true
}

// Apply pushes the viewport state to the batcher's screen transform.
func (v *Viewport) Apply(sr *SpriteRenderer) {
	sr.SetViewportParams(v.width, v.height, v.zoom, v.scroll)
}
