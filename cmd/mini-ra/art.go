package main

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"mini-ra/internal/graphics"
)

// Procedurally generated placeholder art. Indexed images store a palette
// index in the red channel; the palette rows give them their team colors.

func packRGBA(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// rampPalette builds a 16-entry brightness ramp toward the given color.
// Entry 0 stays transparent.
func rampPalette(r, g, b uint8) *graphics.Palette {
	colors := make([]uint32, 16)
	for i := 1; i < 16; i++ {
		t := float64(i) / 15.0
		colors[i] = packRGBA(
			uint8(float64(r)*t),
			uint8(float64(g)*t),
			uint8(float64(b)*t),
			255,
		)
	}
	return graphics.NewPalette(colors)
}

// heatPalette runs black through red and yellow to white, for the
// color-shift overlay effect.
func heatPalette() *graphics.Palette {
	colors := make([]uint32, 16)
	for i := 1; i < 16; i++ {
		t := float64(i) / 15.0
		switch {
		case t < 0.4:
			colors[i] = packRGBA(uint8(255*t/0.4), 0, 0, 255)
		case t < 0.8:
			colors[i] = packRGBA(255, uint8(255*(t-0.4)/0.4), 0, 255)
		default:
			colors[i] = packRGBA(255, 255, uint8(255*(t-0.8)/0.2), 255)
		}
	}
	return graphics.NewPalette(colors)
}

func buildPalettes(backend graphics.Backend) (*graphics.HardwarePalette, error) {
	hp := graphics.NewHardwarePalette(backend)
	if err := hp.Add("allied", rampPalette(90, 140, 255), false); err != nil {
		return nil, err
	}
	if err := hp.Add("soviet", rampPalette(255, 80, 60), false); err != nil {
		return nil, err
	}
	if err := hp.Add("heat", heatPalette(), true); err != nil {
		return nil, err
	}
	return hp, nil
}

// indexedDiscImage draws a disc whose red channel ramps the palette index
// from the rim inward.
func indexedDiscImage(size, maxIndex int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			dist := math.Sqrt(dx*dx+dy*dy) / c
			if dist > 1 {
				continue
			}
			idx := 1 + int((1-dist)*float64(maxIndex-1))
			img.SetRGBA(x, y, color.RGBA{R: uint8(idx), A: 255})
		}
	}
	return img
}

// indexedDiamondImage draws a diamond with the index ramping toward the
// center.
func indexedDiamondImage(size, maxIndex int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dist := (math.Abs(float64(x)-c) + math.Abs(float64(y)-c)) / c
			if dist > 1 {
				continue
			}
			idx := 1 + int((1-dist)*float64(maxIndex-1))
			img.SetRGBA(x, y, color.RGBA{R: uint8(idx), A: 255})
		}
	}
	return img
}

// maskDiscImage writes coverage into the red channel: full inside, dimmed
// toward the rim. The batcher multiplies sprite alpha by this.
func maskDiscImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			dist := math.Sqrt(dx*dx+dy*dy) / c
			if dist > 1 {
				continue
			}
			cov := uint8(255)
			if dist > 0.75 {
				cov = uint8(255 * (1 - dist) / 0.25)
			}
			img.SetRGBA(x, y, color.RGBA{R: cov, A: 255})
		}
	}
	return img
}

// glowImage is a soft white radial falloff for additive halos.
func glowImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			dist := math.Sqrt(dx*dx+dy*dy) / c
			if dist > 1 {
				continue
			}
			a := uint8(255 * (1 - dist) * (1 - dist))
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: a})
		}
	}
	return img
}

// shadowImage is a dark ellipse for multiply-blended ground shadows.
func shadowImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w-1)/2, float64(h-1)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) - cx) / cx
			dy := (float64(y) - cy) / cy
			if dx*dx+dy*dy > 1 {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{R: 70, G: 70, B: 70, A: 255})
		}
	}
	return img
}

// bannerImage is a striped flag. The red channel varies per stripe so the
// color-shift palette has something to remap.
func bannerImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stripes := []color.RGBA{
		{R: 40, G: 60, B: 120, A: 255},
		{R: 230, G: 230, B: 230, A: 255},
		{R: 150, G: 30, B: 40, A: 255},
	}
	for y := 0; y < h; y++ {
		s := stripes[y*len(stripes)/h]
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, s)
		}
	}
	return img
}

// makeStarField pre-builds an additive vertex buffer of small untextured
// quads scattered over the world rectangle.
func makeStarField(count int, worldW, worldH float32) []graphics.Vertex {
	rng := rand.New(rand.NewSource(42))
	verts := make([]graphics.Vertex, 0, count*6)

	for i := 0; i < count; i++ {
		x := rng.Float32() * worldW
		y := rng.Float32() * worldH
		size := 1 + rng.Float32()*1.5
		brightness := 0.3 + rng.Float32()*0.7

		v := func(px, py float32) graphics.Vertex {
			return graphics.Vertex{
				X: px, Y: py,
				SamplerA: -1,
				R:        brightness, G: brightness, B: brightness, A: 1,
			}
		}
		a := v(x, y)
		b := v(x+size, y)
		c := v(x+size, y+size)
		d := v(x, y+size)
		verts = append(verts, a, b, c, c, d, a)
	}
	return verts
}
