// Package atlaspack bakes loose sprite images into fixed-size atlas pages.
//
// Decoding fans out over a worker pool, placement is single-threaded and
// deterministic: sources are packed in name order with a row-based shelf
// layout, so the same inputs always produce the same pages.
package atlaspack

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sort"

	"golang.org/x/image/draw"
)

// Source names one image file to be packed.
type Source struct {
	Name string
	Path string
}

// Options controls page geometry and decode parallelism.
type Options struct {
	PageSize int // width and height of each page in pixels
	Padding  int // blank pixels around each placed image
	Workers  int // decode goroutines, <= 0 means NumCPU
	MaxDim   int // images larger than this get scaled down, <= 0 disables
}

func (o Options) normalized() Options {
	if o.PageSize <= 0 {
		o.PageSize = 1024
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Entry records where one source image ended up.
type Entry struct {
	Name   string
	Page   int
	X      int
	Y      int
	Width  int
	Height int
}

// Atlas is the packed result: RGBA pages plus one entry per source.
type Atlas struct {
	PageSize int
	Pages    []*image.RGBA
	Entries  []Entry
}

// Lookup returns the entry for a source name.
func (a *Atlas) Lookup(name string) (Entry, bool) {
	for _, e := range a.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Pack decodes all sources and packs them into atlas pages. progress, if
// non-nil, is called after each image finishes decoding.
func Pack(ctx context.Context, sources []Source, opts Options, progress func(done, total int)) (*Atlas, error) {
	opts = opts.normalized()

	if len(sources) == 0 {
		return &Atlas{PageSize: opts.PageSize}, nil
	}

	images, err := decodeAll(ctx, sources, opts, progress)
	if err != nil {
		return nil, err
	}

	return place(sources, images, opts)
}

func decodeAll(ctx context.Context, sources []Source, opts Options, progress func(done, total int)) ([]*image.RGBA, error) {
	pool := newDecodePool(ctx, opts.Workers, len(sources), opts.MaxDim)
	defer pool.shutdown()

	go func() {
		for i, src := range sources {
			pool.submit(decodeJob{index: i, source: src})
		}
	}()

	images := make([]*image.RGBA, len(sources))
	for done := 0; done < len(sources); done++ {
		select {
		case res := <-pool.results:
			if res.err != nil {
				return nil, res.err
			}
			images[res.index] = res.img
			if progress != nil {
				progress(done+1, len(sources))
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return images, nil
}

// place lays decoded images out on shelf rows, page by page.
func place(sources []Source, images []*image.RGBA, opts Options) (*Atlas, error) {
	order := make([]int, len(sources))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return sources[order[a]].Name < sources[order[b]].Name })

	atlas := &Atlas{PageSize: opts.PageSize}
	atlas.Pages = append(atlas.Pages, newPage(opts.PageSize))

	x, y, rowHeight := opts.Padding, opts.Padding, 0

	for _, i := range order {
		img := images[i]
		w := img.Bounds().Dx()
		h := img.Bounds().Dy()

		if w+2*opts.Padding > opts.PageSize || h+2*opts.Padding > opts.PageSize {
			return nil, fmt.Errorf("image '%s' is %dx%d and does not fit a %d pixel page",
				sources[i].Name, w, h, opts.PageSize)
		}

		if x+w+opts.Padding > opts.PageSize {
			// Next row
			x = opts.Padding
			y += rowHeight + opts.Padding
			rowHeight = 0
		}
		if y+h+opts.Padding > opts.PageSize {
			// Next page
			atlas.Pages = append(atlas.Pages, newPage(opts.PageSize))
			x, y, rowHeight = opts.Padding, opts.Padding, 0
		}

		page := len(atlas.Pages) - 1
		dst := atlas.Pages[page]
		draw.Copy(dst, image.Point{X: x, Y: y}, img, img.Bounds(), draw.Src, nil)

		atlas.Entries = append(atlas.Entries, Entry{
			Name:   sources[i].Name,
			Page:   page,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		})

		x += w + opts.Padding
		if h > rowHeight {
			rowHeight = h
		}
	}

	return atlas, nil
}

func newPage(size int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, size, size))
}
