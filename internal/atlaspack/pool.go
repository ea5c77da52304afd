package atlaspack

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// decodeJob represents a single image decode request
type decodeJob struct {
	index  int
	source Source
}

// decodeResult contains the decoded image or the error that stopped it
type decodeResult struct {
	index int
	img   *image.RGBA
	err   error
}

// decodePool fans image decoding out over worker goroutines
type decodePool struct {
	jobs    chan decodeJob
	results chan decodeResult
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	maxDim  int
}

func newDecodePool(parent context.Context, workers, queueSize, maxDim int) *decodePool {
	ctx, cancel := context.WithCancel(parent)

	pool := &decodePool{
		jobs:    make(chan decodeJob, queueSize),
		results: make(chan decodeResult, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		maxDim:  maxDim,
	}

	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// submit queues a job, blocking until there is room or the pool is cancelled
func (p *decodePool) submit(job decodeJob) {
	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
	}
}

func (p *decodePool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobs:
			img, err := loadRGBA(job.source.Path, p.maxDim)
			if err != nil {
				err = fmt.Errorf("could not decode image '%s': %w", job.source.Name, err)
			}

			select {
			case p.results <- decodeResult{index: job.index, img: img, err: err}:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *decodePool) shutdown() {
	p.cancel()
	p.wg.Wait()
}

// loadRGBA reads an image file, converts it to RGBA and scales it down
// so that neither side exceeds maxDim. maxDim <= 0 disables scaling.
func loadRGBA(path string, maxDim int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image file: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image file: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		scale := float64(maxDim) / float64(w)
		if h > w {
			scale = float64(maxDim) / float64(h)
		}
		dw := int(float64(w) * scale)
		dh := int(float64(h) * scale)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		return dst, nil
	}

	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Copy(rgba, image.Point{}, src, bounds, draw.Src, nil)
	return rgba, nil
}
