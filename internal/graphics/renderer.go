package graphics

// FrameStats counts submissions since the last BeginFrame.
type FrameStats struct {
	DrawCalls int
	Flushes   int
	Vertices  int
}

// Renderer owns the backend and coordinates the batchers sharing its
// scratch budget. Only one BatchRenderer may hold buffered geometry at a
// time: claiming the buffer flushes the previous owner, so two batching
// strategies active in the same frame never interleave their output.
type Renderer struct {
	backend      Backend
	currentBatch BatchRenderer
	stats        FrameStats
}

// NewRenderer wraps a backend.
func NewRenderer(backend Backend) *Renderer {
	return &Renderer{backend: backend}
}

// TempBufferSize reports the shared scratch capacity in vertices.
func (r *Renderer) TempBufferSize() int {
	return r.backend.TempBufferSize()
}

// SetCurrentBatch hands the shared buffer to b, flushing the previous
// owner first. Passing the current owner again is a no-op.
func (r *Renderer) SetCurrentBatch(b BatchRenderer) {
	if r.currentBatch == b {
		return
	}
	if r.currentBatch != nil {
		r.currentBatch.Flush()
	}
	r.currentBatch = b
}

// Flush submits whatever the current batch owner has buffered and
// releases ownership.
func (r *Renderer) Flush() {
	if r.currentBatch != nil {
		r.currentBatch.Flush()
		r.currentBatch = nil
	}
}

// BeginFrame clears the screen and resets the frame counters.
func (r *Renderer) BeginFrame() {
	r.backend.Clear()
	r.stats = FrameStats{}
}

// EndFrame flushes any remaining batched geometry.
func (r *Renderer) EndFrame() {
	r.Flush()
}

// Stats returns the submission counters for the current frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

func (r *Renderer) countDraw(vertices int, flush bool) {
	r.stats.DrawCalls++
	r.stats.Vertices += vertices
	if flush {
		r.stats.Flushes++
	}
}
