package uibatch

import "image"

// Primitive is one drawable unit emitted by the toolkit during the paint
// walk. Vertices are already in the fixed UI layout (see VertexStride).
type Primitive struct {
	BlendMode BlendMode
	// Texture is nil for solid-color geometry.
	Texture Texture
	// Clip is the scissor rectangle in target pixels. The zero rectangle
	// means the root rectangle; any other empty rectangle clips the
	// primitive away.
	Clip     image.Rectangle
	Vertices []float32
}

// PrimitiveSink receives primitives synchronously while the toolkit
// paints.
type PrimitiveSink interface {
	OnPrimitive(p Primitive)
}

// Toolkit is the widget-tree collaborator driven once per frame.
type Toolkit interface {
	// AdvanceAnimations steps time-based animations.
	AdvanceAnimations()

	// ProcessStates resolves pending widget state transitions.
	ProcessStates()

	// Process runs general per-frame widget processing.
	Process()

	// BeginPaint starts a paint pass on a root of the given size.
	BeginPaint(width, height int)

	// Paint walks the tree and emits every primitive to sink.
	Paint(sink PrimitiveSink)

	// EndPaint finishes the paint pass.
	EndPaint()
}

// PaintDriver runs one repaint pass over a toolkit and routes every
// primitive into its vertex pool and batch list.
type PaintDriver struct {
	pool    *VertexPool
	batches BatchList
	root    image.Rectangle

	primitives int
	skipped    int
}

// NewPaintDriver returns a driver whose pool starts with room for
// capacity vertices.
func NewPaintDriver(capacity int) *PaintDriver {
	return &PaintDriver{pool: NewVertexPool(capacity)}
}

// Run executes one frame's paint pass on a root of width x height:
// animations, state transitions, processing, begin paint, the paint walk
// and end paint, in that order. The pool and batch list are cleared first.
func (d *PaintDriver) Run(tk Toolkit, width, height int) {
	d.pool.Clear()
	d.batches.Reset()
	d.primitives, d.skipped = 0, 0
	d.root = image.Rect(0, 0, width, height)

	tk.AdvanceAnimations()
	tk.ProcessStates()
	tk.Process()
	tk.BeginPaint(width, height)
	tk.Paint(d)
	tk.EndPaint()
}

// OnPrimitive implements PrimitiveSink.
func (d *PaintDriver) OnPrimitive(p Primitive) {
	d.primitives++
	if len(p.Vertices) < VertexStride {
		d.skipped++
		return
	}
	clip := p.Clip
	if clip == (image.Rectangle{}) {
		clip = d.root
	}
	if clip.Empty() {
		d.skipped++
		return
	}
	start := d.pool.Append(p.Vertices)
	d.batches.Submit(p.Texture, p.BlendMode, clip, start, d.pool.Len())
}

// Pool returns the frame's vertex pool.
func (d *PaintDriver) Pool() *VertexPool {
	return d.pool
}

// Batches returns the frame's ordered batch list.
func (d *PaintDriver) Batches() []Batch {
	return d.batches.Batches()
}

// Root returns the root rectangle of the last pass.
func (d *PaintDriver) Root() image.Rectangle {
	return d.root
}

// Stats returns counters for the last pass.
func (d *PaintDriver) Stats() FrameStats {
	return FrameStats{
		Vertices:   d.pool.Len(),
		Primitives: d.primitives,
		Skipped:    d.skipped,
		Merged:     d.batches.Merged(),
		Batches:    d.batches.Len(),
	}
}
