package uibatch

import "image"

// Batch is one contiguous run of pool vertices drawable with a single GPU
// state set.
type Batch struct {
	BlendMode BlendMode
	// Scissor is the clip rectangle in target pixels.
	Scissor image.Rectangle
	// Texture is nil for solid-color geometry.
	Texture Texture
	// VertexStart and VertexEnd bound the half-open vertex range
	// [VertexStart, VertexEnd) in the frame's pool.
	VertexStart int
	VertexEnd   int
}

// Count returns the number of vertices in the batch.
func (b *Batch) Count() int {
	return b.VertexEnd - b.VertexStart
}

// Empty reports whether the batch covers no vertices.
func (b *Batch) Empty() bool {
	return b.VertexEnd <= b.VertexStart
}

// Mergeable reports whether a primitive with the given state starting at
// vertex start can extend b. Texture equality is identity, scissor
// equality is exact and the range must begin at b.VertexEnd.
func (b *Batch) Mergeable(tex Texture, mode BlendMode, scissor image.Rectangle, start int) bool {
	return b.Texture == tex &&
		b.BlendMode == mode &&
		b.Scissor == scissor &&
		b.VertexEnd == start
}

// BatchList is the ordered per-frame batch list.
//
// Batches are appended in paint order and never reordered. The zero value
// is ready to use.
type BatchList struct {
	batches []Batch
	merged  int
}

// Submit places the vertex range [start, end) with the given state into
// the list. Empty ranges are ignored. It reports whether the range was
// merged into the previous batch.
func (l *BatchList) Submit(tex Texture, mode BlendMode, scissor image.Rectangle, start, end int) bool {
	if end <= start {
		return false
	}
	if n := len(l.batches); n > 0 {
		last := &l.batches[n-1]
		if last.Mergeable(tex, mode, scissor, start) {
			last.VertexEnd = end
			l.merged++
			return true
		}
	}
	l.batches = append(l.batches, Batch{
		BlendMode:   mode,
		Scissor:     scissor,
		Texture:     tex,
		VertexStart: start,
		VertexEnd:   end,
	})
	return false
}

// Batches returns the ordered batch list. The slice is only valid until
// the next Submit or Reset.
func (l *BatchList) Batches() []Batch {
	return l.batches
}

// Len returns the number of batches.
func (l *BatchList) Len() int {
	return len(l.batches)
}

// Merged returns how many primitives were merged into an existing batch
// since the last Reset.
func (l *BatchList) Merged() int {
	return l.merged
}

// Reset empties the list and keeps its storage.
func (l *BatchList) Reset() {
	clear(l.batches)
	l.batches = l.batches[:0]
	l.merged = 0
}
