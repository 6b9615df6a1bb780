package uibatch

import "fmt"

// VertexPool is a growable flat buffer of interleaved vertex words
// collected during one paint pass.
//
// The pool is owned by a single frame: it is cleared at frame start,
// appended to while painting and read at submission. Clear keeps the
// backing storage so steady-state frames do not allocate.
type VertexPool struct {
	data []float32
}

// NewVertexPool returns a pool with room for capacity vertices.
func NewVertexPool(capacity int) *VertexPool {
	if capacity < 0 {
		capacity = 0
	}
	return &VertexPool{data: make([]float32, 0, capacity*VertexStride)}
}

// Append appends raw vertex words to the pool and returns the vertex
// offset at which they were written.
//
// The caller guarantees stride conformance; a partial trailing vertex
// is a programming error and panics.
func (p *VertexPool) Append(words []float32) int {
	if len(words)%VertexStride != 0 {
		panic(fmt.Sprintf("uibatch: vertex data length %d is not a multiple of stride %d", len(words), VertexStride))
	}
	start := p.Len()
	p.growFor(len(words))
	p.data = append(p.data, words...)
	return start
}

// growFor makes room for n more words, doubling capacity when full.
func (p *VertexPool) growFor(n int) {
	need := len(p.data) + n
	if need <= cap(p.data) {
		return
	}
	newCap := max(2*cap(p.data), need, 64*VertexStride)
	grown := make([]float32, len(p.data), newCap)
	copy(grown, p.data)
	p.data = grown
}

// Clear resets the pool to zero vertices without releasing storage.
func (p *VertexPool) Clear() {
	p.data = p.data[:0]
}

// Len returns the number of vertices in the pool.
func (p *VertexPool) Len() int {
	return len(p.data) / VertexStride
}

// Cap returns the number of vertices the pool can hold without growing.
func (p *VertexPool) Cap() int {
	return cap(p.data) / VertexStride
}

// Floats returns the pool contents. The slice is only valid until the
// next Append or Clear and must not be modified.
func (p *VertexPool) Floats() []float32 {
	return p.data
}

// Vertex decodes the vertex at index i.
func (p *VertexPool) Vertex(i int) Vertex {
	w := p.data[i*VertexStride : (i+1)*VertexStride]
	return Vertex{X: w[0], Y: w[1], Color: UnpackColor(w[2]), U: w[3], V: w[4]}
}
