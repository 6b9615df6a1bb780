//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/uibatch"
	"github.com/gogpu/wgpu/hal"
)

// VertexBuffer is a GPU vertex buffer sized in UI vertices.
type VertexBuffer struct {
	owner    *Device
	buf      hal.Buffer
	capacity int
}

// Capacity implements uibatch.VertexBuffer.
func (b *VertexBuffer) Capacity() int { return b.capacity }

// Release implements uibatch.VertexBuffer. Safe to call more than once.
func (b *VertexBuffer) Release() {
	if b.buf == nil {
		return
	}
	b.owner.releaseBuffer(b)
	b.buf = nil
	b.capacity = 0
}

// float32Bytes encodes words as little-endian bytes into dst, growing it
// as needed.
func float32Bytes(dst []byte, words []float32) []byte {
	n := len(words) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, f := range words {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
	return dst
}

var _ uibatch.VertexBuffer = (*VertexBuffer)(nil)
