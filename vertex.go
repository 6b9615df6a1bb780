package uibatch

import (
	"image"
	"image/color"
	"math"
)

// VertexStride is the number of float32 words per vertex.
//
// Layout per vertex:
//
//	position (x, y)        2 words
//	color    (packed RGBA) 1 word, RGBA8 bit pattern
//	texcoord (u, v)        2 words
const VertexStride = 5

// VertexSize is the byte size of one vertex.
const VertexSize = VertexStride * 4

// Vertex is one UI vertex in target pixel space.
type Vertex struct {
	X, Y  float32
	Color color.RGBA
	U, V  float32
}

// PackColor returns c packed as R | G<<8 | B<<16 | A<<24 and stored in the
// bits of a float32, matching an unorm8x4 vertex attribute.
func PackColor(c color.RGBA) float32 {
	bits := uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
	return math.Float32frombits(bits)
}

// UnpackColor reverses PackColor.
func UnpackColor(f float32) color.RGBA {
	bits := math.Float32bits(f)
	return color.RGBA{R: uint8(bits), G: uint8(bits >> 8), B: uint8(bits >> 16), A: uint8(bits >> 24)}
}

// AppendTo appends the vertex words to dst.
func (v Vertex) AppendTo(dst []float32) []float32 {
	return append(dst, v.X, v.Y, PackColor(v.Color), v.U, v.V)
}

// AppendQuad appends rect r as two triangles with a single color and the
// texture coordinates of uv to dst.
//
// Triangle order: top-left, top-right, bottom-right, then bottom-right,
// bottom-left, top-left.
func AppendQuad(dst []float32, r image.Rectangle, c color.RGBA, uv [4]float32) []float32 {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	u0, v0, u1, v1 := uv[0], uv[1], uv[2], uv[3]
	pc := PackColor(c)
	return append(dst,
		x0, y0, pc, u0, v0,
		x1, y0, pc, u1, v0,
		x1, y1, pc, u1, v1,
		x1, y1, pc, u1, v1,
		x0, y1, pc, u0, v1,
		x0, y0, pc, u0, v0,
	)
}

// FullUV covers the whole texture.
var FullUV = [4]float32{0, 0, 1, 1}
