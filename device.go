package uibatch

import (
	"image"

	"github.com/gogpu/gputypes"
)

// Texture is a device texture handle.
//
// Batches compare textures by identity, so implementations must be
// comparable; pointer types are the norm.
//
// "No texture" is the untyped nil interface. A typed nil pointer is a
// texture like any other and selects a textured shader, so its Format
// and Size must not dereference the receiver.
type Texture interface {
	// Format returns the pixel format. An alpha-only format
	// (R8Unorm) selects the alpha-map shader.
	Format() gputypes.TextureFormat

	// Size returns the texture dimensions in pixels.
	Size() image.Point
}

// VertexBuffer is a device-resident vertex buffer.
type VertexBuffer interface {
	// Capacity returns the buffer size in vertices.
	Capacity() int

	// Release frees the device memory. The buffer must not be used after.
	Release()
}

// ElementMask selects the vertex attributes present in a vertex buffer.
type ElementMask uint32

// Vertex elements.
const (
	ElementPosition ElementMask = 1 << iota
	ElementColor
	ElementTexCoord1
)

// UIElements is the attribute mask of every UI vertex buffer.
const UIElements = ElementPosition | ElementColor | ElementTexCoord1

// PrimitiveType is the topology of a draw call.
type PrimitiveType uint8

// Primitive types.
const (
	TriangleList PrimitiveType = iota
)

// String returns the topology name.
func (p PrimitiveType) String() string {
	if p == TriangleList {
		return "trianglelist"
	}
	return "unknown"
}

// Shader parameter names set for every batch.
const (
	ParamViewProj     = "ViewProj"
	ParamModel        = "Model"
	ParamMatDiffColor = "MatDiffColor"
)

// Device is the narrow graphics interface the compositor draws through.
//
// Calls arrive in a fixed order each frame: CreateOrResizeVertexBuffer
// (only when the buffer must change), UploadVertexData, BeginFrame, then
// per batch SetShaders, SetBlendMode, SetScissor, SetTexture,
// SetShaderParameter and Draw, and finally EndFrame.
type Device interface {
	// BeginFrame starts drawing to a target of the given pixel size.
	BeginFrame(width, height int) error

	// EndFrame finishes the frame and submits recorded work.
	EndFrame() error

	// SetShaders selects the vertex and pixel shader variants.
	SetShaders(pair ShaderPair) error

	// SetBlendMode sets the blend mode for subsequent draws.
	SetBlendMode(mode BlendMode)

	// SetScissor enables or disables the scissor test with rect in
	// target pixels.
	SetScissor(enable bool, rect image.Rectangle)

	// SetTexture binds tex (nil unbinds) to a texture unit.
	SetTexture(slot int, tex Texture)

	// SetShaderParameter sets a named uniform. Values are Matrix4 or
	// [4]float32.
	SetShaderParameter(name string, value any)

	// Draw issues one non-indexed draw of count vertices starting at
	// start in the bound vertex buffer.
	Draw(prim PrimitiveType, start, count int) error

	// CreateOrResizeVertexBuffer returns a buffer holding exactly count
	// vertices with the given attributes. buf is the previous buffer or
	// nil; it is released or reused by the device.
	CreateOrResizeVertexBuffer(buf VertexBuffer, count int, mask ElementMask) (VertexBuffer, error)

	// UploadVertexData copies data into buf and binds it for drawing.
	UploadVertexData(buf VertexBuffer, data []float32) error
}

// TextureCreator is implemented by devices that create textures from
// images. An *image.Alpha source yields an alpha-only (R8Unorm) texture;
// any other image yields RGBA8Unorm.
type TextureCreator interface {
	CreateTexture(img image.Image) (Texture, error)

	// UpdateTexture replaces the contents of tex with img, which must
	// have the texture's size and format class.
	UpdateTexture(tex Texture, img image.Image) error
}

// TextureCreatorSetter is implemented by toolkits that need device
// textures for skins and glyph atlases.
type TextureCreatorSetter interface {
	SetTextureCreator(tc TextureCreator)
}

// TextureFormatFor returns the texture format a TextureCreator uses for img.
func TextureFormatFor(img image.Image) gputypes.TextureFormat {
	if _, ok := img.(*image.Alpha); ok {
		return gputypes.TextureFormatR8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}
