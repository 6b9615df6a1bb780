package uibatch

import "github.com/gogpu/gputypes"

// ShaderVariant names one vertex or pixel shader permutation.
type ShaderVariant uint8

// Shader variants.
const (
	// ShaderBasic draws vertex colors only.
	ShaderBasic ShaderVariant = iota
	// ShaderBasicDiff modulates vertex color by a color texture.
	ShaderBasicDiff
	// ShaderBasicDiffAlphaMask is ShaderBasicDiff with alpha-tested
	// discard, used when blending is off.
	ShaderBasicDiffAlphaMask
	// ShaderBasicAlphaMap modulates vertex alpha by an alpha-only texture.
	ShaderBasicAlphaMap

	shaderVariantCount
)

var shaderVariantNames = [shaderVariantCount]string{
	"Basic",
	"BasicDiff",
	"BasicDiffAlphaMask",
	"BasicAlphaMap",
}

// String returns the variant name.
func (v ShaderVariant) String() string {
	if v < shaderVariantCount {
		return shaderVariantNames[v]
	}
	return "unknown"
}

// ShaderPair is a vertex and pixel shader selection.
type ShaderPair struct {
	Vertex ShaderVariant
	Pixel  ShaderVariant
}

// String returns "vertex/pixel".
func (p ShaderPair) String() string {
	return p.Vertex.String() + "/" + p.Pixel.String()
}

// Shader pairs used by the compositor.
var (
	SolidShaders    = ShaderPair{Vertex: ShaderBasic, Pixel: ShaderBasic}
	AlphaMapShaders = ShaderPair{Vertex: ShaderBasic, Pixel: ShaderBasicAlphaMap}
	DiffMaskShaders = ShaderPair{Vertex: ShaderBasicDiff, Pixel: ShaderBasicDiffAlphaMask}
	DiffShaders     = ShaderPair{Vertex: ShaderBasicDiff, Pixel: ShaderBasicDiff}
)

// IsAlphaFormat reports whether f stores only an alpha/coverage channel.
func IsAlphaFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatR8Unorm
}

// SelectShaders picks the shader pair for a batch:
//   - no texture: solid color
//   - alpha-only texture: alpha map, whatever the blend mode
//   - color texture with a non-alpha blend mode: diffuse with alpha mask
//   - otherwise: diffuse
func SelectShaders(tex Texture, mode BlendMode) ShaderPair {
	switch {
	case tex == nil:
		return SolidShaders
	case IsAlphaFormat(tex.Format()):
		return AlphaMapShaders
	case !mode.IsAlphaBlend():
		return DiffMaskShaders
	default:
		return DiffShaders
	}
}
