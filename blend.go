package uibatch

import "github.com/gogpu/gputypes"

// BlendMode selects how a batch's fragments combine with the target.
type BlendMode uint8

// Blend modes.
const (
	// BlendReplace writes the source color with blending disabled.
	BlendReplace BlendMode = iota
	// BlendAdd adds source to destination.
	BlendAdd
	// BlendMultiply multiplies destination by source.
	BlendMultiply
	// BlendAlpha is standard source-over alpha blending.
	BlendAlpha
	// BlendAddAlpha adds alpha-weighted source to destination.
	BlendAddAlpha
	// BlendPremulAlpha is source-over for premultiplied colors.
	BlendPremulAlpha
	// BlendInvDestAlpha draws behind existing content.
	BlendInvDestAlpha
	// BlendSubtract subtracts source from destination.
	BlendSubtract
	// BlendSubtractAlpha subtracts alpha-weighted source from destination.
	BlendSubtractAlpha

	blendModeCount
)

var blendModeNames = [blendModeCount]string{
	"replace",
	"add",
	"multiply",
	"alpha",
	"addalpha",
	"premulalpha",
	"invdestalpha",
	"subtract",
	"subtractalpha",
}

// String returns the lowercase name of the blend mode.
func (m BlendMode) String() string {
	if m < blendModeCount {
		return blendModeNames[m]
	}
	return "unknown"
}

// ParseBlendMode returns the blend mode with the given name.
func ParseBlendMode(name string) (BlendMode, bool) {
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), true
		}
	}
	return BlendReplace, false
}

// IsAlphaBlend reports whether m is one of the three alpha-blending modes
// (alpha, add-alpha, premultiplied alpha).
func (m BlendMode) IsAlphaBlend() bool {
	return m == BlendAlpha || m == BlendAddAlpha || m == BlendPremulAlpha
}

// GPUBlendState returns the pipeline blend state for m. A nil result means
// blending is disabled.
func (m BlendMode) GPUBlendState() *gputypes.BlendState {
	var bs gputypes.BlendState
	switch m {
	case BlendReplace:
		return nil
	case BlendAdd:
		bs = uniformBlend(gputypes.BlendFactorOne, gputypes.BlendFactorOne, gputypes.BlendOperationAdd)
	case BlendMultiply:
		bs = uniformBlend(gputypes.BlendFactorDst, gputypes.BlendFactorZero, gputypes.BlendOperationAdd)
	case BlendAlpha:
		bs = gputypes.BlendStateAlpha()
	case BlendAddAlpha:
		bs = uniformBlend(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOne, gputypes.BlendOperationAdd)
	case BlendPremulAlpha:
		bs = gputypes.BlendStatePremultiplied()
	case BlendInvDestAlpha:
		bs = uniformBlend(gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorDstAlpha, gputypes.BlendOperationAdd)
	case BlendSubtract:
		bs = uniformBlend(gputypes.BlendFactorOne, gputypes.BlendFactorOne, gputypes.BlendOperationReverseSubtract)
	case BlendSubtractAlpha:
		bs = uniformBlend(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOne, gputypes.BlendOperationReverseSubtract)
	default:
		return nil
	}
	return &bs
}

func uniformBlend(src, dst gputypes.BlendFactor, op gputypes.BlendOperation) gputypes.BlendState {
	c := gputypes.BlendComponent{SrcFactor: src, DstFactor: dst, Operation: op}
	return gputypes.BlendState{Color: c, Alpha: c}
}
