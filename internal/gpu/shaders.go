//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/uibatch"
	"github.com/gogpu/wgpu/hal"
)

// Embedded UI batch shader source.
//
//go:embed shaders/ui.wgsl
var uiShaderSource string

// Shader errors.
var (
	// ErrEmptyShaderSource is returned when the embedded shader is missing.
	ErrEmptyShaderSource = errors.New("wgpu: ui shader source is empty")

	// ErrUnknownShader is returned for shader pairs the device cannot build.
	ErrUnknownShader = errors.New("wgpu: unknown shader pair")
)

// Shader entry points in ui.wgsl.
const (
	entryVSBasic         = "vs_basic"
	entryVSDiff          = "vs_diff"
	entryFSBasic         = "fs_basic"
	entryFSDiff          = "fs_diff"
	entryFSDiffAlphaMask = "fs_diff_alpha_mask"
	entryFSAlphaMap      = "fs_alpha_map"
)

// entryPoints returns the vertex and fragment entry points for pair.
// The Basic vertex shader forwards UVs when paired with the alpha map.
func entryPoints(pair uibatch.ShaderPair) (vs, fs string, err error) {
	switch pair.Pixel {
	case uibatch.ShaderBasic:
		fs = entryFSBasic
	case uibatch.ShaderBasicDiff:
		fs = entryFSDiff
	case uibatch.ShaderBasicDiffAlphaMask:
		fs = entryFSDiffAlphaMask
	case uibatch.ShaderBasicAlphaMap:
		fs = entryFSAlphaMap
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownShader, pair)
	}
	switch {
	case pair.Vertex == uibatch.ShaderBasicDiff, pair.Pixel == uibatch.ShaderBasicAlphaMap:
		vs = entryVSDiff
	case pair.Vertex == uibatch.ShaderBasic:
		vs = entryVSBasic
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownShader, pair)
	}
	return vs, fs, nil
}

// compileShaderToSPIRV compiles WGSL source to SPIR-V words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// createUIShader creates the UI shader module, from WGSL or, when spirv is
// set, from naga-compiled SPIR-V.
func createUIShader(device hal.Device, spirv bool) (hal.ShaderModule, error) {
	if uiShaderSource == "" {
		return nil, ErrEmptyShaderSource
	}
	src := hal.ShaderSource{WGSL: uiShaderSource}
	if spirv {
		code, err := compileShaderToSPIRV(uiShaderSource)
		if err != nil {
			return nil, err
		}
		src = hal.ShaderSource{SPIRV: code}
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ui_shader",
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("compile ui shader: %w", err)
	}
	return module, nil
}

// UIShaderSource returns the WGSL source of the UI batch shader.
func UIShaderSource() string {
	return uiShaderSource
}
