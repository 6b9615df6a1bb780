//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uibatch"
	"github.com/gogpu/wgpu/hal"
)

// uiVertexStride is the byte stride per vertex in the UI pipeline.
// Layout per vertex:
//
//	position  (vec2<f32>)   = 8 bytes  (location 0)
//	color     (unorm8x4)    = 4 bytes  (location 1)
//	tex_coord (vec2<f32>)   = 8 bytes  (location 2)
//
// Total = 20 bytes per vertex.
const uiVertexStride = uibatch.VertexSize

// uiUniformSize is the byte size of the UI uniform buffer.
// Layout: view_proj (mat4x4<f32>) = 64 bytes + model (mat4x4<f32>) = 64 bytes
// + diff_color (vec4<f32>) = 16 bytes = 144 bytes.
const uiUniformSize = 144

// Uniform field offsets in bytes.
const (
	uniformViewProjOffset  = 0
	uniformModelOffset     = 64
	uniformDiffColorOffset = 128
)

// pipelineKey identifies one compiled render pipeline.
type pipelineKey struct {
	shaders uibatch.ShaderPair
	blend   uibatch.BlendMode
}

// uiPipeline owns the shader, layouts and sampler shared by every UI
// pipeline variant, plus the variants themselves. Variants are created
// lazily per shader pair and blend mode.
type uiPipeline struct {
	device hal.Device
	format gputypes.TextureFormat
	spirv  bool

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	sampler       hal.Sampler

	pipelines map[pipelineKey]hal.RenderPipeline
}

func newUIPipeline(device hal.Device, format gputypes.TextureFormat, spirv bool) *uiPipeline {
	return &uiPipeline{
		device:    device,
		format:    format,
		spirv:     spirv,
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
	}
}

// createBase compiles the UI shader and creates the layouts and sampler.
func (p *uiPipeline) createBase() error {
	shader, err := createUIShader(p.device, p.spirv)
	if err != nil {
		return err
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: UIUniforms (uniform buffer, vertex+fragment)
	//   Binding 1: diffuse texture (texture_2d, fragment)
	//   Binding 2: Sampler (fragment)
	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ui_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create ui uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ui_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create ui pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "ui_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create ui sampler: %w", err)
	}
	p.sampler = sampler
	return nil
}

// get returns the pipeline for key, creating it on first use.
func (p *uiPipeline) get(key pipelineKey) (hal.RenderPipeline, error) {
	if rp, ok := p.pipelines[key]; ok {
		return rp, nil
	}
	if p.shader == nil {
		if err := p.createBase(); err != nil {
			return nil, err
		}
	}
	vs, fs, err := entryPoints(key.shaders)
	if err != nil {
		return nil, err
	}

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("ui_pipeline_%s_%s", fs, key.blend),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vs,
			Buffers:    uiVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fs,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     key.blend.GPUBlendState(),
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create ui pipeline %s/%s: %w", key.shaders, key.blend, err)
	}
	p.pipelines[key] = pipeline
	slogger().Debug("ui pipeline created",
		"shaders", key.shaders.String(),
		"blend", key.blend.String(),
		"vs", vs,
		"fs", fs)
	return pipeline, nil
}

// count returns the number of compiled pipeline variants.
func (p *uiPipeline) count() int {
	return len(p.pipelines)
}

// destroy releases all pipeline resources in reverse creation order.
func (p *uiPipeline) destroy() {
	if p.device == nil {
		return
	}
	for key, rp := range p.pipelines {
		p.device.DestroyRenderPipeline(rp)
		delete(p.pipelines, key)
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// uiVertexLayout returns the vertex buffer layout for the UI pipeline.
func uiVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uiVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 8, ShaderLocation: 1},   // color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 2}, // tex_coord
			},
		},
	}
}
