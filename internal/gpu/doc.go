//go:build !nogpu

// Package gpu implements the uibatch graphics device on the Pure Go
// gogpu/wgpu hardware abstraction layer (zero CGO), which drives Vulkan,
// Metal, DX12 or GLES depending on the platform.
//
// # Architecture
//
// Device renders every UI frame as one render pass into an offscreen
// color target:
//
//	UploadVertexData -> BeginFrame (clear) -> per batch: pipeline, bind group, scissor, Draw -> EndFrame (submit, wait)
//
// Key components:
//
//   - Device: uibatch.Device and uibatch.TextureCreator over hal
//   - uiPipeline: WGSL shader, bind group layout, sampler and one render
//     pipeline per shader pair and blend mode, created on first use
//   - Texture: sampled RGBA8Unorm or R8Unorm texture with its own bind group
//   - VertexBuffer: vertex buffer sized in 20-byte UI vertices
//
// # Shaders
//
// shaders/ui.wgsl holds two vertex entry points (vs_basic without texture
// coordinates, vs_diff with them) and four fragment entry points, one per
// pixel shader variant: fs_basic, fs_diff, fs_diff_alpha_mask and
// fs_alpha_map. Options.SPIRV routes the source through naga first.
//
// # Usage
//
// Open a device on the best local GPU:
//
//	dev, err := gpu.Open(gpu.Options{Width: 1280, Height: 720})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ui, err := uibatch.New(dev, toolkit, uibatch.WithSize(1280, 720))
//
// Hosts that already own a GPU pass a gpucontext.DeviceProvider to
// NewFromProvider, or hal objects to NewFromHAL. Importing the package
// also registers the "wgpu" backend with the backend registry.
//
// # Thread Safety
//
// Device is driven from one goroutine. CreateTexture, UpdateTexture and
// Texture.Release may run on another goroutine between frames.
package gpu
