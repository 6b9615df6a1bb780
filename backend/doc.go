// Package backend provides a pluggable device registry for uibatch.
//
// Device implementations register a factory from their init() functions
// and are opened by name at runtime. The recording device registers on
// import:
//
//	import _ "github.com/gogpu/uibatch/recording"
//
// The GPU device lives in an internal package and registers when the
// binary is built without the nogpu tag:
//
//	import _ "github.com/gogpu/uibatch/internal/gpu"
//
// # Backend Selection
//
// Use OpenDefault() to get the best available device, or Open() to
// request a specific backend by name:
//
//	dev, name, err := backend.OpenDefault(backend.Config{Width: 800, Height: 600})
//
//	// Or request a specific backend
//	dev, err := backend.Open("recording", backend.Config{Width: 800, Height: 600})
//
// # Available Backends
//
// - "wgpu": offscreen GPU device via gogpu/wgpu (preferred)
// - "recording": in-memory command recorder (always available)
package backend
