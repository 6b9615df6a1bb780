// Package uibatch composites the paint output of an immediate-mode widget
// toolkit into a minimal ordered list of GPU draw calls.
//
// # Overview
//
// Every frame the toolkit walks its widget tree and emits paint primitives,
// one at a time. Each primitive carries a texture, a blend mode, a clip
// rectangle and a handful of vertices (usually a quad as two triangles).
// uibatch collects the vertices into a shared [VertexPool] and places the
// resulting vertex ranges into a [BatchList], extending the last batch
// whenever the GPU state is unchanged. The [Submitter] then uploads the pool
// and issues one draw call per batch.
//
// # Quick Start
//
//	dev := recording.NewDevice()          // or a GPU device from internal/gpu
//	root := widget.NewRoot()
//	ui, err := uibatch.New(dev, root, uibatch.WithSize(800, 600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ui.Close()
//
//	for running {
//	    if err := ui.Frame(dt); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Frame Lifecycle
//
// A frame runs in three steps, always in this order:
//   - [UI.Update] pumps toolkit messages
//   - [UI.RenderUpdate] runs the [PaintDriver]: animations, state
//     transitions, processing, then the paint walk
//   - [UI.Render] hands the pool and batches to the [Submitter]
//
// [UI.Frame] runs all three.
//
// # Batching Rules
//
// A primitive extends the last batch only if the texture is the same
// object, the blend mode is identical, the scissor rectangle is identical
// and the new vertices start exactly where the batch ends. Batches are
// never reordered, so later primitives always draw on top of earlier ones.
//
// # Coordinate System
//
// Vertices are in target pixels with the origin at the top-left corner,
// X to the right and Y down. The projection built by [UIProjection] maps
// this space to normalized device coordinates.
//
// # Concurrency
//
// A [UI] is not safe for concurrent use. The package logger and the wrapper
// registry are.
package uibatch
