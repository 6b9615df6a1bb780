// Package recording provides a graphics device that records compositor
// calls as typed commands.
//
// The recording device implements uibatch.Device without a GPU. It is used
// to assert draw order and state in tests, to print frame traces, and to
// replay a captured frame onto another device.
//
// # Architecture
//
// The system follows a Command Pattern:
//
//   - Device: implements uibatch.Device and appends one Command per call
//   - Command: a typed struct per device call (Draw, SetScissor, ...)
//   - TexturePool: textures referenced by SetTexture commands
//
// # Basic Usage
//
//	dev := recording.NewDevice()
//	ui, _ := uibatch.New(dev, root, uibatch.WithSize(800, 600))
//	_ = ui.Frame(0)
//
//	for _, d := range dev.Draws() {
//	    fmt.Println(d) // shaders, blend, scissor, texture, vertex range
//	}
//
// # Replay
//
// A recorded command list can be played back onto any uibatch.Device,
// for example a GPU device, with Device.Playback.
//
// # Failure Injection
//
// FailResize and FailUpload make the next buffer call fail so tests can
// check that no draw is issued for a frame whose upload failed.
//
// # Thread Safety
//
// Device is not safe for concurrent use.
package recording
