package backend

import (
	"errors"
	"log/slog"

	"github.com/gogpu/uibatch"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidSize is returned for non-positive target sizes.
	ErrInvalidSize = errors.New("backend: invalid target size")
)

// Backend name constants.
const (
	// BackendWGPU is the GPU device built on gogpu/wgpu.
	BackendWGPU = "wgpu"
	// BackendRecording is the in-memory command recorder.
	BackendRecording = "recording"
)

// Config describes the device a factory should open.
type Config struct {
	// Width and Height are the initial render target size in pixels.
	Width, Height int

	// Logger receives device diagnostics. Nil uses uibatch.Logger().
	Logger *slog.Logger
}

// Validate checks that the target size is usable.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	return nil
}

// logger returns the configured logger or the package default.
func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return uibatch.Logger()
}

// Factory opens a device for cfg.
//
// Devices are registered via Register() and opened via Open() or
// OpenDefault().
type Factory func(cfg Config) (uibatch.Device, error)
