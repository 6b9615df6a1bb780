package recording

import (
	"github.com/gogpu/uibatch"
	"github.com/gogpu/uibatch/backend"
)

// init registers the recording device on package import.
func init() {
	backend.Register(backend.BackendRecording, func(cfg backend.Config) (uibatch.Device, error) {
		dev := NewDevice()
		if cfg.Logger != nil {
			dev.SetLogger(cfg.Logger)
		}
		return dev, nil
	})
}
