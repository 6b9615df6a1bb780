//go:build !nogpu

package gpu

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/uibatch"
)

// deviceLogger is the logger handed to a device through SetLogger or
// Options.Logger. Nil falls back to the uibatch package logger.
var deviceLogger atomic.Pointer[slog.Logger]

// slogger returns the logger for GPU diagnostics.
func slogger() *slog.Logger {
	if l := deviceLogger.Load(); l != nil {
		return l
	}
	return uibatch.Logger()
}

// setLogger routes GPU diagnostics to l, tagged component=wgpu. Nil
// restores the uibatch package logger.
func setLogger(l *slog.Logger) {
	if l != nil {
		l = l.With("component", "wgpu")
	}
	deviceLogger.Store(l)
}
