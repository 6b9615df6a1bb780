package uibatch

import "errors"

// Sentinel errors for the uibatch package.
var (
	// ErrNilDevice is returned by New when no graphics device is given.
	ErrNilDevice = errors.New("uibatch: nil device")

	// ErrNilToolkit is returned by New when no toolkit is given.
	ErrNilToolkit = errors.New("uibatch: nil toolkit")

	// ErrClosed is returned when a closed UI is used.
	ErrClosed = errors.New("uibatch: ui is closed")

	// ErrNoResourceReader is returned when a file is requested and no
	// reader was configured.
	ErrNoResourceReader = errors.New("uibatch: no resource reader configured")

	// ErrNotSupported is returned when the toolkit lacks an optional
	// capability required by the call.
	ErrNotSupported = errors.New("uibatch: not supported by toolkit")

	// ErrNoTextures is returned when the device cannot create textures.
	ErrNoTextures = errors.New("uibatch: device cannot create textures")

	// ErrUnknownWidgetKind is returned when no wrapper constructor is
	// registered for a widget kind.
	ErrUnknownWidgetKind = errors.New("uibatch: unknown widget kind")

	// ErrBatchRange is returned by Submit when a batch reaches past the
	// end of the vertex pool.
	ErrBatchRange = errors.New("uibatch: batch outside vertex pool")
)
