package uibatch

import (
	"io/fs"
	"log/slog"
)

// Option configures a UI during creation.
//
// Example:
//
//	ui, err := uibatch.New(dev, root,
//	    uibatch.WithSize(1280, 720),
//	    uibatch.WithResourceFS(os.DirFS("data")),
//	)
type Option func(*options)

// options holds optional configuration for UI creation.
type options struct {
	width, height  int
	logger         *slog.Logger
	read           ReadFunc
	resourceFS     fs.FS
	cacheSize      int
	wrappers       *WrapperRegistry
	vertexCapacity int
}

// defaultOptions returns the default UI options.
func defaultOptions() options {
	return options{
		width:          1,
		height:         1,
		cacheSize:      DefaultResourceCacheSize,
		vertexCapacity: 1024,
	}
}

// WithSize sets the initial root size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithLogger sets the logger for this UI and propagates it to the device
// and toolkit when they accept one. The package logger is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithReadFunc routes toolkit file reads through read.
// It takes precedence over WithResourceFS.
func WithReadFunc(read ReadFunc) Option {
	return func(o *options) {
		o.read = read
	}
}

// WithResourceFS reads toolkit files from fsys through an LRU cache.
func WithResourceFS(fsys fs.FS) Option {
	return func(o *options) {
		o.resourceFS = fsys
	}
}

// WithResourceCacheSize sets how many files the resource cache keeps.
func WithResourceCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithWrappers sets the widget wrapper registry. DefaultWrappers is used
// otherwise.
func WithWrappers(r *WrapperRegistry) Option {
	return func(o *options) {
		o.wrappers = r
	}
}

// WithVertexCapacity sets the initial vertex pool capacity.
func WithVertexCapacity(n int) Option {
	return func(o *options) {
		o.vertexCapacity = n
	}
}
