package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/uibatch"
)

// registry holds registered device factories.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// OpenDefault tries these in order: the GPU device, then the recorder.
	backendPriority = []string{BackendWGPU, BackendRecording}
)

// Register makes factory available as name, replacing an earlier
// registration. Device packages call it from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes name from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a factory is registered as name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

func lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := backends[name]
	return f, ok
}

// Open opens a device from the named backend.
func Open(name string, cfg Config) (uibatch.Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	dev, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s device: %w", name, err)
	}
	cfg.logger().Info("backend: device opened", "backend", name, "width", cfg.Width, "height", cfg.Height)
	return dev, nil
}

// OpenDefault opens the best available backend based on priority.
// A backend whose factory fails is skipped with a warning, so a machine
// without a GPU falls back to the next backend.
// Returns the chosen backend name along with the device.
func OpenDefault(cfg Config) (uibatch.Device, string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	order := append(slices.Clone(backendPriority), Available()...)
	tried := make(map[string]bool, len(order))
	var lastErr error
	for _, name := range order {
		if tried[name] {
			continue
		}
		tried[name] = true
		if !IsRegistered(name) {
			continue
		}
		dev, err := Open(name, cfg)
		if err == nil {
			return dev, name, nil
		}
		cfg.logger().Warn("backend: device unavailable", "backend", name, "err", err)
		lastErr = err
	}
	if lastErr != nil {
		return nil, "", lastErr
	}
	return nil, "", ErrBackendNotAvailable
}

// MustOpenDefault opens the default backend or panics.
func MustOpenDefault(cfg Config) uibatch.Device {
	dev, _, err := OpenDefault(cfg)
	if err != nil {
		panic("backend: no backend available: " + err.Error())
	}
	return dev
}
