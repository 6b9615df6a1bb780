//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/uibatch"
	"github.com/gogpu/uibatch/backend"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/allbackends" // register platform hal backends
)

// Errors returned while opening a device.
var (
	// ErrNoGPU is returned when no hal backend or adapter is available.
	ErrNoGPU = errors.New("wgpu: no compatible GPU found")

	// ErrBadProvider is returned when a device provider does not expose
	// hal types.
	ErrBadProvider = errors.New("wgpu: provider does not expose hal device and queue")
)

// Options configures a Device.
type Options struct {
	// Width and Height size the initial color target. Zero defers target
	// creation to the first frame.
	Width, Height int

	// Format is the color target format. Default: BGRA8Unorm.
	Format gputypes.TextureFormat

	// SPIRV compiles the WGSL shader to SPIR-V with naga before handing it
	// to the driver.
	SPIRV bool

	// Logger, when set, replaces the gpu package logger.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Format == gputypes.TextureFormatUndefined {
		o.Format = gputypes.TextureFormatBGRA8Unorm
	}
	return o
}

// Open selects the best available hal backend, opens its preferred adapter
// and returns a device that owns the hal device and instance. The noop
// backend does not count as a GPU.
func Open(opts Options) (*Device, error) {
	be, err := hal.SelectBestBackend()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	if be.Variant() == gputypes.BackendEmpty {
		return nil, fmt.Errorf("%w: only the noop backend is available", ErrNoGPU)
	}
	instance, err := be.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("create %s instance: %w", be.Variant(), err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %s reports no adapters", ErrNoGPU, be.Variant())
	}
	exposed := pickAdapter(adapters)

	open, err := exposed.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open adapter %q: %w", exposed.Info.Name, err)
	}

	d, err := NewFromHAL(open.Device, open.Queue, opts)
	if err != nil {
		open.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	d.instance = instance
	d.owned = true
	slogger().Info("ui device opened",
		"backend", be.Variant().String(),
		"adapter", exposed.Info.Name,
		"type", exposed.Info.DeviceType.String(),
		"format", d.format)
	return d, nil
}

// pickAdapter prefers a discrete GPU, then an integrated one, then the
// first adapter reported.
func pickAdapter(adapters []hal.ExposedAdapter) hal.ExposedAdapter {
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for _, a := range adapters {
			if a.Info.DeviceType == want {
				return a
			}
		}
	}
	return adapters[0]
}

// NewFromProvider creates a device on the GPU shared by a host
// application. The provider's Device and Queue must be hal values, either
// directly or through HalDevice() any and HalQueue() any accessors. The
// surface format is used as the target format unless opts sets one.
func NewFromProvider(p gpucontext.DeviceProvider, opts Options) (*Device, error) {
	if p == nil {
		return nil, ErrBadProvider
	}
	device, queue, err := halFromProvider(p)
	if err != nil {
		return nil, err
	}
	if opts.Format == gputypes.TextureFormatUndefined {
		opts.Format = p.SurfaceFormat()
	}
	d, err := NewFromHAL(device, queue, opts)
	if err != nil {
		return nil, err
	}
	info := p.AdapterInfo()
	slogger().Info("ui device attached to provider", "adapter", info.Name, "type", info.Type.String(), "format", d.format)
	return d, nil
}

func halFromProvider(p gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	var dev, queue any = p.Device(), p.Queue()
	if hp, ok := p.(halProvider); ok {
		dev, queue = hp.HalDevice(), hp.HalQueue()
	}
	device, ok := dev.(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: device is %T", ErrBadProvider, dev)
	}
	q, ok := queue.(hal.Queue)
	if !ok || q == nil {
		return nil, nil, fmt.Errorf("%w: queue is %T", ErrBadProvider, queue)
	}
	return device, q, nil
}

// init registers the GPU device on package import.
func init() {
	backend.Register(backend.BackendWGPU, func(cfg backend.Config) (uibatch.Device, error) {
		d, err := Open(Options{Width: cfg.Width, Height: cfg.Height, Logger: cfg.Logger})
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}
