package backend

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/uibatch"
)

// stubDevice is a do-nothing uibatch.Device.
type stubDevice struct{ name string }

type stubBuffer int

func (b stubBuffer) Capacity() int { return int(b) }
func (stubBuffer) Release()        {}

func (*stubDevice) BeginFrame(int, int) error                              { return nil }
func (*stubDevice) EndFrame() error                                        { return nil }
func (*stubDevice) SetShaders(uibatch.ShaderPair) error                    { return nil }
func (*stubDevice) SetBlendMode(uibatch.BlendMode)                         {}
func (*stubDevice) SetScissor(bool, image.Rectangle)                       {}
func (*stubDevice) SetTexture(int, uibatch.Texture)                        {}
func (*stubDevice) SetShaderParameter(string, any)                         {}
func (*stubDevice) Draw(uibatch.PrimitiveType, int, int) error             { return nil }
func (*stubDevice) UploadVertexData(uibatch.VertexBuffer, []float32) error { return nil }

func (*stubDevice) CreateOrResizeVertexBuffer(_ uibatch.VertexBuffer, n int, _ uibatch.ElementMask) (uibatch.VertexBuffer, error) {
	return stubBuffer(n), nil
}

// withRegistry swaps in an empty registry for the duration of a test.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func stubFactory(name string) Factory {
	return func(Config) (uibatch.Device, error) { return &stubDevice{name: name}, nil }
}

func TestRegisterAndOpen(t *testing.T) {
	withRegistry(t)
	Register("stub", stubFactory("stub"))

	if !IsRegistered("stub") {
		t.Fatal("IsRegistered(stub) = false")
	}
	dev, err := Open("stub", Config{Width: 10, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	if dev.(*stubDevice).name != "stub" {
		t.Errorf("opened %v", dev)
	}

	Unregister("stub")
	if _, err := Open("stub", Config{Width: 10, Height: 10}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open after Unregister = %v, want ErrBackendNotAvailable", err)
	}
}

func TestOpenInvalidSize(t *testing.T) {
	withRegistry(t)
	Register("stub", stubFactory("stub"))
	if _, err := Open("stub", Config{Width: 0, Height: 10}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Open(0x10) = %v, want ErrInvalidSize", err)
	}
	if _, _, err := OpenDefault(Config{Width: 10, Height: -1}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("OpenDefault(10x-1) = %v, want ErrInvalidSize", err)
	}
}

func TestOpenDefaultPriority(t *testing.T) {
	withRegistry(t)
	Register(BackendRecording, stubFactory(BackendRecording))
	Register(BackendWGPU, stubFactory(BackendWGPU))

	_, name, err := OpenDefault(Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	if name != BackendWGPU {
		t.Errorf("OpenDefault chose %q, want %q", name, BackendWGPU)
	}
}

func TestOpenDefaultFallsBack(t *testing.T) {
	withRegistry(t)
	gpuErr := errors.New("no adapter")
	Register(BackendWGPU, func(Config) (uibatch.Device, error) { return nil, gpuErr })
	Register(BackendRecording, stubFactory(BackendRecording))

	_, name, err := OpenDefault(Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	if name != BackendRecording {
		t.Errorf("OpenDefault chose %q, want %q", name, BackendRecording)
	}

	Unregister(BackendRecording)
	if _, _, err := OpenDefault(Config{Width: 4, Height: 4}); !errors.Is(err, gpuErr) {
		t.Errorf("OpenDefault with failing backend = %v, want %v", err, gpuErr)
	}
}

func TestOpenDefaultUnprioritized(t *testing.T) {
	withRegistry(t)
	Register("custom", stubFactory("custom"))
	_, name, err := OpenDefault(Config{Width: 4, Height: 4})
	if err != nil || name != "custom" {
		t.Errorf("OpenDefault = %q, %v; want custom", name, err)
	}
}

func TestOpenDefaultEmpty(t *testing.T) {
	withRegistry(t)
	if _, _, err := OpenDefault(Config{Width: 4, Height: 4}); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("OpenDefault on empty registry = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustOpenDefault did not panic")
		}
	}()
	MustOpenDefault(Config{Width: 4, Height: 4})
}

func TestAvailableSorted(t *testing.T) {
	withRegistry(t)
	Register("b", stubFactory("b"))
	Register("a", stubFactory("a"))
	if got := Available(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Available() = %v", got)
	}
}
