package recording

import (
	"testing"

	"github.com/gogpu/uibatch/backend"
)

func TestRegisteredWithBackend(t *testing.T) {
	if !backend.IsRegistered(backend.BackendRecording) {
		t.Fatal("recording backend not registered")
	}
	dev, err := backend.Open(backend.BackendRecording, backend.Config{Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := dev.(*Device); !ok {
		t.Errorf("opened %T, want *Device", dev)
	}
}
