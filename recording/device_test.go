package recording

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uibatch"
)

// twoBatchToolkit paints two solid quads and one textured quad.
type twoBatchToolkit struct {
	tex uibatch.Texture
}

func (twoBatchToolkit) AdvanceAnimations()  {}
func (twoBatchToolkit) ProcessStates()      {}
func (twoBatchToolkit) Process()            {}
func (twoBatchToolkit) BeginPaint(int, int) {}
func (twoBatchToolkit) EndPaint()           {}

func (k twoBatchToolkit) Paint(sink uibatch.PrimitiveSink) {
	clip := image.Rect(0, 0, 100, 100)
	six := make([]float32, 6*uibatch.VertexStride)
	sink.OnPrimitive(uibatch.Primitive{BlendMode: uibatch.BlendAlpha, Clip: clip, Vertices: six})
	sink.OnPrimitive(uibatch.Primitive{BlendMode: uibatch.BlendAlpha, Clip: clip, Vertices: six})
	sink.OnPrimitive(uibatch.Primitive{BlendMode: uibatch.BlendAlpha, Clip: clip, Texture: k.tex, Vertices: six})
}

func renderOnce(t *testing.T, dev *Device) {
	t.Helper()
	tk := twoBatchToolkit{tex: NewTexture("T", gputypes.TextureFormatRGBA8Unorm, 32, 32)}
	ui, err := uibatch.New(dev, tk, uibatch.WithSize(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if err := ui.Frame(0); err != nil {
		t.Fatal(err)
	}
}

func TestDeviceRecordsFrame(t *testing.T) {
	dev := NewDevice()
	renderOnce(t, dev)

	draws := dev.Draws()
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(draws))
	}
	if draws[0].Start != 0 || draws[0].Count != 12 || draws[0].Texture != nil {
		t.Errorf("draw 0 = %v", draws[0])
	}
	if draws[0].Shaders != uibatch.SolidShaders {
		t.Errorf("draw 0 shaders = %v", draws[0].Shaders)
	}
	if draws[1].Start != 12 || draws[1].Count != 6 || draws[1].Texture == nil {
		t.Errorf("draw 1 = %v", draws[1])
	}
	if draws[1].Shaders != uibatch.DiffShaders {
		t.Errorf("draw 1 shaders = %v", draws[1].Shaders)
	}
	if !draws[1].Scissored || draws[1].Scissor != image.Rect(0, 0, 100, 100) {
		t.Errorf("draw 1 scissor = %v", draws[1].Scissor)
	}

	cmds := dev.Commands()
	if cmds[0].Type() != CmdResizeVertexBuffer || cmds[1].Type() != CmdUploadVertexData || cmds[2].Type() != CmdBeginFrame {
		t.Errorf("frame prologue = %v %v %v", cmds[0], cmds[1], cmds[2])
	}
	if cmds[len(cmds)-1].Type() != CmdEndFrame {
		t.Errorf("last command = %v, want EndFrame", cmds[len(cmds)-1])
	}
	if up := cmds[1].(UploadVertexData); up.Vertices() != 18 {
		t.Errorf("uploaded %d vertices, want 18", up.Vertices())
	}
	if dev.Count(CmdSetShaderParameter) != 6 {
		t.Errorf("SetShaderParameter count = %d, want 6", dev.Count(CmdSetShaderParameter))
	}
	if dev.Textures().Len() != 1 {
		t.Errorf("pooled textures = %d, want 1", dev.Textures().Len())
	}
}

func TestDeviceWriteTrace(t *testing.T) {
	dev := NewDevice()
	renderOnce(t, dev)

	var buf bytes.Buffer
	if err := dev.WriteTrace(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"ResizeVertexBuffer 0 -> 18",
		"BeginFrame 100x100",
		"Draw trianglelist [0, 12)",
		"Draw trianglelist [12, 18)",
		"EndFrame",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestDevicePlayback(t *testing.T) {
	src := NewDevice()
	renderOnce(t, src)

	dst := NewDevice()
	if err := src.Playback(dst); err != nil {
		t.Fatal(err)
	}
	if len(dst.Commands()) != len(src.Commands()) {
		t.Fatalf("replayed %d commands, want %d", len(dst.Commands()), len(src.Commands()))
	}
	for i, d := range dst.Draws() {
		s := src.Draws()[i]
		if d.Start != s.Start || d.Count != s.Count || d.Texture != s.Texture || d.Shaders != s.Shaders {
			t.Errorf("draw %d = %v, want %v", i, d, s)
		}
	}
}

func TestDeviceFailureInjection(t *testing.T) {
	t.Run("resize", func(t *testing.T) {
		dev := NewDevice()
		dev.FailResize(ErrInjected)
		ui, err := uibatch.New(dev, twoBatchToolkit{}, uibatch.WithSize(100, 100))
		if err != nil {
			t.Fatal(err)
		}
		if err := ui.Frame(0); !errors.Is(err, ErrInjected) {
			t.Fatalf("Frame() error = %v, want ErrInjected", err)
		}
		if len(dev.Draws()) != 0 || dev.Count(CmdBeginFrame) != 0 {
			t.Errorf("commands after failed resize: %d", len(dev.Commands()))
		}
	})

	t.Run("upload", func(t *testing.T) {
		dev := NewDevice()
		dev.FailUpload(ErrInjected)
		ui, err := uibatch.New(dev, twoBatchToolkit{}, uibatch.WithSize(100, 100))
		if err != nil {
			t.Fatal(err)
		}
		if err := ui.Frame(0); !errors.Is(err, ErrInjected) {
			t.Fatalf("Frame() error = %v, want ErrInjected", err)
		}
		if len(dev.Draws()) != 0 {
			t.Errorf("draws after failed upload: %d", len(dev.Draws()))
		}

		dev.FailUpload(nil)
		if err := ui.Frame(0); err != nil {
			t.Fatalf("Frame() after recovery = %v", err)
		}
		if len(dev.Draws()) != 2 {
			t.Errorf("draws after recovery = %d, want 2", len(dev.Draws()))
		}
	})
}

func TestDeviceFrameErrors(t *testing.T) {
	dev := NewDevice()
	if err := dev.EndFrame(); err == nil {
		t.Error("EndFrame without BeginFrame succeeded")
	}
	if err := dev.Draw(uibatch.TriangleList, 0, 3); err == nil {
		t.Error("Draw outside a frame succeeded")
	}
	if err := dev.BeginFrame(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := dev.BeginFrame(1, 1); err == nil {
		t.Error("nested BeginFrame succeeded")
	}

	buf, err := dev.CreateOrResizeVertexBuffer(nil, 2, uibatch.UIElements)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.UploadVertexData(buf, make([]float32, 3*uibatch.VertexStride)); err == nil {
		t.Error("upload beyond capacity succeeded")
	}
	if err := dev.UploadVertexData(nil, nil); err == nil {
		t.Error("upload to nil buffer succeeded")
	}
}

func TestDeviceResetAndClose(t *testing.T) {
	dev := NewDevice()
	renderOnce(t, dev)
	dev.Reset()
	if len(dev.Commands()) != 0 || len(dev.Draws()) != 0 || dev.BufferAllocations() != 0 {
		t.Error("Reset left recorded state behind")
	}
	if dev.Textures().Len() != 1 {
		t.Error("Reset dropped pooled textures")
	}
	if err := dev.Close(); err != nil || !dev.Closed() {
		t.Errorf("Close() = %v, Closed() = %v", err, dev.Closed())
	}
}

func TestDeviceCreateTexture(t *testing.T) {
	dev := NewDevice()
	alpha, err := dev.CreateTexture(image.NewAlpha(image.Rect(0, 0, 8, 4)))
	if err != nil {
		t.Fatal(err)
	}
	if alpha.Format() != gputypes.TextureFormatR8Unorm || alpha.Size() != image.Pt(8, 4) {
		t.Errorf("alpha texture = %v %v", alpha.Format(), alpha.Size())
	}
	rgba, err := dev.CreateTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if rgba.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("rgba texture format = %v", rgba.Format())
	}
	if dev.Textures().Len() != 2 {
		t.Errorf("pooled textures = %d, want 2", dev.Textures().Len())
	}

	if err := dev.UpdateTexture(alpha, image.NewAlpha(image.Rect(0, 0, 8, 4))); err != nil {
		t.Errorf("UpdateTexture() error = %v", err)
	}
	if err := dev.UpdateTexture(alpha, image.NewAlpha(image.Rect(0, 0, 9, 4))); err == nil {
		t.Error("UpdateTexture accepted a size mismatch")
	}
	if dev.TextureUploads() != 3 {
		t.Errorf("TextureUploads() = %d, want 3", dev.TextureUploads())
	}
	if _, err := dev.CreateTexture(image.NewRGBA(image.Rectangle{})); err == nil {
		t.Error("CreateTexture accepted an empty image")
	}
}
