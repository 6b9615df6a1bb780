package uibatch

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// fakeTexture is a minimal Texture for tests.
type fakeTexture struct {
	name   string
	format gputypes.TextureFormat
}

func (t *fakeTexture) Format() gputypes.TextureFormat { return t.format }
func (t *fakeTexture) Size() image.Point              { return image.Pt(16, 16) }
func (t *fakeTexture) String() string                 { return t.name }

// fakeBuffer is a minimal VertexBuffer for tests.
type fakeBuffer struct {
	capacity int
	released bool
}

func (b *fakeBuffer) Capacity() int { return b.capacity }
func (b *fakeBuffer) Release()      { b.released = true }

// fakeDraw is one draw with the state bound at the time.
type fakeDraw struct {
	shaders ShaderPair
	blend   BlendMode
	scissor image.Rectangle
	texture Texture
	params  map[string]any
	start   int
	count   int
}

var errFakeFrameOpen = errors.New("fake: frame already open")

// fakeDevice records calls in order and can inject failures.
type fakeDevice struct {
	calls   []string
	resizes []int
	uploads []int
	draws   []fakeDraw
	buffers []*fakeBuffer

	failResize error
	failUpload error
	failBegin  error
	failDraw   error
	closed     bool
	inFrame    bool
	frames     int

	cur fakeDraw
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{}
}

func (d *fakeDevice) BeginFrame(w, h int) error {
	d.calls = append(d.calls, fmt.Sprintf("BeginFrame %dx%d", w, h))
	if d.failBegin != nil {
		return d.failBegin
	}
	if d.inFrame {
		return errFakeFrameOpen
	}
	d.inFrame = true
	return nil
}

func (d *fakeDevice) EndFrame() error {
	d.calls = append(d.calls, "EndFrame")
	if !d.inFrame {
		return errors.New("fake: no frame")
	}
	d.inFrame = false
	d.frames++
	return nil
}

func (d *fakeDevice) SetShaders(p ShaderPair) error {
	d.calls = append(d.calls, "SetShaders")
	d.cur.shaders = p
	return nil
}

func (d *fakeDevice) SetBlendMode(m BlendMode) {
	d.calls = append(d.calls, "SetBlendMode")
	d.cur.blend = m
}

func (d *fakeDevice) SetScissor(enable bool, r image.Rectangle) {
	d.calls = append(d.calls, "SetScissor")
	if enable {
		d.cur.scissor = r
	}
}

func (d *fakeDevice) SetTexture(_ int, t Texture) {
	d.calls = append(d.calls, "SetTexture")
	d.cur.texture = t
}

func (d *fakeDevice) SetShaderParameter(name string, v any) {
	d.calls = append(d.calls, "SetShaderParameter "+name)
	if d.cur.params == nil {
		d.cur.params = make(map[string]any)
	}
	d.cur.params[name] = v
}

func (d *fakeDevice) Draw(_ PrimitiveType, start, count int) error {
	d.calls = append(d.calls, fmt.Sprintf("Draw %d %d", start, count))
	if d.failDraw != nil {
		return d.failDraw
	}
	call := d.cur
	call.start, call.count = start, count
	d.draws = append(d.draws, call)
	d.cur.params = nil
	return nil
}

func (d *fakeDevice) CreateOrResizeVertexBuffer(buf VertexBuffer, count int, _ ElementMask) (VertexBuffer, error) {
	d.calls = append(d.calls, fmt.Sprintf("Resize %d", count))
	if d.failResize != nil {
		return nil, d.failResize
	}
	if buf != nil {
		buf.Release()
	}
	d.resizes = append(d.resizes, count)
	b := &fakeBuffer{capacity: count}
	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *fakeDevice) UploadVertexData(_ VertexBuffer, data []float32) error {
	d.calls = append(d.calls, "Upload")
	if d.failUpload != nil {
		return d.failUpload
	}
	d.uploads = append(d.uploads, len(data)/VertexStride)
	return nil
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

// quad returns six vertices covering r in a single color.
func quad(r image.Rectangle) []float32 {
	return AppendQuad(nil, r, color.RGBA{R: 255, G: 255, B: 255, A: 255}, FullUV)
}

// verts returns n zeroed vertices.
func verts(n int) []float32 {
	return make([]float32, n*VertexStride)
}
