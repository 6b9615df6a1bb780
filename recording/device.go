package recording

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"slices"

	"github.com/gogpu/uibatch"
)

// ErrInjected is the error returned by injected failures.
var ErrInjected = errors.New("recording: injected failure")

// vertexBuffer is the recording device's vertex buffer.
type vertexBuffer struct {
	capacity int
	released bool
}

func (b *vertexBuffer) Capacity() int { return b.capacity }
func (b *vertexBuffer) Release()      { b.released = true }

// DrawCall is a draw command together with the state bound when it was
// issued.
type DrawCall struct {
	Shaders   uibatch.ShaderPair
	BlendMode uibatch.BlendMode
	Scissor   image.Rectangle
	Scissored bool
	Texture   uibatch.Texture
	Start     int
	Count     int
}

func (d DrawCall) String() string {
	tex := "none"
	if d.Texture != nil {
		tex = fmt.Sprint(d.Texture)
	}
	return fmt.Sprintf("draw [%d, %d) shaders=%s blend=%s scissor=%v texture=%s",
		d.Start, d.Start+d.Count, d.Shaders, d.BlendMode, d.Scissor, tex)
}

// Device records every uibatch.Device call.
//
// Device is not safe for concurrent use.
type Device struct {
	commands []Command
	textures *TexturePool
	log      *slog.Logger

	state   DrawCall
	draws   []DrawCall
	buffers int
	uploads int
	created int
	inFrame bool

	failResize error
	failUpload error
	closed     bool
}

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{
		commands: make([]Command, 0, 256),
		textures: NewTexturePool(),
		log:      uibatch.Logger(),
	}
}

// SetLogger sets the device logger.
func (d *Device) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

// FailResize makes every following CreateOrResizeVertexBuffer return err.
// Pass nil to stop failing.
func (d *Device) FailResize(err error) { d.failResize = err }

// FailUpload makes every following UploadVertexData return err.
// Pass nil to stop failing.
func (d *Device) FailUpload(err error) { d.failUpload = err }

func (d *Device) record(c Command) {
	d.commands = append(d.commands, c)
}

// BeginFrame implements uibatch.Device.
func (d *Device) BeginFrame(width, height int) error {
	if d.inFrame {
		return errors.New("recording: BeginFrame inside a frame")
	}
	d.inFrame = true
	d.state = DrawCall{}
	d.record(BeginFrame{Width: width, Height: height})
	return nil
}

// EndFrame implements uibatch.Device.
func (d *Device) EndFrame() error {
	if !d.inFrame {
		return errors.New("recording: EndFrame without BeginFrame")
	}
	d.inFrame = false
	d.record(EndFrame{})
	return nil
}

// SetShaders implements uibatch.Device.
func (d *Device) SetShaders(pair uibatch.ShaderPair) error {
	d.state.Shaders = pair
	d.record(SetShaders{Pair: pair})
	return nil
}

// SetBlendMode implements uibatch.Device.
func (d *Device) SetBlendMode(mode uibatch.BlendMode) {
	d.state.BlendMode = mode
	d.record(SetBlendMode{Mode: mode})
}

// SetScissor implements uibatch.Device.
func (d *Device) SetScissor(enable bool, rect image.Rectangle) {
	d.state.Scissored = enable
	d.state.Scissor = rect
	d.record(SetScissor{Enable: enable, Rect: rect})
}

// SetTexture implements uibatch.Device.
func (d *Device) SetTexture(slot int, tex uibatch.Texture) {
	if slot == 0 {
		d.state.Texture = tex
	}
	d.record(SetTexture{Slot: slot, Ref: d.textures.Add(tex)})
}

// SetShaderParameter implements uibatch.Device.
func (d *Device) SetShaderParameter(name string, value any) {
	d.record(SetShaderParameter{Name: name, Value: value})
}

// Draw implements uibatch.Device.
func (d *Device) Draw(prim uibatch.PrimitiveType, start, count int) error {
	if !d.inFrame {
		return errors.New("recording: Draw outside a frame")
	}
	call := d.state
	call.Start, call.Count = start, count
	d.draws = append(d.draws, call)
	d.record(Draw{Primitive: prim, Start: start, Count: count})
	return nil
}

// CreateOrResizeVertexBuffer implements uibatch.Device.
func (d *Device) CreateOrResizeVertexBuffer(buf uibatch.VertexBuffer, count int, mask uibatch.ElementMask) (uibatch.VertexBuffer, error) {
	if d.failResize != nil {
		return nil, d.failResize
	}
	from := 0
	if buf != nil {
		from = buf.Capacity()
		buf.Release()
	}
	d.buffers++
	d.record(ResizeVertexBuffer{From: from, To: count, Mask: mask})
	return &vertexBuffer{capacity: count}, nil
}

// UploadVertexData implements uibatch.Device.
func (d *Device) UploadVertexData(buf uibatch.VertexBuffer, data []float32) error {
	if d.failUpload != nil {
		return d.failUpload
	}
	if buf == nil {
		return errors.New("recording: upload to nil buffer")
	}
	if n := len(data) / uibatch.VertexStride; n > buf.Capacity() {
		return fmt.Errorf("recording: upload of %d vertices exceeds capacity %d", n, buf.Capacity())
	}
	d.record(UploadVertexData{Data: slices.Clone(data)})
	return nil
}

// CreateTexture implements uibatch.TextureCreator. The texture is added to
// the pool and named after its creation order.
func (d *Device) CreateTexture(img image.Image) (uibatch.Texture, error) {
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("recording: empty texture image %v", img.Bounds())
	}
	d.created++
	tex := NewTexture(fmt.Sprintf("texture%d", d.created), uibatch.TextureFormatFor(img), size.X, size.Y)
	d.textures.Add(tex)
	d.uploads++
	d.log.Debug("recording: texture created", "name", tex.name, "size", size, "format", tex.format)
	return tex, nil
}

// UpdateTexture implements uibatch.TextureCreator.
func (d *Device) UpdateTexture(tex uibatch.Texture, img image.Image) error {
	if tex == nil {
		return errors.New("recording: update of nil texture")
	}
	if got := img.Bounds().Size(); got != tex.Size() {
		return fmt.Errorf("recording: texture update size %v, want %v", got, tex.Size())
	}
	d.uploads++
	return nil
}

// TextureUploads returns how many texture uploads (creations plus updates)
// were made.
func (d *Device) TextureUploads() int { return d.uploads }

// Close implements io.Closer.
func (d *Device) Close() error {
	d.closed = true
	return nil
}

// Closed reports whether Close was called.
func (d *Device) Closed() bool { return d.closed }

// Commands returns all recorded commands.
func (d *Device) Commands() []Command { return d.commands }

// Draws returns every recorded draw with its bound state.
func (d *Device) Draws() []DrawCall { return d.draws }

// Textures returns the pool of bound textures.
func (d *Device) Textures() *TexturePool { return d.textures }

// BufferAllocations returns how many vertex buffers were created.
func (d *Device) BufferAllocations() int { return d.buffers }

// Count returns how many commands of type t were recorded.
func (d *Device) Count(t CommandType) int {
	n := 0
	for _, c := range d.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset clears recorded commands and draws. Textures stay pooled so
// references remain comparable across frames.
func (d *Device) Reset() {
	clear(d.commands)
	d.commands = d.commands[:0]
	d.draws = d.draws[:0]
	d.buffers = 0
}

// WriteTrace writes one line per command to w.
func (d *Device) WriteTrace(w io.Writer) error {
	for i, c := range d.commands {
		if _, err := fmt.Fprintf(w, "%4d %s\n", i, c); err != nil {
			return err
		}
	}
	return nil
}

// Playback replays the recorded commands onto dst. Vertex buffers are
// created on dst as the recording created them.
func (d *Device) Playback(dst uibatch.Device) error {
	var buf uibatch.VertexBuffer
	for i, c := range d.commands {
		var err error
		switch c := c.(type) {
		case ResizeVertexBuffer:
			buf, err = dst.CreateOrResizeVertexBuffer(buf, c.To, c.Mask)
		case UploadVertexData:
			err = dst.UploadVertexData(buf, c.Data)
		case BeginFrame:
			err = dst.BeginFrame(c.Width, c.Height)
		case EndFrame:
			err = dst.EndFrame()
		case SetShaders:
			err = dst.SetShaders(c.Pair)
		case SetBlendMode:
			dst.SetBlendMode(c.Mode)
		case SetScissor:
			dst.SetScissor(c.Enable, c.Rect)
		case SetTexture:
			dst.SetTexture(c.Slot, d.textures.Get(c.Ref))
		case SetShaderParameter:
			dst.SetShaderParameter(c.Name, c.Value)
		case Draw:
			err = dst.Draw(c.Primitive, c.Start, c.Count)
		}
		if err != nil {
			return fmt.Errorf("playback command %d (%s): %w", i, c.Type(), err)
		}
	}
	return nil
}

var (
	_ uibatch.Device         = (*Device)(nil)
	_ uibatch.TextureCreator = (*Device)(nil)
)
