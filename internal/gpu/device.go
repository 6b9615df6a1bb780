//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uibatch"
	"github.com/gogpu/wgpu/hal"
)

// Device errors.
var (
	// ErrDeviceClosed is returned when a closed device is used.
	ErrDeviceClosed = errors.New("wgpu: device is closed")

	// ErrNilHALDevice is returned when no hal device or queue is given.
	ErrNilHALDevice = errors.New("wgpu: hal device is nil")

	// ErrFrameInProgress is returned by BeginFrame inside a frame.
	ErrFrameInProgress = errors.New("wgpu: frame already in progress")

	// ErrNoFrame is returned by Draw and EndFrame outside a frame.
	ErrNoFrame = errors.New("wgpu: no frame in progress")

	// ErrNoVertexBuffer is returned by Draw before any vertex upload.
	ErrNoVertexBuffer = errors.New("wgpu: no vertex buffer bound")

	// ErrForeignBuffer is returned for vertex buffers created by another
	// device.
	ErrForeignBuffer = errors.New("wgpu: vertex buffer belongs to another device")

	// ErrInvalidVertexCount is returned for non-positive buffer sizes and
	// draws outside the bound buffer.
	ErrInvalidVertexCount = errors.New("wgpu: invalid vertex count")

	// ErrUnsupportedElements is returned for vertex layouts other than
	// uibatch.UIElements.
	ErrUnsupportedElements = errors.New("wgpu: unsupported vertex elements")

	// ErrUnsupportedPrimitive is returned for primitive types other than
	// triangle lists.
	ErrUnsupportedPrimitive = errors.New("wgpu: unsupported primitive type")
)

// Device is a uibatch.Device drawing through a gogpu/wgpu hal device into
// an offscreen color target.
//
// Every frame is one render pass: BeginFrame opens it with a transparent
// clear and EndFrame submits it and waits for the queue to drain.
// Render pipelines are created on first use per shader pair and blend
// mode. Each texture gets one bind group, created on first draw.
//
// Device is not safe for concurrent use, except that textures may be
// created and updated from other goroutines between frames.
type Device struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance // non-nil when opened by Open
	owned    bool
	format   gputypes.TextureFormat

	pipeline   *uiPipeline
	uniformBuf hal.Buffer
	uniforms   [uiUniformSize]byte
	dirty      bool

	mu         sync.Mutex // guards textures, live and bindGroups
	textures   int
	live       map[*Texture]struct{}
	white      *Texture
	bindGroups map[*Texture]hal.BindGroup

	target     hal.Texture
	targetView hal.TextureView
	width      int
	height     int

	vertexBuf *VertexBuffer
	staging   []byte

	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder

	// Current draw state.
	shaders   uibatch.ShaderPair
	blend     uibatch.BlendMode
	scissorOn bool
	scissor   image.Rectangle
	texture   *Texture

	// Last state applied to the pass.
	boundPipeline hal.RenderPipeline
	boundGroup    hal.BindGroup

	frames int
	draws  int
	closed bool
}

// NewFromHAL creates a device on an existing hal device and queue. The
// device and queue stay owned by the caller.
func NewFromHAL(device hal.Device, queue hal.Queue, opts Options) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilHALDevice
	}
	opts = opts.withDefaults()
	if opts.Logger != nil {
		setLogger(opts.Logger)
	}

	d := &Device{
		device:     device,
		queue:      queue,
		format:     opts.Format,
		pipeline:   newUIPipeline(device, opts.Format, opts.SPIRV),
		bindGroups: make(map[*Texture]hal.BindGroup),
		live:       make(map[*Texture]struct{}),
		blend:      uibatch.BlendAlpha,
		shaders:    uibatch.SolidShaders,
	}

	uniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ui_uniforms",
		Size:  uiUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create ui uniform buffer: %w", err)
	}
	d.uniformBuf = uniformBuf
	d.putMatrix(uniformViewProjOffset, uibatch.Identity4())
	d.putMatrix(uniformModelOffset, uibatch.Identity4())
	d.putFloats(uniformDiffColorOffset, uibatch.White[:])
	d.dirty = true

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	tex, err := d.createTexture("ui_white", white)
	if err != nil {
		d.destroy()
		return nil, err
	}
	d.white = tex

	if opts.Width > 0 && opts.Height > 0 {
		if err := d.ensureTarget(opts.Width, opts.Height); err != nil {
			d.destroy()
			return nil, err
		}
	}
	return d, nil
}

// SetLogger sets the logger for the gpu package.
// Called from uibatch.New when a UI logger is configured.
func (d *Device) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// Format returns the color target format.
func (d *Device) Format() gputypes.TextureFormat { return d.format }

// Target returns the offscreen color target and its view. Both are nil
// before the first frame.
func (d *Device) Target() (hal.Texture, hal.TextureView) { return d.target, d.targetView }

// Frames returns the number of submitted frames.
func (d *Device) Frames() int { return d.frames }

// DrawCalls returns the number of draw calls issued.
func (d *Device) DrawCalls() int { return d.draws }

// Pipelines returns the number of compiled pipeline variants.
func (d *Device) Pipelines() int { return d.pipeline.count() }

// ensureTarget creates or recreates the color target for w x h pixels.
func (d *Device) ensureTarget(w, h int) error {
	if d.target != nil && d.width == w && d.height == h {
		return nil
	}
	d.destroyTarget()

	//nolint:gosec // G115: callers pass positive sizes
	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
	target, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ui_target",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        d.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create ui target: %w", err)
	}
	view, err := d.device.CreateTextureView(target, &hal.TextureViewDescriptor{
		Label:         "ui_target_view",
		Format:        d.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(target)
		return fmt.Errorf("create ui target view: %w", err)
	}
	d.target, d.targetView = target, view
	d.width, d.height = w, h
	slogger().Debug("ui target created", "width", w, "height", h, "format", d.format)
	return nil
}

// BeginFrame implements uibatch.Device.
func (d *Device) BeginFrame(width, height int) error {
	if d.closed {
		return ErrDeviceClosed
	}
	if d.pass != nil {
		return ErrFrameInProgress
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, width, height)
	}
	if err := d.ensureTarget(width, height); err != nil {
		return err
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "ui_frame"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ui_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	d.encoder = encoder
	d.pass = encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "ui_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       d.targetView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
	})
	d.pass.SetViewport(0, 0, float32(width), float32(height), 0, 1)
	if d.vertexBuf != nil {
		d.pass.SetVertexBuffer(0, d.vertexBuf.buf, 0)
	}
	d.boundPipeline = nil
	d.boundGroup = nil
	return nil
}

// EndFrame implements uibatch.Device. It submits the frame and waits for
// the GPU to finish it.
func (d *Device) EndFrame() error {
	if d.pass == nil {
		return ErrNoFrame
	}
	d.pass.End()
	d.pass = nil
	encoder := d.encoder
	d.encoder = nil

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit ui frame: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for ui frame: %w", err)
	}
	d.frames++
	return nil
}

// SetShaders implements uibatch.Device.
func (d *Device) SetShaders(pair uibatch.ShaderPair) error {
	if _, _, err := entryPoints(pair); err != nil {
		return err
	}
	d.shaders = pair
	return nil
}

// SetBlendMode implements uibatch.Device.
func (d *Device) SetBlendMode(mode uibatch.BlendMode) {
	d.blend = mode
}

// SetScissor implements uibatch.Device.
func (d *Device) SetScissor(enable bool, rect image.Rectangle) {
	d.scissorOn = enable
	d.scissor = rect
}

// SetTexture implements uibatch.Device. Only slot 0 is sampled; textures
// from other devices are replaced by white.
func (d *Device) SetTexture(slot int, tex uibatch.Texture) {
	if slot != 0 {
		slogger().Debug("ignoring texture unit", "slot", slot)
		return
	}
	if tex == nil {
		d.texture = nil
		return
	}
	t, ok := tex.(*Texture)
	if !ok || t == nil || t.owner != d || t.released {
		slogger().Warn("unusable texture bound, drawing untextured", "texture", tex)
		d.texture = nil
		return
	}
	d.texture = t
}

// SetShaderParameter implements uibatch.Device. ViewProj and Model take a
// uibatch.Matrix4, MatDiffColor a [4]float32.
func (d *Device) SetShaderParameter(name string, value any) {
	switch name {
	case uibatch.ParamViewProj, uibatch.ParamModel:
		m, ok := value.(uibatch.Matrix4)
		if !ok {
			slogger().Warn("shader parameter has wrong type", "name", name, "type", fmt.Sprintf("%T", value))
			return
		}
		off := uniformViewProjOffset
		if name == uibatch.ParamModel {
			off = uniformModelOffset
		}
		d.putMatrix(off, m)
	case uibatch.ParamMatDiffColor:
		c, ok := value.([4]float32)
		if !ok {
			slogger().Warn("shader parameter has wrong type", "name", name, "type", fmt.Sprintf("%T", value))
			return
		}
		d.putFloats(uniformDiffColorOffset, c[:])
	default:
		slogger().Debug("ignoring unknown shader parameter", "name", name)
	}
}

// putMatrix stores m column-major at byte offset off.
func (d *Device) putMatrix(off int, m uibatch.Matrix4) {
	cm := m.ColumnMajor()
	d.putFloats(off, cm[:])
}

// putFloats stores vals at byte offset off and marks the uniforms dirty
// when they change.
func (d *Device) putFloats(off int, vals []float32) {
	for i, f := range vals {
		p := d.uniforms[off+i*4:]
		bits := math.Float32bits(f)
		if binary.LittleEndian.Uint32(p) != bits {
			binary.LittleEndian.PutUint32(p, bits)
			d.dirty = true
		}
	}
}

// Draw implements uibatch.Device.
//
// Uniform writes land on the queue before the frame's command buffer, so
// every draw of a frame sees the last parameters set in it.
func (d *Device) Draw(prim uibatch.PrimitiveType, start, count int) error {
	if d.pass == nil {
		return ErrNoFrame
	}
	if prim != uibatch.TriangleList {
		return fmt.Errorf("%w: %s", ErrUnsupportedPrimitive, prim)
	}
	if d.vertexBuf == nil {
		return ErrNoVertexBuffer
	}
	if start < 0 || count < 0 || start+count > d.vertexBuf.capacity {
		return fmt.Errorf("%w: [%d, %d) in buffer of %d", ErrInvalidVertexCount, start, start+count, d.vertexBuf.capacity)
	}
	if count == 0 {
		return nil
	}

	full := image.Rect(0, 0, d.width, d.height)
	clip := full
	if d.scissorOn {
		clip = d.scissor.Intersect(full)
	}
	if clip.Empty() {
		return nil
	}

	pipeline, err := d.pipeline.get(pipelineKey{shaders: d.shaders, blend: d.blend})
	if err != nil {
		return err
	}
	tex := d.texture
	if tex == nil {
		tex = d.white
	}
	group, err := d.bindGroup(tex)
	if err != nil {
		return err
	}
	if d.dirty {
		if err := d.queue.WriteBuffer(d.uniformBuf, 0, d.uniforms[:]); err != nil {
			return fmt.Errorf("write ui uniforms: %w", err)
		}
		d.dirty = false
	}

	if pipeline != d.boundPipeline {
		d.pass.SetPipeline(pipeline)
		d.boundPipeline = pipeline
	}
	if group != d.boundGroup {
		d.pass.SetBindGroup(0, group, nil)
		d.boundGroup = group
	}
	//nolint:gosec // G115: clip lies inside the positive target rectangle
	d.pass.SetScissorRect(uint32(clip.Min.X), uint32(clip.Min.Y), uint32(clip.Dx()), uint32(clip.Dy()))
	//nolint:gosec // G115: range validated against the buffer capacity
	d.pass.Draw(uint32(count), 1, uint32(start), 0)
	d.draws++
	return nil
}

// bindGroup returns the bind group sampling t, creating it on first use.
func (d *Device) bindGroup(t *Texture) (hal.BindGroup, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if g, ok := d.bindGroups[t]; ok {
		return g, nil
	}
	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  t.label + "_bind",
		Layout: d.pipeline.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: d.uniformBuf.NativeHandle(), Offset: 0, Size: uiUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: d.pipeline.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group for %s: %w", t.label, err)
	}
	d.bindGroups[t] = group
	return group, nil
}

// forgetTexture drops the bind group of a released texture.
func (d *Device) forgetTexture(t *Texture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.live, t)
	if g, ok := d.bindGroups[t]; ok {
		d.device.DestroyBindGroup(g)
		delete(d.bindGroups, t)
	}
	if d.texture == t {
		d.texture = nil
	}
}

// CreateOrResizeVertexBuffer implements uibatch.Device. The previous
// buffer is destroyed, never reused.
func (d *Device) CreateOrResizeVertexBuffer(buf uibatch.VertexBuffer, count int, mask uibatch.ElementMask) (uibatch.VertexBuffer, error) {
	if d.closed {
		return nil, ErrDeviceClosed
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVertexCount, count)
	}
	if mask != uibatch.UIElements {
		return nil, fmt.Errorf("%w: %#x", ErrUnsupportedElements, uint32(mask))
	}
	if buf != nil {
		buf.Release()
	}

	halBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ui_vertices",
		Size:  uint64(count) * uiVertexStride, //nolint:gosec // count validated positive
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create ui vertex buffer: %w", err)
	}
	slogger().Debug("ui vertex buffer created", "vertices", count)
	return &VertexBuffer{owner: d, buf: halBuf, capacity: count}, nil
}

// UploadVertexData implements uibatch.Device.
func (d *Device) UploadVertexData(buf uibatch.VertexBuffer, data []float32) error {
	vb, ok := buf.(*VertexBuffer)
	if !ok || vb.owner != d {
		return ErrForeignBuffer
	}
	if vb.buf == nil {
		return fmt.Errorf("%w: buffer released", ErrInvalidVertexCount)
	}
	n := len(data) / uibatch.VertexStride
	if n > vb.capacity {
		return fmt.Errorf("%w: upload of %d vertices exceeds capacity %d", ErrInvalidVertexCount, n, vb.capacity)
	}
	d.staging = float32Bytes(d.staging, data)
	if err := d.queue.WriteBuffer(vb.buf, 0, d.staging); err != nil {
		return fmt.Errorf("write ui vertices: %w", err)
	}
	d.vertexBuf = vb
	return nil
}

// releaseBuffer destroys b's hal buffer.
func (d *Device) releaseBuffer(b *VertexBuffer) {
	if d.vertexBuf == b {
		d.vertexBuf = nil
	}
	if d.device != nil {
		d.device.DestroyBuffer(b.buf)
	}
}

// CreateTexture implements uibatch.TextureCreator.
func (d *Device) CreateTexture(img image.Image) (uibatch.Texture, error) {
	if d.closed {
		return nil, ErrDeviceClosed
	}
	d.mu.Lock()
	d.textures++
	label := fmt.Sprintf("ui_texture_%d", d.textures)
	d.mu.Unlock()

	t, err := d.createTexture(label, img)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.live[t] = struct{}{}
	d.mu.Unlock()
	return t, nil
}

func (d *Device) createTexture(label string, img image.Image) (*Texture, error) {
	size := img.Bounds().Size()
	t, err := newTexture(d, label, uibatch.TextureFormatFor(img), size.X, size.Y)
	if err != nil {
		return nil, err
	}
	pixels, pitch := texturePixels(img)
	if err := t.upload(d.queue, pixels, pitch); err != nil {
		t.destroy()
		return nil, err
	}
	slogger().Debug("ui texture created", "label", label, "size", size, "format", t.format)
	return t, nil
}

// UpdateTexture implements uibatch.TextureCreator.
func (d *Device) UpdateTexture(tex uibatch.Texture, img image.Image) error {
	t, ok := tex.(*Texture)
	if !ok || t.owner != d {
		return ErrForeignTexture
	}
	if got := img.Bounds().Size(); got != t.size {
		return fmt.Errorf("%w: update %v for texture %v", ErrInvalidDimensions, got, t.size)
	}
	if f := uibatch.TextureFormatFor(img); f != t.format {
		return fmt.Errorf("wgpu: update format %v for texture %v", f, t.format)
	}
	pixels, pitch := texturePixels(img)
	return t.upload(d.queue, pixels, pitch)
}

// Close releases every GPU resource. A device created by Open also
// destroys its hal device and instance. Close is idempotent.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	if d.pass != nil {
		d.pass.End()
		d.encoder.DiscardEncoding()
		d.pass, d.encoder = nil, nil
	}
	d.closed = true
	if err := d.device.WaitIdle(); err != nil {
		slogger().Warn("wait idle before close failed", "err", err)
	}
	d.destroy()
	slogger().Info("ui device closed", "frames", d.frames, "draws", d.draws)
	return nil
}

// destroy releases resources in reverse creation order.
func (d *Device) destroy() {
	if d.vertexBuf != nil {
		d.vertexBuf.Release()
	}
	d.destroyTarget()

	d.mu.Lock()
	for t, g := range d.bindGroups {
		d.device.DestroyBindGroup(g)
		delete(d.bindGroups, t)
	}
	for t := range d.live {
		t.released = true
		t.destroy()
		delete(d.live, t)
	}
	d.mu.Unlock()
	if d.white != nil {
		d.white.destroy()
		d.white = nil
	}
	if d.uniformBuf != nil {
		d.device.DestroyBuffer(d.uniformBuf)
		d.uniformBuf = nil
	}
	d.pipeline.destroy()

	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
			d.instance = nil
		}
	}
}

func (d *Device) destroyTarget() {
	if d.targetView != nil {
		d.device.DestroyTextureView(d.targetView)
		d.targetView = nil
	}
	if d.target != nil {
		d.device.DestroyTexture(d.target)
		d.target = nil
	}
	d.width, d.height = 0, 0
}

var (
	_ uibatch.Device         = (*Device)(nil)
	_ uibatch.TextureCreator = (*Device)(nil)
)
