package uibatch

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"
)

// MessagePump is implemented by toolkits with a deferred message queue.
type MessagePump interface {
	ProcessMessages(dt time.Duration)
}

// Resizer is implemented by toolkits that track the root size.
type Resizer interface {
	SetSize(width, height int)
}

// LayoutLoader is implemented by toolkits that build widgets from layout
// files.
type LayoutLoader interface {
	LoadLayout(name string, data []byte) error
}

// SkinLoader is implemented by toolkits with a loadable skin.
type SkinLoader interface {
	LoadSkin(name string, data []byte) error
}

// FontLoader is implemented by toolkits that render text.
type FontLoader interface {
	AddFont(name string, data []byte) error
	SetDefaultFont(name string, size int) error
}

// DeleteNotifier is implemented by toolkits that report widget deletion.
type DeleteNotifier interface {
	OnWidgetDeleted(fn func(id uint64))
}

// UI is the widget rendering subsystem: it drives the toolkit once per
// frame and composites its paint output into batched draw calls.
//
// A UI is not safe for concurrent use.
type UI struct {
	device    Device
	toolkit   Toolkit
	driver    *PaintDriver
	submitter *Submitter
	log       *slog.Logger

	width, height int

	read      ReadFunc
	resources *ResourceCache
	wrappers  *WrapCache

	inputDisabled    bool
	keyboardDisabled bool
	closed           bool

	last  FrameStats
	total FrameStats
}

// New creates a UI drawing through dev and driving tk.
func New(dev Device, tk Toolkit, opts ...Option) (*UI, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if tk == nil {
		return nil, ErrNilToolkit
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	u := &UI{
		device:    dev,
		toolkit:   tk,
		driver:    NewPaintDriver(o.vertexCapacity),
		submitter: NewSubmitter(dev),
		log:       o.logger,
		width:     max(o.width, 1),
		height:    max(o.height, 1),
		read:      o.read,
		wrappers:  NewWrapCache(o.wrappers),
	}
	if u.log == nil {
		u.log = Logger()
	} else {
		propagateLogger(dev, u.log)
		propagateLogger(tk, u.log)
	}

	if u.read == nil && o.resourceFS != nil {
		rc, err := NewResourceCache(o.resourceFS, o.cacheSize)
		if err != nil {
			return nil, err
		}
		u.resources = rc
		u.read = rc.ReadFile
	}
	if u.read != nil {
		if fr, ok := tk.(FileReaderSetter); ok {
			fr.SetFileReader(u.read)
		}
	}
	if tc, ok := dev.(TextureCreator); ok {
		if ts, ok := tk.(TextureCreatorSetter); ok {
			ts.SetTextureCreator(tc)
		}
	}
	if dn, ok := tk.(DeleteNotifier); ok {
		dn.OnWidgetDeleted(u.wrappers.Forget)
	}
	if r, ok := tk.(Resizer); ok {
		r.SetSize(u.width, u.height)
	}

	u.log.Info("uibatch: ui created", "width", u.width, "height", u.height)
	return u, nil
}

// Size returns the root size in pixels.
func (u *UI) Size() (width, height int) {
	return u.width, u.height
}

// Root returns the root rectangle, the default scissor for primitives.
func (u *UI) Root() image.Rectangle {
	return image.Rect(0, 0, u.width, u.height)
}

// SetSize changes the root size after a screen mode change. Non-positive
// sizes (a minimized window) are ignored.
func (u *UI) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		u.log.Debug("uibatch: ignoring degenerate size", "width", width, "height", height)
		return
	}
	if width == u.width && height == u.height {
		return
	}
	u.width, u.height = width, height
	if r, ok := u.toolkit.(Resizer); ok {
		r.SetSize(width, height)
	}
}

// Update advances the frame: it pumps toolkit messages for the elapsed
// time dt.
func (u *UI) Update(dt time.Duration) error {
	if u.closed {
		return ErrClosed
	}
	if mp, ok := u.toolkit.(MessagePump); ok {
		mp.ProcessMessages(dt)
	}
	return nil
}

// RenderUpdate runs the paint pass, rebuilding the vertex pool and batch
// list from scratch.
func (u *UI) RenderUpdate() error {
	if u.closed {
		return ErrClosed
	}
	u.driver.Run(u.toolkit, u.width, u.height)
	return nil
}

// Render submits the batches built by the last RenderUpdate.
func (u *UI) Render() error {
	if u.closed {
		return ErrClosed
	}
	err := u.submitter.Submit(u.driver.Pool(), u.driver.Batches(), u.width, u.height)

	st := u.driver.Stats()
	sub := u.submitter.LastStats()
	st.Draws = sub.Draws
	st.Resized = sub.Resized
	u.last = st
	u.total.Merge(st)

	if err != nil {
		return fmt.Errorf("render ui: %w", err)
	}
	u.log.Debug("uibatch: frame rendered", "stats", st)
	return nil
}

// Frame runs Update, RenderUpdate and Render.
func (u *UI) Frame(dt time.Duration) error {
	if err := u.Update(dt); err != nil {
		return err
	}
	if err := u.RenderUpdate(); err != nil {
		return err
	}
	return u.Render()
}

// Stats returns the statistics of the last rendered frame.
func (u *UI) Stats() FrameStats {
	return u.last
}

// TotalStats returns statistics accumulated over all rendered frames.
func (u *UI) TotalStats() FrameStats {
	return u.total
}

// Driver returns the paint driver.
func (u *UI) Driver() *PaintDriver {
	return u.driver
}

// Submitter returns the frame submitter.
func (u *UI) Submitter() *Submitter {
	return u.submitter
}

// ReadFile reads a toolkit data file through the configured reader.
func (u *UI) ReadFile(name string) ([]byte, error) {
	if u.read == nil {
		return nil, ErrNoResourceReader
	}
	return u.read(name)
}

// Resources returns the resource cache, or nil when reads go through a
// custom ReadFunc.
func (u *UI) Resources() *ResourceCache {
	return u.resources
}

// LoadResourceFile loads a layout file into the toolkit root.
func (u *UI) LoadResourceFile(name string) error {
	ll, ok := u.toolkit.(LayoutLoader)
	if !ok {
		return fmt.Errorf("load layout %q: %w", name, ErrNotSupported)
	}
	data, err := u.ReadFile(name)
	if err != nil {
		return err
	}
	if err := ll.LoadLayout(name, data); err != nil {
		return fmt.Errorf("load layout %q: %w", name, err)
	}
	u.log.Info("uibatch: layout loaded", "name", name)
	return nil
}

// LoadSkin loads the toolkit skin from a file.
func (u *UI) LoadSkin(name string) error {
	sl, ok := u.toolkit.(SkinLoader)
	if !ok {
		return fmt.Errorf("load skin %q: %w", name, ErrNotSupported)
	}
	data, err := u.ReadFile(name)
	if err != nil {
		return err
	}
	if err := sl.LoadSkin(name, data); err != nil {
		return fmt.Errorf("load skin %q: %w", name, err)
	}
	return nil
}

// AddFont registers the font in file under name.
func (u *UI) AddFont(name, file string) error {
	fl, ok := u.toolkit.(FontLoader)
	if !ok {
		return fmt.Errorf("add font %q: %w", name, ErrNotSupported)
	}
	data, err := u.ReadFile(file)
	if err != nil {
		return err
	}
	if err := fl.AddFont(name, data); err != nil {
		return fmt.Errorf("add font %q: %w", name, err)
	}
	return nil
}

// SetDefaultFont selects the toolkit's default font and pixel size.
func (u *UI) SetDefaultFont(name string, size int) error {
	fl, ok := u.toolkit.(FontLoader)
	if !ok {
		return fmt.Errorf("set default font %q: %w", name, ErrNotSupported)
	}
	return fl.SetDefaultFont(name, size)
}

// CreateTexture creates a device texture from img.
func (u *UI) CreateTexture(img image.Image) (Texture, error) {
	tc, ok := u.device.(TextureCreator)
	if !ok {
		return nil, ErrNoTextures
	}
	tex, err := tc.CreateTexture(img)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	return tex, nil
}

// Wrap returns the host wrapper for a native widget, creating it on first
// use.
func (u *UI) Wrap(w Widget) (Wrapper, error) {
	return u.wrappers.Wrap(w)
}

// Wrappers returns the wrapper cache.
func (u *UI) Wrappers() *WrapCache {
	return u.wrappers
}

// Close releases the vertex buffer and, when it implements io.Closer, the
// device. Close is idempotent.
func (u *UI) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	u.submitter.Release()
	if c, ok := u.device.(io.Closer); ok {
		if err := c.Close(); err != nil {
			u.log.Warn("uibatch: device release failed", "err", err)
			return fmt.Errorf("close device: %w", err)
		}
	}
	u.log.Info("uibatch: ui closed", "frames", u.total.Frames)
	return nil
}
