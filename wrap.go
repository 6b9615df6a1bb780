package uibatch

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Widget is the identity a toolkit exposes for a native widget.
type Widget interface {
	// ID is unique for the widget's lifetime.
	ID() uint64

	// Kind names the widget type ("button", "textfield", ...).
	Kind() string
}

// Wrapper is the host-side handle for a native widget.
type Wrapper interface {
	Widget() Widget
}

// WrapperFunc constructs a wrapper for a widget.
type WrapperFunc func(w Widget) Wrapper

// Wrapper kinds registered by DefaultWrappers.
const (
	KindDefault   = "widget"
	KindButton    = "button"
	KindTextField = "textfield"
)

// WrapperRegistry maps widget kinds to wrapper constructors.
// It is safe for concurrent use.
type WrapperRegistry struct {
	ctors *gpucontext.Registry[WrapperFunc]
}

// NewWrapperRegistry returns an empty registry.
func NewWrapperRegistry() *WrapperRegistry {
	return &WrapperRegistry{ctors: gpucontext.NewRegistry[WrapperFunc]()}
}

// DefaultWrappers returns a registry with the button, text field and
// generic widget wrappers.
func DefaultWrappers() *WrapperRegistry {
	r := NewWrapperRegistry()
	r.Register(KindDefault, func(w Widget) Wrapper { return &BaseWrapper{w: w} })
	r.Register(KindButton, func(w Widget) Wrapper { return &ButtonWrapper{BaseWrapper{w: w}} })
	r.Register(KindTextField, func(w Widget) Wrapper { return &TextFieldWrapper{BaseWrapper{w: w}} })
	return r
}

// Register sets the constructor for kind, replacing any previous one.
func (r *WrapperRegistry) Register(kind string, fn WrapperFunc) {
	r.ctors.Register(kind, func() WrapperFunc { return fn })
}

// Kinds returns the registered kinds.
func (r *WrapperRegistry) Kinds() []string {
	return r.ctors.Available()
}

// New constructs a wrapper for w. Kinds without a constructor fall back to
// KindDefault when registered.
func (r *WrapperRegistry) New(w Widget) (Wrapper, error) {
	fn := r.ctors.Get(w.Kind())
	if fn == nil {
		fn = r.ctors.Get(KindDefault)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidgetKind, w.Kind())
	}
	return fn(w), nil
}

// WrapCache hands out one wrapper per native widget, keyed by widget ID.
//
// The cache does not manage widget lifetime: the toolkit reports deleted
// widgets through Forget.
type WrapCache struct {
	registry *WrapperRegistry
	byID     map[uint64]Wrapper
}

// NewWrapCache returns a cache constructing wrappers from reg.
func NewWrapCache(reg *WrapperRegistry) *WrapCache {
	if reg == nil {
		reg = DefaultWrappers()
	}
	return &WrapCache{registry: reg, byID: make(map[uint64]Wrapper)}
}

// Wrap returns the cached wrapper for w, constructing it on first use.
// A nil widget yields a nil wrapper.
func (c *WrapCache) Wrap(w Widget) (Wrapper, error) {
	if w == nil {
		return nil, nil
	}
	if wr, ok := c.byID[w.ID()]; ok {
		return wr, nil
	}
	wr, err := c.registry.New(w)
	if err != nil {
		return nil, err
	}
	c.byID[w.ID()] = wr
	return wr, nil
}

// Forget drops the wrapper for a deleted widget.
func (c *WrapCache) Forget(id uint64) {
	delete(c.byID, id)
}

// Len returns the number of cached wrappers.
func (c *WrapCache) Len() int {
	return len(c.byID)
}

// BaseWrapper wraps any widget.
type BaseWrapper struct {
	w Widget
}

// Widget returns the wrapped widget.
func (b *BaseWrapper) Widget() Widget { return b.w }

// ButtonWrapper wraps a clickable widget.
type ButtonWrapper struct {
	BaseWrapper
}

// Click activates the button. It reports false if the widget cannot be
// clicked.
func (b *ButtonWrapper) Click() bool {
	c, ok := b.w.(interface{ Click() })
	if ok {
		c.Click()
	}
	return ok
}

// TextFieldWrapper wraps an editable text widget.
type TextFieldWrapper struct {
	BaseWrapper
}

type textWidget interface {
	Text() string
	SetText(string)
}

// Text returns the field contents, or "" if the widget holds no text.
func (t *TextFieldWrapper) Text() string {
	if tw, ok := t.w.(textWidget); ok {
		return tw.Text()
	}
	return ""
}

// SetText replaces the field contents.
func (t *TextFieldWrapper) SetText(s string) {
	if tw, ok := t.w.(textWidget); ok {
		tw.SetText(s)
	}
}
