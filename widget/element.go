package widget

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync/atomic"
)

// State is a bit set of interaction states.
type State uint8

// Interaction states.
const (
	// Hovered is set while the pointer is over the widget.
	Hovered State = 1 << iota

	// Active is set while the widget is pressed.
	Active

	// Focused is set on the widget that receives keyboard input.
	Focused

	// Disabled widgets ignore input.
	Disabled
)

// Has reports whether all bits of f are set.
func (s State) Has(f State) bool { return s&f == f }

func (s State) String() string {
	if s == 0 {
		return "normal"
	}
	var parts []string
	for _, st := range []struct {
		bit  State
		name string
	}{{Hovered, "hovered"}, {Active, "active"}, {Focused, "focused"}, {Disabled, "disabled"}} {
		if s.Has(st.bit) {
			parts = append(parts, st.name)
		}
	}
	return strings.Join(parts, "|")
}

var nodeIDs atomic.Uint64

// Node is a widget in a Toolkit tree.
type Node interface {
	ID() uint64
	Kind() string
	Element() *Element

	// paint emits the node's own primitives; children are painted by the
	// toolkit afterwards.
	paint(p *painter, abs image.Rectangle)
}

// Element holds the state common to all widgets. Widgets embed it.
type Element struct {
	id    uint64
	kind  string
	name  string
	self  Node
	owner *Toolkit

	rect     image.Rectangle
	color    color.RGBA
	hidden   bool
	clip     bool
	opacity  float64
	state    State
	parent   Node
	children []Node

	// abs is the absolute rectangle from the last paint pass.
	abs image.Rectangle
	// clipAbs is the scissor the node was painted under.
	clipAbs image.Rectangle
}

func (e *Element) init(self Node, kind, name string, r image.Rectangle, c color.RGBA) {
	e.id = nodeIDs.Add(1)
	e.kind = kind
	e.name = name
	e.self = self
	e.rect = r
	e.color = c
	e.opacity = 1
}

// ID returns the node's unique id.
func (e *Element) ID() uint64 { return e.id }

// Kind returns the widget kind.
func (e *Element) Kind() string { return e.kind }

// Name returns the name given at construction, possibly empty.
func (e *Element) Name() string { return e.name }

// Element returns e.
func (e *Element) Element() *Element { return e }

// Rect returns the node rectangle relative to its parent.
func (e *Element) Rect() image.Rectangle { return e.rect }

// SetRect moves the node within its parent.
func (e *Element) SetRect(r image.Rectangle) { e.rect = r }

// Bounds returns the absolute rectangle from the last paint pass.
func (e *Element) Bounds() image.Rectangle { return e.abs }

// Color returns the fill color.
func (e *Element) Color() color.RGBA { return e.color }

// SetColor sets the fill color.
func (e *Element) SetColor(c color.RGBA) { e.color = c }

// Visible reports whether the node is painted.
func (e *Element) Visible() bool { return !e.hidden }

// SetVisible shows or hides the node and its subtree.
func (e *Element) SetVisible(v bool) { e.hidden = !v }

// ClipChildren reports whether children are clipped to the node.
func (e *Element) ClipChildren() bool { return e.clip }

// SetClipChildren enables clipping children to the node rectangle.
func (e *Element) SetClipChildren(clip bool) { e.clip = clip }

// Opacity returns the node opacity in [0, 1]. It multiplies with the
// opacity of every ancestor.
func (e *Element) Opacity() float64 { return e.opacity }

// SetOpacity sets the opacity, clamped to [0, 1].
func (e *Element) SetOpacity(o float64) { e.opacity = min(max(o, 0), 1) }

// State returns the interaction state.
func (e *Element) State() State { return e.state }

// SetEnabled enables or disables input for the node.
func (e *Element) SetEnabled(enabled bool) {
	if enabled {
		e.state &^= Disabled
	} else {
		e.state |= Disabled
	}
}

// Parent returns the parent node, or nil for the root and detached nodes.
func (e *Element) Parent() Node { return e.parent }

// Children returns the child nodes in paint order.
func (e *Element) Children() []Node { return e.children }

func (e *Element) String() string {
	if e.name != "" {
		return fmt.Sprintf("%s %q #%d", e.kind, e.name, e.id)
	}
	return fmt.Sprintf("%s #%d", e.kind, e.id)
}

// walk calls fn for n and every descendant, parents first.
func walk(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.Element().children {
		walk(c, fn)
	}
}
