package widget

import (
	"image"
	"unicode"

	"github.com/gogpu/uibatch"
)

type buttonEvent struct {
	pos  image.Point
	down bool
}

// input holds pointer and keyboard state. Pointer events are queued and
// resolved into widget states by ProcessStates; keyboard events go to the
// focused widget immediately.
type input struct {
	pointer image.Point
	buttons []buttonEvent

	hover  Node
	active Node
	focus  Node
}

func (in *input) forget(n Node) {
	if in.hover == n {
		in.hover = nil
	}
	if in.active == n {
		in.active = nil
	}
	if in.focus == n {
		in.focus = nil
	}
}

// hitTest returns the topmost visible node under pt, or nil when pt is
// outside the root. It uses the rectangles of the last paint pass.
func (t *Toolkit) hitTest(pt image.Point) Node {
	return hit(t.root, pt)
}

func hit(n Node, pt image.Point) Node {
	e := n.Element()
	if e.hidden || e.opacity <= 0 || !pt.In(e.abs) || !pt.In(e.clipAbs) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if h := hit(e.children[i], pt); h != nil {
			return h
		}
	}
	return n
}

// consumes reports whether a pointer event at pt lands on a widget other
// than the root.
func (t *Toolkit) consumes(pt image.Point) bool {
	h := t.hitTest(pt)
	return h != nil && h != Node(t.root)
}

// PointerMove implements uibatch.InputHandler.
func (t *Toolkit) PointerMove(x, y int) bool {
	t.pointer = image.Pt(x, y)
	return t.consumes(t.pointer)
}

// PointerButton implements uibatch.InputHandler. Only the left button
// interacts with widgets.
func (t *Toolkit) PointerButton(x, y int, button uibatch.MouseButton, down bool, _ uibatch.Modifier) bool {
	pt := image.Pt(x, y)
	t.pointer = pt
	if button != uibatch.MouseLeft {
		return false
	}
	t.buttons = append(t.buttons, buttonEvent{pos: pt, down: down})
	return t.consumes(pt)
}

// Wheel implements uibatch.InputHandler. The event is posted to the
// widget under the pointer as MsgWheel.
func (t *Toolkit) Wheel(x, y, dx, dy int, _ uibatch.Modifier) bool {
	h := t.hitTest(image.Pt(x, y))
	if h == nil || h == Node(t.root) {
		return false
	}
	t.Post(Message{Kind: MsgWheel, Target: h.ID(), DX: dx, DY: dy})
	return true
}

// KeyEvent implements uibatch.InputHandler. Keys act on the focused text
// field only.
func (t *Toolkit) KeyEvent(key uibatch.Key, down bool, _ uibatch.Modifier) bool {
	f, ok := t.focus.(*TextField)
	if !ok || !down {
		return false
	}
	switch key {
	case uibatch.KeyBackspace:
		if f.backspace() {
			t.Post(Message{Kind: MsgChanged, Target: f.id, Text: f.Text()})
		}
	case uibatch.KeyEnter:
		t.Post(Message{Kind: MsgSubmit, Target: f.id, Text: f.Text()})
	case uibatch.KeyEscape:
		t.setFocus(nil)
	default:
		return false
	}
	return true
}

// TextInput implements uibatch.InputHandler.
func (t *Toolkit) TextInput(r rune) bool {
	f, ok := t.focus.(*TextField)
	if !ok || !unicode.IsPrint(r) {
		return false
	}
	if f.insert(r) {
		t.Post(Message{Kind: MsgChanged, Target: f.id, Text: f.Text()})
	}
	return true
}

// Focus returns the focused node, or nil.
func (t *Toolkit) Focus() Node { return t.focus }

// Hover returns the hovered node, or nil.
func (t *Toolkit) Hover() Node { return t.hover }

// resolveInput updates hover from the pointer position and turns queued
// button events into active, focus and click transitions. A click is a
// press and release on the same enabled widget.
func (t *Toolkit) resolveInput() {
	h := t.interactive(t.hitTest(t.pointer))
	if h != t.hover {
		setState(t.hover, Hovered, false)
		setState(h, Hovered, true)
		t.hover = h
	}

	for _, ev := range t.buttons {
		n := t.interactive(t.hitTest(ev.pos))
		if ev.down {
			setState(t.active, Active, false)
			setState(n, Active, true)
			t.active = n
			if _, ok := n.(*TextField); ok {
				t.setFocus(n)
			} else {
				t.setFocus(nil)
			}
			continue
		}
		if t.active != nil && t.active == n {
			if b, ok := n.(*Button); ok {
				b.Click()
			}
		}
		setState(t.active, Active, false)
		t.active = nil
	}
	t.buttons = t.buttons[:0]
}

// interactive returns n unless it is nil, the root or disabled.
func (t *Toolkit) interactive(n Node) Node {
	if n == nil || n == Node(t.root) || n.Element().state.Has(Disabled) {
		return nil
	}
	return n
}

func (t *Toolkit) setFocus(n Node) {
	if n == t.focus {
		return
	}
	setState(t.focus, Focused, false)
	setState(n, Focused, true)
	t.focus = n
}

func setState(n Node, s State, on bool) {
	if n == nil {
		return
	}
	e := n.Element()
	if on {
		e.state |= s
	} else {
		e.state &^= s
	}
}
