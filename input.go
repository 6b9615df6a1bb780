package uibatch

// MouseButton identifies a pointer button.
type MouseButton uint8

// Mouse buttons.
const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

// Modifier keys.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Key is a non-text key code.
type Key uint16

// Special keys forwarded to the toolkit.
const (
	KeyUnknown Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// InputHandler is implemented by toolkits that accept input. Methods
// return true when the event was consumed.
type InputHandler interface {
	PointerMove(x, y int) bool
	PointerButton(x, y int, button MouseButton, down bool, mods Modifier) bool
	Wheel(x, y, dx, dy int, mods Modifier) bool
	KeyEvent(key Key, down bool, mods Modifier) bool
	TextInput(r rune) bool
}

// SetInputDisabled drops all input forwarding while disabled is true.
func (u *UI) SetInputDisabled(disabled bool) {
	u.inputDisabled = disabled
}

// InputDisabled reports whether input forwarding is off.
func (u *UI) InputDisabled() bool {
	return u.inputDisabled
}

// SetKeyboardDisabled drops key and text input while disabled is true.
// Pointer input is unaffected.
func (u *UI) SetKeyboardDisabled(disabled bool) {
	u.keyboardDisabled = disabled
}

// KeyboardDisabled reports whether keyboard forwarding is off.
func (u *UI) KeyboardDisabled() bool {
	return u.keyboardDisabled
}

func (u *UI) pointerInput() (InputHandler, bool) {
	if u.closed || u.inputDisabled {
		return nil, false
	}
	h, ok := u.toolkit.(InputHandler)
	return h, ok
}

func (u *UI) keyboardInput() (InputHandler, bool) {
	if u.keyboardDisabled {
		return nil, false
	}
	return u.pointerInput()
}

// HandleMouseMove forwards a pointer move in target pixels.
func (u *UI) HandleMouseMove(x, y int) bool {
	if h, ok := u.pointerInput(); ok {
		return h.PointerMove(x, y)
	}
	return false
}

// HandleMouseButton forwards a button press or release.
func (u *UI) HandleMouseButton(x, y int, button MouseButton, down bool, mods Modifier) bool {
	if h, ok := u.pointerInput(); ok {
		return h.PointerButton(x, y, button, down, mods)
	}
	return false
}

// HandleMouseWheel forwards a wheel step at the pointer position.
func (u *UI) HandleMouseWheel(x, y, dx, dy int, mods Modifier) bool {
	if h, ok := u.pointerInput(); ok {
		return h.Wheel(x, y, dx, dy, mods)
	}
	return false
}

// HandleKey forwards a special key press or release.
func (u *UI) HandleKey(key Key, down bool, mods Modifier) bool {
	if h, ok := u.keyboardInput(); ok {
		return h.KeyEvent(key, down, mods)
	}
	return false
}

// HandleText forwards typed text, one rune at a time.
func (u *UI) HandleText(s string) bool {
	h, ok := u.keyboardInput()
	if !ok {
		return false
	}
	consumed := false
	for _, r := range s {
		if h.TextInput(r) {
			consumed = true
		}
	}
	return consumed
}
