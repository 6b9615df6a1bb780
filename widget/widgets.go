package widget

import (
	"image"
	"image/color"
	"unicode/utf8"
)

// Widget kinds. Button and text field kinds match the uibatch wrapper
// kinds.
const (
	KindPanel     = "panel"
	KindButton    = "button"
	KindLabel     = "label"
	KindTextField = "textfield"
)

// Default colors.
var (
	DefaultPanelColor  = color.RGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff}
	DefaultButtonColor = color.RGBA{R: 0x50, G: 0x60, B: 0x80, A: 0xff}
	DefaultTextColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultFieldColor  = color.RGBA{R: 0x18, G: 0x18, B: 0x1c, A: 0xff}
)

// Panel is a solid rectangle. The root of every tree is a Panel.
type Panel struct {
	Element
}

// NewPanel returns a panel filled with c. A transparent color paints
// nothing but still groups and clips children.
func NewPanel(name string, r image.Rectangle, c color.RGBA) *Panel {
	p := &Panel{}
	p.init(p, KindPanel, name, r, c)
	return p
}

func (p *Panel) paint(pt *painter, abs image.Rectangle) {
	pt.fill(abs, p.color)
}

// Button is a clickable rectangle with a centered caption. With a skin
// loaded it is drawn from the skin texture, one band per state, and its
// color only contributes alpha.
type Button struct {
	Element
	caption textBox

	// OnClick runs when a click message for the button is processed.
	OnClick func()
}

// NewButton returns a button labeled caption.
func NewButton(name string, r image.Rectangle, caption string) *Button {
	b := &Button{caption: textBox{text: caption, color: DefaultTextColor}}
	b.init(b, KindButton, name, r, DefaultButtonColor)
	return b
}

func (b *Button) box() *textBox { return &b.caption }

// Caption returns the button text.
func (b *Button) Caption() string { return b.caption.text }

// SetCaption replaces the button text.
func (b *Button) SetCaption(s string) { b.caption.set(s) }

// Click posts a click message as if the button had been pressed and
// released. It does nothing for a detached or disabled button.
func (b *Button) Click() {
	if b.owner == nil || b.state.Has(Disabled) {
		return
	}
	b.owner.Post(Message{Kind: MsgClick, Target: b.id})
}

func (b *Button) paint(p *painter, abs image.Rectangle) {
	if skin := p.tk.skin; skin != nil {
		p.textured(abs, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: b.color.A}, skin.tex, skin.uv(b.state))
	} else {
		p.fill(abs, shade(b.color, b.state))
	}
	p.text(&b.caption, centered(abs, b.caption.size))
}

// shade lightens a hovered color and darkens an active or disabled one.
func shade(c color.RGBA, s State) color.RGBA {
	scale := func(v uint8, f float64) uint8 { return uint8(min(float64(v)*f, 255)) }
	var f float64
	switch {
	case s.Has(Disabled):
		f = 0.5
	case s.Has(Active):
		f = 0.75
	case s.Has(Hovered):
		f = 1.25
	default:
		return c
	}
	return color.RGBA{R: scale(c.R, f), G: scale(c.G, f), B: scale(c.B, f), A: c.A}
}

func centered(r image.Rectangle, size image.Point) image.Point {
	return r.Min.Add(r.Size().Sub(size).Div(2))
}

// Label is a run of text. Lines are split on '\n'.
type Label struct {
	Element
	body textBox
}

// NewLabel returns a label showing s. Its fill color is transparent.
func NewLabel(name string, r image.Rectangle, s string) *Label {
	l := &Label{body: textBox{text: s, color: DefaultTextColor}}
	l.init(l, KindLabel, name, r, color.RGBA{})
	return l
}

func (l *Label) box() *textBox { return &l.body }

// Text returns the label text.
func (l *Label) Text() string { return l.body.text }

// SetText replaces the label text.
func (l *Label) SetText(s string) { l.body.set(s) }

// SetTextColor sets the glyph color.
func (l *Label) SetTextColor(c color.RGBA) { l.body.color = c }

func (l *Label) paint(p *painter, abs image.Rectangle) {
	p.fill(abs, l.color)
	p.text(&l.body, abs.Min)
}

// fieldPadding is the horizontal inset of text in a TextField.
const fieldPadding = 4

// TextField is an editable single line of text. It takes focus when
// pressed; typed runes are appended and Backspace deletes the last rune.
// Enter posts MsgSubmit and Escape drops focus.
type TextField struct {
	Element
	value textBox

	// MaxLen limits the number of runes; zero means unlimited.
	MaxLen int
}

// NewTextField returns an empty text field.
func NewTextField(name string, r image.Rectangle) *TextField {
	f := &TextField{value: textBox{color: DefaultTextColor}}
	f.init(f, KindTextField, name, r, DefaultFieldColor)
	return f
}

func (f *TextField) box() *textBox { return &f.value }

// Text returns the field contents.
func (f *TextField) Text() string { return f.value.text }

// SetText replaces the field contents.
func (f *TextField) SetText(s string) { f.value.set(s) }

func (f *TextField) insert(r rune) bool {
	if f.MaxLen > 0 && utf8.RuneCountInString(f.value.text) >= f.MaxLen {
		return false
	}
	f.value.set(f.value.text + string(r))
	return true
}

func (f *TextField) backspace() bool {
	if f.value.text == "" {
		return false
	}
	_, n := utf8.DecodeLastRuneInString(f.value.text)
	f.value.set(f.value.text[:len(f.value.text)-n])
	return true
}

func (f *TextField) paint(p *painter, abs image.Rectangle) {
	p.fill(abs, f.color)

	lineH := f.value.size.Y
	if face := p.tk.face; face != nil {
		lineH = face.LineHeight()
	}
	origin := image.Pt(abs.Min.X+fieldPadding, abs.Min.Y+(abs.Dy()-lineH)/2)
	p.text(&f.value, origin)

	if f.state.Has(Focused) {
		x := origin.X
		if f.value.text != "" {
			x += f.value.size.X
		}
		p.fill(image.Rect(x, origin.Y, x+1, origin.Y+lineH), f.value.color)
	}
}
