package widget

import (
	"image"
	"image/color"

	"github.com/gogpu/uibatch/text"
)

// textBox caches the laid out glyph quads of one text run relative to
// its own origin.
type textBox struct {
	text  string
	color color.RGBA

	face  *text.Face
	gen   uint64
	valid bool
	quads []text.Quad
	size  image.Point
}

// texter is implemented by widgets that show text.
type texter interface {
	box() *textBox
}

func (b *textBox) set(s string) {
	if s != b.text {
		b.text = s
		b.valid = false
	}
}

func (b *textBox) stale(face *text.Face, gen uint64) bool {
	return !b.valid || b.face != face || b.gen != gen
}

// layout lays the run out at the origin with face.
func (b *textBox) layout(l *text.Layouter, face *text.Face) error {
	quads, err := l.Layout(b.text, face, image.Point{})
	if err != nil {
		b.valid = false
		b.quads = nil
		return err
	}
	b.quads = quads
	b.size = l.Measure(b.text, face)
	b.face = face
	b.gen = l.Atlas().Generation()
	b.valid = true
	return nil
}
