package text

import (
	"errors"
	"image"
	"math"
	"strings"
)

// Quad is one glyph placed on screen with its atlas texture coordinates.
type Quad struct {
	Rect image.Rectangle
	UV   [4]float32
}

// Layouter lays out text into glyph quads backed by one atlas.
//
// Layouter is safe for concurrent use.
type Layouter struct {
	shaper *Shaper
	glyphs *GlyphCache
}

// NewLayouter returns a layouter packing glyphs into atlas.
func NewLayouter(atlas *Atlas) *Layouter {
	return &Layouter{shaper: NewShaper(), glyphs: NewGlyphCache(atlas, 0)}
}

// Atlas returns the glyph atlas.
func (l *Layouter) Atlas() *Atlas { return l.glyphs.Atlas() }

// Glyphs returns the glyph cache.
func (l *Layouter) Glyphs() *GlyphCache { return l.glyphs }

// Layout places str with its first line box at origin. Lines are split on
// '\n' and advance by the face's line height. Glyphs without pixels emit
// no quad.
//
// When the atlas runs out of space it is reset and the text laid out
// again, which bumps the atlas generation; quads obtained from earlier
// calls are stale after that and must be laid out again.
func (l *Layouter) Layout(str string, face *Face, origin image.Point) ([]Quad, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	quads, err := l.layout(nil, str, face, origin)
	if errors.Is(err, ErrAtlasFull) {
		l.glyphs.Reset()
		quads, err = l.layout(quads[:0], str, face, origin)
	}
	if err != nil {
		return nil, err
	}
	return quads, nil
}

func (l *Layouter) layout(dst []Quad, str string, face *Face, origin image.Point) ([]Quad, error) {
	atlas := l.glyphs.Atlas()
	y := origin.Y + face.Ascent()
	for line := range strings.SplitSeq(str, "\n") {
		for _, sg := range l.shaper.Shape(line, face) {
			g, err := l.glyphs.Lookup(face, sg.ID)
			if err != nil {
				return dst, err
			}
			if g.Empty() {
				continue
			}
			pen := image.Pt(origin.X+int(math.Round(sg.X)), y+int(math.Round(sg.Y)))
			tl := pen.Add(g.Bearing)
			dst = append(dst, Quad{
				Rect: image.Rectangle{Min: tl, Max: tl.Add(g.Rect.Size())},
				UV:   atlas.UV(g.Rect),
			})
		}
		y += face.LineHeight()
	}
	return dst, nil
}

// Measure returns the size of the box str occupies when laid out with
// face: the widest line's advance by the number of lines times the line
// height.
func (l *Layouter) Measure(str string, face *Face) image.Point {
	if face == nil {
		return image.Point{}
	}
	var size image.Point
	for line := range strings.SplitSeq(str, "\n") {
		var w float64
		if glyphs := l.shaper.Shape(line, face); len(glyphs) > 0 {
			last := glyphs[len(glyphs)-1]
			w = last.X + last.Advance
		}
		size.X = max(size.X, int(math.Ceil(w)))
		size.Y += face.LineHeight()
	}
	return size
}
