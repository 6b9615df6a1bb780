package text

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// atlasPadding is the empty border kept around each packed glyph so that
// linear filtering does not bleed neighbors into each other.
const atlasPadding = 1

// Atlas is a single-channel glyph atlas filled by a shelf packer: glyphs
// are placed left to right on a row whose height is the tallest glyph so
// far, and a new row starts when the current one is full. Space is never
// reclaimed individually; Reset empties the whole atlas.
//
// Atlas is not safe for concurrent use; GlyphCache serializes access.
type Atlas struct {
	img  *image.Alpha
	x, y int
	rowH int

	dirty image.Rectangle
	gen   uint64
}

// NewAtlas returns an empty w x h atlas. It panics if either dimension is
// not positive.
func NewAtlas(w, h int) *Atlas {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("text: NewAtlas(%d, %d): %v", w, h, ErrInvalidSize))
	}
	return &Atlas{img: image.NewAlpha(image.Rect(0, 0, w, h))}
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() image.Point { return a.img.Rect.Size() }

// Image returns the atlas pixels. The image is updated in place by Insert
// and Reset.
func (a *Atlas) Image() *image.Alpha { return a.img }

// Generation is incremented by every Reset. Rectangles obtained before a
// reset are invalid afterwards.
func (a *Atlas) Generation() uint64 { return a.gen }

// Pack reserves a w x h rectangle and returns it.
func (a *Atlas) Pack(w, h int) (image.Rectangle, error) {
	size := a.Size()
	pw, ph := w+2*atlasPadding, h+2*atlasPadding
	if pw > size.X || ph > size.Y {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d in %dx%d", ErrGlyphTooLarge, w, h, size.X, size.Y)
	}
	if a.x+pw > size.X {
		a.x = 0
		a.y += a.rowH
		a.rowH = 0
	}
	if a.y+ph > size.Y {
		return image.Rectangle{}, ErrAtlasFull
	}
	a.rowH = max(a.rowH, ph)

	r := image.Rect(a.x+atlasPadding, a.y+atlasPadding, a.x+atlasPadding+w, a.y+atlasPadding+h)
	a.x += pw
	return r, nil
}

// Insert packs mask and copies its pixels into the atlas.
func (a *Atlas) Insert(mask *image.Alpha) (image.Rectangle, error) {
	b := mask.Bounds()
	r, err := a.Pack(b.Dx(), b.Dy())
	if err != nil {
		return image.Rectangle{}, err
	}
	draw.Draw(a.img, r, mask, b.Min, draw.Src)
	a.dirty = a.dirty.Union(r)
	return r, nil
}

// UV returns the normalized texture coordinates of r as u0, v0, u1, v1.
func (a *Atlas) UV(r image.Rectangle) [4]float32 {
	size := a.Size()
	w, h := float32(size.X), float32(size.Y)
	return [4]float32{
		float32(r.Min.X) / w, float32(r.Min.Y) / h,
		float32(r.Max.X) / w, float32(r.Max.Y) / h,
	}
}

// TakeDirty returns the region changed since the last call and clears it.
// An empty rectangle means the uploaded copy is current.
func (a *Atlas) TakeDirty() image.Rectangle {
	r := a.dirty
	a.dirty = image.Rectangle{}
	return r
}

// Reset clears all pixels and packing state and starts a new generation.
func (a *Atlas) Reset() {
	clear(a.img.Pix)
	a.x, a.y, a.rowH = 0, 0, 0
	a.dirty = a.img.Rect
	a.gen++
}
