package text

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

var faceIDs atomic.Uint64

// Face is an OpenType font at one pixel size. Glyph rasterization goes
// through golang.org/x/image; shaping uses the go-text view of the same
// font data.
//
// Face is safe for concurrent use.
type Face struct {
	id   uint64
	size float64
	ppem fixed.Int26_6

	mu  sync.Mutex // guards buf
	buf sfnt.Buffer
	otf *opentype.Font

	shape *gotext.Font

	ascent, descent, height int
}

// NewFace parses an OpenType or TrueType font and returns it at size
// pixels per em.
func NewFace(data []byte, size float64) (*Face, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: face size %v", ErrInvalidSize, size)
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	gf, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}

	f := &Face{
		id:    faceIDs.Add(1),
		size:  size,
		ppem:  fixed.Int26_6(math.Round(size * 64)),
		otf:   otf,
		shape: gf.Font,
	}
	m, err := otf.Metrics(&f.buf, f.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("text: font metrics: %w", err)
	}
	f.ascent = m.Ascent.Ceil()
	f.descent = m.Descent.Ceil()
	f.height = max(m.Height.Ceil(), f.ascent+f.descent)
	return f, nil
}

// DefaultFace returns the Go Regular font at size pixels per em.
func DefaultFace(size float64) (*Face, error) {
	return NewFace(goregular.TTF, size)
}

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Ascent returns the distance from the top of a line to the baseline.
func (f *Face) Ascent() int { return f.ascent }

// Descent returns the distance from the baseline to the bottom of a line.
func (f *Face) Descent() int { return f.descent }

// LineHeight returns the recommended distance between baselines.
func (f *Face) LineHeight() int { return f.height }

func (f *Face) String() string {
	return fmt.Sprintf("face#%d@%gpx", f.id, f.size)
}

// GlyphIndex returns the glyph for r, or 0 (.notdef) if the font lacks it.
func (f *Face) GlyphIndex(r rune) GlyphID {
	f.mu.Lock()
	defer f.mu.Unlock()
	gi, err := f.otf.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(gi)
}

// Advance returns the horizontal advance of gid in pixels.
func (f *Face) Advance(gid GlyphID) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv, err := f.otf.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / 64
}

// Rasterize renders gid into an alpha mask. The mask bounds are relative
// to the glyph origin on the baseline, with y growing downward, so
// Min is the offset of the top-left pixel from the pen position. A glyph
// without an outline, such as a space, yields a nil mask.
func (f *Face) Rasterize(gid GlyphID) (*image.Alpha, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bounds, _, err := f.otf.GlyphBounds(&f.buf, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("text: glyph %d bounds: %w", gid, err)
	}
	r := image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor(), bounds.Max.X.Ceil(), bounds.Max.Y.Ceil())
	if r.Empty() {
		return nil, nil
	}

	segs, err := f.otf.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), f.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}
	if len(segs) == 0 {
		return nil, nil
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - ox, float32(p.Y)/64 - oy
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = r
	return mask, nil
}
