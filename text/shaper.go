package text

import (
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// ShapedGlyph is one positioned glyph of a shaped run. X and Y are the
// pen offsets from the start of the run in pixels, including the glyph's
// own offset adjustment.
type ShapedGlyph struct {
	ID      GlyphID
	Cluster int // index of the first rune of the glyph's cluster
	X, Y    float64
	Advance float64
}

// Shaper converts text into positioned glyphs with HarfBuzz shaping.
// Input is normalized to NFC first so that composed and decomposed
// spellings shape identically. Only left-to-right horizontal runs are
// produced.
//
// Shaper is safe for concurrent use.
type Shaper struct {
	pool sync.Pool
	lang language.Language
}

// NewShaper returns a shaper for English text.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{New: func() any { return new(shaping.HarfbuzzShaper) }},
		lang: language.NewLanguage("en"),
	}
}

// Shape shapes str with face. Empty input or a nil face yields nil.
func (s *Shaper) Shape(str string, face *Face) []ShapedGlyph {
	if str == "" || face == nil {
		return nil
	}
	runes := []rune(norm.NFC.String(str))

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(face.shape),
		Size:      face.ppem,
		Script:    scriptOf(runes),
		Language:  s.lang,
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	glyphs := make([]ShapedGlyph, len(out.Glyphs))
	var pen float64
	for i, g := range out.Glyphs {
		adv := fixedFloat(g.Advance)
		glyphs[i] = ShapedGlyph{
			ID:      GlyphID(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
			Cluster: g.TextIndex(),
			X:       pen + fixedFloat(g.XOffset),
			Y:       -fixedFloat(g.YOffset),
			Advance: adv,
		}
		pen += adv
	}
	return glyphs
}

// scriptOf returns the script of the first letter in runes.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
