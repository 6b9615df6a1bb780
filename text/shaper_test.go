package text

import (
	"slices"
	"testing"
)

func TestShaperShape(t *testing.T) {
	f := newTestFace(t, 16)
	s := NewShaper()

	glyphs := s.Shape("Hello", f)
	if len(glyphs) != 5 {
		t.Fatalf("Shape(Hello) = %d glyphs, want 5", len(glyphs))
	}
	for i, g := range glyphs {
		if g.Advance <= 0 {
			t.Errorf("glyph %d advance = %v", i, g.Advance)
		}
		if g.Cluster != i {
			t.Errorf("glyph %d cluster = %d", i, g.Cluster)
		}
		if i > 0 && g.X <= glyphs[i-1].X {
			t.Errorf("glyph %d at x=%v not right of previous %v", i, g.X, glyphs[i-1].X)
		}
	}
	if glyphs[0].ID != f.GlyphIndex('H') {
		t.Errorf("first glyph = %d, want H", glyphs[0].ID)
	}
}

func TestShaperEmpty(t *testing.T) {
	s := NewShaper()
	if got := s.Shape("", newTestFace(t, 12)); got != nil {
		t.Errorf("Shape(\"\") = %v", got)
	}
	if got := s.Shape("x", nil); got != nil {
		t.Errorf("Shape with nil face = %v", got)
	}
}

func TestShaperNormalizesNFC(t *testing.T) {
	f := newTestFace(t, 16)
	s := NewShaper()
	ids := func(str string) []GlyphID {
		var out []GlyphID
		for _, g := range s.Shape(str, f) {
			out = append(out, g.ID)
		}
		return out
	}
	composed, decomposed := ids("caf\u00e9"), ids("cafe\u0301")
	if !slices.Equal(composed, decomposed) {
		t.Errorf("composed %v != decomposed %v", composed, decomposed)
	}
}
