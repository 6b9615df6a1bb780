package text

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestAtlasPackShelves(t *testing.T) {
	a := NewAtlas(10, 10)
	want := []image.Rectangle{
		image.Rect(1, 1, 4, 4),
		image.Rect(6, 1, 9, 4),
		image.Rect(1, 6, 4, 9),
		image.Rect(6, 6, 9, 9),
	}
	for i, w := range want {
		r, err := a.Pack(3, 3)
		if err != nil {
			t.Fatalf("Pack #%d: %v", i, err)
		}
		if r != w {
			t.Errorf("Pack #%d = %v, want %v", i, r, w)
		}
	}
	if _, err := a.Pack(3, 3); !errors.Is(err, ErrAtlasFull) {
		t.Errorf("Pack on full atlas error = %v, want ErrAtlasFull", err)
	}
}

func TestAtlasPackTooLarge(t *testing.T) {
	a := NewAtlas(10, 10)
	if _, err := a.Pack(9, 1); !errors.Is(err, ErrGlyphTooLarge) {
		t.Errorf("Pack(9, 1) error = %v, want ErrGlyphTooLarge", err)
	}
}

func TestAtlasRowHeightIsTallest(t *testing.T) {
	a := NewAtlas(20, 20)
	if _, err := a.Pack(2, 6); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Pack(2, 2); err != nil {
		t.Fatal(err)
	}
	r, err := a.Pack(15, 2) // does not fit on the first row
	if err != nil {
		t.Fatal(err)
	}
	if r.Min.Y != 8+1 {
		t.Errorf("second row starts at y=%d, want 9", r.Min.Y)
	}
}

func TestAtlasInsertAndDirty(t *testing.T) {
	a := NewAtlas(8, 8)
	mask := image.NewAlpha(image.Rect(-1, -2, 1, 0))
	mask.SetAlpha(-1, -2, color.Alpha{A: 200})
	mask.SetAlpha(0, -1, color.Alpha{A: 50})

	r, err := a.Insert(mask)
	if err != nil {
		t.Fatal(err)
	}
	if r != image.Rect(1, 1, 3, 3) {
		t.Fatalf("Insert rect = %v", r)
	}
	img := a.Image()
	if got := img.AlphaAt(1, 1).A; got != 200 {
		t.Errorf("atlas(1,1) = %d, want 200", got)
	}
	if got := img.AlphaAt(2, 2).A; got != 50 {
		t.Errorf("atlas(2,2) = %d, want 50", got)
	}
	if d := a.TakeDirty(); d != r {
		t.Errorf("TakeDirty() = %v, want %v", d, r)
	}
	if d := a.TakeDirty(); !d.Empty() {
		t.Errorf("second TakeDirty() = %v, want empty", d)
	}
}

func TestAtlasReset(t *testing.T) {
	a := NewAtlas(8, 8)
	mask := image.NewAlpha(image.Rect(0, 0, 2, 2))
	mask.SetAlpha(0, 0, color.Alpha{A: 255})
	if _, err := a.Insert(mask); err != nil {
		t.Fatal(err)
	}
	a.TakeDirty()

	a.Reset()
	if a.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", a.Generation())
	}
	if a.Image().AlphaAt(1, 1).A != 0 {
		t.Error("Reset left pixels behind")
	}
	if d := a.TakeDirty(); d != image.Rect(0, 0, 8, 8) {
		t.Errorf("dirty after Reset = %v, want whole atlas", d)
	}
	if r, _ := a.Pack(2, 2); r != image.Rect(1, 1, 3, 3) {
		t.Errorf("Pack after Reset = %v", r)
	}
}

func TestAtlasUV(t *testing.T) {
	a := NewAtlas(100, 50)
	got := a.UV(image.Rect(10, 5, 60, 50))
	want := [4]float32{0.1, 0.1, 0.6, 1}
	if got != want {
		t.Errorf("UV = %v, want %v", got, want)
	}
}

func TestNewAtlasPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewAtlas(0, 8) did not panic")
		}
	}()
	NewAtlas(0, 8)
}
