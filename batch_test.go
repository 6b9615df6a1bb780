package uibatch

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestBatchListMergesIdenticalContiguous(t *testing.T) {
	var l BatchList
	clip := image.Rect(0, 0, 100, 100)
	for i := 0; i < 10; i++ {
		l.Submit(nil, BlendAlpha, clip, i*6, i*6+6)
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	b := l.Batches()[0]
	if b.VertexStart != 0 || b.VertexEnd != 60 {
		t.Errorf("batch = [%d, %d), want [0, 60)", b.VertexStart, b.VertexEnd)
	}
	if l.Merged() != 9 {
		t.Errorf("Merged() = %d, want 9", l.Merged())
	}
}

func TestBatchListStateChangeSplits(t *testing.T) {
	clip := image.Rect(0, 0, 100, 100)
	texA := &fakeTexture{name: "a", format: gputypes.TextureFormatRGBA8Unorm}
	texB := &fakeTexture{name: "b", format: gputypes.TextureFormatRGBA8Unorm}

	tests := []struct {
		name    string
		tex     Texture
		mode    BlendMode
		scissor image.Rectangle
	}{
		{"texture", texB, BlendAlpha, clip},
		{"texture to nil", nil, BlendAlpha, clip},
		{"blend mode", texA, BlendAddAlpha, clip},
		{"scissor position", texA, BlendAlpha, clip.Add(image.Pt(1, 0))},
		{"scissor size", texA, BlendAlpha, image.Rect(0, 0, 100, 99)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l BatchList
			l.Submit(texA, BlendAlpha, clip, 0, 6)
			if merged := l.Submit(tt.tex, tt.mode, tt.scissor, 6, 12); merged {
				t.Error("Submit() merged across a state change")
			}
			if l.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", l.Len())
			}
			got := l.Batches()
			if got[0].VertexEnd != 6 || got[1].VertexStart != 6 || got[1].VertexEnd != 12 {
				t.Errorf("ranges = [%d,%d) [%d,%d), want [0,6) [6,12)",
					got[0].VertexStart, got[0].VertexEnd, got[1].VertexStart, got[1].VertexEnd)
			}
		})
	}
}

func TestBatchListGapSplits(t *testing.T) {
	var l BatchList
	clip := image.Rect(0, 0, 10, 10)
	l.Submit(nil, BlendAlpha, clip, 0, 6)
	l.Submit(nil, BlendAlpha, clip, 12, 18)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 for non-contiguous ranges", l.Len())
	}
}

func TestBatchListTextureIdentity(t *testing.T) {
	// Two textures with equal contents are still different objects.
	a := &fakeTexture{name: "same", format: gputypes.TextureFormatRGBA8Unorm}
	b := &fakeTexture{name: "same", format: gputypes.TextureFormatRGBA8Unorm}
	var l BatchList
	clip := image.Rect(0, 0, 10, 10)
	l.Submit(a, BlendAlpha, clip, 0, 6)
	l.Submit(b, BlendAlpha, clip, 6, 12)
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestBatchListIgnoresEmptyRanges(t *testing.T) {
	var l BatchList
	clip := image.Rect(0, 0, 10, 10)
	l.Submit(nil, BlendAlpha, clip, 0, 0)
	if l.Len() != 0 {
		t.Fatalf("empty range created a batch")
	}
	l.Submit(nil, BlendAlpha, clip, 0, 6)
	l.Submit(&fakeTexture{}, BlendAlpha, clip, 6, 6)
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	for _, b := range l.Batches() {
		if b.Empty() {
			t.Errorf("empty batch %+v in list", b)
		}
	}
}

func TestBatchListPreservesOrder(t *testing.T) {
	tex := []Texture{
		nil,
		&fakeTexture{name: "a"},
		nil,
		&fakeTexture{name: "b"},
		&fakeTexture{name: "c"},
	}
	var l BatchList
	clip := image.Rect(0, 0, 50, 50)
	start := 0
	for i, tx := range tex {
		n := 6 * (i + 1)
		l.Submit(tx, BlendAlpha, clip, start, start+n)
		start += n
	}
	batches := l.Batches()
	if len(batches) != len(tex) {
		t.Fatalf("Len() = %d, want %d", len(batches), len(tex))
	}
	prevEnd := 0
	for i, b := range batches {
		if b.Texture != tex[i] {
			t.Errorf("batch %d texture = %v, want %v", i, b.Texture, tex[i])
		}
		if b.VertexStart < prevEnd {
			t.Errorf("batch %d starts at %d, overlaps previous end %d", i, b.VertexStart, prevEnd)
		}
		prevEnd = b.VertexEnd
	}
}

func TestBatchListReset(t *testing.T) {
	var l BatchList
	l.Submit(nil, BlendAlpha, image.Rect(0, 0, 1, 1), 0, 6)
	l.Submit(nil, BlendAlpha, image.Rect(0, 0, 1, 1), 6, 12)
	l.Reset()
	if l.Len() != 0 || l.Merged() != 0 {
		t.Errorf("after Reset: Len() = %d, Merged() = %d", l.Len(), l.Merged())
	}
}

func TestBatchCount(t *testing.T) {
	b := Batch{VertexStart: 12, VertexEnd: 18}
	if b.Count() != 6 {
		t.Errorf("Count() = %d, want 6", b.Count())
	}
	if b.Empty() {
		t.Error("Empty() = true, want false")
	}
	if !(&Batch{VertexStart: 3, VertexEnd: 3}).Empty() {
		t.Error("Empty() = false for zero-length batch")
	}
}
