package uibatch

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestFrameStatsMerge(t *testing.T) {
	var total FrameStats
	total.Merge(FrameStats{Vertices: 12, Primitives: 2, Batches: 1, Draws: 1, Resized: true})
	total.Merge(FrameStats{Vertices: 6, Primitives: 1, Merged: 1, Batches: 1, Draws: 1})

	if total.Frames != 2 {
		t.Errorf("Frames = %d, want 2", total.Frames)
	}
	if total.Vertices != 18 || total.Primitives != 3 || total.Draws != 2 {
		t.Errorf("totals = %+v", total)
	}
	if total.Resizes != 1 {
		t.Errorf("Resizes = %d, want 1", total.Resizes)
	}

	var outer FrameStats
	outer.Merge(total)
	if outer.Frames != 2 || outer.Resizes != 1 {
		t.Errorf("merging merged stats = %+v", outer)
	}
}

func TestFrameStatsLogValue(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	l.Info("frame", "stats", FrameStats{Vertices: 6, Batches: 1, Draws: 1})
	out := buf.String()
	for _, want := range []string{"stats.vertices=6", "stats.batches=1", "stats.draw_calls=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestFrameStatsString(t *testing.T) {
	s := FrameStats{Vertices: 18, Primitives: 3, Merged: 1, Batches: 2, Draws: 2}.String()
	if s != "18 vertices, 3 primitives (0 skipped, 1 merged), 2 batches, 2 draw calls" {
		t.Errorf("String() = %q", s)
	}
}
