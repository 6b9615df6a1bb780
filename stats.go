package uibatch

import (
	"fmt"
	"log/slog"
)

// FrameStats summarizes one frame (or, after Merge, several frames).
type FrameStats struct {
	Frames     int
	Vertices   int
	Primitives int
	Skipped    int
	Merged     int
	Batches    int
	// Draws counts draw calls issued to the device. Empty batches and
	// batches scissored entirely off the target are not issued.
	Draws      int
	Resized    bool
	Resizes    int
}

func (fs FrameStats) String() string {
	return fmt.Sprintf("%d vertices, %d primitives (%d skipped, %d merged), %d batches, %d draw calls",
		fs.Vertices, fs.Primitives, fs.Skipped, fs.Merged, fs.Batches, fs.Draws)
}

// Merge accumulates s into fs.
func (fs *FrameStats) Merge(s FrameStats) {
	fs.Frames += max(s.Frames, 1)
	fs.Vertices += s.Vertices
	fs.Primitives += s.Primitives
	fs.Skipped += s.Skipped
	fs.Merged += s.Merged
	fs.Batches += s.Batches
	fs.Draws += s.Draws
	fs.Resizes += s.Resizes
	if s.Resized {
		fs.Resizes++
	}
}

// LogValue implements slog.LogValuer.
func (fs FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("vertices", fs.Vertices),
		slog.Int("primitives", fs.Primitives),
		slog.Int("skipped", fs.Skipped),
		slog.Int("merged", fs.Merged),
		slog.Int("batches", fs.Batches),
		slog.Int("draw_calls", fs.Draws),
		slog.Bool("resized", fs.Resized),
	)
}
