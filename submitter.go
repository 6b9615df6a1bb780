package uibatch

import (
	"errors"
	"fmt"
	"image"
)

// Submitter uploads a finished vertex pool and issues the batch list as
// draw calls.
//
// It owns the device vertex buffer across frames. The buffer is resized
// only when its capacity is below the frame's vertex count or above
// twice that count, and then to exactly the vertex count.
type Submitter struct {
	device Device
	buffer VertexBuffer

	resizes int
	stats   FrameStats
}

// NewSubmitter returns a submitter drawing through dev.
func NewSubmitter(dev Device) *Submitter {
	return &Submitter{device: dev}
}

// Capacity returns the device buffer capacity in vertices (0 before the
// first upload).
func (s *Submitter) Capacity() int {
	if s.buffer == nil {
		return 0
	}
	return s.buffer.Capacity()
}

// Resizes returns how many times the device buffer was (re)allocated.
func (s *Submitter) Resizes() int {
	return s.resizes
}

// LastStats returns the statistics of the most recent Submit.
func (s *Submitter) LastStats() FrameStats {
	return s.stats
}

// needsResize reports whether a buffer of capacity cap must be
// reallocated to hold need vertices.
func needsResize(capacity, need int) bool {
	return capacity < need || capacity > 2*need
}

// Submit uploads the pool and draws every non-empty batch in order on a
// target of width x height pixels.
//
// A frame is begun and ended even when the pool is empty, so the target
// is cleared; the vertex buffer is then left as is. Batches whose scissor
// lies outside the target are not drawn.
//
// Batch ranges are checked against the pool before anything reaches the
// device. If the buffer cannot be resized or filled, no frame is begun
// and the error is returned. A failed draw ends the open frame before
// the error is returned.
func (s *Submitter) Submit(pool *VertexPool, batches []Batch, width, height int) error {
	s.stats = FrameStats{Vertices: pool.Len(), Batches: len(batches)}
	need := pool.Len()
	for i := range batches {
		b := &batches[i]
		if b.Empty() {
			continue
		}
		if b.VertexStart < 0 || b.VertexEnd > need {
			return fmt.Errorf("%w: batch %d is [%d, %d) over %d vertices",
				ErrBatchRange, i, b.VertexStart, b.VertexEnd, need)
		}
	}

	if need > 0 {
		if err := s.upload(pool); err != nil {
			return err
		}
	}

	if err := s.device.BeginFrame(width, height); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	target := image.Rect(0, 0, width, height)
	proj := UIProjection(width, height)
	model := Identity4()
	for i := range batches {
		b := &batches[i]
		if b.Empty() || b.Scissor.Intersect(target).Empty() {
			continue
		}
		if err := s.drawBatch(b, proj, model); err != nil {
			err = fmt.Errorf("draw batch %d: %w", i, err)
			if endErr := s.device.EndFrame(); endErr != nil {
				err = errors.Join(err, fmt.Errorf("end frame: %w", endErr))
			}
			return err
		}
		s.stats.Draws++
	}

	if err := s.device.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}

// upload resizes the buffer if needed and fills it with the pool.
func (s *Submitter) upload(pool *VertexPool) error {
	need := pool.Len()
	if needsResize(s.Capacity(), need) {
		buf, err := s.device.CreateOrResizeVertexBuffer(s.buffer, need, UIElements)
		if err != nil {
			return fmt.Errorf("resize vertex buffer to %d: %w", need, err)
		}
		Logger().Debug("uibatch: vertex buffer resized",
			"from", s.Capacity(), "to", buf.Capacity())
		s.buffer = buf
		s.resizes++
		s.stats.Resized = true
	}

	if err := s.device.UploadVertexData(s.buffer, pool.Floats()); err != nil {
		return fmt.Errorf("upload vertex data: %w", err)
	}
	return nil
}

func (s *Submitter) drawBatch(b *Batch, proj, model Matrix4) error {
	d := s.device
	if err := d.SetShaders(SelectShaders(b.Texture, b.BlendMode)); err != nil {
		return err
	}
	d.SetBlendMode(b.BlendMode)
	d.SetScissor(true, b.Scissor)
	d.SetTexture(0, b.Texture)
	d.SetShaderParameter(ParamViewProj, proj)
	d.SetShaderParameter(ParamModel, model)
	d.SetShaderParameter(ParamMatDiffColor, White)
	return d.Draw(TriangleList, b.VertexStart, b.Count())
}

// Release frees the device vertex buffer.
func (s *Submitter) Release() {
	if s.buffer != nil {
		s.buffer.Release()
		s.buffer = nil
	}
}
