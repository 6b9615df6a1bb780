//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uibatch"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"
)

// Texture errors.
var (
	// ErrInvalidDimensions is returned for textures with a zero or
	// negative size.
	ErrInvalidDimensions = errors.New("wgpu: invalid texture dimensions")

	// ErrTextureReleased is returned when a released texture is used.
	ErrTextureReleased = errors.New("wgpu: texture has been released")

	// ErrForeignTexture is returned for textures created by another device.
	ErrForeignTexture = errors.New("wgpu: texture belongs to another device")
)

// Texture is a sampled GPU texture created by a Device.
type Texture struct {
	owner  *Device
	tex    hal.Texture
	view   hal.TextureView
	format gputypes.TextureFormat
	size   image.Point
	label  string

	released bool
}

// Format implements uibatch.Texture. A nil texture has no format.
func (t *Texture) Format() gputypes.TextureFormat {
	if t == nil {
		return gputypes.TextureFormatUndefined
	}
	return t.format
}

// Size implements uibatch.Texture.
func (t *Texture) Size() image.Point {
	if t == nil {
		return image.Point{}
	}
	return t.size
}

// String returns the texture label.
func (t *Texture) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.label
}

// Release destroys the texture and its bind group. Safe to call more than
// once.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.owner != nil {
		t.owner.forgetTexture(t)
	}
	t.destroy()
}

func (t *Texture) destroy() {
	if t.owner == nil || t.owner.device == nil {
		return
	}
	if t.view != nil {
		t.owner.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.owner.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// newTexture creates an empty sampled texture.
func newTexture(d *Device, label string, format gputypes.TextureFormat, w, h int) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, //nolint:gosec // dimensions validated positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}
	return &Texture{
		owner:  d,
		tex:    tex,
		view:   view,
		format: format,
		size:   image.Pt(w, h),
		label:  label,
	}, nil
}

// upload writes pixels covering the whole texture.
func (t *Texture) upload(queue hal.Queue, pixels []byte, bytesPerRow int) error {
	if t.released {
		return ErrTextureReleased
	}
	//nolint:gosec // G115: dimensions validated positive at creation
	err := queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		pixels,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(bytesPerRow), RowsPerImage: uint32(t.size.Y)},
		&hal.Extent3D{Width: uint32(t.size.X), Height: uint32(t.size.Y), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("upload texture %s: %w", t.label, err)
	}
	return nil
}

// texturePixels returns tightly packed pixels for img in the format
// uibatch.TextureFormatFor selects, plus the row pitch in bytes.
func texturePixels(img image.Image) ([]byte, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if a, ok := img.(*image.Alpha); ok {
		if a.Stride == w && a.Rect.Min == (image.Point{}) {
			return a.Pix[:w*h], w
		}
		pix := make([]byte, w*h)
		for y := 0; y < h; y++ {
			off := a.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*w:(y+1)*w], a.Pix[off:off+w])
		}
		return pix, w
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*w || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return rgba.Pix[:4*w*h], 4 * w
}

var _ uibatch.Texture = (*Texture)(nil)
