package widget

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // skin images are PNG

	"github.com/gogpu/uibatch"
)

// skinBands is the number of horizontal bands in a skin image: normal,
// hovered and active, top to bottom.
const skinBands = 3

type skin struct {
	name  string
	tex   uibatch.Texture
	bands [skinBands][4]float32
}

func (s *skin) uv(st State) [4]float32 {
	switch {
	case st.Has(Active):
		return s.bands[2]
	case st.Has(Hovered):
		return s.bands[1]
	default:
		return s.bands[0]
	}
}

// LoadSkin implements uibatch.SkinLoader. data is a PNG image split into
// three equal horizontal bands for the normal, hovered and active button
// states. Buttons sample the band for their state tinted by their color.
func (t *Toolkit) LoadSkin(name string, data []byte) error {
	if t.textures == nil {
		return ErrNoTextures
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("widget: decode skin: %w", err)
	}
	if img.Bounds().Dy() < skinBands {
		return fmt.Errorf("widget: skin %q is %v, need at least %d rows", name, img.Bounds().Size(), skinBands)
	}
	tex, err := t.textures.CreateTexture(img)
	if err != nil {
		return err
	}

	s := &skin{name: name, tex: tex}
	for i := range s.bands {
		v0 := float32(i) / skinBands
		v1 := float32(i+1) / skinBands
		s.bands[i] = [4]float32{0, v0, 1, v1}
	}
	t.skin = s
	t.log.Info("widget: skin loaded", "name", name, "size", img.Bounds().Size())
	return nil
}

// Skinned reports whether a skin is loaded.
func (t *Toolkit) Skinned() bool { return t.skin != nil }
