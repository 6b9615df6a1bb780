package recording

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/uibatch"
)

// InvalidRef marks an unbound texture.
const InvalidRef = ^TextureRef(0)

// TextureRef is a reference to a texture in the pool.
// The zero value is a valid reference to the first texture (if any).
type TextureRef uint32

// IsValid returns true if the reference is valid (not InvalidRef).
func (r TextureRef) IsValid() bool {
	return r != InvalidRef
}

// Texture is an in-memory texture handle for recording devices.
type Texture struct {
	name   string
	format gputypes.TextureFormat
	size   image.Point
}

// NewTexture returns a texture with the given name, format and size.
func NewTexture(name string, format gputypes.TextureFormat, width, height int) *Texture {
	return &Texture{name: name, format: format, size: image.Pt(width, height)}
}

// Format implements uibatch.Texture.
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

// Name returns the texture name.
func (t *Texture) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

func (t *Texture) String() string { return t.Name() }

// TexturePool stores the textures referenced by recorded commands.
// Each distinct texture is stored once; references are stable for the
// pool's lifetime.
//
// TexturePool is not safe for concurrent use.
type TexturePool struct {
	textures []uibatch.Texture
	index    map[uibatch.Texture]TextureRef
}

// NewTexturePool creates an empty pool.
func NewTexturePool() *TexturePool {
	return &TexturePool{
		textures: make([]uibatch.Texture, 0, 8),
		index:    make(map[uibatch.Texture]TextureRef),
	}
}

// Add returns the reference for tex, adding it on first use.
// A nil texture yields InvalidRef.
func (p *TexturePool) Add(tex uibatch.Texture) TextureRef {
	if tex == nil {
		return InvalidRef
	}
	if ref, ok := p.index[tex]; ok {
		return ref
	}
	p.textures = append(p.textures, tex)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	ref := TextureRef(uint32(len(p.textures) - 1))
	p.index[tex] = ref
	return ref
}

// Get returns the texture for ref, or nil if ref is invalid.
func (p *TexturePool) Get(ref TextureRef) uibatch.Texture {
	if !ref.IsValid() || int(ref) >= len(p.textures) {
		return nil
	}
	return p.textures[ref]
}

// Len returns the number of textures in the pool.
func (p *TexturePool) Len() int {
	return len(p.textures)
}

// Clear removes all textures from the pool.
func (p *TexturePool) Clear() {
	clear(p.textures)
	p.textures = p.textures[:0]
	clear(p.index)
}
