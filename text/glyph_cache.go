package text

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/uibatch/internal/cache"
)

// DefaultGlyphCapacity is the per-shard glyph capacity of a GlyphCache.
const DefaultGlyphCapacity = 128

// Glyph locates a rasterized glyph in the atlas.
type Glyph struct {
	// Rect is the glyph's rectangle in the atlas. It is empty for glyphs
	// without an outline.
	Rect image.Rectangle

	// Bearing is the offset of the glyph's top-left pixel from the pen
	// position on the baseline.
	Bearing image.Point
}

// Empty reports whether the glyph has no pixels.
func (g Glyph) Empty() bool { return g.Rect.Empty() }

// CacheStats reports glyph cache activity.
type CacheStats struct {
	Glyphs    int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Resets    uint64
}

// GlyphCache maps (face, glyph) pairs to their place in an Atlas,
// rasterizing and packing on first use. Evicted entries keep their atlas
// space until the next Reset.
//
// GlyphCache is safe for concurrent use.
type GlyphCache struct {
	mu     sync.Mutex // guards atlas
	atlas  *Atlas
	glyphs *cache.ShardedCache[uint64, Glyph]
	resets atomic.Uint64
}

// NewGlyphCache returns a cache packing into atlas. A capacity <= 0
// selects DefaultGlyphCapacity.
func NewGlyphCache(atlas *Atlas, capacity int) *GlyphCache {
	if capacity <= 0 {
		capacity = DefaultGlyphCapacity
	}
	return &GlyphCache{
		atlas:  atlas,
		glyphs: cache.NewSharded[uint64, Glyph](capacity, cache.Uint64Hasher),
	}
}

func glyphKey(face *Face, gid GlyphID) uint64 {
	return face.id<<16 | uint64(gid)
}

// Lookup returns the atlas entry for gid in face. It returns ErrAtlasFull
// when the glyph is new and the atlas has no room; the caller may Reset
// and retry.
func (c *GlyphCache) Lookup(face *Face, gid GlyphID) (Glyph, error) {
	return c.glyphs.GetOrLoad(glyphKey(face, gid), func() (Glyph, error) {
		mask, err := face.Rasterize(gid)
		if err != nil || mask == nil {
			return Glyph{}, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		r, err := c.atlas.Insert(mask)
		if err != nil {
			return Glyph{}, err
		}
		return Glyph{Rect: r, Bearing: mask.Rect.Min}, nil
	})
}

// Reset empties the atlas and forgets every glyph.
func (c *GlyphCache) Reset() {
	c.mu.Lock()
	c.atlas.Reset()
	c.mu.Unlock()
	c.glyphs.Clear()
	c.resets.Add(1)
}

// Atlas returns the atlas the cache packs into.
func (c *GlyphCache) Atlas() *Atlas { return c.atlas }

// Stats returns a snapshot of cache activity.
func (c *GlyphCache) Stats() CacheStats {
	st := c.glyphs.Stats()
	return CacheStats{
		Glyphs:    st.Len,
		Hits:      st.Hits,
		Misses:    st.Misses,
		Evictions: st.Evictions,
		Resets:    c.resets.Load(),
	}
}
