// Package text turns strings into textured glyph quads for the UI.
//
// A Face rasterizes glyphs of an OpenType font at one pixel size. A Shaper
// runs HarfBuzz shaping over NFC-normalized input. A GlyphCache packs the
// rasterized glyphs into a single alpha Atlas, and a Layouter combines the
// three into positioned quads whose texture coordinates address the atlas:
//
//	face, _ := text.DefaultFace(14)
//	lay := text.NewLayouter(text.NewAtlas(512, 512))
//	quads, _ := lay.Layout("Hello", face, image.Pt(10, 10))
//
// The atlas image is an *image.Alpha, so it uploads as an R8Unorm texture
// and is drawn with the alpha-map shader pair.
package text
