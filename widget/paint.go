package widget

import (
	"image"
	"image/color"

	"github.com/gogpu/uibatch"
)

// painter turns widget drawing into primitives for the paint driver.
type painter struct {
	tk    *Toolkit
	sink  uibatch.PrimitiveSink
	clip  image.Rectangle
	alpha float64

	verts []float32
}

// modulate applies the accumulated opacity to c.
func (p *painter) modulate(c color.RGBA) color.RGBA {
	if p.alpha < 1 {
		c.A = uint8(float64(c.A)*p.alpha + 0.5)
	}
	return c
}

func (p *painter) emit(tex uibatch.Texture) {
	p.sink.OnPrimitive(uibatch.Primitive{
		BlendMode: uibatch.BlendAlpha,
		Texture:   tex,
		Clip:      p.clip,
		Vertices:  p.verts,
	})
	// the sink copies the vertices
	p.verts = p.verts[:0]
}

// fill emits a solid quad. Fully transparent fills emit nothing.
func (p *painter) fill(r image.Rectangle, c color.RGBA) {
	c = p.modulate(c)
	if c.A == 0 || r.Empty() {
		return
	}
	p.verts = uibatch.AppendQuad(p.verts, r, c, uibatch.FullUV)
	p.emit(nil)
}

// textured emits a quad sampling uv from tex, tinted by c.
func (p *painter) textured(r image.Rectangle, c color.RGBA, tex uibatch.Texture, uv [4]float32) {
	c = p.modulate(c)
	if c.A == 0 || r.Empty() {
		return
	}
	p.verts = uibatch.AppendQuad(p.verts, r, c, uv)
	p.emit(tex)
}

// text emits every glyph of b translated to origin as one primitive
// sampling the glyph atlas.
func (p *painter) text(b *textBox, origin image.Point) {
	tex := p.tk.atlasTex
	c := p.modulate(b.color)
	if tex == nil || !b.valid || len(b.quads) == 0 || c.A == 0 {
		return
	}
	for _, q := range b.quads {
		p.verts = uibatch.AppendQuad(p.verts, q.Rect.Add(origin), c, q.UV)
	}
	p.emit(tex)
}

// paintNode paints n and its subtree under the painter's current clip and
// opacity, with parent the parent's absolute rectangle.
func (p *painter) paintNode(n Node, parent image.Rectangle) {
	e := n.Element()
	e.abs = e.rect.Add(parent.Min)
	e.clipAbs = p.clip
	if e.hidden {
		return
	}

	saved := p.clip
	savedAlpha := p.alpha
	defer func() {
		p.clip = saved
		p.alpha = savedAlpha
	}()

	p.alpha *= e.opacity
	if p.alpha <= 0 {
		return
	}
	n.paint(p, e.abs)

	if e.clip {
		p.clip = p.clip.Intersect(e.abs)
		if p.clip.Empty() {
			return
		}
	}
	for _, c := range e.children {
		p.paintNode(c, e.abs)
	}
}
