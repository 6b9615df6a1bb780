package widget

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/gogpu/uibatch"
	"github.com/gogpu/uibatch/text"
)

// Defaults for a new Toolkit.
const (
	DefaultFontSize  = 14
	DefaultAtlasSize = 512
)

// Toolkit is a widget tree driven by a uibatch.UI. It implements
// uibatch.Toolkit and the optional input, message, resize, file, layout,
// skin, font, delete and texture hooks.
//
// A Toolkit is not safe for concurrent use.
type Toolkit struct {
	log  *slog.Logger
	root *Panel

	width, height int
	nodes         map[uint64]Node
	names         map[string]Node
	onDelete      func(id uint64)

	read     uibatch.ReadFunc
	textures uibatch.TextureCreator

	fonts    map[string][]byte
	face     *text.Face
	layouter *text.Layouter
	atlasTex uibatch.Texture
	skin     *skin

	input
	messages
	anims []*Fade
	dt    time.Duration

	frames uint64
}

// New returns a toolkit with an empty transparent root panel and the
// default font.
func New() *Toolkit {
	t := &Toolkit{
		log:      uibatch.Logger(),
		nodes:    make(map[uint64]Node),
		names:    make(map[string]Node),
		fonts:    make(map[string][]byte),
		layouter: text.NewLayouter(text.NewAtlas(DefaultAtlasSize, DefaultAtlasSize)),
	}
	t.root = NewPanel("root", image.Rectangle{}, color.RGBA{})
	t.attach(t.root)
	if err := t.SetDefaultFont("", DefaultFontSize); err != nil {
		t.log.Warn("widget: default font unavailable", "err", err)
	}
	return t
}

// SetLogger sets the toolkit logger. Nil restores uibatch.Logger().
func (t *Toolkit) SetLogger(l *slog.Logger) {
	if l == nil {
		l = uibatch.Logger()
	}
	t.log = l
}

// Root returns the root panel.
func (t *Toolkit) Root() *Panel { return t.root }

// Layouter returns the text layouter and its glyph atlas.
func (t *Toolkit) Layouter() *text.Layouter { return t.layouter }

// Face returns the default font face.
func (t *Toolkit) Face() *text.Face { return t.face }

// Frames returns the number of completed paint passes.
func (t *Toolkit) Frames() uint64 { return t.frames }

// Find returns the node with the given name, or nil.
func (t *Toolkit) Find(name string) Node { return t.names[name] }

// ByID returns the node with the given id, or nil.
func (t *Toolkit) ByID(id uint64) Node { return t.nodes[id] }

// Len returns the number of nodes in the tree, the root included.
func (t *Toolkit) Len() int { return len(t.nodes) }

// Add appends child to parent's children. A nil parent means the root.
func (t *Toolkit) Add(parent, child Node) error {
	if parent == nil {
		parent = t.root
	}
	ce := child.Element()
	if ce.parent != nil || ce.owner != nil {
		return fmt.Errorf("%w: %s", ErrAttached, ce)
	}
	pe := parent.Element()
	if pe.owner != t {
		return fmt.Errorf("%w: parent %s", ErrNotAttached, pe)
	}
	ce.parent = parent
	pe.children = append(pe.children, child)
	walk(child, t.attach)
	return nil
}

func (t *Toolkit) attach(n Node) {
	e := n.Element()
	e.owner = t
	t.nodes[e.id] = n
	if e.name != "" {
		if prev, ok := t.names[e.name]; ok && prev != n {
			t.log.Warn("widget: duplicate name", "name", e.name, "node", e.String())
		}
		t.names[e.name] = n
	}
}

// Remove detaches n and its subtree from the tree and reports every
// removed widget to the delete callback.
func (t *Toolkit) Remove(n Node) error {
	e := n.Element()
	if e.owner != t || n == Node(t.root) {
		return fmt.Errorf("%w: %s", ErrNotAttached, e)
	}
	if e.parent != nil {
		pe := e.parent.Element()
		for i, c := range pe.children {
			if c == n {
				pe.children = append(pe.children[:i:i], pe.children[i+1:]...)
				break
			}
		}
		e.parent = nil
	}
	walk(n, t.detach)
	return nil
}

func (t *Toolkit) detach(n Node) {
	e := n.Element()
	delete(t.nodes, e.id)
	if e.name != "" && t.names[e.name] == n {
		delete(t.names, e.name)
	}
	e.owner = nil
	e.state &^= Hovered | Active | Focused
	t.input.forget(n)
	t.cancelAnimations(n)
	if t.onDelete != nil {
		t.onDelete(e.id)
	}
}

// Clear removes every child of the root.
func (t *Toolkit) Clear() {
	for len(t.root.children) > 0 {
		_ = t.Remove(t.root.children[len(t.root.children)-1])
	}
}

// OnWidgetDeleted implements uibatch.DeleteNotifier.
func (t *Toolkit) OnWidgetDeleted(fn func(id uint64)) { t.onDelete = fn }

// SetFileReader implements uibatch.FileReaderSetter.
func (t *Toolkit) SetFileReader(read uibatch.ReadFunc) { t.read = read }

// SetTextureCreator implements uibatch.TextureCreatorSetter. The glyph
// atlas texture is created on the next Process.
func (t *Toolkit) SetTextureCreator(tc uibatch.TextureCreator) {
	t.textures = tc
	t.atlasTex = nil
}

// SetSize implements uibatch.Resizer.
func (t *Toolkit) SetSize(width, height int) {
	t.width, t.height = width, height
	t.root.rect = image.Rect(0, 0, width, height)
}

// AdvanceAnimations implements uibatch.Toolkit. It steps every animation
// by the time passed to ProcessMessages since the last call.
func (t *Toolkit) AdvanceAnimations() {
	dt := t.dt
	t.dt = 0
	t.stepAnimations(dt)
}

// ProcessStates implements uibatch.Toolkit.
func (t *Toolkit) ProcessStates() {
	t.resolveInput()
}

// Process implements uibatch.Toolkit. It lays out stale text and uploads
// the glyph atlas when it changed.
func (t *Toolkit) Process() {
	t.layoutText()
	t.uploadAtlas()
}

// layoutText lays out every text run that is new, changed or refers to
// an older atlas generation. An atlas reset midway invalidates runs laid
// out earlier in the same pass, so the walk repeats once in that case.
func (t *Toolkit) layoutText() {
	if t.face == nil {
		return
	}
	atlas := t.layouter.Atlas()
	for range 2 {
		gen := atlas.Generation()
		walk(t.root, func(n Node) {
			tx, ok := n.(texter)
			if !ok {
				return
			}
			b := tx.box()
			if !b.stale(t.face, atlas.Generation()) {
				return
			}
			if err := b.layout(t.layouter, t.face); err != nil {
				t.log.Warn("widget: text layout failed", "node", n.Element().String(), "err", err)
			}
		})
		if atlas.Generation() == gen {
			return
		}
	}
}

func (t *Toolkit) uploadAtlas() {
	if t.textures == nil {
		return
	}
	atlas := t.layouter.Atlas()
	if t.atlasTex == nil {
		tex, err := t.textures.CreateTexture(atlas.Image())
		if err != nil {
			t.log.Warn("widget: glyph atlas texture", "err", err)
			return
		}
		t.atlasTex = tex
		atlas.TakeDirty()
		return
	}
	if atlas.TakeDirty().Empty() {
		return
	}
	if err := t.textures.UpdateTexture(t.atlasTex, atlas.Image()); err != nil {
		t.log.Warn("widget: glyph atlas upload", "err", err)
	}
}

// BeginPaint implements uibatch.Toolkit.
func (t *Toolkit) BeginPaint(width, height int) {
	if width != t.width || height != t.height {
		t.SetSize(width, height)
	}
}

// Paint implements uibatch.Toolkit.
func (t *Toolkit) Paint(sink uibatch.PrimitiveSink) {
	p := &painter{tk: t, sink: sink, clip: t.root.rect, alpha: 1}
	p.paintNode(t.root, image.Rectangle{})
}

// EndPaint implements uibatch.Toolkit.
func (t *Toolkit) EndPaint() {
	t.frames++
}

// AddFont implements uibatch.FontLoader. The data is validated by parsing
// it once.
func (t *Toolkit) AddFont(name string, data []byte) error {
	if _, err := text.NewFace(data, DefaultFontSize); err != nil {
		return err
	}
	t.fonts[name] = data
	return nil
}

// SetDefaultFont implements uibatch.FontLoader. The empty name selects the
// built-in Go Regular font. All text is laid out again on the next
// Process.
func (t *Toolkit) SetDefaultFont(name string, size int) error {
	var (
		face *text.Face
		err  error
	)
	if name == "" {
		face, err = text.DefaultFace(float64(size))
	} else {
		data, ok := t.fonts[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFont, name)
		}
		face, err = text.NewFace(data, float64(size))
	}
	if err != nil {
		return err
	}
	t.face = face
	return nil
}

var (
	_ uibatch.Toolkit              = (*Toolkit)(nil)
	_ uibatch.InputHandler         = (*Toolkit)(nil)
	_ uibatch.MessagePump          = (*Toolkit)(nil)
	_ uibatch.Resizer              = (*Toolkit)(nil)
	_ uibatch.FileReaderSetter     = (*Toolkit)(nil)
	_ uibatch.LayoutLoader         = (*Toolkit)(nil)
	_ uibatch.SkinLoader           = (*Toolkit)(nil)
	_ uibatch.FontLoader           = (*Toolkit)(nil)
	_ uibatch.DeleteNotifier       = (*Toolkit)(nil)
	_ uibatch.TextureCreatorSetter = (*Toolkit)(nil)
)
