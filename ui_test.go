package uibatch

import (
	"errors"
	"image"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gogpu/gputypes"
)

// fullToolkit implements every optional toolkit capability.
type fullToolkit struct {
	scriptToolkit

	read     ReadFunc
	size     image.Point
	layouts  map[string]string
	fonts    map[string]int
	deleted  func(uint64)
	messages []time.Duration
	textures TextureCreator

	moves, keys []string
}

func newFullToolkit() *fullToolkit {
	return &fullToolkit{layouts: map[string]string{}, fonts: map[string]int{}}
}

func (k *fullToolkit) SetFileReader(read ReadFunc)         { k.read = read }
func (k *fullToolkit) SetSize(w, h int)                    { k.size = image.Pt(w, h) }
func (k *fullToolkit) ProcessMessages(dt time.Duration)    { k.messages = append(k.messages, dt) }
func (k *fullToolkit) OnWidgetDeleted(fn func(id uint64))  { k.deleted = fn }
func (k *fullToolkit) SetTextureCreator(tc TextureCreator) { k.textures = tc }

func (k *fullToolkit) LoadLayout(name string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty layout")
	}
	k.layouts[name] = string(data)
	return nil
}

func (k *fullToolkit) AddFont(name string, data []byte) error {
	k.fonts[name] = len(data)
	return nil
}

func (k *fullToolkit) SetDefaultFont(name string, _ int) error {
	if _, ok := k.fonts[name]; !ok {
		return errors.New("unknown font")
	}
	return nil
}

func (k *fullToolkit) PointerMove(x, y int) bool {
	k.moves = append(k.moves, "move")
	return true
}

func (k *fullToolkit) PointerButton(int, int, MouseButton, bool, Modifier) bool {
	k.moves = append(k.moves, "button")
	return true
}

func (k *fullToolkit) Wheel(int, int, int, int, Modifier) bool {
	k.moves = append(k.moves, "wheel")
	return true
}

func (k *fullToolkit) KeyEvent(Key, bool, Modifier) bool {
	k.keys = append(k.keys, "key")
	return true
}

func (k *fullToolkit) TextInput(r rune) bool {
	k.keys = append(k.keys, string(r))
	return true
}

// testWidget is a minimal Widget with optional click and text support.
type testWidget struct {
	id      uint64
	kind    string
	clicked int
	text    string
}

func (w *testWidget) ID() uint64       { return w.id }
func (w *testWidget) Kind() string     { return w.kind }
func (w *testWidget) Click()           { w.clicked++ }
func (w *testWidget) Text() string     { return w.text }
func (w *testWidget) SetText(s string) { w.text = s }

func TestNewRejectsNil(t *testing.T) {
	if _, err := New(nil, &scriptToolkit{}); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil device) error = %v, want ErrNilDevice", err)
	}
	if _, err := New(newFakeDevice(), nil); !errors.Is(err, ErrNilToolkit) {
		t.Errorf("New(nil toolkit) error = %v, want ErrNilToolkit", err)
	}
}

func TestUIFrameRendersBatches(t *testing.T) {
	dev := newFakeDevice()
	clip := image.Rect(0, 0, 100, 100)
	tex := &fakeTexture{name: "T"}
	tk := &scriptToolkit{prims: []Primitive{
		{BlendMode: BlendAlpha, Clip: clip, Vertices: verts(6)},
		{BlendMode: BlendAlpha, Clip: clip, Vertices: verts(6)},
		{BlendMode: BlendAlpha, Clip: clip, Texture: tex, Vertices: verts(6)},
	}}
	u, err := New(dev, tk, WithSize(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Frame(16 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if len(dev.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(dev.draws))
	}
	if dev.draws[0].start != 0 || dev.draws[0].count != 12 {
		t.Errorf("draw 0 = [%d,+%d), want [0,+12)", dev.draws[0].start, dev.draws[0].count)
	}
	if dev.draws[1].start != 12 || dev.draws[1].count != 6 || dev.draws[1].texture != tex {
		t.Errorf("draw 1 = %+v", dev.draws[1])
	}
	st := u.Stats()
	if st.Batches != 2 || st.Draws != 2 || !st.Resized {
		t.Errorf("Stats() = %+v", st)
	}
	if u.TotalStats().Frames != 1 {
		t.Errorf("TotalStats().Frames = %d, want 1", u.TotalStats().Frames)
	}
}

func TestUIRenderErrorWrapped(t *testing.T) {
	dev := newFakeDevice()
	dev.failUpload = errors.New("device lost")
	tk := &scriptToolkit{prims: []Primitive{{Vertices: verts(3)}}}
	u, err := New(dev, tk, WithSize(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Frame(0); !errors.Is(err, dev.failUpload) {
		t.Errorf("Frame() error = %v, want wrapped device error", err)
	}
	if len(dev.draws) != 0 {
		t.Errorf("draws = %d, want 0", len(dev.draws))
	}
}

func TestUICloseIdempotent(t *testing.T) {
	dev := newFakeDevice()
	tk := &scriptToolkit{prims: []Primitive{{Vertices: verts(3)}}}
	u, err := New(dev, tk, WithSize(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Frame(0); err != nil {
		t.Fatal(err)
	}
	if err := u.Close(); err != nil {
		t.Fatal(err)
	}
	if !dev.closed || !dev.buffers[0].released {
		t.Error("Close() did not release the buffer and device")
	}
	if err := u.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	for name, fn := range map[string]func() error{
		"Update":       func() error { return u.Update(0) },
		"RenderUpdate": u.RenderUpdate,
		"Render":       u.Render,
		"Frame":        func() error { return u.Frame(0) },
	} {
		if err := fn(); !errors.Is(err, ErrClosed) {
			t.Errorf("%s after Close = %v, want ErrClosed", name, err)
		}
	}
	if u.HandleMouseMove(1, 1) {
		t.Error("input forwarded after Close")
	}
}

func TestUIWiresToolkitCapabilities(t *testing.T) {
	tk := newFullToolkit()
	fsys := fstest.MapFS{"ui/main.yaml": {Data: []byte("kind: panel")}}
	u, err := New(newFakeDevice(), tk, WithSize(640, 480), WithResourceFS(fsys))
	if err != nil {
		t.Fatal(err)
	}
	if tk.read == nil {
		t.Fatal("toolkit did not receive a file reader")
	}
	if tk.size != image.Pt(640, 480) {
		t.Errorf("toolkit size = %v, want (640,480)", tk.size)
	}
	if tk.deleted == nil {
		t.Fatal("toolkit did not receive a delete callback")
	}

	if err := u.Update(5 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if len(tk.messages) != 1 || tk.messages[0] != 5*time.Millisecond {
		t.Errorf("messages = %v", tk.messages)
	}

	u.SetSize(800, 600)
	if tk.size != image.Pt(800, 600) {
		t.Errorf("toolkit size after SetSize = %v", tk.size)
	}
	u.SetSize(0, 600)
	if w, h := u.Size(); w != 800 || h != 600 {
		t.Errorf("Size() after degenerate SetSize = %dx%d", w, h)
	}
}

func TestUILoadResourceFile(t *testing.T) {
	fsys := fstest.MapFS{
		"ui/main.yaml":  {Data: []byte("kind: panel")},
		"ui/empty.yaml": {Data: nil},
		"fonts/a.ttf":   {Data: []byte("ttf")},
	}
	tk := newFullToolkit()
	u, err := New(newFakeDevice(), tk, WithResourceFS(fsys))
	if err != nil {
		t.Fatal(err)
	}
	if err := u.LoadResourceFile("/ui/main.yaml"); err != nil {
		t.Fatal(err)
	}
	if tk.layouts["/ui/main.yaml"] != "kind: panel" {
		t.Errorf("layouts = %v", tk.layouts)
	}
	if err := u.LoadResourceFile("ui/missing.yaml"); err == nil {
		t.Error("missing layout loaded without error")
	}
	if err := u.LoadResourceFile("ui/empty.yaml"); err == nil {
		t.Error("toolkit error not returned")
	}
	if err := u.AddFont("sans", "fonts/a.ttf"); err != nil {
		t.Fatal(err)
	}
	if err := u.SetDefaultFont("sans", 12); err != nil {
		t.Error(err)
	}

	plain, err := New(newFakeDevice(), &scriptToolkit{}, WithResourceFS(fsys))
	if err != nil {
		t.Fatal(err)
	}
	if err := plain.LoadResourceFile("ui/main.yaml"); !errors.Is(err, ErrNotSupported) {
		t.Errorf("LoadResourceFile on plain toolkit = %v, want ErrNotSupported", err)
	}
	if err := plain.LoadSkin("ui/main.yaml"); !errors.Is(err, ErrNotSupported) {
		t.Errorf("LoadSkin on plain toolkit = %v, want ErrNotSupported", err)
	}

	bare, err := New(newFakeDevice(), tk)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bare.ReadFile("x"); !errors.Is(err, ErrNoResourceReader) {
		t.Errorf("ReadFile without reader = %v, want ErrNoResourceReader", err)
	}
}

func TestUIReadFuncTakesPrecedence(t *testing.T) {
	var asked string
	read := func(name string) ([]byte, error) {
		asked = name
		return []byte("custom"), nil
	}
	u, err := New(newFakeDevice(), &scriptToolkit{},
		WithReadFunc(read), WithResourceFS(fstest.MapFS{}))
	if err != nil {
		t.Fatal(err)
	}
	if u.Resources() != nil {
		t.Error("resource cache created despite a custom ReadFunc")
	}
	data, err := u.ReadFile("a.txt")
	if err != nil || string(data) != "custom" || asked != "a.txt" {
		t.Errorf("ReadFile = %q, %v (asked %q)", data, err, asked)
	}
}

func TestUIInputGating(t *testing.T) {
	tk := newFullToolkit()
	u, err := New(newFakeDevice(), tk)
	if err != nil {
		t.Fatal(err)
	}

	if !u.HandleMouseMove(1, 2) || !u.HandleKey(KeyEnter, true, 0) || !u.HandleText("hi") {
		t.Fatal("enabled input was not consumed")
	}
	if len(tk.keys) != 3 {
		t.Errorf("keys = %v, want key plus two runes", tk.keys)
	}

	u.SetKeyboardDisabled(true)
	if u.HandleKey(KeyEnter, true, 0) || u.HandleText("x") {
		t.Error("keyboard input forwarded while keyboard disabled")
	}
	if !u.HandleMouseButton(1, 1, MouseLeft, true, ModShift) {
		t.Error("pointer input blocked by keyboard gate")
	}
	u.SetKeyboardDisabled(false)

	u.SetInputDisabled(true)
	if u.HandleMouseMove(1, 1) || u.HandleMouseWheel(0, 0, 0, 1, 0) || u.HandleKey(KeyTab, true, 0) {
		t.Error("input forwarded while input disabled")
	}
	if !u.InputDisabled() || u.KeyboardDisabled() {
		t.Error("gate accessors out of sync")
	}
	if len(tk.moves) != 2 {
		t.Errorf("pointer events = %v, want move and button", tk.moves)
	}

	plain, _ := New(newFakeDevice(), &scriptToolkit{})
	if plain.HandleMouseMove(0, 0) {
		t.Error("toolkit without InputHandler consumed input")
	}
}

func TestResourceCache(t *testing.T) {
	fsys := fstest.MapFS{"skins/default.yaml": {Data: []byte("skin")}}
	c, err := NewResourceCache(fsys, 2)
	if err != nil {
		t.Fatal(err)
	}
	a, err := c.ReadFile("skins/default.yaml")
	if err != nil {
		t.Fatal(err)
	}
	a[0] = 'X'
	b, err := c.ReadFile("/skins/../skins/default.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "skin" {
		t.Errorf("cached contents modified through returned slice: %q", b)
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses; want 1, 1", hits, misses)
	}
	if _, err := c.ReadFile("nope"); err == nil {
		t.Error("missing file read without error")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d", c.Len())
	}
}

func TestCleanResourceName(t *testing.T) {
	tests := map[string]string{
		"a/b.txt":      "a/b.txt",
		"/a/b.txt":     "a/b.txt",
		`a\b.txt`:      "a/b.txt",
		"a/./c/../b":   "a/b",
		"../../secret": "secret",
	}
	for in, want := range tests {
		if got := cleanResourceName(in); got != want {
			t.Errorf("cleanResourceName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrapCache(t *testing.T) {
	tk := newFullToolkit()
	u, err := New(newFakeDevice(), tk)
	if err != nil {
		t.Fatal(err)
	}
	btn := &testWidget{id: 1, kind: KindButton}
	w1, err := u.Wrap(btn)
	if err != nil {
		t.Fatal(err)
	}
	w2, _ := u.Wrap(btn)
	if w1 != w2 {
		t.Error("Wrap returned a different wrapper for the same widget")
	}
	bw, ok := w1.(*ButtonWrapper)
	if !ok {
		t.Fatalf("button wrapped as %T", w1)
	}
	if !bw.Click() || btn.clicked != 1 {
		t.Error("ButtonWrapper.Click did not reach the widget")
	}

	field := &testWidget{id: 2, kind: KindTextField}
	fw, _ := u.Wrap(field)
	fw.(*TextFieldWrapper).SetText("hello")
	if field.text != "hello" || fw.(*TextFieldWrapper).Text() != "hello" {
		t.Errorf("text field = %q", field.text)
	}

	other, err := u.Wrap(&testWidget{id: 3, kind: "slider"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := other.(*BaseWrapper); !ok {
		t.Errorf("unknown kind wrapped as %T, want *BaseWrapper", other)
	}

	if u.Wrappers().Len() != 3 {
		t.Errorf("Len() = %d, want 3", u.Wrappers().Len())
	}
	tk.deleted(1)
	if u.Wrappers().Len() != 2 {
		t.Errorf("Len() after delete = %d, want 2", u.Wrappers().Len())
	}
	if w, err := u.Wrap(nil); w != nil || err != nil {
		t.Errorf("Wrap(nil) = %v, %v", w, err)
	}
}

func TestWrapperRegistryWithoutDefault(t *testing.T) {
	r := NewWrapperRegistry()
	if _, err := r.New(&testWidget{kind: "slider"}); !errors.Is(err, ErrUnknownWidgetKind) {
		t.Errorf("New() error = %v, want ErrUnknownWidgetKind", err)
	}
	r.Register("slider", func(w Widget) Wrapper { return &BaseWrapper{w: w} })
	if _, err := r.New(&testWidget{kind: "slider"}); err != nil {
		t.Error(err)
	}
}

// texDevice is a fakeDevice that can create textures.
type texDevice struct {
	*fakeDevice
	created int
}

func (d *texDevice) CreateTexture(img image.Image) (Texture, error) {
	d.created++
	return &fakeTexture{name: "created", format: TextureFormatFor(img)}, nil
}

func (d *texDevice) UpdateTexture(Texture, image.Image) error { return nil }

func TestUICreateTexture(t *testing.T) {
	u, err := New(newFakeDevice(), newFullToolkit())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := u.CreateTexture(image.NewRGBA(image.Rect(0, 0, 2, 2))); !errors.Is(err, ErrNoTextures) {
		t.Errorf("CreateTexture() error = %v, want %v", err, ErrNoTextures)
	}

	dev := &texDevice{fakeDevice: newFakeDevice()}
	tk := newFullToolkit()
	u, err = New(dev, tk)
	if err != nil {
		t.Fatal(err)
	}
	if tk.textures != TextureCreator(dev) {
		t.Error("toolkit did not receive the texture creator")
	}
	tex, err := u.CreateTexture(image.NewAlpha(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatal(err)
	}
	if tex.Format() != gputypes.TextureFormatR8Unorm {
		t.Errorf("alpha image format = %v, want R8Unorm", tex.Format())
	}
	if dev.created != 1 {
		t.Errorf("created = %d, want 1", dev.created)
	}
}
