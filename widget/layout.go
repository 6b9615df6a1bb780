package widget

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// layoutFile is the YAML layout schema:
//
//	font: {name: ui, file: fonts/ui.ttf, size: 14}
//	skin: skins/button.png
//	widgets:
//	  - kind: panel
//	    name: sidebar
//	    rect: [0, 0, 200, 600]   # x, y, width, height relative to the parent
//	    color: "#202028"
//	    clip: true
//	    children:
//	      - {kind: button, name: ok, rect: [10, 10, 120, 32], text: OK}
//	      - {kind: label, rect: [10, 50, 180, 20], text: Hello, textColor: "#ffcc00"}
//	      - {kind: textfield, name: search, rect: [10, 80, 180, 24], maxLen: 32}
//	  - kind: panel
//	    rect: [220, 0, 100, 100]
//	    opacity: 0
//	    fade: {to: 1, duration: 300ms}
type layoutFile struct {
	Font    *fontSpec  `yaml:"font"`
	Skin    string     `yaml:"skin"`
	Widgets []nodeSpec `yaml:"widgets"`
}

type fontSpec struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Size int    `yaml:"size"`
}

type fadeSpec struct {
	To       float64       `yaml:"to"`
	Duration time.Duration `yaml:"duration"`
}

type nodeSpec struct {
	Kind      string     `yaml:"kind"`
	Name      string     `yaml:"name"`
	Rect      []int      `yaml:"rect"`
	Color     string     `yaml:"color"`
	TextColor string     `yaml:"textColor"`
	Text      string     `yaml:"text"`
	Clip      bool       `yaml:"clip"`
	Hidden    bool       `yaml:"hidden"`
	Disabled  bool       `yaml:"disabled"`
	Opacity   *float64   `yaml:"opacity"`
	MaxLen    int        `yaml:"maxLen"`
	Fade      *fadeSpec  `yaml:"fade"`
	Children  []nodeSpec `yaml:"children"`
}

// LoadLayout implements uibatch.LayoutLoader. It replaces the root's
// children with the widgets described by the YAML document in data. The
// tree is left untouched when the document is invalid. Font and skin
// files named by the layout are read through the file reader.
func (t *Toolkit) LoadLayout(name string, data []byte) error {
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("widget: parse layout %q: %w", name, err)
	}

	type fade struct {
		n    Node
		spec *fadeSpec
	}
	var fades []fade
	nodes := make([]Node, 0, len(lf.Widgets))
	for i := range lf.Widgets {
		n, err := buildNode(&lf.Widgets[i], func(n Node, f *fadeSpec) { fades = append(fades, fade{n, f}) })
		if err != nil {
			return fmt.Errorf("widget: layout %q: %w", name, err)
		}
		nodes = append(nodes, n)
	}

	if lf.Font != nil {
		if err := t.loadLayoutFont(lf.Font); err != nil {
			return fmt.Errorf("widget: layout %q: %w", name, err)
		}
	}
	if lf.Skin != "" {
		data, err := t.readFile(lf.Skin)
		if err != nil {
			return fmt.Errorf("widget: layout %q: %w", name, err)
		}
		if err := t.LoadSkin(lf.Skin, data); err != nil {
			return fmt.Errorf("widget: layout %q: %w", name, err)
		}
	}

	t.Clear()
	for _, n := range nodes {
		if err := t.Add(nil, n); err != nil {
			return err
		}
	}
	for _, f := range fades {
		t.Fade(f.n, f.spec.To, f.spec.Duration)
	}
	t.log.Info("widget: layout loaded", "name", name, "nodes", t.Len()-1)
	return nil
}

func (t *Toolkit) readFile(name string) ([]byte, error) {
	if t.read == nil {
		return nil, fmt.Errorf("read %q: no file reader", name)
	}
	return t.read(name)
}

func (t *Toolkit) loadLayoutFont(fs *fontSpec) error {
	size := fs.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	if fs.File != "" {
		data, err := t.readFile(fs.File)
		if err != nil {
			return err
		}
		if err := t.AddFont(fs.Name, data); err != nil {
			return err
		}
	}
	return t.SetDefaultFont(fs.Name, size)
}

// buildNode creates the detached subtree described by s.
func buildNode(s *nodeSpec, onFade func(Node, *fadeSpec)) (Node, error) {
	r, err := specRect(s.Rect)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", s.Kind, s.Name, err)
	}

	var n Node
	switch strings.ToLower(s.Kind) {
	case KindPanel, "":
		n = NewPanel(s.Name, r, DefaultPanelColor)
	case KindButton:
		n = NewButton(s.Name, r, s.Text)
	case KindLabel:
		l := NewLabel(s.Name, r, s.Text)
		if s.TextColor != "" {
			c, err := ParseColor(s.TextColor)
			if err != nil {
				return nil, err
			}
			l.SetTextColor(c)
		}
		n = l
	case KindTextField:
		f := NewTextField(s.Name, r)
		f.SetText(s.Text)
		f.MaxLen = s.MaxLen
		n = f
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}

	e := n.Element()
	if s.Color != "" {
		c, err := ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		e.SetColor(c)
	}
	e.SetClipChildren(s.Clip)
	e.SetVisible(!s.Hidden)
	e.SetEnabled(!s.Disabled)
	if s.Opacity != nil {
		e.SetOpacity(*s.Opacity)
	}
	if s.Fade != nil {
		onFade(n, s.Fade)
	}

	for i := range s.Children {
		c, err := buildNode(&s.Children[i], onFade)
		if err != nil {
			return nil, err
		}
		c.Element().parent = n
		e.children = append(e.children, c)
	}
	return n, nil
}

func specRect(v []int) (image.Rectangle, error) {
	switch len(v) {
	case 0:
		return image.Rectangle{}, nil
	case 4:
		if v[2] < 0 || v[3] < 0 {
			return image.Rectangle{}, fmt.Errorf("negative size in rect %v", v)
		}
		return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
	default:
		return image.Rectangle{}, fmt.Errorf("rect needs 4 values, got %d", len(v))
	}
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
