// Command uidemo drives the widget toolkit through the uibatch compositor
// for a fixed number of frames and prints per-frame batching statistics.
//
// The recording backend needs no GPU and can print the device command
// trace with -trace. The wgpu backend renders offscreen through the
// platform GPU.
//
//	uidemo -frames 8 -trace
//	uidemo -config uidemo.toml -backend wgpu -v -log uidemo.log
package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/uibatch"
	"github.com/gogpu/uibatch/backend"
	_ "github.com/gogpu/uibatch/internal/gpu" // registers the wgpu backend
	"github.com/gogpu/uibatch/recording"
	"github.com/gogpu/uibatch/widget"
)

//go:embed layout.yaml
var builtinLayout []byte

const frameTime = time.Second / 60

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "uidemo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fl := newFlags()
	if err := fl.parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(fl.config)
	if err != nil {
		return err
	}
	fl.apply(&cfg)
	if err := cfg.validate(); err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	uibatch.SetLogger(logger)
	defer uibatch.SetLogger(nil)

	dev, err := backend.Open(cfg.Backend, backend.Config{Width: cfg.Width, Height: cfg.Height, Logger: logger})
	if err != nil {
		return fmt.Errorf("open %s backend (available: %v): %w", cfg.Backend, backend.Available(), err)
	}

	opts := []uibatch.Option{uibatch.WithSize(cfg.Width, cfg.Height), uibatch.WithLogger(logger)}
	if cfg.Resources != "" || cfg.Layout != "" {
		dir := cfg.Resources
		if dir == "" {
			dir = "."
		}
		opts = append(opts, uibatch.WithResourceFS(os.DirFS(dir)))
	}

	tk := widget.New()
	ui, err := uibatch.New(dev, tk, opts...)
	if err != nil {
		return err
	}
	defer ui.Close()

	if cfg.Layout != "" {
		err = ui.LoadResourceFile(cfg.Layout)
	} else {
		err = tk.LoadLayout("builtin", builtinLayout)
	}
	if err != nil {
		return err
	}

	d := newDemo(ui, tk, logger)
	rec, _ := dev.(*recording.Device)
	for i := range cfg.Frames {
		d.script(i)
		if err := ui.Frame(frameTime); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		fmt.Fprintf(stdout, "frame %d: %s\n", i, ui.Stats())
		if cfg.Trace && rec != nil {
			if err := rec.WriteTrace(stdout); err != nil {
				return err
			}
			rec.Reset()
		}
	}

	total := ui.TotalStats()
	fmt.Fprintf(stdout, "total: %d frames, %d draw calls, %d buffer resizes, %d primitives merged\n",
		total.Frames, total.Draws, total.Resizes, total.Merged)
	return nil
}

// demo scripts input against the built-in layout. Widgets missing from a
// custom layout are skipped.
type demo struct {
	ui  *uibatch.UI
	tk  *widget.Toolkit
	log *slog.Logger
}

func newDemo(ui *uibatch.UI, tk *widget.Toolkit, log *slog.Logger) *demo {
	d := &demo{ui: ui, tk: tk, log: log}
	tk.Handle(widget.MsgClick, func(m widget.Message) {
		d.log.Info("clicked", "widget", tk.ByID(m.Target).Element().String())
		d.setStatus("running")
	})
	tk.Handle(widget.MsgChanged, func(m widget.Message) {
		d.setStatus("filter: " + m.Text)
	})
	return d
}

func (d *demo) setStatus(s string) {
	if l, ok := d.tk.Find("status").(*widget.Label); ok {
		l.SetText(s)
	}
}

func (d *demo) script(frame int) {
	switch frame {
	case 1:
		if n := d.tk.Find("run"); n != nil {
			wr, err := d.ui.Wrap(n)
			if err != nil {
				d.log.Warn("wrap", "err", err)
				return
			}
			if bw, ok := wr.(*uibatch.ButtonWrapper); ok {
				bw.Click()
			}
		}
	case 2:
		if n := d.tk.Find("filter"); n != nil {
			c := center(n.Element().Bounds())
			d.ui.HandleMouseMove(c.X, c.Y)
			d.ui.HandleMouseButton(c.X, c.Y, uibatch.MouseLeft, true, 0)
			d.ui.HandleMouseButton(c.X, c.Y, uibatch.MouseLeft, false, 0)
		}
	case 3:
		d.ui.HandleText("batch")
	}
}

func center(r image.Rectangle) image.Point {
	return r.Min.Add(r.Size().Div(2))
}
