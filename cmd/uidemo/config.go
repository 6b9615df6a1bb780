package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the demo configuration. It is read from a TOML file and
// flags given on the command line override it.
//
//	backend = "recording"
//	width = 640
//	height = 480
//	frames = 4
//	layout = "ui.yaml"
//	resources = "assets"
//	trace = false
//
//	[log]
//	file = "uidemo.log"
//	level = "debug"
//	max_size = 16
type Config struct {
	Backend   string    `toml:"backend"`
	Width     int       `toml:"width"`
	Height    int       `toml:"height"`
	Frames    int       `toml:"frames"`
	Layout    string    `toml:"layout"`
	Resources string    `toml:"resources"`
	Trace     bool      `toml:"trace"`
	Log       LogConfig `toml:"log"`
}

// LogConfig selects the log destination and level.
type LogConfig struct {
	File    string `toml:"file"`
	Level   string `toml:"level"`
	MaxSize int    `toml:"max_size"` // megabytes
}

func defaultConfig() Config {
	return Config{
		Backend: "recording",
		Width:   640,
		Height:  480,
		Frames:  4,
		Log:     LogConfig{Level: "warn", MaxSize: 16},
	}
}

// loadConfig returns the defaults overlaid with the TOML file at path.
// An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// flags holds the command line values. Only flags actually given
// override the configuration file.
type flags struct {
	set *flag.FlagSet

	config    string
	backend   string
	width     int
	height    int
	frames    int
	layout    string
	resources string
	logFile   string
	verbose   bool
	trace     bool
}

func newFlags() *flags {
	f := &flags{set: flag.NewFlagSet("uidemo", flag.ContinueOnError)}
	f.set.StringVar(&f.config, "config", "", "TOML configuration file")
	f.set.StringVar(&f.backend, "backend", "", "device backend (recording, wgpu)")
	f.set.IntVar(&f.width, "width", 0, "root width in pixels")
	f.set.IntVar(&f.height, "height", 0, "root height in pixels")
	f.set.IntVar(&f.frames, "frames", 0, "number of frames to render")
	f.set.StringVar(&f.layout, "layout", "", "YAML layout file (default: built-in)")
	f.set.StringVar(&f.resources, "resources", "", "directory holding layouts, fonts and skins")
	f.set.StringVar(&f.logFile, "log", "", "write logs to this file instead of stderr")
	f.set.BoolVar(&f.verbose, "v", false, "debug logging")
	f.set.BoolVar(&f.trace, "trace", false, "print recorded device commands")
	return f
}

func (f *flags) parse(args []string) error {
	return f.set.Parse(args)
}

// apply overrides cfg with the flags given on the command line.
func (f *flags) apply(cfg *Config) {
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "backend":
			cfg.Backend = f.backend
		case "width":
			cfg.Width = f.width
		case "height":
			cfg.Height = f.height
		case "frames":
			cfg.Frames = f.frames
		case "layout":
			cfg.Layout = f.layout
		case "resources":
			cfg.Resources = f.resources
		case "log":
			cfg.Log.File = f.logFile
		case "v":
			if f.verbose {
				cfg.Log.Level = "debug"
			}
		case "trace":
			cfg.Trace = f.trace
		}
	})
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", c.Frames)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}

// newLogger returns a text logger writing to stderr, or to a rotated
// file when one is configured. The returned closer is nil for stderr.
func newLogger(lc LogConfig) (*slog.Logger, io.Closer, error) {
	lvl, err := parseLevel(lc.Level)
	if err != nil {
		return nil, nil, err
	}
	var (
		w      io.Writer = os.Stderr
		closer io.Closer
	)
	if lc.File != "" {
		lj := &lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    max(lc.MaxSize, 1), // MB
			MaxBackups: 2,
		}
		w, closer = lj, lj
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closer, nil
}
