// Package config assembles host settings from defaults, an optional TOML
// file and command-line flags, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"pingpong-gl/effects"
	"pingpong-gl/libio"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfig names the environment variable holding the config file path
// when no -config flag is given.
const EnvConfig = "PINGPONG_CONFIG"

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Pipeline struct {
	Background string         `toml:"background"`
	Params     effects.Params `toml:"params"`
}

type Capture struct {
	Path        string `toml:"path"`
	Compression string `toml:"compression"`
	// Level is the lz4 level from 0 (fast) to 9.
	Level int `toml:"level"`
}

type OpenCL struct {
	Prefer DeviceType `toml:"prefer"`
}

type Framebuffer struct {
	Device string `toml:"device"`
	FPS    int    `toml:"fps"`
	// Frames stops the loop after this many ticks; 0 runs until cancelled.
	Frames int `toml:"frames"`
}

type Config struct {
	Backend     Backend     `toml:"backend"`
	Verbose     bool        `toml:"verbose"`
	Window      Window      `toml:"window"`
	Pipeline    Pipeline    `toml:"pipeline"`
	Capture     Capture     `toml:"capture"`
	OpenCL      OpenCL      `toml:"opencl"`
	Framebuffer Framebuffer `toml:"framebuffer"`
}

func Default() Config {
	return Config{
		Backend: BackendOpenGL,
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Ping-Pong",
			VSync:  true,
		},
		Pipeline: Pipeline{
			Background: FormatColor(effects.Background),
			Params:     effects.DefaultParams(),
		},
		Capture: Capture{
			Compression: libio.CaptureCompressionLz4.String(),
		},
		OpenCL: OpenCL{
			Prefer: DeviceGPU,
		},
		Framebuffer: Framebuffer{
			Device: "/dev/fb0",
			FPS:    30,
		},
	}
}

// LoadFile decodes a TOML file over cfg. Keys missing from the file keep their value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Encode writes cfg as TOML, the format LoadFile reads.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate checks the values hosts depend on.
func (cfg *Config) Validate() error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", cfg.Window.Width, cfg.Window.Height)
	}
	if _, err := ParseColor(cfg.Pipeline.Background); err != nil {
		return err
	}
	if _, err := libio.ParseCaptureCompression(cfg.Capture.Compression); err != nil {
		return err
	}
	if cfg.Capture.Level < 0 || cfg.Capture.Level > 9 {
		return fmt.Errorf("capture level %d is outside 0..9", cfg.Capture.Level)
	}
	if cfg.Framebuffer.FPS <= 0 {
		return fmt.Errorf("fps %d is not positive", cfg.Framebuffer.FPS)
	}
	if cfg.Framebuffer.Frames < 0 {
		return fmt.Errorf("frame limit %d is negative", cfg.Framebuffer.Frames)
	}
	return nil
}

func (cfg *Config) BackgroundColor() (color.RGBA, error) {
	return ParseColor(cfg.Pipeline.Background)
}

// ParseColor parses a #rrggbb color. The leading # is optional.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type float32Value struct {
	p *float32
}

func (f float32Value) String() string {
	if f.p == nil {
		return "0"
	}
	return strconv.FormatFloat(float64(*f.p), 'g', -1, 32)
}

func (f float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f.p = float32(v)
	return nil
}

// RegisterFlags binds the flags common to all hosts. The current values of cfg are the defaults.
func (cfg *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.Var(&cfg.Backend, "backend", "the rendering backend; opengl, software or opencl")
	flags.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enables debug logging")
	flags.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for verbose")
	flags.IntVar(&cfg.Window.Width, "width", cfg.Window.Width, "the viewport width")
	flags.IntVar(&cfg.Window.Height, "height", cfg.Window.Height, "the viewport height")
	flags.BoolVar(&cfg.Window.VSync, "vsync", cfg.Window.VSync, "synchronizes buffer swaps with the display")
	flags.StringVar(&cfg.Pipeline.Background, "background", cfg.Pipeline.Background, "the initial color as #rrggbb")
	flags.Var(float32Value{&cfg.Pipeline.Params.XOffset}, "x-offset", "the initial transform x offset")
	flags.Var(float32Value{&cfg.Pipeline.Params.YOffset}, "y-offset", "the initial transform y offset")
	flags.Var(float32Value{&cfg.Pipeline.Params.Rotation}, "angle", "the initial transform rotation in radians")
	flags.Var(float32Value{&cfg.Pipeline.Params.ScaleX}, "scale-x", "the initial transform x scale")
	flags.Var(float32Value{&cfg.Pipeline.Params.ScaleY}, "scale-y", "the initial transform y scale")
	flags.StringVar(&cfg.Capture.Path, "capture", cfg.Capture.Path, "appends every displayed frame to this file")
	flags.StringVar(&cfg.Capture.Compression, "capture-compression", cfg.Capture.Compression, "the capture compression; none or lz4")
	flags.IntVar(&cfg.Capture.Level, "capture-level", cfg.Capture.Level, "the lz4 level from 0 (fast) to 9")
	flags.Var(&cfg.OpenCL.Prefer, "cl-device", "the preferred opencl device type; gpu or cpu")
}

// Parse builds the configuration for a host. The config file comes from the
// -config flag or EnvConfig; flags in args override its values. register may
// add host specific flags and can be nil.
func Parse(name string, args []string, register func(flags *flag.FlagSet, cfg *Config)) (*Config, *flag.FlagSet, error) {
	cfg := Default()

	path := findConfigPath(args)
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return nil, nil, err
		}
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.String("config", path, "the TOML config file, also read from $"+EnvConfig)
	cfg.RegisterFlags(flags)
	if register != nil {
		register(flags, &cfg)
	}
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, flags, nil
}

// findConfigPath looks for -config ahead of the real parse, since the file
// provides the defaults the other flags override.
func findConfigPath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
