package config_test

import (
	"flag"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"pingpong-gl/config"
	"pingpong-gl/effects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pingpong.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.BackendOpenGL, cfg.Backend)
	assert.Equal(t, effects.DefaultParams(), cfg.Pipeline.Params)

	bg, err := cfg.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, effects.Background, bg)
}

func TestParseColor(t *testing.T) {
	c, err := config.ParseColor("#553333")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x55, G: 0x33, B: 0x33, A: 0xff}, c)

	c, err = config.ParseColor(" AABBCC ")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, c)

	for _, s := range []string{"", "#fff", "#12345g", "#1234567"} {
		_, err := config.ParseColor(s)
		assert.Error(t, err, "color %q", s)
	}
	assert.Equal(t, "#0a0b0c", config.FormatColor(color.RGBA{R: 10, G: 11, B: 12}))
}

func TestBackendFlag(t *testing.T) {
	var b config.Backend
	require.NoError(t, b.Set("OpenCL"))
	assert.Equal(t, config.BackendOpenCL, b)
	assert.Error(t, b.Set("vulkan"))

	var d config.DeviceType
	require.NoError(t, d.Set("cpu"))
	assert.Equal(t, config.DeviceCPU, d)
	assert.Error(t, d.Set("fpga"))
}

func TestParseFlags(t *testing.T) {
	cfg, flags, err := config.Parse("test", []string{
		"-backend", "software", "-width", "64", "-height", "32",
		"-scale-x", "0.25", "-angle", "1.5", "-background", "#102030",
		"-capture", "out.ppcap", "-capture-compression", "none", "-v",
		"rest",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, config.BackendSoftware, cfg.Backend)
	assert.Equal(t, 64, cfg.Window.Width)
	assert.Equal(t, 32, cfg.Window.Height)
	assert.Equal(t, float32(0.25), cfg.Pipeline.Params.ScaleX)
	assert.Equal(t, float32(0.5), cfg.Pipeline.Params.ScaleY)
	assert.Equal(t, float32(1.5), cfg.Pipeline.Params.Rotation)
	assert.Equal(t, "#102030", cfg.Pipeline.Background)
	assert.Equal(t, "out.ppcap", cfg.Capture.Path)
	assert.Equal(t, "none", cfg.Capture.Compression)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"rest"}, flags.Args())
}

const fileConfig = `
backend = "opencl"

[window]
width = 320
height = 200

[pipeline]
background = "#ffffff"

[pipeline.params]
x_offset = 0.5
scale_x = 1.0
scale_y = 1.0

[opencl]
prefer = "cpu"
`

func TestParseFile(t *testing.T) {
	path := writeConfig(t, fileConfig)

	cfg, _, err := config.Parse("test", []string{"-config", path, "-height", "100"}, nil)
	require.NoError(t, err)

	assert.Equal(t, config.BackendOpenCL, cfg.Backend)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 100, cfg.Window.Height)
	// keys missing from the file keep their default
	assert.Equal(t, "Ping-Pong", cfg.Window.Title)
	assert.Equal(t, effects.Params{XOffset: 0.5, ScaleX: 1, ScaleY: 1}, cfg.Pipeline.Params)
	assert.Equal(t, config.DeviceCPU, cfg.OpenCL.Prefer)
}

func TestParseFileFromEnv(t *testing.T) {
	path := writeConfig(t, "[window]\nwidth = 111\n")
	t.Setenv(config.EnvConfig, path)

	cfg, _, err := config.Parse("test", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 111, cfg.Window.Width)

	cfg, _, err = config.Parse("test", []string{"-config=" + writeConfig(t, "[window]\nwidth = 222\n")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 222, cfg.Window.Width)
}

func TestParseFileErrors(t *testing.T) {
	_, _, err := config.Parse("test", []string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, nil)
	assert.Error(t, err)

	_, _, err = config.Parse("test", []string{"-config", writeConfig(t, "[window]\ndepth = 3\n")}, nil)
	assert.Error(t, err)

	_, _, err = config.Parse("test", []string{"-config", writeConfig(t, "backend = \"metal\"\n")}, nil)
	assert.Error(t, err)

	_, _, err = config.Parse("test", []string{"-config", writeConfig(t, "[window\n")}, nil)
	assert.ErrorContains(t, err, "pingpong.toml:")
}

func TestParseValidates(t *testing.T) {
	for _, args := range [][]string{
		{"-width", "0"},
		{"-background", "red"},
		{"-capture-compression", "gzip"},
		{"-capture-level", "12"},
	} {
		_, _, err := config.Parse("test", args, nil)
		assert.Error(t, err, "args %v", args)
	}
}

func TestValidateFramebuffer(t *testing.T) {
	cfg := config.Default()
	cfg.Framebuffer.Frames = -1
	assert.Error(t, cfg.Validate())

	cfg.Framebuffer.Frames = 0
	assert.NoError(t, cfg.Validate())

	cfg.Framebuffer.FPS = 0
	assert.Error(t, cfg.Validate())

	path := writeConfig(t, "[framebuffer]\nframes = -5\n")
	_, _, err := config.Parse("test", []string{"-config=" + path}, nil)
	assert.Error(t, err)
}

func TestParseRegister(t *testing.T) {
	var frames int
	cfg, _, err := config.Parse("test", []string{"-frames", "9", "-fps", "60"}, func(flags *flag.FlagSet, cfg *config.Config) {
		flags.SetOutput(io.Discard)
		flags.IntVar(&frames, "frames", 0, "")
		flags.IntVar(&cfg.Framebuffer.FPS, "fps", cfg.Framebuffer.FPS, "")
	})
	require.NoError(t, err)
	assert.Equal(t, 9, frames)
	assert.Equal(t, 60, cfg.Framebuffer.FPS)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendSoftware
	cfg.Pipeline.Params.Rotation = 0.25

	data, err := config.Encode(cfg)
	require.NoError(t, err)
	path := writeConfig(t, string(data))

	loaded := config.Default()
	require.NoError(t, config.LoadFile(path, &loaded))
	assert.Equal(t, cfg, loaded)
}
