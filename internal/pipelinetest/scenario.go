// Package pipelinetest checks a pipeline.Device against the reference chain.
package pipelinetest

import (
	"image"
	"image/color"
	"testing"

	"pingpong-gl/effects"
	"pingpong-gl/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	Primed = color.RGBA{R: 0xaa, G: 0xcc, B: 0xcc, A: 0xff}
	White  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Uniform asserts that every pixel of img is c.
func Uniform(t testing.TB, img *image.RGBA, c color.RGBA) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !assert.Equal(t, c, img.RGBAAt(x, y), "pixel %d,%d", x, y) {
				return
			}
		}
	}
}

// Framed asserts a 4x4 image with a 2x2 center of inner and a border of outer.
func Framed(t testing.TB, img *image.RGBA, inner, outer color.RGBA) {
	t.Helper()
	require.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := outer
			if x >= 1 && x <= 2 && y >= 1 && y <= 2 {
				want = inner
			}
			if !assert.Equal(t, want, img.RGBAAt(x, y), "pixel %d,%d", x, y) {
				return
			}
		}
	}
}

// RunScenario drives a 4x4 pipeline with the default parameters through two
// ticks and checks every observable image. The device stays owned by the caller.
func RunScenario(t *testing.T, device pipeline.Device) {
	p, err := pipeline.New(device, 4, 4, pipeline.WithParams(effects.DefaultParams()))
	require.NoError(t, err)
	defer p.Release()

	read, err := p.ReadBuffer()
	require.NoError(t, err)
	Uniform(t, read, Primed)

	require.NoError(t, p.Tick())
	shown, err := p.Snapshot()
	require.NoError(t, err)
	Uniform(t, shown, Primed)

	read, err = p.ReadBuffer()
	require.NoError(t, err)
	Framed(t, read, effects.Background, White)

	require.NoError(t, p.Tick())
	shown, err = p.Snapshot()
	require.NoError(t, err)
	Framed(t, shown, effects.Background, White)
	assert.Equal(t, uint64(2), p.Frame())
}

// RunEffects renders every effect once on a 4x4 pattern and compares the
// result with the software reference. Sample positions avoid texel edges.
func RunEffects(t *testing.T, device pipeline.Device) {
	ref := pipeline.NewSoftwareDevice()
	cases := []effects.Effect{
		effects.Color(color.RGBA{R: 0x12, G: 0x34, B: 0x56}),
		effects.Invert(),
		effects.Mirror(),
		effects.Transform(effects.Params{ScaleX: 0.8, ScaleY: 0.8}),
		effects.Transform(effects.Params{XOffset: 0.5, ScaleX: 1, ScaleY: 1}),
		effects.Transform(effects.Params{ScaleX: 0, ScaleY: 1}),
		effects.Display(),
	}

	for _, e := range cases {
		t.Run(e.String(), func(t *testing.T) {
			want := renderPattern(t, ref, e)
			got := renderPattern(t, device, e)
			assert.Equal(t, want.Pix, got.Pix)
		})
	}
}

func renderPattern(t *testing.T, device pipeline.Device, e effects.Effect) *image.RGBA {
	t.Helper()
	src, err := device.NewTarget(4, 4, "src")
	require.NoError(t, err)
	defer device.ReleaseTarget(src)
	dst, err := device.NewTarget(4, 4, "dst")
	require.NoError(t, err)
	defer device.ReleaseTarget(dst)

	// a colored block over the first three columns of the middle rows
	require.NoError(t, device.Render(dst, nil, effects.Color(color.RGBA{R: 0x20, G: 0x80, B: 0xe0})))
	require.NoError(t, device.Render(src, dst, effects.Transform(effects.Params{XOffset: -0.5, ScaleX: 1, ScaleY: 0.5})))

	var in pipeline.Target = src
	if !e.Kind.NeedsSource() {
		in = nil
	}
	require.NoError(t, device.Render(dst, in, e))
	img, err := device.Read(dst)
	require.NoError(t, err)
	return img
}
