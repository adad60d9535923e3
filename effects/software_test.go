package effects_test

import (
	"image"
	"image/color"
	"testing"

	"pingpong-gl/effects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImage(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// gradient gives every pixel a distinct color.
func gradient(w, h int) *image.RGBA {
	img := newImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: uint8(x*16 + y), A: 0xff})
		}
	}
	return img
}

func render(t *testing.T, src *image.RGBA, e effects.Effect) *image.RGBA {
	t.Helper()
	dst := newImage(src.Rect.Dx(), src.Rect.Dy())
	require.NoError(t, effects.Render(dst, src, e))
	return dst
}

func TestColorFillsOpaque(t *testing.T) {
	dst := newImage(3, 2)
	require.NoError(t, effects.Render(dst, nil, effects.Color(color.RGBA{R: 1, G: 2, B: 3})))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xff}, dst.RGBAAt(x, y))
		}
	}
}

func TestInvertTwiceIsIdentity(t *testing.T) {
	src := gradient(5, 3)
	once := render(t, src, effects.Invert())
	assert.Equal(t, color.RGBA{R: 0xef, G: 0xff, B: 0xef, A: 0xff}, once.RGBAAt(1, 0))
	twice := render(t, once, effects.Invert())
	assert.Equal(t, src.Pix, twice.Pix)
}

func TestInvertBackground(t *testing.T) {
	src := newImage(2, 2)
	fill(src, effects.Background)
	dst := render(t, src, effects.Invert())
	assert.Equal(t, color.RGBA{R: 0xaa, G: 0xcc, B: 0xcc, A: 0xff}, dst.RGBAAt(1, 1))
}

func TestMirrorFoldsRightHalf(t *testing.T) {
	src := gradient(4, 2)
	dst := render(t, src, effects.Mirror())
	for y := 0; y < 2; y++ {
		assert.Equal(t, src.RGBAAt(0, y), dst.RGBAAt(0, y))
		assert.Equal(t, src.RGBAAt(1, y), dst.RGBAAt(1, y))
		assert.Equal(t, src.RGBAAt(1, y), dst.RGBAAt(2, y))
		assert.Equal(t, src.RGBAAt(0, y), dst.RGBAAt(3, y))
	}
}

func TestMirrorOddWidthKeepsCenter(t *testing.T) {
	src := gradient(5, 1)
	dst := render(t, src, effects.Mirror())
	assert.Equal(t, src.RGBAAt(2, 0), dst.RGBAAt(2, 0))
	assert.Equal(t, src.RGBAAt(1, 0), dst.RGBAAt(3, 0))
	assert.Equal(t, src.RGBAAt(0, 0), dst.RGBAAt(4, 0))
}

func TestTransformIdentity(t *testing.T) {
	src := gradient(6, 4)
	dst := render(t, src, effects.Transform(effects.IdentityParams()))
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestTransformHalfScale(t *testing.T) {
	src := newImage(4, 4)
	fill(src, color.RGBA{R: 0xaa, G: 0xcc, B: 0xcc, A: 0xff})
	dst := render(t, src, effects.Transform(effects.DefaultParams()))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x >= 1 && x <= 2 && y >= 1 && y <= 2
			want := effects.ClearColor
			if inside {
				want = src.RGBAAt(x, y)
			}
			assert.Equal(t, want, dst.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestTransformOffsetMovesRight(t *testing.T) {
	src := newImage(4, 4)
	fill(src, color.RGBA{R: 0xff, A: 0xff})
	p := effects.IdentityParams()
	p.XOffset = 1
	dst := render(t, src, effects.Transform(p))
	for y := 0; y < 4; y++ {
		assert.Equal(t, effects.ClearColor, dst.RGBAAt(0, y))
		assert.Equal(t, effects.ClearColor, dst.RGBAAt(1, y))
		assert.Equal(t, src.RGBAAt(2, y), dst.RGBAAt(2, y))
		assert.Equal(t, src.RGBAAt(3, y), dst.RGBAAt(3, y))
	}
}

func TestTransformDegenerateClears(t *testing.T) {
	src := gradient(4, 4)
	for _, p := range []effects.Params{
		{ScaleX: 0, ScaleY: 1},
		{ScaleX: 1, ScaleY: 0},
		{},
	} {
		dst := render(t, src, effects.Transform(p))
		for i := 0; i < len(dst.Pix); i += 4 {
			require.Equal(t, []uint8{0, 0, 0, 0xff}, dst.Pix[i:i+4], "params %v", p)
		}
	}
}

func TestTransformTinyScaleCoversNothing(t *testing.T) {
	src := gradient(4, 4)
	dst := render(t, src, effects.Transform(effects.Params{ScaleX: 1e-11, ScaleY: 1e-11}))
	for i := 0; i < len(dst.Pix); i += 4 {
		require.Equal(t, []uint8{0, 0, 0, 0xff}, dst.Pix[i:i+4], "pixel %d", i/4)
	}
}

func TestDisplayCopies(t *testing.T) {
	src := gradient(3, 3)
	dst := render(t, src, effects.Display())
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestRenderNeedsSource(t *testing.T) {
	dst := newImage(2, 2)
	for _, k := range []effects.Kind{effects.KindInvert, effects.KindMirror, effects.KindTransform, effects.KindDisplay} {
		err := effects.Render(dst, nil, effects.Effect{Kind: k, Params: effects.IdentityParams()})
		assert.ErrorIs(t, err, effects.ErrSourceRequired, "kind %v", k)
	}
}

func TestRenderRejectsSizeMismatch(t *testing.T) {
	err := effects.Render(newImage(2, 2), newImage(3, 2), effects.Invert())
	assert.Error(t, err)
}

func TestRenderSubImage(t *testing.T) {
	big := gradient(8, 8)
	src := big.SubImage(image.Rect(2, 2, 6, 6)).(*image.RGBA)
	dst := render(t, src, effects.Display())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, big.RGBAAt(x+2, y+2), dst.RGBAAt(x, y))
		}
	}
}
