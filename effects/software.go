package effects

import (
	"errors"
	"fmt"
	"image"

	"pingpong-gl/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrSourceRequired = errors.New("effect needs a source image")

// Render evaluates e for every pixel of dst, sampling src where the effect
// reads an input. dst and src must have the same size and must not alias.
//
// Pixel (x,y) of an image.RGBA is treated as the texel whose center sits at
// u = (x+0.5)/w, v = 1-(y+0.5)/h, so row 0 is the top of the picture.
func Render(dst, src *image.RGBA, e Effect) error {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if e.Kind.NeedsSource() {
		if src == nil {
			return fmt.Errorf("%v: %w", e.Kind, ErrSourceRequired)
		}
		if sw, sh := src.Rect.Dx(), src.Rect.Dy(); sw != w || sh != h {
			return fmt.Errorf("%v: source is %dx%d, destination is %dx%d", e.Kind, sw, sh, w, h)
		}
	}

	switch e.Kind {
	case KindColor:
		c := [4]uint8{e.Fill.R, e.Fill.G, e.Fill.B, 0xff}
		forEachPixel(dst, func(x, y int, u, v float32, o int) {
			copy(dst.Pix[o:o+4], c[:])
		})
	case KindInvert:
		forEachPixel(dst, func(x, y int, u, v float32, o int) {
			s := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y)
			dst.Pix[o+0] = 0xff - src.Pix[s+0]
			dst.Pix[o+1] = 0xff - src.Pix[s+1]
			dst.Pix[o+2] = 0xff - src.Pix[s+2]
			dst.Pix[o+3] = 0xff
		})
	case KindMirror:
		forEachPixel(dst, func(x, y int, u, v float32, o int) {
			if u > 0.5 {
				u = 1 - u
			}
			sampleNearest(dst.Pix[o:o+4], src, u, v)
		})
	case KindTransform:
		inv, ok := e.Params.Inverse()
		if !ok {
			return Render(dst, nil, Color(ClearColor))
		}
		clear := [4]uint8{ClearColor.R, ClearColor.G, ClearColor.B, 0xff}
		forEachPixel(dst, func(x, y int, u, v float32, o int) {
			q := inv.Apply(mgl32.Vec2{2*u - 1, 2*v - 1})
			if !insideQuad(q) {
				copy(dst.Pix[o:o+4], clear[:])
				return
			}
			sampleNearest(dst.Pix[o:o+4], src, (q[0]+1)/2, (q[1]+1)/2)
		})
	case KindDisplay:
		forEachPixel(dst, func(x, y int, u, v float32, o int) {
			s := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y)
			copy(dst.Pix[o:o+4], src.Pix[s:s+4])
		})
	default:
		return fmt.Errorf("unknown effect kind %v", e.Kind)
	}
	return nil
}

// insideQuad uses half-open bounds so that adjacent quads never both cover a pixel center.
func insideQuad(q mgl32.Vec2) bool {
	return q[0] >= -1 && q[0] < 1 && q[1] >= -1 && q[1] < 1
}

func forEachPixel(img *image.RGBA, cb func(x, y int, u, v float32, o int)) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	fw, fh := float32(w), float32(h)
	for y := 0; y < h; y++ {
		v := 1 - (float32(y)+0.5)/fh
		o := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			u := (float32(x) + 0.5) / fw
			cb(x, y, u, v, o+x*4)
		}
	}
}

// sampleNearest reads the texel containing (u,v) with clamp-to-edge addressing.
func sampleNearest(out []uint8, src *image.RGBA, u, v float32) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	tx := libutil.ClampI(int(math32.Floor(u*float32(w))), 0, w-1)
	ty := libutil.ClampI(int(math32.Floor((1-v)*float32(h))), 0, h-1)
	s := src.PixOffset(src.Rect.Min.X+tx, src.Rect.Min.Y+ty)
	copy(out, src.Pix[s:s+4])
}
