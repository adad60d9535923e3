package libio

import (
	goimg "image"
	"unsafe"

	"github.com/chewxy/math32"
)

// FloatImage holds RGBA texels as float32 in [0,1], four channels per texel,
// rows ordered top to bottom like image.RGBA.
type FloatImage struct {
	Width, Height int
	Pix           []float32
}

func NewFloatImage(width, height int) *FloatImage {
	return &FloatImage{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}
}

// Index calculates the index of the first channel of texel (x,y).
func (img *FloatImage) Index(x, y int) int {
	return (x + y*img.Width) * 4
}

func (img *FloatImage) Pointer() unsafe.Pointer {
	return unsafe.Pointer(&img.Pix[0])
}

func (img *FloatImage) Bytes() int {
	return img.Width * img.Height * 4 * 4
}

func FloatImageFromRGBA(src *goimg.RGBA) *FloatImage {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	img := NewFloatImage(w, h)
	for y := 0; y < h; y++ {
		row := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			for c := 0; c < 4; c++ {
				img.Pix[img.Index(x, y)+c] = float32(src.Pix[row+x*4+c]) / 0xff
			}
		}
	}
	return img
}

// ToRGBA quantizes to 8 bits per channel, rounding to nearest.
func (img *FloatImage) ToRGBA() *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, img.Width, img.Height))
	for i, v := range img.Pix {
		rgba.Pix[i] = Quantize(v)
	}
	return rgba
}

func Quantize(v float32) uint8 {
	v = math32.Min(math32.Max(0.0, v), 1.0)
	return uint8(math32.Floor(v*0xff + 0.5))
}

// FlipRows reverses the row order of pix in place. GL reads back rows bottom-up.
func FlipRows(pix []byte, rowBytes int) {
	rows := len(pix) / rowBytes
	tmp := make([]byte, rowBytes)
	for y := 0; y < rows/2; y++ {
		top := pix[y*rowBytes : (y+1)*rowBytes]
		bottom := pix[(rows-y-1)*rowBytes : (rows-y)*rowBytes]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
