package pipeline

import (
	"fmt"
	"image"

	"pingpong-gl/effects"
)

// SoftwareTarget is an in-memory RGBA image.
type SoftwareTarget struct {
	label string
	img   *image.RGBA
}

func (t *SoftwareTarget) Size() (width, height int) {
	return t.img.Rect.Dx(), t.img.Rect.Dy()
}

// Image returns the backing image. It is overwritten by later passes.
func (t *SoftwareTarget) Image() *image.RGBA {
	return t.img
}

func (t *SoftwareTarget) String() string {
	return t.label
}

// SoftwareDevice shades every pixel on the CPU. It needs no graphics context.
type SoftwareDevice struct{}

func NewSoftwareDevice() *SoftwareDevice {
	return &SoftwareDevice{}
}

func (*SoftwareDevice) Name() string {
	return "software"
}

func (*SoftwareDevice) NewTarget(width, height int, label string) (Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &SoftwareTarget{
		label: label,
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

func (dev *SoftwareDevice) Render(dst, src Target, e effects.Effect) error {
	d, err := dev.target(dst)
	if err != nil {
		return err
	}
	var srcImg *image.RGBA
	if src != nil {
		s, err := dev.target(src)
		if err != nil {
			return err
		}
		srcImg = s.img
	}
	return effects.Render(d.img, srcImg, e)
}

func (dev *SoftwareDevice) Read(t Target) (*image.RGBA, error) {
	st, err := dev.target(t)
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(st.img.Rect)
	copy(out.Pix, st.img.Pix)
	return out, nil
}

func (*SoftwareDevice) ReleaseTarget(t Target) {
	if st, ok := t.(*SoftwareTarget); ok {
		st.img = nil
	}
}

func (*SoftwareDevice) Release() {}

func (*SoftwareDevice) target(t Target) (*SoftwareTarget, error) {
	st, ok := t.(*SoftwareTarget)
	if !ok || st.img == nil {
		return nil, fmt.Errorf("%T: %w", t, ErrForeignTarget)
	}
	return st, nil
}
