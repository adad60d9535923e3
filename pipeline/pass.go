package pipeline

import (
	"fmt"
	"image/color"

	"pingpong-gl/effects"
)

type Destination uint8

const (
	// ToBuffer renders read into write and swaps the pair afterwards.
	ToBuffer Destination = iota
	// ToSurface renders read into the display surface. The pair is not swapped.
	ToSurface
)

func (d Destination) String() string {
	switch d {
	case ToBuffer:
		return "buffer"
	case ToSurface:
		return "surface"
	}
	return fmt.Sprintf("Destination(%d)", uint8(d))
}

type Pass struct {
	Kind   effects.Kind
	Target Destination
}

func (p Pass) String() string {
	return fmt.Sprintf("%v->%v", p.Kind, p.Target)
}

var (
	// InitSchedule primes the pair with the background color, inverted once.
	InitSchedule = []Pass{
		{Kind: effects.KindColor, Target: ToBuffer},
		{Kind: effects.KindInvert, Target: ToBuffer},
	}
	// FrameSchedule shows the previous frame's result and then produces the next one.
	FrameSchedule = []Pass{
		{Kind: effects.KindDisplay, Target: ToSurface},
		{Kind: effects.KindTransform, Target: ToBuffer},
		{Kind: effects.KindMirror, Target: ToBuffer},
		{Kind: effects.KindInvert, Target: ToBuffer},
	}
)

// Executor runs passes against a buffer pair. After every pass that targets
// the pair, the image just written becomes the read image.
type Executor struct {
	Device     Device
	Pair       *BufferPair
	Surface    Target
	Params     *effects.ParamStore
	Background color.RGBA
	Width      int
	Height     int
}

// Run executes the passes in order and stops at the first failure.
func (ex *Executor) Run(schedule []Pass) error {
	for _, pass := range schedule {
		if err := ex.Execute(pass); err != nil {
			return err
		}
	}
	return nil
}

func (ex *Executor) Execute(pass Pass) error {
	src := ex.Pair.Read()
	var dst Target
	switch pass.Target {
	case ToBuffer:
		dst = ex.Pair.Write()
	case ToSurface:
		dst = ex.Surface
	default:
		return fmt.Errorf("pass %v: unknown destination", pass)
	}
	if dst == nil {
		return fmt.Errorf("pass %v: no destination", pass)
	}

	if err := ex.checkSize(pass, src); err != nil {
		return err
	}
	if err := ex.checkSize(pass, dst); err != nil {
		return err
	}

	effect := ex.effectFor(pass.Kind)
	if !pass.Kind.NeedsSource() {
		src = nil
	}

	Logger().Debug("dispatch pass", "pass", pass.String(), "effect", effect.String())
	if err := ex.Device.Render(dst, src, effect); err != nil {
		return fmt.Errorf("pass %v: %w", pass, err)
	}

	if pass.Target == ToBuffer {
		ex.Pair.Swap()
	}
	return nil
}

func (ex *Executor) checkSize(pass Pass, t Target) error {
	w, h := t.Size()
	if w != ex.Width || h != ex.Height {
		Logger().Error("image does not match viewport", "pass", pass.String(), "width", w, "height", h, "viewportWidth", ex.Width, "viewportHeight", ex.Height)
		return fmt.Errorf("pass %v: image is %dx%d, viewport is %dx%d: %w", pass, w, h, ex.Width, ex.Height, ErrDimensionMismatch)
	}
	return nil
}

// effectFor binds the per-dispatch inputs of a kind. Transform parameters
// are loaded here so that each dispatch sees one consistent snapshot.
func (ex *Executor) effectFor(kind effects.Kind) effects.Effect {
	switch kind {
	case effects.KindColor:
		return effects.Color(ex.Background)
	case effects.KindTransform:
		return effects.Transform(ex.Params.Load())
	}
	return effects.Effect{Kind: kind}
}
