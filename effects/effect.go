// Package effects defines the full-screen image effects of the ping-pong chain
// and their per-pixel semantics for each rendering backend.
package effects

import (
	"fmt"
	"image/color"
)

type Kind uint8

const (
	KindColor Kind = iota
	KindInvert
	KindMirror
	KindTransform
	KindDisplay
)

var kindNames = [...]string{
	KindColor:     "color",
	KindInvert:    "invert",
	KindMirror:    "mirror",
	KindTransform: "transform",
	KindDisplay:   "display",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// NeedsSource reports whether the effect samples an input image.
func (k Kind) NeedsSource() bool {
	return k != KindColor
}

// Background is the color the chain is primed with.
var Background = color.RGBA{R: 0x55, G: 0x33, B: 0x33, A: 0xff}

// ClearColor fills pixels not covered by the transformed quad.
var ClearColor = color.RGBA{A: 0xff}

// Effect is one evaluation of a full-screen effect. Only the fields relevant
// to Kind are meaningful: Fill for KindColor, Params for KindTransform.
// The source image is bound at dispatch and is not part of the value.
type Effect struct {
	Kind   Kind
	Fill   color.RGBA
	Params Params
}

func Color(c color.RGBA) Effect {
	c.A = 0xff
	return Effect{Kind: KindColor, Fill: c}
}

func Invert() Effect {
	return Effect{Kind: KindInvert}
}

func Mirror() Effect {
	return Effect{Kind: KindMirror}
}

func Transform(p Params) Effect {
	return Effect{Kind: KindTransform, Params: p}
}

func Display() Effect {
	return Effect{Kind: KindDisplay}
}

func (e Effect) String() string {
	switch e.Kind {
	case KindColor:
		return fmt.Sprintf("color(#%02x%02x%02x)", e.Fill.R, e.Fill.G, e.Fill.B)
	case KindTransform:
		return fmt.Sprintf("transform(%v)", e.Params)
	}
	return e.Kind.String()
}
