package effects

import (
	_ "embed"
	"fmt"
)

//go:embed shaders/quad.vert
var quadVertSrc string

//go:embed shaders/transform.vert
var transformVertSrc string

//go:embed shaders/color.frag
var colorFragSrc string

//go:embed shaders/invert.frag
var invertFragSrc string

//go:embed shaders/mirror.frag
var mirrorFragSrc string

//go:embed shaders/display.frag
var displayFragSrc string

//go:embed kernels/effects.cl
var OpenCLSource string

// Kinds lists every effect kind in declaration order.
var Kinds = []Kind{KindColor, KindInvert, KindMirror, KindTransform, KindDisplay}

// GLSLSources returns the vertex and fragment shader of a kind. Both are
// separable programs sharing the io_uv varying at location 0.
func GLSLSources(k Kind) (vert, frag string, err error) {
	switch k {
	case KindColor:
		return quadVertSrc, colorFragSrc, nil
	case KindInvert:
		return quadVertSrc, invertFragSrc, nil
	case KindMirror:
		return quadVertSrc, mirrorFragSrc, nil
	case KindTransform:
		return transformVertSrc, displayFragSrc, nil
	case KindDisplay:
		return quadVertSrc, displayFragSrc, nil
	}
	return "", "", fmt.Errorf("no shaders for effect kind %v", k)
}

// KernelName returns the OpenCL kernel in OpenCLSource implementing a kind.
func KernelName(k Kind) (string, error) {
	switch k {
	case KindColor:
		return "fill_color", nil
	case KindInvert:
		return "invert", nil
	case KindMirror:
		return "mirror", nil
	case KindTransform:
		return "transform", nil
	case KindDisplay:
		return "display", nil
	}
	return "", fmt.Errorf("no kernel for effect kind %v", k)
}
