package pipeline

import (
	"image"

	"pingpong-gl/effects"
)

// Target is an image owned by a Device. Targets are only valid with the
// device that created them.
type Target interface {
	Size() (width, height int)
}

// Device executes effects on backend images.
type Device interface {
	Name() string
	NewTarget(width, height int, label string) (Target, error)
	// Render evaluates e into dst. src is nil for effects that take no input.
	Render(dst, src Target, e effects.Effect) error
	// Read copies the contents of t into a new image, rows top-down.
	Read(t Target) (*image.RGBA, error)
	ReleaseTarget(t Target)
	Release()
}
