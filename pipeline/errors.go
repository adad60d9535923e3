package pipeline

import "errors"

var (
	// ErrInvalidDimensions is returned when a pipeline is created or resized to a non-positive size.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrDimensionMismatch means a pass was dispatched with images that do not match the viewport.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrReleased is returned by operations on a released pipeline.
	ErrReleased = errors.New("pipeline released")
	// ErrForeignTarget is returned when a device is handed a target created by another device.
	ErrForeignTarget = errors.New("target belongs to another device")
)
