package config

import (
	"fmt"
	"strings"
)

type Backend string

const (
	BackendOpenGL   Backend = "opengl"
	BackendSoftware Backend = "software"
	BackendOpenCL   Backend = "opencl"
)

func (b *Backend) String() string {
	return string(*b)
}

func (b *Backend) Set(s string) error {
	switch Backend(strings.ToLower(s)) {
	case BackendOpenGL:
		*b = BackendOpenGL
	case BackendSoftware:
		*b = BackendSoftware
	case BackendOpenCL:
		*b = BackendOpenCL
	default:
		return fmt.Errorf("%s is not a valid backend; opengl, software or opencl", s)
	}
	return nil
}

func (b *Backend) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}

func (b Backend) MarshalText() ([]byte, error) {
	return []byte(b), nil
}

// DeviceType selects which OpenCL device type is preferred.
type DeviceType string

const (
	DeviceGPU DeviceType = "gpu"
	DeviceCPU DeviceType = "cpu"
)

func (d *DeviceType) String() string {
	return string(*d)
}

func (d *DeviceType) Set(s string) error {
	switch DeviceType(strings.ToLower(s)) {
	case DeviceGPU:
		*d = DeviceGPU
	case DeviceCPU:
		*d = DeviceCPU
	default:
		return fmt.Errorf("%s is not a valid device type; gpu or cpu", s)
	}
	return nil
}

func (d *DeviceType) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

func (d DeviceType) MarshalText() ([]byte, error) {
	return []byte(d), nil
}
