// Package opencl renders the ping-pong chain with OpenCL kernels on float RGBA images.
package opencl

import (
	"fmt"
	"image"
	"unsafe"

	"pingpong-gl/effects"
	"pingpong-gl/libio"
	"pingpong-gl/pipeline"

	"github.com/Qendolin/go-opencl/cl"
	"golang.org/x/exp/slices"
)

type DeviceType = cl.DeviceType

const (
	DeviceTypeCPU         = DeviceType(cl.DeviceTypeCPU)
	DeviceTypeGPU         = DeviceType(cl.DeviceTypeGPU)
	DeviceTypeAccelerator = DeviceType(cl.DeviceTypeAccelerator)
)

var imageFormat = cl.ImageFormat{
	ChannelOrder:    cl.ChannelOrderRGBA,
	ChannelDataType: cl.ChannelDataTypeFloat,
}

// Target is a read-write 2D image. Row 0 is the top of the picture.
type Target struct {
	label  string
	image  *cl.MemObject
	width  int
	height int
}

func (t *Target) Size() (width, height int) {
	return t.width, t.height
}

func (t *Target) String() string {
	return t.label
}

type Device struct {
	name    string
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernels map[effects.Kind]*cl.Kernel
}

// NewDevice picks the strongest device, preferring the given type, and builds the effect kernels.
func NewDevice(preferred DeviceType) (dev *Device, err error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, err
	}

	var devices []*cl.Device
	for _, p := range platforms {
		devs, err := p.GetDevices(cl.DeviceTypeAll)
		if err != nil {
			continue
		}
		devices = append(devices, devs...)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no opencl devices found")
	}

	slices.SortFunc(devices, func(a, b *cl.Device) int {
		if a.Type() == preferred && b.Type() != preferred {
			return -1
		}
		if a.Type() != preferred && b.Type() == preferred {
			return 1
		}

		aPower := a.MaxComputeUnits() * a.MaxClockFrequency()
		bPower := b.MaxComputeUnits() * b.MaxClockFrequency()

		return bPower - aPower
	})

	device := devices[0]

	dev = &Device{
		name:    device.Name(),
		kernels: map[effects.Kind]*cl.Kernel{},
	}
	defer func() {
		if err != nil {
			dev.Release()
		}
	}()

	dev.context, err = cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, err
	}

	dev.queue, err = dev.context.CreateCommandQueue(device, 0)
	if err != nil {
		return nil, err
	}

	dev.program, err = dev.context.CreateProgramWithSource([]string{effects.OpenCLSource})
	if err != nil {
		return nil, err
	}
	err = dev.program.BuildProgram(nil, "")
	if err != nil {
		return nil, fmt.Errorf("could not build effect kernels: %w", err)
	}

	for _, kind := range effects.Kinds {
		name, err := effects.KernelName(kind)
		if err != nil {
			return nil, err
		}
		kernel, err := dev.program.CreateKernel(name)
		if err != nil {
			return nil, fmt.Errorf("%v kernel: %w", kind, err)
		}
		dev.kernels[kind] = kernel
	}

	pipeline.Logger().Info("opencl device ready", "device", dev.name)

	return dev, nil
}

func (dev *Device) Name() string {
	return "opencl (" + dev.name + ")"
}

func (dev *Device) NewTarget(width, height int, label string) (pipeline.Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, pipeline.ErrInvalidDimensions)
	}
	img, err := dev.context.CreateImage(cl.MemReadWrite, imageFormat, cl.ImageDescription{
		Type:   cl.MemObjectTypeImage2D,
		Width:  width,
		Height: height,
	}, width*height*4*4, nil)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", label, err)
	}
	return &Target{
		label:  label,
		image:  img,
		width:  width,
		height: height,
	}, nil
}

func (dev *Device) Render(dst, src pipeline.Target, e effects.Effect) error {
	d, err := dev.target(dst)
	if err != nil {
		return err
	}
	kernel, ok := dev.kernels[e.Kind]
	if !ok {
		return fmt.Errorf("unknown effect kind %v", e.Kind)
	}

	// argument layout: [src,] dst, w, h, effect specific...
	arg := 0
	if e.Kind.NeedsSource() {
		s, err := dev.target(src)
		if err != nil {
			return err
		}
		if err := kernel.SetArgBuffer(arg, s.image); err != nil {
			return err
		}
		arg++
	}
	args := []any{d.image, int32(d.width), int32(d.height)}

	switch e.Kind {
	case effects.KindColor:
		args = append(args,
			float32(e.Fill.R)/0xff,
			float32(e.Fill.G)/0xff,
			float32(e.Fill.B)/0xff)
	case effects.KindTransform:
		inv, ok := e.Params.Inverse()
		degenerate := int32(0)
		if !ok {
			degenerate = 1
		}
		args = append(args,
			inv.M[0], inv.M[1], inv.M[2], inv.M[3],
			inv.O[0], inv.O[1],
			degenerate)
	}

	for _, v := range args {
		if err := setArg(kernel, arg, v); err != nil {
			return fmt.Errorf("%v kernel argument %d: %w", e.Kind, arg, err)
		}
		arg++
	}

	localWorkSize := []int{8, 8, 1}
	globalWorkSize := []int{roundUpKernelSize(localWorkSize[0], d.width), roundUpKernelSize(localWorkSize[1], d.height), 1}

	_, err = dev.queue.EnqueueNDRangeKernel(kernel, []int{0, 0, 0}, globalWorkSize, localWorkSize, nil)
	return err
}

func setArg(kernel *cl.Kernel, index int, value any) error {
	switch v := value.(type) {
	case *cl.MemObject:
		return kernel.SetArgBuffer(index, v)
	case int32:
		return kernel.SetArgInt32(index, v)
	case float32:
		return kernel.SetArgFloat32(index, v)
	}
	return fmt.Errorf("unsupported kernel argument type %T", value)
}

// Read blocks until all queued passes have finished.
func (dev *Device) Read(t pipeline.Target) (*image.RGBA, error) {
	ct, err := dev.target(t)
	if err != nil {
		return nil, err
	}
	result := libio.NewFloatImage(ct.width, ct.height)
	_, err = dev.queue.EnqueueReadImage(ct.image, true, [3]int{}, [3]int{ct.width, ct.height, 1}, 0, 0, unsafe.Pointer(&result.Pix[0]), nil)
	if err != nil {
		return nil, err
	}
	return result.ToRGBA(), nil
}

func (dev *Device) ReleaseTarget(t pipeline.Target) {
	ct, ok := t.(*Target)
	if !ok || ct.image == nil {
		return
	}
	ct.image.Release()
	ct.image = nil
}

func (dev *Device) Release() {
	for kind, k := range dev.kernels {
		k.Release()
		delete(dev.kernels, kind)
	}
	if dev.program != nil {
		dev.program.Release()
		dev.program = nil
	}
	if dev.queue != nil {
		dev.queue.Release()
		dev.queue = nil
	}
	if dev.context != nil {
		dev.context.Release()
		dev.context = nil
	}
}

func (*Device) target(t pipeline.Target) (*Target, error) {
	ct, ok := t.(*Target)
	if !ok || ct.image == nil {
		return nil, fmt.Errorf("%T: %w", t, pipeline.ErrForeignTarget)
	}
	return ct, nil
}

func roundUpKernelSize(groupSize, globalSize int) int {
	r := globalSize % groupSize
	if r == 0 {
		return globalSize
	}
	return globalSize + groupSize - r
}
