// Package pipeline runs the ping-pong post-processing chain: a fixed schedule
// of full-screen effects over two alternating images, presented to a surface.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"pingpong-gl/effects"
)

type State uint8

const (
	StateInitializing State = iota
	StateRunning
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateReleased:
		return "released"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

type options struct {
	params     *effects.ParamStore
	background color.RGBA
}

type Option func(o *options)

// WithParams sets the initial transform parameters.
func WithParams(p effects.Params) Option {
	return func(o *options) {
		o.params = effects.NewParamStore(p)
	}
}

// WithParamStore shares an existing store, for hosts that publish parameters
// before the pipeline exists.
func WithParamStore(s *effects.ParamStore) Option {
	return func(o *options) {
		o.params = s
	}
}

// WithBackground sets the color the pair is primed with.
func WithBackground(c color.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

type Pipeline struct {
	device  Device
	params  *effects.ParamStore
	pair    *BufferPair
	surface Target
	exec    Executor
	width   int
	height  int
	state   State
	frame   uint64
}

// New allocates the images for a width×height viewport and primes them.
// Tick must not be called concurrently with Resize or Release.
func New(device Device, width, height int, opts ...Option) (*Pipeline, error) {
	o := options{background: effects.Background}
	for _, opt := range opts {
		opt(&o)
	}
	if o.params == nil {
		o.params = effects.NewParamStore(effects.DefaultParams())
	}

	p := &Pipeline{
		device: device,
		params: o.params,
		state:  StateInitializing,
	}
	p.exec.Device = device
	p.exec.Params = o.params
	p.exec.Background = o.background

	if err := p.allocate(width, height); err != nil {
		return nil, err
	}
	Logger().Info("pipeline created", "device", device.Name(), "width", width, "height", height)

	if err := p.initialize(); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// allocate replaces the pair and surface with new width×height images. The
// old images are released only once every new one exists.
func (p *Pipeline) allocate(width, height int) (err error) {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}

	var created []Target
	defer func() {
		if err != nil {
			for i := len(created) - 1; i >= 0; i-- {
				p.device.ReleaseTarget(created[i])
			}
		}
	}()

	for _, label := range []string{"ping", "pong", "surface"} {
		t, err := p.device.NewTarget(width, height, label)
		if err != nil {
			return fmt.Errorf("could not allocate %v image: %w", label, err)
		}
		created = append(created, t)
		Logger().Debug("allocated image", "label", label, "width", width, "height", height)
	}

	pair, err := NewBufferPair(created[0], created[1])
	if err != nil {
		return err
	}

	if p.pair != nil {
		p.pair.release(p.device)
	}
	if p.surface != nil {
		p.device.ReleaseTarget(p.surface)
	}

	p.pair = pair
	p.surface = created[2]
	p.width, p.height = width, height
	p.exec.Pair = pair
	p.exec.Surface = p.surface
	p.exec.Width, p.exec.Height = width, height
	return nil
}

func (p *Pipeline) initialize() error {
	p.state = StateInitializing
	if err := p.exec.Run(InitSchedule); err != nil {
		return fmt.Errorf("could not initialize: %w", err)
	}
	p.state = StateRunning
	return nil
}

// Tick displays the current read image and then computes the next one.
// The surface therefore always lags one tick behind the processing.
// A failed pass drops the frame and is returned; the read image is then the
// one the tick started from.
func (p *Pipeline) Tick() error {
	switch p.state {
	case StateReleased:
		return ErrReleased
	case StateInitializing:
		if err := p.initialize(); err != nil {
			return err
		}
	}

	// FrameSchedule starts with the display pass. Once it has run the
	// surface holds a copy of the tick's input.
	if err := p.exec.Execute(FrameSchedule[0]); err != nil {
		Logger().Warn("frame dropped", "frame", p.frame, "err", err)
		return err
	}
	start := p.pair.Read()
	if err := p.exec.Run(FrameSchedule[1:]); err != nil {
		if rerr := p.rollback(start); rerr != nil {
			Logger().Error("could not restore frame, reinitializing", "frame", p.frame, "err", rerr)
			p.state = StateInitializing
			err = errors.Join(err, rerr)
		}
		Logger().Warn("frame dropped", "frame", p.frame, "err", err)
		return err
	}
	p.frame++
	return nil
}

// rollback undoes a partially executed frame. Later passes may have written
// into start, so its contents are copied back from the surface.
func (p *Pipeline) rollback(start Target) error {
	if p.pair.Read() != start {
		p.pair.Swap()
	}
	if err := p.device.Render(start, p.surface, effects.Display()); err != nil {
		return fmt.Errorf("restore read image: %w", err)
	}
	return nil
}

// Resize recreates all images for the new viewport and primes them again.
// Previous contents are discarded, even when the size is unchanged. On
// ErrInvalidDimensions the current images stay untouched.
func (p *Pipeline) Resize(width, height int) error {
	if p.state == StateReleased {
		return ErrReleased
	}
	if err := p.allocate(width, height); err != nil {
		return err
	}
	Logger().Info("pipeline resized", "width", width, "height", height)
	return p.initialize()
}

func (p *Pipeline) DisplaySurface() Target {
	return p.surface
}

// Params returns the store hosts publish transform parameters to.
func (p *Pipeline) Params() *effects.ParamStore {
	return p.params
}

func (p *Pipeline) Device() Device {
	return p.device
}

func (p *Pipeline) State() State {
	return p.state
}

// Frame returns the number of completed ticks.
func (p *Pipeline) Frame() uint64 {
	return p.frame
}

func (p *Pipeline) Size() (width, height int) {
	return p.width, p.height
}

// Snapshot reads back the display surface.
func (p *Pipeline) Snapshot() (*image.RGBA, error) {
	if p.state == StateReleased {
		return nil, ErrReleased
	}
	return p.device.Read(p.surface)
}

// ReadBuffer reads back the current read image, the input of the next tick.
func (p *Pipeline) ReadBuffer() (*image.RGBA, error) {
	if p.state == StateReleased {
		return nil, ErrReleased
	}
	return p.device.Read(p.pair.Read())
}

// Release frees the images. The device stays owned by the caller.
func (p *Pipeline) Release() {
	if p.state == StateReleased {
		return
	}
	if p.pair != nil {
		p.pair.release(p.device)
		p.pair = nil
	}
	if p.surface != nil {
		p.device.ReleaseTarget(p.surface)
		p.surface = nil
	}
	p.exec.Pair, p.exec.Surface = nil, nil
	p.state = StateReleased
}
