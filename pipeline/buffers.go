package pipeline

import "fmt"

// BufferPair holds the two ping-pong images. One is read by the next pass,
// the other is written by it; Swap exchanges the roles without touching pixels.
type BufferPair struct {
	read, write Target
}

func NewBufferPair(read, write Target) (*BufferPair, error) {
	if read == nil || write == nil {
		return nil, fmt.Errorf("buffer pair needs two targets")
	}
	if read == write {
		return nil, fmt.Errorf("buffer pair needs two distinct targets")
	}
	rw, rh := read.Size()
	ww, wh := write.Size()
	if rw != ww || rh != wh {
		return nil, fmt.Errorf("buffer pair targets are %dx%d and %dx%d: %w", rw, rh, ww, wh, ErrDimensionMismatch)
	}
	return &BufferPair{read: read, write: write}, nil
}

func (p *BufferPair) Read() Target {
	return p.read
}

func (p *BufferPair) Write() Target {
	return p.write
}

func (p *BufferPair) Swap() {
	p.read, p.write = p.write, p.read
}

func (p *BufferPair) Size() (width, height int) {
	return p.read.Size()
}

func (p *BufferPair) release(device Device) {
	device.ReleaseTarget(p.write)
	device.ReleaseTarget(p.read)
	p.read, p.write = nil, nil
}
