package libgl

import (
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId     uint32
	size     int
	growable bool
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	// Size is the allocated storage in bytes.
	Size() int
	// Upload writes size bytes of data to the start of the buffer. Stream
	// buffers grow as needed, which discards their previous contents.
	Upload(data any, size int)
	Bind(target uint32) BoundBuffer
	Delete()
}

type BoundBuffer interface {
	UnboundBuffer
}

// NewStaticBuffer creates immutable storage holding a copy of data, a numeric slice.
func NewStaticBuffer(data any) UnboundBuffer {
	size := byteSize(data)
	if size <= 0 {
		log.Panicf("static buffer needs a non-empty slice, got %T", data)
	}
	var id uint32
	gl.CreateBuffers(1, &id)
	gl.NamedBufferStorage(id, size, Pointer(data), 0)
	return &buffer{glId: id, size: size}
}

// NewStreamBuffer creates mutable storage of capacity bytes for data that is
// replaced every frame.
func NewStreamBuffer(capacity int) UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	gl.NamedBufferData(id, capacity, nil, gl.STREAM_DRAW)
	return &buffer{glId: id, size: capacity, growable: true}
}

func (b *buffer) Id() uint32 {
	return b.glId
}

func (b *buffer) Size() int {
	return b.size
}

func (b *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, b.glId, label)
}

func (b *buffer) Bind(target uint32) BoundBuffer {
	State.BindBuffer(target, b.glId)
	return BoundBuffer(b)
}

func (b *buffer) Upload(data any, size int) {
	if size <= 0 {
		return
	}
	if size > b.size {
		if !b.growable {
			log.Panicf("buffer %d holds %d bytes, cannot upload %d", b.glId, b.size, size)
		}
		b.size = max(size, 2*b.size)
		gl.NamedBufferData(b.glId, b.size, nil, gl.STREAM_DRAW)
	}
	gl.NamedBufferSubData(b.glId, 0, size, Pointer(data))
}

func (b *buffer) Delete() {
	State.forgetBuffer(b.glId)
	gl.DeleteBuffers(1, &b.glId)
	b.glId = 0
}
