package libgl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type framebuffer struct {
	glId uint32
}

type UnboundFramebuffer interface {
	LabeledGlObject
	Id() uint32
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Bind(target uint32) BoundFramebuffer
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Check(target uint32) error
	// AttachTexture attaches level 0 of texture as color attachment index.
	AttachTexture(index int, texture UnboundTexture)
	BindTargets(attachments ...int)
	// BlitTo copies the color attachment 0 into dst, 0 being the default framebuffer.
	// When flipY is set the rows are copied upside down.
	BlitTo(dst uint32, srcWidth, srcHeight, dstWidth, dstHeight int, flipY bool)
	Delete()
}

type BoundFramebuffer interface {
	UnboundFramebuffer
}

func NewFramebuffer() UnboundFramebuffer {
	var id uint32
	gl.CreateFramebuffers(1, &id)

	return &framebuffer{glId: id}
}

func (fb *framebuffer) Id() uint32 {
	return fb.glId
}

func (fb *framebuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.FRAMEBUFFER, fb.glId, label)
}

// BindTargets routes fragment outputs 0..n-1 to the given color attachments.
func (fb *framebuffer) BindTargets(indices ...int) {
	buffers := make([]uint32, 0, len(indices))
	for _, index := range indices {
		buffers = append(buffers, gl.COLOR_ATTACHMENT0+uint32(index))
	}
	gl.NamedFramebufferDrawBuffers(fb.glId, int32(len(buffers)), unsafe.SliceData(buffers))
}

var framebufferStatusText = map[uint32]string{
	gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:         "an attachment is incomplete",
	gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT: "nothing is attached",
	gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:        "a draw buffer has no attachment",
	gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:        "the read buffer has no attachment",
	gl.FRAMEBUFFER_UNSUPPORTED:                   "the attachment formats are not supported together",
	gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:        "the attachments differ in sample count",
}

func (fb *framebuffer) Check(target uint32) error {
	status := gl.CheckNamedFramebufferStatus(fb.glId, target)
	if status == gl.FRAMEBUFFER_COMPLETE {
		return nil
	}
	if text, ok := framebufferStatusText[status]; ok {
		return fmt.Errorf("framebuffer %d is incomplete: %s (0x%X)", fb.glId, text, status)
	}
	return fmt.Errorf("framebuffer %d has unknown status 0x%X", fb.glId, status)
}

func (fb *framebuffer) Bind(target uint32) BoundFramebuffer {
	State.BindFramebuffer(target, fb.glId)
	return BoundFramebuffer(fb)
}

func (fb *framebuffer) AttachTexture(index int, texture UnboundTexture) {
	gl.NamedFramebufferTexture(fb.glId, uint32(gl.COLOR_ATTACHMENT0+index), texture.Id(), 0)
}

func (fb *framebuffer) BlitTo(dst uint32, srcWidth, srcHeight, dstWidth, dstHeight int, flipY bool) {
	dy0, dy1 := int32(0), int32(dstHeight)
	if flipY {
		dy0, dy1 = dy1, dy0
	}
	gl.BlitNamedFramebuffer(fb.glId, dst,
		0, 0, int32(srcWidth), int32(srcHeight),
		0, dy0, int32(dstWidth), dy1,
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
}

func (fb *framebuffer) Delete() {
	if State.DrawFramebuffer == fb.glId {
		State.DrawFramebuffer = 0
	}
	if State.ReadFramebuffer == fb.glId {
		State.ReadFramebuffer = 0
	}
	gl.DeleteFramebuffers(1, &fb.glId)
	fb.glId = 0
}
