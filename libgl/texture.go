package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type texture struct {
	glId   uint32
	width  int32
	height int32
}

type UnboundTexture interface {
	LabeledGlObject
	Id() uint32
	Width() int
	Height() int
	Bind(unit int) BoundTexture
	Allocate(levels int, internalFormat uint32, width, height int)
	Load(level int, width, height int, format uint32, data any)
	// Read copies the texels of level into data, which must be large enough for
	// width*height texels of the given format and type.
	Read(level int, format, xtype uint32, data []byte)
	Delete()
}

type BoundTexture interface {
	UnboundTexture
}

// NewTexture creates an unallocated 2D texture.
func NewTexture() UnboundTexture {
	var id uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &id)
	return &texture{
		glId: id,
	}
}

func (tex *texture) Id() uint32 {
	return tex.glId
}

func (tex *texture) Width() int {
	return int(tex.width)
}

func (tex *texture) Height() int {
	return int(tex.height)
}

func (tex *texture) SetDebugLabel(label string) {
	setObjectLabel(gl.TEXTURE, tex.glId, label)
}

func (tex *texture) Bind(unit int) BoundTexture {
	State.BindTextureUnit(unit, tex.glId)
	return BoundTexture(tex)
}

func (tex *texture) Delete() {
	for unit, id := range State.TextureUnits {
		if id == tex.glId {
			State.TextureUnits[unit] = 0
		}
	}
	gl.DeleteTextures(1, &tex.glId)
	tex.glId = 0
}

func (tex *texture) Allocate(levels int, internalFormat uint32, width, height int) {
	if levels == 0 {
		levels = 1
	}
	tex.width = int32(width)
	tex.height = int32(height)
	gl.TextureStorage2D(tex.glId, int32(levels), internalFormat, int32(width), int32(height))
}

func (tex *texture) Load(level int, width, height int, format uint32, data any) {
	dataType := getGlType(data)
	gl.TextureSubImage2D(tex.glId, int32(level), 0, 0, int32(width), int32(height), format, dataType, Pointer(data))
}

func (tex *texture) Read(level int, format, xtype uint32, data []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTextureImage(tex.glId, int32(level), format, xtype, int32(len(data)), Pointer(data))
}

func getGlType(data any) uint32 {
	switch data.(type) {
	case []byte, *byte:
		return gl.UNSIGNED_BYTE
	case []uint16, *uint16:
		return gl.UNSIGNED_SHORT
	case []float32, *float32:
		return gl.FLOAT
	}
	panic(fmt.Sprintf("invalid texel type: %T", data))
}

type sampler struct {
	glId uint32
}

type UnboundSampler interface {
	LabeledGlObject
	Id() uint32
	Bind(unit int) BoundSampler
	FilterMode(min, mag int32)
	WrapMode(s, t int32)
	Delete()
}

type BoundSampler interface {
	UnboundSampler
}

func NewSampler() UnboundSampler {
	var id uint32
	gl.CreateSamplers(1, &id)
	return &sampler{
		glId: id,
	}
}

func (s *sampler) Id() uint32 {
	return s.glId
}

func (s *sampler) SetDebugLabel(label string) {
	setObjectLabel(gl.SAMPLER, s.glId, label)
}

func (s *sampler) Bind(unit int) BoundSampler {
	State.BindSampler(unit, s.glId)
	return BoundSampler(s)
}

func (s *sampler) FilterMode(min, mag int32) {
	if min != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MIN_FILTER, min)
	}
	if mag != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MAG_FILTER, mag)
	}
}

func (sampler *sampler) WrapMode(s, t int32) {
	if s != 0 {
		gl.SamplerParameteri(sampler.glId, gl.TEXTURE_WRAP_S, s)
	}
	if t != 0 {
		gl.SamplerParameteri(sampler.glId, gl.TEXTURE_WRAP_T, t)
	}
}

func (s *sampler) Delete() {
	for unit, id := range State.SamplerUnits {
		if id == s.glId {
			State.SamplerUnits[unit] = 0
		}
	}
	gl.DeleteSamplers(1, &s.glId)
	s.glId = 0
}
