package libgl

import "github.com/go-gl/gl/v4.5-core/gl"

type vertexArray struct {
	glId uint32
}

type UnboundVertexArray interface {
	LabeledGlObject
	Id() uint32
	// Attribute reads components values of dataType at offset within each
	// vertex of binding into the shader input at location.
	Attribute(location, binding, components int, dataType uint32, normalized bool, offset int)
	VertexBuffer(binding int, vbo UnboundBuffer, stride int)
	ElementBuffer(ebo UnboundBuffer)
	Bind() BoundVertexArray
	Delete()
}

type BoundVertexArray interface {
	UnboundVertexArray
}

func NewVertexArray() UnboundVertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return &vertexArray{glId: id}
}

func (vao *vertexArray) Id() uint32 {
	return vao.glId
}

func (vao *vertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

func (vao *vertexArray) Attribute(location, binding, components int, dataType uint32, normalized bool, offset int) {
	gl.EnableVertexArrayAttrib(vao.glId, uint32(location))
	gl.VertexArrayAttribFormat(vao.glId, uint32(location), int32(components), dataType, normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, uint32(location), uint32(binding))
}

func (vao *vertexArray) VertexBuffer(binding int, vbo UnboundBuffer, stride int) {
	gl.VertexArrayVertexBuffer(vao.glId, uint32(binding), vbo.Id(), 0, int32(stride))
}

func (vao *vertexArray) ElementBuffer(ebo UnboundBuffer) {
	gl.VertexArrayElementBuffer(vao.glId, ebo.Id())
}

func (vao *vertexArray) Bind() BoundVertexArray {
	State.BindVertexArray(vao.glId)
	return BoundVertexArray(vao)
}

func (vao *vertexArray) Delete() {
	if State.VertexArray == vao.glId {
		State.VertexArray = 0
	}
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
