package libgl

import (
	"github.com/go-gl/gl/v4.5-core/gl"
)

var sharedQuad UnboundVertexArray
var sharedQuadVbo UnboundBuffer

// DrawQuad draws the [-1,1] full-screen quad as a triangle strip.
// Attribute 0 holds the vertex position; shaders derive the uv from it.
func DrawQuad() {
	if sharedQuad == nil {
		sharedQuadVbo = NewStaticBuffer([]float32{-1, -1, 1, -1, -1, 1, 1, 1})
		sharedQuadVbo.SetDebugLabel("fullscreen quad vbo")

		sharedQuad = NewVertexArray()
		sharedQuad.Attribute(0, 0, 2, gl.FLOAT, false, 0)
		sharedQuad.VertexBuffer(0, sharedQuadVbo, 2*4)
		sharedQuad.SetDebugLabel("fullscreen quad")
	}

	sharedQuad.Bind()
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// ReleaseQuad deletes the shared quad. The next DrawQuad recreates it.
func ReleaseQuad() {
	if sharedQuad == nil {
		return
	}
	sharedQuad.Delete()
	sharedQuadVbo.Delete()
	sharedQuad = nil
	sharedQuadVbo = nil
}
