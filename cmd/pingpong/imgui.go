package main

import (
	_ "embed"
	"fmt"

	"pingpong-gl/libgl"
	"pingpong-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

//go:embed shaders/imgui.vert
var imguiVertSrc string

//go:embed shaders/imgui.frag
var imguiFragSrc string

type ImGui struct {
	IO        imgui.IO
	FrameTime float32
	context   *imgui.Context
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     libgl.UnboundTexture
	sampler   libgl.UnboundSampler
	shader    libgl.UnboundShaderPipeline
	owned     []libutil.Deleter
}

func NewImGui(win *glfw.Window) (gui *ImGui, err error) {
	cleanup := []libutil.Deleter{}
	defer func() {
		if err != nil {
			libutil.DeleteAll(cleanup)
		}
	}()

	shader, err := libgl.CompilePipeline("imgui", imguiVertSrc, imguiFragSrc)
	if err != nil {
		return nil, err
	}
	cleanup = append(cleanup, shader)

	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vbo := libgl.NewStreamBuffer(vertexSize * 1024)
	vbo.SetDebugLabel("imgui vertices")
	cleanup = append(cleanup, vbo)
	ebo := libgl.NewStreamBuffer(imgui.IndexBufferLayout() * 1024)
	ebo.SetDebugLabel("imgui indices")
	cleanup = append(cleanup, ebo)

	vao := libgl.NewVertexArray()
	vao.Attribute(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Attribute(1, 0, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Attribute(2, 0, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)
	vao.VertexBuffer(0, vbo, vertexSize)
	vao.ElementBuffer(ebo)
	vao.SetDebugLabel("imgui")
	cleanup = append(cleanup, vao)

	image := io.Fonts().TextureDataRGBA32()
	atlas := libgl.NewTexture()
	atlas.Allocate(1, gl.RGBA8, image.Width, image.Height)
	atlas.Load(0, image.Width, image.Height, gl.RGBA, (*byte)(image.Pixels))
	atlas.SetDebugLabel("imgui font atlas")
	io.Fonts().SetTextureID(imgui.TextureID(atlas.Id()))
	cleanup = append(cleanup, atlas)

	sampler := libgl.NewSampler()
	sampler.FilterMode(gl.LINEAR, gl.LINEAR)
	sampler.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
	cleanup = append(cleanup, sampler)

	win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		io.SetMouseButtonDown(int(button), action == glfw.Press)
	})
	win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
	})

	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for k, v := range keys {
		io.KeyMap(k, int(v))
	}

	return &ImGui{
		IO:        io,
		FrameTime: float32(glfw.GetTime()),
		context:   context,
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		atlas:     atlas,
		sampler:   sampler,
		shader:    shader,
		owned:     cleanup,
	}, nil
}

func (gui *ImGui) NewFrame(win *glfw.Window) {
	dispWidth, dispHeight := win.GetSize()
	gui.IO.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})

	time := float32(glfw.GetTime())
	gui.IO.SetDeltaTime(time - gui.FrameTime)
	gui.FrameTime = time

	imgui.NewFrame()
}

// Draw renders the current frame into the default framebuffer.
func (gui *ImGui) Draw(win *glfw.Window) {
	libgl.PushGroup("Draw ImGui")
	defer libgl.PopGroup()

	dispWidth, dispHeight := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()
	if dispWidth == 0 || dispHeight == 0 {
		imgui.EndFrame()
		return
	}
	libgl.State.BindDrawFramebuffer(0)
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.Vertex().SetUniform("u_proj_mat", ortho)

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	gui.sampler.Bind(0)

	imgui.Render()
	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	var indexType uint32
	indexSize := imgui.IndexBufferLayout()
	switch indexSize {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	default:
		panic(fmt.Sprintf("unsupported imgui index size %d", indexSize))
	}

	for _, list := range drawData.CommandLists() {
		gui.vbo.Upload(list.VertexBuffer())
		gui.ebo.Upload(list.IndexBuffer())

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y <= 0 {
				y = 0
			}
			libgl.State.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}

	libgl.State.SetEnabled()
}

func (gui *ImGui) Release() {
	libutil.DeleteAll(gui.owned)
	gui.owned = nil
	gui.context.Destroy()
}
