// Package opengl renders the ping-pong chain with OpenGL 4.5 core. Every
// call must happen on the thread that owns the current context.
package opengl

import (
	"fmt"
	"image"

	"pingpong-gl/effects"
	"pingpong-gl/libgl"
	"pingpong-gl/libio"
	"pingpong-gl/libutil"
	"pingpong-gl/pipeline"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Target is an RGBA8 texture with a framebuffer rendering into it.
// Texel row 0 is the bottom of the picture.
type Target struct {
	label       string
	texture     libgl.UnboundTexture
	framebuffer libgl.UnboundFramebuffer
	width       int
	height      int
}

func (t *Target) Size() (width, height int) {
	return t.width, t.height
}

func (t *Target) Texture() libgl.UnboundTexture {
	return t.texture
}

func (t *Target) Framebuffer() libgl.UnboundFramebuffer {
	return t.framebuffer
}

// Present copies the target into the default framebuffer, stretched to width×height.
func (t *Target) Present(width, height int) {
	t.framebuffer.BlitTo(0, t.width, t.height, width, height, false)
}

func (t *Target) String() string {
	return t.label
}

type Device struct {
	shaders map[effects.Kind]libgl.UnboundShaderPipeline
	sampler libgl.UnboundSampler
	owned   []libutil.Deleter
}

// NewDevice compiles one shader pipeline per effect kind. A context must be current.
func NewDevice() (dev *Device, err error) {
	if libgl.State == nil {
		libgl.ResetState()
	}

	cleanup := []libutil.Deleter{}
	defer func() {
		if err != nil {
			libutil.DeleteAll(cleanup)
		}
	}()

	sampler := libgl.NewSampler()
	sampler.FilterMode(gl.NEAREST, gl.NEAREST)
	sampler.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
	sampler.SetDebugLabel("effect input")
	cleanup = append(cleanup, sampler)

	shaders := map[effects.Kind]libgl.UnboundShaderPipeline{}
	for _, kind := range effects.Kinds {
		vertSrc, fragSrc, err := effects.GLSLSources(kind)
		if err != nil {
			return nil, err
		}

		shader, err := libgl.CompilePipeline(kind.String()+" effect", vertSrc, fragSrc)
		if err != nil {
			return nil, err
		}
		cleanup = append(cleanup, shader)
		shaders[kind] = shader
	}

	pipeline.Logger().Info("opengl device ready",
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	return &Device{
		shaders: shaders,
		sampler: sampler,
		owned:   cleanup,
	}, nil
}

func (*Device) Name() string {
	return "opengl"
}

func (dev *Device) NewTarget(width, height int, label string) (t pipeline.Target, err error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, pipeline.ErrInvalidDimensions)
	}

	texture := libgl.NewTexture()
	texture.Allocate(1, gl.RGBA8, width, height)
	texture.SetDebugLabel(label)

	fbo := libgl.NewFramebuffer()
	fbo.AttachTexture(0, texture)
	fbo.BindTargets(0)
	fbo.SetDebugLabel(label)
	if err := fbo.Check(gl.DRAW_FRAMEBUFFER); err != nil {
		fbo.Delete()
		texture.Delete()
		return nil, fmt.Errorf("%v: %w", label, err)
	}

	return &Target{
		label:       label,
		texture:     texture,
		framebuffer: fbo,
		width:       width,
		height:      height,
	}, nil
}

func (dev *Device) Render(dst, src pipeline.Target, e effects.Effect) error {
	d, err := dev.target(dst)
	if err != nil {
		return err
	}
	shader, ok := dev.shaders[e.Kind]
	if !ok {
		return fmt.Errorf("unknown effect kind %v", e.Kind)
	}

	libgl.PushGroup(e.Kind.String())
	defer libgl.PopGroup()

	d.framebuffer.Bind(gl.DRAW_FRAMEBUFFER)
	libgl.State.SetEnabled()
	libgl.State.Viewport(0, 0, d.width, d.height)

	if e.Kind.NeedsSource() {
		s, err := dev.target(src)
		if err != nil {
			return err
		}
		s.texture.Bind(0)
		dev.sampler.Bind(0)
	}

	switch e.Kind {
	case effects.KindColor:
		shader.Fragment().SetUniform("u_color", mgl32.Vec3{
			float32(e.Fill.R) / 0xff,
			float32(e.Fill.G) / 0xff,
			float32(e.Fill.B) / 0xff,
		})
	case effects.KindTransform:
		c := effects.ClearColor
		libgl.State.ClearColor(float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		vsh := shader.Vertex()
		vsh.SetUniform("u_translate", mgl32.Vec2{e.Params.XOffset, e.Params.YOffset})
		vsh.SetUniform("u_scale", mgl32.Vec2{e.Params.ScaleX, e.Params.ScaleY})
		vsh.SetUniform("u_rotation", e.Params.Rotation)
	}

	shader.Bind()
	libgl.DrawQuad()
	return nil
}

func (dev *Device) Read(t pipeline.Target) (*image.RGBA, error) {
	gt, err := dev.target(t)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, gt.width, gt.height))
	gt.texture.Read(0, gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	libio.FlipRows(img.Pix, img.Stride)
	return img, nil
}

func (dev *Device) ReleaseTarget(t pipeline.Target) {
	gt, ok := t.(*Target)
	if !ok || gt.texture == nil {
		return
	}
	gt.framebuffer.Delete()
	gt.texture.Delete()
	gt.framebuffer, gt.texture = nil, nil
}

// Release deletes the shaders, the sampler and the shared quad.
func (dev *Device) Release() {
	libutil.DeleteAll(dev.owned)
	dev.owned = nil
	dev.shaders = nil
	libgl.ReleaseQuad()
}

func (*Device) target(t pipeline.Target) (*Target, error) {
	gt, ok := t.(*Target)
	if !ok || gt.texture == nil {
		return nil, fmt.Errorf("%T: %w", t, pipeline.ErrForeignTarget)
	}
	return gt, nil
}
