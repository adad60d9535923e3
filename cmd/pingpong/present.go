package main

import (
	"fmt"
	"image"

	"pingpong-gl/libgl"
	"pingpong-gl/pipeline"
	"pingpong-gl/pipeline/opengl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// presenter copies the display surface into the default framebuffer.
type presenter interface {
	Present(surface pipeline.Target, fbWidth, fbHeight int) error
	Release()
}

type glPresenter struct{}

func (glPresenter) Present(surface pipeline.Target, fbWidth, fbHeight int) error {
	t, ok := surface.(*opengl.Target)
	if !ok {
		return fmt.Errorf("%T: %w", surface, pipeline.ErrForeignTarget)
	}
	t.Present(fbWidth, fbHeight)
	return nil
}

func (glPresenter) Release() {}

// uploadPresenter streams a surface of another device through host memory
// into a texture and blits it. Image rows are top-down, so the blit flips them.
type uploadPresenter struct {
	device      pipeline.Device
	texture     libgl.UnboundTexture
	framebuffer libgl.UnboundFramebuffer
}

func (up *uploadPresenter) Present(surface pipeline.Target, fbWidth, fbHeight int) error {
	var img *image.RGBA
	if t, ok := surface.(*pipeline.SoftwareTarget); ok {
		img = t.Image()
	} else {
		var err error
		img, err = up.device.Read(surface)
		if err != nil {
			return err
		}
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if up.texture == nil || up.texture.Width() != w || up.texture.Height() != h {
		up.Release()
		up.texture = libgl.NewTexture()
		up.texture.Allocate(1, gl.RGBA8, w, h)
		up.texture.SetDebugLabel("software surface")
		up.framebuffer = libgl.NewFramebuffer()
		up.framebuffer.AttachTexture(0, up.texture)
		if err := up.framebuffer.Check(gl.READ_FRAMEBUFFER); err != nil {
			up.Release()
			return err
		}
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	up.texture.Load(0, w, h, gl.RGBA, img.Pix)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	up.framebuffer.BlitTo(0, w, h, fbWidth, fbHeight, true)
	return nil
}

func (up *uploadPresenter) Release() {
	if up.texture == nil {
		return
	}
	up.framebuffer.Delete()
	up.texture.Delete()
	up.framebuffer, up.texture = nil, nil
}
