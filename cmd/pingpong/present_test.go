//go:build gltest

package main

import (
	"image"
	"os"
	"runtime"
	"testing"

	"pingpong-gl/config"
	"pingpong-gl/libgl"
	"pingpong-gl/pipeline"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var onMain = make(chan func())
var onMainDone = make(chan struct{})

func TestMain(m *testing.M) {
	runtime.LockOSThread()

	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 64, 64
	if _, err := initGLFW(&cfg); err != nil {
		panic(err)
	}
	if err := gl.InitWithProcAddrFunc(loadProc); err != nil {
		panic(err)
	}
	libgl.ResetState()

	go func() {
		os.Exit(m.Run())
	}()

	for fn := range onMain {
		fn()
		onMainDone <- struct{}{}
	}
}

func runOnMain(fn func()) {
	onMain <- fn
	<-onMainDone
}

// hostTarget hides the software target type so the presenter reads it back
// through the device.
type hostTarget struct {
	pipeline.Target
}

type readbackDevice struct {
	*pipeline.SoftwareDevice
	img *image.RGBA
}

func (d *readbackDevice) Read(pipeline.Target) (*image.RGBA, error) {
	return d.img, nil
}

func TestUploadPresenterDropsIncompleteFramebuffer(t *testing.T) {
	var maxSize int32
	runOnMain(func() { gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize) })

	// wider than any texture, so the storage is never allocated
	dev := &readbackDevice{
		SoftwareDevice: pipeline.NewSoftwareDevice(),
		img:            image.NewRGBA(image.Rect(0, 0, int(maxSize)+1, 1)),
	}
	surface, err := dev.NewTarget(1, 1, "surface")
	require.NoError(t, err)
	up := &uploadPresenter{device: dev}

	for i := 0; i < 2; i++ {
		var err error
		runOnMain(func() { err = up.Present(hostTarget{surface}, 64, 64) })
		assert.Error(t, err, "attempt %d", i)
		assert.Nil(t, up.texture, "attempt %d", i)
		assert.Nil(t, up.framebuffer, "attempt %d", i)
	}

	dev.img = image.NewRGBA(image.Rect(0, 0, 2, 2))
	runOnMain(func() { err = up.Present(hostTarget{surface}, 64, 64) })
	require.NoError(t, err)
	assert.NotNil(t, up.texture)
	runOnMain(up.Release)
}
