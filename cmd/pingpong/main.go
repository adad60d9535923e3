package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"pingpong-gl/config"
	"pingpong-gl/internal/host"
	"pingpong-gl/libgl"
	"pingpong-gl/pipeline"
	"pingpong-gl/pipeline/opengl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

func main() {
	cfg, _, err := config.Parse("pingpong", os.Args[1:], nil)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	check(err)
	logger := host.SetupLogging(cfg.Verbose)

	win, err := initGLFW(cfg)
	check(err)
	defer glfw.Terminate()
	check(initGL())

	device, present, err := createDevice(cfg, logger)
	check(err)
	defer device.Release()
	defer present.Release()

	background, err := cfg.BackgroundColor()
	check(err)
	fbWidth, fbHeight := win.GetFramebufferSize()
	p, err := pipeline.New(device, fbWidth, fbHeight,
		pipeline.WithParams(cfg.Pipeline.Params),
		pipeline.WithBackground(background))
	check(err)
	defer p.Release()

	recorder, err := host.NewRecorder(cfg, fbWidth, fbHeight)
	check(err)
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Error("could not finish capture", "err", err)
		}
	}()

	gui, err := NewImGui(win)
	check(err)
	defer gui.Release()

	var resized bool
	var pendingWidth, pendingHeight int
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		resized = true
		pendingWidth, pendingHeight = width, height
	})

	keys := newInput(win)

	win.Show()
	for !win.ShouldClose() {
		glfw.PollEvents()
		keys.Update(win)
		if keys.IsKeyTap(glfw.KeyEscape) {
			win.SetShouldClose(true)
		}
		if !imgui.CurrentIO().WantCaptureKeyboard() {
			keys.applyKeys(p.Params())
		}

		// minimized windows report 0x0; keep the old images until restored
		if resized && pendingWidth > 0 && pendingHeight > 0 {
			resized = false
			if err := p.Resize(pendingWidth, pendingHeight); err != nil {
				logger.Error("resize failed", "err", err)
			}
		}

		if err := p.Tick(); err != nil {
			logger.Warn("tick failed", "frame", p.Frame(), "err", err)
		}

		fbWidth, fbHeight := win.GetFramebufferSize()
		libgl.State.BindDrawFramebuffer(0)
		libgl.State.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := present.Present(p.DisplaySurface(), fbWidth, fbHeight); err != nil {
			logger.Warn("present failed", "err", err)
		}
		if err := recorder.Record(p); err != nil {
			logger.Warn("capture failed", "err", err)
		}

		gui.NewFrame(win)
		drawParamsPanel(p.Params(), p)
		gui.Draw(win)

		win.SwapBuffers()
	}
}

func createDevice(cfg *config.Config, logger *slog.Logger) (pipeline.Device, presenter, error) {
	if cfg.Backend == config.BackendOpenGL {
		dev, err := opengl.NewDevice()
		if err != nil {
			return nil, nil, err
		}
		return dev, glPresenter{}, nil
	}
	dev, err := host.NewHeadlessDevice(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("presenting through texture upload", "device", dev.Name())
	return dev, &uploadPresenter{device: dev}, nil
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
