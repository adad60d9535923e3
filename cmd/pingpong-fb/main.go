// Command pingpong-fb runs the chain without a window and presents it on a
// Linux framebuffer device.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pingpong-gl/config"
	"pingpong-gl/internal/host"
	"pingpong-gl/pipeline"
)

func main() {
	cfg, _, err := config.Parse("pingpong-fb", os.Args[1:], func(flags *flag.FlagSet, cfg *config.Config) {
		flags.StringVar(&cfg.Framebuffer.Device, "fb", cfg.Framebuffer.Device, "the framebuffer device")
		flags.IntVar(&cfg.Framebuffer.FPS, "fps", cfg.Framebuffer.FPS, "the ticks per second")
		flags.IntVar(&cfg.Framebuffer.Frames, "frames", cfg.Framebuffer.Frames, "stops after this many ticks; 0 runs until interrupted")
	})
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	check(err)
	logger := host.SetupLogging(cfg.Verbose)

	if cfg.Backend == config.BackendOpenGL {
		logger.Info("opengl needs a window, using software")
		cfg.Backend = config.BackendSoftware
	}

	device, err := host.NewHeadlessDevice(cfg, logger)
	check(err)
	defer device.Release()

	screen, err := openScreen(cfg.Framebuffer.Device)
	check(err)
	defer screen.Close()

	width, height := cfg.Window.Width, cfg.Window.Height
	background, err := cfg.BackgroundColor()
	check(err)
	p, err := pipeline.New(device, width, height,
		pipeline.WithParams(cfg.Pipeline.Params),
		pipeline.WithBackground(background))
	check(err)
	defer p.Release()

	recorder, err := host.NewRecorder(cfg, width, height)
	check(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := &Loop{
		Pipeline: p,
		Screen:   screen,
		Recorder: recorder,
		FPS:      cfg.Framebuffer.FPS,
		Frames:   uint64(cfg.Framebuffer.Frames),
		Logger:   logger,
	}
	runErr := loop.Run(ctx)

	if err := recorder.Close(); err != nil {
		logger.Error("could not finish capture", "err", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Panic(runErr)
	}
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
