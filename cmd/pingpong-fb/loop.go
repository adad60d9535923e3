package main

import (
	"context"
	"image"
	"log/slog"
	"time"

	"pingpong-gl/internal/host"
	"pingpong-gl/pipeline"
)

// Screen receives every displayed frame.
type Screen interface {
	Show(img *image.RGBA) error
	Close() error
}

// Loop ticks the pipeline at a fixed rate until the context is done or Frames ticks have run.
type Loop struct {
	Pipeline *pipeline.Pipeline
	Screen   Screen
	Recorder *host.Recorder
	FPS      int
	Frames   uint64
	Logger   *slog.Logger
}

func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.FPS))
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := l.step(); err != nil {
				l.Logger.Warn("frame dropped", "frame", l.Pipeline.Frame(), "err", err)
			}
			if time.Since(lastLog) > time.Second {
				l.Logger.Debug("heartbeat", "frame", l.Pipeline.Frame())
				lastLog = time.Now()
			}
			if l.Frames > 0 && l.Pipeline.Frame() >= l.Frames {
				return nil
			}
		}
	}
}

func (l *Loop) step() error {
	if err := l.Pipeline.Tick(); err != nil {
		return err
	}
	img, err := l.Pipeline.Snapshot()
	if err != nil {
		return err
	}
	if err := l.Screen.Show(img); err != nil {
		return err
	}
	return l.Recorder.Record(l.Pipeline)
}
