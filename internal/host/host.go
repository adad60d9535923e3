// Package host holds the pieces shared by the pingpong binaries.
package host

import (
	"fmt"
	"log/slog"
	"os"

	"pingpong-gl/config"
	"pingpong-gl/pipeline"
	"pingpong-gl/pipeline/opencl"
)

// SetupLogging routes pipeline logs to stderr. Debug records are only shown when verbose.
func SetupLogging(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	pipeline.SetLogger(logger)
	return logger
}

// NewHeadlessDevice creates a device that needs no window. An OpenCL
// failure falls back to the software device.
func NewHeadlessDevice(cfg *config.Config, logger *slog.Logger) (pipeline.Device, error) {
	switch cfg.Backend {
	case config.BackendOpenCL:
		prefer := opencl.DeviceTypeGPU
		if cfg.OpenCL.Prefer == config.DeviceCPU {
			prefer = opencl.DeviceTypeCPU
		}
		dev, err := opencl.NewDevice(prefer)
		if err == nil {
			return dev, nil
		}
		logger.Warn("opencl unavailable, falling back to software", "err", err)
		fallthrough
	case config.BackendSoftware:
		return pipeline.NewSoftwareDevice(), nil
	}
	return nil, fmt.Errorf("backend %v needs a window", cfg.Backend)
}
