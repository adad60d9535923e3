package host

import (
	"bufio"
	"fmt"
	"os"

	"pingpong-gl/config"
	"pingpong-gl/libio"
	"pingpong-gl/pipeline"

	"github.com/pierrec/lz4/v4"
)

var lz4Levels = []lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// Recorder appends displayed frames to a capture file.
type Recorder struct {
	file   *os.File
	buf    *bufio.Writer
	writer *libio.CaptureWriter
}

// NewRecorder returns nil without error when no capture path is configured.
func NewRecorder(cfg *config.Config, width, height int) (*Recorder, error) {
	if cfg.Capture.Path == "" {
		return nil, nil
	}
	compression, err := libio.ParseCaptureCompression(cfg.Capture.Compression)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(cfg.Capture.Path)
	if err != nil {
		return nil, fmt.Errorf("could not create capture: %w", err)
	}
	buf := bufio.NewWriter(file)
	writer, err := libio.NewCaptureWriter(buf, width, height, compression, libio.WithLevel(lz4Levels[cfg.Capture.Level]))
	if err != nil {
		file.Close()
		return nil, err
	}
	return &Recorder{file: file, buf: buf, writer: writer}, nil
}

// Record appends the current surface. Frames of a different size than the
// capture, as after a resize, are skipped.
func (r *Recorder) Record(p *pipeline.Pipeline) error {
	if r == nil {
		return nil
	}
	w, h := p.Size()
	header := r.writer.Header()
	if w != int(header.Width) || h != int(header.Height) {
		return nil
	}
	img, err := p.Snapshot()
	if err != nil {
		return err
	}
	return r.writer.WriteFrame(p.Frame(), img)
}

func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	if err := r.buf.Flush(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
