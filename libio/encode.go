package libio

import (
	"bytes"
	"fmt"
	goimg "image"
	"io"

	"github.com/pierrec/lz4/v4"
)

type CaptureWriter struct {
	bw     *BinaryWriter
	header CaptureHeader
	level  lz4.CompressionLevel
	frames int
	buf    bytes.Buffer
	lzw    *lz4.Writer
}

type CaptureOption func(cw *CaptureWriter)

// WithLevel sets the lz4 compression level. It has no effect on uncompressed captures.
func WithLevel(level lz4.CompressionLevel) CaptureOption {
	return func(cw *CaptureWriter) {
		cw.level = level
	}
}

// NewCaptureWriter writes the capture header to w and returns a writer for frames of the given size.
func NewCaptureWriter(w io.Writer, width, height int, compression CaptureCompression, opts ...CaptureOption) (*CaptureWriter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture size %dx%d is not positive", width, height)
	}
	if compression != CaptureCompressionNone && compression != CaptureCompressionLz4 {
		return nil, fmt.Errorf("capture compression %v unsupported", compression)
	}

	cw := &CaptureWriter{
		bw: NewBinaryWriter(w),
		header: CaptureHeader{
			Check:       MagicNumberCapture,
			Version:     CaptureVersion1_000_000,
			Width:       uint32(width),
			Height:      uint32(height),
			Compression: compression,
		},
		level: lz4.Fast,
	}
	for _, opt := range opts {
		opt(cw)
	}

	if !cw.bw.WriteRef(cw.header) {
		return nil, fmt.Errorf("could not write capture header: %w", cw.bw.Err)
	}

	if compression == CaptureCompressionLz4 {
		cw.lzw = lz4.NewWriter(nil)
	}

	return cw, nil
}

func (cw *CaptureWriter) Header() CaptureHeader {
	return cw.header
}

// Frames returns the number of frames written so far.
func (cw *CaptureWriter) Frames() int {
	return cw.frames
}

// WriteFrame appends img as frame index. img must match the capture size.
func (cw *CaptureWriter) WriteFrame(index uint64, img *goimg.RGBA) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != int(cw.header.Width) || h != int(cw.header.Height) {
		return fmt.Errorf("frame %d is %dx%d, capture is %dx%d", index, w, h, cw.header.Width, cw.header.Height)
	}

	raw := packRows(img)
	payload := raw

	if cw.header.Compression == CaptureCompressionLz4 {
		cw.buf.Reset()
		cw.lzw.Reset(&cw.buf)
		if err := cw.lzw.Apply(lz4.CompressionLevelOption(cw.level)); err != nil {
			return fmt.Errorf("could not configure lz4: %w", err)
		}
		if _, err := cw.lzw.Write(raw); err != nil {
			return fmt.Errorf("could not compress frame %d: %w", index, err)
		}
		if err := cw.lzw.Close(); err != nil {
			return fmt.Errorf("could not compress frame %d: %w", index, err)
		}
		payload = cw.buf.Bytes()
	}

	frame := FrameHeader{
		Index:  index,
		Length: uint32(len(payload)),
	}
	if !cw.bw.WriteRef(frame) {
		return fmt.Errorf("could not write frame %d header: %w", index, cw.bw.Err)
	}
	if !cw.bw.WriteBytes(payload) {
		return fmt.Errorf("could not write frame %d payload: %w", index, cw.bw.Err)
	}

	cw.frames++
	return nil
}

// packRows returns the pixels of img as tightly packed rows, without copying when possible.
func packRows(img *goimg.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rowBytes := w * 4
	if img.Stride == rowBytes && len(img.Pix) == rowBytes*h {
		return img.Pix
	}
	out := make([]byte, rowBytes*h)
	for y := 0; y < h; y++ {
		start := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(out[y*rowBytes:(y+1)*rowBytes], img.Pix[start:start+rowBytes])
	}
	return out
}
