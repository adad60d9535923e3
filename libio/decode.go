package libio

import (
	"bytes"
	"errors"
	"fmt"
	goimg "image"
	"io"

	"github.com/pierrec/lz4/v4"
)

type CaptureReader struct {
	br     *BinaryReader
	header CaptureHeader
	lzr    *lz4.Reader
}

// NewCaptureReader reads and validates the capture header from r.
func NewCaptureReader(r io.Reader) (*CaptureReader, error) {
	br := NewBinaryReader(r)

	header := CaptureHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected capture header; byte 0x%08x: %w", br.LastIndex, br.Err)
	}

	if header.Check != MagicNumberCapture {
		return nil, fmt.Errorf("capture header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != CaptureVersion1_000_000 {
		return nil, fmt.Errorf("capture version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	if header.Compression != CaptureCompressionNone && header.Compression != CaptureCompressionLz4 {
		return nil, fmt.Errorf("capture compression %v unsupported; byte 0x%08x", header.Compression, br.LastIndex)
	}

	if header.Width == 0 || header.Height == 0 {
		return nil, fmt.Errorf("capture size %dx%d is empty; byte 0x%08x", header.Width, header.Height, br.LastIndex)
	}

	cr := &CaptureReader{
		br:     br,
		header: header,
	}
	if header.Compression == CaptureCompressionLz4 {
		cr.lzr = lz4.NewReader(nil)
	}
	return cr, nil
}

func (cr *CaptureReader) Header() CaptureHeader {
	return cr.header
}

// Next decodes the following frame. It returns io.EOF when the stream ends cleanly between frames.
func (cr *CaptureReader) Next() (index uint64, img *goimg.RGBA, err error) {
	frame := FrameHeader{}
	if !cr.br.ReadRef(&frame) {
		if errors.Is(cr.br.Err, io.EOF) {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("expected frame header; byte 0x%08x: %w", cr.br.LastIndex, cr.br.Err)
	}

	payload := cr.br.ReadBytes(int(frame.Length))
	if payload == nil && frame.Length > 0 {
		return 0, nil, fmt.Errorf("frame %d payload truncated; byte 0x%08x: %w", frame.Index, cr.br.LastIndex, cr.br.Err)
	}

	img = goimg.NewRGBA(goimg.Rect(0, 0, int(cr.header.Width), int(cr.header.Height)))

	switch cr.header.Compression {
	case CaptureCompressionNone:
		if len(payload) != len(img.Pix) {
			return 0, nil, fmt.Errorf("frame %d has %d bytes, expected %d", frame.Index, len(payload), len(img.Pix))
		}
		copy(img.Pix, payload)
	case CaptureCompressionLz4:
		cr.lzr.Reset(bytes.NewReader(payload))
		if _, err = io.ReadFull(cr.lzr, img.Pix); err != nil {
			return 0, nil, fmt.Errorf("could not decompress frame %d: %w", frame.Index, err)
		}
	}

	return frame.Index, img, nil
}
