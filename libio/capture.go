package libio

import (
	"fmt"
	"strings"
)

const MagicNumberCapture = 0x70706361

type CaptureVersion uint32

const (
	CaptureVersion1_000_000 = CaptureVersion(1_000_000)
)

type CaptureCompression uint32

const (
	CaptureCompressionNone = CaptureCompression(iota)
	CaptureCompressionLz4
)

func (c CaptureCompression) String() string {
	switch c {
	case CaptureCompressionNone:
		return "none"
	case CaptureCompressionLz4:
		return "lz4"
	}
	return fmt.Sprintf("CaptureCompression(%d)", uint32(c))
}

func ParseCaptureCompression(s string) (CaptureCompression, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return CaptureCompressionNone, nil
	case "lz4":
		return CaptureCompressionLz4, nil
	}
	return 0, fmt.Errorf("unknown capture compression %q", s)
}

// CaptureHeader starts every capture stream. It is followed by any number of
// frames, each a FrameHeader and Length bytes of payload.
type CaptureHeader struct {
	Check         uint32
	Version       CaptureVersion
	Width, Height uint32
	Compression   CaptureCompression
	Unused        [12]uint8
}

// FrameHeader precedes the payload of one frame. The decompressed payload is
// always Width*Height*4 bytes of RGBA8 in top-down row order.
type FrameHeader struct {
	Index  uint64
	Length uint32
}

func (h CaptureHeader) FrameBytes() int {
	return int(h.Width) * int(h.Height) * 4
}
