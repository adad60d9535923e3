package libio_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"testing"

	"pingpong-gl/libio"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x) + seed, G: uint8(y) * 3, B: seed, A: 0xff})
		}
	}
	return img
}

func TestCaptureRoundTrip(t *testing.T) {
	for _, compression := range []libio.CaptureCompression{libio.CaptureCompressionNone, libio.CaptureCompressionLz4} {
		t.Run(compression.String(), func(t *testing.T) {
			buf := new(bytes.Buffer)
			cw, err := libio.NewCaptureWriter(buf, 7, 5, compression, libio.WithLevel(lz4.Level3))
			require.NoError(t, err)

			frames := []*image.RGBA{testFrame(7, 5, 0), testFrame(7, 5, 40), testFrame(7, 5, 80)}
			for i, f := range frames {
				require.NoError(t, cw.WriteFrame(uint64(i*2+1), f))
			}
			assert.Equal(t, 3, cw.Frames())

			cr, err := libio.NewCaptureReader(buf)
			require.NoError(t, err)
			header := cr.Header()
			assert.Equal(t, uint32(7), header.Width)
			assert.Equal(t, uint32(5), header.Height)
			assert.Equal(t, compression, header.Compression)
			assert.Equal(t, 7*5*4, header.FrameBytes())

			for i, want := range frames {
				index, img, err := cr.Next()
				require.NoError(t, err)
				assert.Equal(t, uint64(i*2+1), index)
				assert.Equal(t, want.Pix, img.Pix)
			}
			_, _, err = cr.Next()
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestCaptureLz4IsSmaller(t *testing.T) {
	raw, compressed := new(bytes.Buffer), new(bytes.Buffer)
	// a uniform frame compresses well
	frame := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := range frame.Pix {
		frame.Pix[i] = 0x55
	}

	for _, c := range []struct {
		buf         *bytes.Buffer
		compression libio.CaptureCompression
	}{{raw, libio.CaptureCompressionNone}, {compressed, libio.CaptureCompressionLz4}} {
		cw, err := libio.NewCaptureWriter(c.buf, 64, 64, c.compression)
		require.NoError(t, err)
		require.NoError(t, cw.WriteFrame(0, frame))
	}
	assert.Less(t, compressed.Len(), raw.Len())
}

func TestCaptureSubImage(t *testing.T) {
	big := testFrame(8, 8, 7)
	sub := big.SubImage(image.Rect(2, 3, 6, 5)).(*image.RGBA)

	buf := new(bytes.Buffer)
	cw, err := libio.NewCaptureWriter(buf, 4, 2, libio.CaptureCompressionNone)
	require.NoError(t, err)
	require.NoError(t, cw.WriteFrame(0, sub))

	cr, err := libio.NewCaptureReader(buf)
	require.NoError(t, err)
	_, img, err := cr.Next()
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, big.RGBAAt(x+2, y+3), img.RGBAAt(x, y))
		}
	}
}

func TestCaptureWriterRejects(t *testing.T) {
	_, err := libio.NewCaptureWriter(io.Discard, 0, 4, libio.CaptureCompressionNone)
	assert.Error(t, err)
	_, err = libio.NewCaptureWriter(io.Discard, 4, 4, libio.CaptureCompression(9))
	assert.Error(t, err)

	cw, err := libio.NewCaptureWriter(io.Discard, 4, 4, libio.CaptureCompressionNone)
	require.NoError(t, err)
	assert.Error(t, cw.WriteFrame(0, testFrame(3, 4, 0)))
	assert.Zero(t, cw.Frames())
}

func TestCaptureReaderRejects(t *testing.T) {
	encode := func(h libio.CaptureHeader) io.Reader {
		buf := new(bytes.Buffer)
		require.NoError(t, binary.Write(buf, binary.LittleEndian, h))
		return buf
	}
	valid := libio.CaptureHeader{
		Check:   libio.MagicNumberCapture,
		Version: libio.CaptureVersion1_000_000,
		Width:   2,
		Height:  2,
	}

	bad := valid
	bad.Check = 0xdeadbeef
	_, err := libio.NewCaptureReader(encode(bad))
	assert.ErrorContains(t, err, "corrupt")

	bad = valid
	bad.Version = 2
	_, err = libio.NewCaptureReader(encode(bad))
	assert.ErrorContains(t, err, "version")

	bad = valid
	bad.Compression = 7
	_, err = libio.NewCaptureReader(encode(bad))
	assert.ErrorContains(t, err, "compression")

	bad = valid
	bad.Height = 0
	_, err = libio.NewCaptureReader(encode(bad))
	assert.ErrorContains(t, err, "empty")

	_, err = libio.NewCaptureReader(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)
}

func TestCaptureTruncatedFrame(t *testing.T) {
	buf := new(bytes.Buffer)
	cw, err := libio.NewCaptureWriter(buf, 4, 4, libio.CaptureCompressionNone)
	require.NoError(t, err)
	require.NoError(t, cw.WriteFrame(0, testFrame(4, 4, 0)))

	data := buf.Bytes()[:buf.Len()-5]
	cr, err := libio.NewCaptureReader(bytes.NewReader(data))
	require.NoError(t, err)
	_, _, err = cr.Next()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestParseCaptureCompression(t *testing.T) {
	c, err := libio.ParseCaptureCompression("LZ4")
	require.NoError(t, err)
	assert.Equal(t, libio.CaptureCompressionLz4, c)
	c, err = libio.ParseCaptureCompression("")
	require.NoError(t, err)
	assert.Equal(t, libio.CaptureCompressionNone, c)
	_, err = libio.ParseCaptureCompression("zstd")
	assert.Error(t, err)
}
