package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"pingpong-gl/libio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCapture(t *testing.T, frames int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.ppcap")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	cw, err := libio.NewCaptureWriter(file, 4, 2, libio.CaptureCompressionLz4)
	require.NoError(t, err)
	for i := 0; i < frames; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 4, 2))
		for j := range img.Pix {
			img.Pix[j] = uint8(i * 10)
			if j%4 == 3 {
				img.Pix[j] = 0xff
			}
		}
		require.NoError(t, cw.WriteFrame(uint64(i+5), img))
	}
	return path
}

func TestSummarize(t *testing.T) {
	path := writeCapture(t, 3)
	summary, err := summarize(path)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Frames)
	assert.Equal(t, uint64(5), summary.First)
	assert.Equal(t, uint64(7), summary.Last)
	assert.Contains(t, summary.String(), "4x2, lz4")
	assert.Contains(t, summary.String(), "ticks 5..7")
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := summarize(writeCapture(t, 0))
	require.NoError(t, err)
	assert.Zero(t, summary.Frames)
	assert.NotContains(t, summary.String(), "ticks")
}

func TestExportPng(t *testing.T) {
	path := writeCapture(t, 4)
	out := t.TempDir()
	require.NoError(t, exportPng(pngArgs{out: out, scale: 2, every: 2, quiet: true}, path))

	names, err := filepath.Glob(filepath.Join(out, "*.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "run_000005.png"),
		filepath.Join(out, "run_000007.png"),
	}, names)

	file, err := os.Open(names[1])
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	r, _, _, _ := img.At(7, 3).RGBA()
	assert.Equal(t, uint32(20*0x101), r)
}
