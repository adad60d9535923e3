package pipeline_test

import (
	"testing"

	"pingpong-gl/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPairSwap(t *testing.T) {
	dev := pipeline.NewSoftwareDevice()
	a, _ := dev.NewTarget(2, 2, "a")
	b, _ := dev.NewTarget(2, 2, "b")
	pair, err := pipeline.NewBufferPair(a, b)
	require.NoError(t, err)

	assert.Same(t, a, pair.Read())
	assert.Same(t, b, pair.Write())
	pair.Swap()
	assert.Same(t, b, pair.Read())
	assert.Same(t, a, pair.Write())
	pair.Swap()
	assert.Same(t, a, pair.Read())

	w, h := pair.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
}

func TestNewBufferPairRejects(t *testing.T) {
	dev := pipeline.NewSoftwareDevice()
	a, _ := dev.NewTarget(2, 2, "a")
	wide, _ := dev.NewTarget(3, 2, "wide")

	_, err := pipeline.NewBufferPair(a, nil)
	assert.Error(t, err)
	_, err = pipeline.NewBufferPair(nil, a)
	assert.Error(t, err)
	_, err = pipeline.NewBufferPair(a, a)
	assert.Error(t, err)
	_, err = pipeline.NewBufferPair(a, wide)
	assert.ErrorIs(t, err, pipeline.ErrDimensionMismatch)
}

type foreignTarget struct{}

func (foreignTarget) Size() (int, int) { return 2, 2 }

func TestSoftwareDeviceForeignTarget(t *testing.T) {
	dev := pipeline.NewSoftwareDevice()
	own, _ := dev.NewTarget(2, 2, "own")

	assert.ErrorIs(t, dev.Render(foreignTarget{}, nil, colorEffect()), pipeline.ErrForeignTarget)
	assert.ErrorIs(t, dev.Render(own, foreignTarget{}, invertEffect()), pipeline.ErrForeignTarget)
	_, err := dev.Read(foreignTarget{})
	assert.ErrorIs(t, err, pipeline.ErrForeignTarget)

	dev.ReleaseTarget(own)
	_, err = dev.Read(own)
	assert.ErrorIs(t, err, pipeline.ErrForeignTarget)
}

func TestSoftwareDeviceReadCopies(t *testing.T) {
	dev := pipeline.NewSoftwareDevice()
	tgt, _ := dev.NewTarget(2, 2, "t")
	require.NoError(t, dev.Render(tgt, nil, colorEffect()))

	img, err := dev.Read(tgt)
	require.NoError(t, err)
	img.Pix[0] = 0
	assert.NotEqual(t, img.Pix[0], tgt.(*pipeline.SoftwareTarget).Image().Pix[0])
}
