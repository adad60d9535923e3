package effects_test

import (
	"sync"
	"testing"

	"pingpong-gl/effects"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseUndoesApply(t *testing.T) {
	cases := []effects.Params{
		effects.IdentityParams(),
		effects.DefaultParams(),
		{XOffset: 0.3, YOffset: -0.2, Rotation: 0.7, ScaleX: 1.5, ScaleY: 0.25},
		{XOffset: -1, YOffset: 2, Rotation: -math32.Pi / 3, ScaleX: -1, ScaleY: 2},
	}
	points := []mgl32.Vec2{{0, 0}, {1, 1}, {-1, 0.5}, {0.25, -0.75}}

	for _, p := range cases {
		inv, ok := p.Inverse()
		require.True(t, ok, "params %v", p)
		for _, q := range points {
			back := inv.Apply(p.Apply(q))
			assert.InDelta(t, q[0], back[0], 1e-5, "params %v point %v", p, q)
			assert.InDelta(t, q[1], back[1], 1e-5, "params %v point %v", p, q)
		}
	}
}

func TestApplyOrder(t *testing.T) {
	p := effects.Params{XOffset: 1, Rotation: math32.Pi / 2, ScaleX: 2, ScaleY: 3}
	// (1,0) rotates to (0,1), moves to (1,1) and scales to (2,3)
	got := p.Apply(mgl32.Vec2{1, 0})
	assert.InDelta(t, 2, got[0], 1e-5)
	assert.InDelta(t, 3, got[1], 1e-5)
}

func TestInverseDegenerate(t *testing.T) {
	for _, p := range []effects.Params{
		{ScaleX: 0, ScaleY: 1},
		{ScaleX: 1, ScaleY: 0},
		{ScaleX: math32.NaN(), ScaleY: 1},
		{ScaleX: math32.Inf(1), ScaleY: 1},
	} {
		_, ok := p.Inverse()
		assert.False(t, ok, "params %v", p)
	}
}

func TestInverseTinyScale(t *testing.T) {
	p := effects.Params{ScaleX: 1e-11, ScaleY: 1e-11}
	inv, ok := p.Inverse()
	require.True(t, ok)
	assert.InDelta(t, 1e11, inv.M[0], 1e5)
	assert.InDelta(t, 1e11, inv.M[3], 1e5)

	q := inv.Apply(mgl32.Vec2{0.5, -0.5})
	assert.Greater(t, q[0], float32(1))
	assert.Less(t, q[1], float32(-1))

	// the determinant underflows, so nothing is covered
	_, ok = effects.Params{ScaleX: 1e-25, ScaleY: 1e-25}.Inverse()
	assert.False(t, ok)
}

func TestParamStoreDefaults(t *testing.T) {
	var s effects.ParamStore
	assert.Equal(t, effects.DefaultParams(), s.Load())

	s.Store(effects.IdentityParams())
	assert.Equal(t, effects.IdentityParams(), s.Load())
}

func TestParamStoreLastWriteWins(t *testing.T) {
	s := effects.NewParamStore(effects.DefaultParams())
	s.Store(effects.Params{XOffset: 1})
	s.Store(effects.Params{XOffset: 2})
	assert.Equal(t, float32(2), s.Load().XOffset)
}

func TestParamStoreConcurrentUpdates(t *testing.T) {
	s := effects.NewParamStore(effects.Params{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Update(func(p *effects.Params) {
					p.XOffset++
				})
			}
		}()
	}
	for i := 0; i < 100; i++ {
		p := s.Load()
		// readers never see a torn snapshot
		assert.Zero(t, p.YOffset)
	}
	wg.Wait()
	assert.Equal(t, float32(800), s.Load().XOffset)
}
