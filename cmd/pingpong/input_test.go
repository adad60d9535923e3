package main

import (
	"math"
	"testing"

	"pingpong-gl/effects"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func pressed(dt float64, prev, curr []glfw.Key) *input {
	i := &input{
		prev: inputState{time: 1, keys: make([]bool, glfw.KeyLast+1)},
		curr: inputState{time: 1 + dt, keys: make([]bool, glfw.KeyLast+1)},
	}
	for _, k := range prev {
		i.prev.keys[k] = true
	}
	for _, k := range curr {
		i.curr.keys[k] = true
	}
	return i
}

func TestApplyKeysIdle(t *testing.T) {
	store := effects.NewParamStore(effects.DefaultParams())
	assert.False(t, pressed(0.5, nil, nil).applyKeys(store))
	assert.Equal(t, effects.DefaultParams(), store.Load())
}

func TestApplyKeysMoves(t *testing.T) {
	store := effects.NewParamStore(effects.DefaultParams())
	assert.True(t, pressed(0.5, nil, []glfw.Key{glfw.KeyRight, glfw.KeyQ, glfw.KeyEqual}).applyKeys(store))

	p := store.Load()
	assert.InDelta(t, 0.25, p.XOffset, 1e-6)
	assert.Zero(t, p.YOffset)
	assert.InDelta(t, 0.5*math.Pi/4, p.Rotation, 1e-6)
	assert.InDelta(t, 0.75, p.ScaleX, 1e-6)
	assert.InDelta(t, 0.75, p.ScaleY, 1e-6)
}

func TestApplyKeysResetOnTap(t *testing.T) {
	store := effects.NewParamStore(effects.IdentityParams())
	assert.False(t, pressed(0.1, []glfw.Key{glfw.KeyR}, []glfw.Key{glfw.KeyR}).applyKeys(store))
	assert.Equal(t, effects.IdentityParams(), store.Load())

	assert.True(t, pressed(0.1, nil, []glfw.Key{glfw.KeyR}).applyKeys(store))
	assert.Equal(t, effects.DefaultParams(), store.Load())
}
