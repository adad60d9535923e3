package main

import (
	"pingpong-gl/effects"
	"pingpong-gl/libutil"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Rates per second of held key.
const (
	offsetSpeed   = 0.5
	rotationSpeed = 45 * libutil.Deg2Rad
	scaleSpeed    = 0.5
)

type inputState struct {
	time float64
	keys []bool
}

// input tracks key state between frames so that held keys can nudge the
// transform at a frame rate independent speed.
type input struct {
	curr inputState
	prev inputState
}

func newInput(win *glfw.Window) *input {
	i := &input{
		curr: inputState{keys: make([]bool, glfw.KeyLast+1)},
		prev: inputState{keys: make([]bool, glfw.KeyLast+1)},
	}
	i.Update(win)
	// avoid a zero time delta on the first frame
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys, i.curr.keys)
	return i
}

func (i *input) Update(win *glfw.Window) {
	keys := i.prev.keys
	i.prev = i.curr
	for key := 32; key <= int(glfw.KeyLast); key++ {
		keys[key] = win.GetKey(glfw.Key(key)) != glfw.Release
	}
	i.curr = inputState{
		time: glfw.GetTime(),
		keys: keys,
	}
}

func (i *input) TimeDelta() float32 {
	return float32(i.curr.time - i.prev.time)
}

func (i *input) IsKeyDown(key glfw.Key) bool {
	return i.curr.keys[key]
}

func (i *input) IsKeyTap(key glfw.Key) bool {
	return i.curr.keys[key] && !i.prev.keys[key]
}

// axis returns -1, 0 or 1 for a pair of opposing keys.
func (i *input) axis(neg, pos glfw.Key) float32 {
	var v float32
	if i.IsKeyDown(neg) {
		v -= 1
	}
	if i.IsKeyDown(pos) {
		v += 1
	}
	return v
}

// applyKeys publishes keyboard changes to the transform parameters:
// arrows move, Q and E rotate, minus and equal scale, R resets.
// It reports whether anything changed.
func (i *input) applyKeys(store *effects.ParamStore) bool {
	if i.IsKeyTap(glfw.KeyR) {
		store.Store(effects.DefaultParams())
		return true
	}

	move := mgl32.Vec2{i.axis(glfw.KeyLeft, glfw.KeyRight), i.axis(glfw.KeyDown, glfw.KeyUp)}
	turn := i.axis(glfw.KeyE, glfw.KeyQ)
	grow := i.axis(glfw.KeyMinus, glfw.KeyEqual)
	if move.Len() == 0 && turn == 0 && grow == 0 {
		return false
	}

	dt := i.TimeDelta()
	if move.Len() > 0 {
		move = move.Normalize().Mul(offsetSpeed * dt)
	}
	store.Update(func(p *effects.Params) {
		p.XOffset += move[0]
		p.YOffset += move[1]
		p.Rotation += turn * rotationSpeed * dt
		p.ScaleX += grow * scaleSpeed * dt
		p.ScaleY += grow * scaleSpeed * dt
	})
	return true
}
