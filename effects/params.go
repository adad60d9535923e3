package effects

import (
	"fmt"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Params drive the transform effect. Rotation is in radians. Any finite
// value is accepted; a zero scale collapses the quad and is not an error.
type Params struct {
	XOffset  float32 `toml:"x_offset"`
	YOffset  float32 `toml:"y_offset"`
	Rotation float32 `toml:"rotation"`
	ScaleX   float32 `toml:"scale_x"`
	ScaleY   float32 `toml:"scale_y"`
}

// DefaultParams shrinks the image to half size, the startup state of the UI.
func DefaultParams() Params {
	return Params{ScaleX: 0.5, ScaleY: 0.5}
}

// IdentityParams map the quad onto itself.
func IdentityParams() Params {
	return Params{ScaleX: 1, ScaleY: 1}
}

func (p Params) String() string {
	return fmt.Sprintf("offset=(%.3f,%.3f) angle=%.3f scale=(%.3f,%.3f)", p.XOffset, p.YOffset, p.Rotation, p.ScaleX, p.ScaleY)
}

func (p Params) scale() mgl32.Mat2 {
	return mgl32.Mat2{p.ScaleX, 0, 0, p.ScaleY}
}

// Apply maps a point of the [-1,1] quad to its transformed position:
// rotate, then translate, then scale.
func (p Params) Apply(q mgl32.Vec2) mgl32.Vec2 {
	rotated := mgl32.Rotate2D(p.Rotation).Mul2x1(q)
	return p.scale().Mul2x1(rotated.Add(mgl32.Vec2{p.XOffset, p.YOffset}))
}

// InverseTransform maps a transformed position back onto the [-1,1] quad.
type InverseTransform struct {
	M mgl32.Mat2
	O mgl32.Vec2
}

func (inv InverseTransform) Apply(p mgl32.Vec2) mgl32.Vec2 {
	return inv.M.Mul2x1(p).Add(inv.O)
}

// Inverse returns the inverse of Apply. ok is false when the transform is
// degenerate or not finite, in which case nothing is covered.
func (p Params) Inverse() (inv InverseTransform, ok bool) {
	s := p.scale()
	m := s.Mul2(mgl32.Rotate2D(p.Rotation))
	det := m.Det()
	if det == 0 || !finite(det) {
		return InverseTransform{}, false
	}
	// mgl32.Mat2.Inv returns zero below its epsilon, which would turn a tiny
	// quad into one that covers everything.
	mi := mgl32.Mat2{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det}
	for _, v := range mi {
		if !finite(v) {
			return InverseTransform{}, false
		}
	}
	t := mgl32.Vec2{p.XOffset, p.YOffset}
	return InverseTransform{
		M: mi,
		O: mi.Mul2x1(s.Mul2x1(t)).Mul(-1),
	}, true
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// ParamStore publishes Params snapshots from a single writer to any number of
// readers. Readers always observe a complete snapshot; the last write wins.
type ParamStore struct {
	current atomic.Pointer[Params]
}

func NewParamStore(initial Params) *ParamStore {
	s := &ParamStore{}
	s.Store(initial)
	return s
}

// Load returns the latest snapshot, or DefaultParams if nothing was stored yet.
func (s *ParamStore) Load() Params {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return DefaultParams()
}

func (s *ParamStore) Store(p Params) {
	s.current.Store(&p)
}

// Update applies fn to a copy of the current snapshot and publishes the result.
// Concurrent updates are retried so none is lost.
func (s *ParamStore) Update(fn func(p *Params)) Params {
	for {
		old := s.current.Load()
		next := DefaultParams()
		if old != nil {
			next = *old
		}
		fn(&next)
		if s.current.CompareAndSwap(old, &next) {
			return next
		}
	}
}
