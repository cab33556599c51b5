package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/hamstercide/vmath"
)

// ErrInvalidSpring is returned when spring endpoints or coefficients are unusable
var ErrInvalidSpring = errors.New("physics: invalid spring")

// Spring is a Hookean link between two arena nodes with per-node velocity damping
// Each endpoint's own velocity damps itself; relative velocity is not used
type Spring struct {
	A, B       Handle
	RestLength float64
	K          float64 // Stiffness
	C          float64 // Damping
}

// NewSpring validates endpoints against the arena and returns a spring
func NewSpring(arena *Arena, a, b Handle, restLength, k, c float64) (Spring, error) {
	switch {
	case !arena.Valid(a) || !arena.Valid(b):
		return Spring{}, fmt.Errorf("%w: handle out of range (%d, %d)", ErrInvalidSpring, a, b)
	case a == b:
		return Spring{}, fmt.Errorf("%w: endpoints must be distinct (%d)", ErrInvalidSpring, a)
	case restLength < 0 || !vmath.IsFinite(restLength):
		return Spring{}, fmt.Errorf("%w: rest length %v", ErrInvalidSpring, restLength)
	case !(k > 0) || !vmath.IsFinite(k):
		return Spring{}, fmt.Errorf("%w: stiffness %v", ErrInvalidSpring, k)
	case c < 0 || !vmath.IsFinite(c):
		return Spring{}, fmt.Errorf("%w: damping %v", ErrInvalidSpring, c)
	}
	return Spring{A: a, B: b, RestLength: restLength, K: k, C: c}, nil
}

// ComputeForces adds spring and damping forces to both endpoints
// Must run before either endpoint integrates in the same tick
// Coincident endpoints contribute no spring term
func (s *Spring) ComputeForces(arena *Arena) {
	na := arena.mustNode(s.A)
	nb := arena.mustNode(s.B)

	dir, length := vmath.V3FNormalizeLen(vmath.V3FSub(na.pos, nb.pos))

	var spring vmath.Vec3F
	if length > 0 {
		stretch := length - s.RestLength
		spring = vmath.V3FScale(dir, -s.K*stretch)
	}

	na.AddForce(vmath.V3FSub(spring, vmath.V3FScale(na.vel, s.C)))
	nb.AddForce(vmath.V3FSub(vmath.V3FNeg(spring), vmath.V3FScale(nb.vel, s.C)))
}

// Length returns the current endpoint distance
func (s *Spring) Length(arena *Arena) float64 {
	return vmath.V3FMag(vmath.V3FSub(arena.mustNode(s.A).pos, arena.mustNode(s.B).pos))
}

// Endpoints returns both endpoint positions for renderer resync
func (s *Spring) Endpoints(arena *Arena) (vmath.Vec3F, vmath.Vec3F) {
	return arena.mustNode(s.A).pos, arena.mustNode(s.B).pos
}
