package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/hamstercide/vmath"
)

// ErrInvalidMass is returned for non-positive or non-finite node masses
var ErrInvalidMass = errors.New("physics: mass must be positive and finite")

// PointMass is a single particle integrated with explicit (semi-implicit) Euler
// Fixed nodes are anchors: they never move and discard applied forces
type PointMass struct {
	pos   vmath.Vec3F
	vel   vmath.Vec3F
	force vmath.Vec3F // Pending sum, cleared by every Integrate call

	mass  float64
	drag  float64 // Linear air drag coefficient (cair)
	fixed bool

	// Radius is the contact sphere used by SpherePenalty, not part of integration
	Radius float64
}

// NewPointMass creates a node at rest
func NewPointMass(pos vmath.Vec3F, mass, drag float64, fixed bool) (*PointMass, error) {
	pm := &PointMass{}
	if err := pm.init(pos, mass, drag, fixed); err != nil {
		return nil, err
	}
	return pm, nil
}

func (pm *PointMass) init(pos vmath.Vec3F, mass, drag float64, fixed bool) error {
	if !(mass > 0) || !vmath.IsFinite(mass) {
		return fmt.Errorf("%w: got %v", ErrInvalidMass, mass)
	}
	if drag < 0 || !vmath.IsFinite(drag) {
		return fmt.Errorf("physics: drag must be non-negative, got %v", drag)
	}
	if !vmath.V3FIsFinite(pos) {
		return fmt.Errorf("physics: non-finite position %v", pos)
	}
	*pm = PointMass{
		pos:   pos,
		mass:  mass,
		drag:  drag,
		fixed: fixed,
	}
	return nil
}

// AddForce accumulates f into the pending sum; ignored for fixed nodes
func (pm *PointMass) AddForce(f vmath.Vec3F) {
	if pm.fixed {
		return
	}
	vmath.V3FAddInPlace(&pm.force, f)
}

// Integrate advances one step: a = (F - cair*v)/m; v += a*dt; p += v*dt
// Position uses the updated velocity. Skipped for fixed nodes and for dt <= 0 or non-finite dt
// The force accumulator is cleared whenever the step runs
func (pm *PointMass) Integrate(dt float64) {
	if pm.fixed || !(dt > 0) || !vmath.IsFinite(dt) {
		return
	}

	accel := vmath.V3FScale(vmath.V3FSub(pm.force, vmath.V3FScale(pm.vel, pm.drag)), 1.0/pm.mass)
	pm.vel = vmath.V3FAdd(pm.vel, vmath.V3FScale(accel, dt))
	pm.pos = vmath.V3FAdd(pm.pos, vmath.V3FScale(pm.vel, dt))
	pm.force = vmath.Vec3F{}
}

func (pm *PointMass) Position() vmath.Vec3F { return pm.pos }
func (pm *PointMass) Velocity() vmath.Vec3F { return pm.vel }
func (pm *PointMass) Mass() float64        { return pm.mass }
func (pm *PointMass) Fixed() bool          { return pm.fixed }

// PendingForce returns the accumulated, not yet integrated force
func (pm *PointMass) PendingForce() vmath.Vec3F { return pm.force }

// SetVelocity overrides velocity (initial conditions, impulses); ignored for fixed nodes
func (pm *PointMass) SetVelocity(v vmath.Vec3F) {
	if pm.fixed {
		return
	}
	pm.vel = v
}
