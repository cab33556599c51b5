package device

import (
	"errors"

	"github.com/lixenwraith/hamstercide/vmath"
)

// ErrNoSample marks a transient sensor gap; callers skip the dependent work for this tick
var ErrNoSample = errors.New("device sample unavailable")

// Driver is the haptic device as seen from the haptic loop, all values in device-local frame
type Driver interface {
	SampleLocalLinearVelocity() (vmath.Vec3F, error)
	SampleLocalPosition() (vmath.Vec3F, error)
	PushLocalForce(f vmath.Vec3F)
	ReadSwitch(i int) bool
}
