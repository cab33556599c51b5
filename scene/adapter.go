package scene

import (
	"errors"

	"github.com/lixenwraith/hamstercide/vmath"
)

var ErrUnknownObject = errors.New("unknown scene object")

// ObjectID identifies a body in the scene
type ObjectID int

const NoObject ObjectID = -1

// Object tags
const (
	TagHamster = "hamster"
	TagBoard   = "board"
)

// Probe is the sphere proxy of the haptic tool at its global position
type Probe struct {
	Center vmath.Vec3F
	Radius float64
}

// ContactEvent is the deepest overlap between the probe and a scene object
// Normal points from the object toward the probe; Force is the reaction on the probe
type ContactEvent struct {
	Object ObjectID
	Tag    string
	Point  vmath.Vec3F
	Normal vmath.Vec3F
	Force  vmath.Vec3F
	Depth  float64
}

// Adapter is what the haptic loop needs from a physics backend
type Adapter interface {
	// GlobalPoseUpdate propagates local positions into global poses for this tick
	GlobalPoseUpdate()

	// NearestContact reports the deepest contact with the probe, false when none
	NearestContact(p Probe) (ContactEvent, bool)

	LocalPosition(id ObjectID) (vmath.Vec3F, error)
	SetLocalPosition(id ObjectID, pos vmath.Vec3F) error
	Translate(id ObjectID, delta vmath.Vec3F) error
}
