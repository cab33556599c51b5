package game

import (
	"github.com/lixenwraith/hamstercide/scene"
	"github.com/lixenwraith/hamstercide/vmath"
)

// GrabMode is the manipulation state driven by the grab switch
type GrabMode uint8

const (
	GrabIdle GrabMode = iota
	GrabSelection
)

// Manipulator drags a scene object with the device while the grab switch is held
// Targets are never grabbed: their height belongs to the state machine
type Manipulator struct {
	Switch int

	mode     GrabMode
	selected scene.ObjectID
	offset   vmath.Vec3F
}

func NewManipulator(sw int) *Manipulator {
	return &Manipulator{Switch: sw, selected: scene.NoObject}
}

func (m *Manipulator) Mode() GrabMode { return m.mode }

func (m *Manipulator) Selected() scene.ObjectID { return m.selected }

// Update runs one tick and reports whether the device force must be zeroed
// With no contact at press time the environment object is grabbed
func (m *Manipulator) Update(s *Session, pressed bool, pos vmath.Vec3F, posOK bool, contact scene.ContactEvent, contactOK bool) bool {
	if !pressed {
		m.mode = GrabIdle
		m.selected = scene.NoObject
		return false
	}

	if m.mode == GrabIdle {
		if !posOK {
			return true
		}
		m.mode = GrabSelection
		m.selected = scene.NoObject

		pick := s.Environment
		if contactOK {
			pick = contact.Object
		}
		if _, isTarget := s.TargetFor(pick); isTarget {
			return true
		}
		local, err := s.Scene.LocalPosition(pick)
		if err != nil {
			return true
		}
		m.selected = pick
		m.offset = vmath.V3FSub(local, pos)
		return true
	}

	if m.selected != scene.NoObject && posOK {
		_ = s.Scene.SetLocalPosition(m.selected, vmath.V3FAdd(pos, m.offset))
	}
	return true
}
