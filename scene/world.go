package scene

import (
	"fmt"
	"math"

	"github.com/lixenwraith/hamstercide/vmath"
)

// Box is an axis-aligned body anchored at its top face center
type Box struct {
	ID        ObjectID
	Tag       string
	Local     vmath.Vec3F
	HalfX     float64
	HalfY     float64
	Height    float64
	Stiffness float64

	min, max vmath.Vec3F
}

// Bounds returns the global AABB computed by the last GlobalPoseUpdate
func (b *Box) Bounds() (vmath.Vec3F, vmath.Vec3F) { return b.min, b.max }

// World is a penalty-contact scene of tagged boxes
// Single owner: the haptic loop
type World struct {
	Origin vmath.Vec3F

	boxes []Box
}

func NewWorld() *World {
	return &World{}
}

// AddBox registers a body and returns its id; global pose is valid immediately
func (w *World) AddBox(tag string, local vmath.Vec3F, halfX, halfY, height, stiffness float64) ObjectID {
	id := ObjectID(len(w.boxes))
	w.boxes = append(w.boxes, Box{
		ID:        id,
		Tag:       tag,
		Local:     local,
		HalfX:     math.Abs(halfX),
		HalfY:     math.Abs(halfY),
		Height:    math.Abs(height),
		Stiffness: stiffness,
	})
	w.updateBox(&w.boxes[id])
	return id
}

func (w *World) Len() int { return len(w.boxes) }

// Box returns nil for an unknown id
func (w *World) Box(id ObjectID) *Box {
	if id < 0 || int(id) >= len(w.boxes) {
		return nil
	}
	return &w.boxes[id]
}

func (w *World) GlobalPoseUpdate() {
	for i := range w.boxes {
		w.updateBox(&w.boxes[i])
	}
}

func (w *World) updateBox(b *Box) {
	top := vmath.V3FAdd(w.Origin, b.Local)
	b.min = vmath.V3F(top.X-b.HalfX, top.Y-b.HalfY, top.Z-b.Height)
	b.max = vmath.V3F(top.X+b.HalfX, top.Y+b.HalfY, top.Z)
}

func (w *World) LocalPosition(id ObjectID) (vmath.Vec3F, error) {
	b := w.Box(id)
	if b == nil {
		return vmath.Vec3F{}, fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	return b.Local, nil
}

func (w *World) SetLocalPosition(id ObjectID, pos vmath.Vec3F) error {
	b := w.Box(id)
	if b == nil {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	if !vmath.V3FIsFinite(pos) {
		return fmt.Errorf("scene: non-finite position for object %d", id)
	}
	b.Local = pos
	return nil
}

func (w *World) Translate(id ObjectID, delta vmath.Vec3F) error {
	b := w.Box(id)
	if b == nil {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	return w.SetLocalPosition(id, vmath.V3FAdd(b.Local, delta))
}

// NearestContact picks the box with the greatest penetration; ties go to the lower id
func (w *World) NearestContact(p Probe) (ContactEvent, bool) {
	if !vmath.V3FIsFinite(p.Center) || !(p.Radius > 0) {
		return ContactEvent{}, false
	}

	best := ContactEvent{Object: NoObject}
	found := false
	for i := range w.boxes {
		b := &w.boxes[i]
		point, normal, depth, ok := sphereBox(p, b.min, b.max)
		if !ok || (found && depth <= best.Depth) {
			continue
		}
		best = ContactEvent{
			Object: b.ID,
			Tag:    b.Tag,
			Point:  point,
			Normal: normal,
			Force:  vmath.V3FScale(normal, b.Stiffness*depth),
			Depth:  depth,
		}
		found = true
	}
	return best, found
}

// sphereBox returns surface point, outward normal and penetration depth of a sphere against an AABB
func sphereBox(p Probe, lo, hi vmath.Vec3F) (vmath.Vec3F, vmath.Vec3F, float64, bool) {
	c := p.Center
	closest := vmath.V3FClampBox(c, lo, hi)
	d := vmath.V3FSub(c, closest)
	n, dist := vmath.V3FNormalizeLen(d)

	if dist > 0 {
		depth := p.Radius - dist
		if depth <= 0 {
			return vmath.Vec3F{}, vmath.Vec3F{}, 0, false
		}
		return closest, n, depth, true
	}

	// Center inside: exit through the nearest face
	faces := [6]struct {
		dist   float64
		normal vmath.Vec3F
	}{
		{c.X - lo.X, vmath.V3F(-1, 0, 0)},
		{hi.X - c.X, vmath.V3F(1, 0, 0)},
		{c.Y - lo.Y, vmath.V3F(0, -1, 0)},
		{hi.Y - c.Y, vmath.V3F(0, 1, 0)},
		{c.Z - lo.Z, vmath.V3F(0, 0, -1)},
		{hi.Z - c.Z, vmath.V3F(0, 0, 1)},
	}
	nearest := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].dist < faces[nearest].dist {
			nearest = i
		}
	}
	f := faces[nearest]
	point := vmath.V3FAdd(c, vmath.V3FScale(f.normal, f.dist))
	return point, f.normal, p.Radius + f.dist, true
}
