package game

import (
	"testing"

	"github.com/lixenwraith/hamstercide/device"
	"github.com/lixenwraith/hamstercide/scene"
	"github.com/lixenwraith/hamstercide/status"
	"github.com/lixenwraith/hamstercide/target"
	"github.com/lixenwraith/hamstercide/vmath"
)

type fakeScene struct {
	local       map[scene.ObjectID]vmath.Vec3F
	contact     scene.ContactEvent
	contactOK   bool
	poseUpdates int
}

func newFakeScene(n int) *fakeScene {
	fs := &fakeScene{local: make(map[scene.ObjectID]vmath.Vec3F)}
	for i := 0; i <= n; i++ {
		fs.local[scene.ObjectID(i)] = vmath.Vec3F{}
	}
	return fs
}

func (f *fakeScene) GlobalPoseUpdate() { f.poseUpdates++ }

func (f *fakeScene) NearestContact(scene.Probe) (scene.ContactEvent, bool) {
	return f.contact, f.contactOK
}

func (f *fakeScene) LocalPosition(id scene.ObjectID) (vmath.Vec3F, error) {
	p, ok := f.local[id]
	if !ok {
		return vmath.Vec3F{}, scene.ErrUnknownObject
	}
	return p, nil
}

func (f *fakeScene) SetLocalPosition(id scene.ObjectID, pos vmath.Vec3F) error {
	if _, ok := f.local[id]; !ok {
		return scene.ErrUnknownObject
	}
	f.local[id] = pos
	return nil
}

func (f *fakeScene) Translate(id scene.ObjectID, d vmath.Vec3F) error {
	p, err := f.LocalPosition(id)
	if err != nil {
		return err
	}
	return f.SetLocalPosition(id, vmath.V3FAdd(p, d))
}

type fakeDriver struct {
	pos, vel vmath.Vec3F
	gap      bool
	switches [device.MaxSwitches]bool
	pushed   []vmath.Vec3F
}

func (d *fakeDriver) SampleLocalLinearVelocity() (vmath.Vec3F, error) {
	if d.gap {
		return vmath.Vec3F{}, device.ErrNoSample
	}
	return d.vel, nil
}

func (d *fakeDriver) SampleLocalPosition() (vmath.Vec3F, error) {
	if d.gap {
		return vmath.Vec3F{}, device.ErrNoSample
	}
	return d.pos, nil
}

func (d *fakeDriver) PushLocalForce(f vmath.Vec3F) { d.pushed = append(d.pushed, f) }

func (d *fakeDriver) ReadSwitch(i int) bool { return i >= 0 && i < len(d.switches) && d.switches[i] }

func (d *fakeDriver) lastForce() vmath.Vec3F {
	if len(d.pushed) == 0 {
		return vmath.Vec3F{}
	}
	return d.pushed[len(d.pushed)-1]
}

// Object ids in the fake scene: 0 is the board, target i is object i+1
const fakeBoard scene.ObjectID = 0

func fakeObject(id int) scene.ObjectID { return scene.ObjectID(id + 1) }

type fixture struct {
	s      *Session
	scene  *fakeScene
	driver *fakeDriver
	reg    *status.Registry
}

// newFixture builds a session whose targets never move on their own
func newFixture(t *testing.T) *fixture {
	t.Helper()
	p := target.DefaultParams()
	p.PRise, p.PStun, p.PFall, p.PRecover = 0, 0, 0, 0
	g, err := target.NewGrid(3, 3, 1, p, 1)
	if err != nil {
		t.Fatal(err)
	}

	objects := make([]scene.ObjectID, g.Len())
	for i := range objects {
		objects[i] = fakeObject(i)
	}
	reg := status.NewRegistry()
	fs := newFakeScene(g.Len())
	fd := &fakeDriver{}

	s, err := NewSession(Options{
		Grid:        g,
		Scene:       fs,
		Environment: fakeBoard,
		Objects:     objects,
		Driver:      fd,
		Registry:    reg,
		Queue:       NewEventQueue(64, reg.Ints.Get(status.EventsDropped)),
		Rules:       DefaultRules(),
		Vibration:   DefaultVibration(),
		ProbeRadius: 0.1,
		MaxForce:    8,
	})
	if err != nil {
		t.Fatal(err)
	}
	s.applyReset()
	s.updateRound()
	drain(s.Queue)
	return &fixture{s: s, scene: fs, driver: fd, reg: reg}
}

// setTarget places a target in a given state and height through the snapshot path
func (f *fixture) setTarget(t *testing.T, id int, st target.State, z float64) {
	t.Helper()
	snap := f.s.Grid.Snapshot()
	snap.Targets[id].State = st
	snap.Targets[id].Z = z
	snap.Targets[id].Scored = false
	if err := f.s.Grid.Restore(snap); err != nil {
		t.Fatal(err)
	}
}

func drain(q *EventQueue) []Event {
	var out []Event
	for {
		select {
		case ev := <-q.C():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func strike(speed float64) vmath.Vec3F { return vmath.V3F(0, 0, -speed) }

func hamsterContact(obj scene.ObjectID, force float64) scene.ContactEvent {
	return scene.ContactEvent{
		Object: obj,
		Tag:    scene.TagHamster,
		Normal: vmath.V3F(0, 0, 1),
		Force:  vmath.V3F(0, 0, force),
		Depth:  0.01,
	}
}

func boardContact() scene.ContactEvent {
	return scene.ContactEvent{
		Object: fakeBoard,
		Tag:    scene.TagBoard,
		Normal: vmath.V3F(0, 0, 1),
		Force:  vmath.V3F(0, 0, 2),
		Depth:  0.005,
	}
}
