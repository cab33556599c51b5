package game

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/device"
	"github.com/lixenwraith/hamstercide/physics"
	"github.com/lixenwraith/hamstercide/scene"
	"github.com/lixenwraith/hamstercide/status"
	"github.com/lixenwraith/hamstercide/target"
	"github.com/lixenwraith/hamstercide/vmath"
)

// Options wires a Session to its collaborators
type Options struct {
	Grid        *target.Grid
	Scene       scene.Adapter
	Environment scene.ObjectID
	Objects     []scene.ObjectID // scene object per target id
	Driver      device.Driver
	Timer       *clock.RoundTimer
	Registry    *status.Registry
	Queue       *EventQueue

	Rules       Rules
	Vibration   Vibration
	ProbeRadius float64
	MaxForce    float64
	GrabSwitch  int

	// Optional soft body stepped every tick
	Tether *physics.SoftBody
}

// Session is the game state owned by the haptic loop
// Counters and target state are published through atomics; readers never lock
type Session struct {
	Grid        *target.Grid
	Scene       scene.Adapter
	Environment scene.ObjectID
	Driver      device.Driver
	Timer       *clock.RoundTimer
	Queue       *EventQueue
	Tether      *physics.SoftBody

	resolver  *Resolver
	manip     *Manipulator
	vibration Vibration

	objects  []scene.ObjectID
	bindings map[scene.ObjectID]int

	probeRadius float64
	maxForce    float64
	grabSwitch  int

	// Haptic-loop only
	tick        uint64
	stillRaised bool
	scoring     bool
	roundLive   bool

	resetReq atomic.Bool

	// Cached metric pointers
	hits     *atomic.Int64
	misses   *atomic.Int64
	score    *atomic.Int64
	round    *atomic.Int64
	ticks    *atomic.Int64
	gaps     *atomic.Int64
	active   *atomic.Bool
	forceMag *status.AtomicFloat
}

func NewSession(o Options) (*Session, error) {
	if o.Grid == nil || o.Scene == nil || o.Driver == nil {
		return nil, errors.New("game: session needs grid, scene and driver")
	}
	if len(o.Objects) != o.Grid.Len() {
		return nil, fmt.Errorf("game: %d scene objects for %d targets", len(o.Objects), o.Grid.Len())
	}
	if err := o.Rules.Validate(); err != nil {
		return nil, err
	}
	if o.Registry == nil {
		o.Registry = status.NewRegistry()
	}
	if o.Queue == nil {
		o.Queue = NewEventQueue(1, o.Registry.Ints.Get(status.EventsDropped))
	}
	if o.Timer == nil {
		o.Timer = clock.NewRoundTimer(0, nil)
	}

	s := &Session{
		Grid:        o.Grid,
		Scene:       o.Scene,
		Environment: o.Environment,
		Driver:      o.Driver,
		Timer:       o.Timer,
		Queue:       o.Queue,
		Tether:      o.Tether,
		resolver:    NewResolver(o.Rules),
		manip:       NewManipulator(o.GrabSwitch),
		vibration:   o.Vibration,
		objects:     o.Objects,
		bindings:    make(map[scene.ObjectID]int, len(o.Objects)),
		probeRadius: o.ProbeRadius,
		maxForce:    o.MaxForce,
		grabSwitch:  o.GrabSwitch,
		stillRaised: true,
		hits:        o.Registry.Ints.Get(status.SessionHits),
		misses:      o.Registry.Ints.Get(status.SessionMisses),
		score:       o.Registry.Ints.Get(status.SessionScore),
		round:       o.Registry.Ints.Get(status.SessionRound),
		ticks:       o.Registry.Ints.Get(status.HapticTicks),
		gaps:        o.Registry.Ints.Get(status.DeviceGaps),
		active:      o.Registry.Bools.Get(status.RoundActive),
		forceMag:    o.Registry.Floats.Get(status.HapticForce),
	}
	for id, obj := range o.Objects {
		if _, dup := s.bindings[obj]; dup {
			return nil, fmt.Errorf("game: scene object %d bound twice", obj)
		}
		s.bindings[obj] = id
	}
	if _, clash := s.bindings[o.Environment]; clash {
		return nil, fmt.Errorf("game: environment object %d is also a target", o.Environment)
	}
	s.resetReq.Store(true)
	return s, nil
}

// TargetFor resolves a scene object to its target id
func (s *Session) TargetFor(obj scene.ObjectID) (int, bool) {
	id, ok := s.bindings[obj]
	return id, ok
}

func (s *Session) Rules() *Rules { return &s.resolver.Rules }

func (s *Session) Manipulator() *Manipulator { return s.manip }

// RequestReset asks for a new round; applied at the next tick boundary
func (s *Session) RequestReset() { s.resetReq.Store(true) }

// Tick runs one haptic step: device sample, target animation, contact, scoring, feedback
func (s *Session) Tick(dt float64) {
	s.tick++
	s.ticks.Store(int64(s.tick))
	s.applyReset()
	s.updateRound()

	pos, posErr := s.Driver.SampleLocalPosition()
	vel, velErr := s.Driver.SampleLocalLinearVelocity()
	posOK, velOK := posErr == nil, velErr == nil
	if !posOK || !velOK {
		s.gaps.Add(1)
	}

	s.Grid.Step()
	for id, obj := range s.objects {
		_ = s.Scene.SetLocalPosition(obj, s.Grid.Target(id).Position())
	}
	s.Scene.GlobalPoseUpdate()

	var contact scene.ContactEvent
	contactOK := false
	if posOK {
		contact, contactOK = s.Scene.NearestContact(scene.Probe{Center: pos, Radius: s.probeRadius})
	}

	out := s.resolver.Resolve(s, Sample{
		Velocity:   vel,
		VelocityOK: velOK,
		Contact:    contact,
		ContactOK:  contactOK,
		DT:         dt,
	})

	held := s.manip.Update(s, s.Driver.ReadSwitch(s.grabSwitch), pos, posOK, contact, contactOK)

	force := out.Force
	if contactOK {
		force = vmath.V3FAdd(force, contact.Force)
	}
	force.Z += s.vibration.Next(dt)

	if s.Tether != nil {
		if posOK {
			force = vmath.V3FAdd(force, s.Tether.ApplyProbe(pos, s.probeRadius))
		}
		s.Tether.Step(dt)
	}

	if held || !vmath.V3FIsFinite(force) {
		force = vmath.Vec3F{}
	}
	force = clampMagnitude(force, s.maxForce)
	s.Driver.PushLocalForce(force)
	s.forceMag.Set(vmath.V3FMag(force))
}

func (s *Session) applyReset() {
	if !s.resetReq.Swap(false) {
		return
	}
	s.hits.Store(0)
	s.misses.Store(0)
	s.score.Store(0)
	s.Grid.Reset()
	s.stillRaised = true
	s.vibration.Stop()

	s.round.Store(s.Timer.Restart())
	s.roundLive = true
	s.push(EventRoundStart, -1, 0)
}

func (s *Session) updateRound() {
	s.scoring = !s.Timer.Expired()
	s.active.Store(s.scoring)
	if s.roundLive && !s.scoring {
		s.roundLive = false
		s.push(EventRoundEnd, -1, 0)
	}
}

func (s *Session) recordHit(id int, speed float64) {
	s.hits.Add(1)
	s.publishScore()
	s.vibration.Start()
	s.push(EventHit, id, speed)
}

func (s *Session) recordMiss(speed float64) {
	s.misses.Add(1)
	s.publishScore()
	s.push(EventMiss, -1, speed)
}

func (s *Session) publishScore() {
	s.score.Store(s.resolver.Rules.Score(s.hits.Load(), s.misses.Load()))
}

func (s *Session) push(kind EventKind, id int, speed float64) {
	s.Queue.Push(Event{
		Kind:   kind,
		Target: id,
		Tick:   s.tick,
		Speed:  speed,
		Round:  s.round.Load(),
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Score:  s.score.Load(),
	})
}

// Reader side, safe from any goroutine

func (s *Session) Hits() int64   { return s.hits.Load() }
func (s *Session) Misses() int64 { return s.misses.Load() }
func (s *Session) Score() int64  { return s.score.Load() }
func (s *Session) Round() int64  { return s.round.Load() }
func (s *Session) Ticks() int64  { return s.ticks.Load() }

// Active reports whether the current round still scores
func (s *Session) Active() bool { return s.active.Load() }

func (s *Session) Remaining() time.Duration { return s.Timer.Remaining() }

func (s *Session) TargetState(id int) target.State {
	if t := s.Grid.Target(id); t != nil {
		return t.State()
	}
	return target.Hidden
}

func (s *Session) TargetZ(id int) float64 {
	if t := s.Grid.Target(id); t != nil {
		return t.Z()
	}
	return s.Grid.Params.ZMin
}

func clampMagnitude(f vmath.Vec3F, limit float64) vmath.Vec3F {
	if !(limit > 0) {
		return f
	}
	n, mag := vmath.V3FNormalizeLen(f)
	if mag <= limit {
		return f
	}
	return vmath.V3FScale(n, limit)
}
