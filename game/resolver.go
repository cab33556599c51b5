package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/hamstercide/parameter"
	"github.com/lixenwraith/hamstercide/scene"
	"github.com/lixenwraith/hamstercide/target"
	"github.com/lixenwraith/hamstercide/vmath"
)

var ErrInvalidRules = errors.New("invalid scoring rules")

// Rules are the strike thresholds and hit response constants
type Rules struct {
	StrikeSpeed   float64 `toml:"strike_speed"`
	LiftSpeed     float64 `toml:"lift_speed"`
	ForceExponent float64 `toml:"force_exponent"`
	ForceFloor    float64 `toml:"force_floor"`
	PenaltyGain   float64 `toml:"penalty_gain"`
	HitPoints     int64   `toml:"hit_points"`
	MissPenalty   int64   `toml:"miss_penalty"`
}

func DefaultRules() Rules {
	return Rules{
		StrikeSpeed:   parameter.StrikeSpeed,
		LiftSpeed:     parameter.LiftSpeed,
		ForceExponent: parameter.ForceExponent,
		ForceFloor:    parameter.ForceFloor,
		PenaltyGain:   parameter.PenaltyGain,
		HitPoints:     parameter.HitPoints,
		MissPenalty:   parameter.MissPenalty,
	}
}

func (r Rules) Validate() error {
	switch {
	case !(r.StrikeSpeed > 0):
		return fmt.Errorf("%w: strike_speed %v", ErrInvalidRules, r.StrikeSpeed)
	case !(r.LiftSpeed >= 0):
		return fmt.Errorf("%w: lift_speed %v", ErrInvalidRules, r.LiftSpeed)
	case !(r.ForceExponent > 0):
		return fmt.Errorf("%w: force_exponent %v", ErrInvalidRules, r.ForceExponent)
	case !(r.ForceFloor >= 0), !(r.PenaltyGain >= 0):
		return fmt.Errorf("%w: force_floor and penalty_gain must be non-negative", ErrInvalidRules)
	case r.HitPoints < 0, r.MissPenalty < 0:
		return fmt.Errorf("%w: score weights must be non-negative", ErrInvalidRules)
	}
	return nil
}

// Score combines the counters with the rule weights
func (r *Rules) Score(hits, misses int64) int64 {
	return hits*r.HitPoints - misses*r.MissPenalty
}

// ReactionMagnitude is max(speed^exponent, floor)
func (r *Rules) ReactionMagnitude(speed float64) float64 {
	return math.Max(math.Pow(math.Abs(speed), r.ForceExponent), r.ForceFloor)
}

// Sample is one tick of resolver input
type Sample struct {
	Velocity   vmath.Vec3F
	VelocityOK bool
	Contact    scene.ContactEvent
	ContactOK  bool
	DT         float64
}

// Outcome is what the resolver did this tick
type Outcome struct {
	Force  vmath.Vec3F
	Target int
	Hit    bool
	Miss   bool
	Struck bool // a target absorbed the strike, scored or not
	Speed  float64
}

// Resolver classifies strikes into hits and misses and produces the reaction force
// Counters, the still-raised flag and the vibration burst live on the Session
type Resolver struct {
	Rules Rules
}

func NewResolver(r Rules) *Resolver {
	return &Resolver{Rules: r}
}

// Resolve runs one tick; missing samples, missing contacts and malformed ids do nothing
func (rv *Resolver) Resolve(s *Session, in Sample) Outcome {
	out := Outcome{Target: -1}
	if !in.VelocityOK || !vmath.V3FIsFinite(in.Velocity) {
		return out
	}
	defer func() {
		if in.Velocity.Z > rv.Rules.LiftSpeed {
			s.stillRaised = true
		}
	}()

	speed := -in.Velocity.Z
	if !(speed > rv.Rules.StrikeSpeed) || !s.scoring || !in.ContactOK {
		return out
	}
	out.Speed = speed

	if in.Contact.Tag != scene.TagHamster {
		if s.stillRaised {
			s.stillRaised = false
			s.recordMiss(speed)
			out.Miss = true
		}
		return out
	}

	id, bound := s.TargetFor(in.Contact.Object)
	if !bound {
		return out
	}
	tg := s.Grid.Target(id)
	if tg == nil || tg.State() == target.Hidden {
		return out
	}

	out.Struck = true
	out.Target = id
	out.Force = vmath.V3F(0, 0, rv.Rules.ReactionMagnitude(speed))

	if dt := in.DT; dt > 0 && vmath.IsFinite(dt) {
		tg.Depress(dt*vmath.V3FMag(in.Contact.Force)*rv.Rules.PenaltyGain, &s.Grid.Params)
	}

	if tg.State() != target.Stunned && !tg.Scored() {
		tg.MarkScored()
		tg.Stun()
		s.stillRaised = false
		s.recordHit(id, speed)
		out.Hit = true
	}
	return out
}
