package parameter

import "time"

// Strike Classification
const (
	// StrikeSpeed is the downward speed above which a contact counts as a strike (units/s)
	StrikeSpeed = 1.5

	// LiftSpeed is the upward speed that re-arms miss detection (units/s)
	LiftSpeed = 0.5
)

// Hit Response
const (
	// ForceExponent shapes reaction force from strike speed: |F| = speed^ForceExponent
	ForceExponent = 1.2

	// ForceFloor is the minimum reaction force magnitude on a hit (N)
	ForceFloor = 1.0

	// PenaltyGain scales contact force into per-tick target depression
	PenaltyGain = 0.05
)

// Score Weights
const (
	// HitPoints is the score awarded per hit
	HitPoints = 10

	// MissPenalty is the score deducted per miss
	MissPenalty = 1
)

// Round
const (
	// RoundDuration is the default length of a round
	RoundDuration = 60 * time.Second
)
