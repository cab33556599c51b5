package parameter

// Grid Layout
const (
	// GridRows is the default number of target rows
	GridRows = 3

	// GridCols is the default number of target columns
	GridCols = 3

	// GridSpacing is the distance between neighbouring holes in world units
	GridSpacing = 1.0

	// TargetHalfWidth is half the XY extent of a target box
	TargetHalfWidth = 0.25

	// TargetHeight is the z extent of a target box below its top
	TargetHeight = 0.4
)

// Pop-up Travel
// Target z is the top of the box; the board surface sits between the bounds
const (
	// TargetZMin is the fully hidden height
	TargetZMin = -0.35

	// TargetZMax is the fully raised height
	TargetZMax = 0.05

	// RiseStep is the per-tick climb while Rising (~250 ms full travel at 1 kHz)
	RiseStep = 0.0016

	// FallStep is the per-tick drop while Falling
	FallStep = 0.0016

	// StunStep is the per-tick drop while Stunned, steeper than FallStep
	StunStep = 0.004
)

// Per-tick Transition Probabilities
const (
	// PRise is the chance a Hidden target starts rising (~3 s mean wait)
	PRise = 0.0003

	// PStun is the chance a Raised target ducks on its own (~1.5 s mean exposure)
	PStun = 0.0007

	// PFall is reserved; 0 keeps Falling unreachable
	PFall = 0.0

	// PRecover is the chance a stunned target at zMin returns to Hidden
	PRecover = 0.002
)
