package parameter

import "time"

// Presentation Timing
const (
	// FrameUpdateInterval is the HUD refresh interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// BarSpringFrequency is the harmonica angular frequency for bar smoothing
	BarSpringFrequency = 8.0

	// BarSpringDamping is the harmonica damping ratio for bar smoothing
	BarSpringDamping = 0.9

	// CellWidth is the terminal columns per grid cell
	CellWidth = 12

	// CellHeight is the terminal rows per grid cell
	CellHeight = 6
)

// Simulated Swing
const (
	// SwingDuration is the time for a full down-and-up strike
	SwingDuration = 300 * time.Millisecond

	// SwingDepth is how far below rest the probe travels
	SwingDepth = 0.5

	// ProbeRestZ is the resting hover height of the probe center
	ProbeRestZ = 0.3
)

// Spectator Feed
const (
	// SpectatorInterval is the snapshot broadcast period (20 Hz)
	SpectatorInterval = 50 * time.Millisecond

	// SpectatorClientBuffer is the per-client send queue length
	SpectatorClientBuffer = 8

	// SpectatorWriteWait bounds a single websocket write
	SpectatorWriteWait = 2 * time.Second
)
