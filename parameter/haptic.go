package parameter

import "time"

// Haptic Loop Timing
const (
	// HapticRateHz is the target haptic update rate
	HapticRateHz = 1000

	// HapticInterval is the tick period derived from HapticRateHz
	HapticInterval = time.Second / HapticRateHz

	// HapticMaxBehind is how far the loop may fall behind before it drops ticks and resyncs
	HapticMaxBehind = 2 * HapticInterval

	// HapticShutdownTimeout bounds how long WaitFinished polls for the loop to exit
	HapticShutdownTimeout = 500 * time.Millisecond

	// HapticShutdownPoll is the polling period while waiting for the finished flag
	HapticShutdownPoll = time.Millisecond

	// FrequencyWindow is the averaging window for the rate counters
	FrequencyWindow = 500 * time.Millisecond
)

// Device Output
const (
	// MaxDeviceForce clamps the magnitude pushed to the driver (N)
	MaxDeviceForce = 8.0

	// ProbeRadius is the radius of the probe sphere in world units
	ProbeRadius = 0.1
)

// Vibration Burst
const (
	// VibrationTicks is the length of a hit burst in haptic ticks
	VibrationTicks = 60

	// VibrationFrequency is the burst oscillation frequency (Hz)
	VibrationFrequency = 150.0

	// VibrationAmplitude is the initial burst amplitude along z (N), decays linearly
	VibrationAmplitude = 1.5
)

// Event Fan-out
const (
	// EventQueueSize is the capacity of the haptic-to-consumers event queue
	EventQueueSize = 256
)
