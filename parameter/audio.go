package parameter

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate (Hz)
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 50 * time.Millisecond

	// AudioVolume is the default mixer volume in beep's log2 scale
	AudioVolume = -0.5

	// CueQueueSize is the number of pending cues before new ones are dropped
	CueQueueSize = 16
)

// Cue Shapes
const (
	// HitCueFreq is the body tone of the hit thwack
	HitCueFreq = 220.0

	// HitCueDuration is the thwack length
	HitCueDuration = 90 * time.Millisecond

	// MissCueFreq is the low thud tone
	MissCueFreq = 70.0

	// MissCueDuration is the thud length
	MissCueDuration = 140 * time.Millisecond

	// BellCueFreq is the round bell pitch
	BellCueFreq = 880.0

	// BellCueDuration is the bell ring-out
	BellCueDuration = 600 * time.Millisecond
)
