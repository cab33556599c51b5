package game

import (
	"math"

	"github.com/lixenwraith/hamstercide/parameter"
)

// Vibration is the hit burst: amplitude*sin(2*pi*f*t) on z, decaying linearly to zero
type Vibration struct {
	Ticks     int     `toml:"ticks"`
	Frequency float64 `toml:"frequency"`
	Amplitude float64 `toml:"amplitude"`

	remaining int
	elapsed   float64
}

func DefaultVibration() Vibration {
	return Vibration{
		Ticks:     parameter.VibrationTicks,
		Frequency: parameter.VibrationFrequency,
		Amplitude: parameter.VibrationAmplitude,
	}
}

// Start restarts the burst from full amplitude
func (v *Vibration) Start() {
	if v.Ticks <= 0 {
		return
	}
	v.remaining = v.Ticks
	v.elapsed = 0
}

func (v *Vibration) Stop() { v.remaining = 0 }

func (v *Vibration) Active() bool { return v.remaining > 0 }

// Next returns this tick's z force and advances the burst
func (v *Vibration) Next(dt float64) float64 {
	if v.remaining <= 0 {
		return 0
	}
	envelope := float64(v.remaining) / float64(v.Ticks)
	f := v.Amplitude * envelope * math.Sin(2*math.Pi*v.Frequency*v.elapsed)
	v.remaining--
	if dt > 0 {
		v.elapsed += dt
	}
	return f
}
