package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/hamstercide/parameter"
)

// Cue is a short game sound
type Cue uint8

const (
	CueHit Cue = iota
	CueMiss
	CueBell
)

func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueMiss:
		return "miss"
	case CueBell:
		return "bell"
	}
	return "unknown"
}

// buildCue synthesises a finite streamer for c at the given gain
func buildCue(c Cue, sr beep.SampleRate, gain float64) beep.Streamer {
	switch c {
	case CueHit:
		// Thwack: noise click over a short body tone
		click := NewDecay(NewOscillator(0, 25*time.Millisecond, WaveNoise, sr), time.Millisecond, 20*time.Millisecond, sr)
		body := NewDecay(NewOscillator(parameter.HitCueFreq, parameter.HitCueDuration, WaveSquare, sr), 2*time.Millisecond, parameter.HitCueDuration, sr)
		return newVolume(beep.Mix(newVolume(click, 0.5), newVolume(body, 0.35)), gain)

	case CueMiss:
		thud := NewDecay(NewOscillator(parameter.MissCueFreq, parameter.MissCueDuration, WaveSine, sr), 5*time.Millisecond, parameter.MissCueDuration, sr)
		return newVolume(thud, gain*0.8)

	case CueBell:
		n := sr.N(parameter.BellCueDuration)
		fund, err := generators.SineTone(sr, parameter.BellCueFreq)
		if err != nil {
			return beep.Take(n, NewOscillator(parameter.BellCueFreq, parameter.BellCueDuration, WaveSine, sr))
		}
		over, err := generators.SineTone(sr, parameter.BellCueFreq*2.76)
		if err != nil {
			over = NewOscillator(0, parameter.BellCueDuration, WaveSine, sr)
		}
		mixed := beep.Mix(
			newVolume(beep.Take(n, fund), 0.6),
			newVolume(beep.Take(n, over), 0.25),
		)
		return newVolume(NewDecay(mixed, 3*time.Millisecond, parameter.BellCueDuration, sr), gain)
	}
	return nil
}
