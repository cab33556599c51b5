package audio

import (
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drainStream(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	var peak float64
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v > peak {
					peak = v
				} else if -v > peak {
					peak = -v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return total, peak
}

func TestOscillator_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, w, rate)
		n, peak := drainStream(t, osc, rate.N(time.Second))
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", w, n, rate.N(100*time.Millisecond))
		}
		if peak > 1 || peak == 0 {
			t.Errorf("wave %d: peak %v", w, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: err %v", w, osc.Err())
		}
	}
}

func TestDecay_FallsOff(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewDecay(NewOscillator(0, time.Second, WaveSquare, rate), 0, 100*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(200*time.Millisecond))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d", n)
	}
	if buf[0][0] != 1 {
		t.Errorf("first sample %v, want 1", buf[0][0])
	}
	if last := buf[len(buf)-1][0]; last > 1e-5 {
		t.Errorf("tail %v not attenuated", last)
	}
}

func TestBuildCue_AllFinite(t *testing.T) {
	rate := beep.SampleRate(22050)
	for _, c := range []Cue{CueHit, CueMiss, CueBell} {
		t.Run(c.String(), func(t *testing.T) {
			s := buildCue(c, rate, 1)
			if s == nil {
				t.Fatal("nil streamer")
			}
			n, peak := drainStream(t, s, rate.N(5*time.Second))
			if n == 0 || peak == 0 {
				t.Errorf("silent cue: %d samples peak %v", n, peak)
			}
		})
	}
	if buildCue(Cue(99), rate, 1) != nil {
		t.Error("unknown cue built a streamer")
	}
}

func TestNewVolume_ZeroIsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, rate), 0)
	_, peak := drainStream(t, s, rate.N(time.Second))
	if peak != 0 {
		t.Errorf("peak %v, want silence", peak)
	}
}

func TestCuePlayer_QueueAndWorker(t *testing.T) {
	p := NewCuePlayer()
	if err := p.Init(Config{Enabled: true, SampleRate: 8000, Volume: 0.5}); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var got int
	done := make(chan struct{}, 4)
	p.output = func(beep.Streamer) {
		mu.Lock()
		got++
		mu.Unlock()
		done <- struct{}{}
	}

	if !p.Play(CueHit) || !p.Play(CueBell) {
		t.Fatal("play refused")
	}
	p.startWorker()
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not play queued cues")
		}
	}
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if got != 2 || p.Played() != 2 {
		t.Errorf("output %d, played %d", got, p.Played())
	}
}

func TestCuePlayer_NeverBlocks(t *testing.T) {
	p := NewCuePlayer()
	if err := p.Init(Config{Enabled: true, SampleRate: 8000, Volume: 1}); err != nil {
		t.Fatal(err)
	}
	// No worker: the queue fills and further cues are dropped
	accepted := 0
	for i := 0; i < 100; i++ {
		if p.Play(CueMiss) {
			accepted++
		}
	}
	if accepted != cap(p.queue) || p.Dropped() != int64(100-accepted) {
		t.Errorf("accepted %d dropped %d", accepted, p.Dropped())
	}

	p.SetMuted(true)
	if p.Play(CueHit) {
		t.Error("muted player accepted a cue")
	}
}

func TestCuePlayer_DisabledConfig(t *testing.T) {
	p := NewCuePlayer()
	if err := p.Init(Config{Enabled: false, SampleRate: 44100, Volume: 1}); err != nil {
		t.Fatal(err)
	}
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if !p.Disabled() || p.Play(CueHit) {
		t.Error("disabled player should refuse cues")
	}
	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}

	if err := NewCuePlayer().Init(Config{SampleRate: 0}); err == nil {
		t.Error("zero sample rate accepted")
	}
}
