package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/hamstercide/core"
	"github.com/lixenwraith/hamstercide/parameter"
)

// Config controls the audio output
type Config struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"` // linear 0..1
}

func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: parameter.AudioSampleRate,
		Volume:     0.7,
	}
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("audio: sample rate %d", c.SampleRate)
	}
	if !(c.Volume >= 0 && c.Volume <= 1) {
		return fmt.Errorf("audio: volume %v outside [0,1]", c.Volume)
	}
	return nil
}

// CuePlayer plays short cues without ever blocking the caller
// Degrades to a silent no-op when audio is disabled or no backend is available
type CuePlayer struct {
	cfg   Config
	sr    beep.SampleRate
	mixer *beep.Mixer
	queue chan Cue

	// output hands a built cue to the device; replaced in tests
	output func(beep.Streamer)

	disabled atomic.Bool
	muted    atomic.Bool
	speaker  bool
	played   atomic.Int64
	dropped  atomic.Int64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
}

func NewCuePlayer() *CuePlayer {
	p := &CuePlayer{
		cfg:      DefaultConfig(),
		mixer:    &beep.Mixer{},
		queue:    make(chan Cue, parameter.CueQueueSize),
		stopChan: make(chan struct{}),
	}
	p.output = p.toSpeaker
	return p
}

func (p *CuePlayer) Name() string           { return "audio" }
func (p *CuePlayer) Dependencies() []string { return nil }

// Init takes an optional Config as the first arg
func (p *CuePlayer) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(Config); ok {
			p.cfg = cfg
		}
	}
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	p.sr = beep.SampleRate(p.cfg.SampleRate)
	if !p.cfg.Enabled {
		p.disabled.Store(true)
	}
	return nil
}

// Start opens the speaker; a missing backend disables audio instead of failing
func (p *CuePlayer) Start() error {
	if p.started || p.disabled.Load() {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(parameter.AudioBufferDuration)); err != nil {
		log.Printf("[AUDIO] disabled, speaker init failed: %v", err)
		p.disabled.Store(true)
		return nil
	}
	p.speaker = true
	speaker.Play(p.mixer)
	p.startWorker()
	return nil
}

func (p *CuePlayer) startWorker() {
	p.started = true
	p.wg.Add(1)
	core.Go(p.run)
}

func (p *CuePlayer) Stop() error {
	p.stopOnce.Do(func() {
		close(p.stopChan)
		if p.started {
			p.wg.Wait()
		}
		if p.speaker {
			speaker.Lock()
			p.mixer.Clear()
			speaker.Unlock()
			speaker.Close()
		}
	})
	return nil
}

// Play queues a cue; false when muted or the queue is full
func (p *CuePlayer) Play(c Cue) bool {
	if p.disabled.Load() || p.muted.Load() {
		return false
	}
	select {
	case p.queue <- c:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// SetMuted silences new cues at runtime
func (p *CuePlayer) SetMuted(muted bool) { p.muted.Store(muted) }

func (p *CuePlayer) Muted() bool { return p.muted.Load() }

// Disabled reports that no backend is in use
func (p *CuePlayer) Disabled() bool { return p.disabled.Load() }

func (p *CuePlayer) Played() int64  { return p.played.Load() }
func (p *CuePlayer) Dropped() int64 { return p.dropped.Load() }

func (p *CuePlayer) run() {
	defer p.wg.Done()
	for {
		select {
		case c := <-p.queue:
			if s := buildCue(c, p.sr, p.cfg.Volume); s != nil {
				p.output(s)
				p.played.Add(1)
			}
		case <-p.stopChan:
			return
		}
	}
}

func (p *CuePlayer) toSpeaker(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
