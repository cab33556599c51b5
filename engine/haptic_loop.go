package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/core"
	"github.com/lixenwraith/hamstercide/parameter"
	"github.com/lixenwraith/hamstercide/status"
)

var ErrShutdownTimeout = errors.New("haptic loop did not finish in time")

// Ticker is the per-tick work driven by the loop
type Ticker interface {
	Tick(dt float64)
}

// LoopOptions configures a HapticLoop; zero fields take parameter defaults
type LoopOptions struct {
	Interval  time.Duration
	MaxBehind time.Duration
	Source    clock.TimeProvider
	Registry  *status.Registry

	// Realtime pins the loop to an OS thread and asks for a higher scheduling priority
	Realtime bool

	// Sleep defaults to time.Sleep; tests advance a mock clock instead
	Sleep func(time.Duration)
}

// HapticLoop runs a Ticker on a fixed cadence with deadline drift correction
// Shutdown is cooperative: Stop clears the run flag, the loop observes it at the
// top of the next iteration and raises the finished flag
type HapticLoop struct {
	ticker    Ticker
	source    clock.TimeProvider
	interval  time.Duration
	maxBehind time.Duration
	realtime  bool
	sleep     func(time.Duration)

	nextTickDeadline time.Time // Next tick deadline for drift correction

	started  atomic.Bool
	running  atomic.Bool
	finished atomic.Bool

	// Cached metric pointers
	freq         *status.FrequencyCounter
	statOverruns *atomic.Int64
}

func NewHapticLoop(ticker Ticker, o LoopOptions) *HapticLoop {
	if o.Interval <= 0 {
		o.Interval = parameter.HapticInterval
	}
	if o.MaxBehind <= 0 {
		o.MaxBehind = 2 * o.Interval
	}
	if o.Source == nil {
		o.Source = clock.NewMonotonicTimeProvider()
	}
	if o.Registry == nil {
		o.Registry = status.NewRegistry()
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	return &HapticLoop{
		ticker:       ticker,
		source:       o.Source,
		interval:     o.Interval,
		maxBehind:    o.MaxBehind,
		realtime:     o.Realtime,
		sleep:        o.Sleep,
		freq:         status.NewFrequencyCounter(parameter.FrequencyWindow, o.Registry.Floats.Get(status.HapticRate)),
		statOverruns: o.Registry.Ints.Get(status.HapticOverruns),
	}
}

func (hl *HapticLoop) Interval() time.Duration { return hl.interval }

// Start launches the loop once; later calls are no-ops
func (hl *HapticLoop) Start() {
	if !hl.started.CompareAndSwap(false, true) {
		return
	}
	hl.running.Store(true)
	core.Go(hl.loop)
}

// Stop clears the run flag; it never interrupts a tick in progress
func (hl *HapticLoop) Stop() {
	hl.running.Store(false)
}

func (hl *HapticLoop) Running() bool { return hl.running.Load() }

// Finished reports that the loop goroutine has exited
func (hl *HapticLoop) Finished() bool { return hl.finished.Load() }

// WaitFinished polls the finished flag until it is set or timeout elapses
// A loop that was never started counts as finished
func (hl *HapticLoop) WaitFinished(timeout time.Duration) bool {
	if !hl.started.Load() {
		return true
	}
	deadline := time.Now().Add(timeout)
	for !hl.finished.Load() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(parameter.HapticShutdownPoll)
	}
	return true
}

// Rate is the measured tick rate in Hz
func (hl *HapticLoop) Rate() float64 { return hl.freq.Frequency() }

func (hl *HapticLoop) loop() {
	defer hl.finished.Store(true)

	if hl.realtime {
		release, err := raisePriority()
		if err != nil {
			log.Printf("[HAPTIC] priority not raised: %v", err)
		}
		defer release()
	}

	dt := hl.interval.Seconds()
	hl.nextTickDeadline = hl.source.Now().Add(hl.interval)

	for hl.running.Load() {
		now := hl.source.Now()
		if now.Before(hl.nextTickDeadline) {
			hl.sleep(hl.nextTickDeadline.Sub(now))
			continue
		}

		hl.ticker.Tick(dt)
		hl.freq.Signal(now, 1)

		hl.nextTickDeadline = hl.nextTickDeadline.Add(hl.interval)
		if now.Sub(hl.nextTickDeadline) > hl.maxBehind {
			// Too far behind: drop the backlog instead of bursting
			hl.statOverruns.Add(1)
			hl.nextTickDeadline = now.Add(hl.interval)
		}
	}
}

// Service adapts a HapticLoop to the service lifecycle
type Service struct {
	Loop    *HapticLoop
	Timeout time.Duration
	deps    []string
}

func NewService(loop *HapticLoop, deps ...string) *Service {
	return &Service{Loop: loop, Timeout: parameter.HapticShutdownTimeout, deps: deps}
}

func (s *Service) Name() string           { return "haptic" }
func (s *Service) Dependencies() []string { return s.deps }
func (s *Service) Init(args ...any) error { return nil }

func (s *Service) Start() error {
	s.Loop.Start()
	return nil
}

// Stop clears the run flag and waits for the loop to observe it
func (s *Service) Stop() error {
	s.Loop.Stop()
	if !s.Loop.WaitFinished(s.Timeout) {
		return fmt.Errorf("%w after %v", ErrShutdownTimeout, s.Timeout)
	}
	return nil
}
