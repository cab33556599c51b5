package engine

import (
	"errors"
	"math"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/status"
)

type countTicker struct {
	n      atomic.Int64
	badDT  atomic.Int64
	onTick func(n int64)
}

func (c *countTicker) Tick(dt float64) {
	if math.Abs(dt-0.001) > 1e-12 {
		c.badDT.Add(1)
	}
	n := c.n.Add(1)
	if c.onTick != nil {
		c.onTick(n)
	}
}

func mockLoop(tk Ticker, reg *status.Registry) (*HapticLoop, *clock.MockTimeProvider) {
	mock := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	hl := NewHapticLoop(tk, LoopOptions{
		Interval: time.Millisecond,
		Source:   mock,
		Registry: reg,
		Sleep: func(d time.Duration) {
			mock.Advance(d)
			runtime.Gosched()
		},
	})
	return hl, mock
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHapticLoop_FixedCadence(t *testing.T) {
	reg := status.NewRegistry()
	tk := &countTicker{}
	hl, mock := mockLoop(tk, reg)
	start := mock.Now()

	hl.Start()
	hl.Start()
	waitFor(t, func() bool { return tk.n.Load() >= 1000 })

	hl.Stop()
	if !hl.WaitFinished(time.Second) {
		t.Fatal("loop did not finish")
	}
	if !hl.Finished() || hl.Running() {
		t.Error("flags not settled after stop")
	}

	n := tk.n.Load()
	time.Sleep(5 * time.Millisecond)
	if tk.n.Load() != n {
		t.Error("ticked after finish")
	}
	if tk.badDT.Load() != 0 {
		t.Errorf("%d ticks with wrong dt", tk.badDT.Load())
	}

	elapsed := mock.Now().Sub(start)
	if elapsed < time.Duration(n)*time.Millisecond || elapsed > time.Duration(n+1)*time.Millisecond {
		t.Errorf("%d ticks over %v of clock time", n, elapsed)
	}
	if rate := reg.Floats.Get(status.HapticRate).Get(); math.Abs(rate-1000) > 5 {
		t.Errorf("rate %v, want ~1000", rate)
	}
}

func TestHapticLoop_DropsBacklogWhenFarBehind(t *testing.T) {
	reg := status.NewRegistry()
	tk := &countTicker{}
	hl, mock := mockLoop(tk, reg)
	start := mock.Now()

	// Tick 10 stalls for 50 ms of clock time
	tk.onTick = func(n int64) {
		if n == 10 {
			mock.Advance(50 * time.Millisecond)
		}
	}

	hl.Start()
	waitFor(t, func() bool { return tk.n.Load() >= 100 })
	hl.Stop()
	if !hl.WaitFinished(time.Second) {
		t.Fatal("loop did not finish")
	}

	if got := reg.Ints.Get(status.HapticOverruns).Load(); got != 1 {
		t.Errorf("overruns = %d, want 1", got)
	}
	elapsed := mock.Now().Sub(start)
	if n := tk.n.Load(); elapsed < time.Duration(n+40)*time.Millisecond {
		t.Errorf("backlog replayed: %d ticks in %v", n, elapsed)
	}
}

func TestHapticLoop_WaitFinishedTimesOut(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	tk := &countTicker{onTick: func(n int64) {
		if n == 1 {
			entered <- struct{}{}
			<-release
		}
	}}
	hl, _ := mockLoop(tk, nil)
	svc := NewService(hl)
	svc.Timeout = 20 * time.Millisecond

	if err := svc.Start(); err != nil {
		t.Fatal(err)
	}
	<-entered

	// Stop cannot interrupt the tick in progress
	if err := svc.Stop(); !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("stop err = %v, want timeout", err)
	}
	close(release)
	if !hl.WaitFinished(time.Second) {
		t.Fatal("loop did not finish after tick returned")
	}
	if tk.n.Load() != 1 {
		t.Errorf("ticks = %d, want 1", tk.n.Load())
	}
}

func TestHapticLoop_NeverStarted(t *testing.T) {
	hl := NewHapticLoop(&countTicker{}, LoopOptions{})
	hl.Stop()
	if !hl.WaitFinished(0) {
		t.Error("unstarted loop should count as finished")
	}
	if hl.Interval() != time.Millisecond {
		t.Errorf("default interval %v", hl.Interval())
	}
}
