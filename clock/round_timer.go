package clock

import (
	"sync/atomic"
	"time"
)

// RoundTimer counts a round down from a fixed duration
// Restart is called by the haptic loop; Remaining and Expired are safe from any goroutine
type RoundTimer struct {
	duration time.Duration
	source   TimeProvider

	deadline atomic.Int64 // unix nanos, 0 before the first round
	round    atomic.Int64
}

// NewRoundTimer returns a stopped timer; duration <= 0 means rounds never expire
func NewRoundTimer(duration time.Duration, source TimeProvider) *RoundTimer {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &RoundTimer{duration: duration, source: source}
}

func (rt *RoundTimer) Duration() time.Duration { return rt.duration }

// Restart begins a new round from now and returns its number
func (rt *RoundTimer) Restart() int64 {
	rt.deadline.Store(rt.source.Now().Add(rt.duration).UnixNano())
	return rt.round.Add(1)
}

// Round is the number of the current round, 0 before the first Restart
func (rt *RoundTimer) Round() int64 { return rt.round.Load() }

// Remaining is the time left, clamped at zero
func (rt *RoundTimer) Remaining() time.Duration {
	if rt.duration <= 0 {
		return 0
	}
	d := rt.deadline.Load()
	if d == 0 {
		return 0
	}
	left := time.Duration(d - rt.source.Now().UnixNano())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the current round is over; unlimited rounds never expire
func (rt *RoundTimer) Expired() bool {
	if rt.duration <= 0 {
		return rt.round.Load() == 0
	}
	d := rt.deadline.Load()
	return d == 0 || rt.source.Now().UnixNano() >= d
}
