package status

import "time"

// FrequencyCounter measures how often Signal is called, averaged over a window
// Single writer; the published rate is readable from any goroutine
type FrequencyCounter struct {
	window      time.Duration
	windowStart time.Time
	count       int

	rate *AtomicFloat
}

// NewFrequencyCounter publishes into out; nil allocates a private gauge
func NewFrequencyCounter(window time.Duration, out *AtomicFloat) *FrequencyCounter {
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	if out == nil {
		out = new(AtomicFloat)
	}
	return &FrequencyCounter{window: window, rate: out}
}

// Signal records n events at now and republishes the rate once per window
func (fc *FrequencyCounter) Signal(now time.Time, n int) {
	if fc.windowStart.IsZero() {
		fc.windowStart = now
	}
	fc.count += n

	elapsed := now.Sub(fc.windowStart)
	if elapsed < fc.window {
		return
	}
	fc.rate.Set(float64(fc.count) / elapsed.Seconds())
	fc.count = 0
	fc.windowStart = now
}

// Frequency returns the last published rate in Hz
func (fc *FrequencyCounter) Frequency() float64 {
	return fc.rate.Get()
}
