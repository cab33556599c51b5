package vmath

// Source supplies uniform draws in [0, 1)
// Injected wherever the game rolls dice so tests can script the sequence
type Source interface {
	Float64() float64
}

// FastRand is a xorshift64 generator, not safe for concurrent use
// Owned by a single loop; the haptic loop keeps its own instance
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns the top 53 bits scaled into [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// State exposes the generator state for snapshots
func (r *FastRand) State() uint64 {
	return r.state
}

// SetState restores a state captured by State
func (r *FastRand) SetState(s uint64) {
	if s == 0 {
		s = 1
	}
	r.state = s
}

// Bernoulli draws once from src and reports success with probability p
// p <= 0 never succeeds and consumes no draw; p >= 1 always succeeds and consumes no draw
func Bernoulli(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}
