package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Metric names shared by the haptic loop (writer) and presentation/spectator readers
const (
	SessionHits    = "session.hits"
	SessionMisses  = "session.misses"
	SessionScore   = "session.score"
	SessionRound   = "session.round"
	RoundActive    = "round.active"
	HapticTicks    = "haptic.ticks"
	HapticRate     = "haptic.rate_hz"
	HapticOverruns = "haptic.overruns"
	HapticForce    = "haptic.force_n"
	GraphicsRate   = "graphics.rate_hz"
	EventsDropped  = "events.dropped"
	DeviceGaps     = "device.gaps"
)

// AtomicFloat stores a float64 as its bit pattern in an atomic.Uint64
// Zero value reads as 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add is a CAS loop; only needed when more than one goroutine writes
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// MetricMap hands out stable pointers per key
// Lookup takes a lock; callers cache the pointer at init and then touch only the atomic
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the pointer for key, allocating on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Range visits metrics in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Registry is the process-wide metrics facade owned by the session context
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Snapshot copies every metric into plain maps for logging or JSON
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Bools.Count()+r.Ints.Count()+r.Floats.Count())
	r.Bools.Range(func(k string, p *atomic.Bool) { out[k] = p.Load() })
	r.Ints.Range(func(k string, p *atomic.Int64) { out[k] = p.Load() })
	r.Floats.Range(func(k string, p *AtomicFloat) { out[k] = p.Get() })
	return out
}
