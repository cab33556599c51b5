package game

import (
	"sync/atomic"
)

// EventKind is what happened on the haptic loop
type EventKind uint8

const (
	EventHit EventKind = iota + 1
	EventMiss
	EventRoundStart
	EventRoundEnd
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventRoundStart:
		return "round_start"
	case EventRoundEnd:
		return "round_end"
	default:
		return "unknown"
	}
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is a value copy of the session at the moment something was scored
type Event struct {
	Kind   EventKind `json:"kind"`
	Target int       `json:"target"`
	Tick   uint64    `json:"tick"`
	Speed  float64   `json:"speed,omitempty"`
	Round  int64     `json:"round"`
	Hits   int64     `json:"hits"`
	Misses int64     `json:"misses"`
	Score  int64     `json:"score"`
}

// EventQueue carries events off the haptic loop
// Push never blocks; a full queue drops the event and counts it
type EventQueue struct {
	ch      chan Event
	dropped *atomic.Int64
}

// NewEventQueue allocates a queue of size; dropped may be a registry counter or nil
func NewEventQueue(size int, dropped *atomic.Int64) *EventQueue {
	if size <= 0 {
		size = 1
	}
	if dropped == nil {
		dropped = new(atomic.Int64)
	}
	return &EventQueue{ch: make(chan Event, size), dropped: dropped}
}

func (q *EventQueue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

func (q *EventQueue) C() <-chan Event { return q.ch }

func (q *EventQueue) Len() int { return len(q.ch) }

func (q *EventQueue) Dropped() int64 { return q.dropped.Load() }
