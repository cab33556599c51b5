package game

import (
	"log"
	"sync"

	"github.com/lixenwraith/hamstercide/core"
)

// EventSink consumes events off the haptic loop; sinks may block briefly, the loop never waits on them
type EventSink func(Event)

// EventPump drains the queue and fans each event out to every sink in registration order
type EventPump struct {
	queue *EventQueue
	sinks []EventSink

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
}

func NewEventPump(q *EventQueue, sinks ...EventSink) *EventPump {
	return &EventPump{queue: q, sinks: sinks, stopChan: make(chan struct{})}
}

// AddSink must be called before Start
func (p *EventPump) AddSink(s EventSink) {
	p.sinks = append(p.sinks, s)
}

// LogSink writes one line per event to the standard logger
func LogSink(ev Event) {
	switch ev.Kind {
	case EventHit:
		log.Printf("[GAME] hit target=%d speed=%.2f tick=%d score=%d", ev.Target, ev.Speed, ev.Tick, ev.Score)
	case EventMiss:
		log.Printf("[GAME] miss speed=%.2f tick=%d score=%d", ev.Speed, ev.Tick, ev.Score)
	case EventRoundStart:
		log.Printf("[GAME] round %d started", ev.Round)
	case EventRoundEnd:
		log.Printf("[GAME] round %d over: hits=%d misses=%d score=%d", ev.Round, ev.Hits, ev.Misses, ev.Score)
	}
}

func (p *EventPump) Name() string           { return "events" }
func (p *EventPump) Dependencies() []string { return nil }
func (p *EventPump) Init(args ...any) error { return nil }

func (p *EventPump) Start() error {
	if p.started {
		return nil
	}
	p.started = true
	p.wg.Add(1)
	core.Go(p.run)
	return nil
}

// Stop drains what is already queued then returns
func (p *EventPump) Stop() error {
	p.stopOnce.Do(func() {
		close(p.stopChan)
		if p.started {
			p.wg.Wait()
		}
	})
	return nil
}

func (p *EventPump) run() {
	defer p.wg.Done()
	for {
		select {
		case ev := <-p.queue.C():
			p.dispatch(ev)
		case <-p.stopChan:
			for {
				select {
				case ev := <-p.queue.C():
					p.dispatch(ev)
				default:
					return
				}
			}
		}
	}
}

func (p *EventPump) dispatch(ev Event) {
	for _, s := range p.sinks {
		s(ev)
	}
}
