package main

import (
	"fmt"
	"log"

	"github.com/lixenwraith/hamstercide/audio"
	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/config"
	"github.com/lixenwraith/hamstercide/device"
	"github.com/lixenwraith/hamstercide/engine"
	"github.com/lixenwraith/hamstercide/game"
	"github.com/lixenwraith/hamstercide/parameter"
	"github.com/lixenwraith/hamstercide/physics"
	"github.com/lixenwraith/hamstercide/scene"
	"github.com/lixenwraith/hamstercide/service"
	"github.com/lixenwraith/hamstercide/spectator"
	"github.com/lixenwraith/hamstercide/status"
	"github.com/lixenwraith/hamstercide/target"
)

// app is the assembled process: one session, its collaborators and services
type app struct {
	cfg config.Config

	registry *status.Registry
	grid     *target.Grid
	world    *scene.World
	driver   *device.SimDriver
	session  *game.Session
	loop     *engine.HapticLoop

	pump      *game.EventPump
	player    *audio.CuePlayer
	spectator *spectator.Service
	hub       *service.Hub
}

// newApp wires every component from cfg
// source drives the round timer, the driver swing and the loop deadlines
// With manual set the haptic loop is not registered and the caller ticks the session itself
func newApp(cfg config.Config, source clock.TimeProvider, manual bool) (*app, error) {
	a := &app{cfg: cfg, registry: status.NewRegistry()}

	grid, err := target.NewGrid(cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.Spacing, cfg.Target, cfg.Grid.Seed)
	if err != nil {
		return nil, err
	}
	a.grid = grid

	a.world = scene.NewWorld()
	env, objects := game.BuildBoard(a.world, grid, cfg.Board, cfg.Grid.Spacing)

	a.driver = device.NewSimDriver(cfg.Swing.Params(), source)
	a.driver.MoveTo(0, 0)

	var tether *physics.SoftBody
	if cfg.SoftBody {
		if tether, err = game.NewTether(grid, cfg.Grid.Spacing); err != nil {
			return nil, fmt.Errorf("tether: %w", err)
		}
	}

	queue := game.NewEventQueue(parameter.EventQueueSize, a.registry.Ints.Get(status.EventsDropped))
	a.session, err = game.NewSession(game.Options{
		Grid:        grid,
		Scene:       a.world,
		Environment: env,
		Objects:     objects,
		Driver:      a.driver,
		Timer:       clock.NewRoundTimer(cfg.Round.Duration.Std(), source),
		Registry:    a.registry,
		Queue:       queue,
		Rules:       cfg.Rules,
		Vibration:   cfg.Vibration,
		ProbeRadius: cfg.Haptic.ProbeRadius,
		MaxForce:    cfg.Haptic.MaxForce,
		GrabSwitch:  0,
		Tether:      tether,
	})
	if err != nil {
		return nil, err
	}

	a.loop = engine.NewHapticLoop(a.session, engine.LoopOptions{
		Interval:  cfg.HapticInterval(),
		MaxBehind: parameter.HapticMaxBehind,
		Source:    source,
		Registry:  a.registry,
		Realtime:  cfg.Haptic.Realtime,
	})

	a.player = audio.NewCuePlayer()
	a.pump = game.NewEventPump(queue, game.LogSink, cueSink(a.player))

	specOpts := spectator.DefaultOptions(cfg.Spectator.Addr)
	specOpts.Interval = cfg.Spectator.Interval.Std()
	a.spectator = spectator.NewService(specOpts, spectator.SessionFrames(a.session, a.registry), "events")
	a.pump.AddSink(a.spectator.Sink)

	a.hub = service.NewHub()
	if err := a.hub.Register(a.player, cfg.Audio); err != nil {
		return nil, err
	}
	if err := a.hub.Register(a.pump); err != nil {
		return nil, err
	}
	if !manual {
		if err := a.hub.Register(engine.NewService(a.loop, "events")); err != nil {
			return nil, err
		}
	}
	if err := a.hub.Register(a.spectator); err != nil {
		return nil, err
	}
	return a, nil
}

// cueSink maps game events to sound cues
func cueSink(p *audio.CuePlayer) game.EventSink {
	return func(ev game.Event) {
		switch ev.Kind {
		case game.EventHit:
			p.Play(audio.CueHit)
		case game.EventMiss:
			p.Play(audio.CueMiss)
		case game.EventRoundEnd:
			p.Play(audio.CueBell)
		}
	}
}

// start brings services up in dependency order
func (a *app) start() error {
	if err := a.hub.InitAll(); err != nil {
		return err
	}
	if err := a.hub.StartAll(); err != nil {
		return err
	}
	order, _ := a.hub.Order()
	log.Printf("[MAIN] services started: %v", order)
	return nil
}

func (a *app) stop() {
	if err := a.hub.StopAll(); err != nil {
		log.Printf("[MAIN] shutdown: %v", err)
	}
}

// summary is the final counter line
func (a *app) summary() string {
	s := a.session
	return fmt.Sprintf("round %d: hits=%d misses=%d score=%d ticks=%d overruns=%d dropped_events=%d",
		s.Round(), s.Hits(), s.Misses(), s.Score(), s.Ticks(),
		a.registry.Ints.Get(status.HapticOverruns).Load(), a.registry.Ints.Get(status.EventsDropped).Load())
}
