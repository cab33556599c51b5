package spectator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/hamstercide/core"
	"github.com/lixenwraith/hamstercide/game"
	"github.com/lixenwraith/hamstercide/parameter"
)

// Path is the websocket endpoint
const Path = "/ws"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // read-only feed
	},
}

// Options configures the feed; an empty Addr disables it
type Options struct {
	Addr       string
	Interval   time.Duration
	Buffer     int
	WriteWait  time.Duration
	PingPeriod time.Duration
}

func DefaultOptions(addr string) Options {
	return Options{
		Addr:       addr,
		Interval:   parameter.SpectatorInterval,
		Buffer:     parameter.SpectatorClientBuffer,
		WriteWait:  parameter.SpectatorWriteWait,
		PingPeriod: 15 * time.Second,
	}
}

// Service serves JSON snapshots and events to websocket viewers
// Never touches the haptic loop: frames come from atomics, events from the pump goroutine
type Service struct {
	opts   Options
	frames FrameFunc
	hub    *Hub

	listener net.Listener
	server   *http.Server

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	deps     []string
}

func NewService(opts Options, frames FrameFunc, deps ...string) *Service {
	return &Service{
		opts:     opts,
		frames:   frames,
		hub:      NewHub(),
		stopChan: make(chan struct{}),
		deps:     deps,
	}
}

func (s *Service) Name() string           { return "spectator" }
func (s *Service) Dependencies() []string { return s.deps }

// Init accepts an optional Options overriding the constructor's
func (s *Service) Init(args ...any) error {
	for _, a := range args {
		if o, ok := a.(Options); ok {
			s.opts = o
		}
	}
	if s.opts.Addr == "" {
		return nil
	}
	if s.opts.Interval <= 0 {
		return fmt.Errorf("spectator: interval %v", s.opts.Interval)
	}
	if s.opts.Buffer <= 0 {
		s.opts.Buffer = parameter.SpectatorClientBuffer
	}
	if s.opts.WriteWait <= 0 {
		s.opts.WriteWait = parameter.SpectatorWriteWait
	}
	if s.opts.PingPeriod <= 0 {
		s.opts.PingPeriod = 15 * time.Second
	}
	if s.frames == nil {
		return errors.New("spectator: no frame source")
	}
	return nil
}

// Enabled reports whether an address was configured
func (s *Service) Enabled() bool { return s.opts.Addr != "" }

// Addr is the bound address once started, useful with ":0"
func (s *Service) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Service) Hub() *Hub { return s.hub }

func (s *Service) Start() error {
	if !s.Enabled() || s.running.Load() {
		return nil
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("spectator listen %s: %w", s.opts.Addr, err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.handleWS)
	s.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	s.running.Store(true)
	s.wg.Add(2)
	core.Go(func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[SPECTATOR] serve: %v", err)
		}
	})
	core.Go(s.broadcastLoop)

	log.Printf("[SPECTATOR] listening on %s%s", ln.Addr(), Path)
	return nil
}

func (s *Service) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if !s.running.Load() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		err = s.server.Shutdown(ctx)
		s.hub.closeAll()
		s.wg.Wait()
	})
	return err
}

// Sink forwards events to viewers; register it on the event pump
func (s *Service) Sink(ev game.Event) {
	if !s.running.Load() {
		return
	}
	data, err := json.Marshal(EventMessage{Type: TypeEvent, Event: ev})
	if err != nil {
		log.Printf("[SPECTATOR] marshal event: %v", err)
		return
	}
	s.hub.Broadcast(data)
}

func (s *Service) broadcastLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if s.hub.Len() == 0 {
				continue
			}
			data, err := json.Marshal(s.frames())
			if err != nil {
				log.Printf("[SPECTATOR] marshal frame: %v", err)
				continue
			}
			s.hub.Broadcast(data)
		}
	}
}

func (s *Service) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SPECTATOR] upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, s.opts.Buffer)}

	// initial frame so a new viewer does not wait for the next tick
	if data, err := json.Marshal(s.frames()); err == nil {
		c.send <- data
	}
	s.hub.add(c)
	log.Printf("[SPECTATOR] viewer connected from %s", r.RemoteAddr)

	go c.writePump(s.opts.WriteWait, s.opts.PingPeriod)
	go c.readPump(s.hub)
}
