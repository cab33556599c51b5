package spectator

import (
	"github.com/lixenwraith/hamstercide/game"
	"github.com/lixenwraith/hamstercide/status"
	"github.com/lixenwraith/hamstercide/target"
)

// Message types on the wire
const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
)

// Frame is the periodic board snapshot pushed to every viewer
type Frame struct {
	Type        string                  `json:"type"`
	Round       int64                   `json:"round"`
	Active      bool                    `json:"active"`
	RemainingMS int64                   `json:"remaining_ms"`
	Hits        int64                   `json:"hits"`
	Misses      int64                   `json:"misses"`
	Score       int64                   `json:"score"`
	HapticHz    float64                 `json:"haptic_hz"`
	GraphicsHz  float64                 `json:"graphics_hz"`
	Force       float64                 `json:"force"`
	Rows        int                     `json:"rows"`
	Cols        int                     `json:"cols"`
	Targets     []target.TargetSnapshot `json:"targets"`
}

// EventMessage wraps a game event for the wire
type EventMessage struct {
	Type  string     `json:"type"`
	Event game.Event `json:"event"`
}

// FrameFunc produces the next snapshot; called from the broadcast goroutine
type FrameFunc func() Frame

// SessionFrames reads a live session through its atomics only
func SessionFrames(s *game.Session, reg *status.Registry) FrameFunc {
	hapticHz := reg.Floats.Get(status.HapticRate)
	graphicsHz := reg.Floats.Get(status.GraphicsRate)
	force := reg.Floats.Get(status.HapticForce)

	return func() Frame {
		view := s.Grid.View()
		return Frame{
			Type:        TypeSnapshot,
			Round:       s.Round(),
			Active:      s.Active(),
			RemainingMS: s.Remaining().Milliseconds(),
			Hits:        s.Hits(),
			Misses:      s.Misses(),
			Score:       s.Score(),
			HapticHz:    hapticHz.Get(),
			GraphicsHz:  graphicsHz.Get(),
			Force:       force.Get(),
			Rows:        view.Rows,
			Cols:        view.Cols,
			Targets:     view.Targets,
		}
	}
}
