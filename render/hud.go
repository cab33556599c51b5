package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hamstercide/core"
	"github.com/lixenwraith/hamstercide/device"
	"github.com/lixenwraith/hamstercide/game"
	"github.com/lixenwraith/hamstercide/parameter"
	"github.com/lixenwraith/hamstercide/status"
	"github.com/lixenwraith/hamstercide/target"
	"github.com/lixenwraith/hamstercide/vmath"
)

// Muter is the slice of the audio player the HUD toggles
type Muter interface {
	SetMuted(bool)
	Muted() bool
}

// Options wires the HUD to the running session
type Options struct {
	Session    *game.Session
	Driver     *device.SimDriver
	Registry   *status.Registry
	Audio      Muter // nil hides the mute toggle
	Spacing    float64
	GrabSwitch int
	Unlimited  bool // round has no countdown
}

const helpLine = "HAMSTERCIDE  1-9/mouse aim  space/click swing  g grab  d sensor  r new round  m mute  q quit"

// HUD draws the board and turns keyboard/mouse input into simulated device motion
// Runs on its own goroutine; reads session state through atomics only
type HUD struct {
	screen  tcell.Screen
	opts    Options
	layout  Layout
	springs barSprings
	gfx     *status.FrequencyCounter

	hapticHz *status.AtomicFloat
	force    *status.AtomicFloat

	zMin, zMax  float64
	grab        bool
	sensorOff   bool
	lastButtons tcell.ButtonMask
}

func NewHUD(screen tcell.Screen, opts Options) *HUD {
	g := opts.Session.Grid
	h := &HUD{
		screen: screen,
		opts:   opts,
		layout: Layout{
			OriginX: 2, OriginY: 2,
			CellW: parameter.CellWidth, CellH: parameter.CellHeight,
			Rows: g.Rows, Cols: g.Cols,
		},
		springs:  newBarSprings(int(time.Second/parameter.FrameUpdateInterval), parameter.BarSpringFrequency, parameter.BarSpringDamping),
		gfx:      status.NewFrequencyCounter(parameter.FrequencyWindow, opts.Registry.Floats.Get(status.GraphicsRate)),
		hapticHz: opts.Registry.Floats.Get(status.HapticRate),
		force:    opts.Registry.Floats.Get(status.HapticForce),
		zMin:     g.Params.ZMin,
		zMax:     g.Params.ZMax,
	}
	h.springs.resize(g.Len())
	if h.opts.Spacing <= 0 {
		h.opts.Spacing = parameter.GridSpacing
	}
	return h
}

// Run refreshes at the frame interval until quit input or stop closes
func (h *HUD) Run(stop <-chan struct{}) {
	h.screen.EnableMouse()
	h.screen.HideCursor()

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case <-stop:
			return
		case ev := <-eventChan:
			if !h.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			h.draw()
			h.screen.Show()
			h.gfx.Signal(now, 1)
		}
	}
}

func (h *HUD) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// handleKey returns false when the user asked to quit
func (h *HUD) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch {
	case r >= '1' && r <= '9':
		h.aimAt(int(r-'1'), 0.5, 0.5)
	case r == ' ':
		h.opts.Driver.Swing()
	case r == 'g':
		h.grab = !h.grab
		h.opts.Driver.SetSwitch(h.opts.GrabSwitch, h.grab)
	case r == 'd':
		h.sensorOff = !h.sensorOff
		h.opts.Driver.SetAvailable(!h.sensorOff)
	case r == 'r':
		h.opts.Session.RequestReset()
	case r == 'm':
		if h.opts.Audio != nil {
			h.opts.Audio.SetMuted(!h.opts.Audio.Muted())
		}
	case r == 'q':
		return false
	}
	return true
}

// handleMouse aims at the hovered point and swings on a fresh left press
func (h *HUD) handleMouse(x, y int, buttons tcell.ButtonMask) {
	if id, fx, fy, ok := h.layout.CellAt(x, y); ok {
		h.aimAt(id, fx, fy)
	}
	pressed := buttons&tcell.Button1 != 0
	if pressed && h.lastButtons&tcell.Button1 == 0 {
		h.opts.Driver.Swing()
	}
	h.lastButtons = buttons
}

// aimAt moves the probe over target id at fractional cell offset (fx, fy)
func (h *HUD) aimAt(id int, fx, fy float64) {
	t := h.opts.Session.Grid.Target(id)
	if t == nil {
		return
	}
	s := h.opts.Spacing
	p := t.Position()
	h.opts.Driver.MoveTo(p.X+(fx-0.5)*s, p.Y+(fy-0.5)*s)
}

// probeCell maps the probe position back to a terminal coordinate
func (h *HUD) probeCell(pos vmath.Vec3F) (int, int, bool) {
	s := h.opts.Spacing
	for id, t := range h.opts.Session.Grid.Targets() {
		p := t.Position()
		fx := (pos.X-p.X)/s + 0.5
		fy := (pos.Y-p.Y)/s + 0.5
		if fx < 0 || fx >= 1 || fy < 0 || fy >= 1 {
			continue
		}
		cx, cy := h.layout.Cell(id)
		return cx + int(fx*float64(h.layout.CellW)), cy + int(fy*float64(h.layout.CellH)), true
	}
	return 0, 0, false
}

var stateStyles = map[target.State]tcell.Style{
	target.Hidden:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	target.Rising:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	target.Raised:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	target.Falling: tcell.StyleDefault.Foreground(tcell.ColorBlue),
	target.Stunned: tcell.StyleDefault.Foreground(tcell.ColorRed),
}

func (h *HUD) draw() {
	h.screen.Clear()
	h.drawText(0, 0, helpLine, tcell.StyleDefault.Bold(true))

	barRows := h.layout.CellH - 2
	barW := h.layout.CellW - 4
	for id, t := range h.opts.Session.Grid.Targets() {
		state := t.State()
		style := stateStyles[state]
		cx, cy := h.layout.Cell(id)

		level := BarLevel(t.Z(), h.zMin, h.zMax, barRows)
		eased := h.springs.step(id, float64(level))
		filled := int(eased + 0.5)
		if filled > barRows {
			filled = barRows
		}

		// frame
		for x := 0; x < h.layout.CellW-1; x++ {
			h.screen.SetContent(cx+x, cy+h.layout.CellH-1, '─', nil, tcell.StyleDefault)
		}
		h.screen.SetContent(cx, cy, rune('1'+id%9), nil, tcell.StyleDefault.Dim(true))

		for row := 0; row < filled; row++ {
			y := cy + barRows - row
			for x := 0; x < barW; x++ {
				h.screen.SetContent(cx+2+x, y, '█', nil, style)
			}
		}
		h.drawText(cx+2, cy+h.layout.CellH-1, StatusLabel(state.String(), t.Scored()), style)
	}

	if pos, err := h.opts.Driver.SampleLocalPosition(); err == nil {
		if x, y, ok := h.probeCell(pos); ok {
			mark := '+'
			if h.opts.Driver.Swinging() {
				mark = 'v'
			}
			h.screen.SetContent(x, y, mark, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))
		}
	}

	stats := Stats{
		Hits:       h.opts.Session.Hits(),
		Misses:     h.opts.Session.Misses(),
		Score:      h.opts.Session.Score(),
		Round:      h.opts.Session.Round(),
		Active:     h.opts.Session.Active(),
		Remaining:  h.opts.Session.Remaining(),
		Unlimited:  h.opts.Unlimited,
		HapticHz:   h.hapticHz.Get(),
		GraphicsHz: h.gfx.Frequency(),
		Force:      h.force.Get(),
		Grab:       h.grab,
		Muted:      h.opts.Audio != nil && h.opts.Audio.Muted(),
	}
	y := h.layout.OriginY + h.layout.Height() + 1
	h.drawText(0, y, StatsLine(stats), tcell.StyleDefault)
	if !h.opts.Session.Active() {
		h.drawText(0, y+1, "round over - press r for a new round", tcell.StyleDefault.Foreground(tcell.ColorRed))
	} else if h.sensorOff {
		h.drawText(0, y+1, "sensor unavailable", tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
}

func (h *HUD) drawText(x, y int, s string, style tcell.Style) {
	w, _ := h.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
