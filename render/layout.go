package render

import (
	"fmt"
	"math"
	"time"
)

// Layout places the grid on the terminal
// Row 0 of the grid is drawn at the top
type Layout struct {
	OriginX, OriginY int
	CellW, CellH     int
	Rows, Cols       int
}

// Cell returns the top-left terminal coordinate of target id
func (l Layout) Cell(id int) (x, y int) {
	r, c := id/l.Cols, id%l.Cols
	return l.OriginX + c*l.CellW, l.OriginY + r*l.CellH
}

// CellAt maps a terminal coordinate to a target id and the fractional
// position inside the cell, each in [0,1)
func (l Layout) CellAt(x, y int) (id int, fx, fy float64, ok bool) {
	dx, dy := x-l.OriginX, y-l.OriginY
	if dx < 0 || dy < 0 {
		return 0, 0, 0, false
	}
	c, r := dx/l.CellW, dy/l.CellH
	if c >= l.Cols || r >= l.Rows {
		return 0, 0, 0, false
	}
	fx = (float64(dx%l.CellW) + 0.5) / float64(l.CellW)
	fy = (float64(dy%l.CellH) + 0.5) / float64(l.CellH)
	return r*l.Cols + c, fx, fy, true
}

// Width and Height are the terminal extent of the grid
func (l Layout) Width() int  { return l.Cols * l.CellW }
func (l Layout) Height() int { return l.Rows * l.CellH }

// BarLevel maps z in [zMin,zMax] to filled rows in [0,rows]
func BarLevel(z, zMin, zMax float64, rows int) int {
	if !(zMax > zMin) || rows <= 0 || math.IsNaN(z) {
		return 0
	}
	u := (z - zMin) / (zMax - zMin)
	u = math.Max(0, math.Min(1, u))
	return int(math.Round(u * float64(rows)))
}

// Stats is what the status line shows
type Stats struct {
	Hits, Misses, Score int64
	Round               int64
	Active              bool
	Remaining           time.Duration
	Unlimited           bool
	HapticHz            float64
	GraphicsHz          float64
	Force               float64
	Grab                bool
	Muted               bool
}

// StatsLine formats the status line
func StatsLine(s Stats) string {
	var clock string
	switch {
	case s.Unlimited:
		clock = "  oo "
	case s.Active:
		secs := int(math.Ceil(s.Remaining.Seconds()))
		clock = fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	default:
		clock = "00:00"
	}

	flags := ""
	if s.Grab {
		flags += " [GRAB]"
	}
	if s.Muted {
		flags += " [MUTE]"
	}
	return fmt.Sprintf("round %d  %s  hits %d  misses %d  score %d  |  haptic %4.0f Hz  gfx %3.0f Hz  force %4.2f N%s",
		s.Round, clock, s.Hits, s.Misses, s.Score, s.HapticHz, s.GraphicsHz, s.Force, flags)
}

// StatusLabel is the short word drawn under each bar
func StatusLabel(state string, scored bool) string {
	if scored {
		return state + "*"
	}
	return state
}
