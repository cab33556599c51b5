package device

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/parameter"
	"github.com/lixenwraith/hamstercide/status"
	"github.com/lixenwraith/hamstercide/vmath"
)

// MaxSwitches is the number of buttons on the simulated stylus
const MaxSwitches = 4

// SwingParams shapes the scripted strike
type SwingParams struct {
	Duration time.Duration
	Depth    float64
	RestZ    float64
}

func DefaultSwingParams() SwingParams {
	return SwingParams{
		Duration: parameter.SwingDuration,
		Depth:    parameter.SwingDepth,
		RestZ:    parameter.ProbeRestZ,
	}
}

// SimDriver is a lock-free stand-in for a haptic device
// The presentation goroutine moves it and starts swings; the haptic loop samples it
// During a swing z(t) = rest - depth*sin(pi*u), u = elapsed/duration
type SimDriver struct {
	swing  SwingParams
	source clock.TimeProvider

	x, y       status.AtomicFloat
	swingStart atomic.Int64 // unix nanos, 0 when idle
	available  atomic.Bool
	switches   [MaxSwitches]atomic.Bool

	fx, fy, fz status.AtomicFloat
	pushes     atomic.Int64
}

func NewSimDriver(swing SwingParams, source clock.TimeProvider) *SimDriver {
	if source == nil {
		source = clock.NewMonotonicTimeProvider()
	}
	if swing.Duration <= 0 {
		swing.Duration = parameter.SwingDuration
	}
	d := &SimDriver{swing: swing, source: source}
	d.available.Store(true)
	return d
}

// MoveTo sets the probe XY; non-finite input is ignored
func (d *SimDriver) MoveTo(x, y float64) {
	if !vmath.IsFinite(x) || !vmath.IsFinite(y) {
		return
	}
	d.x.Set(x)
	d.y.Set(y)
}

// Swing starts a strike unless one is in flight
func (d *SimDriver) Swing() bool {
	now := d.source.Now()
	start := d.swingStart.Load()
	if start != 0 && now.Sub(time.Unix(0, start)) < d.swing.Duration {
		return false
	}
	return d.swingStart.CompareAndSwap(start, now.UnixNano())
}

// Swinging reports whether a strike is in flight
func (d *SimDriver) Swinging() bool {
	_, ok := d.phase()
	return ok
}

func (d *SimDriver) SetAvailable(ok bool) { d.available.Store(ok) }

func (d *SimDriver) SetSwitch(i int, on bool) {
	if i < 0 || i >= MaxSwitches {
		return
	}
	d.switches[i].Store(on)
}

// phase returns swing progress u in [0, 1), false when idle
func (d *SimDriver) phase() (float64, bool) {
	start := d.swingStart.Load()
	if start == 0 {
		return 0, false
	}
	elapsed := d.source.Now().Sub(time.Unix(0, start))
	if elapsed < 0 || elapsed >= d.swing.Duration {
		return 0, false
	}
	return elapsed.Seconds() / d.swing.Duration.Seconds(), true
}

func (d *SimDriver) SampleLocalPosition() (vmath.Vec3F, error) {
	if !d.available.Load() {
		return vmath.Vec3F{}, ErrNoSample
	}
	z := d.swing.RestZ
	if u, ok := d.phase(); ok {
		z -= d.swing.Depth * math.Sin(math.Pi*u)
	}
	return vmath.V3F(d.x.Get(), d.y.Get(), z), nil
}

// SampleLocalLinearVelocity is the analytic derivative of the swing; XY moves are instantaneous
func (d *SimDriver) SampleLocalLinearVelocity() (vmath.Vec3F, error) {
	if !d.available.Load() {
		return vmath.Vec3F{}, ErrNoSample
	}
	u, ok := d.phase()
	if !ok {
		return vmath.Vec3F{}, nil
	}
	vz := -d.swing.Depth * math.Pi / d.swing.Duration.Seconds() * math.Cos(math.Pi*u)
	return vmath.V3F(0, 0, vz), nil
}

func (d *SimDriver) PushLocalForce(f vmath.Vec3F) {
	d.fx.Set(f.X)
	d.fy.Set(f.Y)
	d.fz.Set(f.Z)
	d.pushes.Add(1)
}

func (d *SimDriver) ReadSwitch(i int) bool {
	if i < 0 || i >= MaxSwitches {
		return false
	}
	return d.switches[i].Load()
}

// LastForce is the most recent pushed force, for display
func (d *SimDriver) LastForce() vmath.Vec3F {
	return vmath.V3F(d.fx.Get(), d.fy.Get(), d.fz.Get())
}

// Pushes counts PushLocalForce calls
func (d *SimDriver) Pushes() int64 { return d.pushes.Load() }
