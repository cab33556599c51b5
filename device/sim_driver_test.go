package device

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/vmath"
)

func newTestDriver() (*SimDriver, *clock.MockTimeProvider) {
	mock := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	d := NewSimDriver(SwingParams{Duration: 200 * time.Millisecond, Depth: 0.5, RestZ: 0.3}, mock)
	return d, mock
}

func TestSimDriver_RestPose(t *testing.T) {
	d, _ := newTestDriver()
	d.MoveTo(1, -1)

	pos, err := d.SampleLocalPosition()
	if err != nil {
		t.Fatal(err)
	}
	if pos != vmath.V3F(1, -1, 0.3) {
		t.Errorf("rest position %v", pos)
	}
	vel, _ := d.SampleLocalLinearVelocity()
	if vel != (vmath.Vec3F{}) {
		t.Errorf("rest velocity %v", vel)
	}

	d.MoveTo(math.NaN(), 0)
	if pos, _ := d.SampleLocalPosition(); pos.X != 1 {
		t.Errorf("NaN move applied: %v", pos)
	}
}

func TestSimDriver_SwingProfile(t *testing.T) {
	d, mock := newTestDriver()
	if !d.Swing() {
		t.Fatal("swing refused while idle")
	}
	if d.Swing() {
		t.Error("second swing accepted mid-flight")
	}

	// Quarter: moving down fast
	mock.Advance(50 * time.Millisecond)
	vel, _ := d.SampleLocalLinearVelocity()
	pos, _ := d.SampleLocalPosition()
	wantVz := -0.5 * math.Pi / 0.2 * math.Cos(math.Pi/4)
	if math.Abs(vel.Z-wantVz) > 1e-9 {
		t.Errorf("downswing vz %v, want %v", vel.Z, wantVz)
	}
	if math.Abs(pos.Z-(0.3-0.5*math.Sin(math.Pi/4))) > 1e-9 {
		t.Errorf("downswing z %v", pos.Z)
	}

	// Three quarters: lifting
	mock.Advance(100 * time.Millisecond)
	vel, _ = d.SampleLocalLinearVelocity()
	if !(vel.Z > 0) {
		t.Errorf("upswing vz %v, want positive", vel.Z)
	}

	// Done: back at rest, ready for another
	mock.Advance(60 * time.Millisecond)
	if d.Swinging() {
		t.Error("still swinging after duration")
	}
	if pos, _ := d.SampleLocalPosition(); pos.Z != 0.3 {
		t.Errorf("z after swing %v", pos.Z)
	}
	if !d.Swing() {
		t.Error("swing refused after previous finished")
	}
}

func TestSimDriver_Unavailable(t *testing.T) {
	d, _ := newTestDriver()
	d.SetAvailable(false)

	if _, err := d.SampleLocalPosition(); !errors.Is(err, ErrNoSample) {
		t.Errorf("position err %v", err)
	}
	if _, err := d.SampleLocalLinearVelocity(); !errors.Is(err, ErrNoSample) {
		t.Errorf("velocity err %v", err)
	}

	d.SetAvailable(true)
	if _, err := d.SampleLocalPosition(); err != nil {
		t.Errorf("still unavailable: %v", err)
	}
}

func TestSimDriver_ForceAndSwitches(t *testing.T) {
	d, _ := newTestDriver()
	d.PushLocalForce(vmath.V3F(0, 0, 2))
	d.PushLocalForce(vmath.V3F(1, 0, 0))
	if d.LastForce() != vmath.V3F(1, 0, 0) || d.Pushes() != 2 {
		t.Errorf("last force %v pushes %d", d.LastForce(), d.Pushes())
	}

	d.SetSwitch(0, true)
	d.SetSwitch(MaxSwitches, true)
	if !d.ReadSwitch(0) || d.ReadSwitch(1) || d.ReadSwitch(-1) || d.ReadSwitch(MaxSwitches) {
		t.Error("switch state wrong")
	}
}
