package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/hamstercide/vmath"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewPointMass_RejectsBadMass(t *testing.T) {
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewPointMass(vmath.Vec3F{}, m, 1, false); !errors.Is(err, ErrInvalidMass) {
			t.Errorf("mass %v: expected ErrInvalidMass, got %v", m, err)
		}
	}
}

func TestIntegrate_DragDecaysGeometrically(t *testing.T) {
	pm, err := NewPointMass(vmath.Vec3F{}, 0.005, 1.0, false)
	if err != nil {
		t.Fatal(err)
	}
	pm.SetVelocity(vmath.V3F(1, -2, 0.5))

	dt := 0.001
	ratio := 1 - dt*1.0/0.005 // 0.8

	prev := pm.Velocity()
	for i := 0; i < 50; i++ {
		pm.Integrate(dt)
		v := pm.Velocity()
		if !approx(v.X, prev.X*ratio, eps) || !approx(v.Y, prev.Y*ratio, eps) || !approx(v.Z, prev.Z*ratio, eps) {
			t.Fatalf("step %d: velocity %v, want %v scaled by %v", i, v, prev, ratio)
		}
		prev = v
	}
	if vmath.V3FMag(prev) > 1e-4 {
		t.Errorf("velocity did not decay toward zero: %v", prev)
	}
}

func TestIntegrate_ConstantForceLinearVelocity(t *testing.T) {
	pm, _ := NewPointMass(vmath.Vec3F{}, 2.0, 0, false)
	f := vmath.V3F(4, 0, -2)
	dt := 0.01

	for n := 1; n <= 100; n++ {
		pm.AddForce(f)
		pm.Integrate(dt)
		want := vmath.V3FScale(f, float64(n)*dt/2.0)
		got := pm.Velocity()
		if !approx(got.X, want.X, 1e-9) || !approx(got.Z, want.Z, 1e-9) {
			t.Fatalf("step %d: velocity %v, want %v", n, got, want)
		}
	}
}

func TestIntegrate_ClearsAccumulator(t *testing.T) {
	pm, _ := NewPointMass(vmath.Vec3F{}, 1, 0, false)
	pm.AddForce(vmath.V3F(1, 0, 0))
	pm.AddForce(vmath.V3F(0, 2, 0))
	if got := pm.PendingForce(); got != vmath.V3F(1, 2, 0) {
		t.Fatalf("pending force %v", got)
	}
	pm.Integrate(0.1)
	if got := pm.PendingForce(); got != (vmath.Vec3F{}) {
		t.Errorf("accumulator not cleared: %v", got)
	}
}

func TestIntegrate_FixedNeverMoves(t *testing.T) {
	start := vmath.V3F(0.3, -0.2, 1)
	pm, _ := NewPointMass(start, 1, 1, true)

	for i := 0; i < 100; i++ {
		pm.AddForce(vmath.V3F(float64(i), 50, -3))
		pm.SetVelocity(vmath.V3F(1, 1, 1))
		pm.Integrate(0.001 * float64(i+1))
	}
	if pm.Position() != start {
		t.Errorf("fixed node moved to %v", pm.Position())
	}
	if pm.Velocity() != (vmath.Vec3F{}) {
		t.Errorf("fixed node gained velocity %v", pm.Velocity())
	}
	if pm.PendingForce() != (vmath.Vec3F{}) {
		t.Errorf("fixed node accumulated force %v", pm.PendingForce())
	}
}

func TestIntegrate_InvalidStepSkipped(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"zero", 0},
		{"negative", -0.01},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm, _ := NewPointMass(vmath.V3F(1, 1, 1), 1, 1, false)
			pm.SetVelocity(vmath.V3F(1, 0, 0))
			pm.AddForce(vmath.V3F(0, 0, 5))
			pm.Integrate(tt.dt)

			if pm.Position() != vmath.V3F(1, 1, 1) {
				t.Errorf("position changed: %v", pm.Position())
			}
			if pm.Velocity() != vmath.V3F(1, 0, 0) {
				t.Errorf("velocity changed: %v", pm.Velocity())
			}
		})
	}
}

func TestSpherePenalty(t *testing.T) {
	onNode, onProbe, hit := SpherePenalty(vmath.V3F(0, 0, 0), 0.01, vmath.V3F(0.015, 0, 0), 0.01, 1000)
	if !hit {
		t.Fatal("expected overlap")
	}
	// depth 0.005, node pushed toward -X
	if !approx(onNode.X, -5, 1e-9) {
		t.Errorf("node force %v", onNode)
	}
	if vmath.V3FAdd(onNode, onProbe) != (vmath.Vec3F{}) {
		t.Errorf("reaction not opposite: %v vs %v", onNode, onProbe)
	}

	if _, _, hit := SpherePenalty(vmath.Vec3F{}, 0.01, vmath.V3F(1, 0, 0), 0.01, 1000); hit {
		t.Error("separated spheres reported overlap")
	}

	onNode, _, _ = SpherePenalty(vmath.Vec3F{}, 0.01, vmath.Vec3F{}, 0.01, 1000)
	if !vmath.V3FIsFinite(onNode) || onNode != (vmath.Vec3F{}) {
		t.Errorf("coincident centers should give zero force, got %v", onNode)
	}
}

func TestClampTravel(t *testing.T) {
	tests := []struct {
		z, delta, want float64
		atBound        bool
	}{
		{0, 0.1, 0.1, false},
		{0.95, 0.1, 1, true},
		{0.05, -0.1, 0, true},
		{0, -0.1, 0, true},
	}
	for _, tt := range tests {
		got, bound := ClampTravel(tt.z, tt.delta, 0, 1)
		if !approx(got, tt.want, eps) || bound != tt.atBound {
			t.Errorf("ClampTravel(%v, %v) = (%v, %v), want (%v, %v)", tt.z, tt.delta, got, bound, tt.want, tt.atBound)
		}
	}
}
