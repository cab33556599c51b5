package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector used for all haptic-rate physics
// Value type, zero value is the origin
type Vec3F struct {
	X, Y, Z float64
}

func V3F(x, y, z float64) Vec3F {
	return Vec3F{x, y, z}
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FNeg(v Vec3F) Vec3F {
	return Vec3F{-v.X, -v.Y, -v.Z}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FNormalize returns the unit vector, zero vector for zero-length input
func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FNormalizeLen returns the unit vector and the input length in one pass
// Zero-length input yields (zero, 0)
func V3FNormalizeLen(v Vec3F) (Vec3F, float64) {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}, 0
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}, mag
}

// V3FAddInPlace accumulates b into a
func V3FAddInPlace(a *Vec3F, b Vec3F) {
	a.X += b.X
	a.Y += b.Y
	a.Z += b.Z
}

// V3FIsFinite reports whether no component is NaN or Inf
func V3FIsFinite(v Vec3F) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// V3FClampBox clamps each component into [lo, hi]
func V3FClampBox(v, lo, hi Vec3F) Vec3F {
	return Vec3F{
		ClampF(v.X, lo.X, hi.X),
		ClampF(v.Y, lo.Y, hi.Y),
		ClampF(v.Z, lo.Z, hi.Z),
	}
}

// ClampF limits val to [lo, hi]
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
