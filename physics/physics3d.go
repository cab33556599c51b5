package physics

import (
	"github.com/lixenwraith/hamstercide/vmath"
)

// SpherePenalty computes the penetration force between a node sphere and the probe sphere
// Returns (force on node, reaction on probe, overlapping)
// Node is pushed away from the probe by k*depth; coincident centers yield zero force
func SpherePenalty(nodePos vmath.Vec3F, nodeRadius float64, probePos vmath.Vec3F, probeRadius, k float64) (vmath.Vec3F, vmath.Vec3F, bool) {
	toProbe := vmath.V3FSub(probePos, nodePos)
	n, dist := vmath.V3FNormalizeLen(toProbe)

	depth := nodeRadius + probeRadius - dist
	if depth <= 0 {
		return vmath.Vec3F{}, vmath.Vec3F{}, false
	}

	onNode := vmath.V3FScale(n, -k*depth)
	return onNode, vmath.V3FNeg(onNode), true
}

// ClampTravel moves z by delta and clamps it to [lo, hi]
// Returns the new value and whether a bound was reached
func ClampTravel(z, delta, lo, hi float64) (float64, bool) {
	z += delta
	if z <= lo {
		return lo, true
	}
	if z >= hi {
		return hi, true
	}
	return z, false
}
