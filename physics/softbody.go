package physics

import (
	"fmt"

	"github.com/lixenwraith/hamstercide/vmath"
)

// SoftBody groups an arena with the springs that connect its nodes
// Step order per tick: all springs compute forces, then all nodes integrate, then resync
type SoftBody struct {
	Nodes   *Arena
	Springs []Spring

	// Stiffness of node-probe contact used by ApplyProbe
	ContactK float64

	// OnResync runs after integration so a renderer can copy endpoints
	OnResync func(sb *SoftBody)
}

// NewSoftBody creates an empty body
func NewSoftBody(capacity int, contactK float64) *SoftBody {
	return &SoftBody{
		Nodes:    NewArena(capacity),
		Springs:  make([]Spring, 0, capacity),
		ContactK: contactK,
	}
}

// Link adds a validated spring between two existing nodes
func (sb *SoftBody) Link(a, b Handle, restLength, k, c float64) error {
	s, err := NewSpring(sb.Nodes, a, b, restLength, k, c)
	if err != nil {
		return err
	}
	sb.Springs = append(sb.Springs, s)
	return nil
}

// ChainParams describes a straight chain hanging from a fixed anchor
type ChainParams struct {
	Anchor    vmath.Vec3F
	Direction vmath.Vec3F // Normalized internally, zero defaults to -Z
	Count     int         // Free nodes after the anchor
	Spacing   float64
	Mass      float64
	Drag      float64
	Radius    float64
	K         float64
	C         float64
}

// NewChain builds anchor + Count free nodes linked at rest length Spacing
func NewChain(p ChainParams, contactK float64) (*SoftBody, error) {
	if p.Count < 1 {
		return nil, fmt.Errorf("physics: chain needs at least one free node, got %d", p.Count)
	}
	dir := vmath.V3FNormalize(p.Direction)
	if dir == (vmath.Vec3F{}) {
		dir = vmath.Vec3F{Z: -1}
	}

	sb := NewSoftBody(p.Count+1, contactK)
	prev, err := sb.Nodes.Add(p.Anchor, p.Mass, p.Drag, true)
	if err != nil {
		return nil, err
	}
	sb.Nodes.Node(prev).Radius = p.Radius

	for i := 1; i <= p.Count; i++ {
		pos := vmath.V3FAdd(p.Anchor, vmath.V3FScale(dir, p.Spacing*float64(i)))
		h, err := sb.Nodes.Add(pos, p.Mass, p.Drag, false)
		if err != nil {
			return nil, err
		}
		sb.Nodes.Node(h).Radius = p.Radius
		if err := sb.Link(prev, h, p.Spacing, p.K, p.C); err != nil {
			return nil, err
		}
		prev = h
	}
	return sb, nil
}

// ApplyProbe adds probe penetration forces to every overlapping node
// Returns the summed reaction to push to the device
func (sb *SoftBody) ApplyProbe(probePos vmath.Vec3F, probeRadius float64) vmath.Vec3F {
	var reaction vmath.Vec3F
	for i := range sb.Nodes.nodes {
		node := &sb.Nodes.nodes[i]
		onNode, onProbe, hit := SpherePenalty(node.pos, node.Radius, probePos, probeRadius, sb.ContactK)
		if !hit {
			continue
		}
		node.AddForce(onNode)
		vmath.V3FAddInPlace(&reaction, onProbe)
	}
	return reaction
}

// Step runs one tick: springs, integration, resync
func (sb *SoftBody) Step(dt float64) {
	if !(dt > 0) || !vmath.IsFinite(dt) {
		return
	}
	for i := range sb.Springs {
		sb.Springs[i].ComputeForces(sb.Nodes)
	}
	sb.Nodes.IntegrateAll(dt)
	if sb.OnResync != nil {
		sb.OnResync(sb)
	}
}

// KineticEnergy sums 1/2 m v^2 over free nodes
func (sb *SoftBody) KineticEnergy() float64 {
	var e float64
	for i := range sb.Nodes.nodes {
		n := &sb.Nodes.nodes[i]
		if n.fixed {
			continue
		}
		e += 0.5 * n.mass * vmath.V3FMagSq(n.vel)
	}
	return e
}
