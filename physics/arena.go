package physics

import (
	"fmt"

	"github.com/lixenwraith/hamstercide/vmath"
)

// Handle indexes a node inside an Arena
// Handles are never invalidated: the arena only grows
type Handle int

// InvalidHandle is returned alongside construction errors
const InvalidHandle Handle = -1

// Arena owns point-mass nodes in a contiguous slice
// Springs refer to nodes by Handle instead of pointers
type Arena struct {
	nodes []PointMass
}

// NewArena creates an arena with capacity for n nodes
func NewArena(n int) *Arena {
	return &Arena{nodes: make([]PointMass, 0, n)}
}

// Add appends a node and returns its handle
func (a *Arena) Add(pos vmath.Vec3F, mass, drag float64, fixed bool) (Handle, error) {
	var pm PointMass
	if err := pm.init(pos, mass, drag, fixed); err != nil {
		return InvalidHandle, err
	}
	a.nodes = append(a.nodes, pm)
	return Handle(len(a.nodes) - 1), nil
}

// Node returns a pointer into the arena, nil for out-of-range handles
// The pointer is valid until the next Add
func (a *Arena) Node(h Handle) *PointMass {
	if !a.Valid(h) {
		return nil
	}
	return &a.nodes[h]
}

func (a *Arena) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(a.nodes)
}

func (a *Arena) Len() int {
	return len(a.nodes)
}

// IntegrateAll steps every node once
func (a *Arena) IntegrateAll(dt float64) {
	for i := range a.nodes {
		a.nodes[i].Integrate(dt)
	}
}

func (a *Arena) mustNode(h Handle) *PointMass {
	if !a.Valid(h) {
		panic(fmt.Sprintf("physics: handle %d out of range [0,%d)", h, len(a.nodes)))
	}
	return &a.nodes[h]
}
