package game

import (
	"github.com/lixenwraith/hamstercide/parameter"
	"github.com/lixenwraith/hamstercide/physics"
	"github.com/lixenwraith/hamstercide/scene"
	"github.com/lixenwraith/hamstercide/target"
	"github.com/lixenwraith/hamstercide/vmath"
)

// BoardLayout sizes the scene bodies built around a grid
type BoardLayout struct {
	TargetHalfWidth float64 `toml:"target_half_width"`
	TargetHeight    float64 `toml:"target_height"`
	TargetStiffness float64 `toml:"target_stiffness"`
	BoardTop        float64 `toml:"board_top"`
	BoardThickness  float64 `toml:"board_thickness"`
	BoardStiffness  float64 `toml:"board_stiffness"`
}

func DefaultBoardLayout() BoardLayout {
	return BoardLayout{
		TargetHalfWidth: parameter.TargetHalfWidth,
		TargetHeight:    parameter.TargetHeight,
		TargetStiffness: parameter.TargetStiffness,
		BoardTop:        parameter.BoardTop,
		BoardThickness:  parameter.BoardThickness,
		BoardStiffness:  parameter.BoardStiffness,
	}
}

// BuildBoard adds the board slab and one box per target to w
// Returns the environment id and the object id of each target, indexed by target id
func BuildBoard(w *scene.World, g *target.Grid, l BoardLayout, spacing float64) (scene.ObjectID, []scene.ObjectID) {
	halfX := float64(g.Cols) * spacing / 2
	halfY := float64(g.Rows) * spacing / 2
	env := w.AddBox(scene.TagBoard, vmath.V3F(0, 0, l.BoardTop), halfX, halfY, l.BoardThickness, l.BoardStiffness)

	objects := make([]scene.ObjectID, g.Len())
	for i, t := range g.Targets() {
		objects[i] = w.AddBox(scene.TagHamster, t.Position(), l.TargetHalfWidth, l.TargetHalfWidth, l.TargetHeight, l.TargetStiffness)
	}
	return env, objects
}

// NewTether builds the demo soft body: a damped chain strung sideways off the board edge
func NewTether(g *target.Grid, spacing float64) (*physics.SoftBody, error) {
	anchor := vmath.V3F(float64(g.Cols)*spacing/2, 0, parameter.ProbeRestZ-0.1)
	return physics.NewChain(physics.ChainParams{
		Anchor:    anchor,
		Direction: vmath.V3F(1, 0, 0),
		Count:     parameter.ChainNodes,
		Spacing:   parameter.SpringRestLength,
		Mass:      parameter.NodeMass,
		Drag:      parameter.NodeDrag,
		Radius:    parameter.NodeRadius,
		K:         parameter.SpringStiffness,
		C:         parameter.SpringDamping,
	}, parameter.NodeContactK)
}
