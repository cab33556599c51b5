package parameter

// Point-Mass Defaults
const (
	// NodeMass is the mass of a soft-body node (kg)
	NodeMass = 0.005

	// NodeDrag is the air-resistance coefficient applied against node velocity
	NodeDrag = 1.0

	// NodeRadius is the collision sphere radius of a node
	NodeRadius = 0.01

	// NodeContactK is the penalty stiffness between probe and node spheres (N/unit)
	NodeContactK = 1000.0
)

// Spring Defaults
const (
	// SpringRestLength is the default link rest length
	SpringRestLength = 0.05

	// SpringStiffness is the default link stiffness (N/unit)
	SpringStiffness = 20.0

	// SpringDamping is the per-node velocity damping on each link endpoint
	SpringDamping = 0.01

	// ChainNodes is the number of free nodes in the demo tether
	ChainNodes = 8
)

// Scene Contact Stiffness
const (
	// BoardStiffness is the penalty stiffness of the static board (N/unit)
	BoardStiffness = 400.0

	// TargetStiffness is the penalty stiffness of target boxes (N/unit)
	TargetStiffness = 250.0

	// BoardTop is the z of the board surface
	BoardTop = -0.2

	// BoardThickness is the slab depth below BoardTop
	BoardThickness = 0.3
)
