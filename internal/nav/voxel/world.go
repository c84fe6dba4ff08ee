package voxel

// Position is an integer voxel coordinate. X and Y span the horizontal
// plane; Z is the vertical level.
type Position struct {
	X int
	Y int
	Z int
}

// RampDir orients a ramp block toward the horizontal direction of its
// rising edge.
type RampDir int

const (
	RampNone RampDir = iota
	RampNorth
	RampSouth
	RampEast
	RampWest
)

// offset returns the horizontal step of the ramp's rising edge.
func (d RampDir) offset() (int, int) {
	switch d {
	case RampNorth:
		return 0, -1
	case RampSouth:
		return 0, 1
	case RampEast:
		return 1, 0
	case RampWest:
		return -1, 0
	}
	return 0, 0
}

// Block carries the per-voxel connectivity metadata the planner reads.
// Supplied by the world collaborator, never mutated by the planner.
type Block struct {
	// Solid blocks occupancy and act as floors for the cell above.
	Solid bool

	// Climbable cells (ladders, vines) can be occupied, support the
	// cell above, and connect to Z+1 / Z-1 at ladder cost.
	Climbable bool

	// ConnectsUp / ConnectsDown mark directional Z-connectors (stairs).
	ConnectsUp   bool
	ConnectsDown bool

	// Ramp orients a walkable slope; RampNone for ordinary blocks.
	Ramp RampDir
}

// World is the voxel collaborator contract. A nil World makes the
// planner treat every position as walkable (degenerate/test mode).
type World interface {
	BlockAt(x, y, z int) Block
}

// WorldFunc adapts a plain function to a World.
type WorldFunc func(x, y, z int) Block

// BlockAt implements World.
func (f WorldFunc) BlockAt(x, y, z int) Block { return f(x, y, z) }
