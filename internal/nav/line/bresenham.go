// Package line provides Bresenham grid traversal used for direct-path
// shortcuts and for path smoothing.
package line

// Walkable reports whether a planar grid cell may be traversed.
type Walkable func(x, z int) bool

// Clear traces the grid segment from (x0,z0) to (x1,z1) and tests every
// visited cell, destination included. Returns false at the first blocked
// cell, true if the destination is reached unobstructed.
func Clear(x0, z0, x1, z1 int, walkable Walkable) bool {
	dx := abs(x1 - x0)
	dz := abs(z1 - z0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sz := 1
	if z0 > z1 {
		sz = -1
	}

	err := dx - dz
	x, z := x0, z0
	for {
		if !walkable(x, z) {
			return false
		}
		if x == x1 && z == z1 {
			return true
		}
		e2 := 2 * err
		if e2 > -dz {
			err -= dz
			x += sx
		}
		if e2 < dx {
			err += dx
			z += sz
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
