package grid

import "github.com/wayfarer-games/wayfarer/internal/nav/line"

// smoothGrid applies string pulling to a raw grid path: from each
// anchor, jump to the farthest later point with an unobstructed line of
// sight, repeating from the landing point. Endpoints are preserved and
// the result is never longer than the input. Caller must hold at least a
// read lock.
func (p *Planner) smoothGrid(path []Cell, opts *Options) []Cell {
	if len(path) < 3 {
		return path
	}

	walkable := func(x, z int) bool {
		return p.cellWalkable(Cell{X: x, Z: z}, opts)
	}

	smoothed := make([]Cell, 0, len(path))
	smoothed = append(smoothed, path[0])

	anchor := 0
	for anchor < len(path)-1 {
		next := anchor + 1
		for j := len(path) - 1; j > anchor+1; j-- {
			if line.Clear(path[anchor].X, path[anchor].Z, path[j].X, path[j].Z, walkable) {
				next = j
				break
			}
		}
		smoothed = append(smoothed, path[next])
		anchor = next
	}

	return smoothed
}
