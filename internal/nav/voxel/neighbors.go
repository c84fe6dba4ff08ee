package voxel

import "github.com/wayfarer-games/wayfarer/internal/nav/astar"

var horizontalCardinals = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var horizontalDiagonals = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// searchContext adapts one voxel query to the generic search core.
type searchContext struct {
	p    *Planner
	goal Position
}

// Neighbors yields horizontal moves on the current level plus the
// vertical transitions the block metadata allows: climbing, stairs,
// adjacent ladders and ramp slopes.
func (s *searchContext) Neighbors(n Position) []astar.Edge[Position] {
	p := s.p
	costs := p.cfg.Costs
	edges := make([]astar.Edge[Position], 0, 12)

	for _, d := range horizontalCardinals {
		t := Position{X: n.X + d[0], Y: n.Y + d[1], Z: n.Z}
		if p.isWalkable(t.X, t.Y, t.Z) {
			edges = append(edges, astar.Edge[Position]{To: t, Cost: costs.Flat})
		}
	}
	if p.cfg.AllowDiagonal {
		for _, d := range horizontalDiagonals {
			t := Position{X: n.X + d[0], Y: n.Y + d[1], Z: n.Z}
			if p.isWalkable(t.X, t.Y, t.Z) {
				edges = append(edges, astar.Edge[Position]{To: t, Cost: costs.Diagonal})
			}
		}
	}

	if p.world == nil {
		return edges
	}
	cur := p.world.BlockAt(n.X, n.Y, n.Z)

	// Straight up: climbing the current cell or taking its stairs.
	// Vertical transition targets are exempt from the floor rule; they
	// only need to be occupiable.
	if cur.Climbable || cur.ConnectsUp {
		cost := costs.Stairs
		if cur.Climbable {
			cost = costs.Ladder
		}
		t := Position{X: n.X, Y: n.Y, Z: n.Z + 1}
		if p.occupiable(t.X, t.Y, t.Z) {
			edges = append(edges, astar.Edge[Position]{To: t, Cost: cost})
		}
	}
	if cur.Climbable || cur.ConnectsDown {
		cost := costs.Stairs
		if cur.Climbable {
			cost = costs.Ladder
		}
		t := Position{X: n.X, Y: n.Y, Z: n.Z - 1}
		if p.occupiable(t.X, t.Y, t.Z) {
			edges = append(edges, astar.Edge[Position]{To: t, Cost: cost})
		}
	}

	// Climbing into a ladder cell directly above, or down into the
	// ladder this cell rests on.
	if p.world.BlockAt(n.X, n.Y, n.Z+1).Climbable {
		edges = append(edges, astar.Edge[Position]{
			To:   Position{X: n.X, Y: n.Y, Z: n.Z + 1},
			Cost: costs.Ladder,
		})
	}
	if n.Z-1 >= 0 && p.world.BlockAt(n.X, n.Y, n.Z-1).Climbable {
		edges = append(edges, astar.Edge[Position]{
			To:   Position{X: n.X, Y: n.Y, Z: n.Z - 1},
			Cost: costs.Ladder,
		})
	}

	// Mounting a ladder in an adjacent column, one level up or down,
	// even when the current cell itself is not climbable.
	for _, d := range horizontalCardinals {
		ax, ay := n.X+d[0], n.Y+d[1]
		if p.world.BlockAt(ax, ay, n.Z+1).Climbable {
			edges = append(edges, astar.Edge[Position]{
				To:   Position{X: ax, Y: ay, Z: n.Z + 1},
				Cost: costs.Ladder,
			})
		}
		if n.Z-1 >= 0 && p.world.BlockAt(ax, ay, n.Z-1).Climbable {
			edges = append(edges, astar.Edge[Position]{
				To:   Position{X: ax, Y: ay, Z: n.Z - 1},
				Cost: costs.Ladder,
			})
		}
	}

	// Ramps. Departing upward: standing on a ramp, step beyond its
	// rising edge one level up.
	if o := cur.Ramp; o != RampNone {
		ox, oy := o.offset()
		t := Position{X: n.X + ox, Y: n.Y + oy, Z: n.Z + 1}
		if p.occupiable(t.X, t.Y, t.Z) {
			edges = append(edges, astar.Edge[Position]{To: t, Cost: costs.Ramp})
		}
	}

	// Arriving at a ramp from the level below, and descending onto one
	// from the level above. The ramp must rise along the travel axis.
	for _, d := range horizontalCardinals {
		ax, ay := n.X+d[0], n.Y+d[1]

		if up := p.world.BlockAt(ax, ay, n.Z+1); up.Ramp != RampNone && rampOnAxis(up.Ramp, d) {
			edges = append(edges, astar.Edge[Position]{
				To:   Position{X: ax, Y: ay, Z: n.Z + 1},
				Cost: costs.Ramp,
			})
		}
		if n.Z-1 >= 0 {
			if down := p.world.BlockAt(ax, ay, n.Z-1); down.Ramp != RampNone && rampOnAxis(down.Ramp, d) {
				edges = append(edges, astar.Edge[Position]{
					To:   Position{X: ax, Y: ay, Z: n.Z - 1},
					Cost: costs.Ramp,
				})
			}
		}
	}

	return edges
}

// Heuristic implements the search contract.
func (s *searchContext) Heuristic(n Position) float64 {
	return s.p.heuristic(n, s.goal)
}

// rampOnAxis reports whether a ramp's orientation lies along the given
// horizontal step, in either sense.
func rampOnAxis(r RampDir, d [2]int) bool {
	ox, oy := r.offset()
	return (ox != 0 && d[0] != 0) || (oy != 0 && d[1] != 0)
}
