package grid

import "github.com/wayfarer-games/wayfarer/internal/nav/astar"

// Point is a continuous world position on the movement plane.
type Point struct {
	X float64
	Z float64
}

// Cell is an integer grid coordinate, the unit the search operates on.
type Cell struct {
	X int
	Z int
}

// Result is the outcome of a single planar path query. Immutable once
// returned; the path slice is owned by the caller.
type Result struct {
	// Path is the waypoint sequence in world coordinates, start cell
	// first. Empty when the query failed.
	Path []Point

	// Success reports whether a usable path was produced.
	Success bool

	// NodesSearched counts A* expansions; zero for cached and direct
	// results.
	NodesSearched int

	// Reason is populated only on failure.
	Reason astar.Reason

	// Cached marks a result served from the path cache.
	Cached bool

	// Direct marks a two-point line-of-sight shortcut.
	Direct bool

	// FailedAt is the index of the failing segment for waypoint-chain
	// queries, -1 otherwise.
	FailedAt int
}

// Options tune a single query. The zero value uses the cache and returns
// the raw unsmoothed path.
type Options struct {
	// NoCache bypasses the path cache for both lookup and insert.
	NoCache bool

	// Smooth applies line-of-sight string pulling to the raw path.
	Smooth bool

	// Walkable replaces every built-in walkability rule when set
	// (bounds, terrain, obstacles).
	Walkable func(p Point) bool

	// Cost replaces the terrain multiplier when set. Non-finite or
	// non-positive returns are ignored in favor of the terrain cost.
	Cost func(p Point) float64
}

// Stats accumulates per-planner query counters.
type Stats struct {
	PathsCalculated    int
	CacheHits          int
	TotalNodesSearched int
}

// AverageNodesSearched returns nodes searched per computed path.
func (s Stats) AverageNodesSearched() float64 {
	if s.PathsCalculated == 0 {
		return 0
	}
	return float64(s.TotalNodesSearched) / float64(s.PathsCalculated)
}

func failure(reason astar.Reason, nodes int) Result {
	return Result{NodesSearched: nodes, Reason: reason, FailedAt: -1}
}
