// Package voxel implements the discrete Z-level planner: A* over voxel
// coordinates with explicit vertical connectivity through stairs,
// ladders and ramps.
package voxel

import (
	"fmt"
	"math"
	"sync"

	"github.com/wayfarer-games/wayfarer/internal/nav/astar"
	"github.com/wayfarer-games/wayfarer/internal/nav/line"
)

// directThreshold bounds the heuristic distance under which a same-level
// query tries a straight line-of-sight path before running A*.
const directThreshold = 8.0

// Costs prices each transition kind.
type Costs struct {
	Flat     float64
	Diagonal float64
	Stairs   float64
	Ladder   float64
	Ramp     float64

	// Vertical weights the |dz| term of the heuristic. Keeping it at or
	// below the cheapest vertical transition keeps the heuristic
	// admissible.
	Vertical float64
}

// DefaultCosts returns the documented transition costs.
func DefaultCosts() Costs {
	return Costs{
		Flat:     1.0,
		Diagonal: 1.414,
		Stairs:   2.0,
		Ladder:   2.5,
		Ramp:     1.5,
		Vertical: 1.5,
	}
}

// Config holds construction-time planner tunables. Numeric zero fields
// fall back to the documented defaults; start from DefaultConfig to get
// diagonal movement, which a zero Config leaves disabled.
type Config struct {
	MaxSearchNodes  int
	AllowDiagonal   bool
	MaxZLevelChange int
	Costs           Costs
}

// DefaultConfig returns the documented voxel defaults.
func DefaultConfig() Config {
	return Config{
		MaxSearchNodes:  2000,
		AllowDiagonal:   true,
		MaxZLevelChange: 10,
		Costs:           DefaultCosts(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxSearchNodes == 0 {
		c.MaxSearchNodes = def.MaxSearchNodes
	}
	if c.MaxZLevelChange == 0 {
		c.MaxZLevelChange = def.MaxZLevelChange
	}
	if c.Costs == (Costs{}) {
		c.Costs = def.Costs
	}
	return c
}

// Result is the outcome of a single voxel path query.
type Result struct {
	Path          []Position
	Success       bool
	NodesSearched int
	Reason        astar.Reason
	Direct        bool
}

// Stats accumulates per-planner query counters.
type Stats struct {
	PathsCalculated    int
	Successes          int
	Failures           int
	TotalNodesSearched int
}

// AverageNodesSearched returns nodes searched per query.
func (s Stats) AverageNodesSearched() float64 {
	if s.PathsCalculated == 0 {
		return 0
	}
	return float64(s.TotalNodesSearched) / float64(s.PathsCalculated)
}

// SuccessRate returns the fraction of queries that produced a path.
func (s Stats) SuccessRate() float64 {
	if s.PathsCalculated == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.PathsCalculated)
}

// Planner is the voxel pathfinder. The world collaborator is read-only;
// statistics are the only mutable shared state.
type Planner struct {
	cfg   Config
	world World

	statsMu sync.Mutex
	stats   Stats
}

// New creates a planner over the given world. A nil world treats every
// position as walkable.
func New(world World, cfg Config) (*Planner, error) {
	cfg = cfg.withDefaults()
	if cfg.MaxSearchNodes < 0 || cfg.MaxZLevelChange < 0 {
		return nil, fmt.Errorf("voxel: negative budget in config: %+v", cfg)
	}
	return &Planner{cfg: cfg, world: world}, nil
}

// FindPath plans from start to goal in voxel coordinates.
func (p *Planner) FindPath(start, goal Position) Result {
	maxZ := 2 * p.cfg.MaxZLevelChange
	if start.Z < 0 || start.Z > maxZ || goal.Z < 0 || goal.Z > maxZ {
		return p.record(Result{Reason: astar.ReasonInvalidPosition})
	}

	if !p.isWalkable(start.X, start.Y, start.Z) {
		return p.record(Result{Reason: astar.ReasonStartBlocked})
	}
	if !p.isWalkable(goal.X, goal.Y, goal.Z) {
		return p.record(Result{Reason: astar.ReasonGoalBlocked})
	}

	// Same-level short hops: try a straight shot before full A*.
	if start.Z == goal.Z && p.heuristic(start, goal) <= directThreshold {
		if p.planeClear(start, goal) {
			return p.record(Result{
				Path:    []Position{start, goal},
				Success: true,
				Direct:  true,
			})
		}
	}

	ctx := &searchContext{p: p, goal: goal}
	res := astar.Search[Position](ctx, start, func(n Position) bool { return n == goal }, p.cfg.MaxSearchNodes)
	if res.Reason != astar.ReasonNone {
		return p.record(Result{NodesSearched: res.Expanded, Reason: res.Reason})
	}

	return p.record(Result{
		Path:          res.Path,
		Success:       true,
		NodesSearched: res.Expanded,
	})
}

// FindPath2D plans with the goal forced onto the start's Z level.
func (p *Planner) FindPath2D(start, goal Position) Result {
	goal.Z = start.Z
	return p.FindPath(start, goal)
}

// Stats returns a copy of the running statistics.
func (p *Planner) Stats() Stats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

// ResetStatistics zeroes the running statistics.
func (p *Planner) ResetStatistics() {
	p.statsMu.Lock()
	p.stats = Stats{}
	p.statsMu.Unlock()
}

func (p *Planner) record(r Result) Result {
	p.statsMu.Lock()
	p.stats.PathsCalculated++
	p.stats.TotalNodesSearched += r.NodesSearched
	if r.Success {
		p.stats.Successes++
	} else {
		p.stats.Failures++
	}
	p.statsMu.Unlock()
	return r
}

// isWalkable reports whether a position can be occupied: the cell must
// be open-air or climbable and must have support underneath. Ramps and
// climbables are their own support.
func (p *Planner) isWalkable(x, y, z int) bool {
	if p.world == nil {
		return true
	}
	b := p.world.BlockAt(x, y, z)
	if b.Solid {
		return false
	}
	if b.Climbable || b.Ramp != RampNone {
		return true
	}
	below := p.world.BlockAt(x, y, z-1)
	return below.Solid || below.Climbable
}

// occupiable reports whether a cell can merely be entered, floor or not.
// Used for targets of explicit vertical and ramp transitions, which the
// floor rule exempts.
func (p *Planner) occupiable(x, y, z int) bool {
	if p.world == nil {
		return true
	}
	return !p.world.BlockAt(x, y, z).Solid
}

// planeClear traces a same-level straight line testing walkability at
// every voxel along it.
func (p *Planner) planeClear(start, goal Position) bool {
	it := line.NewIterator3D(start.X, start.Y, start.Z, goal.X, goal.Y, goal.Z)
	for it.Next() {
		if !p.isWalkable(it.X(), it.Y(), it.Z()) {
			return false
		}
	}
	return true
}

// heuristic blends horizontal octile distance with a linear vertical
// penalty.
func (p *Planner) heuristic(n, goal Position) float64 {
	dx := float64(absInt(n.X - goal.X))
	dy := float64(absInt(n.Y - goal.Y))
	dz := float64(absInt(n.Z - goal.Z))

	var horizontal float64
	if p.cfg.AllowDiagonal {
		horizontal = (dx + dy) + (math.Sqrt2-2)*math.Min(dx, dy)
	} else {
		horizontal = dx + dy
	}
	return horizontal + dz*p.cfg.Costs.Vertical
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
