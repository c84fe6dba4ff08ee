// Package grid implements the continuous-world planar planner: A* over a
// uniform cell grid with terrain-aware costs, dynamic circular obstacles,
// path caching and line-of-sight smoothing.
package grid

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/wayfarer-games/wayfarer/internal/nav/astar"
	"github.com/wayfarer-games/wayfarer/internal/nav/line"
)

// Config holds construction-time planner tunables. Numeric zero fields
// fall back to the documented defaults; start from DefaultConfig to get
// diagonal movement, which a zero Config leaves disabled.
type Config struct {
	// CellSize is the world-unit side length of one grid cell.
	CellSize float64

	// WorldWidth and WorldHeight bound walkable space; positions outside
	// [0, width) x [0, height) are rejected.
	WorldWidth  float64
	WorldHeight float64

	// MaxSearchNodes budgets A* expansions per query.
	MaxSearchNodes int

	// AllowDiagonal enables 8-directional movement.
	AllowDiagonal bool

	// CacheTTL is the path-cache entry lifetime.
	CacheTTL time.Duration

	// CacheCapacity bounds the path cache entry count.
	CacheCapacity int
}

// DefaultConfig returns the documented planar defaults.
func DefaultConfig() Config {
	return Config{
		CellSize:       32,
		WorldWidth:     10000,
		WorldHeight:    10000,
		MaxSearchNodes: 1000,
		AllowDiagonal:  true,
		CacheTTL:       5000 * time.Millisecond,
		CacheCapacity:  100,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.CellSize == 0 {
		c.CellSize = def.CellSize
	}
	if c.WorldWidth == 0 {
		c.WorldWidth = def.WorldWidth
	}
	if c.WorldHeight == 0 {
		c.WorldHeight = def.WorldHeight
	}
	if c.MaxSearchNodes == 0 {
		c.MaxSearchNodes = def.MaxSearchNodes
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = def.CacheTTL
	}
	if c.CacheCapacity == 0 {
		c.CacheCapacity = def.CacheCapacity
	}
	return c
}

// Planner is the planar pathfinder. A single instance may serve
// concurrent queries: shared state (terrain, obstacles, cache, stats)
// follows a reader-writer discipline, and every query allocates its own
// search state.
type Planner struct {
	cfg   Config
	cache *pathCache

	mu        sync.RWMutex
	terrain   TerrainProvider
	costs     CostTable
	obstacles map[string]Obstacle

	statsMu sync.Mutex
	stats   Stats
}

// New creates a planner. Mostly-zero configs are usable: every zero
// field takes its default.
func New(cfg Config) (*Planner, error) {
	cfg = cfg.withDefaults()
	if cfg.CellSize < 0 || cfg.WorldWidth < 0 || cfg.WorldHeight < 0 {
		return nil, fmt.Errorf("grid: negative dimension in config: %+v", cfg)
	}
	if cfg.MaxSearchNodes < 0 || cfg.CacheCapacity < 0 || cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("grid: negative budget in config: %+v", cfg)
	}

	return &Planner{
		cfg:       cfg,
		cache:     newPathCache(cfg.CacheTTL, cfg.CacheCapacity),
		obstacles: make(map[string]Obstacle),
	}, nil
}

// SetTerrainData replaces the terrain provider and cost table and clears
// the path cache. A nil provider classifies every cell as DefaultTerrain.
func (p *Planner) SetTerrainData(provider TerrainProvider, costs CostTable) {
	p.mu.Lock()
	p.terrain = provider
	p.costs = costs
	p.mu.Unlock()
	p.cache.clear()
}

// CellOf maps a world position to its grid cell.
func (p *Planner) CellOf(pos Point) Cell {
	return Cell{
		X: int(math.Floor(pos.X / p.cfg.CellSize)),
		Z: int(math.Floor(pos.Z / p.cfg.CellSize)),
	}
}

// CenterOf maps a grid cell to the world position of its center.
func (p *Planner) CenterOf(c Cell) Point {
	return Point{
		X: float64(c.X)*p.cfg.CellSize + p.cfg.CellSize/2,
		Z: float64(c.Z)*p.cfg.CellSize + p.cfg.CellSize/2,
	}
}

// FindPath plans from start to goal, both in world coordinates.
// A cache hit short-circuits with NodesSearched = 0 and Cached set.
func (p *Planner) FindPath(start, goal Point, opts Options) Result {
	key := keyFor(start, goal)
	if !opts.NoCache {
		if path, ok := p.cache.get(key); ok {
			p.statsMu.Lock()
			p.stats.CacheHits++
			p.statsMu.Unlock()
			return Result{Path: path, Success: true, Cached: true, FailedAt: -1}
		}
	}

	p.mu.RLock()
	startCell := p.CellOf(start)
	goalCell := p.CellOf(goal)

	if !p.cellWalkable(startCell, &opts) {
		p.mu.RUnlock()
		return failure(astar.ReasonStartBlocked, 0)
	}
	if !p.cellWalkable(goalCell, &opts) {
		p.mu.RUnlock()
		return failure(astar.ReasonGoalBlocked, 0)
	}

	ctx := &searchContext{p: p, goal: goalCell, opts: &opts}
	res := astar.Search[Cell](ctx, startCell, func(c Cell) bool { return c == goalCell }, p.cfg.MaxSearchNodes)

	gridPath := res.Path
	if res.Reason == astar.ReasonNone && opts.Smooth {
		gridPath = p.smoothGrid(gridPath, &opts)
	}
	p.mu.RUnlock()

	p.statsMu.Lock()
	p.stats.PathsCalculated++
	p.stats.TotalNodesSearched += res.Expanded
	p.statsMu.Unlock()

	if res.Reason != astar.ReasonNone {
		return failure(res.Reason, res.Expanded)
	}

	worldPath := make([]Point, len(gridPath))
	for i, c := range gridPath {
		worldPath[i] = p.CenterOf(c)
	}

	if !opts.NoCache {
		p.cache.put(key, worldPath)
	}

	return Result{Path: worldPath, Success: true, NodesSearched: res.Expanded, FailedAt: -1}
}

// FindPathThroughWaypoints plans consecutive waypoint pairs and
// concatenates the segments, dropping each later segment's first point
// (shared with the previous segment's last). Aborts on the first failing
// segment, reporting its index and the partial path accumulated so far.
func (p *Planner) FindPathThroughWaypoints(waypoints []Point, opts Options) Result {
	switch len(waypoints) {
	case 0:
		return Result{Success: true, FailedAt: -1}
	case 1:
		return Result{Path: []Point{waypoints[0]}, Success: true, FailedAt: -1}
	}

	var full []Point
	nodes := 0
	for i := 1; i < len(waypoints); i++ {
		seg := p.FindPath(waypoints[i-1], waypoints[i], opts)
		nodes += seg.NodesSearched
		if !seg.Success {
			return Result{
				Path:          full,
				NodesSearched: nodes,
				Reason:        seg.Reason,
				FailedAt:      i - 1,
			}
		}
		if i == 1 {
			full = append(full, seg.Path...)
		} else if len(seg.Path) > 0 {
			full = append(full, seg.Path[1:]...)
		}
	}

	return Result{Path: full, Success: true, NodesSearched: nodes, FailedAt: -1}
}

// DirectPath bypasses A* and returns a two-point path when the straight
// segment between start and goal is unobstructed.
func (p *Planner) DirectPath(start, goal Point) Result {
	if !p.CanMoveDirectly(start, goal) {
		return failure(astar.ReasonNoPath, 0)
	}
	return Result{
		Path:     []Point{start, goal},
		Success:  true,
		Direct:   true,
		FailedAt: -1,
	}
}

// CanMoveDirectly reports whether a straight segment between two world
// positions crosses only walkable cells.
func (p *Planner) CanMoveDirectly(start, goal Point) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := p.CellOf(start)
	g := p.CellOf(goal)
	return line.Clear(s.X, s.Z, g.X, g.Z, func(x, z int) bool {
		return p.cellWalkable(Cell{X: x, Z: z}, nil)
	})
}

// ClearCache drops every cached path.
func (p *Planner) ClearCache() { p.cache.clear() }

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

// cellWalkable applies walkability rules to a cell. Caller must hold at
// least a read lock. A caller-supplied override replaces every built-in
// rule.
func (p *Planner) cellWalkable(c Cell, opts *Options) bool {
	center := p.CenterOf(c)
	if opts != nil && opts.Walkable != nil {
		return opts.Walkable(center)
	}

	if center.X < 0 || center.X >= p.cfg.WorldWidth ||
		center.Z < 0 || center.Z >= p.cfg.WorldHeight {
		return false
	}

	if math.IsInf(p.terrainMultiplier(center), 1) {
		return false
	}

	for _, o := range p.obstacles {
		dx := center.X - o.X
		dz := center.Z - o.Z
		if dx*dx+dz*dz < o.Radius*o.Radius {
			return false
		}
	}
	return true
}

// terrainMultiplier returns the configured cost multiplier at a world
// position. Caller must hold at least a read lock.
func (p *Planner) terrainMultiplier(pos Point) float64 {
	class := DefaultTerrain
	if p.terrain != nil {
		class = p.terrain.TerrainAt(pos.X, pos.Z)
	}
	return p.costs.multiplier(class)
}

// moveMultiplier resolves the cost multiplier for entering a cell,
// preferring a per-call cost function when it yields a usable value.
func (p *Planner) moveMultiplier(c Cell, opts *Options) float64 {
	center := p.CenterOf(c)
	if opts != nil && opts.Cost != nil {
		if v := opts.Cost(center); !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 {
			return v
		}
	}
	return p.terrainMultiplier(center)
}

// searchContext adapts one query to the generic search core. It lives
// for a single FindPath call under the planner's read lock.
type searchContext struct {
	p    *Planner
	goal Cell
	opts *Options
}

var cardinals = [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagonals = [4]Cell{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// Neighbors yields up to 8 adjacent cells. A diagonal move is rejected
// when either adjacent cardinal cell is blocked (no corner-cutting).
func (s *searchContext) Neighbors(c Cell) []astar.Edge[Cell] {
	edges := make([]astar.Edge[Cell], 0, 8)

	for _, d := range cardinals {
		n := Cell{X: c.X + d.X, Z: c.Z + d.Z}
		if !s.p.cellWalkable(n, s.opts) {
			continue
		}
		edges = append(edges, astar.Edge[Cell]{To: n, Cost: s.p.moveMultiplier(n, s.opts)})
	}

	if !s.p.cfg.AllowDiagonal {
		return edges
	}

	for _, d := range diagonals {
		n := Cell{X: c.X + d.X, Z: c.Z + d.Z}
		if !s.p.cellWalkable(n, s.opts) {
			continue
		}
		if !s.p.cellWalkable(Cell{X: c.X + d.X, Z: c.Z}, s.opts) ||
			!s.p.cellWalkable(Cell{X: c.X, Z: c.Z + d.Z}, s.opts) {
			continue
		}
		edges = append(edges, astar.Edge[Cell]{To: n, Cost: math.Sqrt2 * s.p.moveMultiplier(n, s.opts)})
	}

	return edges
}

// Heuristic is octile distance with unit step cost when diagonal moves
// are allowed, Manhattan otherwise.
func (s *searchContext) Heuristic(c Cell) float64 {
	dx := float64(absInt(c.X - s.goal.X))
	dz := float64(absInt(c.Z - s.goal.Z))
	if !s.p.cfg.AllowDiagonal {
		return dx + dz
	}
	return (dx + dz) + (math.Sqrt2-2)*math.Min(dx, dz)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
