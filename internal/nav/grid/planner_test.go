package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-games/wayfarer/internal/nav/astar"
	"github.com/wayfarer-games/wayfarer/internal/nav/line"
)

func newTestPlanner(t *testing.T, mut func(*Config)) *Planner {
	t.Helper()
	cfg := DefaultConfig()
	if mut != nil {
		mut(&cfg)
	}
	p, err := New(cfg)
	require.NoError(t, err)
	return p
}

func TestFindPathSamePosition(t *testing.T) {
	p := newTestPlanner(t, nil)

	res := p.FindPath(Point{X: 100, Z: 100}, Point{X: 100, Z: 100}, Options{})
	require.True(t, res.Success)
	assert.Len(t, res.Path, 1)
	assert.Equal(t, astar.ReasonNone, res.Reason)
}

func TestFindPathStartBlocked(t *testing.T) {
	p := newTestPlanner(t, nil)
	p.AddObstacle(Obstacle{ID: "rock", X: 100, Z: 100, Radius: 50})

	res := p.FindPath(Point{X: 100, Z: 100}, Point{X: 500, Z: 500}, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, astar.ReasonStartBlocked, res.Reason)
	assert.Empty(t, res.Path)
}

func TestFindPathGoalBlocked(t *testing.T) {
	p := newTestPlanner(t, nil)
	p.AddObstacle(Obstacle{ID: "rock", X: 500, Z: 500, Radius: 50})

	res := p.FindPath(Point{X: 100, Z: 100}, Point{X: 500, Z: 500}, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, astar.ReasonGoalBlocked, res.Reason)
}

func TestFindPathBudgetExceeded(t *testing.T) {
	p := newTestPlanner(t, func(c *Config) { c.MaxSearchNodes = 10 })

	res := p.FindPath(Point{X: 100, Z: 100}, Point{X: 5100, Z: 100}, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, astar.ReasonMaxNodesExceeded, res.Reason)
	assert.Equal(t, 10, res.NodesSearched)
}

func TestFindPathOpenField(t *testing.T) {
	p := newTestPlanner(t, nil)

	res := p.FindPath(Point{X: 16, Z: 16}, Point{X: 400, Z: 16}, Options{})
	require.True(t, res.Success)
	require.NotEmpty(t, res.Path)
	assert.Greater(t, res.NodesSearched, 0)
	assert.False(t, res.Cached)

	first := res.Path[0]
	last := res.Path[len(res.Path)-1]
	assert.InDelta(t, 16, first.X, 16.01, "path starts in the start cell")
	assert.InDelta(t, 400, last.X, 16.01, "path ends in the goal cell")
}

func TestFindPathAroundObstacle(t *testing.T) {
	p := newTestPlanner(t, nil)
	p.AddObstacle(Obstacle{ID: "wall", X: 250, Z: 250, Radius: 60})

	res := p.FindPath(Point{X: 100, Z: 250}, Point{X: 400, Z: 250}, Options{})
	require.True(t, res.Success)

	for _, pt := range res.Path {
		dx := pt.X - 250
		dz := pt.Z - 250
		assert.GreaterOrEqual(t, dx*dx+dz*dz, 60.0*60.0,
			"waypoint %v must stay outside the obstacle", pt)
	}
}

func TestFindPathObstacleStrictRadius(t *testing.T) {
	p := newTestPlanner(t, nil)
	// Cell centers sit at multiples of 32 plus 16; an obstacle whose
	// radius reaches a center exactly does not block it (strict <).
	p.AddObstacle(Obstacle{ID: "edge", X: 48, Z: 16, Radius: 32})

	res := p.FindPath(Point{X: 16, Z: 16}, Point{X: 16, Z: 16}, Options{})
	assert.True(t, res.Success, "center exactly on the radius boundary stays walkable")
}

func TestNoCornerCutting(t *testing.T) {
	p := newTestPlanner(t, func(c *Config) { c.WorldWidth, c.WorldHeight = 320, 320 })

	// Block a plus-shaped wall with a diagonal gap at (5,5).
	blocked := map[Cell]bool{
		{X: 5, Z: 4}: true,
		{X: 4, Z: 5}: true,
	}
	opts := Options{
		NoCache: true,
		Walkable: func(pt Point) bool {
			c := p.CellOf(pt)
			if c.X < 0 || c.Z < 0 || c.X > 9 || c.Z > 9 {
				return false
			}
			return !blocked[c]
		},
	}

	res := p.FindPath(p.CenterOf(Cell{X: 4, Z: 4}), p.CenterOf(Cell{X: 6, Z: 6}), opts)
	require.True(t, res.Success)

	cells := make([]Cell, len(res.Path))
	for i, pt := range res.Path {
		cells[i] = p.CellOf(pt)
	}
	for i := 1; i < len(cells); i++ {
		dx := cells[i].X - cells[i-1].X
		dz := cells[i].Z - cells[i-1].Z
		if dx != 0 && dz != 0 {
			assert.False(t, blocked[Cell{X: cells[i-1].X + dx, Z: cells[i-1].Z}],
				"diagonal move %v -> %v cuts a blocked shoulder", cells[i-1], cells[i])
			assert.False(t, blocked[Cell{X: cells[i-1].X, Z: cells[i-1].Z + dz}],
				"diagonal move %v -> %v cuts a blocked shoulder", cells[i-1], cells[i])
		}
	}
}

func TestRoadCorridorPreferred(t *testing.T) {
	p := newTestPlanner(t, nil)

	const roadRow = 5
	terrain := TerrainFunc(func(x, z float64) Terrain {
		if int(math.Floor(z/32)) == roadRow {
			return "ROAD"
		}
		return "GRASS"
	})
	p.SetTerrainData(terrain, CostTable{"GRASS": 1.0, "ROAD": 0.5})

	start := p.CenterOf(Cell{X: 0, Z: roadRow})
	goal := p.CenterOf(Cell{X: 20, Z: roadRow})
	res := p.FindPath(start, goal, Options{})
	require.True(t, res.Success)

	onRoad := 0
	for _, pt := range res.Path {
		if p.CellOf(pt).Z == roadRow {
			onRoad++
		}
	}
	assert.Greater(t, onRoad*2, len(res.Path),
		"most of the path should follow the cheap corridor")
}

func TestImpassableTerrain(t *testing.T) {
	p := newTestPlanner(t, func(c *Config) { c.WorldWidth, c.WorldHeight = 320, 320 })

	// A lava column at grid x=5 splits the world in two.
	terrain := TerrainFunc(func(x, z float64) Terrain {
		if int(math.Floor(x/32)) == 5 {
			return "LAVA"
		}
		return "GRASS"
	})
	p.SetTerrainData(terrain, CostTable{"LAVA": math.Inf(1)})

	res := p.FindPath(Point{X: 16, Z: 160}, Point{X: 300, Z: 160}, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, astar.ReasonNoPath, res.Reason)
}

func TestCostOverrideIgnoresBadValues(t *testing.T) {
	p := newTestPlanner(t, nil)

	bad := Options{
		NoCache: true,
		Cost:    func(Point) float64 { return math.NaN() },
	}
	res := p.FindPath(Point{X: 16, Z: 16}, Point{X: 200, Z: 16}, bad)
	assert.True(t, res.Success, "a useless cost function falls back to terrain costs")

	expensive := Options{
		NoCache: true,
		Cost:    func(Point) float64 { return 5.0 },
	}
	res2 := p.FindPath(Point{X: 16, Z: 16}, Point{X: 200, Z: 16}, expensive)
	assert.True(t, res2.Success)
}

func TestBudgetMonotonicity(t *testing.T) {
	small := newTestPlanner(t, func(c *Config) { c.MaxSearchNodes = 200 })
	large := newTestPlanner(t, func(c *Config) { c.MaxSearchNodes = 5000 })

	start := Point{X: 16, Z: 16}
	goal := Point{X: 500, Z: 350}

	rs := small.FindPath(start, goal, Options{NoCache: true})
	rl := large.FindPath(start, goal, Options{NoCache: true})

	require.True(t, rs.Success)
	require.True(t, rl.Success)
	assert.Equal(t, rs.NodesSearched, rl.NodesSearched,
		"raising the budget must not change the work for an already-successful search")
}

func TestSmoothingNonDegradation(t *testing.T) {
	p := newTestPlanner(t, nil)
	p.AddObstacle(Obstacle{ID: "pillar", X: 250, Z: 250, Radius: 50})

	start := Point{X: 100, Z: 100}
	goal := Point{X: 400, Z: 400}

	raw := p.FindPath(start, goal, Options{NoCache: true})
	smoothed := p.FindPath(start, goal, Options{NoCache: true, Smooth: true})
	require.True(t, raw.Success)
	require.True(t, smoothed.Success)

	assert.Equal(t, raw.Path[0], smoothed.Path[0])
	assert.Equal(t, raw.Path[len(raw.Path)-1], smoothed.Path[len(smoothed.Path)-1])
	assert.LessOrEqual(t, len(smoothed.Path), len(raw.Path))

	// Every consecutive smoothed pair must keep an unobstructed line.
	for i := 1; i < len(smoothed.Path); i++ {
		a := p.CellOf(smoothed.Path[i-1])
		b := p.CellOf(smoothed.Path[i])
		clear := line.Clear(a.X, a.Z, b.X, b.Z, func(x, z int) bool {
			return p.cellWalkable(Cell{X: x, Z: z}, nil)
		})
		assert.True(t, clear, "segment %d lacks line of sight", i)
	}
}

func TestDirectPath(t *testing.T) {
	p := newTestPlanner(t, nil)

	res := p.DirectPath(Point{X: 50, Z: 50}, Point{X: 600, Z: 420})
	require.True(t, res.Success)
	assert.True(t, res.Direct)
	assert.Equal(t, []Point{{X: 50, Z: 50}, {X: 600, Z: 420}}, res.Path)
	assert.Zero(t, res.NodesSearched)

	p.AddObstacle(Obstacle{ID: "wall", X: 325, Z: 235, Radius: 80})
	blocked := p.DirectPath(Point{X: 50, Z: 50}, Point{X: 600, Z: 420})
	assert.False(t, blocked.Success)
	assert.Equal(t, astar.ReasonNoPath, blocked.Reason)
}

func TestFindPathThroughWaypoints(t *testing.T) {
	p := newTestPlanner(t, nil)

	empty := p.FindPathThroughWaypoints(nil, Options{})
	assert.True(t, empty.Success)
	assert.Empty(t, empty.Path)

	single := p.FindPathThroughWaypoints([]Point{{X: 40, Z: 40}}, Options{})
	require.True(t, single.Success)
	assert.Equal(t, []Point{{X: 40, Z: 40}}, single.Path)

	multi := p.FindPathThroughWaypoints([]Point{
		{X: 16, Z: 16},
		{X: 300, Z: 16},
		{X: 300, Z: 300},
	}, Options{NoCache: true})
	require.True(t, multi.Success)
	require.NotEmpty(t, multi.Path)

	// Segment joints must not duplicate the shared waypoint.
	for i := 1; i < len(multi.Path); i++ {
		assert.NotEqual(t, multi.Path[i-1], multi.Path[i], "duplicate waypoint at %d", i)
	}
}

func TestFindPathThroughWaypointsFailure(t *testing.T) {
	p := newTestPlanner(t, nil)
	p.AddObstacle(Obstacle{ID: "cap", X: 500, Z: 500, Radius: 40})

	res := p.FindPathThroughWaypoints([]Point{
		{X: 16, Z: 16},
		{X: 200, Z: 200},
		{X: 500, Z: 500}, // inside the obstacle
	}, Options{NoCache: true})

	assert.False(t, res.Success)
	assert.Equal(t, 1, res.FailedAt, "second segment fails")
	assert.Equal(t, astar.ReasonGoalBlocked, res.Reason)
	assert.NotEmpty(t, res.Path, "partial path up to the failure is reported")
}

// dijkstraCost brute-forces the true shortest-path cost over the same
// movement rules, for admissibility verification on small grids.
func dijkstraCost(walkable func(Cell) bool, start, goal Cell) float64 {
	dist := map[Cell]float64{start: 0}
	done := map[Cell]bool{}

	for {
		var cur Cell
		best := math.Inf(1)
		for c, d := range dist {
			if !done[c] && d < best {
				best = d
				cur = c
			}
		}
		if math.IsInf(best, 1) {
			return math.Inf(1)
		}
		if cur == goal {
			return best
		}
		done[cur] = true

		for _, d := range cardinals {
			n := Cell{X: cur.X + d.X, Z: cur.Z + d.Z}
			if !walkable(n) {
				continue
			}
			if nd := best + 1; nd < getOrInf(dist, n) {
				dist[n] = nd
			}
		}
		for _, d := range diagonals {
			n := Cell{X: cur.X + d.X, Z: cur.Z + d.Z}
			if !walkable(n) ||
				!walkable(Cell{X: cur.X + d.X, Z: cur.Z}) ||
				!walkable(Cell{X: cur.X, Z: cur.Z + d.Z}) {
				continue
			}
			if nd := best + math.Sqrt2; nd < getOrInf(dist, n) {
				dist[n] = nd
			}
		}
	}
}

func getOrInf(m map[Cell]float64, c Cell) float64 {
	if d, ok := m[c]; ok {
		return d
	}
	return math.Inf(1)
}

func TestAdmissibilityUnitCosts(t *testing.T) {
	p := newTestPlanner(t, func(c *Config) { c.WorldWidth, c.WorldHeight = 320, 320 })

	blocked := map[Cell]bool{
		{X: 3, Z: 2}: true, {X: 3, Z: 3}: true, {X: 3, Z: 4}: true,
		{X: 6, Z: 5}: true, {X: 6, Z: 6}: true, {X: 5, Z: 6}: true,
	}
	inGrid := func(c Cell) bool {
		return c.X >= 0 && c.Z >= 0 && c.X < 10 && c.Z < 10 && !blocked[c]
	}
	opts := Options{
		NoCache: true,
		Walkable: func(pt Point) bool {
			return inGrid(p.CellOf(pt))
		},
	}

	start := Cell{X: 0, Z: 3}
	goal := Cell{X: 9, Z: 6}
	res := p.FindPath(p.CenterOf(start), p.CenterOf(goal), opts)
	require.True(t, res.Success)

	got := 0.0
	prev := p.CellOf(res.Path[0])
	for _, pt := range res.Path[1:] {
		c := p.CellOf(pt)
		if c.X != prev.X && c.Z != prev.Z {
			got += math.Sqrt2
		} else {
			got += 1
		}
		prev = c
	}

	want := dijkstraCost(inGrid, start, goal)
	assert.InDelta(t, want, got, 1e-9,
		"with unit terrain costs A* must return a true shortest path")
}

func TestStatistics(t *testing.T) {
	p := newTestPlanner(t, nil)

	p.FindPath(Point{X: 16, Z: 16}, Point{X: 300, Z: 16}, Options{})
	p.FindPath(Point{X: 16, Z: 16}, Point{X: 300, Z: 16}, Options{}) // cache hit

	st := p.Stats()
	assert.Equal(t, 1, st.PathsCalculated)
	assert.Equal(t, 1, st.CacheHits)
	assert.Greater(t, st.TotalNodesSearched, 0)
	assert.Greater(t, st.AverageNodesSearched(), 0.0)

	p.ResetStatistics()
	assert.Equal(t, Stats{}, p.Stats())
}

func TestCellRoundTrip(t *testing.T) {
	p := newTestPlanner(t, nil)

	c := p.CellOf(Point{X: 100, Z: 100})
	assert.Equal(t, Cell{X: 3, Z: 3}, c)
	assert.Equal(t, Point{X: 112, Z: 112}, p.CenterOf(c))

	neg := p.CellOf(Point{X: -1, Z: -40})
	assert.Equal(t, Cell{X: -1, Z: -2}, neg)
}
