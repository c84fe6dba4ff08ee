package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGraph is a 1D corridor 0..size-1 with unit steps.
type lineGraph struct {
	size int
	goal int
}

func (g lineGraph) Neighbors(n int) []Edge[int] {
	var edges []Edge[int]
	if n > 0 {
		edges = append(edges, Edge[int]{To: n - 1, Cost: 1})
	}
	if n < g.size-1 {
		edges = append(edges, Edge[int]{To: n + 1, Cost: 1})
	}
	return edges
}

func (g lineGraph) Heuristic(n int) float64 {
	d := g.goal - n
	if d < 0 {
		d = -d
	}
	return float64(d)
}

// weightedGraph is a small fixed graph with a cheap detour that A* must
// prefer over the direct expensive edge.
type weightedGraph struct{}

func (weightedGraph) Neighbors(n string) []Edge[string] {
	switch n {
	case "a":
		return []Edge[string]{{To: "d", Cost: 10}, {To: "b", Cost: 1}}
	case "b":
		return []Edge[string]{{To: "c", Cost: 1}}
	case "c":
		return []Edge[string]{{To: "d", Cost: 1}}
	}
	return nil
}

func (weightedGraph) Heuristic(string) float64 { return 0 }

func TestSearchStartIsGoal(t *testing.T) {
	g := lineGraph{size: 10, goal: 3}
	res := Search[int](g, 3, func(n int) bool { return n == 3 }, 100)

	require.Equal(t, ReasonNone, res.Reason)
	assert.Equal(t, []int{3}, res.Path)
	assert.Equal(t, 1, res.Expanded)
}

func TestSearchCorridor(t *testing.T) {
	g := lineGraph{size: 20, goal: 15}
	res := Search[int](g, 2, func(n int) bool { return n == 15 }, 1000)

	require.Equal(t, ReasonNone, res.Reason)
	require.Len(t, res.Path, 14)
	assert.Equal(t, 2, res.Path[0])
	assert.Equal(t, 15, res.Path[len(res.Path)-1])
}

func TestSearchPrefersCheaperRoute(t *testing.T) {
	res := Search[string](weightedGraph{}, "a", func(n string) bool { return n == "d" }, 100)

	require.Equal(t, ReasonNone, res.Reason)
	assert.Equal(t, []string{"a", "b", "c", "d"}, res.Path)
}

func TestSearchNoPath(t *testing.T) {
	g := lineGraph{size: 5, goal: 99}
	res := Search[int](g, 0, func(n int) bool { return n == 99 }, 1000)

	assert.Nil(t, res.Path)
	assert.Equal(t, ReasonNoPath, res.Reason)
	assert.LessOrEqual(t, res.Expanded, 10, "closed corridor explores at most every cell plus duplicates")
}

func TestSearchBudgetExceeded(t *testing.T) {
	g := lineGraph{size: 10000, goal: 9999}
	res := Search[int](g, 0, func(n int) bool { return n == 9999 }, 5)

	assert.Nil(t, res.Path)
	assert.Equal(t, ReasonMaxNodesExceeded, res.Reason)
	assert.Equal(t, 5, res.Expanded)
}

func TestSearchBudgetMonotonic(t *testing.T) {
	g := lineGraph{size: 50, goal: 40}
	goal := func(n int) bool { return n == 40 }

	small := Search[int](g, 0, goal, 200)
	require.Equal(t, ReasonNone, small.Reason)

	large := Search[int](g, 0, goal, 2000)
	require.Equal(t, ReasonNone, large.Reason)
	assert.Equal(t, small.Expanded, large.Expanded,
		"a larger budget must not change the work done by an already-successful search")
	assert.Equal(t, small.Path, large.Path)
}
