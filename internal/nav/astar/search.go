// Package astar implements a generic best-first search core shared by the
// planar and voxel planners. The core knows nothing about terrain, voxels
// or coordinates: the search space is supplied through the Graph contract.
package astar

// Reason classifies why a path query produced no usable path.
// Codes are stable strings so callers can branch on outcome without
// string matching against log output.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInvalidPosition  Reason = "invalid_position"
	ReasonStartBlocked     Reason = "start_blocked"
	ReasonGoalBlocked      Reason = "goal_blocked"
	ReasonNoPath           Reason = "no_path"
	ReasonMaxNodesExceeded Reason = "max_nodes_exceeded"
)

// Edge is a neighbor reachable from a node together with the cost of
// the step. Costs must be non-negative.
type Edge[N comparable] struct {
	To   N
	Cost float64
}

// Graph supplies the search space. Implementations must stay consistent
// for the duration of a single Search call; the core never caches state
// across calls.
type Graph[N comparable] interface {
	// Neighbors returns the nodes reachable from n in one step.
	Neighbors(n N) []Edge[N]

	// Heuristic estimates the remaining cost from n to the goal.
	// Optimality of the returned path requires it to never overestimate.
	Heuristic(n N) float64
}

// Result carries the outcome of a single search.
type Result[N comparable] struct {
	// Path is the node sequence from start to goal inclusive, nil when
	// no path was found.
	Path []N

	// Expanded counts nodes dequeued from the frontier.
	Expanded int

	// Reason is ReasonNone on success, otherwise ReasonNoPath or
	// ReasonMaxNodesExceeded. Budget exhaustion is not proof of
	// unreachability; callers may retry with a larger budget.
	Reason Reason
}

// Search runs A* from start until isGoal reports true for a dequeued
// node or the budget of maxNodes expansions runs out. Cost improvements
// are handled by re-enqueueing the node with its new priority; a node is
// only enqueued when a strictly cheaper cost was just recorded, which
// bounds the loop.
func Search[N comparable](g Graph[N], start N, isGoal func(N) bool, maxNodes int) Result[N] {
	frontier := NewFrontier[N]()
	frontier.Enqueue(start, 0)

	costSoFar := map[N]float64{start: 0}
	cameFrom := make(map[N]N)

	expanded := 0
	for !frontier.IsEmpty() && expanded < maxNodes {
		current, _ := frontier.Dequeue()
		expanded++

		if isGoal(current) {
			return Result[N]{
				Path:     reconstruct(cameFrom, start, current),
				Expanded: expanded,
			}
		}

		for _, edge := range g.Neighbors(current) {
			newCost := costSoFar[current] + edge.Cost
			known, seen := costSoFar[edge.To]
			if seen && newCost >= known {
				continue
			}
			costSoFar[edge.To] = newCost
			cameFrom[edge.To] = current
			frontier.Enqueue(edge.To, newCost+g.Heuristic(edge.To))
		}
	}

	reason := ReasonMaxNodesExceeded
	if frontier.IsEmpty() {
		reason = ReasonNoPath
	}
	return Result[N]{Expanded: expanded, Reason: reason}
}

// reconstruct walks predecessor links from goal back to start and
// reverses the result. The start node has no predecessor entry.
func reconstruct[N comparable](cameFrom map[N]N, start, goal N) []N {
	path := []N{goal}
	for n := goal; n != start; {
		n = cameFrom[n]
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
