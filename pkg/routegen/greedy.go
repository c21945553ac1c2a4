package routegen

import (
	"math"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

// A directed step of the walk
type step struct {
	from, to graph.NodeID
}

// Closes a walk by the shortest path by length back to start
type closer interface {
	ShortestPath(source, target graph.NodeID) ([]graph.NodeID, bool)
}

// BuildGreedyWalk walks from start, always taking a step that keeps the
// estimated closed length (walked so far plus the shortest way back) at least
// as close to target as stopping now. Less repeated and longer edges are preferred.
// The walk is closed along the shortest path back to start.
func BuildGreedyWalk(n *graph.Network, start graph.NodeID, target float64, closeBy closer) []graph.NodeID {
	walk := []graph.NodeID{start}
	if !n.HasNode(start) {
		return walk
	}

	returnDistance := n.DistancesTo(start, graph.ByLength)
	repetitions := make(map[step]int)

	length := 0.0
	u := start

	for budget := 2 * n.EdgeCount(); budget > 0; budget-- {
		current := math.Abs(target - (length + returnDistance[u]))

		candidates := make([]graph.NodeID, 0)
		for _, next := range n.Successors(u) {
			if next == start {
				continue
			}
			back, ok := returnDistance[next]
			if !ok {
				continue
			}
			possible := length + n.CanonicalEdge(u, next).Length + back
			if math.Abs(target-possible) <= current {
				candidates = append(candidates, next)
			}
		}
		if len(candidates) == 0 {
			break
		}

		fewest := math.MaxInt
		for _, c := range candidates {
			if r := repetitions[step{u, c}]; r < fewest {
				fewest = r
			}
		}

		var chosen graph.NodeID
		longest := -1.0
		for _, c := range candidates {
			if repetitions[step{u, c}] != fewest {
				continue
			}
			if l := n.CanonicalEdge(u, c).Length; l > longest {
				longest = l
				chosen = c
			}
		}

		repetitions[step{u, chosen}]++
		repetitions[step{chosen, u}]++
		walk = append(walk, chosen)
		length += n.CanonicalEdge(u, chosen).Length
		u = chosen
	}

	if u != start {
		back, ok := closeBy.ShortestPath(u, start)
		if ok {
			walk = append(walk, back[1:]...)
		}
	}
	return walk
}
