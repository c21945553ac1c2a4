package routegen

import (
	"math"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

// A Candidate is one loop tried by the heuristic builder.
type Candidate struct {
	Pair      ViaPair
	Route     []graph.NodeID
	Length    float64
	Deviation float64
}

// combineLegs joins three legs into one closed walk. The last node of the
// first two legs is dropped, it starts the next leg.
func combineLegs(leg1, leg2, leg3 []graph.NodeID) []graph.NodeID {
	route := make([]graph.NodeID, 0, len(leg1)+len(leg2)+len(leg3)-2)
	route = append(route, leg1[:len(leg1)-1]...)
	route = append(route, leg2[:len(leg2)-1]...)
	route = append(route, leg3...)
	return route
}

// RemoveOutAndBack collapses spurs that walk out to via and straight back.
// Starting at the first occurrence of via, nodes at equal offsets on either side
// are compared until they differ. The walk from the outermost matching node on
// the left to the one just before its mirror is removed, via included.
// The scan repeats until the route stops changing, so a later visit to via is
// collapsed too. A route without via is returned unchanged.
func RemoveOutAndBack(route []graph.NodeID, via graph.NodeID) []graph.NodeID {
	for {
		cleaned := removeSpur(route, via)
		if len(cleaned) == len(route) {
			return route
		}
		route = cleaned
	}
}

// removeSpur removes the spur around the first occurrence of via, if any.
func removeSpur(route []graph.NodeID, via graph.NodeID) []graph.NodeID {
	index := -1
	for i, node := range route {
		if node == via {
			index = i
			break
		}
	}
	if index < 0 {
		return route
	}

	i := 0
	for index-i-1 >= 0 && index+i+1 < len(route) && route[index-i-1] == route[index+i+1] {
		i++
	}
	if i == 0 {
		return route
	}

	cleaned := make([]graph.NodeID, 0, len(route)-2*i)
	cleaned = append(cleaned, route[:index-i]...)
	cleaned = append(cleaned, route[index+i:]...)
	return cleaned
}

// TryPair builds the loop start -> v1 -> v2 -> start from cheapest legs under
// routing cost. ok is false if any leg has no path.
func TryPair(n *graph.Network, start graph.NodeID, target float64, pair ViaPair) (c Candidate, ok bool) {
	leg1, ok1 := n.ShortestPath(start, pair.V1, graph.ByWeight)
	leg2, ok2 := n.ShortestPath(pair.V1, pair.V2, graph.ByWeight)
	leg3, ok3 := n.ShortestPath(pair.V2, start, graph.ByWeight)
	if !ok1 || !ok2 || !ok3 {
		return Candidate{}, false
	}

	route := combineLegs(leg1, leg2, leg3)
	route = RemoveOutAndBack(route, pair.V1)
	route = RemoveOutAndBack(route, pair.V2)

	length, ok := n.RouteLength(route)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Pair:      pair,
		Route:     route,
		Length:    length,
		Deviation: math.Abs(length - target),
	}, true
}

// BestCandidate returns the loop with the smallest deviation from target over all
// pairs, the first one found on ties. Without a usable pair it returns the
// degenerate route [start] with an infinite deviation.
func BestCandidate(n *graph.Network, start graph.NodeID, target float64, pairs []ViaPair) (best Candidate, evaluated []Candidate) {
	best = Candidate{Route: []graph.NodeID{start}, Deviation: math.Inf(1)}

	for _, pair := range pairs {
		c, ok := TryPair(n, start, target, pair)
		if !ok {
			continue
		}
		evaluated = append(evaluated, c)
		if c.Deviation < best.Deviation {
			best = c
		}
	}
	return best, evaluated
}

// IsDegenerate reports whether a route is the single node "no loop found" result.
func IsDegenerate(route []graph.NodeID) bool {
	return len(route) <= 1
}
