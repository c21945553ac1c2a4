package graph

import (
	"math"

	"github.com/ColinToft/LoopRoute/internal/util/heap"
)

// A Metric gives the traversal cost of an edge for a search.
type Metric func(e *Edge) float64

// ByLength searches over the physical length of edges.
func ByLength(e *Edge) float64 { return e.Length }

// ByWeight searches over the routing cost assigned by AssignWeights.
func ByWeight(e *Edge) float64 { return e.Weight }

type direction int

const (
	forward direction = iota
	backward
)

// search runs Dijkstra's algorithm from source. Nodes farther than limit are not settled.
// If target is given, the search stops as soon as the target is settled.
// Backward searches walk incoming edges, giving distances *to* source.
func (n *Network) search(source NodeID, metric Metric, limit float64, dir direction, target *NodeID) (map[NodeID]float64, map[NodeID]NodeID) {
	distance := make(map[NodeID]float64)
	previous := make(map[NodeID]NodeID)
	if !n.HasNode(source) {
		return distance, previous
	}

	settled := make(map[NodeID]bool)
	tentative := map[NodeID]float64{source: 0}

	unvisited := heap.NewPriorityQueue[NodeID]()
	unvisited.Push(source, 0)

	for unvisited.Len() > 0 {
		node, dist, _ := unvisited.Pop()
		if settled[node] || dist > tentative[node] {
			continue // stale entry
		}
		if dist > limit {
			break
		}
		settled[node] = true
		distance[node] = dist

		if target != nil && node == *target {
			break
		}

		var edges []*Edge
		if dir == forward {
			edges = n.OutEdges(node)
		} else {
			edges = n.InEdges(node)
		}

		for _, e := range edges {
			neighbor := e.To
			if dir == backward {
				neighbor = e.From
			}
			if settled[neighbor] {
				continue
			}

			through := dist + metric(e)
			if current, ok := tentative[neighbor]; !ok || through < current {
				tentative[neighbor] = through
				previous[neighbor] = node
				unvisited.Push(neighbor, through)
			}
		}
	}

	return distance, previous
}

// ShortestPath returns the cheapest node sequence source -> target under metric.
// ok is false if target cannot be reached.
func (n *Network) ShortestPath(source, target NodeID, metric Metric) (path []NodeID, ok bool) {
	if !n.HasNode(source) || !n.HasNode(target) {
		return nil, false
	}
	if source == target {
		return []NodeID{source}, true
	}

	distance, previous := n.search(source, metric, math.Inf(1), forward, &target)
	if _, reached := distance[target]; !reached {
		return nil, false
	}

	path = []NodeID{target}
	for current := target; current != source; {
		current = previous[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// DistancesTo returns, for every node that can reach target, the length of
// its shortest path to target.
func (n *Network) DistancesTo(target NodeID, metric Metric) map[NodeID]float64 {
	distance, _ := n.search(target, metric, math.Inf(1), backward, nil)
	return distance
}

// Ball returns the nodes whose shortest path length from center is at most radius,
// with their distance.
func (n *Network) Ball(center NodeID, radius float64) map[NodeID]float64 {
	distance, _ := n.search(center, ByLength, radius, forward, nil)
	return distance
}

// Isochrone returns the nodes roughly radius away from center: those inside
// Ball(center, 1.1*radius) but outside Ball(center, 0.9*radius).
// Nodes are returned in network order.
func (n *Network) Isochrone(center NodeID, radius float64) []NodeID {
	inner := 0.9 * radius
	distance := n.Ball(center, 1.1*radius)

	isochrone := []NodeID{}
	for _, node := range n.nodes {
		if d, ok := distance[node.ID]; ok && d > inner {
			isochrone = append(isochrone, node.ID)
		}
	}
	return isochrone
}
