package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/quadtree"
)

// DefaultSnapDistance is how far (in meters) a start point may be from the network.
const DefaultSnapDistance = 1000.0

type indexedNode struct {
	*Node
}

func (p indexedNode) Point() orb.Point {
	return p.Node.Point
}

// NearestNode returns the node closest to p that has at least one outgoing edge.
// ok is false if there is no such node within maxDistance meters.
func (n *Network) NearestNode(p orb.Point, maxDistance float64) (id NodeID, ok bool) {
	if len(n.nodes) == 0 {
		return 0, false
	}

	bound := orb.Bound{Min: n.nodes[0].Point, Max: n.nodes[0].Point}
	for _, node := range n.nodes {
		bound = bound.Extend(node.Point)
	}

	qt := quadtree.New(bound)
	for _, node := range n.nodes {
		if len(n.OutEdges(node.ID)) == 0 {
			continue
		}
		if err := qt.Add(indexedNode{node}); err != nil {
			return 0, false
		}
	}

	// The tree measures in degrees, so check a few candidates in meters
	candidates := qt.KNearest(nil, p, 8)
	best := -1.0
	for _, c := range candidates {
		node := c.(indexedNode).Node
		d := geo.Distance(p, node.Point)
		if d > maxDistance {
			continue
		}
		if best < 0 || d < best {
			best = d
			id = node.ID
		}
	}
	return id, best >= 0
}
