package graph

import (
	"github.com/paulmach/orb"
)

// A Network is a directed multigraph of path segments.
// Nodes and edges keep their insertion order, which is the order every
// iteration over the network follows.

type NodeID int64

type Node struct {
	ID    NodeID
	Point orb.Point // lon, lat

	Elevation    float64 // meters
	HasElevation bool
}

type Surface int

const (
	SurfaceRoad Surface = iota
	SurfaceTrail
)

func (s Surface) String() string {
	if s == SurfaceTrail {
		return "trail"
	}
	return "road"
}

type Edge struct {
	From NodeID
	To   NodeID
	Key  int // Index among the parallel edges From -> To
	Way  int64

	Length   float64 // meters
	Geometry orb.LineString

	// Elevation data, only meaningful when HasGradient is set
	Gradient    float64 // absolute rise / length
	Rise        float64
	HasGradient bool
	Elevation   ElevationBucket

	Surface   Surface
	Nature    bool
	Lit       bool
	Tourism   bool
	Viewpoint bool

	// Tags of the way this segment came from, shared between all its segments
	WayTags map[string]string

	// Routing costs for the current preference vector
	Weight         float64
	AdditiveWeight float64
}

type nodePair struct {
	from NodeID
	to   NodeID
}

type Network struct {
	nodes []*Node
	index map[NodeID]int

	out [][]*Edge // Outgoing edges by node index
	in  [][]*Edge // Incoming edges by node index

	parallel  map[nodePair][]*Edge
	edgeCount int

	bucketsAssigned bool
}

func NewNetwork() *Network {
	return &Network{
		index:    make(map[NodeID]int),
		parallel: make(map[nodePair][]*Edge),
	}
}

// AddNode adds a node, or returns the existing node with the same id.
func (n *Network) AddNode(id NodeID, point orb.Point) *Node {
	if i, ok := n.index[id]; ok {
		return n.nodes[i]
	}
	node := &Node{ID: id, Point: point}
	n.index[id] = len(n.nodes)
	n.nodes = append(n.nodes, node)
	n.out = append(n.out, nil)
	n.in = append(n.in, nil)
	return node
}

// AddEdge adds a directed edge between two existing nodes.
// Parallel edges are kept, the first one inserted stays the canonical edge.
func (n *Network) AddEdge(from, to NodeID, length float64) *Edge {
	fi, ok := n.index[from]
	if !ok {
		return nil
	}
	ti, ok := n.index[to]
	if !ok {
		return nil
	}

	pair := nodePair{from, to}
	e := &Edge{From: from, To: to, Key: len(n.parallel[pair]), Length: length}
	n.parallel[pair] = append(n.parallel[pair], e)
	n.out[fi] = append(n.out[fi], e)
	n.in[ti] = append(n.in[ti], e)
	n.edgeCount++
	return e
}

func (n *Network) Node(id NodeID) (*Node, bool) {
	i, ok := n.index[id]
	if !ok {
		return nil, false
	}
	return n.nodes[i], true
}

func (n *Network) HasNode(id NodeID) bool {
	_, ok := n.index[id]
	return ok
}

// Nodes returns every node in insertion order.
func (n *Network) Nodes() []*Node {
	return n.nodes
}

func (n *Network) NodeCount() int {
	return len(n.nodes)
}

func (n *Network) EdgeCount() int {
	return n.edgeCount
}

// Edges calls fn for every edge, grouped by source node in insertion order.
func (n *Network) Edges(fn func(e *Edge)) {
	for _, edges := range n.out {
		for _, e := range edges {
			fn(e)
		}
	}
}

// OutEdges returns the outgoing edges of a node in insertion order.
func (n *Network) OutEdges(id NodeID) []*Edge {
	i, ok := n.index[id]
	if !ok {
		return nil
	}
	return n.out[i]
}

// InEdges returns the incoming edges of a node in insertion order.
func (n *Network) InEdges(id NodeID) []*Edge {
	i, ok := n.index[id]
	if !ok {
		return nil
	}
	return n.in[i]
}

// Successors returns the distinct nodes reachable over one outgoing edge,
// in the order their first edge was inserted.
func (n *Network) Successors(id NodeID) []NodeID {
	edges := n.OutEdges(id)
	seen := make(map[NodeID]bool, len(edges))
	successors := make([]NodeID, 0, len(edges))
	for _, e := range edges {
		if !seen[e.To] {
			seen[e.To] = true
			successors = append(successors, e.To)
		}
	}
	return successors
}

// ParallelEdges returns every edge from -> to, canonical edge first.
func (n *Network) ParallelEdges(from, to NodeID) []*Edge {
	return n.parallel[nodePair{from, to}]
}

// CanonicalEdge is the first inserted edge from -> to, used for geometry and rendering.
func (n *Network) CanonicalEdge(from, to NodeID) *Edge {
	edges := n.parallel[nodePair{from, to}]
	if len(edges) == 0 {
		return nil
	}
	return edges[0]
}

// ShortestEdge is the parallel edge from -> to with the smallest length.
// Ties keep the earlier edge.
func (n *Network) ShortestEdge(from, to NodeID) *Edge {
	var best *Edge
	for _, e := range n.parallel[nodePair{from, to}] {
		if best == nil || e.Length < best.Length {
			best = e
		}
	}
	return best
}

// RouteLength sums the true length of consecutive node pairs, using the
// shortest parallel edge between each pair. ok is false if a pair has no edge.
func (n *Network) RouteLength(route []NodeID) (length float64, ok bool) {
	for i := 0; i+1 < len(route); i++ {
		e := n.ShortestEdge(route[i], route[i+1])
		if e == nil {
			return length, false
		}
		length += e.Length
	}
	return length, true
}
