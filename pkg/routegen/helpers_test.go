package routegen

import (
	"github.com/paulmach/orb"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
)

// ring builds nodes 0..size-1 joined in a cycle by unit length edges,
// weighted with no preferences so weight equals length.
func ring(size int, bidirectional bool) *graph.Network {
	n := graph.NewNetwork()
	for i := 0; i < size; i++ {
		n.AddNode(graph.NodeID(i), orb.Point{float64(i) * 0.001, 0})
	}
	for i := 0; i < size; i++ {
		n.AddEdge(graph.NodeID(i), graph.NodeID((i+1)%size), 1)
		if bidirectional {
			n.AddEdge(graph.NodeID((i+1)%size), graph.NodeID(i), 1)
		}
	}
	n.AssignWeights(graph.Preferences{}, graph.HillyObserved)
	return n
}

// grid builds a size x size lattice of unit length streets in both directions.
// Node r*size+c sits in row r, column c.
func grid(size int) *graph.Network {
	n := graph.NewNetwork()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			n.AddNode(graph.NodeID(r*size+c), orb.Point{float64(c) * 0.001, float64(r) * 0.001})
		}
	}
	connect := func(a, b int) {
		n.AddEdge(graph.NodeID(a), graph.NodeID(b), 1)
		n.AddEdge(graph.NodeID(b), graph.NodeID(a), 1)
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if c+1 < size {
				connect(r*size+c, r*size+c+1)
			}
			if r+1 < size {
				connect(r*size+c, (r+1)*size+c)
			}
		}
	}
	n.AssignWeights(graph.Preferences{}, graph.HillyObserved)
	return n
}
