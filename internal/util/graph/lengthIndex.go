package graph

import (
	"sync"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// A LengthIndex answers shortest path by length queries over a contraction
// hierarchy of the network. Contraction is done once, on first use.
// The network must not change after the index is built.
type LengthIndex struct {
	network *Network

	once sync.Once
	ch   *ch.Graph
	err  error
}

func NewLengthIndex(network *Network) *LengthIndex {
	return &LengthIndex{network: network}
}

func (idx *LengthIndex) build() {
	g := &ch.Graph{}
	for _, node := range idx.network.nodes {
		if err := g.CreateVertex(int64(node.ID)); err != nil {
			idx.err = errors.Wrapf(err, "creating vertex %d", node.ID)
			return
		}
	}

	// Edges go in in network order so equal length paths resolve the same way
	// on every build. Only the shortest parallel edge can lie on a shortest path.
	added := make(map[nodePair]bool, idx.network.edgeCount)
	for i := range idx.network.nodes {
		for _, e := range idx.network.out[i] {
			pair := nodePair{e.From, e.To}
			if added[pair] {
				continue
			}
			added[pair] = true

			shortest := idx.network.ShortestEdge(pair.from, pair.to)
			if err := g.AddEdge(int64(pair.from), int64(pair.to), shortest.Length); err != nil {
				idx.err = errors.Wrapf(err, "adding edge %d -> %d", pair.from, pair.to)
				return
			}
		}
	}

	g.PrepareContractionHierarchies()
	idx.ch = g
}

// ShortestPath returns the shortest path by length from source to target.
// It falls back to a plain Dijkstra search if the hierarchy could not be built.
func (idx *LengthIndex) ShortestPath(source, target NodeID) ([]NodeID, bool) {
	if source == target {
		if !idx.network.HasNode(source) {
			return nil, false
		}
		return []NodeID{source}, true
	}

	idx.once.Do(idx.build)
	if idx.err != nil {
		return idx.network.ShortestPath(source, target, ByLength)
	}

	cost, vertices := idx.ch.ShortestPath(int64(source), int64(target))
	if cost < 0 || len(vertices) == 0 {
		return nil, false
	}

	path := make([]NodeID, len(vertices))
	for i, v := range vertices {
		path[i] = NodeID(v)
	}
	return path, true
}

// Err reports why the hierarchy could not be built, if it was attempted.
func (idx *LengthIndex) Err() error {
	return idx.err
}
