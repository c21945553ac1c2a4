package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
)

// Convert MapData to a Network.
// Every walkable way contributes an edge in both directions for each pair of
// consecutive nodes. Nodes that no kept way references are left out.
func NewNetworkFromMapData(data *mapdata.MapData) *Network {
	points := make(map[int64]orb.Point, len(data.Nodes))
	for _, node := range data.Nodes {
		points[node.ID] = node.Point()
	}

	ways := make([]mapdata.Way, 0, len(data.Ways))
	referenced := make(map[int64]bool)
	for _, way := range data.Ways {
		if !way.Walkable() {
			continue
		}
		ways = append(ways, way)
		for _, id := range way.Nodes {
			referenced[id] = true
		}
	}

	n := NewNetwork()
	for _, node := range data.Nodes {
		if referenced[node.ID] {
			n.AddNode(NodeID(node.ID), node.Point())
		}
	}

	for _, way := range ways {
		for i := 0; i < len(way.Nodes)-1; i++ {
			a, b := way.Nodes[i], way.Nodes[i+1]
			pa, okA := points[a]
			pb, okB := points[b]
			if !okA || !okB {
				continue // Overpass can cut ways at the query boundary
			}

			length := geo.DistanceHaversine(pa, pb)
			n.addSegment(NodeID(a), NodeID(b), way, length, orb.LineString{pa, pb})
			n.addSegment(NodeID(b), NodeID(a), way, length, orb.LineString{pb, pa})
		}
	}

	return n
}

func (n *Network) addSegment(from, to NodeID, way mapdata.Way, length float64, geometry orb.LineString) {
	e := n.AddEdge(from, to, length)
	if e == nil {
		return
	}
	e.Way = way.ID
	e.WayTags = way.Tags
	e.Geometry = geometry
}
