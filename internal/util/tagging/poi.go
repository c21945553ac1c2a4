package tagging

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/quadtree"

	"github.com/ColinToft/LoopRoute/internal/util/graph"
	"github.com/ColinToft/LoopRoute/internal/util/mapdata"
)

// Number of segment midpoints checked exactly for each point of interest
const nearestCandidates = 16

// A segment of the network, indexed by its midpoint
type segment struct {
	order    int
	from, to graph.NodeID
	a, b     orb.Point // mercator
	midpoint orb.Point // lon, lat
}

func (s *segment) Point() orb.Point {
	return s.midpoint
}

func featurePoints(features []mapdata.Feature) []orb.Point {
	points := make([]orb.Point, 0, len(features))
	for _, f := range features {
		points = append(points, f.Point)
	}
	return points
}

// MarkNearest calls mark on both directions of the segment nearest to each point.
func MarkNearest(n *graph.Network, points []orb.Point, mark func(e *graph.Edge)) {
	if len(points) == 0 || n.EdgeCount() == 0 {
		return
	}

	segments := make([]*segment, 0, n.EdgeCount()/2+1)
	seen := make(map[[2]graph.NodeID]bool)
	var bound orb.Bound
	n.Edges(func(e *graph.Edge) {
		if len(e.Geometry) < 2 {
			return
		}
		key := [2]graph.NodeID{e.From, e.To}
		if e.To < e.From {
			key = [2]graph.NodeID{e.To, e.From}
		}
		if seen[key] {
			return
		}
		seen[key] = true

		first, last := e.Geometry[0], e.Geometry[len(e.Geometry)-1]
		s := &segment{
			order:    len(segments),
			from:     e.From,
			to:       e.To,
			a:        project.Point(first, project.WGS84.ToMercator),
			b:        project.Point(last, project.WGS84.ToMercator),
			midpoint: geo.Midpoint(first, last),
		}
		if len(segments) == 0 {
			bound = s.midpoint.Bound()
		}
		bound = bound.Extend(s.midpoint)
		segments = append(segments, s)
	})
	if len(segments) == 0 {
		return
	}

	qt := quadtree.New(bound)
	for _, s := range segments {
		if err := qt.Add(s); err != nil {
			return
		}
	}

	buf := make([]orb.Pointer, 0, nearestCandidates)
	for _, p := range points {
		projected := project.Point(p, project.WGS84.ToMercator)

		var nearest *segment
		best := math.Inf(1)
		for _, c := range qt.KNearest(buf[:0], p, nearestCandidates) {
			s := c.(*segment)
			d := planar.DistanceFromSegment(s.a, s.b, projected)
			if d < best || (d == best && s.order < nearest.order) {
				best = d
				nearest = s
			}
		}
		if nearest == nil {
			continue
		}

		for _, e := range n.ParallelEdges(nearest.from, nearest.to) {
			mark(e)
		}
		for _, e := range n.ParallelEdges(nearest.to, nearest.from) {
			mark(e)
		}
	}
}
